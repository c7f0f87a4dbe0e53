package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidClockTime(t *testing.T) {
	t.Parallel()

	valid := []string{"00:00", "07:30", "12:05", "23:59"}
	for _, s := range valid {
		assert.True(t, IsValidClockTime(s), s)
	}

	invalid := []string{"", "24:00", "7:30", "07:60", "07-30", "07:30:00", "aa:bb"}
	for _, s := range invalid {
		assert.False(t, IsValidClockTime(s), s)
	}
}

func TestIsValidCycleID(t *testing.T) {
	t.Parallel()

	valid := []string{"2025-01", "2024-12", "1999-06"}
	for _, s := range valid {
		assert.True(t, IsValidCycleID(s), s)
	}

	invalid := []string{"", "2025-13", "2025-0", "2025-1", "25-01", "2025/01", "2025-01-01"}
	for _, s := range invalid {
		assert.False(t, IsValidCycleID(s), s)
	}
}

func TestValidationErrorsToMap(t *testing.T) {
	t.Parallel()

	errs := ValidationErrors{
		{Field: "check_in", Message: "must be HH:mm"},
		{Field: "cycle_id", Message: "is required"},
	}

	m := errs.ToMap()
	assert.Equal(t, "must be HH:mm", m["check_in"])
	assert.Equal(t, "is required", m["cycle_id"])
	assert.Contains(t, errs.Error(), "check_in: must be HH:mm")
}
