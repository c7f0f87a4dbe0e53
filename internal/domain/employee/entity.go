package employee

import (
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusActive    Status = "ACTIVE"
	StatusProbation Status = "PROBATION"
	StatusInactive  Status = "INACTIVE"
)

// Employee is the read-only collaborator contract the payroll core consumes.
// Employee CRUD lives elsewhere.
type Employee struct {
	ID              string
	FullName        string
	RoleTitle       string
	Status          Status
	BaseSalary      decimal.Decimal
	InsuranceSalary *decimal.Decimal
	HourlyRate      decimal.Decimal
	HireDate        time.Time
}

// Payable reports whether the employee receives a slip when a cycle opens.
func (e Employee) Payable() bool {
	return e.Status == StatusActive || e.Status == StatusProbation
}
