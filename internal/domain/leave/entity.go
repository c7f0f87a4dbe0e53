package leave

import "time"

type Type string

const (
	TypeAnnual Type = "ANNUAL"
	TypeSick   Type = "SICK"
	TypeUnpaid Type = "UNPAID"
)

// Payable reports whether days of this leave type count toward valid work
// days.
func (t Type) Payable() bool {
	return t == TypeAnnual || t == TypeSick
}

type RequestStatus string

const (
	RequestStatusPending  RequestStatus = "PENDING"
	RequestStatusApproved RequestStatus = "APPROVED"
	RequestStatusRejected RequestStatus = "REJECTED"
)

// Request is the read-only collaborator contract for approved leave. Leave
// CRUD and the approval workflow live elsewhere. StartDate and EndDate are
// inclusive calendar days.
type Request struct {
	ID         string
	EmployeeID string
	Type       Type
	Status     RequestStatus
	StartDate  time.Time
	EndDate    time.Time
}
