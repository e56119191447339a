package appointment

import "github.com/BruksfildServices01/careflow-api/internal/httperr"

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusScheduled Status = "scheduled"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

var (
	ErrNotFound          = httperr.ErrBusiness("appointment_not_found")
	ErrInvalidStatus     = httperr.ErrBusiness("invalid_status")
	ErrInvalidDateOrTime = httperr.ErrBusiness("invalid_date_or_time")
)

func (s Status) Valid() bool {
	switch s {
	case StatusScheduled, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// InitialStatus is the status every new appointment starts in.
func InitialStatus() Status {
	return StatusScheduled
}
