package reservation

import "github.com/salonlink/salon-scheduler/internal/httperr"

// ===============================
// Reservation Status
// ===============================

type Status string

const (
	StatusReserved  Status = "reserved"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// ===============================
// Transitions
// ===============================

// Completed and cancelled are terminal; only reserved moves.

func CanCancel(current Status) error {
	if current != StatusReserved {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

func CanComplete(current Status) error {
	if current != StatusReserved {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

func InitialStatus() Status {
	return StatusReserved
}
