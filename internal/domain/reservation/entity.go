package reservation

import (
	"time"

	"github.com/salonlink/salon-scheduler/internal/models"
)

// ===============================
// Domain Actions
// ===============================

// now is passed in explicitly so callers control the reference clock.

func Cancel(r *models.Reservation, now time.Time) error {
	if err := CanCancel(Status(r.Status)); err != nil {
		return err
	}

	r.Status = string(StatusCancelled)
	r.CancelledAt = &now
	return nil
}

func Complete(r *models.Reservation, now time.Time) error {
	if err := CanComplete(Status(r.Status)); err != nil {
		return err
	}

	r.Status = string(StatusCompleted)
	r.CompletedAt = &now
	return nil
}
