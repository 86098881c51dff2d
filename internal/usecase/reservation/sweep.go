package reservation

import (
	"context"
	"time"

	domain "github.com/salonlink/salon-scheduler/internal/domain/reservation"
)

// SweepExpiredReservations moves past-due reserved rows to completed.
// One UPDATE, idempotent: a second run with the same asOf matches zero
// rows. asOf is explicit; only the background loop passes the wall clock.
type SweepExpiredReservations struct {
	repo domain.Repository
}

func NewSweepExpiredReservations(
	repo domain.Repository,
) *SweepExpiredReservations {
	return &SweepExpiredReservations{repo: repo}
}

func (uc *SweepExpiredReservations) Execute(
	ctx context.Context,
	asOf time.Time,
) (int64, error) {
	return uc.repo.SweepExpired(ctx, asOf)
}
