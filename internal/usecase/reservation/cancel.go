package reservation

import (
	"context"
	"time"

	"github.com/salonlink/salon-scheduler/internal/audit"
	domain "github.com/salonlink/salon-scheduler/internal/domain/reservation"
	"github.com/salonlink/salon-scheduler/internal/httperr"
	"github.com/salonlink/salon-scheduler/internal/models"
)

type CancelReservation struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCancelReservation(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CancelReservation {
	return &CancelReservation{
		repo:  repo,
		audit: audit,
	}
}

func (uc *CancelReservation) Execute(
	ctx context.Context,
	shopID uint,
	stylistID uint,
	reservationID uint,
	now time.Time,
) (*models.Reservation, error) {

	res, err := uc.repo.GetReservationForStylist(ctx, reservationID, stylistID)
	if err != nil {
		return nil, httperr.ErrBusiness("reservation_not_found")
	}

	if err := domain.Cancel(res, now); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateReservation(ctx, res); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ShopID:   shopID,
		UserID:   &stylistID,
		Action:   "reservation_cancelled",
		Entity:   "reservation",
		EntityID: &res.ID,
	})

	return res, nil
}
