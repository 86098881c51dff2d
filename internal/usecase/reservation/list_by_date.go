package reservation

import (
	"context"
	"time"

	domain "github.com/salonlink/salon-scheduler/internal/domain/reservation"
	"github.com/salonlink/salon-scheduler/internal/dto"
	"github.com/salonlink/salon-scheduler/internal/timezone"
)

type ListReservationsByDate struct {
	repo domain.Repository
}

func NewListReservationsByDate(
	repo domain.Repository,
) *ListReservationsByDate {
	return &ListReservationsByDate{
		repo: repo,
	}
}

func (uc *ListReservationsByDate) Execute(
	ctx context.Context,
	stylistID uint,
	shopID uint,
	date time.Time,
) ([]dto.ReservationListDTO, error) {

	shop, err := uc.repo.GetShopByID(ctx, shopID)
	if err != nil {
		return nil, err
	}

	loc := timezone.Location(shop.Timezone)

	start := time.Date(
		date.Year(),
		date.Month(),
		date.Day(),
		0, 0, 0, 0,
		loc,
	)
	end := start.Add(24 * time.Hour)

	rows, err := uc.repo.ListReservationsForPeriod(
		ctx,
		stylistID,
		start,
		end,
	)
	if err != nil {
		return nil, err
	}

	out := make([]dto.ReservationListDTO, 0, len(rows))
	for _, res := range rows {
		out = append(out, dto.ReservationListDTO{
			ID:         res.ID,
			Code:       res.Code,
			StartsAt:   res.StartsAt,
			EndsAt:     res.EndsAt,
			Status:     res.Status,
			ClientName: res.Client.Name,
			MenuName:   res.Menu.Name,
		})
	}

	return out, nil
}
