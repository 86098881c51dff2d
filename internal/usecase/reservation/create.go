package reservation

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/salonlink/salon-scheduler/internal/audit"
	domain "github.com/salonlink/salon-scheduler/internal/domain/reservation"
	"github.com/salonlink/salon-scheduler/internal/httperr"
	"github.com/salonlink/salon-scheduler/internal/models"
	"github.com/salonlink/salon-scheduler/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type CreateReservationInput struct {
	ShopID    uint
	StylistID uint

	ClientName  string
	ClientPhone string
	ClientEmail string

	MenuID uint

	Date  string // YYYY-MM-DD
	Time  string // HH:MM
	Notes string
}

// ======================================================
// USE CASE
// ======================================================

type CreateReservation struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCreateReservation(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CreateReservation {
	return &CreateReservation{
		repo:  repo,
		audit: audit,
	}
}

// Execute books a slot. The reference instant is passed in by the caller
// so the whole flow is deterministic under test.
func (uc *CreateReservation) Execute(
	ctx context.Context,
	in CreateReservationInput,
	now time.Time,
) (*models.Reservation, error) {

	shop, err := uc.repo.GetShopByID(ctx, in.ShopID)
	if err != nil {
		return nil, httperr.ErrBusiness("shop_not_found")
	}

	// Wall-clock input is interpreted in the shop's timezone.
	start, err := time.ParseInLocation(
		"2006-01-02 15:04",
		in.Date+" "+in.Time,
		timezone.Location(shop.Timezone),
	)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date_or_time")
	}

	minAdvance := shop.MinAdvanceMinutes
	if minAdvance <= 0 {
		minAdvance = 120
	}
	if start.Before(now.Add(time.Duration(minAdvance) * time.Minute)) {
		return nil, httperr.ErrBusiness("too_soon")
	}

	menu, err := uc.repo.GetMenu(ctx, in.ShopID, in.MenuID)
	if err != nil {
		return nil, httperr.ErrBusiness("menu_not_found")
	}

	end := start.Add(time.Duration(menu.DurationMin) * time.Minute)

	ok, err := uc.isWithinSchedule(ctx, in.StylistID, start, end)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, httperr.ErrBusiness("outside_working_hours")
	}

	client, err := uc.repo.GetOrCreateClient(
		ctx,
		in.ShopID,
		in.ClientName,
		in.ClientPhone,
		in.ClientEmail,
	)
	if err != nil {
		return nil, err
	}

	res := &models.Reservation{
		Code:      uuid.NewString(),
		ShopID:    in.ShopID,
		StylistID: in.StylistID,
		ClientID:  client.ID,
		MenuID:    menu.ID,
		StartsAt:  start,
		EndsAt:    end,
		Status:    string(domain.InitialStatus()),
		Notes:     in.Notes,
	}

	// Conflict check and insert happen inside one transaction in the
	// repository; slot_unavailable comes back from either the in-tx
	// check or the exclusion constraint.
	if err := uc.repo.CreateReservationIfFree(ctx, res); err != nil {
		if httperr.IsBusiness(err, "slot_unavailable") {
			uc.audit.Dispatch(audit.Event{
				ShopID: in.ShopID,
				Action: "reservation_conflict",
				Entity: "reservation",
				Metadata: map[string]any{
					"stylist_id": in.StylistID,
					"starts_at":  start,
					"ends_at":    end,
				},
			})
		}
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ShopID:   in.ShopID,
		Action:   "reservation_created",
		Entity:   "reservation",
		EntityID: &res.ID,
	})

	return res, nil
}

// isWithinSchedule evaluates the stylist's weekday row against the
// requested interval. A missing or inactive row means closed that day.
// Start and end must fall on the same calendar day; anything that would
// cross midnight is out of schedule by construction.
func (uc *CreateReservation) isWithinSchedule(
	ctx context.Context,
	stylistID uint,
	start time.Time,
	end time.Time,
) (bool, error) {

	if start.Day() != end.Day() || start.Month() != end.Month() {
		return false, nil
	}

	ws, err := uc.repo.GetWorkingSchedule(ctx, stylistID, int(start.Weekday()))
	if err != nil {
		return false, nil
	}
	if !ws.Active || ws.StartTime == "" || ws.EndTime == "" {
		return false, nil
	}

	winStart, err := domain.ParseClock(ws.StartTime)
	if err != nil {
		return false, err
	}
	winEnd, err := domain.ParseClock(ws.EndTime)
	if err != nil {
		return false, err
	}

	sched := domain.Schedule{
		Window: domain.Window{Start: winStart, End: winEnd},
		Days:   domain.Weekdays(start.Weekday()),
	}
	if err := sched.Validate(); err != nil {
		return false, err
	}

	return sched.CoversOn(
		start.Weekday(),
		domain.ClockOf(start),
		domain.ClockOf(end),
	), nil
}
