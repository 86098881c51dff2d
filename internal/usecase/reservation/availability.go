package reservation

import (
	"context"
	"time"

	domain "github.com/salonlink/salon-scheduler/internal/domain/reservation"
	"github.com/salonlink/salon-scheduler/internal/httperr"
)

type AvailabilityInput struct {
	ShopID    uint
	StylistID uint
	MenuID    uint
	Date      time.Time
}

type TimeSlot struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

type GetAvailability struct {
	repo domain.Repository
}

func NewGetAvailability(repo domain.Repository) *GetAvailability {
	return &GetAvailability{repo: repo}
}

// Execute walks the stylist's working window in menu-duration steps and
// drops every slot that overlaps a booked one. A closed day yields an
// empty list, not an error.
func (uc *GetAvailability) Execute(
	ctx context.Context,
	in AvailabilityInput,
) ([]TimeSlot, error) {

	menu, err := uc.repo.GetMenu(ctx, in.ShopID, in.MenuID)
	if err != nil {
		return nil, httperr.ErrBusiness("menu_not_found")
	}

	ws, err := uc.repo.GetWorkingSchedule(ctx, in.StylistID, int(in.Date.Weekday()))
	if err != nil || !ws.Active {
		return []TimeSlot{}, nil
	}

	winStart, err := domain.ParseClock(ws.StartTime)
	if err != nil {
		return nil, err
	}
	winEnd, err := domain.ParseClock(ws.EndTime)
	if err != nil {
		return nil, err
	}

	dayStart := winStart.At(in.Date)
	dayEnd := winEnd.At(in.Date)

	booked, err := uc.repo.ListBookedSlots(
		ctx,
		in.StylistID,
		dayStart,
		dayEnd,
	)
	if err != nil {
		return nil, err
	}

	step := time.Duration(menu.DurationMin) * time.Minute
	var slots []TimeSlot

	for cur := dayStart; !cur.Add(step).After(dayEnd); cur = cur.Add(step) {
		candidate := domain.Slot{
			StartsAt: cur,
			EndsAt:   cur.Add(step),
		}

		if domain.HasConflict(booked, candidate) {
			continue
		}

		slots = append(slots, TimeSlot{
			Start: candidate.StartsAt.Format("15:04"),
			End:   candidate.EndsAt.Format("15:04"),
		})
	}

	if slots == nil {
		slots = []TimeSlot{}
	}
	return slots, nil
}
