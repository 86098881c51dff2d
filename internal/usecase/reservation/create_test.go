package reservation

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/salonlink/salon-scheduler/internal/domain/reservation"
	"github.com/salonlink/salon-scheduler/internal/httperr"
	"github.com/salonlink/salon-scheduler/internal/models"
)

// ======================================================
// FAKE REPOSITORY
// ======================================================

type fakeRepo struct {
	shop      *models.Shop
	menu      *models.Menu
	schedules map[int]*models.WorkingSchedule

	reservations []*models.Reservation

	nextClientID uint
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		shop: &models.Shop{
			ID:                1,
			Slug:              "tokyo-cuts",
			Timezone:          "UTC",
			MinAdvanceMinutes: 120,
		},
		menu: &models.Menu{
			ID:          7,
			ShopID:      1,
			Name:        "Cut & Blow Dry",
			DurationMin: 60,
			Active:      true,
		},
		schedules: map[int]*models.WorkingSchedule{
			int(time.Monday): {
				StylistID: 5,
				Weekday:   int(time.Monday),
				StartTime: "09:00",
				EndTime:   "18:00",
				Active:    true,
			},
		},
	}
}

func (f *fakeRepo) GetShopByID(_ context.Context, id uint) (*models.Shop, error) {
	if f.shop == nil || f.shop.ID != id {
		return nil, httperr.ErrBusiness("shop_not_found")
	}
	return f.shop, nil
}

func (f *fakeRepo) GetShopBySlug(_ context.Context, slug string) (*models.Shop, error) {
	if f.shop == nil || f.shop.Slug != slug {
		return nil, httperr.ErrBusiness("shop_not_found")
	}
	return f.shop, nil
}

func (f *fakeRepo) GetMenu(_ context.Context, shopID, menuID uint) (*models.Menu, error) {
	if f.menu == nil || f.menu.ID != menuID || f.menu.ShopID != shopID {
		return nil, httperr.ErrBusiness("menu_not_found")
	}
	return f.menu, nil
}

func (f *fakeRepo) GetOrCreateClient(_ context.Context, shopID uint, name, phone, email string) (*models.Client, error) {
	f.nextClientID++
	return &models.Client{
		ID:     f.nextClientID,
		ShopID: shopID,
		Name:   name,
		Phone:  phone,
		Email:  email,
	}, nil
}

func (f *fakeRepo) CreateReservationIfFree(_ context.Context, r *models.Reservation) error {
	booked := make([]domain.BookedSlot, 0, len(f.reservations))
	for _, existing := range f.reservations {
		if existing.StylistID != r.StylistID {
			continue
		}
		booked = append(booked, domain.BookedSlot{
			Slot:   domain.Slot{StartsAt: existing.StartsAt, EndsAt: existing.EndsAt},
			Status: domain.Status(existing.Status),
		})
	}

	if domain.HasConflict(booked, domain.Slot{StartsAt: r.StartsAt, EndsAt: r.EndsAt}) {
		return httperr.ErrBusiness("slot_unavailable")
	}

	r.ID = uint(len(f.reservations) + 1)
	f.reservations = append(f.reservations, r)
	return nil
}

func (f *fakeRepo) GetReservationForStylist(_ context.Context, reservationID, stylistID uint) (*models.Reservation, error) {
	for _, r := range f.reservations {
		if r.ID == reservationID && r.StylistID == stylistID {
			return r, nil
		}
	}
	return nil, httperr.ErrBusiness("reservation_not_found")
}

func (f *fakeRepo) GetReservationByCode(_ context.Context, shopID uint, code string) (*models.Reservation, error) {
	for _, r := range f.reservations {
		if r.ShopID == shopID && r.Code == code {
			return r, nil
		}
	}
	return nil, httperr.ErrBusiness("reservation_not_found")
}

func (f *fakeRepo) UpdateReservation(_ context.Context, r *models.Reservation) error {
	return nil
}

func (f *fakeRepo) ListBookedSlots(_ context.Context, stylistID uint, start, end time.Time) ([]domain.BookedSlot, error) {
	var out []domain.BookedSlot
	for _, r := range f.reservations {
		if r.StylistID != stylistID || r.Status == string(domain.StatusCancelled) {
			continue
		}
		if r.StartsAt.Before(start) || !r.StartsAt.Before(end) {
			continue
		}
		out = append(out, domain.BookedSlot{
			Slot:   domain.Slot{StartsAt: r.StartsAt, EndsAt: r.EndsAt},
			Status: domain.Status(r.Status),
		})
	}
	return out, nil
}

func (f *fakeRepo) ListReservationsForPeriod(_ context.Context, stylistID uint, start, end time.Time) ([]models.Reservation, error) {
	var out []models.Reservation
	for _, r := range f.reservations {
		if r.StylistID == stylistID && !r.StartsAt.Before(start) && r.StartsAt.Before(end) {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (f *fakeRepo) GetWorkingSchedule(_ context.Context, stylistID uint, weekday int) (*models.WorkingSchedule, error) {
	ws, ok := f.schedules[weekday]
	if !ok || ws.StylistID != stylistID {
		return nil, httperr.ErrBusiness("schedule_not_found")
	}
	return ws, nil
}

func (f *fakeRepo) SweepExpired(_ context.Context, asOf time.Time) (int64, error) {
	var count int64
	for _, r := range f.reservations {
		if r.Status == string(domain.StatusReserved) && r.EndsAt.Before(asOf) {
			r.Status = string(domain.StatusCompleted)
			completedAt := asOf
			r.CompletedAt = &completedAt
			count++
		}
	}
	return count, nil
}

var _ domain.Repository = (*fakeRepo)(nil)

// ======================================================
// CREATE
// ======================================================

// 2026-04-06 is a Monday.
var testNow = time.Date(2026, time.April, 1, 12, 0, 0, 0, time.UTC)

func validInput() CreateReservationInput {
	return CreateReservationInput{
		ShopID:      1,
		StylistID:   5,
		ClientName:  "Aiko Tanaka",
		ClientPhone: "090-1234-5678",
		MenuID:      7,
		Date:        "2026-04-06",
		Time:        "10:00",
	}
}

func TestCreateReservation_Success(t *testing.T) {
	repo := newFakeRepo()
	uc := NewCreateReservation(repo, nil)

	res, err := uc.Execute(context.Background(), validInput(), testNow)
	require.NoError(t, err)

	assert.NotEmpty(t, res.Code)
	assert.Equal(t, string(domain.StatusReserved), res.Status)
	assert.Equal(t, time.Date(2026, time.April, 6, 10, 0, 0, 0, time.UTC), res.StartsAt)
	assert.Equal(t, time.Date(2026, time.April, 6, 11, 0, 0, 0, time.UTC), res.EndsAt)
	assert.Len(t, repo.reservations, 1)
}

func TestCreateReservation_EndingAtClosingTimeIsValid(t *testing.T) {
	repo := newFakeRepo()
	uc := NewCreateReservation(repo, nil)

	in := validInput()
	in.Time = "17:00" // 60min menu ends exactly at 18:00

	_, err := uc.Execute(context.Background(), in, testNow)
	assert.NoError(t, err)
}

func TestCreateReservation_OutsideWorkingHours(t *testing.T) {
	repo := newFakeRepo()
	uc := NewCreateReservation(repo, nil)

	tests := []struct {
		name string
		time string
		date string
	}{
		{name: "before opening", time: "08:30", date: "2026-04-06"},
		{name: "ends after closing", time: "17:30", date: "2026-04-06"},
		{name: "closed weekday", time: "10:00", date: "2026-04-07"}, // Tuesday, no row
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validInput()
			in.Date = tt.date
			in.Time = tt.time

			_, err := uc.Execute(context.Background(), in, testNow)
			assert.True(t, httperr.IsBusiness(err, "outside_working_hours"))
		})
	}
}

func TestCreateReservation_InactiveDayIsClosed(t *testing.T) {
	repo := newFakeRepo()
	repo.schedules[int(time.Monday)].Active = false
	uc := NewCreateReservation(repo, nil)

	_, err := uc.Execute(context.Background(), validInput(), testNow)
	assert.True(t, httperr.IsBusiness(err, "outside_working_hours"))
}

func TestCreateReservation_TooSoon(t *testing.T) {
	repo := newFakeRepo()
	uc := NewCreateReservation(repo, nil)

	// now is one hour before the slot, min advance is two hours
	now := time.Date(2026, time.April, 6, 9, 0, 0, 0, time.UTC)

	_, err := uc.Execute(context.Background(), validInput(), now)
	assert.True(t, httperr.IsBusiness(err, "too_soon"))
}

func TestCreateReservation_InvalidDateTime(t *testing.T) {
	repo := newFakeRepo()
	uc := NewCreateReservation(repo, nil)

	in := validInput()
	in.Time = "9 am"

	_, err := uc.Execute(context.Background(), in, testNow)
	assert.True(t, httperr.IsBusiness(err, "invalid_date_or_time"))
}

func TestCreateReservation_MenuNotFound(t *testing.T) {
	repo := newFakeRepo()
	uc := NewCreateReservation(repo, nil)

	in := validInput()
	in.MenuID = 999

	_, err := uc.Execute(context.Background(), in, testNow)
	assert.True(t, httperr.IsBusiness(err, "menu_not_found"))
}

func TestCreateReservation_SlotUnavailable(t *testing.T) {
	repo := newFakeRepo()
	uc := NewCreateReservation(repo, nil)

	_, err := uc.Execute(context.Background(), validInput(), testNow)
	require.NoError(t, err)

	// overlapping request for the same stylist
	in := validInput()
	in.Time = "10:30"
	_, err = uc.Execute(context.Background(), in, testNow)
	assert.True(t, httperr.IsBusiness(err, "slot_unavailable"))

	// back-to-back is fine
	in.Time = "11:00"
	_, err = uc.Execute(context.Background(), in, testNow)
	assert.NoError(t, err)
}

func TestCreateReservation_CancelledSlotIsFree(t *testing.T) {
	repo := newFakeRepo()
	uc := NewCreateReservation(repo, nil)

	first, err := uc.Execute(context.Background(), validInput(), testNow)
	require.NoError(t, err)

	require.NoError(t, domain.Cancel(first, testNow))

	// same slot again, previous booking cancelled
	_, err = uc.Execute(context.Background(), validInput(), testNow)
	assert.NoError(t, err)
}
