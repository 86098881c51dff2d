package reservation

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salonlink/salon-scheduler/internal/httperr"
)

func TestGetAvailability_OpenDay(t *testing.T) {
	repo := newFakeRepo()
	uc := NewGetAvailability(repo)

	slots, err := uc.Execute(context.Background(), AvailabilityInput{
		ShopID:    1,
		StylistID: 5,
		MenuID:    7,
		Date:      time.Date(2026, time.April, 6, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	// 09:00-18:00 in 60min steps
	require.Len(t, slots, 9)
	assert.Equal(t, TimeSlot{Start: "09:00", End: "10:00"}, slots[0])
	assert.Equal(t, TimeSlot{Start: "17:00", End: "18:00"}, slots[8])
}

func TestGetAvailability_BookedSlotRemoved(t *testing.T) {
	repo := newFakeRepo()
	create := NewCreateReservation(repo, nil)
	uc := NewGetAvailability(repo)

	_, err := create.Execute(context.Background(), validInput(), testNow)
	require.NoError(t, err)

	slots, err := uc.Execute(context.Background(), AvailabilityInput{
		ShopID:    1,
		StylistID: 5,
		MenuID:    7,
		Date:      time.Date(2026, time.April, 6, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	require.Len(t, slots, 8)
	for _, s := range slots {
		assert.NotEqual(t, "10:00", s.Start)
	}
}

func TestGetAvailability_ClosedDayIsEmpty(t *testing.T) {
	repo := newFakeRepo()
	uc := NewGetAvailability(repo)

	slots, err := uc.Execute(context.Background(), AvailabilityInput{
		ShopID:    1,
		StylistID: 5,
		MenuID:    7,
		Date:      time.Date(2026, time.April, 7, 0, 0, 0, 0, time.UTC), // Tuesday
	})
	require.NoError(t, err)
	assert.Empty(t, slots)
	assert.NotNil(t, slots)
}

func TestGetAvailability_MenuNotFound(t *testing.T) {
	repo := newFakeRepo()
	uc := NewGetAvailability(repo)

	_, err := uc.Execute(context.Background(), AvailabilityInput{
		ShopID:    1,
		StylistID: 5,
		MenuID:    999,
		Date:      time.Date(2026, time.April, 6, 0, 0, 0, 0, time.UTC),
	})
	assert.True(t, httperr.IsBusiness(err, "menu_not_found"))
}
