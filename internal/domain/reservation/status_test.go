package reservation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salonlink/salon-scheduler/internal/httperr"
	"github.com/salonlink/salon-scheduler/internal/models"
)

func TestStatusGuards(t *testing.T) {
	assert.NoError(t, CanCancel(StatusReserved))
	assert.NoError(t, CanComplete(StatusReserved))

	// terminal states never move again
	for _, s := range []Status{StatusCompleted, StatusCancelled} {
		assert.True(t, httperr.IsBusiness(CanCancel(s), "invalid_state"))
		assert.True(t, httperr.IsBusiness(CanComplete(s), "invalid_state"))
	}
}

func TestCancel(t *testing.T) {
	now := time.Date(2026, time.April, 6, 12, 0, 0, 0, time.UTC)

	res := &models.Reservation{Status: string(StatusReserved)}
	require.NoError(t, Cancel(res, now))
	assert.Equal(t, string(StatusCancelled), res.Status)
	require.NotNil(t, res.CancelledAt)
	assert.Equal(t, now, *res.CancelledAt)

	// second cancel is rejected and leaves the row untouched
	err := Cancel(res, now.Add(time.Hour))
	assert.True(t, httperr.IsBusiness(err, "invalid_state"))
	assert.Equal(t, now, *res.CancelledAt)
}

func TestComplete(t *testing.T) {
	now := time.Date(2026, time.April, 6, 12, 0, 0, 0, time.UTC)

	res := &models.Reservation{Status: string(StatusReserved)}
	require.NoError(t, Complete(res, now))
	assert.Equal(t, string(StatusCompleted), res.Status)
	require.NotNil(t, res.CompletedAt)

	err := Complete(res, now)
	assert.True(t, httperr.IsBusiness(err, "invalid_state"))
}

func TestInitialStatus(t *testing.T) {
	assert.Equal(t, StatusReserved, InitialStatus())
}
