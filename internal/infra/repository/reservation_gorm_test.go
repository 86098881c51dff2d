package repository

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/salonlink/salon-scheduler/internal/httperr"
	"github.com/salonlink/salon-scheduler/internal/models"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 conn,
		PreferSimpleProtocol: true,
	}), &gorm.Config{})
	require.NoError(t, err)

	return gdb, mock
}

func testReservation() *models.Reservation {
	return &models.Reservation{
		Code:      "4b1c2c1e-0000-0000-0000-000000000000",
		ShopID:    1,
		StylistID: 5,
		ClientID:  3,
		MenuID:    7,
		StartsAt:  time.Date(2026, time.April, 6, 10, 0, 0, 0, time.UTC),
		EndsAt:    time.Date(2026, time.April, 6, 11, 0, 0, 0, time.UTC),
		Status:    "reserved",
	}
}

func TestCreateReservationIfFree_Success(t *testing.T) {
	gdb, mock := newMockDB(t)
	repo := NewReservationGormRepository(gdb)

	mock.ExpectBegin()
	mock.ExpectQuery(`FROM "reservations".*FOR UPDATE`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "starts_at", "ends_at", "status"}))
	mock.ExpectQuery(`INSERT INTO "reservations"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(42))
	mock.ExpectCommit()

	res := testReservation()
	require.NoError(t, repo.CreateReservationIfFree(context.Background(), res))
	assert.Equal(t, uint(42), res.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateReservationIfFree_LockedRowConflict(t *testing.T) {
	gdb, mock := newMockDB(t)
	repo := NewReservationGormRepository(gdb)

	res := testReservation()

	mock.ExpectBegin()
	mock.ExpectQuery(`FROM "reservations".*FOR UPDATE`).
		WillReturnRows(sqlmock.
			NewRows([]string{"id", "starts_at", "ends_at", "status"}).
			AddRow(9, res.StartsAt.Add(-30*time.Minute), res.StartsAt.Add(30*time.Minute), "reserved"))
	mock.ExpectRollback()

	err := repo.CreateReservationIfFree(context.Background(), res)
	assert.True(t, httperr.IsBusiness(err, "slot_unavailable"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

// Two writers racing for an empty slot lock nothing, so the second
// insert is stopped by the exclusion constraint instead of the
// in-transaction check. The caller must see the same business error
// either way.
func TestCreateReservationIfFree_ConstraintBackstop(t *testing.T) {
	gdb, mock := newMockDB(t)
	repo := NewReservationGormRepository(gdb)

	mock.ExpectBegin()
	mock.ExpectQuery(`FROM "reservations".*FOR UPDATE`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "starts_at", "ends_at", "status"}))
	mock.ExpectQuery(`INSERT INTO "reservations"`).
		WillReturnError(&pgconn.PgError{
			Code:           "23P01",
			ConstraintName: "reservations_slot_excl",
		})
	mock.ExpectRollback()

	err := repo.CreateReservationIfFree(context.Background(), testReservation())
	assert.True(t, httperr.IsBusiness(err, "slot_unavailable"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMapSlotConstraintError(t *testing.T) {
	exclusion := fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23P01"})
	assert.True(t, httperr.IsBusiness(mapSlotConstraintError(exclusion), "slot_unavailable"))

	unique := &pgconn.PgError{Code: "23505", ConstraintName: "idx_reservations_code"}
	assert.True(t, httperr.IsBusiness(mapSlotConstraintError(unique), "slot_unavailable"))

	assert.NoError(t, mapSlotConstraintError(nil))

	plain := errors.New("connection reset")
	assert.Equal(t, plain, mapSlotConstraintError(plain))
}
