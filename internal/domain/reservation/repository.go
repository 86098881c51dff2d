package reservation

import (
	"context"
	"time"

	"github.com/salonlink/salon-scheduler/internal/models"
)

type Repository interface {
	// -------- Shop --------
	GetShopByID(
		ctx context.Context,
		id uint,
	) (*models.Shop, error)

	GetShopBySlug(
		ctx context.Context,
		slug string,
	) (*models.Shop, error)

	// -------- Menu --------
	GetMenu(
		ctx context.Context,
		shopID uint,
		menuID uint,
	) (*models.Menu, error)

	// -------- Client --------
	GetOrCreateClient(
		ctx context.Context,
		shopID uint,
		name string,
		phone string,
		email string,
	) (*models.Client, error)

	// -------- Reservation (create, atomic with conflict check) --------
	CreateReservationIfFree(
		ctx context.Context,
		r *models.Reservation,
	) error

	// -------- Reservation (state change) --------
	GetReservationForStylist(
		ctx context.Context,
		reservationID uint,
		stylistID uint,
	) (*models.Reservation, error)

	GetReservationByCode(
		ctx context.Context,
		shopID uint,
		code string,
	) (*models.Reservation, error)

	UpdateReservation(
		ctx context.Context,
		r *models.Reservation,
	) error

	// -------- Reservation (queries) --------
	ListBookedSlots(
		ctx context.Context,
		stylistID uint,
		start time.Time,
		end time.Time,
	) ([]BookedSlot, error)

	ListReservationsForPeriod(
		ctx context.Context,
		stylistID uint,
		start time.Time,
		end time.Time,
	) ([]models.Reservation, error)

	// -------- Working schedule --------
	GetWorkingSchedule(
		ctx context.Context,
		stylistID uint,
		weekday int,
	) (*models.WorkingSchedule, error)

	// -------- Lifecycle sweep --------
	SweepExpired(
		ctx context.Context,
		asOf time.Time,
	) (int64, error)
}
