package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/salonlink/salon-scheduler/internal/domain/reservation"
	"github.com/salonlink/salon-scheduler/internal/httperr"
	"github.com/salonlink/salon-scheduler/internal/models"
)

type ReservationGormRepository struct {
	db *gorm.DB
}

func NewReservationGormRepository(db *gorm.DB) *ReservationGormRepository {
	return &ReservationGormRepository{db: db}
}

// --------------------------------------------------
// Shop
// --------------------------------------------------

func (r *ReservationGormRepository) GetShopByID(
	ctx context.Context,
	id uint,
) (*models.Shop, error) {

	var shop models.Shop
	if err := r.db.WithContext(ctx).First(&shop, id).Error; err != nil {
		return nil, err
	}
	return &shop, nil
}

func (r *ReservationGormRepository) GetShopBySlug(
	ctx context.Context,
	slug string,
) (*models.Shop, error) {

	var shop models.Shop
	if err := r.db.WithContext(ctx).
		Where("slug = ?", slug).
		First(&shop).Error; err != nil {
		return nil, err
	}
	return &shop, nil
}

// --------------------------------------------------
// Menu
// --------------------------------------------------

func (r *ReservationGormRepository) GetMenu(
	ctx context.Context,
	shopID uint,
	menuID uint,
) (*models.Menu, error) {

	var menu models.Menu
	if err := r.db.WithContext(ctx).
		Where("id = ? AND shop_id = ? AND active = true", menuID, shopID).
		First(&menu).Error; err != nil {
		return nil, err
	}
	return &menu, nil
}

// --------------------------------------------------
// Client
// --------------------------------------------------

func (r *ReservationGormRepository) GetOrCreateClient(
	ctx context.Context,
	shopID uint,
	name string,
	phone string,
	email string,
) (*models.Client, error) {

	var client models.Client
	err := r.db.WithContext(ctx).
		Where("shop_id = ? AND phone = ?", shopID, phone).
		First(&client).Error

	if err == nil {
		return &client, nil
	}

	client = models.Client{
		ShopID: shopID,
		Name:   name,
		Phone:  phone,
		Email:  email,
	}

	if err := r.db.WithContext(ctx).Create(&client).Error; err != nil {
		return nil, err
	}

	return &client, nil
}

// --------------------------------------------------
// Reservation (create)
// --------------------------------------------------

// CreateReservationIfFree runs the conflict check and the insert in one
// transaction. Conflicting rows are locked FOR UPDATE so a concurrent
// writer blocks until this transaction commits; the Postgres exclusion
// constraint catches anything that still slips through (other processes,
// direct writes). Both paths surface the same slot_unavailable code.
func (r *ReservationGormRepository) CreateReservationIfFree(
	ctx context.Context,
	res *models.Reservation,
) error {

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		var existing []models.Reservation
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Select("id", "starts_at", "ends_at", "status").
			Where(
				"stylist_id = ? AND status <> ? AND starts_at < ? AND ends_at > ?",
				res.StylistID,
				string(domain.StatusCancelled),
				res.EndsAt,
				res.StartsAt,
			).
			Find(&existing).Error; err != nil {
			return err
		}

		if domain.HasConflict(toBookedSlots(existing), domain.Slot{
			StartsAt: res.StartsAt,
			EndsAt:   res.EndsAt,
		}) {
			return httperr.ErrBusiness("slot_unavailable")
		}

		return tx.Create(res).Error
	})

	return mapSlotConstraintError(err)
}

// mapSlotConstraintError converts the exclusion-constraint (or unique)
// violation raised by an insert that raced past the in-transaction
// check into the same business error that check produces.
func mapSlotConstraintError(err error) error {
	if err != nil && httperr.IsExclusionConflict(err) {
		return httperr.ErrBusiness("slot_unavailable")
	}
	return err
}

func toBookedSlots(rows []models.Reservation) []domain.BookedSlot {
	slots := make([]domain.BookedSlot, 0, len(rows))
	for _, row := range rows {
		slots = append(slots, domain.BookedSlot{
			Slot: domain.Slot{
				StartsAt: row.StartsAt,
				EndsAt:   row.EndsAt,
			},
			Status: domain.Status(row.Status),
		})
	}
	return slots
}

// --------------------------------------------------
// Reservation (state change)
// --------------------------------------------------

func (r *ReservationGormRepository) GetReservationForStylist(
	ctx context.Context,
	reservationID uint,
	stylistID uint,
) (*models.Reservation, error) {

	var res models.Reservation
	if err := r.db.WithContext(ctx).
		Where("id = ? AND stylist_id = ?", reservationID, stylistID).
		First(&res).Error; err != nil {
		return nil, err
	}

	return &res, nil
}

func (r *ReservationGormRepository) GetReservationByCode(
	ctx context.Context,
	shopID uint,
	code string,
) (*models.Reservation, error) {

	var res models.Reservation
	if err := r.db.WithContext(ctx).
		Where("shop_id = ? AND code = ?", shopID, code).
		First(&res).Error; err != nil {
		return nil, err
	}

	return &res, nil
}

func (r *ReservationGormRepository) UpdateReservation(
	ctx context.Context,
	res *models.Reservation,
) error {
	return r.db.WithContext(ctx).Save(res).Error
}

// --------------------------------------------------
// Reservation (queries)
// --------------------------------------------------

func (r *ReservationGormRepository) ListBookedSlots(
	ctx context.Context,
	stylistID uint,
	start time.Time,
	end time.Time,
) ([]domain.BookedSlot, error) {

	var rows []models.Reservation
	if err := r.db.WithContext(ctx).
		Select("starts_at", "ends_at", "status").
		Where(
			"stylist_id = ? AND status <> ? AND starts_at >= ? AND starts_at < ?",
			stylistID, string(domain.StatusCancelled), start, end,
		).
		Order("starts_at ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	return toBookedSlots(rows), nil
}

func (r *ReservationGormRepository) ListReservationsForPeriod(
	ctx context.Context,
	stylistID uint,
	start time.Time,
	end time.Time,
) ([]models.Reservation, error) {

	var rows []models.Reservation

	err := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Menu").
		Where(
			"stylist_id = ? AND starts_at >= ? AND starts_at < ?",
			stylistID,
			start,
			end,
		).
		Order("starts_at ASC").
		Find(&rows).Error

	if err != nil {
		return nil, err
	}

	return rows, nil
}

// --------------------------------------------------
// Working schedule
// --------------------------------------------------

func (r *ReservationGormRepository) GetWorkingSchedule(
	ctx context.Context,
	stylistID uint,
	weekday int,
) (*models.WorkingSchedule, error) {

	var ws models.WorkingSchedule
	if err := r.db.WithContext(ctx).
		Where("stylist_id = ? AND weekday = ?", stylistID, weekday).
		First(&ws).Error; err != nil {
		return nil, err
	}

	return &ws, nil
}

// --------------------------------------------------
// Lifecycle sweep
// --------------------------------------------------

func (r *ReservationGormRepository) SweepExpired(
	ctx context.Context,
	asOf time.Time,
) (int64, error) {

	result := r.db.WithContext(ctx).
		Model(&models.Reservation{}).
		Where(
			"status = ? AND ends_at < ?",
			string(domain.StatusReserved),
			asOf,
		).
		Updates(map[string]any{
			"status":       string(domain.StatusCompleted),
			"completed_at": asOf,
		})

	return result.RowsAffected, result.Error
}

// Compile-time check
var _ domain.Repository = (*ReservationGormRepository)(nil)
