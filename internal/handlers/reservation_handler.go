package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/salonlink/salon-scheduler/internal/httperr"
	"github.com/salonlink/salon-scheduler/internal/middleware"
	ucReservation "github.com/salonlink/salon-scheduler/internal/usecase/reservation"
)

// ======================================================
// HANDLER
// ======================================================

type ReservationHandler struct {
	createUC   *ucReservation.CreateReservation
	completeUC *ucReservation.CompleteReservation
	cancelUC   *ucReservation.CancelReservation
	listDateUC *ucReservation.ListReservationsByDate
	listMonth  *ucReservation.ListReservationsByMonth
}

func NewReservationHandler(
	createUC *ucReservation.CreateReservation,
	completeUC *ucReservation.CompleteReservation,
	cancelUC *ucReservation.CancelReservation,
	listDateUC *ucReservation.ListReservationsByDate,
	listMonth *ucReservation.ListReservationsByMonth,
) *ReservationHandler {
	return &ReservationHandler{
		createUC:   createUC,
		completeUC: completeUC,
		cancelUC:   cancelUC,
		listDateUC: listDateUC,
		listMonth:  listMonth,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateReservationRequest struct {
	ClientName  string `json:"client_name" binding:"required"`
	ClientPhone string `json:"client_phone" binding:"required"`
	ClientEmail string `json:"client_email"`
	MenuID      uint   `json:"menu_id" binding:"required"`
	Date        string `json:"date" binding:"required"` // YYYY-MM-DD
	Time        string `json:"time" binding:"required"` // HH:MM
	Notes       string `json:"notes"`
}

// ======================================================
// CREATE
// ======================================================

func (h *ReservationHandler) Create(c *gin.Context) {
	stylistID := c.MustGet(middleware.ContextUserID).(uint)
	shopID := c.MustGet(middleware.ContextShopID).(uint)

	var req CreateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid payload.")
		return
	}

	res, err := h.createUC.Execute(c.Request.Context(), ucReservation.CreateReservationInput{
		ShopID:      shopID,
		StylistID:   stylistID,
		ClientName:  req.ClientName,
		ClientPhone: req.ClientPhone,
		ClientEmail: req.ClientEmail,
		MenuID:      req.MenuID,
		Date:        req.Date,
		Time:        req.Time,
		Notes:       req.Notes,
	}, time.Now())

	if err != nil {
		writeReservationError(c, err)
		return
	}

	c.JSON(http.StatusCreated, res)
}

// writeReservationError maps the booking business codes onto HTTP. Each
// one is a final answer for the client, never retried server-side.
func writeReservationError(c *gin.Context, err error) {
	switch {
	case httperr.IsBusiness(err, "shop_not_found"):
		httperr.NotFound(c, "shop_not_found", "Shop not found.")
	case httperr.IsBusiness(err, "menu_not_found"):
		httperr.NotFound(c, "menu_not_found", "Menu not found.")
	case httperr.IsBusiness(err, "invalid_date_or_time"),
		httperr.IsBusiness(err, "invalid_time_format"):
		httperr.BadRequest(c, "invalid_date_or_time", "Invalid date or time.")
	case httperr.IsBusiness(err, "too_soon"):
		httperr.BadRequest(c, "too_soon", "The slot is too close or in the past.")
	case httperr.IsBusiness(err, "outside_working_hours"):
		httperr.BadRequest(c, "outside_working_hours", "Outside working hours.")
	case httperr.IsBusiness(err, "slot_unavailable"):
		httperr.Conflict(c, "slot_unavailable", "The slot is already taken.")
	default:
		httperr.Internal(c, "failed_to_create_reservation", "Could not create reservation.")
	}
}

// ======================================================
// LIST
// ======================================================

func (h *ReservationHandler) ListByDate(c *gin.Context) {
	stylistID := c.MustGet(middleware.ContextUserID).(uint)
	shopID := c.MustGet(middleware.ContextShopID).(uint)

	dateStr := c.Query("date")
	if dateStr == "" {
		httperr.BadRequest(c, "missing_date", "Date is required.")
		return
	}

	date, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Invalid date.")
		return
	}

	out, err := h.listDateUC.Execute(c.Request.Context(), stylistID, shopID, date)
	if err != nil {
		httperr.Internal(c, "failed_to_list_reservations", "Could not list reservations.")
		return
	}

	c.JSON(http.StatusOK, out)
}

func (h *ReservationHandler) ListByMonth(c *gin.Context) {
	stylistID := c.MustGet(middleware.ContextUserID).(uint)
	shopID := c.MustGet(middleware.ContextShopID).(uint)

	year, err := strconv.Atoi(c.Query("year"))
	if err != nil || year < 2000 || year > 2100 {
		httperr.BadRequest(c, "invalid_year", "Invalid year.")
		return
	}

	month, err := strconv.Atoi(c.Query("month"))
	if err != nil || month < 1 || month > 12 {
		httperr.BadRequest(c, "invalid_month", "Invalid month.")
		return
	}

	out, err := h.listMonth.Execute(c.Request.Context(), stylistID, shopID, year, month)
	if err != nil {
		httperr.Internal(c, "failed_to_list_reservations", "Could not list reservations.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"year":         year,
		"month":        month,
		"reservations": out,
	})
}

// ======================================================
// COMPLETE / CANCEL
// ======================================================

func (h *ReservationHandler) Complete(c *gin.Context) {
	stylistID := c.MustGet(middleware.ContextUserID).(uint)
	shopID := c.MustGet(middleware.ContextShopID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid reservation id.")
		return
	}

	res, err := h.completeUC.Execute(c.Request.Context(), shopID, stylistID, uint(id), time.Now())
	if err != nil {
		switch {
		case httperr.IsBusiness(err, "reservation_not_found"):
			httperr.NotFound(c, "reservation_not_found", "Reservation not found.")
		case httperr.IsBusiness(err, "invalid_state"):
			httperr.BadRequest(c, "invalid_state", "Reservation cannot be completed.")
		default:
			httperr.Internal(c, "failed_to_complete_reservation", "Could not complete reservation.")
		}
		return
	}

	c.JSON(http.StatusOK, res)
}

func (h *ReservationHandler) Cancel(c *gin.Context) {
	stylistID := c.MustGet(middleware.ContextUserID).(uint)
	shopID := c.MustGet(middleware.ContextShopID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid reservation id.")
		return
	}

	res, err := h.cancelUC.Execute(c.Request.Context(), shopID, stylistID, uint(id), time.Now())
	if err != nil {
		switch {
		case httperr.IsBusiness(err, "reservation_not_found"):
			httperr.NotFound(c, "reservation_not_found", "Reservation not found.")
		case httperr.IsBusiness(err, "invalid_state"):
			httperr.BadRequest(c, "invalid_state", "Reservation cannot be cancelled.")
		default:
			httperr.Internal(c, "failed_to_cancel_reservation", "Could not cancel reservation.")
		}
		return
	}

	c.JSON(http.StatusOK, res)
}
