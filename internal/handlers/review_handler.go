package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domain "github.com/salonlink/salon-scheduler/internal/domain/reservation"
	"github.com/salonlink/salon-scheduler/internal/httperr"
	"github.com/salonlink/salon-scheduler/internal/models"
)

type ReviewHandler struct {
	db *gorm.DB
}

func NewReviewHandler(db *gorm.DB) *ReviewHandler {
	return &ReviewHandler{db: db}
}

type CreateReviewRequest struct {
	ReservationCode string `json:"reservation_code" binding:"required"`
	Rating          int    `json:"rating" binding:"required,min=1,max=5"`
	Comment         string `json:"comment"`
}

// Create accepts a review against a completed visit, referenced by the
// reservation code handed out at booking time. One review per visit.
func (h *ReviewHandler) Create(c *gin.Context) {
	slug := c.Param("slug")

	var shop models.Shop
	if err := h.db.Where("slug = ?", slug).First(&shop).Error; err != nil {
		httperr.NotFound(c, "shop_not_found", "Shop not found.")
		return
	}

	var req CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid payload.")
		return
	}

	var res models.Reservation
	if err := h.db.
		Where("shop_id = ? AND code = ?", shop.ID, req.ReservationCode).
		First(&res).Error; err != nil {
		httperr.NotFound(c, "reservation_not_found", "Reservation not found.")
		return
	}

	if res.Status != string(domain.StatusCompleted) {
		httperr.BadRequest(c, "reservation_not_completed", "Only completed visits can be reviewed.")
		return
	}

	var count int64
	h.db.Model(&models.Review{}).Where("reservation_id = ?", res.ID).Count(&count)
	if count > 0 {
		httperr.BadRequest(c, "already_reviewed", "This visit has already been reviewed.")
		return
	}

	review := models.Review{
		ShopID:        shop.ID,
		ReservationID: res.ID,
		ClientID:      res.ClientID,
		Rating:        req.Rating,
		Comment:       req.Comment,
	}

	if err := h.db.Create(&review).Error; err != nil {
		// a racing duplicate gets past the count check and hits the
		// unique index on reservation_id
		if httperr.IsUniqueViolation(err) {
			httperr.BadRequest(c, "already_reviewed", "This visit has already been reviewed.")
			return
		}
		httperr.Internal(c, "failed_to_create_review", "Could not save review.")
		return
	}

	c.JSON(http.StatusCreated, review)
}

func (h *ReviewHandler) List(c *gin.Context) {
	slug := c.Param("slug")

	var shop models.Shop
	if err := h.db.Where("slug = ?", slug).First(&shop).Error; err != nil {
		httperr.NotFound(c, "shop_not_found", "Shop not found.")
		return
	}

	var reviews []models.Review
	if err := h.db.
		Where("shop_id = ?", shop.ID).
		Order("created_at DESC").
		Limit(100).
		Find(&reviews).Error; err != nil {
		httperr.Internal(c, "failed_to_list_reviews", "Could not list reviews.")
		return
	}

	var avg float64
	h.db.Model(&models.Review{}).
		Where("shop_id = ?", shop.ID).
		Select("COALESCE(AVG(rating), 0)").
		Scan(&avg)

	c.JSON(http.StatusOK, gin.H{
		"reviews":    reviews,
		"total":      len(reviews),
		"avg_rating": avg,
	})
}
