package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/salonlink/salon-scheduler/internal/httperr"
	"github.com/salonlink/salon-scheduler/internal/httpresp"
	"github.com/salonlink/salon-scheduler/internal/middleware"
	"github.com/salonlink/salon-scheduler/internal/models"
	"github.com/salonlink/salon-scheduler/internal/storage"
)

type StylistHandler struct {
	db     *gorm.DB
	images *storage.ImageStore
}

func NewStylistHandler(db *gorm.DB, images *storage.ImageStore) *StylistHandler {
	return &StylistHandler{db: db, images: images}
}

type CreateStylistRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Phone    string `json:"phone"`
	Bio      string `json:"bio"`
}

type stylistDTO struct {
	ID       uint   `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Bio      string `json:"bio"`
	PhotoURL string `json:"photo_url"`
}

func (h *StylistHandler) List(c *gin.Context) {
	shopID := c.MustGet(middleware.ContextShopID).(uint)

	var stylists []models.User
	if err := h.db.
		Where("shop_id = ?", shopID).
		Order("id ASC").
		Find(&stylists).Error; err != nil {
		httperr.Internal(c, "failed_to_list_stylists", "Could not list stylists.")
		return
	}

	out := make([]stylistDTO, 0, len(stylists))
	for _, s := range stylists {
		out = append(out, stylistDTO{
			ID:       s.ID,
			Name:     s.Name,
			Email:    s.Email,
			Phone:    s.Phone,
			Bio:      s.Bio,
			PhotoURL: s.PhotoURL,
		})
	}

	httpresp.List(c, out)
}

func (h *StylistHandler) Create(c *gin.Context) {
	shopID := c.MustGet(middleware.ContextShopID).(uint)
	role := c.MustGet(middleware.ContextUserRole).(string)

	if role != "owner" {
		httperr.Unauthorized(c, "owner_only", "Only the owner can add stylists.")
		return
	}

	var req CreateStylistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid payload.")
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var count int64
	h.db.Model(&models.User{}).Where("email = ?", email).Count(&count)
	if count > 0 {
		httperr.BadRequest(c, "email_already_exists", "E-mail already registered.")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		httperr.Internal(c, "failed_to_hash_password", "Could not create stylist.")
		return
	}

	stylist := models.User{
		ShopID:       shopID,
		Name:         req.Name,
		Email:        email,
		PasswordHash: string(hashed),
		Phone:        req.Phone,
		Bio:          req.Bio,
		Role:         "stylist",
	}

	if err := h.db.Create(&stylist).Error; err != nil {
		httperr.Internal(c, "failed_to_create_stylist", "Could not create stylist.")
		return
	}

	c.JSON(http.StatusCreated, stylistDTO{
		ID:    stylist.ID,
		Name:  stylist.Name,
		Email: stylist.Email,
		Phone: stylist.Phone,
		Bio:   stylist.Bio,
	})
}

func (h *StylistHandler) UploadPhoto(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	shopID := c.MustGet(middleware.ContextShopID).(uint)

	var stylist models.User
	if err := h.db.
		Where("id = ? AND shop_id = ?", userID, shopID).
		First(&stylist).Error; err != nil {
		httperr.NotFound(c, "stylist_not_found", "Stylist not found.")
		return
	}

	fileHeader, err := c.FormFile("photo")
	if err != nil {
		httperr.BadRequest(c, "missing_photo", "Photo file is required.")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		httperr.Internal(c, "failed_to_read_photo", "Could not read upload.")
		return
	}
	defer file.Close()

	url, err := h.images.UploadStylistPhoto(c.Request.Context(), stylist.ID, file)
	if err != nil {
		if httperr.IsBusiness(err, "invalid_image") {
			httperr.BadRequest(c, "invalid_image", "Unsupported image format.")
			return
		}
		httperr.Internal(c, "failed_to_upload_photo", "Could not store photo.")
		return
	}

	stylist.PhotoURL = url
	if err := h.db.Save(&stylist).Error; err != nil {
		httperr.Internal(c, "failed_to_update_stylist", "Could not update stylist.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"photo_url": url})
}
