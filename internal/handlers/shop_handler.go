package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/salonlink/salon-scheduler/internal/httperr"
	"github.com/salonlink/salon-scheduler/internal/middleware"
	"github.com/salonlink/salon-scheduler/internal/models"
	"github.com/salonlink/salon-scheduler/internal/storage"
	"github.com/salonlink/salon-scheduler/internal/timezone"
)

type ShopHandler struct {
	db     *gorm.DB
	images *storage.ImageStore
}

func NewShopHandler(db *gorm.DB, images *storage.ImageStore) *ShopHandler {
	return &ShopHandler{db: db, images: images}
}

type UpdateShopRequest struct {
	Name              *string `json:"name"`
	Phone             *string `json:"phone"`
	Address           *string `json:"address"`
	Timezone          *string `json:"timezone"`
	AreaID            *uint   `json:"area_id"`
	MinAdvanceMinutes *int    `json:"min_advance_minutes"`
	TagIDs            *[]uint `json:"tag_ids"`
}

func (h *ShopHandler) GetMeShop(c *gin.Context) {
	shopID := c.MustGet(middleware.ContextShopID).(uint)

	var shop models.Shop
	if err := h.db.Preload("Area").Preload("Tags").First(&shop, shopID).Error; err != nil {
		httperr.NotFound(c, "shop_not_found", "Shop not found.")
		return
	}

	c.JSON(http.StatusOK, shop)
}

func (h *ShopHandler) UpdateMeShop(c *gin.Context) {
	shopID := c.MustGet(middleware.ContextShopID).(uint)

	var shop models.Shop
	if err := h.db.First(&shop, shopID).Error; err != nil {
		httperr.NotFound(c, "shop_not_found", "Shop not found.")
		return
	}

	var req UpdateShopRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid payload.")
		return
	}

	if req.Name != nil {
		shop.Name = *req.Name
	}
	if req.Phone != nil {
		shop.Phone = *req.Phone
	}
	if req.Address != nil {
		shop.Address = *req.Address
	}
	if req.Timezone != nil {
		if !timezone.IsValid(*req.Timezone) {
			httperr.BadRequest(c, "invalid_timezone", "Unknown timezone.")
			return
		}
		shop.Timezone = *req.Timezone
	}
	if req.AreaID != nil {
		shop.AreaID = req.AreaID
	}
	if req.MinAdvanceMinutes != nil {
		shop.MinAdvanceMinutes = *req.MinAdvanceMinutes
	}

	if err := h.db.Save(&shop).Error; err != nil {
		httperr.Internal(c, "failed_to_update_shop", "Could not update shop.")
		return
	}

	if req.TagIDs != nil {
		var tags []models.Tag
		if len(*req.TagIDs) > 0 {
			if err := h.db.Where("id IN ?", *req.TagIDs).Find(&tags).Error; err != nil {
				httperr.Internal(c, "failed_to_update_tags", "Could not update tags.")
				return
			}
		}
		if err := h.db.Model(&shop).Association("Tags").Replace(tags); err != nil {
			httperr.Internal(c, "failed_to_update_tags", "Could not update tags.")
			return
		}
	}

	c.JSON(http.StatusOK, shop)
}

// UploadPhoto accepts a multipart "photo" file, re-encodes it and stores
// the public URL on the shop.
func (h *ShopHandler) UploadPhoto(c *gin.Context) {
	shopID := c.MustGet(middleware.ContextShopID).(uint)

	var shop models.Shop
	if err := h.db.First(&shop, shopID).Error; err != nil {
		httperr.NotFound(c, "shop_not_found", "Shop not found.")
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

	url, err := h.images.UploadShopPhoto(c.Request.Context(), shop.ID, file)
	if err != nil {
		if httperr.IsBusiness(err, "invalid_image") {
			httperr.BadRequest(c, "invalid_image", "Unsupported image format.")
			return
		}
		httperr.Internal(c, "failed_to_upload_photo", "Could not store photo.")
		return
	}

	shop.PhotoURL = url
	if err := h.db.Save(&shop).Error; err != nil {
		httperr.Internal(c, "failed_to_update_shop", "Could not update shop.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"photo_url": url})
}
