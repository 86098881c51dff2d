package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/salonlink/salon-scheduler/internal/httperr"
	"github.com/salonlink/salon-scheduler/internal/httpresp"
	"github.com/salonlink/salon-scheduler/internal/middleware"
	"github.com/salonlink/salon-scheduler/internal/models"
)

type MenuHandler struct {
	db *gorm.DB
}

func NewMenuHandler(db *gorm.DB) *MenuHandler {
	return &MenuHandler{db: db}
}

type CreateMenuRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	DurationMin int     `json:"duration_min" binding:"required,min=1"`
	Price       float64 `json:"price" binding:"min=0"`
	Category    string  `json:"category"`
}

type UpdateMenuRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	DurationMin *int     `json:"duration_min"`
	Price       *float64 `json:"price"`
	Category    *string  `json:"category"`
	Active      *bool    `json:"active"`
}

func (h *MenuHandler) List(c *gin.Context) {
	shopID := c.MustGet(middleware.ContextShopID).(uint)

	var menus []models.Menu
	if err := h.db.
		Where("shop_id = ?", shopID).
		Order("id ASC").
		Find(&menus).Error; err != nil {
		httperr.Internal(c, "failed_to_list_menus", "Could not list menus.")
		return
	}

	httpresp.List(c, menus)
}

func (h *MenuHandler) Create(c *gin.Context) {
	shopID := c.MustGet(middleware.ContextShopID).(uint)

	var req CreateMenuRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid payload.")
		return
	}

	menu := models.Menu{
		ShopID:      shopID,
		Name:        req.Name,
		Description: req.Description,
		DurationMin: req.DurationMin,
		Price:       req.Price,
		Category:    req.Category,
		Active:      true,
	}

	if err := h.db.Create(&menu).Error; err != nil {
		httperr.Internal(c, "failed_to_create_menu", "Could not create menu.")
		return
	}

	c.JSON(http.StatusCreated, menu)
}

func (h *MenuHandler) Update(c *gin.Context) {
	shopID := c.MustGet(middleware.ContextShopID).(uint)
	id := c.Param("id")

	var menu models.Menu
	if err := h.db.
		Where("id = ? AND shop_id = ?", id, shopID).
		First(&menu).Error; err != nil {
		httperr.NotFound(c, "menu_not_found", "Menu not found.")
		return
	}

	var req UpdateMenuRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid payload.")
		return
	}

	if req.Name != nil {
		menu.Name = *req.Name
	}
	if req.Description != nil {
		menu.Description = *req.Description
	}
	if req.DurationMin != nil {
		if *req.DurationMin <= 0 {
			httperr.BadRequest(c, "invalid_duration", "Duration must be positive.")
			return
		}
		menu.DurationMin = *req.DurationMin
	}
	if req.Price != nil {
		menu.Price = *req.Price
	}
	if req.Category != nil {
		menu.Category = *req.Category
	}
	if req.Active != nil {
		menu.Active = *req.Active
	}

	if err := h.db.Save(&menu).Error; err != nil {
		httperr.Internal(c, "failed_to_update_menu", "Could not update menu.")
		return
	}

	c.JSON(http.StatusOK, menu)
}
