package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/salonlink/salon-scheduler/internal/httperr"
	"github.com/salonlink/salon-scheduler/internal/models"
	"github.com/salonlink/salon-scheduler/internal/timezone"
	ucReservation "github.com/salonlink/salon-scheduler/internal/usecase/reservation"
	ucShop "github.com/salonlink/salon-scheduler/internal/usecase/shop"
)

////////////////////////////////////////////////////////
// HANDLER
////////////////////////////////////////////////////////

type PublicHandler struct {
	db             *gorm.DB
	createUC       *ucReservation.CreateReservation
	availabilityUC *ucReservation.GetAvailability
	popularUC      *ucShop.ListPopular
}

func NewPublicHandler(
	db *gorm.DB,
	createUC *ucReservation.CreateReservation,
	availabilityUC *ucReservation.GetAvailability,
	popularUC *ucShop.ListPopular,
) *PublicHandler {
	return &PublicHandler{
		db:             db,
		createUC:       createUC,
		availabilityUC: availabilityUC,
		popularUC:      popularUC,
	}
}

////////////////////////////////////////////////////////
// SHOPS
////////////////////////////////////////////////////////

func (h *PublicHandler) SearchShops(c *gin.Context) {
	area := strings.TrimSpace(c.Query("area"))
	tag := strings.TrimSpace(c.Query("tag"))
	query := strings.TrimSpace(strings.ToLower(c.Query("query")))

	q := h.db.Model(&models.Shop{}).
		Preload("Area").
		Preload("Tags")

	if area != "" {
		q = q.Joins("JOIN areas ON areas.id = shops.area_id").
			Where("areas.name = ?", area)
	}

	if tag != "" {
		q = q.Joins("JOIN shop_tags ON shop_tags.shop_id = shops.id").
			Joins("JOIN tags ON tags.id = shop_tags.tag_id").
			Where("tags.name = ?", tag)
	}

	if query != "" {
		like := "%" + query + "%"
		q = q.Where("LOWER(shops.name) LIKE ? OR LOWER(shops.address) LIKE ?", like, like)
	}

	var shops []models.Shop
	if err := q.Order("shops.id ASC").Find(&shops).Error; err != nil {
		httperr.Internal(c, "failed_to_search_shops", "Could not search shops.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"shops": shops,
		"total": len(shops),
	})
}

func (h *PublicHandler) PopularShops(c *gin.Context) {
	limit := 10
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 50 {
			limit = n
		}
	}

	shops, err := h.popularUC.Execute(c.Request.Context(), limit)
	if err != nil {
		httperr.Internal(c, "failed_to_list_popular_shops", "Could not list popular shops.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"shops": shops})
}

////////////////////////////////////////////////////////
// MENUS
////////////////////////////////////////////////////////

func (h *PublicHandler) ListMenus(c *gin.Context) {
	slug := c.Param("slug")

	var shop models.Shop
	if err := h.db.Where("slug = ?", slug).First(&shop).Error; err != nil {
		httperr.NotFound(c, "shop_not_found", "Shop not found.")
		return
	}

	category := strings.TrimSpace(strings.ToLower(c.Query("category")))
	query := strings.TrimSpace(strings.ToLower(c.Query("query")))

	q := h.db.
		Where("shop_id = ? AND active = true", shop.ID)

	if category != "" {
		q = q.Where("LOWER(category) = ?", category)
	}

	if query != "" {
		like := "%" + query + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", like, like)
	}

	var menus []models.Menu
	if err := q.Order("id ASC").Find(&menus).Error; err != nil {
		httperr.Internal(c, "failed_to_list_menus", "Could not list menus.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"shop":  shop,
		"menus": menus,
	})
}

////////////////////////////////////////////////////////
// AVAILABILITY
////////////////////////////////////////////////////////

func (h *PublicHandler) Availability(c *gin.Context) {
	slug := c.Param("slug")
	dateStr := c.Query("date")
	menuIDStr := c.Query("menu_id")

	if dateStr == "" || menuIDStr == "" {
		httperr.BadRequest(c, "missing_params", "Date and menu are required.")
		return
	}

	menuID, err := strconv.ParseUint(menuIDStr, 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_menu_id", "Invalid menu.")
		return
	}

	var shop models.Shop
	if err := h.db.Where("slug = ?", slug).First(&shop).Error; err != nil {
		httperr.NotFound(c, "shop_not_found", "Shop not found.")
		return
	}

	stylist, err := h.resolveStylist(c, &shop)
	if err != nil {
		httperr.NotFound(c, "stylist_not_found", "Stylist not found.")
		return
	}

	date, err := time.ParseInLocation("2006-01-02", dateStr, timezone.Location(shop.Timezone))
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Invalid date.")
		return
	}

	slots, err := h.availabilityUC.Execute(c.Request.Context(), ucReservation.AvailabilityInput{
		ShopID:    shop.ID,
		StylistID: stylist.ID,
		MenuID:    uint(menuID),
		Date:      date,
	})
	if err != nil {
		if httperr.IsBusiness(err, "menu_not_found") {
			httperr.NotFound(c, "menu_not_found", "Menu not found.")
			return
		}
		httperr.Internal(c, "failed_to_get_availability", "Could not compute availability.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"date":       dateStr,
		"stylist_id": stylist.ID,
		"slots":      slots,
	})
}

// resolveStylist honors an explicit stylist_id and otherwise falls back
// to the shop's first staff member.
func (h *PublicHandler) resolveStylist(c *gin.Context, shop *models.Shop) (*models.User, error) {
	var stylist models.User

	if v := c.Query("stylist_id"); v != "" {
		id, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return nil, err
		}
		if err := h.db.
			Where("id = ? AND shop_id = ?", id, shop.ID).
			First(&stylist).Error; err != nil {
			return nil, err
		}
		return &stylist, nil
	}

	if err := h.db.
		Where("shop_id = ?", shop.ID).
		Order("id ASC").
		First(&stylist).Error; err != nil {
		return nil, err
	}
	return &stylist, nil
}

////////////////////////////////////////////////////////
// RESERVATIONS
////////////////////////////////////////////////////////

type PublicCreateReservationRequest struct {
	ClientName  string `json:"client_name" binding:"required"`
	ClientPhone string `json:"client_phone" binding:"required"`
	ClientEmail string `json:"client_email"`
	StylistID   uint   `json:"stylist_id"`
	MenuID      uint   `json:"menu_id" binding:"required"`
	Date        string `json:"date" binding:"required"` // YYYY-MM-DD
	Time        string `json:"time" binding:"required"` // HH:MM
	Notes       string `json:"notes"`
}

func (h *PublicHandler) CreateReservation(c *gin.Context) {
	slug := c.Param("slug")

	var shop models.Shop
	if err := h.db.Where("slug = ?", slug).First(&shop).Error; err != nil {
		httperr.NotFound(c, "shop_not_found", "Shop not found.")
		return
	}

	var req PublicCreateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid payload.")
		return
	}

	stylistID := req.StylistID
	if stylistID == 0 {
		stylist, err := h.resolveStylist(c, &shop)
		if err != nil {
			httperr.NotFound(c, "stylist_not_found", "Stylist not found.")
			return
		}
		stylistID = stylist.ID
	} else {
		var count int64
		h.db.Model(&models.User{}).
			Where("id = ? AND shop_id = ?", stylistID, shop.ID).
			Count(&count)
		if count == 0 {
			httperr.NotFound(c, "stylist_not_found", "Stylist not found.")
			return
		}
	}

	res, err := h.createUC.Execute(c.Request.Context(), ucReservation.CreateReservationInput{
		ShopID:      shop.ID,
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

	c.JSON(http.StatusCreated, gin.H{
		"code":      res.Code,
		"starts_at": res.StartsAt,
		"ends_at":   res.EndsAt,
		"status":    res.Status,
	})
}
