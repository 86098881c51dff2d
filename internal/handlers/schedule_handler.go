package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domain "github.com/salonlink/salon-scheduler/internal/domain/reservation"
	"github.com/salonlink/salon-scheduler/internal/httpresp"
	"github.com/salonlink/salon-scheduler/internal/middleware"
	"github.com/salonlink/salon-scheduler/internal/models"
)

type ScheduleHandler struct {
	db *gorm.DB
}

func NewScheduleHandler(db *gorm.DB) *ScheduleHandler {
	return &ScheduleHandler{db: db}
}

type WorkingDayConfig struct {
	Weekday   int    `json:"weekday" binding:"min=0,max=6"`
	Active    bool   `json:"active"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

type ScheduleUpdateRequest struct {
	Days []WorkingDayConfig `json:"days" binding:"required"`
}

func (h *ScheduleHandler) Get(c *gin.Context) {
	stylistID := c.MustGet(middleware.ContextUserID).(uint)

	var rows []models.WorkingSchedule
	if err := h.db.
		Where("stylist_id = ?", stylistID).
		Order("weekday ASC").
		Find(&rows).Error; err != nil {

		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_get_schedule"})
		return
	}

	httpresp.OK(c, rows)
}

// Update replaces the stylist's whole weekly schedule. Active rows go
// through the domain window validation so a start >= end or malformed
// time never reaches the booking path.
func (h *ScheduleHandler) Update(c *gin.Context) {
	stylistID := c.MustGet(middleware.ContextUserID).(uint)

	var req ScheduleUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	for _, d := range req.Days {
		if !d.Active {
			continue
		}

		start, err := domain.ParseClock(d.StartTime)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_time_format", "weekday": d.Weekday})
			return
		}
		end, err := domain.ParseClock(d.EndTime)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_time_format", "weekday": d.Weekday})
			return
		}

		win := domain.Window{Start: start, End: end}
		if err := win.Validate(); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_schedule_window", "weekday": d.Weekday})
			return
		}
	}

	var toCreate []models.WorkingSchedule
	for _, d := range req.Days {
		toCreate = append(toCreate, models.WorkingSchedule{
			StylistID: stylistID,
			Weekday:   d.Weekday,
			Active:    d.Active,
			StartTime: d.StartTime,
			EndTime:   d.EndTime,
		})
	}

	// Delete and re-create atomically so a failed insert cannot leave
	// the stylist without a schedule.
	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("stylist_id = ?", stylistID).Delete(&models.WorkingSchedule{}).Error; err != nil {
			return err
		}
		if len(toCreate) > 0 {
			return tx.Create(&toCreate).Error
		}
		return nil
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_save_schedule"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
