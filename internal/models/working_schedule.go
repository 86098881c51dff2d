package models

import "time"

// WorkingSchedule is one weekday row of a stylist's recurring availability.
// StartTime/EndTime are wall-clock "HH:MM" strings in the shop's timezone.
type WorkingSchedule struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	StylistID uint `gorm:"index:idx_schedule_stylist_weekday,unique" json:"stylist_id"`

	Weekday int `gorm:"index:idx_schedule_stylist_weekday,unique" json:"weekday"`

	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Active    bool   `json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
