package models

import "time"

type Shop struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"size:100;not null" json:"name"`
	Slug string `gorm:"size:100;uniqueIndex;not null" json:"slug"`

	Phone   string `gorm:"size:20" json:"phone"`
	Address string `gorm:"size:255" json:"address"`

	AreaID *uint `json:"area_id"`
	Area   *Area `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"area,omitempty"`

	Tags []Tag `gorm:"many2many:shop_tags;" json:"tags,omitempty"`

	Timezone          string `gorm:"size:50" json:"timezone"`
	MinAdvanceMinutes int    `gorm:"default:120" json:"min_advance_minutes"`

	PhotoURL string `gorm:"size:255" json:"photo_url"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
