package dto

import "time"

type ReservationListDTO struct {
	ID         uint      `json:"id"`
	Code       string    `json:"code"`
	StartsAt   time.Time `json:"starts_at"`
	EndsAt     time.Time `json:"ends_at"`
	Status     string    `json:"status"`
	ClientName string    `json:"client_name"`
	MenuName   string    `json:"menu_name"`
}
