package models

import "time"

// Business is the JSON form of a directory listing. Distance and Direction
// are only present when the listing was ranked against a reference point.
type Business struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Category    string    `json:"category"`
	Location    string    `json:"location"`
	Description string    `json:"description"`
	Phone       string    `json:"phone"`
	WhatsApp    string    `json:"whatsapp"`
	Hours       string    `json:"hours"`
	Image       *string   `json:"image"`
	Rating      float64   `json:"rating"`
	ReviewCount int       `json:"review_count"`
	Latitude    *float64  `json:"latitude"`
	Longitude   *float64  `json:"longitude"`
	CreatedAt   time.Time `json:"created_at"`
	Distance    *float64  `json:"distance,omitempty"` // kilometers
	Direction   string    `json:"direction,omitempty"`
}

// CreateBusinessRequest is the body accepted by POST /api/businesses.
type CreateBusinessRequest struct {
	Name        string   `json:"name"`
	Category    string   `json:"category"`
	Location    string   `json:"location"`
	Description string   `json:"description"`
	Phone       string   `json:"phone"`
	WhatsApp    string   `json:"whatsapp"`
	Hours       string   `json:"hours"`
	Image       *string  `json:"image"`
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`
}

type Category struct {
	Name        string `json:"name"`
	DisplayName string `json:"displayName"`
	Icon        string `json:"icon"`
}

type Message struct {
	Message string `json:"message"`
}

type Health struct {
	Status     string `json:"status"`
	Businesses int    `json:"businesses"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type FieldErrorsResponse struct {
	FieldErrors map[string][]string `json:"fieldErrors"`
}
