package models

import "time"

type BookingStatus string

const (
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
)

// Booking represents a booking record held by the catalog.
type Booking struct {
	BookingID    string        `json:"booking_id"` // "BK" + 8 upper hex chars
	SlotID       string        `json:"slot_id"`
	CustomerName string        `json:"customer_name"`
	Contact      string        `json:"contact"`
	Service      string        `json:"service"`
	Date         string        `json:"date"`
	Time         string        `json:"time"`
	Duration     string        `json:"duration"`
	Price        string        `json:"price"`
	Status       BookingStatus `json:"status"`
	CreatedAt    time.Time     `json:"created_at"`
	CancelledAt  *time.Time    `json:"cancelled_at,omitempty"`
}

// BookingRequest is the input of the atomic book-slot mutation.
type BookingRequest struct {
	SlotID       string `json:"slot_id" binding:"required"`
	Service      string `json:"service"`
	CustomerName string `json:"customer_name" binding:"required"`
	Contact      string `json:"contact" binding:"required"`
}

// BookingResult reports the outcome of a book-slot mutation.
type BookingResult struct {
	Success   bool     `json:"success"`
	BookingID string   `json:"booking_id,omitempty"`
	Booking   *Booking `json:"booking,omitempty"`
	Error     string   `json:"error,omitempty"`
}
