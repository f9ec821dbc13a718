package models

// Event is a special salon event (workshop, demo, sale).
type Event struct {
	ID              string `json:"id"`
	Title           string `json:"title"`
	Date            string `json:"date"`
	Time            string `json:"time"`
	Description     string `json:"description"`
	BookingRequired bool   `json:"booking_required"`
	Price           string `json:"price"`
}
