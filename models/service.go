package models

// Service represents a bookable service offered by the salon.
// Duration and Price are display strings, e.g. "45 minutes" and "₹500" or "Contact for pricing".
type Service struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Duration    string `json:"duration"`
	Price       string `json:"price"`
}
