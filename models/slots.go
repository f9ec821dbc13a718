package models

// Slot is a single bookable (date, time, service) unit of inventory.
type Slot struct {
	SlotID       string `json:"slot_id"`
	Date         string `json:"date"` // "YYYY-MM-DD"
	Day          string `json:"day"`  // e.g., "Monday"
	Time         string `json:"time"` // e.g., "10:00 AM"
	Service      string `json:"service"`
	Duration     string `json:"duration"`
	Available    bool   `json:"available"`
	Price        string `json:"price"`
	SpecialOffer string `json:"special_offer,omitempty"`
}

// SlotFilter narrows ListAvailableSlots. Zero values mean "no filter"; past days are never listed.
type SlotFilter struct {
	Date     string // exact "YYYY-MM-DD"
	Service  string // case-insensitive substring of the slot's service
	FromDate string // inclusive lower bound on Date
	Limit    int
}
