package models

// Statistics is a point-in-time occupancy snapshot of the catalog.
type Statistics struct {
	TotalSlots      int            `json:"total_slots"`
	AvailableSlots  int            `json:"available_slots"`
	BookedSlots     int            `json:"booked_slots"`
	TotalBookings   int            `json:"total_bookings"`
	ServiceBookings map[string]int `json:"service_bookings"`
	OccupancyRate   float64        `json:"occupancy_rate"` // percent, two decimals
}
