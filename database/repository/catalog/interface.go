// File: database/repository/catalog/interface.go
package catalogRepo

import (
	"time"

	"jusbook/models"
)

// CatalogRepository is the booking store consumed by the chat engine and the HTTP layer.
// Implementations must make BookSlot and CancelBooking atomic: at most one confirmed
// booking may exist per slot.
type CatalogRepository interface {
	ListServices() []models.Service
	GetService(name string) (models.Service, bool)
	StaffOptions() []string
	DailyTimes() []string
	AvailableTimes(date string) []string

	ListAvailableSlots(filter models.SlotFilter) []models.Slot
	GetSlot(slotID string) (models.Slot, error)
	FindOrCreateSlot(service, date, timeOfDay string) (models.Slot, error)
	BookSlot(req models.BookingRequest) models.BookingResult

	GetBooking(bookingID string) (models.Booking, error)
	CancelBooking(bookingID string) (models.Booking, error)
	CustomerBookings(contact string) []models.Booking
	DailySchedule(date string) []models.Booking
	Statistics() models.Statistics

	ListUpcomingEvents() []models.Event
	GetContactInfo() models.ContactInfo

	// RefreshWindow seeds any missing days of the rolling slot window starting at now.
	// It returns the number of slots added.
	RefreshWindow(now time.Time) int
}
