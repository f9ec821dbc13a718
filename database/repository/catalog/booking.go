package catalogRepo

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"jusbook/models"
)

// FindOrCreateSlot returns an available slot for (service, date, time). When none exists it
// repurposes an available slot at the same date and time for the requested service, and as a
// last resort synthesizes a new slot. Booking therefore never fails for lack of inventory.
func (r *MemoryCatalogRepo) FindOrCreateSlot(service, date, timeOfDay string) (models.Slot, error) {
	day, err := time.Parse(dateLayout, date)
	if err != nil {
		return models.Slot{}, fmt.Errorf("find or create slot: %w", ErrInvalidDate)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	svc, known := r.serviceByName(service)

	for _, s := range r.slots {
		if s.Available && s.Date == date && s.Time == timeOfDay && s.Service == service {
			return *s, nil
		}
	}

	for _, s := range r.slots {
		if s.Available && s.Date == date && s.Time == timeOfDay {
			s.Service = service
			if known {
				s.Duration = svc.Duration
				s.Price = svc.Price
			}
			r.logger.Debug("Repurposed slot",
				zap.String("slotID", s.SlotID),
				zap.String("service", service))
			return *s, nil
		}
	}

	slot := &models.Slot{
		SlotID:    r.uniqueSlotID(fmt.Sprintf("SL%s%03d", strings.ReplaceAll(date, "-", ""), len(r.slots))),
		Date:      date,
		Day:       day.Weekday().String(),
		Time:      timeOfDay,
		Service:   service,
		Duration:  "60 minutes",
		Available: true,
		Price:     "Contact for pricing",
	}
	if known {
		slot.Duration = svc.Duration
		slot.Price = svc.Price
	}
	r.insertSlot(slot)
	r.logger.Debug("Synthesized slot",
		zap.String("slotID", slot.SlotID),
		zap.String("date", date),
		zap.String("time", timeOfDay))
	return *slot, nil
}

// BookSlot atomically checks the slot, records a confirmed booking and marks the slot taken.
func (r *MemoryCatalogRepo) BookSlot(req models.BookingRequest) models.BookingResult {
	r.mu.Lock()
	defer r.mu.Unlock()

	slot, ok := r.slotIndex[req.SlotID]
	if !ok {
		return failedBooking(newBookingError("slotNotFound", ErrSlotNotFound, "Slot %s not found", req.SlotID))
	}
	if !slot.Available {
		return failedBooking(newBookingError("slotUnavailable", ErrSlotUnavailable, "Slot %s is no longer available", req.SlotID))
	}
	if slot.Date < r.now().Format(dateLayout) {
		return failedBooking(newBookingError("slotExpired", ErrSlotUnavailable, "Slot %s has already passed", req.SlotID))
	}
	if existing, taken := r.slotBooking[slot.SlotID]; taken {
		// Available with a confirmed booking would break the one-booking-per-slot invariant.
		r.logger.Error("Slot marked available but already booked",
			zap.String("slotID", slot.SlotID),
			zap.String("bookingID", existing))
		return failedBooking(newBookingError("slotUnavailable", ErrSlotUnavailable, "Slot %s is no longer available", req.SlotID))
	}

	service := req.Service
	if service == "" {
		service = slot.Service
	}

	booking := &models.Booking{
		BookingID:    r.newBookingID(),
		SlotID:       slot.SlotID,
		CustomerName: req.CustomerName,
		Contact:      req.Contact,
		Service:      service,
		Date:         slot.Date,
		Time:         slot.Time,
		Duration:     slot.Duration,
		Price:        slot.Price,
		Status:       models.BookingConfirmed,
		CreatedAt:    r.now(),
	}
	r.bookings[booking.BookingID] = booking
	r.slotBooking[slot.SlotID] = booking.BookingID
	slot.Available = false

	r.logger.Info("Slot booked",
		zap.String("bookingID", booking.BookingID),
		zap.String("slotID", slot.SlotID),
		zap.String("service", service))

	out := *booking
	return models.BookingResult{
		Success:   true,
		BookingID: booking.BookingID,
		Booking:   &out,
	}
}

// CancelBooking marks a confirmed booking cancelled and releases its slot.
func (r *MemoryCatalogRepo) CancelBooking(bookingID string) (models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.bookings[strings.ToUpper(bookingID)]
	if !ok {
		return models.Booking{}, ErrBookingNotFound
	}
	if b.Status == models.BookingCancelled {
		return models.Booking{}, ErrBookingAlreadyCancelled
	}

	cancelledAt := r.now()
	b.Status = models.BookingCancelled
	b.CancelledAt = &cancelledAt
	delete(r.slotBooking, b.SlotID)
	if slot, ok := r.slotIndex[b.SlotID]; ok {
		slot.Available = true
	}

	r.logger.Info("Booking cancelled",
		zap.String("bookingID", b.BookingID),
		zap.String("slotID", b.SlotID))
	return *b, nil
}

// newBookingID returns "BK" plus 8 upper-case hex characters. Caller holds the write lock.
func (r *MemoryCatalogRepo) newBookingID() string {
	for {
		raw := strings.ReplaceAll(uuid.New().String(), "-", "")
		id := "BK" + strings.ToUpper(raw[:8])
		if _, taken := r.bookings[id]; !taken {
			return id
		}
	}
}

func failedBooking(err error) models.BookingResult {
	msg := err.Error()
	if be, ok := err.(*BookingError); ok {
		msg = be.Message
	}
	return models.BookingResult{Success: false, Error: msg}
}
