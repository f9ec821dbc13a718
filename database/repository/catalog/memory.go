// File: database/repository/catalog/memory.go
package catalogRepo

import (
	"math"
	"math/rand"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"jusbook/models"
)

// Options configures the in-memory catalog.
type Options struct {
	Days int              // length of the rolling slot window, 14 when zero
	Seed int64            // random seed for slot generation, time-based when zero
	Now  func() time.Time // clock, time.Now when nil
}

// MemoryCatalogRepo keeps services, slots, bookings and events for the process lifetime.
// A single RWMutex guards all mutable state so that booking and cancellation are atomic.
type MemoryCatalogRepo struct {
	mu sync.RWMutex

	services    []models.Service
	slots       []*models.Slot
	slotIndex   map[string]*models.Slot
	bookings    map[string]*models.Booking
	slotBooking map[string]string // slotID -> confirmed bookingID
	events      []models.Event
	contact     models.ContactInfo
	seededDates map[string]struct{}

	days   int
	rng    *rand.Rand
	now    func() time.Time
	logger *zap.Logger
}

// NewMemoryCatalogRepo builds a catalog seeded for the window starting today.
func NewMemoryCatalogRepo(opts Options, logger *zap.Logger) *MemoryCatalogRepo {
	if opts.Days <= 0 {
		opts.Days = 14
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Seed == 0 {
		opts.Seed = time.Now().UnixNano()
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	today := opts.Now()
	repo := &MemoryCatalogRepo{
		services:    defaultServices(),
		slotIndex:   make(map[string]*models.Slot),
		bookings:    make(map[string]*models.Booking),
		slotBooking: make(map[string]string),
		events:      defaultEvents(today),
		contact:     defaultContactInfo(),
		seededDates: make(map[string]struct{}),
		days:        opts.Days,
		rng:         rand.New(rand.NewSource(opts.Seed)),
		now:         opts.Now,
		logger:      logger,
	}
	added := repo.RefreshWindow(today)
	logger.Info("Catalog seeded",
		zap.Int("services", len(repo.services)),
		zap.Int("slots", added),
		zap.Int("days", opts.Days))
	return repo
}

// RefreshWindow seeds every day of [now, now+days) that has not been seeded yet.
func (r *MemoryCatalogRepo) RefreshWindow(now time.Time) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	added := 0
	for offset := 0; offset < r.days; offset++ {
		added += r.seedDay(start.AddDate(0, 0, offset))
	}
	return added
}

func (r *MemoryCatalogRepo) ListServices() []models.Service {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.Service, len(r.services))
	copy(out, r.services)
	return out
}

// GetService looks a service up by its display name, case-insensitively.
func (r *MemoryCatalogRepo) GetService(name string) (models.Service, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.serviceByName(name)
}

func (r *MemoryCatalogRepo) serviceByName(name string) (models.Service, bool) {
	for _, svc := range r.services {
		if strings.EqualFold(svc.Name, name) {
			return svc, true
		}
	}
	return models.Service{}, false
}

func (r *MemoryCatalogRepo) StaffOptions() []string {
	return append([]string(nil), staffOptions...)
}

func (r *MemoryCatalogRepo) DailyTimes() []string {
	return append([]string(nil), dailyTimes...)
}

// AvailableTimes lists the daily times still bookable on date. A time is taken only
// when slots exist at that date and time and every one of them is booked.
func (r *MemoryCatalogRepo) AvailableTimes(date string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[string]bool)
	open := make(map[string]bool)
	for _, s := range r.slots {
		if s.Date != date {
			continue
		}
		seen[s.Time] = true
		if s.Available {
			open[s.Time] = true
		}
	}

	out := make([]string, 0, len(dailyTimes))
	for _, t := range dailyTimes {
		if !seen[t] || open[t] {
			out = append(out, t)
		}
	}
	return out
}

// ListAvailableSlots never returns slots dated before today.
func (r *MemoryCatalogRepo) ListAvailableSlots(filter models.SlotFilter) []models.Slot {
	r.mu.RLock()
	defer r.mu.RUnlock()

	today := r.now().Format(dateLayout)
	service := strings.ToLower(filter.Service)
	var out []models.Slot
	for _, s := range r.slots {
		if !s.Available || s.Date < today {
			continue
		}
		if filter.Date != "" && s.Date != filter.Date {
			continue
		}
		if filter.FromDate != "" && s.Date < filter.FromDate {
			continue
		}
		if service != "" && !strings.Contains(strings.ToLower(s.Service), service) {
			continue
		}
		out = append(out, *s)
		if filter.Limit > 0 && len(out) == filter.Limit {
			break
		}
	}
	return out
}

func (r *MemoryCatalogRepo) GetSlot(slotID string) (models.Slot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.slotIndex[slotID]
	if !ok {
		return models.Slot{}, ErrSlotNotFound
	}
	return *s, nil
}

func (r *MemoryCatalogRepo) GetBooking(bookingID string) (models.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	b, ok := r.bookings[strings.ToUpper(bookingID)]
	if !ok {
		return models.Booking{}, ErrBookingNotFound
	}
	return *b, nil
}

// CustomerBookings returns the confirmed bookings for a contact, earliest date first.
func (r *MemoryCatalogRepo) CustomerBookings(contact string) []models.Booking {
	return r.confirmedBookings(func(b *models.Booking) bool { return b.Contact == contact }, func(a, b models.Booking) bool {
		if a.Date != b.Date {
			return a.Date < b.Date
		}
		return timeOfDayIndex(a.Time) < timeOfDayIndex(b.Time)
	})
}

// DailySchedule returns the confirmed bookings of a date in time order.
func (r *MemoryCatalogRepo) DailySchedule(date string) []models.Booking {
	return r.confirmedBookings(func(b *models.Booking) bool { return b.Date == date }, func(a, b models.Booking) bool {
		return timeOfDayIndex(a.Time) < timeOfDayIndex(b.Time)
	})
}

func (r *MemoryCatalogRepo) confirmedBookings(keep func(*models.Booking) bool, less func(a, b models.Booking) bool) []models.Booking {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []models.Booking{}
	for _, b := range r.bookings {
		if b.Status == models.BookingConfirmed && keep(b) {
			out = append(out, *b)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if less(out[i], out[j]) {
			return true
		}
		if less(out[j], out[i]) {
			return false
		}
		return out[i].BookingID < out[j].BookingID
	})
	return out
}

func (r *MemoryCatalogRepo) Statistics() models.Statistics {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stats := models.Statistics{
		TotalSlots:      len(r.slots),
		ServiceBookings: make(map[string]int),
	}
	for _, s := range r.slots {
		if s.Available {
			stats.AvailableSlots++
		}
	}
	stats.BookedSlots = stats.TotalSlots - stats.AvailableSlots
	for _, b := range r.bookings {
		if b.Status != models.BookingConfirmed {
			continue
		}
		stats.TotalBookings++
		stats.ServiceBookings[b.Service]++
	}
	if stats.TotalSlots > 0 {
		rate := (1 - float64(stats.AvailableSlots)/float64(stats.TotalSlots)) * 100
		stats.OccupancyRate = math.Round(rate*100) / 100
	}
	return stats
}

// ListUpcomingEvents returns events dated today or later.
func (r *MemoryCatalogRepo) ListUpcomingEvents() []models.Event {
	r.mu.RLock()
	defer r.mu.RUnlock()

	today := r.now().Format(dateLayout)
	var out []models.Event
	for _, e := range r.events {
		if e.Date >= today {
			out = append(out, e)
		}
	}
	return out
}

func (r *MemoryCatalogRepo) GetContactInfo() models.ContactInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c := r.contact
	c.SocialMedia = append([]models.SocialHandle(nil), r.contact.SocialMedia...)
	return c
}

// insertSlot keeps r.slots ordered by (date, daily time). Caller holds the write lock.
func (r *MemoryCatalogRepo) insertSlot(slot *models.Slot) {
	i := sort.Search(len(r.slots), func(i int) bool {
		s := r.slots[i]
		if s.Date != slot.Date {
			return s.Date > slot.Date
		}
		return timeOfDayIndex(s.Time) > timeOfDayIndex(slot.Time)
	})
	r.slots = append(r.slots, nil)
	copy(r.slots[i+1:], r.slots[i:])
	r.slots[i] = slot
	r.slotIndex[slot.SlotID] = slot
}

// uniqueSlotID returns base, or base with a numeric suffix when base is already taken.
func (r *MemoryCatalogRepo) uniqueSlotID(base string) string {
	id := base
	for n := 1; ; n++ {
		if _, taken := r.slotIndex[id]; !taken {
			return id
		}
		id = base + "-" + strconv.Itoa(n)
	}
}

// timeOfDayIndex orders display times; unknown times sort after the daily list.
func timeOfDayIndex(t string) int {
	for i, dt := range dailyTimes {
		if dt == t {
			return i
		}
	}
	return len(dailyTimes)
}
