package ai

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	catalogRepo "jusbook/database/repository/catalog"
	"jusbook/models"
	"jusbook/services/nlp"
)

var flowNow = time.Date(2025, time.March, 10, 9, 0, 0, 0, time.UTC)

const flowToday = "2025-03-10"

func newFlowRepo(t *testing.T) *catalogRepo.MemoryCatalogRepo {
	t.Helper()
	return catalogRepo.NewMemoryCatalogRepo(catalogRepo.Options{
		Days: 14,
		Seed: 42,
		Now:  func() time.Time { return flowNow },
	}, nil)
}

func newTestFlow(t *testing.T) (*BookingFlow, *catalogRepo.MemoryCatalogRepo) {
	t.Helper()
	repo := newFlowRepo(t)
	return NewBookingFlow(repo, func() time.Time { return flowNow }, nil), repo
}

func input(raw string) Input {
	return Input{Text: nlp.Normalize(raw), Raw: raw}
}

// noTimesRepo reports every time of day as taken.
type noTimesRepo struct {
	catalogRepo.CatalogRepository
}

func (noTimesRepo) AvailableTimes(string) []string { return nil }

// rejectingRepo resolves slots normally but refuses every booking.
type rejectingRepo struct {
	catalogRepo.CatalogRepository
	reason string
}

func (r rejectingRepo) BookSlot(models.BookingRequest) models.BookingResult {
	return models.BookingResult{Success: false, Error: r.reason}
}

// unresolvableRepo fails to find or create any slot.
type unresolvableRepo struct {
	catalogRepo.CatalogRepository
}

func (unresolvableRepo) FindOrCreateSlot(string, string, string) (models.Slot, error) {
	return models.Slot{}, errors.New("slot lookup failed")
}

// --- Transition Tests ---

func TestStepStartsFromRestStates(t *testing.T) {
	f, _ := newTestFlow(t)
	for _, state := range []models.ConversationState{"", models.StateGreeting, models.StateBookingComplete} {
		tr := f.Step(state, models.BookingContext{LastBooking: &models.BookingSummary{}}, input("book a slot please"))
		assert.Equal(t, models.StateSelectingService, tr.Next, state)
		assert.Nil(t, tr.Context.LastBooking)
		assert.Contains(t, tr.Reply, "Haircut & Styling")
	}
}

func TestStepTriggerRestartsMidFlow(t *testing.T) {
	f, _ := newTestFlow(t)
	bctx := models.BookingContext{SelectedService: "Hair Wash", SelectedTimeSlot: "10:00 AM"}

	tr := f.Step(models.StateSelectingStaff, bctx, input("I want to book"))
	assert.Equal(t, models.StateSelectingService, tr.Next)
	assert.Empty(t, tr.Context.SelectedService)
}

func TestStepSelectService(t *testing.T) {
	f, repo := newTestFlow(t)

	tr := f.Step(models.StateSelectingService, models.BookingContext{}, input("I'd like a beard trim"))
	assert.Equal(t, models.StateSelectingTimeSlot, tr.Next)
	assert.Equal(t, "Beard Trim", tr.Context.SelectedService)
	for _, tm := range repo.AvailableTimes(flowToday) {
		assert.Contains(t, tr.Reply, tm)
	}

	tr = f.Step(models.StateSelectingService, models.BookingContext{}, input("something odd"))
	assert.Equal(t, models.StateSelectingService, tr.Next)
	assert.Contains(t, tr.Reply, "couldn't match")
}

func TestStepSelectServiceWithoutOpenTimes(t *testing.T) {
	f := NewBookingFlow(noTimesRepo{newFlowRepo(t)}, func() time.Time { return flowNow }, nil)

	tr := f.Step(models.StateSelectingService, models.BookingContext{}, input("Hair Wash"))
	assert.Equal(t, models.StateGreeting, tr.Next)
	assert.Contains(t, tr.Reply, "no open time slots")
}

func TestStepSelectTimeSlot(t *testing.T) {
	f, repo := newTestFlow(t)
	bctx := models.BookingContext{SelectedService: "Hair Wash"}
	open := repo.AvailableTimes(flowToday)
	require.NotEmpty(t, open)

	tr := f.Step(models.StateSelectingTimeSlot, bctx, input(open[0]))
	assert.Equal(t, models.StateSelectingStaff, tr.Next)
	assert.Equal(t, open[0], tr.Context.SelectedTimeSlot)
	assert.Contains(t, tr.Reply, "Senior Stylist")

	tr = f.Step(models.StateSelectingTimeSlot, bctx, input("whenever"))
	assert.Equal(t, models.StateSelectingTimeSlot, tr.Next)
	assert.Contains(t, tr.Reply, "valid time slot")
}

func TestStepSelectTimeSlotRejectsTakenTime(t *testing.T) {
	f, repo := newTestFlow(t)
	slots := repo.ListAvailableSlots(models.SlotFilter{Date: flowToday, Limit: 1})
	require.NotEmpty(t, slots)
	res := repo.BookSlot(models.BookingRequest{SlotID: slots[0].SlotID, CustomerName: "Jane Doe", Contact: "9876543210"})
	require.True(t, res.Success)

	tr := f.Step(models.StateSelectingTimeSlot, models.BookingContext{SelectedService: "Hair Wash"}, input(slots[0].Time))
	assert.Equal(t, models.StateSelectingTimeSlot, tr.Next)
	assert.Contains(t, tr.Reply, "unavailable")
	assert.Empty(t, tr.Context.SelectedTimeSlot)
}

func TestStepSelectStaff(t *testing.T) {
	f, _ := newTestFlow(t)
	bctx := models.BookingContext{SelectedService: "Hair Wash", SelectedTimeSlot: "10:00 AM"}

	tr := f.Step(models.StateSelectingStaff, bctx, input("a senior one"))
	assert.Equal(t, models.StateShowingDetails, tr.Next)
	assert.Equal(t, "Senior Stylist", tr.Context.StaffPreference)
	assert.Contains(t, tr.Reply, "₹300")
	assert.Contains(t, tr.Reply, "10:00 AM")

	tr = f.Step(models.StateSelectingStaff, bctx, input("skip"))
	assert.Equal(t, "Any Available Staff", tr.Context.StaffPreference)

	tr = f.Step(models.StateSelectingStaff, bctx, input("hmm"))
	assert.Equal(t, models.StateSelectingStaff, tr.Next)

	tr = f.Step(models.StateSelectingStaff, models.BookingContext{SelectedService: "Tattoo"}, input("any"))
	assert.Equal(t, models.StateGreeting, tr.Next)
	assert.Contains(t, tr.Reply, "Service not found")
}

func TestStepShowingDetails(t *testing.T) {
	f, _ := newTestFlow(t)
	bctx := models.BookingContext{SelectedService: "Hair Wash", SelectedTimeSlot: "10:00 AM", StaffPreference: "Junior Stylist"}

	tr := f.Step(models.StateShowingDetails, bctx, input("Confirm Booking"))
	assert.Equal(t, models.StateAwaitingCustomerDetails, tr.Next)
	assert.Equal(t, bctx, tr.Context)

	tr = f.Step(models.StateShowingDetails, bctx, input("Modify"))
	assert.Equal(t, models.StateSelectingService, tr.Next)
	assert.Equal(t, "Hair Wash", tr.Context.SelectedService)
	assert.Empty(t, tr.Context.SelectedTimeSlot)
	assert.Empty(t, tr.Context.StaffPreference)

	tr = f.Step(models.StateShowingDetails, bctx, input("no"))
	assert.Equal(t, models.StateGreeting, tr.Next)
	assert.Equal(t, models.BookingContext{}, tr.Context)

	tr = f.Step(models.StateShowingDetails, bctx, input("maybe"))
	assert.Equal(t, models.StateShowingDetails, tr.Next)
	assert.Contains(t, tr.Reply, "'Confirm Booking'")
}

func TestStepCustomerDetails(t *testing.T) {
	f, repo := newTestFlow(t)
	open := repo.AvailableTimes(flowToday)
	require.NotEmpty(t, open)
	bctx := models.BookingContext{SelectedService: "Hair Wash", SelectedTimeSlot: open[0], StaffPreference: "Any Available Staff"}

	tr := f.Step(models.StateAwaitingCustomerDetails, bctx, input("Jane Doe 9876543210"))
	assert.Equal(t, models.StateAwaitingCustomerDetails, tr.Next)
	assert.Contains(t, tr.Reply, "full name and 10-digit phone")

	tr = f.Step(models.StateAwaitingCustomerDetails, bctx, input("Jane, 987-654-3210"))
	assert.Equal(t, models.StateAwaitingCustomerDetails, tr.Next)
	assert.Contains(t, tr.Reply, "(full name looks incomplete)")

	tr = f.Step(models.StateAwaitingCustomerDetails, bctx, input("Mary-Jane O'Neil, (987) 654-3210"))
	require.Equal(t, models.StateBookingComplete, tr.Next, tr.Reply)
	require.NotNil(t, tr.Context.LastBooking)
	assert.Equal(t, "Mary-Jane O'Neil", tr.Context.LastBooking.Name)
	assert.Equal(t, "9876543210", tr.Context.LastBooking.Contact)
	assert.Equal(t, "Hair Wash", tr.Context.LastBooking.Service)
	assert.Equal(t, flowToday, tr.Context.LastBooking.Date)
	assert.Contains(t, tr.Reply, "Booking Confirmed")
	assert.Contains(t, tr.Reply, tr.Context.LastBooking.BookingID)

	booking, err := repo.GetBooking(tr.Context.LastBooking.BookingID)
	require.NoError(t, err)
	assert.Equal(t, models.BookingConfirmed, booking.Status)
}

func TestStepCustomerDetailsStoreRejection(t *testing.T) {
	repo := newFlowRepo(t)
	bctx := models.BookingContext{SelectedService: "Hair Wash", SelectedTimeSlot: "10:00 AM", StaffPreference: "Any Available Staff"}

	tests := []struct {
		name  string
		repo  catalogRepo.CatalogRepository
		reply string
	}{
		{"booking refused", rejectingRepo{repo, "Slot SL031000 is no longer available"}, "Slot SL031000 is no longer available"},
		{"slot unresolved", unresolvableRepo{repo}, "slot lookup failed"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewBookingFlow(tt.repo, func() time.Time { return flowNow }, nil)

			tr := f.Step(models.StateAwaitingCustomerDetails, bctx, input("Jane Doe, 9876543210"))
			assert.Equal(t, models.StateAwaitingCustomerDetails, tr.Next)
			assert.Equal(t, bctx, tr.Context)
			assert.Contains(t, tr.Reply, "Sorry, there was an issue with your booking: "+tt.reply)
			assert.Contains(t, tr.Reply, "Please try again")
		})
	}
	assert.Equal(t, 0, repo.Statistics().TotalBookings)
}

func TestStepCustomerDetailsMissingContext(t *testing.T) {
	f, _ := newTestFlow(t)

	tr := f.Step(models.StateAwaitingCustomerDetails, models.BookingContext{SelectedService: "Hair Wash"}, input("Jane Doe, 9876543210"))
	assert.Equal(t, models.StateGreeting, tr.Next)
	assert.Contains(t, tr.Reply, "Missing booking information")
}

func TestStepDoesNotMutateInputContext(t *testing.T) {
	f, _ := newTestFlow(t)
	bctx := models.BookingContext{SelectedService: "Hair Wash", SelectedTimeSlot: "10:00 AM", StaffPreference: "Junior Stylist"}
	before := bctx.Clone()

	f.Step(models.StateShowingDetails, bctx, input("modify"))
	assert.Equal(t, before, bctx)
}

// --- Matcher Tests ---

func TestMatchService(t *testing.T) {
	services := newFlowRepo(t).ListServices()
	tests := []struct {
		in, want string
	}{
		{"haircut & styling", "Haircut & Styling"},
		{"hair wash", "Hair Wash"},
		{"i want the bridal grooming package", "Bridal Grooming"},
		{"massage", "Massage (Head / Shoulder)"},
		{"my kid needs a trim", "Beard Trim"},
		{"for my children", "Kids Haircut"},
		{"colour", ""},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := matchService(tt.in, services)
			assert.Equal(t, tt.want != "", ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMatchTimeSlot(t *testing.T) {
	times := []string{"10:00 AM", "11:00 AM", "12:30 PM", "02:00 PM", "03:15 PM", "04:30 PM", "06:00 PM", "07:15 PM"}
	tests := []struct {
		in, want string
	}{
		{"10:00 am", "10:00 AM"},
		{"2pm", "02:00 PM"},
		{"at 2:00 pm please", "02:00 PM"},
		{"14:00", "02:00 PM"},
		{"12:30", "12:30 PM"},
		{"3:15", "03:15 PM"},
		{"7:15 pm", "07:15 PM"},
		{"11", ""},
		{"9am", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := matchTimeSlot(tt.in, times)
			assert.Equal(t, tt.want != "", ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMatchStaff(t *testing.T) {
	options := newFlowRepo(t).StaffOptions()
	tests := []struct {
		in, want string
	}{
		{"senior stylist", "Senior Stylist"},
		{"any", "Any Available Staff"},
		{"anyone is fine", "Any Available Staff"},
		{"no preference", "Any Available Staff"},
		{"skip", "Any Available Staff"},
		{"junior please", "Junior Stylist"},
		{"i have a name", "Specific Staff (Name if known)"},
		{"company", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := matchStaff(tt.in, options)
			assert.Equal(t, tt.want != "", ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseCustomerDetails(t *testing.T) {
	tests := []struct {
		in       string
		comma    bool
		problems []string
	}{
		{"Jane Doe, 9876543210", true, nil},
		{"  Jane   Doe ,98765 43210 ", true, nil},
		{"J, 12345", true, []string{problemName, problemPhone}},
		{"Jane, 9876543210", true, []string{problemName}},
		{"Jane D0e, 9876543210", true, []string{problemName}},
		{"Jane Doe, 98765432101", true, []string{problemPhone}},
		{"Jane Doe 9876543210", false, nil},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			_, problems, comma := parseCustomerDetails(tt.in)
			assert.Equal(t, tt.comma, comma)
			assert.Equal(t, tt.problems, problems)
		})
	}

	d, _, _ := parseCustomerDetails("  Jane   Doe ,98765 43210 ")
	assert.Equal(t, "Jane Doe", d.Name)
	assert.Equal(t, "9876543210", d.Phone)
}
