// File: services/intelligence/flow.go
package ai

import (
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	catalogRepo "jusbook/database/repository/catalog"
	"jusbook/models"
	"jusbook/services/nlp"
)

// Input is one user message as seen by the booking flow.
type Input struct {
	Text string // normalized
	Raw  string // as typed, used where case matters
}

// Transition is the outcome of one booking-flow step.
type Transition struct {
	Next    models.ConversationState
	Context models.BookingContext
	Reply   string
}

var (
	bookingTriggers = wordSet("book", "book a slot", "book slot", "i want to book", "make a booking")
	confirmWords    = wordSet("confirm", "confirm booking", "yes", "book it", "proceed")
	modifyWords     = wordSet("modify", "change", "edit", "go back")
	abortWords      = wordSet("cancel", "no", "abort")
)

func wordSet(words ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}

func inSet(set map[string]struct{}, text string) bool {
	_, ok := set[strings.Trim(text, ".! ")]
	return ok
}

// BookingFlow is the multi-step booking dialogue. Step is its transition function.
type BookingFlow struct {
	repo   catalogRepo.CatalogRepository
	now    func() time.Time
	logger *zap.Logger
}

func NewBookingFlow(repo catalogRepo.CatalogRepository, now func() time.Time, logger *zap.Logger) *BookingFlow {
	if now == nil {
		now = time.Now
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BookingFlow{repo: repo, now: now, logger: logger}
}

// Step computes the next state, context and reply for a message received in state.
// It never fails; problems are reported in the reply.
func (f *BookingFlow) Step(state models.ConversationState, bctx models.BookingContext, in Input) Transition {
	bctx = bctx.Clone()

	if inSet(bookingTriggers, in.Text) || !state.InBookingFlow() {
		return f.start()
	}

	switch state {
	case models.StateSelectingService:
		return f.selectService(bctx, in)
	case models.StateSelectingTimeSlot:
		return f.selectTimeSlot(bctx, in)
	case models.StateSelectingStaff:
		return f.selectStaff(bctx, in)
	case models.StateShowingDetails:
		return f.showingDetails(bctx, in)
	case models.StateAwaitingCustomerDetails:
		return f.customerDetails(bctx, in)
	}
	return f.start()
}

func (f *BookingFlow) start() Transition {
	return Transition{
		Next:    models.StateSelectingService,
		Context: models.BookingContext{},
		Reply:   f.serviceMenu(),
	}
}

func (f *BookingFlow) reset(reply string) Transition {
	return Transition{Next: models.StateGreeting, Context: models.BookingContext{}, Reply: reply}
}

func stay(state models.ConversationState, bctx models.BookingContext, reply string) Transition {
	return Transition{Next: state, Context: bctx, Reply: reply}
}

func (f *BookingFlow) today() string {
	return f.now().Format(nlp.DateLayout)
}

func (f *BookingFlow) selectService(bctx models.BookingContext, in Input) Transition {
	service, ok := matchService(in.Text, f.repo.ListServices())
	if !ok {
		return stay(models.StateSelectingService, bctx,
			"I couldn't match that to a service. Please pick one from the list or type the service name clearly.")
	}

	times := f.repo.AvailableTimes(f.today())
	if len(times) == 0 {
		return f.reset(fmt.Sprintf("Sorry, %s has no open time slots left today. Please check back tomorrow or ask me for available slots.", service))
	}

	bctx.SelectedService = service
	var b strings.Builder
	b.WriteString("Great! Please select an available time slot for your chosen service:\n\n")
	b.WriteString("Available Slots:\n")
	for _, t := range times {
		fmt.Fprintf(&b, "• %s\n", t)
	}
	return stay(models.StateSelectingTimeSlot, bctx, b.String())
}

func (f *BookingFlow) selectTimeSlot(bctx models.BookingContext, in Input) Transition {
	slot, ok := matchTimeSlot(in.Text, f.repo.DailyTimes())
	if !ok {
		return stay(models.StateSelectingTimeSlot, bctx, "Please select a valid time slot from the list.")
	}

	open := false
	for _, t := range f.repo.AvailableTimes(f.today()) {
		if t == slot {
			open = true
			break
		}
	}
	if !open {
		return stay(models.StateSelectingTimeSlot, bctx, "That slot is unavailable. Please select a valid slot from the list.")
	}

	bctx.SelectedTimeSlot = slot
	var b strings.Builder
	b.WriteString("Would you like to choose a preferred stylist?\n\n")
	b.WriteString("Staff Preference:\n")
	for _, opt := range f.repo.StaffOptions() {
		fmt.Fprintf(&b, "• %s\n", opt)
	}
	return stay(models.StateSelectingStaff, bctx, b.String())
}

func (f *BookingFlow) selectStaff(bctx models.BookingContext, in Input) Transition {
	staff, ok := matchStaff(in.Text, f.repo.StaffOptions())
	if !ok {
		return stay(models.StateSelectingStaff, bctx,
			"Please select a staff preference from the list or say 'any' to continue.")
	}

	svc, found := f.repo.GetService(bctx.SelectedService)
	if !found {
		return f.reset("Error: Service not found. Please start over.")
	}

	bctx.StaffPreference = staff
	var b strings.Builder
	b.WriteString("Service Summary:\n\n")
	fmt.Fprintf(&b, "Service: %s\n", svc.Name)
	fmt.Fprintf(&b, "Duration: %s\n", svc.Duration)
	fmt.Fprintf(&b, "Price: %s\n", svc.Price)
	fmt.Fprintf(&b, "Slot: %s\n", bctx.SelectedTimeSlot)
	fmt.Fprintf(&b, "Staff: %s\n\n", staff)
	b.WriteString("Would you like to confirm this booking?\n\n")
	b.WriteString("Options:\n• Confirm Booking\n• Cancel\n• Modify\n")
	return stay(models.StateShowingDetails, bctx, b.String())
}

func (f *BookingFlow) showingDetails(bctx models.BookingContext, in Input) Transition {
	switch {
	case inSet(confirmWords, in.Text):
		return stay(models.StateAwaitingCustomerDetails, bctx,
			"To complete your booking, please provide:\n\n1. Your full name\n2. Your 10-digit phone number\n\nExample: 'John Smith, 9876543210'")
	case inSet(modifyWords, in.Text):
		bctx.SelectedTimeSlot = ""
		bctx.StaffPreference = ""
		return stay(models.StateSelectingService, bctx, f.serviceMenu())
	case inSet(abortWords, in.Text):
		return f.reset("Your booking process has been cancelled. Let me know if you need anything else!")
	}
	return stay(models.StateShowingDetails, bctx,
		"Would you like to confirm this booking? Please respond with 'Confirm Booking', 'Modify', or 'Cancel'.")
}

func (f *BookingFlow) customerDetails(bctx models.BookingContext, in Input) Transition {
	details, problems, ok := parseCustomerDetails(in.Raw)
	if !ok {
		return stay(models.StateAwaitingCustomerDetails, bctx,
			"Please provide your full name and 10-digit phone number.\n\nExample: 'John Smith, 9876543210'")
	}
	if len(problems) > 0 {
		return stay(models.StateAwaitingCustomerDetails, bctx,
			fmt.Sprintf("Please provide valid details (%s).\n\nFormat: 'John Smith, 9876543210'", strings.Join(problems, ", ")))
	}

	if bctx.SelectedService == "" || bctx.SelectedTimeSlot == "" {
		return f.reset("Error: Missing booking information. Please start the booking process again.")
	}
	svc, found := f.repo.GetService(bctx.SelectedService)
	if !found {
		return f.reset("Error: Service not found. Please start over.")
	}
	staff := bctx.StaffPreference
	if staff == "" {
		staff = "Any Available Staff"
	}

	date := f.today()
	slot, err := f.repo.FindOrCreateSlot(svc.Name, date, bctx.SelectedTimeSlot)
	if err != nil {
		f.logger.Warn("Slot resolution failed", zap.Error(err))
		return stay(models.StateAwaitingCustomerDetails, bctx,
			fmt.Sprintf("Sorry, there was an issue with your booking: %v. Please try again or contact us directly.", err))
	}

	res := f.repo.BookSlot(models.BookingRequest{
		SlotID:       slot.SlotID,
		Service:      svc.Name,
		CustomerName: details.Name,
		Contact:      details.Phone,
	})
	if !res.Success {
		f.logger.Warn("Booking rejected by store",
			zap.String("slotID", slot.SlotID),
			zap.String("reason", res.Error))
		return stay(models.StateAwaitingCustomerDetails, bctx,
			fmt.Sprintf("Sorry, there was an issue with your booking: %s. Please try again or contact us directly.", res.Error))
	}

	bctx.LastBooking = &models.BookingSummary{
		BookingID: res.BookingID,
		SlotID:    slot.SlotID,
		Name:      details.Name,
		Contact:   details.Phone,
		Service:   svc.Name,
		Date:      date,
		Time:      bctx.SelectedTimeSlot,
		Duration:  svc.Duration,
		Price:     svc.Price,
		Staff:     staff,
	}

	var b strings.Builder
	b.WriteString("Booking Confirmed ✅\n\n")
	fmt.Fprintf(&b, "Customer: %s\n", details.Name)
	fmt.Fprintf(&b, "Service: %s (%s)\n", svc.Name, svc.Duration)
	fmt.Fprintf(&b, "Slot: %s at %s\n", date, bctx.SelectedTimeSlot)
	fmt.Fprintf(&b, "Staff: %s\n", staff)
	fmt.Fprintf(&b, "Price: %s\n", svc.Price)
	fmt.Fprintf(&b, "Contact: %s\n", details.Phone)
	fmt.Fprintf(&b, "Booking ID: %s\n\n", res.BookingID)
	b.WriteString("Thank you for booking with us!")
	return stay(models.StateBookingComplete, bctx, b.String())
}

func (f *BookingFlow) serviceMenu() string {
	var b strings.Builder
	b.WriteString("Please select a service from the list below:\n\n")
	b.WriteString("Services List:\n")
	for _, svc := range f.repo.ListServices() {
		fmt.Fprintf(&b, "• %s\n", svc.Name)
	}
	return b.String()
}
