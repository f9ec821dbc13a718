// File: services/intelligence/responders.go
package ai

import (
	"fmt"
	"strings"
	"time"

	catalogRepo "jusbook/database/repository/catalog"
	"jusbook/models"
	"jusbook/services/nlp"
)

const (
	maxListedSlots    = 8
	broadcastSlots    = 5
	defaultSpecialMsg = "None"
)

// Responders answers the single-turn intents from catalog data.
type Responders struct {
	repo     catalogRepo.CatalogRepository
	business string
	now      func() time.Time
}

func NewResponders(repo catalogRepo.CatalogRepository, business string, now func() time.Time) *Responders {
	if business == "" {
		business = "Jusbook"
	}
	if now == nil {
		now = time.Now
	}
	return &Responders{repo: repo, business: business, now: now}
}

// Respond produces the reply for a non-booking intent. sess is read-only here.
func (r *Responders) Respond(intent models.Intent, text string, sess *models.Session) string {
	switch intent {
	case models.IntentGreeting:
		return r.greeting()
	case models.IntentAvailableSlots:
		return r.availableSlots(text)
	case models.IntentServices:
		return r.services()
	case models.IntentContactInfo:
		return r.contactInfo()
	case models.IntentUpcomingEvents:
		return r.upcomingEvents(sess)
	case models.IntentSlotBroadcast:
		return r.slotBroadcast()
	case models.IntentCancelBooking:
		return r.cancelBooking(text)
	case models.IntentHelp:
		return r.help()
	default:
		return r.fallback(text)
	}
}

func (r *Responders) greeting() string {
	return fmt.Sprintf("Hello! Welcome to %s. I'm here to help you with appointments and bookings. How can I assist you today?", r.business)
}

func (r *Responders) availableSlots(text string) string {
	filter := models.SlotFilter{FromDate: r.now().Format(nlp.DateLayout)}
	if date, ok := nlp.ExtractDate(text, r.now()); ok {
		filter.Date = date
	}
	for _, svc := range r.repo.ListServices() {
		if strings.Contains(text, strings.ToLower(svc.Name)) {
			filter.Service = svc.Name
			break
		}
	}

	slots := r.repo.ListAvailableSlots(filter)
	if len(slots) == 0 {
		return "I'm sorry, no slots are currently available for your requested criteria. Would you like me to show all available slots or help you with something else?"
	}

	var b strings.Builder
	b.WriteString("Here are the available booking slots:\n\n")
	for i, s := range slots {
		if i == maxListedSlots {
			break
		}
		fmt.Fprintf(&b, "📅 %s at %s\n", s.Date, s.Time)
		fmt.Fprintf(&b, "   Service: %s\n", s.Service)
		fmt.Fprintf(&b, "   Duration: %s\n", s.Duration)
		fmt.Fprintf(&b, "   Slot ID: %s\n\n", s.SlotID)
	}
	if len(slots) > maxListedSlots {
		fmt.Fprintf(&b, "... and %d more slots available.\n\n", len(slots)-maxListedSlots)
	}
	b.WriteString("Would you like to book one of these? Just say 'book' to get started!")
	return b.String()
}

func (r *Responders) services() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Here are the services we offer at %s:\n\n", r.business)
	for _, svc := range r.repo.ListServices() {
		fmt.Fprintf(&b, "🔹 **%s**\n", svc.Name)
		fmt.Fprintf(&b, "   Description: %s\n", svc.Description)
		fmt.Fprintf(&b, "   Duration: %s\n", svc.Duration)
		fmt.Fprintf(&b, "   Price: %s\n\n", svc.Price)
	}
	b.WriteString("Would you like to book any of these services or check available slots?")
	return b.String()
}

func (r *Responders) contactInfo() string {
	c := r.repo.GetContactInfo()

	var b strings.Builder
	b.WriteString("Here's how you can reach us:\n\n")
	fmt.Fprintf(&b, "📞 **Phone:** %s\n", c.Phone)
	fmt.Fprintf(&b, "📧 **Email:** %s\n", c.Email)
	fmt.Fprintf(&b, "🏢 **Address:** %s\n", c.Address)
	fmt.Fprintf(&b, "🕐 **Business Hours:** %s\n\n", c.Hours)
	fmt.Fprintf(&b, "🌐 **Website:** %s\n", c.Website)
	if len(c.SocialMedia) > 0 {
		b.WriteString("\n**Follow us on:**\n")
		for _, s := range c.SocialMedia {
			fmt.Fprintf(&b, "• %s: %s\n", s.Platform, s.Handle)
		}
	}
	b.WriteString("\nIs there anything else you'd like to know?")
	return b.String()
}

func (r *Responders) upcomingEvents(sess *models.Session) string {
	events := r.repo.ListUpcomingEvents()

	var bookings []models.Booking
	if sess != nil && sess.Context.LastBooking != nil {
		bookings = r.repo.CustomerBookings(sess.Context.LastBooking.Contact)
	}

	if len(events) == 0 && len(bookings) == 0 {
		return "There are no upcoming special events scheduled at the moment. However, we have regular booking slots available. Would you like to see available slots?"
	}

	var b strings.Builder
	if len(events) > 0 {
		b.WriteString("Here are our upcoming events:\n\n")
		for _, e := range events {
			fmt.Fprintf(&b, "🎉 **%s**\n", e.Title)
			fmt.Fprintf(&b, "   Date: %s\n", e.Date)
			fmt.Fprintf(&b, "   Time: %s\n", e.Time)
			fmt.Fprintf(&b, "   Description: %s\n", e.Description)
			if e.BookingRequired {
				b.WriteString("   📋 Booking required\n")
			}
			b.WriteString("\n")
		}
	}
	if len(bookings) > 0 {
		b.WriteString("**Your Upcoming Bookings:**\n\n")
		for _, bk := range bookings {
			fmt.Fprintf(&b, "🔖 **%s**\n", bk.Service)
			fmt.Fprintf(&b, "   Date & Time: %s at %s\n", bk.Date, bk.Time)
			fmt.Fprintf(&b, "   Booking ID: %s\n\n", bk.BookingID)
		}
	}
	b.WriteString("Would you like to book a slot for any of these events?")
	return b.String()
}

func (r *Responders) slotBroadcast() string {
	slots := r.repo.ListAvailableSlots(models.SlotFilter{
		FromDate: r.now().Format(nlp.DateLayout),
		Limit:    broadcastSlots,
	})
	if len(slots) == 0 {
		return "There are currently no slots available for broadcast. Please check back later or ask about our services."
	}

	var b strings.Builder
	b.WriteString("📢 **Latest Slot Broadcast**\n\n")
	b.WriteString("Here are our most recently added available slots:\n\n")
	for _, s := range slots {
		offer := s.SpecialOffer
		if offer == "" {
			offer = defaultSpecialMsg
		}
		fmt.Fprintf(&b, "📅 %s at %s\n", s.Date, s.Time)
		fmt.Fprintf(&b, "   Service: %s\n", s.Service)
		fmt.Fprintf(&b, "   Duration: %s\n", s.Duration)
		fmt.Fprintf(&b, "   Slot ID: %s\n", s.SlotID)
		fmt.Fprintf(&b, "   Special Offer: %s\n\n", offer)
	}
	b.WriteString("These slots are available on a first-come, first-served basis. Would you like to book one now?")
	return b.String()
}

// cancelBooking only identifies the booking; the cancellation itself goes through staff.
func (r *Responders) cancelBooking(text string) string {
	id := nlp.ExtractBookingID(text)
	if id == "" {
		return "To cancel a booking, please provide your Booking ID. You can find this in your booking confirmation.\n\nExample: 'Cancel booking BK1A2B3C4D'"
	}

	found := ""
	if bk, err := r.repo.GetBooking(id); err == nil && bk.Status == models.BookingConfirmed {
		found = fmt.Sprintf(" I can see it's for %s on %s at %s.", bk.Service, bk.Date, bk.Time)
	}
	return fmt.Sprintf("I'd be happy to help you cancel booking %s.%s For security reasons, please contact us directly by phone or email to process cancellations. Ask me for 'contact info' to get our details.", id, found)
}

func (r *Responders) help() string {
	return fmt.Sprintf(`I'm here to help you with %s services! Here's what I can do:

🔹 **Available Slots** - See what booking times are open
🔹 **Services** - Learn about our offerings and prices
🔹 **Book Slot** - Make a new booking
🔹 **Contact Info** - Get our phone, email, and address
🔹 **Upcoming Events** - See special events and workshops
🔹 **Latest Offers** - See the newest open slots

**Quick Commands:**
• "Show available slots" or "Any slots tomorrow?"
• "What services do you offer?"
• "I want to book"
• "Contact information" or "How do I reach you?"
• "Upcoming events"
• "Cancel booking BK1A2B3C4D"

Just type your question naturally, and I'll do my best to help!`, r.business)
}

func (r *Responders) fallback(text string) string {
	switch {
	case nlp.ContainsAny(text, "price", "cost", "fee", "charge"):
		return "For pricing information, ask me 'What services do you offer?' and I'll show you all services with their prices."
	case nlp.ContainsAny(text, "location", "address", "where"):
		return "For our location and address, ask for 'contact information' and I'll provide all our details."
	case nlp.ContainsAny(text, "time", "hours", "open", "close"):
		return "For our business hours, ask for 'contact information' and I'll show you when we're open."
	}
	return "I'm not sure I understand. I can help you with:\n• Available booking slots\n• Services and pricing\n• Making bookings\n• Contact information\n• Upcoming events\n\nTry asking 'What can you help me with?' for more detailed options."
}
