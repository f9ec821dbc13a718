package models

import "time"

// ChatRequest is the payload coming from the frontend into /chat.
type ChatRequest struct {
	Message   string `json:"message"`    // user's message as typed
	SessionID string `json:"session_id"` // opaque conversation key, "default" when omitted
}

// ChatResponse is what the chat handler returns to the frontend.
type ChatResponse struct {
	Response   string  `json:"response"`   // natural-language reply
	Intent     Intent  `json:"intent"`     // one of the Intent values
	Confidence float64 `json:"confidence"` // heuristic score in [0,1]
}

// Intent is the classified purpose of a user message.
type Intent string

const (
	IntentGreeting       Intent = "greeting"
	IntentAvailableSlots Intent = "available_slots"
	IntentServices       Intent = "services"
	IntentContactInfo    Intent = "contact_info"
	IntentBookSlot       Intent = "book_slot"
	IntentUpcomingEvents Intent = "upcoming_events"
	IntentSlotBroadcast  Intent = "slot_broadcast"
	IntentCancelBooking  Intent = "cancel_booking"
	IntentHelp           Intent = "help"
	IntentFallback       Intent = "fallback"
)

// ConversationState is the current step within the booking dialogue.
type ConversationState string

const (
	StateGreeting                ConversationState = "greeting"
	StateSelectingService        ConversationState = "selecting_service"
	StateSelectingTimeSlot       ConversationState = "selecting_time_slot"
	StateSelectingStaff          ConversationState = "selecting_staff"
	StateShowingDetails          ConversationState = "showing_details"
	StateAwaitingCustomerDetails ConversationState = "awaiting_customer_details"
	StateBookingComplete         ConversationState = "booking_complete"
)

// InBookingFlow reports whether the state belongs to an unfinished booking flow.
// Messages received in these states go to the booking flow regardless of intent.
func (s ConversationState) InBookingFlow() bool {
	switch s {
	case StateSelectingService, StateSelectingTimeSlot, StateSelectingStaff,
		StateShowingDetails, StateAwaitingCustomerDetails:
		return true
	}
	return false
}

// BookingSummary is the record of the last booking completed in a session.
type BookingSummary struct {
	BookingID string `json:"booking_id"`
	SlotID    string `json:"slot_id"`
	Name      string `json:"name"`
	Contact   string `json:"contact"`
	Service   string `json:"service"`
	Date      string `json:"date"`
	Time      string `json:"time"`
	Duration  string `json:"duration"`
	Price     string `json:"price"`
	Staff     string `json:"staff"`
}

// BookingContext accumulates the selections made during a booking flow.
type BookingContext struct {
	SelectedService  string          `json:"selected_service,omitempty"`
	SelectedTimeSlot string          `json:"selected_time_slot,omitempty"`
	StaffPreference  string          `json:"staff_preference,omitempty"`
	LastBooking      *BookingSummary `json:"last_booking,omitempty"`
}

// Clone returns a deep copy of the context.
func (c BookingContext) Clone() BookingContext {
	out := c
	if c.LastBooking != nil {
		lb := *c.LastBooking
		out.LastBooking = &lb
	}
	return out
}

// Session is the per-conversation state keyed by an opaque identifier.
type Session struct {
	ID         string            `json:"id"`
	State      ConversationState `json:"conversation_state"`
	Context    BookingContext    `json:"context"`
	LastIntent Intent            `json:"last_intent,omitempty"`
	CreatedAt  time.Time         `json:"created_at"`
	UpdatedAt  time.Time         `json:"updated_at"`
}

// NewSession returns a session in the initial greeting state.
func NewSession(id string, now time.Time) Session {
	return Session{
		ID:        id,
		State:     StateGreeting,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Clone returns a deep copy of the session.
func (s Session) Clone() Session {
	out := s
	out.Context = s.Context.Clone()
	return out
}
