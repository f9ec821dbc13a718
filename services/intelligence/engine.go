// File: services/intelligence/engine.go
package ai

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	catalogRepo "jusbook/database/repository/catalog"
	"jusbook/models"
	"jusbook/services/nlp"
)

const DefaultSessionID = "default"

// EngineOptions tunes the dialogue engine. Zero values are valid.
type EngineOptions struct {
	BusinessName string
	Now          func() time.Time
}

// DialogueEngine classifies each message and either advances the session's booking flow
// or answers with a single-turn responder.
type DialogueEngine struct {
	classifier *IntentClassifier
	sessions   SessionStore
	flow       *BookingFlow
	responders *Responders
	logger     *zap.Logger
}

var _ ChatService = (*DialogueEngine)(nil)

func NewDialogueEngine(repo catalogRepo.CatalogRepository, sessions SessionStore, logger *zap.Logger, opts EngineOptions) *DialogueEngine {
	if logger == nil {
		logger = zap.NewNop()
	}
	if sessions == nil {
		sessions = NewMemorySessionStore()
	}
	return &DialogueEngine{
		classifier: NewIntentClassifier(),
		sessions:   sessions,
		flow:       NewBookingFlow(repo, opts.Now, logger),
		responders: NewResponders(repo, opts.BusinessName, opts.Now),
		logger:     logger,
	}
}

// ProcessMessage handles one turn. The error is non-nil only when the session store fails;
// every user-level problem is answered in the response text.
func (e *DialogueEngine) ProcessMessage(ctx context.Context, req models.ChatRequest) (*models.ChatResponse, error) {
	sessionID := strings.TrimSpace(req.SessionID)
	if sessionID == "" {
		sessionID = DefaultSessionID
	}

	text := nlp.Normalize(req.Message)
	intent, confidence := e.classifier.Classify(text)

	resp := &models.ChatResponse{Intent: intent, Confidence: confidence}
	var from, to models.ConversationState
	// booked is set when this turn confirmed a booking in the catalog.
	var booked *models.BookingSummary

	_, err := e.sessions.Update(ctx, sessionID, func(s *models.Session) error {
		from = s.State
		step := func() {
			t := e.flow.Step(s.State, s.Context, Input{Text: text, Raw: req.Message})
			if t.Next == models.StateBookingComplete && from != models.StateBookingComplete {
				booked = t.Context.LastBooking
			}
			s.State, s.Context = t.Next, t.Context
			resp.Response = t.Reply
		}
		switch {
		case s.State.InBookingFlow():
			// An unfinished booking owns the conversation whatever the classifier says.
			step()
			resp.Intent, resp.Confidence = models.IntentBookSlot, 1.0
		case intent == models.IntentBookSlot:
			step()
		default:
			resp.Response = e.responders.Respond(intent, text, s)
		}
		s.LastIntent = intent
		to = s.State
		return nil
	})
	if err != nil {
		if booked != nil {
			// The slot stays booked; only the conversation state was lost.
			e.logger.Error("Session update failed after booking",
				zap.String("sessionID", sessionID),
				zap.String("bookingID", booked.BookingID),
				zap.String("slotID", booked.SlotID),
				zap.Error(err))
			return nil, fmt.Errorf("process message: booking %s confirmed but session not saved: %w", booked.BookingID, err)
		}
		e.logger.Error("Session update failed", zap.String("sessionID", sessionID), zap.Error(err))
		return nil, fmt.Errorf("process message: %w", err)
	}

	e.logger.Debug("Chat turn",
		zap.String("sessionID", sessionID),
		zap.String("intent", string(intent)),
		zap.Float64("confidence", confidence),
		zap.String("from", string(from)),
		zap.String("to", string(to)))
	return resp, nil
}

// Session exposes the stored session for diagnostics and tests.
func (e *DialogueEngine) Session(ctx context.Context, sessionID string) (*models.Session, bool, error) {
	return e.sessions.Get(ctx, sessionID)
}
