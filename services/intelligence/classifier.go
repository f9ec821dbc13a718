// File: services/intelligence/classifier.go
package ai

import (
	"math"
	"regexp"
	"sort"
	"strings"

	"jusbook/models"
	"jusbook/services/nlp"
)

const (
	patternMatchWeight = 0.3
	phraseMatchWeight  = 0.4
	maxLengthPenalty   = 0.2
	fallbackThreshold  = 0.2
	politenessBoost    = 0.1
)

// intentRule is one row of the classification table.
type intentRule struct {
	intent  models.Intent
	phrases []string
	pattern *regexp.Regexp
}

// Phrases are stored in normalized form, so contractions appear expanded.
var intentTable = buildIntentTable([]struct {
	intent  models.Intent
	phrases []string
}{
	{models.IntentGreeting, []string{
		"hello", "hi", "hey", "hiya", "howdy", "greetings", "good morning", "good afternoon",
		"good evening", "good day", "start", "begin", "welcome", "what's up", "whats up",
		"hi there", "hello there", "hey there", "namaste", "hola",
	}},
	{models.IntentAvailableSlots, []string{
		"available slots", "free slots", "open slots", "available times", "when available",
		"show slots", "available appointments", "free times", "what slots", "available booking",
		"open times", "slot availability", "when can i book", "when are you available",
		"booking times", "availability", "any slots", "slots available", "free appointments",
		"open appointments", "vacancies", "next available",
	}},
	{models.IntentServices, []string{
		"services", "service list", "what do you offer", "what services", "offerings", "offer",
		"treatments", "procedures", "service menu", "available services", "types of service",
		"options", "what can i book", "menu", "price list", "prices", "pricing", "haircut",
		"facial", "massage", "grooming", "packages",
	}},
	{models.IntentContactInfo, []string{
		"contact", "phone", "email", "address", "location", "reach you", "contact information",
		"contact info", "contact details", "how to contact", "phone number", "office address",
		"business hours", "opening hours", "where located", "how to reach", "where are you located",
		"directions", "call you", "get in touch", "your number", "website",
	}},
	{models.IntentBookSlot, []string{
		"book", "book slot", "book a slot", "appointment", "schedule", "reserve", "make booking",
		"make a booking", "book appointment", "book an appointment", "schedule appointment",
		"schedule an appointment", "reserve slot", "reserve a slot", "i want to book",
		"make reservation", "make a reservation", "book me", "reserve time", "can i book",
		"new booking", "reservation",
	}},
	{models.IntentUpcomingEvents, []string{
		"events", "upcoming events", "what's happening", "whats happening", "special events",
		"workshops", "workshop", "upcoming", "events calendar", "scheduled events", "what events",
		"event schedule", "activities", "calendar", "upcoming bookings", "my bookings",
		"show my bookings", "future appointments", "my schedule", "event", "demo", "sale",
	}},
	{models.IntentSlotBroadcast, []string{
		"broadcast", "slot broadcast", "latest slots", "new slots", "recent slots", "slot updates",
		"broadcast slots", "slot notifications", "slot alerts", "special offers", "featured slots",
		"offers", "deals", "discounts", "last minute", "last minute slots", "latest openings",
		"new openings", "hot slots", "flash slots", "promotions",
	}},
	{models.IntentCancelBooking, []string{
		"cancel", "cancel booking", "cancel my booking", "cancel appointment",
		"cancel my appointment", "cancellation", "cancel reservation", "cancel slot",
		"remove booking", "cancel my slot", "i need to cancel", "cannot make it", "reschedule",
		"change booking", "change my booking", "delete booking", "call off", "drop my booking",
		"undo booking", "withdraw booking", "refund",
	}},
	{models.IntentHelp, []string{
		"help", "what can you help", "what can you do", "assistance", "assist", "support",
		"how to use", "guide me", "instructions", "what are your capabilities",
		"how does this work", "guidance", "features", "capabilities", "commands", "i am confused",
		"i am lost", "stuck", "tutorial", "faq", "how do i",
	}},
})

func buildIntentTable(rows []struct {
	intent  models.Intent
	phrases []string
}) []intentRule {
	table := make([]intentRule, 0, len(rows))
	for _, row := range rows {
		alts := make([]string, len(row.phrases))
		for i, p := range row.phrases {
			alts[i] = regexp.QuoteMeta(p)
		}
		// Longest alternative first so that a phrase wins over its own prefix.
		sort.SliceStable(alts, func(i, j int) bool { return len(alts[i]) > len(alts[j]) })
		table = append(table, intentRule{
			intent:  row.intent,
			phrases: row.phrases,
			pattern: regexp.MustCompile(`(?i)\b(?:` + strings.Join(alts, "|") + `)\b`),
		})
	}
	return table
}

var (
	greetingWords = []string{"hi", "hello", "hey", "good morning", "good afternoon", "good evening"}
	questionWords = []string{"what", "where", "when", "how", "which", "who"}
	slotPatterns  = []*regexp.Regexp{
		regexp.MustCompile(`(?i)slot\s+\w+`),
		regexp.MustCompile(`(?i)SL\d+`),
		regexp.MustCompile(`(?i)book\s+\w+`),
	}
	timePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)today|tomorrow|next week|this week`),
		regexp.MustCompile(`\d+/\d+`),
		regexp.MustCompile(`\d+-\d+`),
	}
	broadcastTerms = []string{"broadcast", "latest", "new slots", "updates", "notifications", "alerts"}
	upcomingTerms  = []string{"upcoming", "future", "calendar", "schedule", "my bookings", "events"}
	politeWords    = []string{"please", "could you", "can you", "would you"}
)

// questionBoosts are tried in order; only the first matching topic is boosted.
var questionBoosts = []struct {
	terms  []string
	intent models.Intent
}{
	{[]string{"services", "offer"}, models.IntentServices},
	{[]string{"contact", "reach", "phone"}, models.IntentContactInfo},
	{[]string{"slots", "available"}, models.IntentAvailableSlots},
	{[]string{"broadcast", "latest"}, models.IntentSlotBroadcast},
	{[]string{"upcoming", "events", "bookings"}, models.IntentUpcomingEvents},
}

// scoreboard keeps intent scores in first-scored order, which decides ties.
type scoreboard struct {
	order  []models.Intent
	scores map[models.Intent]float64
}

func newScoreboard() *scoreboard {
	return &scoreboard{scores: make(map[models.Intent]float64)}
}

func (s *scoreboard) set(intent models.Intent, score float64) {
	if _, ok := s.scores[intent]; !ok {
		s.order = append(s.order, intent)
	}
	s.scores[intent] = score
}

// raise lifts intent to at least floor; scores are never lowered.
func (s *scoreboard) raise(intent models.Intent, floor float64) {
	if cur, ok := s.scores[intent]; ok && cur >= floor {
		return
	}
	s.set(intent, floor)
}

func (s *scoreboard) best() (models.Intent, float64, bool) {
	if len(s.order) == 0 {
		return "", 0, false
	}
	bestIntent := s.order[0]
	bestScore := s.scores[bestIntent]
	for _, intent := range s.order[1:] {
		if s.scores[intent] > bestScore {
			bestIntent, bestScore = intent, s.scores[intent]
		}
	}
	return bestIntent, bestScore, true
}

// IntentClassifier scores normalized text against the fixed intent table.
type IntentClassifier struct {
	rules []intentRule
}

func NewIntentClassifier() *IntentClassifier {
	return &IntentClassifier{rules: intentTable}
}

// Classify returns the best intent for text with a confidence in [0,1].
// The result is a pure function of the text.
func (c *IntentClassifier) Classify(text string) (models.Intent, float64) {
	text = strings.ToLower(strings.TrimSpace(text))
	if text == "" {
		return models.IntentGreeting, 0.5
	}

	words := len(strings.Fields(text))
	penalty := math.Min(float64(words)/20, maxLengthPenalty)

	board := newScoreboard()
	for _, rule := range c.rules {
		matches := rule.pattern.FindAllStringIndex(text, -1)
		if len(matches) == 0 {
			continue
		}
		score := float64(len(matches)) * patternMatchWeight
		for _, phrase := range rule.phrases {
			if strings.Contains(text, phrase) {
				score += phraseMatchWeight
			}
		}
		board.set(rule.intent, math.Min(score-penalty, 1.0))
	}

	applySpecialRules(text, words, board)

	intent, score, ok := board.best()
	if !ok {
		return models.IntentFallback, 0.0
	}
	if score < fallbackThreshold {
		return models.IntentFallback, clamp01(score)
	}
	return intent, clamp01(score)
}

func applySpecialRules(text string, words int, board *scoreboard) {
	if words <= 3 && containsWord(text, greetingWords...) {
		board.raise(models.IntentGreeting, 0.8)
	}

	if nlp.ContainsAny(text, questionWords...) {
		for _, qb := range questionBoosts {
			if nlp.ContainsAny(text, qb.terms...) {
				board.raise(qb.intent, 0.7)
				break
			}
		}
	}

	for _, p := range slotPatterns {
		if p.MatchString(text) {
			board.raise(models.IntentBookSlot, 0.8)
		}
	}

	for _, p := range timePatterns {
		if !p.MatchString(text) {
			continue
		}
		if strings.Contains(text, "book") {
			board.raise(models.IntentBookSlot, 0.7)
		} else {
			board.raise(models.IntentAvailableSlots, 0.6)
		}
		break
	}

	if nlp.ContainsAny(text, broadcastTerms...) {
		board.raise(models.IntentSlotBroadcast, 0.8)
	}
	if nlp.ContainsAny(text, upcomingTerms...) {
		board.raise(models.IntentUpcomingEvents, 0.8)
	}

	if nlp.ContainsAny(text, politeWords...) {
		for _, intent := range board.order {
			board.scores[intent] = math.Min(board.scores[intent]+politenessBoost, 1.0)
		}
	}
}

// containsWord matches whole words or phrases only, so "hi" does not fire inside "this".
func containsWord(text string, terms ...string) bool {
	padded := " " + strings.Join(nlp.Tokenize(text), " ") + " "
	for _, t := range terms {
		if strings.Contains(padded, " "+t+" ") {
			return true
		}
	}
	return false
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
