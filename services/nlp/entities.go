// File: services/nlp/entities.go
package nlp

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const DateLayout = "2006-01-02"

// Entities groups the structured tokens found in a message.
type Entities struct {
	Phones     []string `json:"phones,omitempty"`
	Emails     []string `json:"emails,omitempty"`
	Dates      []string `json:"dates,omitempty"`
	Times      []string `json:"times,omitempty"`
	SlotIDs    []string `json:"slot_ids,omitempty"`
	BookingIDs []string `json:"booking_ids,omitempty"`
}

var (
	phonePatterns = []*regexp.Regexp{
		regexp.MustCompile(`\b\d{10}\b`),
		regexp.MustCompile(`\b\d{3}[-.\s]\d{3}[-.\s]\d{4}\b`),
		regexp.MustCompile(`\(\d{3}\)\s*\d{3}[-.\s]\d{4}`),
	}
	emailPattern = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)
	datePatterns = []*regexp.Regexp{
		regexp.MustCompile(`\b\d{4}-\d{2}-\d{2}\b`),
		regexp.MustCompile(`\b\d{1,2}/\d{1,2}/\d{4}\b`),
		regexp.MustCompile(`\b\d{1,2}-\d{1,2}-\d{4}\b`),
		regexp.MustCompile(`\b\d{1,2}/\d{1,2}\b`),
	}
	timePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\b\d{1,2}:\d{2}\s*(?:am|pm)?\b`),
		regexp.MustCompile(`(?i)\b\d{1,2}\s*(?:am|pm)\b`),
	}
	slotIDPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\bSL\d+\b`),
		regexp.MustCompile(`(?i)\bslot\s+[A-Za-z0-9]+\b`),
	}
	bookingIDPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\b(bk[0-9a-f]{8})\b`),
		regexp.MustCompile(`(?i)\bbooking\s+(?:id\s+)?([a-z]*\d\w*)`),
		regexp.MustCompile(`(?i)\bid\s+(\w+)`),
	}

	isoDate      = regexp.MustCompile(`\b(\d{4})-(\d{2})-(\d{2})\b`)
	usDate       = regexp.MustCompile(`\b(\d{1,2})/(\d{1,2})(?:/(\d{4}))?\b`)
	clockPattern = regexp.MustCompile(`(?i)\b(\d{1,2})(?::(\d{2}))?\s*(am|pm)?\b`)
)

// ExtractEntities runs every entity pattern over the raw text.
func ExtractEntities(text string) Entities {
	var e Entities
	e.Phones = findAll(text, phonePatterns)
	if m := emailPattern.FindAllString(text, -1); len(m) > 0 {
		e.Emails = m
	}
	e.Dates = findAll(text, datePatterns)
	e.Times = findAll(text, timePatterns)
	e.SlotIDs = findAll(text, slotIDPatterns)
	if id := ExtractBookingID(text); id != "" {
		e.BookingIDs = []string{id}
	}
	return e
}

func findAll(text string, patterns []*regexp.Regexp) []string {
	var out []string
	seen := make(map[string]struct{})
	for _, p := range patterns {
		for _, m := range p.FindAllString(text, -1) {
			if _, dup := seen[m]; dup {
				continue
			}
			seen[m] = struct{}{}
			out = append(out, m)
		}
	}
	return out
}

// ExtractBookingID returns the first booking-ID-shaped token in text, upper-cased, or "".
func ExtractBookingID(text string) string {
	for _, p := range bookingIDPatterns {
		if m := p.FindStringSubmatch(text); m != nil {
			return strings.ToUpper(m[1])
		}
	}
	return ""
}

// ExtractDate resolves the first date expression in text relative to now and returns it as YYYY-MM-DD.
func ExtractDate(text string, now time.Time) (string, bool) {
	lower := strings.ToLower(text)
	switch {
	case strings.Contains(lower, "today"):
		return now.Format(DateLayout), true
	case strings.Contains(lower, "tomorrow"):
		return now.AddDate(0, 0, 1).Format(DateLayout), true
	case strings.Contains(lower, "next week"):
		return now.AddDate(0, 0, 7).Format(DateLayout), true
	}

	if m := isoDate.FindString(lower); m != "" {
		if _, err := time.Parse(DateLayout, m); err == nil {
			return m, true
		}
	}
	if m := usDate.FindStringSubmatch(lower); m != nil {
		month, _ := strconv.Atoi(m[1])
		day, _ := strconv.Atoi(m[2])
		year := now.Year()
		if m[3] != "" {
			year, _ = strconv.Atoi(m[3])
		}
		d := time.Date(year, time.Month(month), day, 0, 0, 0, 0, now.Location())
		// time.Date normalizes out-of-range values; reject them instead.
		if int(d.Month()) == month && d.Day() == day {
			return d.Format(DateLayout), true
		}
	}
	return "", false
}

// ClockTime is a wall-clock time parsed from free text.
type ClockTime struct {
	Hour     int    // 1..23 as written
	Minute   int    // 0..59
	Meridiem string // "AM", "PM" or "" when omitted
}

// Format renders t as "hh:mm AM/PM" using the given meridiem.
func (t ClockTime) Format(meridiem string) string {
	h := t.Hour
	if h > 12 {
		h -= 12
	}
	return fmt.Sprintf("%02d:%02d %s", h, t.Minute, meridiem)
}

// Candidates lists the display times t may denote. Without a meridiem, hours from 13 and noon
// are afternoon; other hours may be either, morning first.
func (t ClockTime) Candidates() []string {
	switch {
	case t.Meridiem != "":
		return []string{t.Format(t.Meridiem)}
	case t.Hour >= 12:
		return []string{t.Format("PM")}
	default:
		return []string{t.Format("AM"), t.Format("PM")}
	}
}

// ParseClockTime finds the first "h", "h:mm", "h am" or "h:mm pm" expression in text.
// A bare number without minutes or meridiem is not treated as a time.
func ParseClockTime(text string) (ClockTime, bool) {
	for _, m := range clockPattern.FindAllStringSubmatch(text, -1) {
		if m[2] == "" && m[3] == "" {
			continue
		}
		hour, _ := strconv.Atoi(m[1])
		minute := 0
		if m[2] != "" {
			minute, _ = strconv.Atoi(m[2])
		}
		meridiem := strings.ToUpper(m[3])
		if minute > 59 || hour > 23 || (meridiem != "" && (hour == 0 || hour > 12)) {
			continue
		}
		if meridiem == "" && hour == 0 {
			continue
		}
		return ClockTime{Hour: hour, Minute: minute, Meridiem: meridiem}, true
	}
	return ClockTime{}, false
}
