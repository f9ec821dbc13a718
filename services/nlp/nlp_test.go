package nlp

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"", ""},
		{"   ", ""},
		{"Hello   World", "hello world"},
		{"  I Can't   make it\t\n", "i cannot make it"},
		{"I won't be there", "i will not be there"},
		{"We're here, they've left", "we are here, they have left"},
		{"I'll go, I'd go, I'm going", "i will go, i would go, i am going"},
		{"Don't worry", "do not worry"},
		{"Let's book", "let us book"},
		{"It’s fine, I can’t", "it's fine, i cannot"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.in))
		})
	}
}

func TestNormalizeIsIdempotent(t *testing.T) {
	inputs := []string{
		"What services do you OFFER?",
		"I can't make it, won't you   cancel BK1A2B3C4D",
		"let's book a slot tomorrow at 2pm",
		"   ",
	}
	for _, in := range inputs {
		once := Normalize(in)
		assert.Equal(t, once, Normalize(once), in)
	}
}

func TestExtractKeywords(t *testing.T) {
	assert.Equal(t, []string{"services", "you", "offer"}, ExtractKeywords("What services do you offer?"))
	assert.Empty(t, ExtractKeywords("is it up to me"))
}

func TestSimilarity(t *testing.T) {
	assert.Equal(t, 0.0, Similarity("", "haircut"))
	assert.Equal(t, 1.0, Similarity("Book a haircut", "haircut book"))
	assert.InDelta(t, 1.0/3.0, Similarity("book haircut", "book massage"), 1e-9)
}

func TestIsQuestion(t *testing.T) {
	assert.True(t, IsQuestion("Where are you located"))
	assert.True(t, IsQuestion("you open sunday?"))
	assert.False(t, IsQuestion("book a slot"))
	assert.False(t, IsQuestion(""))
}

func TestExtractEntities(t *testing.T) {
	e := ExtractEntities("Jane Doe, 9876543210, jane@example.com, book SL031000 on 2025-03-10 at 2:00 PM")

	assert.Equal(t, []string{"9876543210"}, e.Phones)
	assert.Equal(t, []string{"jane@example.com"}, e.Emails)
	assert.Contains(t, e.Dates, "2025-03-10")
	assert.Contains(t, e.Times, "2:00 PM")
	assert.Contains(t, e.SlotIDs, "SL031000")
	assert.Empty(t, e.BookingIDs)
}

func TestExtractBookingID(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"cancel booking bk1a2b3c4d", "BK1A2B3C4D"},
		{"please cancel BKDEADBEEF now", "BKDEADBEEF"},
		{"cancel booking id abc123", "ABC123"},
		{"cancel booking 42", "42"},
		{"my id x99", "X99"},
		{"cancel my booking", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractBookingID(tt.in))
		})
	}
}

func TestExtractDate(t *testing.T) {
	now := time.Date(2025, time.March, 10, 9, 0, 0, 0, time.UTC)
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"slots for today", "2025-03-10", true},
		{"anything tomorrow?", "2025-03-11", true},
		{"next week please", "2025-03-17", true},
		{"on 2025-04-01", "2025-04-01", true},
		{"on 3/15", "2025-03-15", true},
		{"on 12/25/2026", "2026-12-25", true},
		{"on 13/45", "", false},
		{"on 2025-02-30", "", false},
		{"show me slots", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ExtractDate(tt.in, now)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseClockTime(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"2pm", []string{"02:00 PM"}},
		{"at 2:00 pm", []string{"02:00 PM"}},
		{"10:00 am works", []string{"10:00 AM"}},
		{"14:00", []string{"02:00 PM"}},
		{"12:30", []string{"12:30 PM"}},
		{"3:15", []string{"03:15 AM", "03:15 PM"}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			ct, ok := ParseClockTime(tt.in)
			require.True(t, ok)
			assert.Equal(t, tt.want, ct.Candidates())
		})
	}

	for _, in := range []string{"book 2 slots", "25:00", "13 pm", "nothing here"} {
		_, ok := ParseClockTime(in)
		assert.False(t, ok, in)
	}
}
