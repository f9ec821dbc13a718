// File: services/intelligence/matchers.go
package ai

import (
	"regexp"
	"strings"

	"jusbook/models"
	"jusbook/services/nlp"
)

// serviceKeywords maps loose wording to catalog service names. Checked in order.
var serviceKeywords = []struct {
	keyword string
	service string
}{
	{"hair cut", "Haircut & Styling"},
	{"haircut", "Haircut & Styling"},
	{"styling", "Haircut & Styling"},
	{"hair wash", "Hair Wash"},
	{"wash", "Hair Wash"},
	{"beard trim", "Beard Trim"},
	{"beard", "Beard Trim"},
	{"trim", "Beard Trim"},
	{"hair color", "Hair Color"},
	{"hair colour", "Hair Color"},
	{"coloring", "Hair Color"},
	{"color", "Hair Color"},
	{"facial", "Facial / Grooming"},
	{"head massage", "Massage (Head / Shoulder)"},
	{"shoulder massage", "Massage (Head / Shoulder)"},
	{"massage", "Massage (Head / Shoulder)"},
	{"kids", "Kids Haircut"},
	{"kid", "Kids Haircut"},
	{"children", "Kids Haircut"},
	{"child", "Kids Haircut"},
	{"makeover", "Complete Makeover Package"},
	{"package", "Complete Makeover Package"},
	{"bridal", "Bridal Grooming"},
	{"bride", "Bridal Grooming"},
	{"wedding", "Bridal Grooming"},
	{"grooming", "Facial / Grooming"},
	{"cut", "Haircut & Styling"},
	{"custom", "Custom Service (Other)"},
	{"other", "Custom Service (Other)"},
}

// matchService resolves text to a service name: exact name, then substring either way, then keywords.
func matchService(text string, services []models.Service) (string, bool) {
	text = strings.ToLower(strings.TrimSpace(text))
	if text == "" {
		return "", false
	}
	for _, svc := range services {
		if strings.ToLower(svc.Name) == text {
			return svc.Name, true
		}
	}
	for _, svc := range services {
		name := strings.ToLower(svc.Name)
		if strings.Contains(text, name) || (len(text) >= 3 && strings.Contains(name, text)) {
			return svc.Name, true
		}
	}
	for _, kw := range serviceKeywords {
		if !strings.Contains(text, kw.keyword) {
			continue
		}
		for _, svc := range services {
			if svc.Name == kw.service {
				return svc.Name, true
			}
		}
	}
	return "", false
}

// matchTimeSlot resolves text to one of times: exact, then a parsed clock time, then the bare "hh:mm" form.
func matchTimeSlot(text string, times []string) (string, bool) {
	text = strings.ToLower(strings.TrimSpace(text))
	if text == "" {
		return "", false
	}
	for _, t := range times {
		if strings.ToLower(t) == text {
			return t, true
		}
	}
	if ct, ok := nlp.ParseClockTime(text); ok {
		for _, candidate := range ct.Candidates() {
			for _, t := range times {
				if t == candidate {
					return t, true
				}
			}
		}
	}
	for _, t := range times {
		bare := strings.ToLower(strings.TrimSuffix(strings.TrimSuffix(t, " AM"), " PM"))
		if strings.Contains(text, bare) {
			return t, true
		}
	}
	return "", false
}

var staffSkipWords = map[string]struct{}{
	"any": {}, "anyone": {}, "no preference": {}, "skip": {}, "next": {}, "none": {}, "does not matter": {},
}

// matchStaff resolves a staff preference. The bool is false when the text names no option.
func matchStaff(text string, options []string) (string, bool) {
	text = strings.ToLower(strings.Trim(strings.TrimSpace(text), ".!"))
	for _, opt := range options {
		if strings.ToLower(opt) == text {
			return opt, true
		}
	}

	var want string
	switch {
	case containsWord(text, "any", "anyone", "anybody") || strings.Contains(text, "no preference"):
		want = "Any Available Staff"
	case strings.Contains(text, "senior"):
		want = "Senior Stylist"
	case strings.Contains(text, "junior"):
		want = "Junior Stylist"
	case strings.Contains(text, "specific") || strings.Contains(text, "name"):
		want = "Specific Staff (Name if known)"
	}
	if want != "" {
		for _, opt := range options {
			if opt == want {
				return opt, true
			}
		}
	}

	if _, skip := staffSkipWords[text]; skip && len(options) > 0 {
		return options[0], true
	}
	return "", false
}

var (
	nameToken = regexp.MustCompile(`^[A-Za-z\-'.]+$`)
	nonDigit  = regexp.MustCompile(`\D`)
)

const (
	problemName  = "full name looks incomplete"
	problemPhone = "phone must be 10 digits"
)

// customerDetails is the parsed "Name, Phone" reply.
type customerDetails struct {
	Name  string
	Phone string
}

// parseCustomerDetails splits raw on the first comma and validates both halves.
// hasComma is false when the reply is not in "Name, Phone" form at all.
func parseCustomerDetails(raw string) (details customerDetails, problems []string, hasComma bool) {
	idx := strings.Index(raw, ",")
	if idx < 0 {
		return customerDetails{}, nil, false
	}
	name := strings.Join(strings.Fields(raw[:idx]), " ")
	phone := nonDigit.ReplaceAllString(raw[idx+1:], "")

	tokens := strings.Fields(name)
	validName := len(tokens) >= 2
	for _, tok := range tokens {
		if !nameToken.MatchString(tok) {
			validName = false
			break
		}
	}
	if !validName {
		problems = append(problems, problemName)
	}
	if len(phone) != 10 {
		problems = append(problems, problemPhone)
	}
	return customerDetails{Name: name, Phone: phone}, problems, true
}
