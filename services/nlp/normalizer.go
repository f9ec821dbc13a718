// File: services/nlp/normalizer.go
package nlp

import (
	"regexp"
	"strings"
)

// contractions are expanded in order; the specific forms must precede the generic suffixes.
var contractions = []struct {
	from, to string
}{
	{"won't", "will not"},
	{"can't", "cannot"},
	{"n't", " not"},
	{"'re", " are"},
	{"'ve", " have"},
	{"'ll", " will"},
	{"'d", " would"},
	{"'m", " am"},
	{"let's", "let us"},
}

var stopwords = map[string]struct{}{
	"a": {}, "an": {}, "and": {}, "are": {}, "as": {}, "at": {}, "be": {}, "by": {}, "for": {}, "from": {},
	"has": {}, "he": {}, "in": {}, "is": {}, "it": {}, "its": {}, "of": {}, "on": {}, "that": {}, "the": {},
	"to": {}, "was": {}, "were": {}, "will": {}, "with": {}, "this": {}, "but": {}, "they": {},
	"have": {}, "had": {}, "what": {}, "said": {}, "each": {}, "which": {}, "do": {}, "how": {},
	"their": {}, "if": {}, "up": {}, "out": {}, "so": {}, "no": {}, "can": {}, "would": {}, "could": {},
}

var questionWords = map[string]struct{}{
	"what": {}, "where": {}, "when": {}, "why": {}, "who": {}, "whom": {}, "which": {}, "whose": {}, "how": {},
}

var punctuation = regexp.MustCompile(`[^\p{L}\p{N}\s]+`)

// Normalize lowercases text, expands contractions and collapses whitespace.
// Normalizing already-normalized text returns it unchanged.
func Normalize(text string) string {
	if text == "" {
		return ""
	}
	text = strings.ToLower(text)
	text = strings.ReplaceAll(text, "’", "'")
	for _, c := range contractions {
		text = strings.ReplaceAll(text, c.from, c.to)
	}
	return strings.Join(strings.Fields(text), " ")
}

// Tokenize splits normalized text into punctuation-free words.
func Tokenize(text string) []string {
	return strings.Fields(punctuation.ReplaceAllString(Normalize(text), " "))
}

// ExtractKeywords returns the tokens of text that are neither stopwords nor shorter than three characters.
func ExtractKeywords(text string) []string {
	var out []string
	for _, tok := range Tokenize(text) {
		if len(tok) <= 2 {
			continue
		}
		if _, stop := stopwords[tok]; stop {
			continue
		}
		out = append(out, tok)
	}
	return out
}

// Similarity is the Jaccard index of the keyword sets of a and b.
func Similarity(a, b string) float64 {
	ka, kb := keywordSet(a), keywordSet(b)
	if len(ka) == 0 || len(kb) == 0 {
		return 0
	}
	inter := 0
	for k := range ka {
		if _, ok := kb[k]; ok {
			inter++
		}
	}
	union := len(ka) + len(kb) - inter
	return float64(inter) / float64(union)
}

func keywordSet(text string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, k := range ExtractKeywords(text) {
		set[k] = struct{}{}
	}
	return set
}

// IsQuestion reports whether text ends with a question mark or opens with a question word.
func IsQuestion(text string) bool {
	text = strings.TrimSpace(text)
	if strings.HasSuffix(text, "?") {
		return true
	}
	fields := strings.Fields(strings.ToLower(text))
	if len(fields) == 0 {
		return false
	}
	_, ok := questionWords[fields[0]]
	return ok
}

// ContainsAny reports whether text contains any of the given substrings.
func ContainsAny(text string, subs ...string) bool {
	for _, s := range subs {
		if strings.Contains(text, s) {
			return true
		}
	}
	return false
}
