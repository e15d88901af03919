package extract

import (
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/araddon/dateparse"
	"github.com/claimwise/claimwise/internal/model"
)

// rawTextLimit caps the verbatim document snapshot retained for audit
const rawTextLimit = 6000

var (
	// Optional currency prefix, then either comma-grouped thousands or a
	// plain digit run, with an optional two-decimal suffix. The plain-run
	// alternative matters: amounts like 15000 written without separators
	// must not be truncated to their first three digits.
	amountRE = regexp.MustCompile(`\$?\s?([0-9]{1,3}(?:,[0-9]{3})+(?:\.[0-9]{2})?|[0-9]+(?:\.[0-9]{2})?)`)

	// Slash/dash dates (3/5/2024, 12-01-24) or ISO (2024-3-5)
	dateRE = regexp.MustCompile(`\d{1,2}[/-]\d{1,2}[/-]\d{2,4}|\d{4}-\d{1,2}-\d{1,2}`)

	// "Policy Number: P100", "policy #PN-5", "policy no. X-1"
	policyLabeledRE = regexp.MustCompile(`(?i)policy\s*(?:#|no\.?|number)[:\s]*([A-Z0-9][A-Z0-9-]*)`)
	// "Policy: P100" with an explicit separator, so "policyholder" never matches
	policyBareRE = regexp.MustCompile(`(?i)\bpolicy\s*[:#]\s*([A-Z0-9][A-Z0-9-]*)`)

	// "Name: John Smith" - two capitalized words after the label
	nameRE = regexp.MustCompile(`Name[:\s]*([A-Z][a-z]+\s+[A-Z][a-z]+)`)

	// Dash-separated day-first/month-first forms (12-01-2024, 3-5-24).
	// ISO dates never match: their year comes first with four digits.
	dashDateRE = regexp.MustCompile(`^\d{1,2}-\d{1,2}-\d{2,4}$`)
)

// Extractor pulls candidate claim fields from raw text using pattern
// matching. It never fails: a field without a match is simply absent.
type Extractor struct{}

// NewExtractor creates a new heuristic extractor
func NewExtractor() *Extractor {
	return &Extractor{}
}

// ExtractSimple applies each extraction rule independently, first match
// wins within each rule. The input text (truncated) is retained verbatim
// for audit and debugging.
func (e *Extractor) ExtractSimple(text string) model.RawExtraction {
	raw := model.RawExtraction{
		RawText: truncate(text, rawTextLimit),
	}

	if m := amountRE.FindStringSubmatch(text); m != nil {
		if v, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", ""), 64); err == nil {
			raw.EstimatedCost = v
		}
	}

	if d := dateRE.FindString(text); d != "" {
		// Fuzzy parse; on failure the field stays absent, never a sentinel
		if iso, ok := parseFuzzyDate(d); ok {
			raw.IncidentDate = iso
		}
	}

	if m := policyLabeledRE.FindStringSubmatch(text); m != nil {
		raw.PolicyNumber = m[1]
	} else if m := policyBareRE.FindStringSubmatch(text); m != nil {
		raw.PolicyNumber = m[1]
	}

	if m := nameRE.FindStringSubmatch(text); m != nil {
		raw.CustomerName = m[1]
	}

	return raw
}

// parseFuzzyDate parses a loosely formatted date candidate into an
// ISO-8601 date string. Non-ISO dash forms are rewritten to slashes
// first: the fuzzy parser accepts 12/01/2024 but not 12-01-2024.
func parseFuzzyDate(s string) (string, bool) {
	if dashDateRE.MatchString(s) {
		s = strings.ReplaceAll(s, "-", "/")
	}
	t, err := dateparse.ParseAny(s)
	if err != nil {
		return "", false
	}
	return t.Format("2006-01-02"), true
}

// truncate cuts s to at most limit bytes without splitting a rune
func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	for limit > 0 && !utf8.RuneStart(s[limit]) {
		limit--
	}
	return s[:limit]
}
