package names

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"idcheck/internal/verification/textnorm"
)

// rule captures a candidate name run in group 1. Rules of a kind are tried in
// order and the first one producing a valid name wins.
type rule struct {
	name    string
	pattern *regexp.Regexp
}

var identityRules = []rule{
	{
		// Labeled field, run ends at a line break, a digit or the next field label.
		name:    "identity_labeled_bounded",
		pattern: regexp.MustCompile(`(?im)nome\s*/?\s*name[\s:]*(\p{L}[\p{L}\s]*?)(?:\n|$|\d|\bcpf\b|\bsexo\b|\bnome\s+social\b)`),
	},
	{
		name:    "identity_labeled",
		pattern: regexp.MustCompile(`(?i)nome\s*/?\s*name[\s:]*(\p{L}[\p{L}\s]*)`),
	},
	{
		name:    "identity_before_social_name",
		pattern: regexp.MustCompile(`(?i)nome[\s:]*(\p{L}[\p{L}\s]*?)\s*nome\s+social`),
	},
}

var billingRules = []rule{
	{
		name:    "billing_leading_line",
		pattern: regexp.MustCompile(`(?im)^(\p{L}[\p{L}\s]*?)(?:\n|$|\d|\bc[óo]digo\b|\bvencimento\b)`),
	},
	{
		name:    "billing_holder_label",
		pattern: regexp.MustCompile(`(?i)(?:cliente|titular|benefici[áa]rio)[\s:]*(\p{L}[\p{L}\s]*)`),
	},
}

// socialNameSuffix is a known false continuation on Brazilian ID layouts.
var socialNameSuffix = regexp.MustCompile(`(?is)\s*nome\s+social.*$`)

// minNameTokens is the number of tokens longer than two runes a name needs.
const minNameTokens = 2

// Extractor pulls a person name out of OCR text. It is immutable and safe for
// concurrent use.
type Extractor struct {
	identityStops stopSet
	billingStops  stopSet
}

// NewExtractor builds an extractor with the built-in stop words plus extra,
// which apply to both document kinds.
func NewExtractor(extra ...string) *Extractor {
	return &Extractor{
		identityStops: newStopSet(identityStopWords, extra),
		billingStops:  newStopSet(identityStopWords, billingStopWords, extra),
	}
}

var defaultExtractor = NewExtractor()

// Extract runs the default extractor.
func Extract(text string, kind DocumentKind) ExtractedName {
	return defaultExtractor.Extract(text, kind)
}

// Extract returns the first valid name found in text, or the zero value.
func (e *Extractor) Extract(text string, kind DocumentKind) ExtractedName {
	name, _ := e.ExtractWithRule(text, kind)
	return name
}

// ExtractWithRule is Extract that also names the rule that matched. The rule is
// empty when nothing was found.
func (e *Extractor) ExtractWithRule(text string, kind DocumentKind) (ExtractedName, string) {
	rules, stops := e.rulesFor(kind)
	text = textnorm.NormalizeLines(text)
	if text == "" || rules == nil {
		return ExtractedName{}, ""
	}

	for _, r := range rules {
		for _, m := range r.pattern.FindAllStringSubmatch(text, -1) {
			if name, ok := clean(m[1], stops); ok {
				return ExtractedName{value: name}, r.name
			}
		}
	}
	return ExtractedName{}, ""
}

func (e *Extractor) rulesFor(kind DocumentKind) ([]rule, stopSet) {
	switch kind {
	case KindIdentity:
		return identityRules, e.identityStops
	case KindBilling:
		return billingRules, e.billingStops
	}
	return nil, nil
}

// clean turns a captured run into a canonical name, or reports false when the
// run does not hold enough name tokens.
func clean(run string, stops stopSet) (string, bool) {
	run = socialNameSuffix.ReplaceAllString(run, "")

	kept := make([]string, 0, 4)
	for _, tok := range strings.Fields(run) {
		if stops.contains(tok) {
			continue
		}
		if utf8.RuneCountInString(tok) <= 2 && !isParticle(tok) {
			continue
		}
		kept = append(kept, tok)
	}

	// A particle never starts or ends a name.
	for len(kept) > 0 && isParticle(kept[0]) {
		kept = kept[1:]
	}
	for len(kept) > 0 && isParticle(kept[len(kept)-1]) {
		kept = kept[:len(kept)-1]
	}

	significant := 0
	for _, tok := range kept {
		if !isParticle(tok) && utf8.RuneCountInString(tok) > 2 {
			significant++
		}
	}
	if significant < minNameTokens {
		return "", false
	}
	return titleCase(strings.Join(kept, " ")), true
}
