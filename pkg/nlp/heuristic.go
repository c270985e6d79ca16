package nlp

import (
	"regexp"
	"strings"
	"unicode"
)

// HeuristicEngine is the default local Engine. Sentence segmentation and
// person recognition are rule based; keyphrase scoring is embedding based via
// the configured Embedder.
type HeuristicEngine struct {
	ranker *ranker
}

// NewEngine creates a HeuristicEngine. A nil embedder selects the lexical
// hashing embedder, which needs no model files.
func NewEngine(embedder Embedder) *HeuristicEngine {
	if embedder == nil {
		embedder = NewHashingEmbedder(0)
	}
	return &HeuristicEngine{ranker: newRanker(embedder)}
}

var sentenceBoundary = regexp.MustCompile(`[.!?]+(?:\s+|$)`)

// SegmentSentences splits on line breaks and terminal punctuation.
func (e *HeuristicEngine) SegmentSentences(text string) []string {
	var sentences []string
	for _, line := range strings.Split(text, "\n") {
		for _, part := range sentenceBoundary.Split(line, -1) {
			part = strings.TrimSpace(part)
			if part != "" {
				sentences = append(sentences, part)
			}
		}
	}
	return sentences
}

// Capitalized words that start sentences or label note sections far more often
// than they name people. Runs made up entirely of these are not persons.
var nonPersonWords = map[string]bool{
	"a": true, "an": true, "the": true, "this": true, "that": true,
	"these": true, "those": true, "i": true, "we": true, "he": true,
	"she": true, "it": true, "they": true, "you": true, "and": true,
	"or": true, "but": true, "if": true, "in": true, "on": true, "at": true,
	"for": true, "to": true, "from": true, "with": true, "by": true,
	"please": true, "also": true, "next": true, "last": true, "new": true,
	"contact": true, "email": true, "note": true, "notes": true,
	"action": true, "actions": true, "item": true, "items": true,
	"todo": true, "decision": true, "decisions": true, "decided": true,
	"agreed": true, "conclusion": true, "resolved": true,
	"attendee": true, "attendees": true, "participant": true,
	"participants": true, "present": true, "assigned": true,
	"responsible": true, "meeting": true, "sprint": true, "review": true,
	"standup": true, "retro": true, "retrospective": true, "planning": true,
	"team": true, "project": true, "status": true, "update": true,
	"priority": true, "high": true, "medium": true, "low": true,
	"urgent": true, "due": true, "monday": true, "tuesday": true,
	"wednesday": true, "thursday": true, "friday": true, "saturday": true,
	"sunday": true, "january": true, "february": true, "march": true,
	"april": true, "may": true, "june": true, "july": true, "august": true,
	"september": true, "october": true, "november": true, "december": true,
}

// ExtractEntities recognizes person names as maximal runs (up to three words)
// of capitalized alphabetic words, skipping runs of section labels, sentence
// starters and all-caps acronyms. Every mention is reported, in document order.
func (e *HeuristicEngine) ExtractEntities(text string) []Entity {
	var entities []Entity
	for _, line := range strings.Split(text, "\n") {
		words := strings.Fields(line)
		var run []string
		flush := func() {
			if name := personRun(run); name != "" {
				entities = append(entities, Entity{Text: name, Label: LabelPerson})
			}
			run = run[:0]
		}
		for _, w := range words {
			token := strings.Trim(w, ",.;:!?()[]\"'")
			if isCapitalizedWord(token) && len(run) < 3 {
				run = append(run, token)
			} else {
				flush()
			}
			// Punctuation after the token ends the run even if the next
			// word is capitalized ("Alice, Bob" is two names).
			if token != w && strings.ContainsAny(w, ",.;:!?") {
				flush()
			}
		}
		flush()
	}
	return entities
}

// personRun filters a run of capitalized words down to a person name. A run
// qualifies only if at least one word is not a known non-person word.
func personRun(run []string) string {
	if len(run) == 0 {
		return ""
	}
	qualified := false
	for _, w := range run {
		if !nonPersonWords[strings.ToLower(w)] {
			qualified = true
			break
		}
	}
	if !qualified {
		return ""
	}
	// Trim leading label words ("Attendees Alice" after colon stripping).
	for len(run) > 0 && nonPersonWords[strings.ToLower(run[0])] {
		run = run[1:]
	}
	return strings.Join(run, " ")
}

func isCapitalizedWord(token string) bool {
	if len(token) < 2 {
		return false
	}
	runes := []rune(token)
	if !unicode.IsUpper(runes[0]) {
		return false
	}
	upper := 0
	for _, r := range runes {
		if !unicode.IsLetter(r) {
			return false
		}
		if unicode.IsUpper(r) {
			upper++
		}
	}
	// All-caps tokens are acronyms, not names.
	return upper < len(runes)
}

// ExtractKeyphrases ranks unigram/bigram candidates from the full document.
func (e *HeuristicEngine) ExtractKeyphrases(text string, topN int) ([]string, error) {
	return e.ranker.Rank(text, topN)
}
