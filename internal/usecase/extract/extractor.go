package extract

import (
	"regexp"
	"strings"

	"github.com/notegraph-dev/notegraph/internal/domain/entities"
	"github.com/notegraph-dev/notegraph/pkg/nlp"
)

// Anchor-pattern families, tried in order per sentence. Each pattern is
// case-insensitive with a single capturing span holding the trailing
// free text. Multiple families may fire on one sentence; there is no
// cross-family suppression.
var (
	actionPatterns = compileAll(
		`action(?:\s+item)?s?:?\s*(.*)`,
		`todo:?\s*(.*)`,
		`(?:assigned|assigned to|responsible):\s*(.*)`,
		`\w+\s+(?:will|shall|to)\s+(?:handle|do|implement|create|setup|prepare)\s*(.*)`,
	)
	decisionPatterns = compileAll(
		`decision:?\s*(.*)`,
		`decided:?\s*(.*)`,
		`agreed:?\s*(.*)`,
		`conclusion:?\s*(.*)`,
		`resolved:?\s*(.*)`,
	)
	attendeePatterns = compileAll(
		`attendees?:?\s*(.*)`,
		`participants?:?\s*(.*)`,
		`present:?\s*(.*)`,
	)

	attendeeSeparator = regexp.MustCompile(`[,;]|\sand\s`)
)

func compileAll(patterns ...string) []*regexp.Regexp {
	compiled := make([]*regexp.Regexp, len(patterns))
	for i, p := range patterns {
		compiled[i] = regexp.MustCompile(`(?i)` + p)
	}
	return compiled
}

// PatternExtractor performs rule-based extraction of action items, decisions
// and attendee lists over segmented sentences. The pattern tables are fixed
// at construction.
type PatternExtractor struct {
	engine   nlp.Engine
	assignee *AssigneeResolver
	emails   *EmailResolver
}

// NewPatternExtractor creates a PatternExtractor backed by the given engine.
func NewPatternExtractor(engine nlp.Engine) *PatternExtractor {
	return &PatternExtractor{
		engine:   engine,
		assignee: NewAssigneeResolver(engine),
		emails:   NewEmailResolver(),
	}
}

// ExtractActionItems scans each sentence for action anchors and enriches
// every hit with assignee and priority. Empty captures are discarded; items
// whose assignee could not be resolved are kept in the record but dropped
// later during persistence.
func (x *PatternExtractor) ExtractActionItems(text string) []entities.ExtractedActionItem {
	var items []entities.ExtractedActionItem
	for _, sentence := range x.engine.SegmentSentences(text) {
		for _, pattern := range actionPatterns {
			for _, match := range pattern.FindAllStringSubmatch(sentence, -1) {
				description := strings.TrimSpace(match[1])
				if description == "" {
					continue
				}
				items = append(items, entities.ExtractedActionItem{
					Description: description,
					Assignee:    x.assignee.Resolve(sentence),
					Priority:    ClassifyPriority(sentence),
					Status:      entities.ActionItemStatusPending,
				})
			}
		}
	}
	return items
}

// ExtractDecisions scans each sentence for decision anchors.
func (x *PatternExtractor) ExtractDecisions(text string) []string {
	var decisions []string
	for _, sentence := range x.engine.SegmentSentences(text) {
		for _, pattern := range decisionPatterns {
			for _, match := range pattern.FindAllStringSubmatch(sentence, -1) {
				if decision := strings.TrimSpace(match[1]); decision != "" {
					decisions = append(decisions, decision)
				}
			}
		}
	}
	return decisions
}

// ExtractAttendees first looks for explicit attendee lists anywhere in the
// document, splitting captures on commas, semicolons and "and". When no
// explicit list exists, the attendee set is populated from person entities
// recognized across the whole document.
func (x *PatternExtractor) ExtractAttendees(text string) []entities.Attendee {
	var attendees []entities.Attendee
	for _, pattern := range attendeePatterns {
		for _, match := range pattern.FindAllStringSubmatch(text, -1) {
			for _, name := range attendeeSeparator.Split(match[1], -1) {
				name = strings.TrimSpace(name)
				if name == "" {
					continue
				}
				attendees = append(attendees, entities.Attendee{
					Name:  name,
					Email: x.emails.Resolve(name, text),
				})
			}
		}
	}

	if len(attendees) == 0 {
		for _, entity := range x.engine.ExtractEntities(text) {
			if entity.Label != nlp.LabelPerson {
				continue
			}
			attendees = append(attendees, entities.Attendee{
				Name:  entity.Text,
				Email: x.emails.Resolve(entity.Text, text),
			})
		}
	}
	return attendees
}
