package extract

import (
	"strings"

	"github.com/notegraph-dev/notegraph/internal/domain/entities"
)

// priorityKeywords is checked in fixed order: high, then medium, then low.
// The order is a contract — a sentence containing both a high and a low
// keyword classifies high.
var priorityKeywords = []struct {
	label    string
	keywords []string
}{
	{entities.ActionItemPriorityHigh, []string{"urgent", "critical", "important", "asap", "high priority"}},
	{entities.ActionItemPriorityMedium, []string{"medium", "moderate", "normal"}},
	{entities.ActionItemPriorityLow, []string{"low", "minor", "when possible", "if time permits"}},
}

// ClassifyPriority maps sentence content to a priority label. Sentences with
// no priority keyword default to medium.
func ClassifyPriority(sentence string) string {
	lower := strings.ToLower(sentence)
	for _, set := range priorityKeywords {
		for _, keyword := range set.keywords {
			if strings.Contains(lower, keyword) {
				return set.label
			}
		}
	}
	return entities.ActionItemPriorityMedium
}
