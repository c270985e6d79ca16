package extract

import (
	"regexp"

	"github.com/notegraph-dev/notegraph/pkg/nlp"
)

var assignedToPattern = regexp.MustCompile(`(?i)assigned to:?\s*(\w+)`)

// AssigneeResolver resolves the owner of an action item from its sentence.
type AssigneeResolver struct {
	engine nlp.Engine
}

// NewAssigneeResolver creates an AssigneeResolver backed by the given engine.
func NewAssigneeResolver(engine nlp.Engine) *AssigneeResolver {
	return &AssigneeResolver{engine: engine}
}

// Resolve prefers the first person entity in the sentence (leftmost, in
// engine output order), then falls back to an "assigned to: <token>" anchor.
// An empty result means the action item is dropped during persistence.
func (r *AssigneeResolver) Resolve(sentence string) string {
	for _, entity := range r.engine.ExtractEntities(sentence) {
		if entity.Label == nlp.LabelPerson {
			return entity.Text
		}
	}

	if match := assignedToPattern.FindStringSubmatch(sentence); match != nil {
		return match[1]
	}
	return ""
}
