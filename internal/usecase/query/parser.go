package query

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Plan is the structured output of the translation pass.
type Plan struct {
	Query  string `json:"query"`
	Intent string `json:"intent,omitempty"`
}

// parsePlan decodes the model's response into a Plan. Responses wrapped in
// markdown code blocks are unwrapped first.
func parsePlan(content string) (*Plan, error) {
	content = extractJSON(content)

	var plan Plan
	if err := json.Unmarshal([]byte(content), &plan); err != nil {
		return nil, fmt.Errorf("failed to parse query plan: %w", err)
	}
	if strings.TrimSpace(plan.Query) == "" {
		return nil, fmt.Errorf("missing query in plan")
	}
	return &plan, nil
}

// extractJSON extracts JSON content from markdown code blocks or plain text
func extractJSON(content string) string {
	content = strings.TrimSpace(content)

	if strings.HasPrefix(content, "```json") {
		content = strings.TrimPrefix(content, "```json")
		content = strings.TrimPrefix(content, "```")
		if idx := strings.LastIndex(content, "```"); idx != -1 {
			content = content[:idx]
		}
	} else if strings.HasPrefix(content, "```") {
		content = strings.TrimPrefix(content, "```")
		if idx := strings.LastIndex(content, "```"); idx != -1 {
			content = content[:idx]
		}
	}

	return strings.TrimSpace(content)
}

var forbiddenKeywords = []string{
	"INSERT", "UPDATE", "DELETE", "DROP", "ALTER", "CREATE",
	"TRUNCATE", "GRANT", "REVOKE", "COPY", "MERGE", "INTO",
}

// isReadOnly accepts single SELECT (or WITH ... SELECT) statements and
// nothing else. The check is keyword-based and deliberately conservative.
func isReadOnly(statement string) bool {
	trimmed := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(statement), ";"))
	if trimmed == "" || strings.Contains(trimmed, ";") {
		return false
	}

	upper := strings.ToUpper(trimmed)
	if !strings.HasPrefix(upper, "SELECT") && !strings.HasPrefix(upper, "WITH") {
		return false
	}
	for _, keyword := range forbiddenKeywords {
		for _, field := range strings.Fields(upper) {
			if field == keyword {
				return false
			}
		}
	}
	return true
}
