package query

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/notegraph-dev/notegraph/errors"
	"github.com/notegraph-dev/notegraph/internal/domain/repositories"
)

// schemaPrompt describes the graph schema the model translates against.
const schemaPrompt = `The meeting graph is stored in PostgreSQL:

meetings(id uuid, title text, type text, timestamp timestamptz)
topics(id uuid, name text unique)
persons(id uuid, name text unique, email text)
action_items(id uuid, description text, status text, priority text)
decisions(id uuid, content text)
graph_edges(id uuid, kind text, from_id uuid, to_id uuid)

Edge kinds and their directions:
- DISCUSSES: meeting -> topic
- HAS_ACTION_ITEM: meeting -> action_item
- ASSIGNED_TO: action_item -> person
- MADE_DECISION: meeting -> decision
- HAS_ATTENDEE: meeting -> person

Action item status is one of pending, in_progress, completed.
Priority is one of low, medium, high.`

// defaultQuery is used when the model's plan cannot be parsed.
const defaultQuery = `SELECT title, type, timestamp FROM meetings ORDER BY timestamp DESC LIMIT 10`

// Translator turns a prompt into model output.
type Translator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// Result is one answered natural-language question.
type Result struct {
	Question string           `json:"question"`
	Query    string           `json:"query"`
	Rows     []map[string]any `json:"rows"`
	// Answer is the model's phrasing of the rows. Empty when the answer pass
	// failed; the rows are still returned.
	Answer string `json:"answer,omitempty"`
}

// Service answers natural-language questions about the meeting graph by
// translating them to SQL, vetting the statement, executing it read-only and
// phrasing the result.
type Service struct {
	llm    Translator
	repo   repositories.AnalyticsRepository
	logger *zap.Logger
}

// NewService creates a query Service.
func NewService(llm Translator, repo repositories.AnalyticsRepository, logger *zap.Logger) *Service {
	return &Service{llm: llm, repo: repo, logger: logger}
}

// Ask runs the full translate-vet-execute-answer sequence for one question.
func (s *Service) Ask(ctx context.Context, question string) (*Result, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, errors.ErrInvalidArgument("question is required")
	}

	raw, err := s.llm.GenerateText(ctx, translationPrompt(question))
	if err != nil {
		return nil, errors.ErrQueryTranslationFailed(err)
	}

	plan, err := parsePlan(raw)
	if err != nil {
		// An unparseable plan falls back to a generic recent-meetings query
		// rather than failing the question outright.
		s.logger.Warn("falling back to default query",
			zap.String("question", question),
			zap.Error(err))
		plan = &Plan{Query: defaultQuery, Intent: "recent meetings"}
	}

	statement := strings.TrimSpace(plan.Query)
	if !isReadOnly(statement) {
		return nil, errors.ErrQueryRejected(statement)
	}

	rows, err := s.repo.RunReadOnlyQuery(ctx, statement)
	if err != nil {
		return nil, errors.ErrQueryExecutionFailed(err)
	}

	result := &Result{Question: question, Query: statement, Rows: rows}
	answer, err := s.llm.GenerateText(ctx, answerPrompt(question, rows))
	if err != nil {
		s.logger.Warn("answer phrasing failed",
			zap.String("question", question),
			zap.Error(err))
		return result, nil
	}
	result.Answer = strings.TrimSpace(answer)
	return result, nil
}

func translationPrompt(question string) string {
	var b strings.Builder
	b.WriteString(schemaPrompt)
	b.WriteString("\n\nTranslate the question into one PostgreSQL SELECT statement.\n")
	b.WriteString("Respond with JSON only: {\"query\": \"...\", \"intent\": \"...\"}\n\n")
	fmt.Fprintf(&b, "Question: %s", question)
	return b.String()
}

func answerPrompt(question string, rows []map[string]any) string {
	payload, err := json.Marshal(rows)
	if err != nil {
		payload = []byte("[]")
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Question: %s\n\nQuery result rows (JSON):\n%s\n\n", question, payload)
	b.WriteString("Answer the question in one or two sentences using only these rows. If the rows are empty, say so.")
	return b.String()
}
