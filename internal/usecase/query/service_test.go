package query

import (
	"context"
	goerrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/notegraph-dev/notegraph/errors"
	"github.com/notegraph-dev/notegraph/internal/domain/repositories"
)

type scriptedLLM struct {
	responses []string
	calls     int
}

func (l *scriptedLLM) GenerateText(ctx context.Context, prompt string) (string, error) {
	if l.calls >= len(l.responses) {
		return "", goerrors.New("no scripted response")
	}
	response := l.responses[l.calls]
	l.calls++
	return response, nil
}

type queryRepo struct {
	repositories.AnalyticsRepository

	executed []string
	rows     []map[string]any
}

func (r *queryRepo) RunReadOnlyQuery(ctx context.Context, query string) ([]map[string]any, error) {
	r.executed = append(r.executed, query)
	return r.rows, nil
}

func TestAskExecutesTranslatedQuery(t *testing.T) {
	llm := &scriptedLLM{responses: []string{
		"```json\n{\"query\": \"SELECT name FROM persons\", \"intent\": \"list people\"}\n```",
		"There are two people: Alice and Bob.",
	}}
	repo := &queryRepo{rows: []map[string]any{{"name": "Alice"}, {"name": "Bob"}}}
	svc := NewService(llm, repo, zap.NewNop())

	result, err := svc.Ask(context.Background(), "who is in the graph?")
	require.NoError(t, err)

	assert.Equal(t, []string{"SELECT name FROM persons"}, repo.executed)
	assert.Len(t, result.Rows, 2)
	assert.Equal(t, "There are two people: Alice and Bob.", result.Answer)
}

func TestAskFallsBackOnUnparseablePlan(t *testing.T) {
	llm := &scriptedLLM{responses: []string{
		"I cannot translate that, sorry.",
		"No recent meetings.",
	}}
	repo := &queryRepo{}
	svc := NewService(llm, repo, zap.NewNop())

	result, err := svc.Ask(context.Background(), "what happened last week?")
	require.NoError(t, err)
	require.Len(t, repo.executed, 1)
	assert.Equal(t, defaultQuery, result.Query)
}

func TestAskRejectsWriteStatements(t *testing.T) {
	llm := &scriptedLLM{responses: []string{
		`{"query": "DELETE FROM meetings"}`,
	}}
	repo := &queryRepo{}
	svc := NewService(llm, repo, zap.NewNop())

	_, err := svc.Ask(context.Background(), "clear everything")
	require.Error(t, err)

	var appErr errors.AppError
	require.True(t, goerrors.As(err, &appErr))
	assert.Equal(t, errors.ErrorCode_QUERY_REJECTED, appErr.Code)
	assert.Empty(t, repo.executed)
}

func TestAskKeepsRowsWhenAnswerPassFails(t *testing.T) {
	llm := &scriptedLLM{responses: []string{
		`{"query": "SELECT title FROM meetings"}`,
	}}
	repo := &queryRepo{rows: []map[string]any{{"title": "Standup"}}}
	svc := NewService(llm, repo, zap.NewNop())

	result, err := svc.Ask(context.Background(), "list meetings")
	require.NoError(t, err)
	assert.Empty(t, result.Answer)
	assert.Len(t, result.Rows, 1)
}

func TestIsReadOnly(t *testing.T) {
	cases := []struct {
		statement string
		want      bool
	}{
		{"SELECT * FROM meetings", true},
		{"select title from meetings;", true},
		{"WITH recent AS (SELECT id FROM meetings) SELECT * FROM recent", true},
		{"DROP TABLE meetings", false},
		{"SELECT title, type INTO meetings_backup FROM meetings", false},
		{"SELECT 1; DELETE FROM meetings", false},
		{"", false},
		{"UPDATE persons SET email = NULL", false},
	}
	for _, tc := range cases {
		if got := isReadOnly(tc.statement); got != tc.want {
			t.Errorf("isReadOnly(%q) = %v, want %v", tc.statement, got, tc.want)
		}
	}
}
