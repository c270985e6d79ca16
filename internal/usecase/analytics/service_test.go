package analytics

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/notegraph-dev/notegraph/internal/domain/repositories"
)

type stubRepo struct {
	repositories.AnalyticsRepository

	metrics      *repositories.EfficiencyMetrics
	metricsCalls int
	aggregates   *repositories.ProgressAggregates
	pending      []repositories.PendingAction
}

func (r *stubRepo) EfficiencyMetrics(ctx context.Context) (*repositories.EfficiencyMetrics, error) {
	r.metricsCalls++
	return r.metrics, nil
}

func (r *stubRepo) ProgressAggregates(ctx context.Context, since time.Time) (*repositories.ProgressAggregates, error) {
	return r.aggregates, nil
}

func (r *stubRepo) PendingActionItems(ctx context.Context) ([]repositories.PendingAction, error) {
	return r.pending, nil
}

type mapCache struct {
	entries map[string]string
}

func newMapCache() *mapCache {
	return &mapCache{entries: make(map[string]string)}
}

func (c *mapCache) Get(ctx context.Context, key string) (string, bool, error) {
	value, ok := c.entries[key]
	return value, ok, nil
}

func (c *mapCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	c.entries[key] = value
	return nil
}

type stubGenerator struct {
	response string
	err      error
	prompts  []string
}

func (g *stubGenerator) GenerateText(ctx context.Context, prompt string) (string, error) {
	g.prompts = append(g.prompts, prompt)
	return g.response, g.err
}

func TestEfficiencyMetricsCachesResult(t *testing.T) {
	repo := &stubRepo{metrics: &repositories.EfficiencyMetrics{TotalMeetings: 4, AvgActions: 1.5}}
	svc := NewService(repo, newMapCache(), nil, zap.NewNop())

	first, err := svc.EfficiencyMetrics(context.Background())
	require.NoError(t, err)
	second, err := svc.EfficiencyMetrics(context.Background())
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, repo.metricsCalls, "second call should be served from cache")
}

func TestProgressReportIncludesAnalysis(t *testing.T) {
	repo := &stubRepo{aggregates: &repositories.ProgressAggregates{
		TotalMeetings: 2,
		Topics:        []string{"deployment pipeline", "hiring"},
		Decisions:     []string{"freeze the release branch"},
		ActionItems: []repositories.PendingAction{
			{Description: "update the runbook", Assignee: "Bob", Priority: "high"},
		},
	}}
	gen := &stubGenerator{response: "  Deployment work dominates; Bob is overloaded.  "}
	svc := NewService(repo, nil, gen, zap.NewNop())

	report, err := svc.ProgressReport(context.Background(), 14)
	require.NoError(t, err)

	assert.Equal(t, "Deployment work dominates; Bob is overloaded.", report.Analysis)
	assert.Equal(t, 2, report.Aggregates.TotalMeetings)
	require.Len(t, gen.prompts, 1)
	assert.Contains(t, gen.prompts[0], "last 14 days")
	assert.Contains(t, gen.prompts[0], "deployment pipeline")
	assert.Contains(t, gen.prompts[0], "update the runbook (assignee: Bob, priority: high)")
}

func TestProgressReportDegradesWithoutAnalysis(t *testing.T) {
	repo := &stubRepo{aggregates: &repositories.ProgressAggregates{TotalMeetings: 1}}
	gen := &stubGenerator{err: fmt.Errorf("rate limited")}
	svc := NewService(repo, nil, gen, zap.NewNop())

	report, err := svc.ProgressReport(context.Background(), 7)
	require.NoError(t, err)
	assert.Empty(t, report.Analysis)
	assert.Equal(t, 1, report.Aggregates.TotalMeetings)
}

func TestTopicHistoryRequiresTopic(t *testing.T) {
	svc := NewService(&stubRepo{}, nil, nil, zap.NewNop())
	_, err := svc.TopicHistory(context.Background(), "  ")
	assert.Error(t, err)
}

func TestPendingActionItems(t *testing.T) {
	repo := &stubRepo{pending: []repositories.PendingAction{
		{Description: "rotate the certs", Assignee: "Alice", Priority: "high"},
	}}
	svc := NewService(repo, nil, nil, zap.NewNop())

	actions, err := svc.PendingActionItems(context.Background())
	require.NoError(t, err)
	require.Len(t, actions, 1)
	assert.Equal(t, "Alice", actions[0].Assignee)
}
