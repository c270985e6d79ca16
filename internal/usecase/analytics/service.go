package analytics

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/notegraph-dev/notegraph/errors"
	"github.com/notegraph-dev/notegraph/internal/domain/repositories"
)

const (
	metricsCacheKey = "analytics:efficiency"
	metricsCacheTTL = 5 * time.Minute

	progressCacheTTL = 30 * time.Minute
)

// Cache stores serialized report payloads with a TTL.
type Cache interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
}

// TextGenerator produces free-text analysis from a prompt.
type TextGenerator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// ProgressReport is the team progress summary over a period.
type ProgressReport struct {
	Since      time.Time                       `json:"since"`
	Aggregates repositories.ProgressAggregates `json:"aggregates"`
	// Analysis is the LLM-written narrative. Empty when no generator is
	// configured or the call failed.
	Analysis string `json:"analysis,omitempty"`
}

// Service answers reporting queries over the meeting graph. cache and llm may
// both be nil; the service then always hits the store and skips narrative
// analysis.
type Service struct {
	repo   repositories.AnalyticsRepository
	cache  Cache
	llm    TextGenerator
	logger *zap.Logger
}

// NewService creates an analytics Service.
func NewService(repo repositories.AnalyticsRepository, cache Cache, llm TextGenerator, logger *zap.Logger) *Service {
	return &Service{repo: repo, cache: cache, llm: llm, logger: logger}
}

// WeeklyReport lists meetings from the last seven days with their topics,
// actions and attendees.
func (s *Service) WeeklyReport(ctx context.Context) ([]repositories.MeetingReport, error) {
	now := time.Now()
	reports, err := s.repo.RecentMeetings(ctx, now.AddDate(0, 0, -7), now)
	if err != nil {
		return nil, errors.ErrInternal(err)
	}
	return reports, nil
}

// PendingActionItems lists every pending action item with its assignee.
func (s *Service) PendingActionItems(ctx context.Context) ([]repositories.PendingAction, error) {
	actions, err := s.repo.PendingActionItems(ctx)
	if err != nil {
		return nil, errors.ErrInternal(err)
	}
	return actions, nil
}

// TopicHistory lists the meetings where a topic was discussed, newest first.
func (s *Service) TopicHistory(ctx context.Context, topic string) ([]repositories.TopicMention, error) {
	if strings.TrimSpace(topic) == "" {
		return nil, errors.ErrInvalidArgument("topic is required")
	}
	mentions, err := s.repo.TopicHistory(ctx, topic)
	if err != nil {
		return nil, errors.ErrInternal(err)
	}
	return mentions, nil
}

// PersonTasks lists the action items assigned to a person.
func (s *Service) PersonTasks(ctx context.Context, person string) ([]repositories.PersonTask, error) {
	if strings.TrimSpace(person) == "" {
		return nil, errors.ErrInvalidArgument("person is required")
	}
	tasks, err := s.repo.PersonTasks(ctx, person)
	if err != nil {
		return nil, errors.ErrInternal(err)
	}
	return tasks, nil
}

// SearchMeetings finds meetings whose title or topics match the keyword.
func (s *Service) SearchMeetings(ctx context.Context, keyword string) ([]repositories.MeetingReport, error) {
	if strings.TrimSpace(keyword) == "" {
		return nil, errors.ErrInvalidArgument("keyword is required")
	}
	reports, err := s.repo.SearchMeetings(ctx, keyword)
	if err != nil {
		return nil, errors.ErrInternal(err)
	}
	return reports, nil
}

// TopicCooccurrence lists topic pairs discussed together in more than one
// meeting.
func (s *Service) TopicCooccurrence(ctx context.Context) ([]repositories.TopicPair, error) {
	pairs, err := s.repo.TopicCooccurrence(ctx)
	if err != nil {
		return nil, errors.ErrInternal(err)
	}
	return pairs, nil
}

// Bottlenecks lists people carrying at least minPending pending items.
// minPending <= 0 selects the default threshold of 3.
func (s *Service) Bottlenecks(ctx context.Context, minPending int) ([]repositories.Bottleneck, error) {
	if minPending <= 0 {
		minPending = 3
	}
	bottlenecks, err := s.repo.Bottlenecks(ctx, minPending)
	if err != nil {
		return nil, errors.ErrInternal(err)
	}
	return bottlenecks, nil
}

// EfficiencyMetrics returns per-meeting output averages, cached briefly since
// the counts change only on ingestion.
func (s *Service) EfficiencyMetrics(ctx context.Context) (*repositories.EfficiencyMetrics, error) {
	if cached, ok := s.cacheGet(ctx, metricsCacheKey); ok {
		var metrics repositories.EfficiencyMetrics
		if err := json.Unmarshal([]byte(cached), &metrics); err == nil {
			return &metrics, nil
		}
	}

	metrics, err := s.repo.EfficiencyMetrics(ctx)
	if err != nil {
		return nil, errors.ErrInternal(err)
	}
	s.cacheSet(ctx, metricsCacheKey, metrics, metricsCacheTTL)
	return metrics, nil
}

// ProgressReport aggregates activity since the given number of days ago and,
// when a generator is configured, adds a narrative analysis. Generation
// failures degrade to an aggregates-only report.
func (s *Service) ProgressReport(ctx context.Context, days int) (*ProgressReport, error) {
	if days <= 0 {
		days = 30
	}
	since := time.Now().AddDate(0, 0, -days)

	cacheKey := fmt.Sprintf("analytics:progress:%d", days)
	if cached, ok := s.cacheGet(ctx, cacheKey); ok {
		var report ProgressReport
		if err := json.Unmarshal([]byte(cached), &report); err == nil {
			return &report, nil
		}
	}

	agg, err := s.repo.ProgressAggregates(ctx, since)
	if err != nil {
		return nil, errors.ErrInternal(err)
	}

	report := &ProgressReport{Since: since, Aggregates: *agg}
	if s.llm != nil {
		analysis, err := s.llm.GenerateText(ctx, progressPrompt(days, agg))
		if err != nil {
			s.logger.Warn("progress analysis generation failed", zap.Error(err))
		} else {
			report.Analysis = strings.TrimSpace(analysis)
		}
	}

	s.cacheSet(ctx, cacheKey, report, progressCacheTTL)
	return report, nil
}

func progressPrompt(days int, agg *repositories.ProgressAggregates) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You are analyzing a team's meeting activity from the last %d days.\n\n", days)
	fmt.Fprintf(&b, "Meetings held: %d\n", agg.TotalMeetings)
	fmt.Fprintf(&b, "Topics discussed: %s\n", strings.Join(agg.Topics, ", "))
	fmt.Fprintf(&b, "Decisions made: %s\n", strings.Join(agg.Decisions, "; "))
	b.WriteString("Open action items:\n")
	for _, item := range agg.ActionItems {
		fmt.Fprintf(&b, "- %s (assignee: %s, priority: %s)\n", item.Description, item.Assignee, item.Priority)
	}
	b.WriteString("\nWrite a short progress analysis: main themes, decision momentum, and where work is piling up.")
	return b.String()
}

func (s *Service) cacheGet(ctx context.Context, key string) (string, bool) {
	if s.cache == nil {
		return "", false
	}
	value, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		s.logger.Warn("cache read failed", zap.String("key", key), zap.Error(err))
		return "", false
	}
	return value, ok
}

func (s *Service) cacheSet(ctx context.Context, key string, value any, ttl time.Duration) {
	if s.cache == nil {
		return
	}
	payload, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, string(payload), ttl); err != nil {
		s.logger.Warn("cache write failed", zap.String("key", key), zap.Error(err))
	}
}
