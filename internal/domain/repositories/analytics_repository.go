package repositories

import (
	"context"
	"time"
)

// MeetingReport is one meeting with its collected context.
type MeetingReport struct {
	Title     string    `json:"title"`
	Type      string    `json:"type,omitempty"`
	Timestamp time.Time `json:"timestamp"`
	Topics    []string  `json:"topics"`
	Actions   []string  `json:"actions"`
	Attendees []string  `json:"attendees"`
}

// PendingAction is one unfinished action item with its assignee.
type PendingAction struct {
	Description string `json:"description"`
	Assignee    string `json:"assignee"`
	Priority    string `json:"priority"`
}

// TopicMention is one meeting in a topic's discussion history.
type TopicMention struct {
	Meeting   string    `json:"meeting"`
	Timestamp time.Time `json:"timestamp"`
	Actions   []string  `json:"actions"`
}

// PersonTask is one action item assigned to a person.
type PersonTask struct {
	Task     string `json:"task"`
	Status   string `json:"status"`
	Priority string `json:"priority"`
	Meeting  string `json:"meeting"`
}

// TopicPair is a pair of topics discussed together in more than one meeting.
type TopicPair struct {
	Topic1       string `json:"topic1"`
	Topic2       string `json:"topic2"`
	Cooccurrence int    `json:"cooccurrence"`
}

// Bottleneck is a person carrying too many pending items.
type Bottleneck struct {
	Person       string   `json:"person"`
	PendingTasks int      `json:"pending_tasks"`
	Tasks        []string `json:"tasks"`
}

// EfficiencyMetrics aggregates per-meeting output counts.
type EfficiencyMetrics struct {
	TotalMeetings  int     `json:"total_meetings"`
	TotalActions   int     `json:"total_actions"`
	TotalDecisions int     `json:"total_decisions"`
	AvgTopics      float64 `json:"avg_topics_per_meeting"`
	AvgActions     float64 `json:"avg_actions_per_meeting"`
	AvgDecisions   float64 `json:"avg_decisions_per_meeting"`
}

// ProgressAggregates is the raw input to a progress report.
type ProgressAggregates struct {
	TotalMeetings int             `json:"total_meetings"`
	Topics        []string        `json:"topics"`
	Decisions     []string        `json:"decisions"`
	ActionItems   []PendingAction `json:"action_items"`
}

// AnalyticsRepository reads aggregated views over the meeting graph.
type AnalyticsRepository interface {
	RecentMeetings(ctx context.Context, start, end time.Time) ([]MeetingReport, error)
	PendingActionItems(ctx context.Context) ([]PendingAction, error)
	TopicHistory(ctx context.Context, topic string) ([]TopicMention, error)
	PersonTasks(ctx context.Context, person string) ([]PersonTask, error)
	SearchMeetings(ctx context.Context, keyword string) ([]MeetingReport, error)
	TopicCooccurrence(ctx context.Context) ([]TopicPair, error)
	Bottlenecks(ctx context.Context, minPending int) ([]Bottleneck, error)
	EfficiencyMetrics(ctx context.Context) (*EfficiencyMetrics, error)
	ProgressAggregates(ctx context.Context, since time.Time) (*ProgressAggregates, error)

	// RunReadOnlyQuery executes a generated SELECT statement and returns
	// generic rows. Callers are responsible for vetting the statement first.
	RunReadOnlyQuery(ctx context.Context, query string) ([]map[string]any, error)
}
