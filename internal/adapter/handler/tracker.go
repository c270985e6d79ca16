package handler

import (
	"context"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/notegraph-dev/notegraph/errors"
	"github.com/notegraph-dev/notegraph/internal/domain/repositories"
	"github.com/notegraph-dev/notegraph/internal/usecase/analytics"
)

// IssueCreator files issues for action items in an external tracker.
type IssueCreator interface {
	CreateIssues(ctx context.Context, actions []repositories.PendingAction) ([]string, error)
}

// Tracker pushes pending action items to the issue tracker
type Tracker struct {
	analytics *analytics.Service
	creator   IssueCreator
	logger    *zap.Logger
}

// NewTrackerHandler creates a new tracker handler. creator is nil when the
// integration is not configured.
func NewTrackerHandler(analytics *analytics.Service, creator IssueCreator, logger *zap.Logger) *Tracker {
	return &Tracker{analytics: analytics, creator: creator, logger: logger}
}

// SyncPendingActions files one issue per pending action item.
// POST /v1/tracker/issues
func (h *Tracker) SyncPendingActions(c echo.Context) error {
	if h.creator == nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("issue tracker is not configured"))
	}

	ctx := c.Request().Context()
	actions, err := h.analytics.PendingActionItems(ctx)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	urls, err := h.creator.CreateIssues(ctx, actions)
	if err != nil {
		// Earlier issues in the batch may already exist; report both.
		return HandleError(h.logger, c,
			errors.ErrTrackerFailed("create issues", err).WithDetail("created", joinURLs(urls)))
	}

	return HandleSuccess(h.logger, c, map[string]any{
		"created": len(urls),
		"issues":  urls,
	})
}

func joinURLs(urls []string) string {
	out := ""
	for i, u := range urls {
		if i > 0 {
			out += ", "
		}
		out += u
	}
	return out
}
