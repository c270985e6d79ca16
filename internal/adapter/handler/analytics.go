package handler

import (
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/notegraph-dev/notegraph/internal/usecase/analytics"
)

// Analytics exposes reporting queries over the meeting graph
type Analytics struct {
	svc    *analytics.Service
	logger *zap.Logger
}

// NewAnalyticsHandler creates a new analytics handler
func NewAnalyticsHandler(svc *analytics.Service, logger *zap.Logger) *Analytics {
	return &Analytics{svc: svc, logger: logger}
}

// WeeklyReport lists last week's meetings with their context.
// GET /v1/reports/weekly
func (h *Analytics) WeeklyReport(c echo.Context) error {
	reports, err := h.svc.WeeklyReport(c.Request().Context())
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, reports)
}

// PendingActions lists all pending action items.
// GET /v1/actions/pending
func (h *Analytics) PendingActions(c echo.Context) error {
	actions, err := h.svc.PendingActionItems(c.Request().Context())
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, actions)
}

// TopicHistory lists meetings where a topic was discussed.
// GET /v1/topics/:name/history
func (h *Analytics) TopicHistory(c echo.Context) error {
	mentions, err := h.svc.TopicHistory(c.Request().Context(), c.Param("name"))
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, mentions)
}

// PersonTasks lists action items assigned to a person.
// GET /v1/people/:name/tasks
func (h *Analytics) PersonTasks(c echo.Context) error {
	tasks, err := h.svc.PersonTasks(c.Request().Context(), c.Param("name"))
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, tasks)
}

// SearchMeetings finds meetings by title or topic keyword.
// GET /v1/meetings/search?q=
func (h *Analytics) SearchMeetings(c echo.Context) error {
	reports, err := h.svc.SearchMeetings(c.Request().Context(), c.QueryParam("q"))
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, reports)
}

// TopicCooccurrence lists topic pairs that recur together.
// GET /v1/reports/cooccurrence
func (h *Analytics) TopicCooccurrence(c echo.Context) error {
	pairs, err := h.svc.TopicCooccurrence(c.Request().Context())
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, pairs)
}

// Bottlenecks lists overloaded assignees.
// GET /v1/reports/bottlenecks?min=
func (h *Analytics) Bottlenecks(c echo.Context) error {
	min, _ := strconv.Atoi(c.QueryParam("min"))
	bottlenecks, err := h.svc.Bottlenecks(c.Request().Context(), min)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, bottlenecks)
}

// Efficiency returns per-meeting output averages.
// GET /v1/reports/efficiency
func (h *Analytics) Efficiency(c echo.Context) error {
	metrics, err := h.svc.EfficiencyMetrics(c.Request().Context())
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, metrics)
}

// Progress returns the aggregated progress report.
// GET /v1/reports/progress?days=
func (h *Analytics) Progress(c echo.Context) error {
	days, _ := strconv.Atoi(c.QueryParam("days"))
	report, err := h.svc.ProgressReport(c.Request().Context(), days)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, report)
}
