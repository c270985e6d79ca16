package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/notegraph-dev/notegraph/pkg/config"
)

// Router holds all handlers
type Router struct {
	cfg              *config.Config
	ingestHandler    *Ingest
	analyticsHandler *Analytics
	queryHandler     *Query
	trackerHandler   *Tracker
}

// NewRouter creates a new router with all handlers
func NewRouter(cfg *config.Config, ingestHandler *Ingest, analyticsHandler *Analytics, queryHandler *Query, trackerHandler *Tracker) *Router {
	return &Router{
		cfg:              cfg,
		ingestHandler:    ingestHandler,
		analyticsHandler: analyticsHandler,
		queryHandler:     queryHandler,
		trackerHandler:   trackerHandler,
	}
}

// Setup configures all application routes
func (rt *Router) Setup(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", rt.healthCheck)

	// API v1 group
	v1 := e.Group("/v1")

	rt.setupIngestRoutes(v1)
	rt.setupAnalyticsRoutes(v1)
	rt.setupQueryRoutes(v1)
	rt.setupTrackerRoutes(v1)
}

func (rt *Router) setupIngestRoutes(g *echo.Group) {
	meetings := g.Group("/meetings")

	if rt.ingestHandler != nil {
		meetings.POST("", rt.ingestHandler.Create)
		meetings.POST("/preview", rt.ingestHandler.Preview)
	} else {
		meetings.POST("", rt.notImplemented)
		meetings.POST("/preview", rt.notImplemented)
	}

	if rt.analyticsHandler != nil {
		meetings.GET("/search", rt.analyticsHandler.SearchMeetings)
	} else {
		meetings.GET("/search", rt.notImplemented)
	}
}

func (rt *Router) setupAnalyticsRoutes(g *echo.Group) {
	reports := g.Group("/reports")

	if rt.analyticsHandler != nil {
		reports.GET("/weekly", rt.analyticsHandler.WeeklyReport)
		reports.GET("/cooccurrence", rt.analyticsHandler.TopicCooccurrence)
		reports.GET("/bottlenecks", rt.analyticsHandler.Bottlenecks)
		reports.GET("/efficiency", rt.analyticsHandler.Efficiency)
		reports.GET("/progress", rt.analyticsHandler.Progress)
		g.GET("/actions/pending", rt.analyticsHandler.PendingActions)
		g.GET("/topics/:name/history", rt.analyticsHandler.TopicHistory)
		g.GET("/people/:name/tasks", rt.analyticsHandler.PersonTasks)
	} else {
		reports.GET("/weekly", rt.notImplemented)
		reports.GET("/cooccurrence", rt.notImplemented)
		reports.GET("/bottlenecks", rt.notImplemented)
		reports.GET("/efficiency", rt.notImplemented)
		reports.GET("/progress", rt.notImplemented)
		g.GET("/actions/pending", rt.notImplemented)
		g.GET("/topics/:name/history", rt.notImplemented)
		g.GET("/people/:name/tasks", rt.notImplemented)
	}
}

func (rt *Router) setupQueryRoutes(g *echo.Group) {
	if rt.queryHandler != nil {
		g.POST("/query", rt.queryHandler.Ask)
	} else {
		g.POST("/query", rt.notImplemented)
	}
}

func (rt *Router) setupTrackerRoutes(g *echo.Group) {
	if rt.trackerHandler != nil {
		g.POST("/tracker/issues", rt.trackerHandler.SyncPendingActions)
	} else {
		g.POST("/tracker/issues", rt.notImplemented)
	}
}

// notImplemented returns 501 Not Implemented response
func (rt *Router) notImplemented(c echo.Context) error {
	return c.JSON(http.StatusNotImplemented, map[string]interface{}{
		"error":   "This endpoint is not yet implemented",
		"path":    c.Request().URL.Path,
		"method":  c.Request().Method,
		"message": "Please initialize the required handler in main.go",
	})
}

// healthCheck returns health status
func (rt *Router) healthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":      "ok",
		"environment": rt.cfg.Server.Environment,
	})
}
