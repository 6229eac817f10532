package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/use-agent/folio/api/handler"
	"github.com/use-agent/folio/api/middleware"
	"github.com/use-agent/folio/config"
	"github.com/use-agent/folio/metrics"
	"github.com/use-agent/folio/render"
	"github.com/use-agent/folio/session"
)

// NewRouter creates a configured Gin engine with all routes and middleware.
//
// Middleware chain:
//
//	Global:   Recovery → Logger → Metrics
//	Session:  Session (cookie → controller)
//	Submits:  RateLimit → Session
//
// Health, metrics and static assets sit outside the session group so probes
// and asset fetches never create sessions. Submits are limited before a
// session is resolved so cookieless floods neither dodge the limit nor
// evict live sessions. Background work stops when ctx is done.
func NewRouter(ctx context.Context, cfg *config.Config, store *session.Store, m *metrics.Metrics, startTime time.Time) (*gin.Engine, error) {
	gin.SetMode(cfg.Server.Mode)

	tmpl, err := render.Templates()
	if err != nil {
		return nil, err
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(gin.Logger())
	r.Use(middleware.Metrics(m, store.Len))
	r.SetHTMLTemplate(tmpl)

	r.StaticFS("/static", http.FS(render.Static()))
	r.GET("/metrics", gin.WrapH(m.Handler()))

	v1 := r.Group("/api/v1")
	v1.GET("/health", handler.Health(store.Len, cfg.Extractor.BaseURL, startTime))

	attach := middleware.Session(store, cfg.Session.CookieName, cfg.Session.TTL)
	limit := middleware.RateLimit(ctx, cfg.RateLimit, middleware.SessionKey(store, cfg.Session.CookieName))

	sessions := r.Group("")
	sessions.Use(attach)

	// Page
	sessions.GET("/", handler.Page(cfg.Examples, cfg.Server.RefreshInterval))

	// JSON API
	api := sessions.Group("/api/v1")
	api.GET("/state", handler.State())
	api.POST("/input", handler.Edit())

	// Submits
	submits := r.Group("")
	submits.Use(limit, attach)
	submits.POST("/submit", handler.SubmitForm())
	submits.POST("/api/v1/submit", handler.Submit())

	return r, nil
}
