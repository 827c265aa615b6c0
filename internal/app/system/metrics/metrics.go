// internal/app/system/metrics/metrics.go
//
// Package metrics exposes Prometheus counters for the file lifecycle.
package metrics

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the application's Prometheus collectors.
type Metrics struct {
	registry *prometheus.Registry

	HTTPRequestsTotal *prometheus.CounterVec

	FilesUploadedTotal   *prometheus.CounterVec
	FilesDeletedTotal    *prometheus.CounterVec
	FilesRestoredTotal   *prometheus.CounterVec
	FilesPurgedTotal     prometheus.Counter
	PurgeFailuresTotal   prometheus.Counter
	DownloadsTotal       *prometheus.CounterVec
	FavoritesToggleTotal *prometheus.CounterVec
	AuditAppendsTotal    prometheus.Counter
	AccessDeniedTotal    *prometheus.CounterVec
}

// New creates and registers all collectors on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),

		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "filehaven_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		FilesUploadedTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "filehaven_files_uploaded_total",
				Help: "Files created, by kind",
			},
			[]string{"kind"},
		),
		FilesDeletedTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "filehaven_files_deleted_total",
				Help: "Files moved to trash, by kind",
			},
			[]string{"kind"},
		),
		FilesRestoredTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "filehaven_files_restored_total",
				Help: "Files restored from trash, by kind",
			},
			[]string{"kind"},
		),
		FilesPurgedTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "filehaven_files_purged_total",
				Help: "Trashed files permanently removed by the sweeper",
			},
		),
		PurgeFailuresTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "filehaven_purge_failures_total",
				Help: "Files the sweeper failed to purge",
			},
		),
		DownloadsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "filehaven_downloads_total",
				Help: "File downloads, by kind",
			},
			[]string{"kind"},
		),
		FavoritesToggleTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "filehaven_favorites_toggle_total",
				Help: "Favorite toggles, by direction",
			},
			[]string{"direction"},
		),
		AuditAppendsTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "filehaven_audit_appends_total",
				Help: "Audit entries written",
			},
		),
		AccessDeniedTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "filehaven_access_denied_total",
				Help: "Denied requests, by operation",
			},
			[]string{"operation"},
		),
	}

	m.registry.MustRegister(
		m.HTTPRequestsTotal,
		m.FilesUploadedTotal,
		m.FilesDeletedTotal,
		m.FilesRestoredTotal,
		m.FilesPurgedTotal,
		m.PurgeFailuresTotal,
		m.DownloadsTotal,
		m.FavoritesToggleTotal,
		m.AuditAppendsTotal,
		m.AccessDeniedTotal,
	)
	return m
}

// Handler serves the registry for GET /metrics.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// CountRequests is chi middleware that counts requests by method,
// matched route pattern, and status. The route pattern keeps label
// cardinality bounded regardless of what clients put in the path.
func (m *Metrics) CountRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if p := rctx.RoutePattern(); p != "" {
				route = p
			}
		}
		m.HTTPRequestsTotal.WithLabelValues(r.Method, route, strconv.Itoa(ww.Status())).Inc()
	})
}
