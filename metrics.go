package kodaklens

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics are registered on a per-App registry so several Apps (tests) can
// coexist in one process.
type Metrics struct {
	Registry *prometheus.Registry

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
	UploadsTotal        *prometheus.CounterVec
	ReportsSaved        prometheus.Counter
	UploadSessions      prometheus.GaugeFunc
}

func newMetrics(uploads *UploadTracker) *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		Registry: reg,
		HTTPRequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "kodaklens_http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"method", "route", "status"}),
		HTTPRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "kodaklens_http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
		UploadsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "kodaklens_uploads_total",
			Help: "Photo uploads by outcome (committed, stale, rejected, failed)",
		}, []string{"result"}),
		ReportsSaved: factory.NewCounter(prometheus.CounterOpts{
			Name: "kodaklens_reports_saved_total",
			Help: "Reports written to the reports directory",
		}),
		UploadSessions: factory.NewGaugeFunc(prometheus.GaugeOpts{
			Name: "kodaklens_upload_sessions",
			Help: "Sessions currently holding an upload slot",
		}, func() float64 { return float64(uploads.Len()) }),
	}
}

// middleware records request count and latency by route pattern.
func (m *Metrics) middleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		err := next(c)

		status := c.Response().Status
		if err != nil && !c.Response().Committed {
			status = http.StatusInternalServerError
			if he, ok := err.(*echo.HTTPError); ok {
				status = he.Code
			}
		}
		route := c.Path()
		if route == "" {
			route = "unmatched"
		}
		code := strconv.Itoa(status)
		m.HTTPRequestDuration.WithLabelValues(c.Request().Method, route, code).Observe(time.Since(start).Seconds())
		m.HTTPRequestsTotal.WithLabelValues(c.Request().Method, route, code).Inc()
		return err
	}
}

func (m *Metrics) handler() echo.HandlerFunc {
	return echo.WrapHandler(promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{}))
}
