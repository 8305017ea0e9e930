package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/stratocost/stratocost/internal/common/config"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the server's prometheus collectors. A nil *Metrics is valid
// and turns every recording call into a no-op.
type Metrics struct {
	registry *prometheus.Registry

	httpReqCnt *prometheus.CounterVec
	httpDur    *prometheus.HistogramVec

	computeCnt     prometheus.Counter
	saveCnt        *prometheus.CounterVec
	pricingMissCnt prometheus.Counter
}

// New creates the metrics registry and collectors
func New(cfg config.MetricsConfig) *Metrics {
	ns := cfg.Namespace
	if ns == "" {
		ns = "tcoserver"
	}
	buckets := cfg.Buckets
	if len(buckets) == 0 {
		buckets = prometheus.DefBuckets
	}

	r := prometheus.NewRegistry()
	r.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	r.MustRegister(collectors.NewGoCollector())

	httpReqCnt := prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: ns, Name: "http_requests_total"}, []string{"method", "route", "status"})
	httpDur := prometheus.NewHistogramVec(prometheus.HistogramOpts{Namespace: ns, Name: "http_request_duration_seconds", Buckets: buckets}, []string{"method", "route", "status"})
	r.MustRegister(httpReqCnt, httpDur)

	computeCnt := prometheus.NewCounter(prometheus.CounterOpts{Namespace: ns, Name: "computations_total"})
	saveCnt := prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: ns, Name: "saves_total"}, []string{"status"})
	pricingMissCnt := prometheus.NewCounter(prometheus.CounterOpts{Namespace: ns, Name: "pricing_misses_total"})
	r.MustRegister(computeCnt, saveCnt, pricingMissCnt)

	return &Metrics{
		registry:       r,
		httpReqCnt:     httpReqCnt,
		httpDur:        httpDur,
		computeCnt:     computeCnt,
		saveCnt:        saveCnt,
		pricingMissCnt: pricingMissCnt,
	}
}

// Handler returns the /metrics scrape handler
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// GinMiddleware records request counts and durations per route
func (m *Metrics) GinMiddleware() gin.HandlerFunc {
	if m == nil {
		return func(c *gin.Context) { c.Next() }
	}
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status())
		m.httpReqCnt.WithLabelValues(c.Request.Method, route, status).Inc()
		m.httpDur.WithLabelValues(c.Request.Method, route, status).Observe(time.Since(start).Seconds())
	}
}

// IncCompute counts one computation pass
func (m *Metrics) IncCompute() {
	if m == nil {
		return
	}
	m.computeCnt.Inc()
}

// IncSave counts one save attempt
func (m *Metrics) IncSave(ok bool) {
	if m == nil {
		return
	}
	status := "ok"
	if !ok {
		status = "rejected"
	}
	m.saveCnt.WithLabelValues(status).Inc()
}

// AddPricingMisses counts pricing catalog misses surfaced by a computation
func (m *Metrics) AddPricingMisses(n int) {
	if m == nil {
		return
	}
	m.pricingMissCnt.Add(float64(n))
}
