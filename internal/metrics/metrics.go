// Package metrics собирает метрики prometheus для HTTP-слоя и доменных операций.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "messenger"

// Metrics держит собственный реестр, чтобы тесты не конфликтовали с глобальным.
type Metrics struct {
	Registry *prometheus.Registry

	requests        *prometheus.CounterVec
	duration        *prometheus.HistogramVec
	logins          *prometheus.CounterVec
	accountsCreated prometheus.Counter
	broadcasts      prometheus.Counter
	recipients      prometheus.Counter
	replies         prometheus.Counter
	dispatches      *prometheus.CounterVec
}

// New регистрирует все коллекторы.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		Registry: reg,
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route and status code.",
		}, []string{"method", "route", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		logins: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "login_attempts_total",
			Help:      "Login attempts by outcome.",
		}, []string{"outcome"}),
		accountsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "accounts_created_total",
			Help:      "Accounts created by the admin.",
		}),
		broadcasts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "broadcasts_total",
			Help:      "Admin broadcasts.",
		}),
		recipients: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "broadcast_recipients_total",
			Help:      "Messages appended by broadcasts.",
		}),
		replies: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "replies_total",
			Help:      "User replies to the admin.",
		}),
		dispatches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "outbound_dispatches_total",
			Help:      "Accepted outbound send requests by hand-off result.",
		}, []string{"published"}),
	}

	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.requests,
		m.duration,
		m.logins,
		m.accountsCreated,
		m.broadcasts,
		m.recipients,
		m.replies,
		m.dispatches,
	)
	return m
}

// Handler отдаёт метрики в формате prometheus.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{Registry: m.Registry})
}

// Middleware считает запросы по шаблону маршрута chi.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				route = pattern
			}
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}

		m.requests.WithLabelValues(r.Method, route, strconv.Itoa(status)).Inc()
		m.duration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}

func (m *Metrics) LoginAttempt(outcome string) {
	m.logins.WithLabelValues(outcome).Inc()
}

func (m *Metrics) AccountCreated() {
	m.accountsCreated.Inc()
}

func (m *Metrics) Broadcast(recipients int) {
	m.broadcasts.Inc()
	m.recipients.Add(float64(recipients))
}

func (m *Metrics) Reply() {
	m.replies.Inc()
}

func (m *Metrics) Dispatched(published bool) {
	m.dispatches.WithLabelValues(strconv.FormatBool(published)).Inc()
}
