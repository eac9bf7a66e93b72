package metrics

import (
	"database/sql"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics набор prometheus-метрик сервиса
// Каждый экземпляр владеет собственным реестром, поэтому New можно вызывать многократно (тесты)
type Metrics struct {
	registry *prometheus.Registry

	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec

	verdicts *prometheus.CounterVec

	snapshotRefreshes   *prometheus.CounterVec
	snapshotGeneratedAt prometheus.Gauge
	snapshotEvents      *prometheus.GaugeVec

	dbQueryDuration *prometheus.HistogramVec
}

// New создает и регистрирует метрики сервиса
func New(serviceName string) *Metrics {
	ns := sanitize(serviceName)
	reg := prometheus.NewRegistry()

	m := &Metrics{
		registry: reg,
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: ns,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests.",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: ns,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		verdicts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: ns,
			Name:      "availability_verdicts_total",
			Help:      "Availability verdicts by location and outcome.",
		}, []string{"location", "outcome"}),
		snapshotRefreshes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: ns,
			Name:      "snapshot_refreshes_total",
			Help:      "Calendar snapshot refresh attempts by result.",
		}, []string{"result"}),
		snapshotGeneratedAt: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: ns,
			Name:      "snapshot_generated_at_seconds",
			Help:      "Unix time the current calendar snapshot was generated.",
		}),
		snapshotEvents: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: ns,
			Name:      "snapshot_events",
			Help:      "Number of events in the current snapshot by collection.",
		}, []string{"collection"}),
		dbQueryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: ns,
			Name:      "db_query_duration_seconds",
			Help:      "Database query latency by operation and result.",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"operation", "result"}),
	}

	reg.MustRegister(
		m.httpRequests,
		m.httpDuration,
		m.verdicts,
		m.snapshotRefreshes,
		m.snapshotGeneratedAt,
		m.snapshotEvents,
		m.dbQueryDuration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return m
}

// Handler возвращает HTTP handler для отдачи метрик
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry возвращает реестр метрик
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// RegisterDBStats публикует статистику пула соединений
func (m *Metrics) RegisterDBStats(db *sql.DB, dbName string) error {
	return m.registry.Register(collectors.NewDBStatsCollector(db, dbName))
}

// ObserveHTTPRequest фиксирует обработанный HTTP запрос
func (m *Metrics) ObserveHTTPRequest(method, route string, status int, duration time.Duration) {
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// ObserveVerdict фиксирует вердикт движка доступности
// outcome = "admitted" либо код причины отказа
func (m *Metrics) ObserveVerdict(location, outcome string) {
	m.verdicts.WithLabelValues(location, outcome).Inc()
}

// ObserveSnapshotRefresh фиксирует результат обновления снимка календарей
func (m *Metrics) ObserveSnapshotRefresh(result string) {
	m.snapshotRefreshes.WithLabelValues(result).Inc()
}

// SetSnapshot публикует параметры текущего снимка
func (m *Metrics) SetSnapshot(generatedAt time.Time, eventsByCollection map[string]int) {
	m.snapshotGeneratedAt.Set(float64(generatedAt.Unix()))
	for collection, n := range eventsByCollection {
		m.snapshotEvents.WithLabelValues(collection).Set(float64(n))
	}
}

// ObserveDBQuery фиксирует длительность запроса к БД
func (m *Metrics) ObserveDBQuery(operation string, duration time.Duration, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.dbQueryDuration.WithLabelValues(operation, result).Observe(duration.Seconds())
}

func sanitize(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return strings.Trim(b.String(), "_")
}
