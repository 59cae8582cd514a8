package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics набор метрик сервиса
// Каждый экземпляр использует собственный registry, поэтому можно создавать несколько экземпляров (например, в тестах)
type Metrics struct {
	registry *prometheus.Registry

	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	dbQueryDuration   *prometheus.HistogramVec
	dbOpenConnections *prometheus.GaugeVec
	dbInUse           *prometheus.GaugeVec
	dbIdle            *prometheus.GaugeVec
	dbWaitCount       *prometheus.GaugeVec

	bookingsCreated     *prometheus.CounterVec
	bookingsTransitions *prometheus.CounterVec
	paymentReconciled   *prometheus.CounterVec
	externalCallErrors  *prometheus.CounterVec
}

// New создает набор метрик для сервиса serviceName
func New(serviceName string) *Metrics {
	constLabels := prometheus.Labels{"service": serviceName}
	reg := prometheus.NewRegistry()

	m := &Metrics{
		registry: reg,
		httpRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: constLabels,
		}, []string{"method", "route", "status"}),
		httpRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request duration in seconds",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "route"}),
		dbQueryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Database query duration in seconds",
			ConstLabels: constLabels,
			Buckets:     []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"operation"}),
		dbOpenConnections: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_open_connections",
			Help:        "Number of established connections",
			ConstLabels: constLabels,
		}, []string{"db"}),
		dbInUse: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_in_use_connections",
			Help:        "Number of connections currently in use",
			ConstLabels: constLabels,
		}, []string{"db"}),
		dbIdle: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_idle_connections",
			Help:        "Number of idle connections",
			ConstLabels: constLabels,
		}, []string{"db"}),
		dbWaitCount: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_wait_count",
			Help:        "Total number of connections waited for",
			ConstLabels: constLabels,
		}, []string{"db"}),
		bookingsCreated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "bookings_created_total",
			Help:        "Number of created bookings",
			ConstLabels: constLabels,
		}, []string{"price_unit"}),
		bookingsTransitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "booking_status_transitions_total",
			Help:        "Number of booking status transitions",
			ConstLabels: constLabels,
		}, []string{"to"}),
		paymentReconciled: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "payment_reconciliations_total",
			Help:        "Number of payment intent reconciliations by resulting status",
			ConstLabels: constLabels,
		}, []string{"status"}),
		externalCallErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "external_call_errors_total",
			Help:        "Number of failed calls to external collaborators",
			ConstLabels: constLabels,
		}, []string{"collaborator", "operation"}),
	}

	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.httpRequestsTotal,
		m.httpRequestDuration,
		m.dbQueryDuration,
		m.dbOpenConnections,
		m.dbInUse,
		m.dbIdle,
		m.dbWaitCount,
		m.bookingsCreated,
		m.bookingsTransitions,
		m.paymentReconciled,
		m.externalCallErrors,
	)

	return m
}

// Handler HTTP handler для эндпоинта /metrics
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry возвращает registry (используется в тестах)
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveHTTPRequest регистрирует завершенный HTTP запрос
func (m *Metrics) ObserveHTTPRequest(method, route string, status int, duration time.Duration) {
	m.httpRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// ObserveDBQuery регистрирует длительность запроса к БД
func (m *Metrics) ObserveDBQuery(operation string, duration time.Duration) {
	m.dbQueryDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// SetDBPoolStats обновляет метрики пула соединений
func (m *Metrics) SetDBPoolStats(db string, open, inUse, idle int, waitCount int64) {
	m.dbOpenConnections.WithLabelValues(db).Set(float64(open))
	m.dbInUse.WithLabelValues(db).Set(float64(inUse))
	m.dbIdle.WithLabelValues(db).Set(float64(idle))
	m.dbWaitCount.WithLabelValues(db).Set(float64(waitCount))
}

// IncBookingCreated увеличивает счетчик созданных бронирований
func (m *Metrics) IncBookingCreated(priceUnit string) {
	m.bookingsCreated.WithLabelValues(priceUnit).Inc()
}

// IncBookingTransition увеличивает счетчик переходов статуса бронирования
func (m *Metrics) IncBookingTransition(to string) {
	m.bookingsTransitions.WithLabelValues(to).Inc()
}

// IncPaymentReconciled увеличивает счетчик сверок платежей
func (m *Metrics) IncPaymentReconciled(status string) {
	m.paymentReconciled.WithLabelValues(status).Inc()
}

// IncExternalCallError увеличивает счетчик ошибок внешних вызовов
func (m *Metrics) IncExternalCallError(collaborator, operation string) {
	m.externalCallErrors.WithLabelValues(collaborator, operation).Inc()
}
