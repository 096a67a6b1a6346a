package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics набор prometheus-метрик сервиса
type Metrics struct {
	serviceName string

	// HTTP
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// База данных
	DBOpenConnections *prometheus.GaugeVec
	DBInUse           *prometheus.GaugeVec
	DBIdle            *prometheus.GaugeVec
	DBWaitCount       *prometheus.GaugeVec
	DBQueryDuration   *prometheus.HistogramVec

	// Бизнес-метрики
	BookingsCreated      *prometheus.CounterVec
	BookingsRejected     *prometheus.CounterVec
	EmergencyStops       *prometheus.CounterVec
	LifecycleTransitions *prometheus.CounterVec
}

// New создает и регистрирует метрики в глобальном реестре prometheus
func New(serviceName string) *Metrics {
	return NewWithRegistry(prometheus.DefaultRegisterer, serviceName)
}

// NewWithRegistry создает метрики и регистрирует их в переданном реестре
func NewWithRegistry(reg prometheus.Registerer, serviceName string) *Metrics {
	m := &Metrics{
		serviceName: serviceName,
		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"service", "method", "route", "status"}),
		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"service", "method", "route"}),
		DBOpenConnections: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_open_connections",
			Help: "Number of established connections to the database",
		}, []string{"service"}),
		DBInUse: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_in_use_connections",
			Help: "Number of connections currently in use",
		}, []string{"service"}),
		DBIdle: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_idle_connections",
			Help: "Number of idle connections",
		}, []string{"service"}),
		DBWaitCount: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_wait_count",
			Help: "Total number of connections waited for",
		}, []string{"service"}),
		DBQueryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "db_query_duration_seconds",
			Help:    "Database query duration in seconds",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"service", "operation"}),
		BookingsCreated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "slot_bookings_created_total",
			Help: "Total number of committed slot bookings",
		}, []string{"service"}),
		BookingsRejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "slot_bookings_rejected_total",
			Help: "Total number of rejected slot bookings by reason",
		}, []string{"service", "reason"}),
		EmergencyStops: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "slot_bookings_emergency_stops_total",
			Help: "Total number of emergency stops applied to bookings",
		}, []string{"service"}),
		LifecycleTransitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "slot_bookings_lifecycle_transitions_total",
			Help: "Total number of automatic booking status transitions",
		}, []string{"service", "status"}),
	}

	reg.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.DBOpenConnections,
		m.DBInUse,
		m.DBIdle,
		m.DBWaitCount,
		m.DBQueryDuration,
		m.BookingsCreated,
		m.BookingsRejected,
		m.EmergencyStops,
		m.LifecycleTransitions,
	)

	return m
}

// ServiceName возвращает имя сервиса, под которым пишутся метрики
func (m *Metrics) ServiceName() string {
	return m.serviceName
}

// BookingCreated увеличивает счетчик созданных бронирований
func (m *Metrics) BookingCreated() {
	m.BookingsCreated.WithLabelValues(m.serviceName).Inc()
}

// BookingRejected увеличивает счетчик отклоненных бронирований
func (m *Metrics) BookingRejected(reason string) {
	m.BookingsRejected.WithLabelValues(m.serviceName, reason).Inc()
}

// EmergencyStopped увеличивает счетчик экстренных остановок
func (m *Metrics) EmergencyStopped() {
	m.EmergencyStops.WithLabelValues(m.serviceName).Inc()
}

// StatusAdvanced увеличивает счетчик автоматических переходов статуса
func (m *Metrics) StatusAdvanced(status string) {
	m.LifecycleTransitions.WithLabelValues(m.serviceName, status).Inc()
}
