package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics набор prometheus коллекторов сервиса
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	DBQueryDuration *prometheus.HistogramVec
	DBConnections   *prometheus.GaugeVec

	// PlannedCommands считает команды, примененные к календарю (operation: add|remove, verb: insert|update|delete)
	PlannedCommands *prometheus.CounterVec
	// LockWaitDuration время ожидания блокировки календаря
	LockWaitDuration *prometheus.HistogramVec
}

// New создает метрики и регистрирует их в prometheus.DefaultRegisterer.
// Имя сервиса передается в метку service каждым, кто пишет метрику.
func New() *Metrics {
	return NewWithRegisterer(prometheus.DefaultRegisterer)
}

// NewWithRegisterer создает метрики и регистрирует их в reg
func NewWithRegisterer(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"service", "method", "path", "status"}),
		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"service", "method", "path"}),
		DBQueryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "db_query_duration_seconds",
			Help:    "Database query duration in seconds",
			Buckets: []float64{.001, .0025, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"service", "operation", "status"}),
		DBConnections: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_connections",
			Help: "Database connection pool state",
		}, []string{"service", "state"}),
		PlannedCommands: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "calendar_commands_total",
			Help: "Calendar commands applied to availability storage",
		}, []string{"service", "operation", "verb"}),
		LockWaitDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "calendar_lock_wait_seconds",
			Help:    "Time spent waiting for a calendar scope lock",
			Buckets: []float64{.001, .005, .01, .05, .1, .25, .5, 1, 2.5, 5},
		}, []string{"service", "outcome"}),
	}

	reg.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.DBQueryDuration,
		m.DBConnections,
		m.PlannedCommands,
		m.LockWaitDuration,
	)

	return m
}
