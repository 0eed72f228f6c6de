package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics набор Prometheus-метрик сервиса
// Все методы безопасны для nil-получателя: при выключенных метриках передаётся nil
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	DBQueryDuration *prometheus.HistogramVec
	DBQueryErrors   *prometheus.CounterVec
	DBConnections   *prometheus.GaugeVec

	ReservationsCreated   prometheus.Counter
	ReservationsRejected  *prometheus.CounterVec
	ReservationsCancelled prometheus.Counter
	PaymentsConfirmed     prometheus.Counter
	CarpoolMatches        prometheus.Histogram
	NotificationsFailed   *prometheus.CounterVec
}

// New регистрирует метрики в глобальном регистре Prometheus
func New(serviceName string) *Metrics {
	return NewWithRegisterer(serviceName, prometheus.DefaultRegisterer)
}

// NewWithRegisterer регистрирует метрики в указанном регистре (для тестов)
func NewWithRegisterer(serviceName string, reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	labels := prometheus.Labels{"service": serviceName}

	return &Metrics{
		HTTPRequestsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: labels,
		}, []string{"method", "route", "status"}),
		HTTPRequestDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request latency",
			ConstLabels: labels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "route"}),

		DBQueryDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Database query latency",
			ConstLabels: labels,
			Buckets:     []float64{.001, .0025, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"operation"}),
		DBQueryErrors: f.NewCounterVec(prometheus.CounterOpts{
			Name:        "db_query_errors_total",
			Help:        "Total number of failed database queries",
			ConstLabels: labels,
		}, []string{"operation"}),
		DBConnections: f.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_connections",
			Help:        "Database connection pool state",
			ConstLabels: labels,
		}, []string{"state"}),

		ReservationsCreated: f.NewCounter(prometheus.CounterOpts{
			Name:        "reservations_created_total",
			Help:        "Total number of created reservations",
			ConstLabels: labels,
		}),
		ReservationsRejected: f.NewCounterVec(prometheus.CounterOpts{
			Name:        "reservations_rejected_total",
			Help:        "Total number of rejected reservation attempts",
			ConstLabels: labels,
		}, []string{"reason"}),
		ReservationsCancelled: f.NewCounter(prometheus.CounterOpts{
			Name:        "reservations_cancelled_total",
			Help:        "Total number of cancelled reservations",
			ConstLabels: labels,
		}),
		PaymentsConfirmed: f.NewCounter(prometheus.CounterOpts{
			Name:        "payments_confirmed_total",
			Help:        "Total number of confirmed payments",
			ConstLabels: labels,
		}),
		CarpoolMatches: f.NewHistogram(prometheus.HistogramOpts{
			Name:        "carpool_matches",
			Help:        "Number of carpool matches found per reservation",
			ConstLabels: labels,
			Buckets:     []float64{0, 1, 2, 3, 5, 10},
		}),
		NotificationsFailed: f.NewCounterVec(prometheus.CounterOpts{
			Name:        "notifications_failed_total",
			Help:        "Total number of failed email notifications",
			ConstLabels: labels,
		}, []string{"kind"}),
	}
}

// ReservationCreated учитывает созданное бронирование и число найденных попутчиков
func (m *Metrics) ReservationCreated(carpoolMatches int) {
	if m == nil {
		return
	}
	m.ReservationsCreated.Inc()
	m.CarpoolMatches.Observe(float64(carpoolMatches))
}

// ReservationRejected учитывает отклонённую попытку бронирования
func (m *Metrics) ReservationRejected(reason string) {
	if m == nil {
		return
	}
	m.ReservationsRejected.WithLabelValues(reason).Inc()
}

func (m *Metrics) ReservationCancelled() {
	if m == nil {
		return
	}
	m.ReservationsCancelled.Inc()
}

func (m *Metrics) PaymentConfirmed() {
	if m == nil {
		return
	}
	m.PaymentsConfirmed.Inc()
}

// NotificationFailed учитывает неотправленное письмо (kind: confirmed, cancelled)
func (m *Metrics) NotificationFailed(kind string) {
	if m == nil {
		return
	}
	m.NotificationsFailed.WithLabelValues(kind).Inc()
}
