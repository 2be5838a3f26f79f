package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/xavierca1/prospect-crm/internal/usecase"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	activeConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_active_connections",
			Help: "Number of active HTTP connections",
		},
	)

	reminderRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reminder_runs_total",
			Help: "Total number of reminder runs",
		},
		[]string{"result"}, // completed, skipped, load_failed
	)

	digestsSent = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "reminder_digests_sent_total",
			Help: "Total number of digest emails sent",
		},
	)

	digestFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reminder_digest_failures_total",
			Help: "Total number of per-recipient digest failures",
		},
		[]string{"stage"}, // send, mark
	)

	prospectsImported = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "prospects_imported_total",
			Help: "Total number of prospects imported via CSV",
		},
	)
)

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		activeConnections.Inc()
		defer activeConnections.Dec()

		rw := &responseWriter{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(rw.statusCode)

		httpRequestsTotal.WithLabelValues(r.Method, r.URL.Path, status).Inc()
		httpRequestDuration.WithLabelValues(r.Method, r.URL.Path).Observe(duration)
	})
}

func RecordReminderRun(result string) {
	reminderRuns.WithLabelValues(result).Inc()
}

func RecordDigestSent() {
	digestsSent.Inc()
}

func RecordDigestFailure(stage string) {
	digestFailures.WithLabelValues(stage).Inc()
}

func RecordProspectsImported(n int) {
	prospectsImported.Add(float64(n))
}

// RecordRunReport traduz o relatório de um run em contadores.
// Usado pelo gatilho HTTP e pelo worker agendado.
func RecordRunReport(out *usecase.RunRemindersOutput, err error) {
	switch {
	case err != nil:
		RecordReminderRun("load_failed")
	case out != nil && !out.Ran:
		RecordReminderRun("skipped")
	default:
		RecordReminderRun("completed")
	}

	if out == nil {
		return
	}
	for _, r := range out.Recipients {
		switch r.Result {
		case usecase.OutcomeSent:
			RecordDigestSent()
		case usecase.OutcomeSendFailed:
			RecordDigestFailure("send")
		case usecase.OutcomeMarkFailed:
			RecordDigestFailure("mark")
		}
	}
}
