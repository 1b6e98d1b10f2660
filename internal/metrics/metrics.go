package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Результаты отправки викторины для метки "result"
const (
	SubmissionPassed   = "passed"
	SubmissionFailed   = "failed"
	SubmissionInvalid  = "invalid"
	SubmissionConflict = "conflict"
	SubmissionError    = "error"
)

var (
	// Счётчик отправок викторин по результату
	quizSubmissions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "elearning_quiz_submissions_total",
			Help: "Total number of quiz submissions",
		},
		[]string{"result"},
	)

	// Распределение баллов
	quizScores = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "elearning_quiz_score_percent",
			Help:    "Distribution of quiz scores",
			Buckets: prometheus.LinearBuckets(0, 10, 11),
		},
	)

	// Счётчик выданных сертификатов
	certificatesIssued = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "elearning_certificates_issued_total",
			Help: "Total number of issued certificates",
		},
	)

	// Длительность HTTP-запросов
	httpDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "elearning_http_request_duration_seconds",
			Help:    "Time spent processing HTTP requests",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)
)

// ObserveSubmission учитывает отправку викторины
func ObserveSubmission(result string) {
	quizSubmissions.WithLabelValues(result).Inc()
}

// ObserveScore учитывает полученный балл
func ObserveScore(score int) {
	quizScores.Observe(float64(score))
}

// ObserveCertificateIssued учитывает выданный сертификат
func ObserveCertificateIssued() {
	certificatesIssued.Inc()
}

// GinMiddleware замеряет длительность запросов по шаблону маршрута
func GinMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		httpDuration.
			WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).
			Observe(time.Since(start).Seconds())
	}
}

// Handler отдаёт метрики в формате Prometheus
func Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}
