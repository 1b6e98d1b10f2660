package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestObserveSubmission(t *testing.T) {
	before := testutil.ToFloat64(quizSubmissions.WithLabelValues(SubmissionPassed))

	ObserveSubmission(SubmissionPassed)

	assert.Equal(t, before+1, testutil.ToFloat64(quizSubmissions.WithLabelValues(SubmissionPassed)))
}

func TestObserveCertificateIssued(t *testing.T) {
	before := testutil.ToFloat64(certificatesIssued)

	ObserveCertificateIssued()

	assert.Equal(t, before+1, testutil.ToFloat64(certificatesIssued))
}

func TestHandler_ExposesMetrics(t *testing.T) {
	// Arrange
	ObserveScore(100)
	r := gin.New()
	r.Use(GinMiddleware())
	r.GET("/metrics", Handler())

	// Act
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	// Assert
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "elearning_quiz_score_percent")
	assert.Contains(t, w.Body.String(), "elearning_certificates_issued_total")
}
