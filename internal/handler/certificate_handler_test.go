package handler

import (
	"bytes"
	"encoding/csv"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/yourusername/elearning-api/internal/domain/entity"
	apperrors "github.com/yourusername/elearning-api/internal/pkg/errors"
	"github.com/yourusername/elearning-api/internal/service"
)

var completedAt = time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

func certificateView(id string) *service.CertificateView {
	return &service.CertificateView{
		ID:             id,
		UserID:         "user-1",
		CourseID:       "course-1",
		StudentName:    "Ada Lovelace",
		Email:          "ada@example.com",
		CourseName:     "Intro to React",
		Score:          100,
		Passed:         true,
		CompletionDate: completedAt,
	}
}

func TestCertificateHandler_GetCertificate(t *testing.T) {
	for _, path := range []string{"/certificates/cert-1", "/quiz/certificates/cert-1"} {
		t.Run(path, func(t *testing.T) {
			// Arrange
			api := newTestAPI(t)
			api.certs.On("GetView", mock.Anything, "cert-1").Return(certificateView("cert-1"), nil).Once()

			// Act
			w := api.do(http.MethodGet, path, api.token(t, "user-1", entity.RoleUser), nil)

			// Assert
			requireStatus(t, w, http.StatusOK)
			data := dataOf(t, w)
			assert.Equal(t, "cert-1", data["id"])
			assert.Equal(t, "Ada Lovelace", data["studentName"])
			assert.Equal(t, "Intro to React", data["courseName"])
			assert.Equal(t, float64(100), data["score"])
			assert.Equal(t, true, data["passed"])
			assert.Equal(t, "2026-03-14T09:30:00Z", data["completionDate"])
			assert.Equal(t, "https://learn.example.com/certificates/cert-1/preview", data["shareUrl"])
			api.certs.AssertExpectations(t)
		})
	}
}

func TestCertificateHandler_GetCertificate_NotFound(t *testing.T) {
	api := newTestAPI(t)
	api.certs.On("GetView", mock.Anything, "missing").Return(nil, apperrors.ErrNotFound)

	w := api.do(http.MethodGet, "/certificates/missing", api.token(t, "user-1", entity.RoleUser), nil)

	requireStatus(t, w, http.StatusNotFound)
	assert.Equal(t, "not_found", parseJSONResponse(t, w)["error_type"])
}

func TestCertificateHandler_GetLatestCertificate(t *testing.T) {
	t.Run("owner", func(t *testing.T) {
		api := newTestAPI(t)
		caller := service.Caller{UserID: "user-1", IsAdmin: false}
		api.certs.On("GetLatestForUserAndCourse", mock.Anything, caller, "user-1", "course-1").
			Return(certificateView("cert-9"), nil).Once()

		w := api.do(http.MethodGet, "/certificates/user/user-1/course/course-1", api.token(t, "user-1", entity.RoleUser), nil)

		requireStatus(t, w, http.StatusOK)
		assert.Equal(t, "cert-9", dataOf(t, w)["id"])
		api.certs.AssertExpectations(t)
	})

	t.Run("alias route passes admin caller", func(t *testing.T) {
		api := newTestAPI(t)
		caller := service.Caller{UserID: "admin-1", IsAdmin: true}
		api.certs.On("GetLatestForUserAndCourse", mock.Anything, caller, "user-1", "course-1").
			Return(certificateView("cert-9"), nil).Once()

		w := api.do(http.MethodGet, "/quiz/certificates/user/user-1/course/course-1", api.token(t, "admin-1", entity.RoleAdmin), nil)

		requireStatus(t, w, http.StatusOK)
		api.certs.AssertExpectations(t)
	})

	t.Run("forbidden", func(t *testing.T) {
		api := newTestAPI(t)
		api.certs.On("GetLatestForUserAndCourse", mock.Anything, mock.Anything, "user-1", "course-1").
			Return(nil, apperrors.ErrForbidden).Once()

		w := api.do(http.MethodGet, "/certificates/user/user-1/course/course-1", api.token(t, "user-2", entity.RoleUser), nil)

		requireStatus(t, w, http.StatusForbidden)
		assert.Equal(t, "forbidden", parseJSONResponse(t, w)["error_type"])
	})

	t.Run("not found", func(t *testing.T) {
		api := newTestAPI(t)
		api.certs.On("GetLatestForUserAndCourse", mock.Anything, mock.Anything, "user-1", "course-1").
			Return(nil, apperrors.ErrNotFound).Once()

		w := api.do(http.MethodGet, "/certificates/user/user-1/course/course-1", api.token(t, "user-1", entity.RoleUser), nil)

		requireStatus(t, w, http.StatusNotFound)
	})
}

func TestCertificateHandler_PreviewCertificate(t *testing.T) {
	// Arrange: предпросмотр доступен без токена
	api := newTestAPI(t)
	view := certificateView("cert-1")
	view.StudentName = `Ada "<b>" Lovelace`
	api.certs.On("GetView", mock.Anything, "cert-1").Return(view, nil).Once()

	// Act
	w := api.do(http.MethodGet, "/certificates/cert-1/preview", "", nil)

	// Assert
	requireStatus(t, w, http.StatusOK)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
	body := w.Body.String()
	assert.Contains(t, body, `<meta property="og:image" content="https://learn.example.com/certificate-images/certificate-cert-1.jpeg">`)
	assert.Contains(t, body, `<meta property="og:url" content="https://learn.example.com/certificates/cert-1/preview">`)
	assert.Contains(t, body, "just completed Intro to React!")
	assert.NotContains(t, body, "<b>", "Имя студента экранируется")
}

func TestCertificateHandler_PreviewCertificate_NotFound(t *testing.T) {
	api := newTestAPI(t)
	api.certs.On("GetView", mock.Anything, "missing").Return(nil, apperrors.ErrNotFound)

	w := api.do(http.MethodGet, "/certificates/missing/preview", "", nil)

	requireStatus(t, w, http.StatusNotFound)
}

func exportViews() []service.CertificateView {
	second := certificateView("cert-2")
	second.StudentName = "=HYPERLINK(\"x\")"
	second.Score = 70
	return []service.CertificateView{*certificateView("cert-1"), *second}
}

func TestCertificateHandler_ExportCSV(t *testing.T) {
	// Arrange
	api := newTestAPI(t)
	api.certs.On("ListForCourse", mock.Anything, "course-1").Return(exportViews(), nil).Once()

	// Act
	w := api.do(http.MethodGet, "/admin/courses/course-1/certificates?format=csv", api.token(t, "admin-1", entity.RoleAdmin), nil)

	// Assert
	requireStatus(t, w, http.StatusOK)
	assert.Contains(t, w.Header().Get("Content-Disposition"), ".csv")

	body := bytes.TrimPrefix(w.Body.Bytes(), []byte{0xEF, 0xBB, 0xBF})
	records, err := csv.NewReader(bytes.NewReader(body)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, exportHeaders, records[0])
	assert.Equal(t, []string{"cert-1", "Ada Lovelace", "ada@example.com", "Intro to React", "100", "true", "2026-03-14T09:30:00Z"}, records[1])
	assert.True(t, strings.HasPrefix(records[2][1], "'="), "Формулы экранируются")
}

func TestCertificateHandler_ExportXLSX(t *testing.T) {
	// Arrange
	api := newTestAPI(t)
	api.certs.On("ListForCourse", mock.Anything, "course-1").Return(exportViews(), nil).Once()

	// Act
	w := api.do(http.MethodGet, "/admin/courses/course-1/certificates?format=xlsx", api.token(t, "admin-1", entity.RoleAdmin), nil)

	// Assert
	requireStatus(t, w, http.StatusOK)
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", w.Header().Get("Content-Type"))

	f, err := excelize.OpenReader(bytes.NewReader(w.Body.Bytes()))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Certificates")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Certificate ID", rows[0][0])
	assert.Equal(t, "cert-2", rows[2][0])
	assert.Equal(t, "70", rows[2][4])
}

func TestCertificateHandler_Export_Errors(t *testing.T) {
	t.Run("unknown format", func(t *testing.T) {
		api := newTestAPI(t)

		w := api.do(http.MethodGet, "/admin/courses/course-1/certificates?format=pdf", api.token(t, "admin-1", entity.RoleAdmin), nil)

		requireStatus(t, w, http.StatusBadRequest)
		api.certs.AssertNotCalled(t, "ListForCourse", mock.Anything, mock.Anything)
	})

	t.Run("not admin", func(t *testing.T) {
		api := newTestAPI(t)

		w := api.do(http.MethodGet, "/admin/courses/course-1/certificates", api.token(t, "user-1", entity.RoleUser), nil)

		requireStatus(t, w, http.StatusForbidden)
	})

	t.Run("unknown course", func(t *testing.T) {
		api := newTestAPI(t)
		api.certs.On("ListForCourse", mock.Anything, "missing").Return(nil, apperrors.ErrNotFound)

		w := api.do(http.MethodGet, "/admin/courses/missing/certificates", api.token(t, "admin-1", entity.RoleAdmin), nil)

		requireStatus(t, w, http.StatusNotFound)
	})
}
