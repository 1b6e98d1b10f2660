package handler

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"html/template"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/xuri/excelize/v2"

	"github.com/yourusername/elearning-api/internal/handler/dto"
	"github.com/yourusername/elearning-api/internal/handler/helper"
	"github.com/yourusername/elearning-api/internal/middleware"
	"github.com/yourusername/elearning-api/internal/service"
)

// CertificateUseCase - операции с сертификатами, которые нужны обработчику
type CertificateUseCase interface {
	GetView(ctx context.Context, id string) (*service.CertificateView, error)
	GetLatestForUserAndCourse(ctx context.Context, caller service.Caller, userID, courseID string) (*service.CertificateView, error)
	ListForCourse(ctx context.Context, courseID string) ([]service.CertificateView, error)
	ShareURL(certificateID string) string
	ImageURL(certificateID string) string
}

// CertificateHandler обрабатывает запросы, связанные с сертификатами
type CertificateHandler struct {
	certService CertificateUseCase
}

// NewCertificateHandler создает новый обработчик сертификатов
func NewCertificateHandler(certService CertificateUseCase) *CertificateHandler {
	return &CertificateHandler{certService: certService}
}

// GetCertificate возвращает сертификат по ID
// GET /certificates/:id
func (h *CertificateHandler) GetCertificate(c *gin.Context) {
	certID := c.GetString("certificateID")

	view, err := h.certService.GetView(c.Request.Context(), certID)
	if err != nil {
		handleServiceError(c, "CertificateHandler", err)
		return
	}

	h.respondCertificate(c, view)
}

// GetLatestCertificate возвращает последний сертификат пользователя по курсу
// GET /certificates/user/:userId/course/:courseId
func (h *CertificateHandler) GetLatestCertificate(c *gin.Context) {
	caller := service.Caller{IsAdmin: middleware.IsAdmin(c)}
	caller.UserID, _ = middleware.GetUserID(c)

	view, err := h.certService.GetLatestForUserAndCourse(
		c.Request.Context(), caller, c.GetString("userID"), c.GetString("courseID"))
	if err != nil {
		handleServiceError(c, "CertificateHandler", err)
		return
	}

	h.respondCertificate(c, view)
}

func (h *CertificateHandler) respondCertificate(c *gin.Context, view *service.CertificateView) {
	resp, err := dto.NewCertificateResponse(view, h.certService.ShareURL(view.ID))
	if err != nil {
		handleServiceError(c, "CertificateHandler", err)
		return
	}
	respondData(c, http.StatusOK, resp)
}

var previewTemplate = template.Must(template.New("preview").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<meta property="og:type" content="website">
<meta property="og:title" content="{{.Title}}">
<meta property="og:description" content="{{.Description}}">
<meta property="og:image" content="{{.ImageURL}}">
<meta property="og:url" content="{{.URL}}">
<meta name="twitter:card" content="summary_large_image">
</head>
<body>
<h1>{{.Title}}</h1>
<p>{{.Description}}</p>
<p>Score: {{.Score}}%</p>
<img src="{{.ImageURL}}" alt="Certificate">
</body>
</html>
`))

// previewPage - данные страницы предпросмотра
type previewPage struct {
	Title       string
	Description string
	ImageURL    string
	URL         string
	Score       int
}

// PreviewCertificate отдаёт HTML страницу с OpenGraph тегами для соцсетей
// GET /certificates/:id/preview
func (h *CertificateHandler) PreviewCertificate(c *gin.Context) {
	certID := c.GetString("certificateID")

	view, err := h.certService.GetView(c.Request.Context(), certID)
	if err != nil {
		handleServiceError(c, "CertificateHandler", err)
		return
	}

	page := previewPage{
		Title:       fmt.Sprintf("%s - Certificate of Completion", view.CourseName),
		Description: fmt.Sprintf("%s just completed %s!", view.StudentName, view.CourseName),
		ImageURL:    h.certService.ImageURL(view.ID),
		URL:         h.certService.ShareURL(view.ID),
		Score:       view.Score,
	}

	var buf bytes.Buffer
	if err := previewTemplate.Execute(&buf, page); err != nil {
		log.Error().Err(err).Str("certificate_id", certID).Msg("[CertificateHandler] Ошибка рендеринга страницы")
		respondError(c, http.StatusInternalServerError, errorTypeStorageFailure, "Internal server error")
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}

// ExportCertificates экспортирует сертификаты курса в CSV или Excel формате
// GET /admin/courses/:id/certificates?format=csv|xlsx
func (h *CertificateHandler) ExportCertificates(c *gin.Context) {
	courseID := c.GetString("courseID")
	format := c.DefaultQuery("format", "csv")
	if format != "csv" && format != "xlsx" {
		respondError(c, http.StatusBadRequest, errorTypeBadRequest, "format must be csv or xlsx")
		return
	}

	views, err := h.certService.ListForCourse(c.Request.Context(), courseID)
	if err != nil {
		handleServiceError(c, "CertificateHandler", err)
		return
	}

	filename := fmt.Sprintf("course_%s_certificates_%s", courseID, time.Now().Format("2006-01-02"))

	switch format {
	case "xlsx":
		h.exportXLSX(c, views, filename)
	default:
		h.exportCSV(c, views, filename)
	}
}

var exportHeaders = []string{"Certificate ID", "Student", "Email", "Course", "Score", "Passed", "Completion Date"}

// exportCSV экспортирует сертификаты в CSV с правильным экранированием спецсимволов
func (h *CertificateHandler) exportCSV(c *gin.Context, views []service.CertificateView, filename string) {
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s.csv\"", filename))

	// BOM для корректного отображения UTF-8 в Excel
	c.Writer.Write([]byte{0xEF, 0xBB, 0xBF})

	writer := csv.NewWriter(c.Writer)
	defer writer.Flush()

	writer.Write(exportHeaders)
	for _, v := range views {
		writer.Write([]string{
			v.ID,
			helper.SanitizeForExcel(v.StudentName),
			helper.SanitizeForExcel(v.Email),
			helper.SanitizeForExcel(v.CourseName),
			strconv.Itoa(v.Score),
			strconv.FormatBool(v.Passed),
			v.CompletionDate.UTC().Format(time.RFC3339),
		})
	}
}

// exportXLSX экспортирует сертификаты в Excel с использованием StreamWriter
func (h *CertificateHandler) exportXLSX(c *gin.Context, views []service.CertificateView, filename string) {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Certificates"
	f.SetSheetName("Sheet1", sheetName)

	sw, err := f.NewStreamWriter(sheetName)
	if err != nil {
		log.Error().Err(err).Msg("[CertificateHandler] Ошибка создания StreamWriter")
		respondError(c, http.StatusInternalServerError, errorTypeStorageFailure, "Failed to create Excel file")
		return
	}

	headers := make([]interface{}, len(exportHeaders))
	for i, name := range exportHeaders {
		headers[i] = name
	}
	if err := sw.SetRow("A1", headers); err != nil {
		log.Error().Err(err).Msg("[CertificateHandler] Ошибка записи заголовков")
	}

	for i, v := range views {
		rowNum := i + 2 // 1 строка - заголовки
		row := []interface{}{
			v.ID,
			helper.SanitizeForExcel(v.StudentName),
			helper.SanitizeForExcel(v.Email),
			helper.SanitizeForExcel(v.CourseName),
			v.Score,
			v.Passed,
			v.CompletionDate.UTC().Format(time.RFC3339),
		}
		if err := sw.SetRow(fmt.Sprintf("A%d", rowNum), row); err != nil {
			log.Error().Err(err).Int("row", rowNum).Msg("[CertificateHandler] Ошибка записи строки")
		}
	}

	if err := sw.Flush(); err != nil {
		log.Error().Err(err).Msg("[CertificateHandler] Ошибка при Flush")
	}

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s.xlsx\"", filename))
	if err := f.Write(c.Writer); err != nil {
		log.Error().Err(err).Msg("[CertificateHandler] Ошибка записи Excel в response")
	}
}
