package dto

import (
	"fmt"
	"time"

	"github.com/jinzhu/copier"

	"github.com/yourusername/elearning-api/internal/service"
)

// CertificateResponse - сертификат с именами студента и курса
type CertificateResponse struct {
	ID             string    `json:"id"`
	UserID         string    `json:"userId"`
	CourseID       string    `json:"courseId"`
	StudentName    string    `json:"studentName"`
	Email          string    `json:"email"`
	CourseName     string    `json:"courseName"`
	Score          int       `json:"score"`
	Passed         bool      `json:"passed"`
	CompletionDate time.Time `json:"completionDate"`
	ShareURL       string    `json:"shareUrl,omitempty"`
}

// NewCertificateResponse создает DTO сертификата
func NewCertificateResponse(view *service.CertificateView, shareURL string) (*CertificateResponse, error) {
	var resp CertificateResponse
	if err := copier.Copy(&resp, view); err != nil {
		return nil, fmt.Errorf("map certificate response: %w", err)
	}
	resp.ShareURL = shareURL
	return &resp, nil
}
