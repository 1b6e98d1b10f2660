package service

import (
	"context"
	"errors"
	"fmt"
	"html"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/resend/resend-go/v2"
	"github.com/rs/zerolog/log"
)

// CertificateNotification - данные письма о выданном сертификате
type CertificateNotification struct {
	CertificateID string
	ToEmail       string
	StudentName   string
	CourseTitle   string
	Score         int
	ShareURL      string
}

// Notifier отправляет уведомления о выданных сертификатах
type Notifier interface {
	NotifyCertificateIssued(ctx context.Context, n CertificateNotification) error
}

// NoopNotifier используется, когда отправка писем отключена
type NoopNotifier struct{}

func (NoopNotifier) NotifyCertificateIssued(ctx context.Context, n CertificateNotification) error {
	log.Debug().Str("certificate_id", n.CertificateID).Msg("[Notifier] noop certificate notification")
	return nil
}

// emailSender - часть клиента Resend, которую использует ResendNotifier
type emailSender interface {
	SendWithOptions(ctx context.Context, params *resend.SendEmailRequest, options *resend.SendEmailOptions) (*resend.SendEmailResponse, error)
}

// ResendNotifier отправляет письма через Resend REST API
type ResendNotifier struct {
	from   string
	sender emailSender
}

// NewResendNotifier создает отправителя писем Resend
func NewResendNotifier(apiKey, from, fromName string) (*ResendNotifier, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("resend api key is required")
	}
	if from == "" {
		return nil, fmt.Errorf("email from is required")
	}
	if fromName != "" {
		from = fmt.Sprintf("%s <%s>", fromName, from)
	}
	return &ResendNotifier{
		from:   from,
		sender: resend.NewClient(apiKey).Emails,
	}, nil
}

// NotifyCertificateIssued отправляет студенту письмо со ссылкой на сертификат.
// Идемпотентность обеспечивается ключом на основе ID сертификата.
func (s *ResendNotifier) NotifyCertificateIssued(ctx context.Context, n CertificateNotification) error {
	if n.ToEmail == "" {
		return fmt.Errorf("recipient email is required")
	}

	params := &resend.SendEmailRequest{
		From:    s.from,
		To:      []string{n.ToEmail},
		Subject: fmt.Sprintf("Your certificate for %s", n.CourseTitle),
		Text: fmt.Sprintf("Congratulations, %s! You completed %s with a score of %d%%. Share your certificate: %s",
			n.StudentName, n.CourseTitle, n.Score, n.ShareURL),
		Html: fmt.Sprintf("<p>Congratulations, %s!</p><p>You completed <strong>%s</strong> with a score of %d%%.</p><p><a href=\"%s\">View and share your certificate</a></p>",
			html.EscapeString(n.StudentName), html.EscapeString(n.CourseTitle), n.Score, html.EscapeString(n.ShareURL)),
	}
	options := &resend.SendEmailOptions{IdempotencyKey: "certificate-issued/" + n.CertificateID}

	var lastErr error
	for attempt := 0; attempt < 3; attempt++ {
		_, err := s.sender.SendWithOptions(ctx, params, options)
		if err == nil {
			return nil
		}
		lastErr = err

		if wait, ok := resendRetryDelay(err, attempt); ok {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(wait):
				continue
			}
		}

		return fmt.Errorf("resend send failed: %w", err)
	}

	return fmt.Errorf("resend send failed after retries: %w", lastErr)
}

func resendRetryDelay(err error, attempt int) (time.Duration, bool) {
	var rateLimitErr *resend.RateLimitError
	if errors.As(err, &rateLimitErr) {
		if seconds, convErr := strconv.Atoi(strings.TrimSpace(rateLimitErr.RetryAfter)); convErr == nil && seconds > 0 {
			if seconds > 30 {
				seconds = 30
			}
			return time.Duration(seconds) * time.Second, true
		}
		return time.Duration(attempt+1) * time.Second, true
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return time.Duration(attempt+1) * 500 * time.Millisecond, true
	}

	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "timeout") || strings.Contains(msg, "temporar") {
		return time.Duration(attempt+1) * 500 * time.Millisecond, true
	}

	return 0, false
}
