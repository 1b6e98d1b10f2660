package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/yourusername/elearning-api/internal/domain/entity"
	"github.com/yourusername/elearning-api/internal/domain/repository"
	"github.com/yourusername/elearning-api/internal/event"
	"github.com/yourusername/elearning-api/internal/metrics"
	apperrors "github.com/yourusername/elearning-api/internal/pkg/errors"
)

// Значения по умолчанию, если пользователь или курс не найдены
const (
	FallbackStudentName = "Student"
	FallbackEmail       = "N/A"
	FallbackCourseName  = "Untitled Course"
)

// defaultAnnounceTimeout ограничивает публикацию события и отправку письма
// о выданном сертификате, включая повторы Resend.
const defaultAnnounceTimeout = 2 * time.Minute

// CertificateView - сертификат с именами студента и курса для отображения
type CertificateView struct {
	ID             string    `json:"id"`
	UserID         string    `json:"userId"`
	CourseID       string    `json:"courseId"`
	StudentName    string    `json:"studentName"`
	Email          string    `json:"email"`
	CourseName     string    `json:"courseName"`
	Score          int       `json:"score"`
	Passed         bool      `json:"passed"`
	CompletionDate time.Time `json:"completionDate"`
}

// CertificateService выдаёт сертификаты и собирает их представления
type CertificateService struct {
	certRepo      repository.CertificateRepository
	userRepo      repository.UserRepository
	courseRepo    repository.CourseRepository
	publisher     event.Publisher
	notifier      Notifier
	publicBaseURL string
	now           func() time.Time

	announceTimeout time.Duration
	announcing      sync.WaitGroup
}

// NewCertificateService создает новый сервис сертификатов
func NewCertificateService(
	certRepo repository.CertificateRepository,
	userRepo repository.UserRepository,
	courseRepo repository.CourseRepository,
	publisher event.Publisher,
	notifier Notifier,
	publicBaseURL string,
) *CertificateService {
	if publisher == nil {
		publisher = event.NoopPublisher{}
	}
	if notifier == nil {
		notifier = NoopNotifier{}
	}
	return &CertificateService{
		certRepo:      certRepo,
		userRepo:      userRepo,
		courseRepo:    courseRepo,
		publisher:     publisher,
		notifier:      notifier,
		publicBaseURL: publicBaseURL,
		now:           time.Now,

		announceTimeout: defaultAnnounceTimeout,
	}
}

// Issue создает и сохраняет ровно один сертификат об успешном прохождении.
// Ошибка сохранения возвращается как ErrStorageFailure; повторов нет.
// Событие и письмо отправляются в фоне и не задерживают ответ.
func (s *CertificateService) Issue(ctx context.Context, userID, courseID string, score int) (*entity.Certificate, error) {
	if userID == "" || courseID == "" {
		return nil, fmt.Errorf("%w: user id and course id are required", apperrors.ErrValidation)
	}
	if score < 0 || score > 100 {
		return nil, fmt.Errorf("%w: score must be between 0 and 100, got %d", apperrors.ErrValidation, score)
	}

	cert := entity.NewCertificate(userID, courseID, score, true, s.now())
	if err := s.certRepo.Create(ctx, cert); err != nil {
		log.Error().Err(err).Str("user_id", userID).Str("course_id", courseID).Msg("[CertificateService] Ошибка сохранения сертификата")
		if errors.Is(err, apperrors.ErrStorageFailure) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: create certificate: %v", apperrors.ErrStorageFailure, err)
	}

	metrics.ObserveCertificateIssued()
	log.Info().Str("certificate_id", cert.ID).Str("user_id", userID).Str("course_id", courseID).Int("score", score).
		Msg("[CertificateService] Сертификат выдан")

	s.announcing.Add(1)
	go func() {
		defer s.announcing.Done()
		announceCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.announceTimeout)
		defer cancel()
		s.announce(announceCtx, cert)
	}()
	return cert, nil
}

// Wait дожидается фоновых уведомлений о выданных сертификатах
// или истечения ctx. Вызывается при остановке сервера.
func (s *CertificateService) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		s.announcing.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// announce публикует событие и отправляет письмо. Сертификат уже сохранён,
// поэтому ошибки только логируются.
func (s *CertificateService) announce(ctx context.Context, cert *entity.Certificate) {
	evt := event.CertificateIssued{
		CertificateID: cert.ID,
		UserID:        cert.UserID,
		CourseID:      cert.CourseID,
		Score:         cert.Score,
		IssuedAt:      cert.IssuedAt,
	}
	if err := s.publisher.PublishCertificateIssued(ctx, evt); err != nil {
		log.Warn().Err(err).Str("certificate_id", cert.ID).Msg("[CertificateService] Не удалось опубликовать событие")
	}

	view := s.buildView(ctx, cert)
	if view.Email == FallbackEmail {
		return
	}
	notification := CertificateNotification{
		CertificateID: cert.ID,
		ToEmail:       view.Email,
		StudentName:   view.StudentName,
		CourseTitle:   view.CourseName,
		Score:         cert.Score,
		ShareURL:      s.ShareURL(cert.ID),
	}
	if err := s.notifier.NotifyCertificateIssued(ctx, notification); err != nil {
		log.Warn().Err(err).Str("certificate_id", cert.ID).Msg("[CertificateService] Не удалось отправить письмо")
	}
}

// GetView возвращает сертификат по ID с именами студента и курса
func (s *CertificateService) GetView(ctx context.Context, id string) (*CertificateView, error) {
	cert, err := s.certRepo.GetByID(ctx, id)
	if err != nil {
		return nil, asStorageFailure("get certificate", err)
	}
	view := s.buildView(ctx, cert)
	return &view, nil
}

// GetLatestForUserAndCourse возвращает последний сертификат пользователя по курсу.
// Обычный пользователь видит только свои сертификаты.
func (s *CertificateService) GetLatestForUserAndCourse(ctx context.Context, caller Caller, userID, courseID string) (*CertificateView, error) {
	if !caller.CanAccessUser(userID) {
		return nil, fmt.Errorf("%w: cannot read certificates of another user", apperrors.ErrForbidden)
	}
	cert, err := s.certRepo.GetLatestByUserAndCourse(ctx, userID, courseID)
	if err != nil {
		return nil, asStorageFailure("get latest certificate", err)
	}
	view := s.buildView(ctx, cert)
	return &view, nil
}

// ListForCourse возвращает все сертификаты курса (для выгрузки администратором)
func (s *CertificateService) ListForCourse(ctx context.Context, courseID string) ([]CertificateView, error) {
	course, err := s.courseRepo.GetByID(ctx, courseID)
	if err != nil {
		return nil, asStorageFailure("get course", err)
	}
	certs, err := s.certRepo.ListByCourse(ctx, courseID)
	if err != nil {
		return nil, asStorageFailure("list certificates", err)
	}

	users := make(map[string]*entity.User)
	views := make([]CertificateView, 0, len(certs))
	for i := range certs {
		cert := &certs[i]
		user, seen := users[cert.UserID]
		if !seen {
			user = s.lookupUser(ctx, cert.UserID)
			users[cert.UserID] = user
		}
		views = append(views, newCertificateView(cert, user, course))
	}
	return views, nil
}

// ShareURL возвращает публичную ссылку на страницу предпросмотра сертификата
func (s *CertificateService) ShareURL(certificateID string) string {
	return fmt.Sprintf("%s/certificates/%s/preview", s.publicBaseURL, certificateID)
}

// ImageURL возвращает ссылку на изображение сертификата для og:image
func (s *CertificateService) ImageURL(certificateID string) string {
	return fmt.Sprintf("%s/certificate-images/certificate-%s.jpeg", s.publicBaseURL, certificateID)
}

func (s *CertificateService) buildView(ctx context.Context, cert *entity.Certificate) CertificateView {
	var course *entity.Course
	if c, err := s.courseRepo.GetByID(ctx, cert.CourseID); err == nil {
		course = c
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		log.Warn().Err(err).Str("course_id", cert.CourseID).Msg("[CertificateService] Не удалось загрузить курс")
	}
	return newCertificateView(cert, s.lookupUser(ctx, cert.UserID), course)
}

func (s *CertificateService) lookupUser(ctx context.Context, userID string) *entity.User {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			log.Warn().Err(err).Str("user_id", userID).Msg("[CertificateService] Не удалось загрузить пользователя")
		}
		return nil
	}
	return user
}

func newCertificateView(cert *entity.Certificate, user *entity.User, course *entity.Course) CertificateView {
	view := CertificateView{
		ID:             cert.ID,
		UserID:         cert.UserID,
		CourseID:       cert.CourseID,
		StudentName:    FallbackStudentName,
		Email:          FallbackEmail,
		CourseName:     FallbackCourseName,
		Score:          cert.Score,
		Passed:         cert.Passed,
		CompletionDate: cert.IssuedAt,
	}
	if user != nil {
		if user.Name != "" {
			view.StudentName = user.Name
		}
		if user.Email != "" {
			view.Email = user.Email
		}
	}
	if course != nil && course.Title != "" {
		view.CourseName = course.Title
	}
	return view
}
