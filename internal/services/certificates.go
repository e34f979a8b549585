package services

import (
	"context"
	"errors"
	"time"

	"coursetrack-backend-go/internal/models"
	"coursetrack-backend-go/internal/repositories"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type CertificateRepository interface {
	Find(ctx context.Context, userID, courseID string) (*models.Certificate, error)
	InsertIfAbsent(ctx context.Context, cert *models.Certificate) (*models.Certificate, error)
}

type CourseLookup interface {
	GetCourse(ctx context.Context, id string) (*models.Course, error)
}

// CertificateService issues at most one certificate per (user, course).
type CertificateService struct {
	certs   CertificateRepository
	courses CourseLookup
	timeout time.Duration
	logger  *zap.Logger
	now     func() time.Time
}

func NewCertificateService(certs CertificateRepository, courses CourseLookup, timeout time.Duration, logger *zap.Logger) *CertificateService {
	return &CertificateService{
		certs:   certs,
		courses: courses,
		timeout: timeout,
		logger:  logger,
		now:     time.Now,
	}
}

// Generate returns the caller's existing certificate for the course, or issues one
// naming the caller and the course as they are now.
func (s *CertificateService) Generate(ctx context.Context, caller models.User, userID, courseID string) (*models.Certificate, error) {
	if err := requireOwner(caller.ID, userID); err != nil {
		return nil, err
	}

	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	existing, err := s.certs.Find(ctx, userID, courseID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, repositories.ErrNotFound) {
		return nil, WrapError(err, "find certificate")
	}

	course, err := s.courses.GetCourse(ctx, courseID)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, ErrNotFound("Course not found")
	}
	if err != nil {
		return nil, WrapError(err, "load course")
	}

	stored, err := s.certs.InsertIfAbsent(ctx, &models.Certificate{
		ID:         uuid.NewString(),
		UserID:     userID,
		CourseID:   courseID,
		UserName:   caller.Name,
		CourseName: course.Name,
		IssuedAt:   s.now().UTC(),
	})
	if err != nil {
		return nil, WrapError(err, "insert certificate")
	}
	s.logger.Info("certificate issued",
		zap.String("certificate_id", stored.ID),
		zap.String("user_id", userID),
		zap.String("course_id", courseID),
	)
	return stored, nil
}

// Get returns nil without error when no certificate has been issued.
func (s *CertificateService) Get(ctx context.Context, callerID, userID, courseID string) (*models.Certificate, error) {
	if err := requireOwner(callerID, userID); err != nil {
		return nil, err
	}

	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	cert, err := s.certs.Find(ctx, userID, courseID)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, WrapError(err, "find certificate")
	}
	return cert, nil
}
