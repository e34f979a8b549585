package services

import (
	"context"
	"time"

	"coursetrack-backend-go/internal/models"

	"github.com/google/uuid"
)

type ProgressRepository interface {
	Upsert(ctx context.Context, record *models.ProgressRecord) (*models.ProgressRecord, error)
	ListByUserCourse(ctx context.Context, userID, courseID string) ([]models.ProgressRecord, error)
}

// ProgressPublisher receives every stored progress record.
type ProgressPublisher interface {
	Publish(record models.ProgressRecord)
}

type ProgressUpdate struct {
	UserID          string
	CourseID        string
	VideoID         string
	WatchedDuration int
	Completed       bool
}

// ProgressService tracks per-video watch state. Watched duration is stored as reported;
// it is not checked against the video length or course membership.
type ProgressService struct {
	repo      ProgressRepository
	publisher ProgressPublisher
	timeout   time.Duration
	now       func() time.Time
}

func NewProgressService(repo ProgressRepository, publisher ProgressPublisher, timeout time.Duration) *ProgressService {
	return &ProgressService{
		repo:      repo,
		publisher: publisher,
		timeout:   timeout,
		now:       time.Now,
	}
}

func (s *ProgressService) Update(ctx context.Context, callerID string, in ProgressUpdate) (*models.ProgressRecord, error) {
	if err := requireOwner(callerID, in.UserID); err != nil {
		return nil, err
	}
	if in.WatchedDuration < 0 {
		return nil, ErrValidation("Invalid progress", FieldError{Field: "watched_duration", Message: "must be zero or greater"})
	}

	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	stored, err := s.repo.Upsert(ctx, &models.ProgressRecord{
		ID:              uuid.NewString(),
		UserID:          in.UserID,
		CourseID:        in.CourseID,
		VideoID:         in.VideoID,
		WatchedDuration: in.WatchedDuration,
		Completed:       in.Completed,
		LastWatched:     s.now().UTC(),
	})
	if err != nil {
		return nil, WrapError(err, "upsert progress")
	}
	if s.publisher != nil {
		s.publisher.Publish(*stored)
	}
	return stored, nil
}

func (s *ProgressService) List(ctx context.Context, callerID, userID, courseID string) ([]models.ProgressRecord, error) {
	if err := requireOwner(callerID, userID); err != nil {
		return nil, err
	}

	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	records, err := s.repo.ListByUserCourse(ctx, userID, courseID)
	if err != nil {
		return nil, WrapError(err, "list progress")
	}
	return records, nil
}
