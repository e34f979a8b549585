package services

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"coursetrack-backend-go/internal/models"
	"coursetrack-backend-go/internal/repositories"
)

type CatalogRepository interface {
	ListCourses(ctx context.Context, filter models.CourseFilter) ([]models.Course, error)
	GetCourse(ctx context.Context, id string) (*models.Course, error)
	ListVideos(ctx context.Context, courseID string) ([]models.Video, error)
}

type CatalogService struct {
	repo    CatalogRepository
	timeout time.Duration
}

func NewCatalogService(repo CatalogRepository, timeout time.Duration) *CatalogService {
	return &CatalogService{repo: repo, timeout: timeout}
}

// ListCourses matches search as a case-insensitive substring of the course name and
// language as a case-insensitive tag. Empty values do not filter.
func (s *CatalogService) ListCourses(ctx context.Context, search, language string) ([]models.Course, error) {
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	courses, err := s.repo.ListCourses(ctx, models.CourseFilter{
		Search:   strings.TrimSpace(search),
		Language: strings.ToLower(strings.TrimSpace(language)),
	})
	if err != nil {
		return nil, WrapError(err, "list courses")
	}
	return courses, nil
}

func (s *CatalogService) GetCourse(ctx context.Context, id string) (*models.Course, error) {
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	course, err := s.repo.GetCourse(ctx, id)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, ErrNotFound("Course not found")
	}
	if err != nil {
		return nil, WrapError(err, "load course")
	}
	return course, nil
}

// ListVideos returns the course's videos in playback order.
func (s *CatalogService) ListVideos(ctx context.Context, courseID string) ([]models.Video, error) {
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	videos, err := s.repo.ListVideos(ctx, courseID)
	if err != nil {
		return nil, WrapError(err, "list videos")
	}
	sort.SliceStable(videos, func(i, j int) bool { return videos[i].Order < videos[j].Order })
	return videos, nil
}
