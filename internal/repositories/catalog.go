package repositories

import (
	"context"
	"fmt"
	"strings"

	"coursetrack-backend-go/internal/models"

	"github.com/jmoiron/sqlx"
)

// ListLimit caps every unpaginated listing.
const ListLimit = 1000

type CatalogRepository struct {
	db *sqlx.DB
}

func NewCatalogRepository(db *sqlx.DB) *CatalogRepository {
	return &CatalogRepository{db: db}
}

func (r *CatalogRepository) ListCourses(ctx context.Context, filter models.CourseFilter) ([]models.Course, error) {
	args := []interface{}{}
	conditions := []string{}
	if filter.Search != "" {
		args = append(args, filter.Search)
		conditions = append(conditions, fmt.Sprintf("strpos(lower(name), lower($%d)) > 0", len(args)))
	}
	if filter.Language != "" {
		args = append(args, strings.ToLower(filter.Language))
		conditions = append(conditions, fmt.Sprintf("language = $%d", len(args)))
	}
	where := ""
	if len(conditions) > 0 {
		where = "WHERE " + strings.Join(conditions, " AND ")
	}
	args = append(args, ListLimit)
	query := fmt.Sprintf(`
SELECT id, name, description, language, image_url, created_at
FROM courses
%s
ORDER BY created_at ASC, id ASC
LIMIT $%d`, where, len(args))
	courses := []models.Course{}
	if err := r.db.SelectContext(ctx, &courses, query, args...); err != nil {
		return nil, translate(err)
	}
	return courses, nil
}

func (r *CatalogRepository) GetCourse(ctx context.Context, id string) (*models.Course, error) {
	var course models.Course
	err := r.db.GetContext(ctx, &course, `
SELECT id, name, description, language, image_url, created_at
FROM courses
WHERE id = $1
`, id)
	if err != nil {
		return nil, translate(err)
	}
	return &course, nil
}

func (r *CatalogRepository) ListVideos(ctx context.Context, courseID string) ([]models.Video, error) {
	videos := []models.Video{}
	err := r.db.SelectContext(ctx, &videos, `
SELECT id, course_id, title, video_url, duration, "order"
FROM videos
WHERE course_id = $1
ORDER BY "order" ASC
LIMIT $2
`, courseID, ListLimit)
	if err != nil {
		return nil, translate(err)
	}
	return videos, nil
}

func (r *CatalogRepository) CreateCourse(ctx context.Context, course *models.Course) error {
	_, err := r.db.ExecContext(ctx, `
INSERT INTO courses (id, name, description, language, image_url, created_at)
VALUES ($1,$2,$3,$4,$5,$6)
`, course.ID, course.Name, course.Description, course.Language, course.ImageURL, course.CreatedAt)
	return translate(err)
}

func (r *CatalogRepository) CreateVideo(ctx context.Context, video *models.Video) error {
	_, err := r.db.ExecContext(ctx, `
INSERT INTO videos (id, course_id, title, video_url, duration, "order")
VALUES ($1,$2,$3,$4,$5,$6)
`, video.ID, video.CourseID, video.Title, video.VideoURL, video.Duration, video.Order)
	return translate(err)
}

// Reset removes every course and video.
func (r *CatalogRepository) Reset(ctx context.Context) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()
	if _, err := tx.ExecContext(ctx, `DELETE FROM videos`); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM courses`); err != nil {
		return err
	}
	return tx.Commit()
}
