package repositories

import (
	"context"

	"coursetrack-backend-go/internal/models"

	"github.com/jmoiron/sqlx"
)

type ProgressRepository struct {
	db *sqlx.DB
}

func NewProgressRepository(db *sqlx.DB) *ProgressRepository {
	return &ProgressRepository{db: db}
}

// Upsert writes the record under its (user, course, video) key and returns the stored row.
// An existing row keeps its id; every other field is overwritten.
func (r *ProgressRepository) Upsert(ctx context.Context, record *models.ProgressRecord) (*models.ProgressRecord, error) {
	var stored models.ProgressRecord
	err := r.db.QueryRowxContext(ctx, `
INSERT INTO progress (id, user_id, course_id, video_id, watched_duration, completed, last_watched)
VALUES ($1,$2,$3,$4,$5,$6,$7)
ON CONFLICT (user_id, course_id, video_id) DO UPDATE
SET watched_duration = EXCLUDED.watched_duration,
    completed = EXCLUDED.completed,
    last_watched = EXCLUDED.last_watched
RETURNING id, user_id, course_id, video_id, watched_duration, completed, last_watched
`, record.ID, record.UserID, record.CourseID, record.VideoID, record.WatchedDuration, record.Completed, record.LastWatched).StructScan(&stored)
	if err != nil {
		return nil, translate(err)
	}
	return &stored, nil
}

func (r *ProgressRepository) ListByUserCourse(ctx context.Context, userID, courseID string) ([]models.ProgressRecord, error) {
	records := []models.ProgressRecord{}
	err := r.db.SelectContext(ctx, &records, `
SELECT id, user_id, course_id, video_id, watched_duration, completed, last_watched
FROM progress
WHERE user_id = $1 AND course_id = $2
LIMIT $3
`, userID, courseID, ListLimit)
	if err != nil {
		return nil, translate(err)
	}
	return records, nil
}
