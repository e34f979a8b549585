package repositories

import (
	"context"

	"coursetrack-backend-go/internal/models"

	"github.com/jmoiron/sqlx"
)

type CertificateRepository struct {
	db *sqlx.DB
}

func NewCertificateRepository(db *sqlx.DB) *CertificateRepository {
	return &CertificateRepository{db: db}
}

func (r *CertificateRepository) Find(ctx context.Context, userID, courseID string) (*models.Certificate, error) {
	var cert models.Certificate
	err := r.db.GetContext(ctx, &cert, `
SELECT id, user_id, course_id, user_name, course_name, issued_at
FROM certificates
WHERE user_id = $1 AND course_id = $2
`, userID, courseID)
	if err != nil {
		return nil, translate(err)
	}
	return &cert, nil
}

// InsertIfAbsent stores cert unless one already exists for its (user, course) pair and
// returns whichever certificate is stored afterwards. Concurrent callers all observe the
// same row.
func (r *CertificateRepository) InsertIfAbsent(ctx context.Context, cert *models.Certificate) (*models.Certificate, error) {
	_, err := r.db.ExecContext(ctx, `
INSERT INTO certificates (id, user_id, course_id, user_name, course_name, issued_at)
VALUES ($1,$2,$3,$4,$5,$6)
ON CONFLICT (user_id, course_id) DO NOTHING
`, cert.ID, cert.UserID, cert.CourseID, cert.UserName, cert.CourseName, cert.IssuedAt)
	if err != nil {
		return nil, translate(err)
	}
	return r.Find(ctx, cert.UserID, cert.CourseID)
}
