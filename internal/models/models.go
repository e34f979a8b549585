package models

import "time"

const (
	LanguageTamil   = "tamil"
	LanguageEnglish = "english"
)

var Languages = []string{LanguageTamil, LanguageEnglish}

func ValidLanguage(value string) bool {
	for _, lang := range Languages {
		if lang == value {
			return true
		}
	}
	return false
}

type User struct {
	ID           string    `db:"id"`
	Name         string    `db:"name"`
	Email        string    `db:"email"`
	PasswordHash string    `db:"password_hash"`
	CreatedAt    time.Time `db:"created_at"`
}

type Course struct {
	ID          string    `db:"id"`
	Name        string    `db:"name"`
	Description string    `db:"description"`
	Language    string    `db:"language"`
	ImageURL    string    `db:"image_url"`
	CreatedAt   time.Time `db:"created_at"`
}

// CourseFilter narrows a course listing. Empty fields do not filter.
type CourseFilter struct {
	Search   string
	Language string
}

type Video struct {
	ID       string `db:"id"`
	CourseID string `db:"course_id"`
	Title    string `db:"title"`
	VideoURL string `db:"video_url"`
	Duration int    `db:"duration"`
	Order    int    `db:"order"`
}

type ProgressRecord struct {
	ID              string    `db:"id"`
	UserID          string    `db:"user_id"`
	CourseID        string    `db:"course_id"`
	VideoID         string    `db:"video_id"`
	WatchedDuration int       `db:"watched_duration"`
	Completed       bool      `db:"completed"`
	LastWatched     time.Time `db:"last_watched"`
}

// Certificate carries the user and course names as they were at issuance.
type Certificate struct {
	ID         string    `db:"id"`
	UserID     string    `db:"user_id"`
	CourseID   string    `db:"course_id"`
	UserName   string    `db:"user_name"`
	CourseName string    `db:"course_name"`
	IssuedAt   time.Time `db:"issued_at"`
}
