package httpapi

import (
	"time"

	"coursetrack-backend-go/internal/models"
	"coursetrack-backend-go/internal/services"
)

type UserDTO struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

type TokenResponse struct {
	AccessToken string  `json:"access_token"`
	TokenType   string  `json:"token_type"`
	User        UserDTO `json:"user"`
}

type CourseDTO struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Language    string    `json:"language"`
	ImageURL    string    `json:"image_url"`
	CreatedAt   time.Time `json:"created_at"`
}

type VideoDTO struct {
	ID       string `json:"id"`
	CourseID string `json:"course_id"`
	Title    string `json:"title"`
	VideoURL string `json:"video_url"`
	Duration int    `json:"duration"`
	Order    int    `json:"order"`
}

type ProgressDTO struct {
	ID              string    `json:"id"`
	UserID          string    `json:"user_id"`
	CourseID        string    `json:"course_id"`
	VideoID         string    `json:"video_id"`
	WatchedDuration int       `json:"watched_duration"`
	Completed       bool      `json:"completed"`
	LastWatched     time.Time `json:"last_watched"`
}

type CertificateDTO struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	CourseID   string    `json:"course_id"`
	UserName   string    `json:"user_name"`
	CourseName string    `json:"course_name"`
	IssuedAt   time.Time `json:"issued_at"`
}

func toUserDTO(user models.User) UserDTO {
	return UserDTO{ID: user.ID, Name: user.Name, Email: user.Email, CreatedAt: user.CreatedAt.UTC()}
}

func toTokenResponse(session *services.Session) TokenResponse {
	return TokenResponse{AccessToken: session.AccessToken, TokenType: "bearer", User: toUserDTO(session.User)}
}

func toCourseDTOs(courses []models.Course) []CourseDTO {
	out := make([]CourseDTO, 0, len(courses))
	for _, course := range courses {
		out = append(out, toCourseDTO(course))
	}
	return out
}

func toCourseDTO(course models.Course) CourseDTO {
	return CourseDTO{
		ID:          course.ID,
		Name:        course.Name,
		Description: course.Description,
		Language:    course.Language,
		ImageURL:    course.ImageURL,
		CreatedAt:   course.CreatedAt.UTC(),
	}
}

func toVideoDTOs(videos []models.Video) []VideoDTO {
	out := make([]VideoDTO, 0, len(videos))
	for _, video := range videos {
		out = append(out, VideoDTO{
			ID:       video.ID,
			CourseID: video.CourseID,
			Title:    video.Title,
			VideoURL: video.VideoURL,
			Duration: video.Duration,
			Order:    video.Order,
		})
	}
	return out
}

func toProgressDTOs(records []models.ProgressRecord) []ProgressDTO {
	out := make([]ProgressDTO, 0, len(records))
	for _, record := range records {
		out = append(out, ProgressDTO{
			ID:              record.ID,
			UserID:          record.UserID,
			CourseID:        record.CourseID,
			VideoID:         record.VideoID,
			WatchedDuration: record.WatchedDuration,
			Completed:       record.Completed,
			LastWatched:     record.LastWatched.UTC(),
		})
	}
	return out
}

// toCertificateDTO keeps a nil certificate nil so it encodes as JSON null.
func toCertificateDTO(cert *models.Certificate) *CertificateDTO {
	if cert == nil {
		return nil
	}
	return &CertificateDTO{
		ID:         cert.ID,
		UserID:     cert.UserID,
		CourseID:   cert.CourseID,
		UserName:   cert.UserName,
		CourseName: cert.CourseName,
		IssuedAt:   cert.IssuedAt.UTC(),
	}
}
