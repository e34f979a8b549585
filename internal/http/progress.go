package httpapi

import (
	"net/http"

	"coursetrack-backend-go/internal/services"

	"github.com/go-chi/chi/v5"
)

type ProgressUpdateRequest struct {
	UserID          string `json:"user_id" validate:"required"`
	CourseID        string `json:"course_id" validate:"required"`
	VideoID         string `json:"video_id" validate:"required"`
	WatchedDuration *int   `json:"watched_duration" validate:"required,min=0"`
	Completed       bool   `json:"completed"`
}

func (s *Server) UpdateProgress(w http.ResponseWriter, r *http.Request) {
	var req ProgressUpdateRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	_, err := s.Progress.Update(r.Context(), CurrentUser(r).ID, services.ProgressUpdate{
		UserID:          req.UserID,
		CourseID:        req.CourseID,
		VideoID:         req.VideoID,
		WatchedDuration: *req.WatchedDuration,
		Completed:       req.Completed,
	})
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, StatusResponse{Status: "success"})
}

func (s *Server) ListProgress(w http.ResponseWriter, r *http.Request) {
	records, err := s.Progress.List(r.Context(), CurrentUser(r).ID, chi.URLParam(r, "userId"), chi.URLParam(r, "courseId"))
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, toProgressDTOs(records))
}
