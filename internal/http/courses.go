package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (s *Server) ListCourses(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	courses, err := s.Catalog.ListCourses(r.Context(), query.Get("search"), query.Get("language"))
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, toCourseDTOs(courses))
}

func (s *Server) GetCourse(w http.ResponseWriter, r *http.Request) {
	course, err := s.Catalog.GetCourse(r.Context(), chi.URLParam(r, "courseId"))
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, toCourseDTO(*course))
}

// ListVideos answers with an empty list for an unknown course.
func (s *Server) ListVideos(w http.ResponseWriter, r *http.Request) {
	videos, err := s.Catalog.ListVideos(r.Context(), chi.URLParam(r, "courseId"))
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, toVideoDTOs(videos))
}
