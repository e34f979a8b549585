package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// GenerateCertificate takes user_id and course_id from the query string.
func (s *Server) GenerateCertificate(w http.ResponseWriter, r *http.Request) {
	params, missing := requireQuery(r, "user_id", "course_id")
	if len(missing) > 0 {
		WriteJSON(w, http.StatusUnprocessableEntity, ValidationErrorResponse{Detail: missing})
		return
	}
	cert, err := s.Certificates.Generate(r.Context(), *CurrentUser(r), params["user_id"], params["course_id"])
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, toCertificateDTO(cert))
}

func (s *Server) GetCertificate(w http.ResponseWriter, r *http.Request) {
	cert, err := s.Certificates.Get(r.Context(), CurrentUser(r).ID, chi.URLParam(r, "userId"), chi.URLParam(r, "courseId"))
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, toCertificateDTO(cert))
}
