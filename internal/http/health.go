package httpapi

import "net/http"

func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.Health.Check(r.Context())
	status := http.StatusOK
	if !report.Healthy() {
		status = http.StatusServiceUnavailable
	}
	WriteJSON(w, status, report)
}
