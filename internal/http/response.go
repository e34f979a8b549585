package httpapi

import (
	"encoding/json"
	"net/http"

	"coursetrack-backend-go/internal/services"

	"go.uber.org/zap"
)

type ErrorResponse struct {
	Detail string `json:"detail"`
}

type ValidationErrorResponse struct {
	Detail []services.FieldError `json:"detail"`
}

type StatusResponse struct {
	Status string `json:"status"`
}

func WriteJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func WriteError(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, ErrorResponse{Detail: message})
}

func writeUnauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("WWW-Authenticate", "Bearer")
	WriteError(w, http.StatusUnauthorized, message)
}

// writeServiceError maps the service error taxonomy onto HTTP. Causes of internal
// errors are logged, never returned.
func (s *Server) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	svcErr, ok := services.AsServiceError(err)
	if !ok {
		s.Logger.Error("request failed",
			zap.String("request_id", GetRequestID(r.Context())),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
		WriteError(w, http.StatusInternalServerError, svcErr.Message)
		return
	}
	switch svcErr.Kind {
	case services.KindValidation:
		if len(svcErr.Fields) > 0 {
			WriteJSON(w, http.StatusUnprocessableEntity, ValidationErrorResponse{Detail: svcErr.Fields})
			return
		}
		WriteError(w, http.StatusUnprocessableEntity, svcErr.Message)
	case services.KindUnauthorized:
		writeUnauthorized(w, svcErr.Message)
	case services.KindForbidden:
		WriteError(w, http.StatusForbidden, svcErr.Message)
	case services.KindNotFound:
		WriteError(w, http.StatusNotFound, svcErr.Message)
	case services.KindConflict:
		WriteError(w, http.StatusBadRequest, svcErr.Message)
	default:
		WriteError(w, http.StatusInternalServerError, "Internal server error")
	}
}
