package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"coursetrack-backend-go/internal/services"

	"github.com/go-playground/validator/v10"
)

const maxBodyBytes = 1 << 20

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// decodeJSON reads and validates a request body. It writes the error response itself
// and reports whether the handler should continue.
func (s *Server) decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid JSON payload")
		return false
	}
	if err := s.validate.Struct(dst); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			WriteError(w, http.StatusBadRequest, "Invalid JSON payload")
			return false
		}
		WriteJSON(w, http.StatusUnprocessableEntity, ValidationErrorResponse{Detail: fieldErrors(fieldErrs)})
		return false
	}
	return true
}

func fieldErrors(errs validator.ValidationErrors) []services.FieldError {
	out := make([]services.FieldError, 0, len(errs))
	for _, fe := range errs {
		out = append(out, services.FieldError{Field: fe.Field(), Message: fieldMessage(fe)})
	}
	return out
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "field required"
	case "email":
		return "value is not a valid email address"
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", fe.Param())
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}

// requireQuery collects missing query parameters as field errors.
func requireQuery(r *http.Request, names ...string) (map[string]string, []services.FieldError) {
	values := make(map[string]string, len(names))
	var missing []services.FieldError
	for _, name := range names {
		value := strings.TrimSpace(r.URL.Query().Get(name))
		if value == "" {
			missing = append(missing, services.FieldError{Field: name, Message: "field required"})
			continue
		}
		values[name] = value
	}
	return values, missing
}
