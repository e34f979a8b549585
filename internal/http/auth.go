package httpapi

import (
	"context"
	"net/http"
	"strings"

	"coursetrack-backend-go/internal/models"
	"coursetrack-backend-go/internal/services"

	"go.uber.org/zap"
)

type contextKey string

const ctxUser contextKey = "user"

// WithAuth resolves the bearer token to a user and stores it on the request context.
func WithAuth(auth *services.AuthService, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if !ok {
				writeUnauthorized(w, "Not authenticated")
				return
			}
			user, err := auth.Resolve(r.Context(), token)
			if err != nil {
				svcErr, known := services.AsServiceError(err)
				if known && svcErr.Kind == services.KindUnauthorized {
					writeUnauthorized(w, svcErr.Message)
					return
				}
				logger.Error("resolve identity",
					zap.String("request_id", GetRequestID(r.Context())),
					zap.Error(err),
				)
				WriteError(w, http.StatusInternalServerError, "Internal server error")
				return
			}
			ctx := context.WithValue(r.Context(), ctxUser, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func CurrentUser(r *http.Request) *models.User {
	if user, ok := r.Context().Value(ctxUser).(*models.User); ok {
		return user
	}
	return nil
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
