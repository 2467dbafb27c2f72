package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/hanzideck/hanzideck-api/internal/api/shared"
	"github.com/hanzideck/hanzideck-api/internal/platform/logger"
)

// UserIDHeader carries the caller's identity. The API trusts the value as
// provided; authenticating it is the job of whatever sits in front of this
// service.
const UserIDHeader = "X-User-ID"

// UserMiddleware extracts the user ID from the X-User-ID header, validates
// it as a UUID, and stores it in the request context under
// shared.UserIDContextKey. Requests without a valid user ID are rejected
// before they reach a handler.
func UserMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContextOrDefault(r.Context(), slog.Default())

		header := r.Header.Get(UserIDHeader)
		if header == "" {
			log.Debug("missing user ID header", slog.String("path", r.URL.Path))
			shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID is required")
			return
		}

		userID, err := uuid.Parse(header)
		if err != nil || userID == uuid.Nil {
			log.Debug("invalid user ID header",
				slog.String("path", r.URL.Path))
			shared.RespondWithError(w, r, http.StatusUnauthorized, "Invalid user ID")
			return
		}

		ctx := context.WithValue(r.Context(), shared.UserIDContextKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
