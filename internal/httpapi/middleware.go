package httpapi

import (
	"context"
	"net/http"
	"strings"
	"time"

	"vidtube/internal/common"
	"vidtube/internal/logging"
)

type contextKey string

const userIDKey contextKey = "userID"

// CallerID returns the authenticated user's id from the request context, or
// empty when the request is anonymous.
func CallerID(ctx context.Context) string {
	id, _ := ctx.Value(userIDKey).(string)
	return id
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return ""
	}
	return strings.TrimPrefix(header, "Bearer ")
}

type authMiddleware struct {
	tokens *common.TokenManager
}

// Require rejects requests without a valid access token.
func (a *authMiddleware) Require(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		if token == "" {
			writeError(w, common.E(common.KindUnauthenticated, "missing access token"))
			return
		}

		claims, err := a.tokens.ValidAccessToken(token)
		if err != nil {
			writeError(w, common.E(common.KindUnauthenticated, "invalid or expired access token"))
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, claims.UserID)
		next(w, r.WithContext(ctx))
	}
}

// Optional attaches the caller identity when a valid token is present but
// lets anonymous requests through. Used on views that adapt to the caller,
// like the channel profile's isSubscribed flag.
func (a *authMiddleware) Optional(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if token := bearerToken(r); token != "" {
			if claims, err := a.tokens.ValidAccessToken(token); err == nil {
				r = r.WithContext(context.WithValue(r.Context(), userIDKey, claims.UserID))
			}
		}
		next(w, r)
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (sr *statusRecorder) WriteHeader(status int) {
	sr.status = status
	sr.ResponseWriter.WriteHeader(status)
}

func requestLogger(log *logging.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r)
			log.LogHTTPRequest(r.Method, r.URL.Path, rec.status, time.Since(start))
		})
	}
}
