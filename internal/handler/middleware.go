package handler

import (
	"context"
	"net/http"
	"strings"

	"chatapp/internal/app/session"
	"chatapp/internal/pkg/errs"
	"chatapp/internal/pkg/resp"
)

type contextKey string

const (
	// contextEmailKey stores the resolved identity email of the session.
	contextEmailKey contextKey = "session_email"

	// contextTokenKey stores the raw token the session was resolved from.
	contextTokenKey contextKey = "session_token"
)

// SessionMiddleware resolves the bearer token through the session directory
// and injects the identity email into the request context. Requests without
// a live session are rejected with 401; the directory itself performs the
// forward-consistency check, so a token displaced by a newer login fails
// here uniformly.
func SessionMiddleware(directory *session.Directory) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				resp.RespondError(w, r, errs.NewError(errs.ErrSessionExpired))
				return
			}

			email, ok := directory.Resolve(token)
			if !ok {
				resp.RespondError(w, r, errs.NewError(errs.ErrSessionExpired))
				return
			}

			ctx := context.WithValue(r.Context(), contextEmailKey, email)
			ctx = context.WithValue(ctx, contextTokenKey, token)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// bearerToken extracts the token from the Authorization header.
func bearerToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}
	return parts[1]
}

// sessionEmail returns the identity email injected by SessionMiddleware.
func sessionEmail(r *http.Request) string {
	email, _ := r.Context().Value(contextEmailKey).(string)
	return email
}

// sessionToken returns the raw token injected by SessionMiddleware.
func sessionToken(r *http.Request) string {
	token, _ := r.Context().Value(contextTokenKey).(string)
	return token
}
