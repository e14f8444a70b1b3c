package http

import (
	"context"
	"net/http"
	"strings"

	"github.com/yesmovie/backend/internal/payment"
	"github.com/yesmovie/backend/pkg/httputil"
)

// contextKey is an unexported type for context keys to prevent collisions.
type contextKey string

// identityKey is the context key for the authenticated caller identity.
const identityKey contextKey = "identity"

// RequireIdentity is middleware that reads the X-User-ID and X-User-Email
// headers (injected by the API gateway after JWT validation) and stores them
// in the request context. If X-User-ID is absent the request is rejected with
// 401 Unauthorized; there is no anonymous fallback.
func RequireIdentity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		uid := r.Header.Get("X-User-ID")
		if uid == "" {
			httputil.WriteJSON(w, http.StatusUnauthorized, httputil.Response{
				Error: &httputil.ErrorResponse{Code: "NOT_AUTHENTICATED", Message: "authentication required"},
			})
			return
		}
		identity := payment.Identity{
			OwnerID: uid,
			Email:   r.Header.Get("X-User-Email"),
		}
		ctx := context.WithValue(r.Context(), identityKey, identity)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// identityFromContext extracts the authenticated identity from the request
// context. Returns the identity and true if present, or a zero identity and
// false otherwise.
func identityFromContext(ctx context.Context) (payment.Identity, bool) {
	identity, ok := ctx.Value(identityKey).(payment.Identity)
	return identity, ok && identity.OwnerID != ""
}

// ContentTypeJSON enforces that requests with a body have Content-Type: application/json.
func ContentTypeJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.ContentLength > 0 || r.Method == http.MethodPost || r.Method == http.MethodPut || r.Method == http.MethodPatch {
			ct := r.Header.Get("Content-Type")
			if ct != "" && !strings.HasPrefix(ct, "application/json") {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnsupportedMediaType)
				_, _ = w.Write([]byte(`{"error":{"code":"UNSUPPORTED_MEDIA_TYPE","message":"Content-Type must be application/json"}}`))
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}
