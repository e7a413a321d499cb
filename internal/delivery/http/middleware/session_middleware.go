package middleware

import (
	"context"
	"net/http"
	"time"

	"tabreed-backend/internal/domain"

	"github.com/google/uuid"
)

const sessionCookie = "sid"

// sessionCookieMaxAge keeps the shopper's cart across visits for a
// year; the cookie renews on every request.
const sessionCookieMaxAge = 365 * 24 * time.Hour

// SessionMiddleware assigns each visitor an anonymous shopper session
// id. The id keys the visitor's cart/wishlist/compare slots; it is not
// an authentication credential.
func SessionMiddleware(secureCookies bool) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sid := ""
			if cookie, err := r.Cookie(sessionCookie); err == nil {
				// Only accept well-formed ids; a tampered cookie gets
				// a fresh session rather than an arbitrary slot key.
				if _, err := uuid.Parse(cookie.Value); err == nil {
					sid = cookie.Value
				}
			}
			if sid == "" {
				sid = uuid.New().String()
			}

			http.SetCookie(w, &http.Cookie{
				Name:     sessionCookie,
				Value:    sid,
				Path:     "/",
				MaxAge:   int(sessionCookieMaxAge.Seconds()),
				HttpOnly: true,
				Secure:   secureCookies,
				SameSite: http.SameSiteLaxMode,
			})

			ctx := context.WithValue(r.Context(), domain.SessionContextKey, sid)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// SessionID returns the shopper session id set by SessionMiddleware.
func SessionID(r *http.Request) string {
	sid, _ := r.Context().Value(domain.SessionContextKey).(string)
	return sid
}
