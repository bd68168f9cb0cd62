package middleware

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/Aayush1011/poker-planning-backend/internal/api/respond"
	"github.com/Aayush1011/poker-planning-backend/internal/domain"
	"github.com/Aayush1011/poker-planning-backend/internal/service"
	"github.com/golang-jwt/jwt/v5"
)

type contextKey string

const UserIDKey contextKey = "userID"

var (
	errNotAuthenticated = domain.NewError(http.StatusUnauthorized, "Not authenticated")
	// expired tokens get a distinct status so clients know to refresh
	errTokenExpired  = domain.NewError(http.StatusForbidden, "Token expired")
	errNotAuthorized = domain.NewError(http.StatusBadRequest, "Not authorized")
)

// Auth validates the bearer token and its fingerprint binding: the sha256
// of the fingerprint cookie must equal the hash embedded in the token
// claims, otherwise the token/cookie pair came from different clients.
func Auth(authService *service.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(authHeader, "Bearer ")
			if !ok || token == "" {
				log.Printf("ERROR [middleware.Auth] missing bearer token")
				respond.Error(w, errNotAuthenticated)
				return
			}

			claims, err := authService.ValidateToken(token)
			if err != nil {
				if errors.Is(err, jwt.ErrTokenExpired) {
					respond.Error(w, errTokenExpired)
					return
				}
				log.Printf("ERROR [middleware.Auth] token validation failed: %v", err)
				respond.Error(w, errNotAuthenticated)
				return
			}

			cookie, err := r.Cookie(service.FingerprintCookieName)
			if err != nil || cookie.Value == "" {
				log.Printf("ERROR [middleware.Auth] missing fingerprint cookie")
				respond.Error(w, errNotAuthorized)
				return
			}

			if service.FingerprintHash(cookie.Value) != claims.Fingerprint {
				log.Printf("ERROR [middleware.Auth] fingerprint binding mismatch")
				respond.Error(w, errNotAuthorized)
				return
			}

			ctx := context.WithValue(r.Context(), UserIDKey, claims.UserID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func GetUserID(ctx context.Context) (uint, bool) {
	userID, ok := ctx.Value(UserIDKey).(uint)
	return userID, ok
}
