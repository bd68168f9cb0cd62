package middleware

import (
	"log"
	"net/http"

	"github.com/Aayush1011/poker-planning-backend/internal/api/respond"
	"github.com/Aayush1011/poker-planning-backend/internal/domain"
	"github.com/Aayush1011/poker-planning-backend/internal/repository"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

var errForbidden = domain.NewError(http.StatusForbidden, "Forbidden")

// Moderator guards story-mutation routes. It runs after Auth, so the
// caller's identity comes from the already-validated token.
func Moderator(participants repository.ParticipantRepository) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, ok := GetUserID(r.Context())
			if !ok {
				respond.Error(w, errNotAuthenticated)
				return
			}

			sessionID, err := uuid.Parse(chi.URLParam(r, "sessionId"))
			if err != nil {
				respond.Error(w, domain.NewError(http.StatusUnprocessableEntity, "Invalid session id"))
				return
			}

			if _, err := participants.GetModerator(r.Context(), sessionID, userID); err != nil {
				log.Printf("ERROR [middleware.Moderator] user %d is not a moderator of %s", userID, sessionID)
				respond.Error(w, errForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
