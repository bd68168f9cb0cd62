package handlers

import (
	"net/http"
	"strconv"

	"github.com/Aayush1011/poker-planning-backend/internal/api/respond"
	"github.com/Aayush1011/poker-planning-backend/internal/domain"
	"github.com/Aayush1011/poker-planning-backend/internal/service"
)

type UserHandler struct {
	sessionService *service.SessionService
}

func NewUserHandler(sessionService *service.SessionService) *UserHandler {
	return &UserHandler{sessionService: sessionService}
}

// GetSessions pages over the sessions the user participates in.
// fetchOffset is a page index, not a row offset.
func (h *UserHandler) GetSessions(w http.ResponseWriter, r *http.Request) {
	userID, err := parseUintParam(r, "userId")
	if err != nil {
		respond.Error(w, err)
		return
	}

	fetchLimit, err := strconv.Atoi(r.URL.Query().Get("fetchLimit"))
	if err != nil || fetchLimit <= 0 {
		respond.Error(w, domain.NewError(http.StatusUnprocessableEntity, "Invalid fetchLimit"))
		return
	}
	fetchOffset, err := strconv.Atoi(r.URL.Query().Get("fetchOffset"))
	if err != nil || fetchOffset < 0 {
		respond.Error(w, domain.NewError(http.StatusUnprocessableEntity, "Invalid fetchOffset"))
		return
	}

	rows, count, err := h.sessionService.GetUserSessions(r.Context(), userID, fetchLimit, fetchOffset)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, map[string]interface{}{
		"rows":  rows,
		"count": count,
	})
}
