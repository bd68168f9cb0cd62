package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/Aayush1011/poker-planning-backend/internal/api/respond"
	"github.com/Aayush1011/poker-planning-backend/internal/domain"
	"github.com/Aayush1011/poker-planning-backend/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type SessionHandler struct {
	sessionService *service.SessionService
}

func NewSessionHandler(sessionService *service.SessionService) *SessionHandler {
	return &SessionHandler{sessionService: sessionService}
}

type CreateSessionRequest struct {
	Name        string `json:"name" validate:"required,min=5,max=24"`
	Description string `json:"description" validate:"required,min=10,max=255"`
}

type JoinSessionRequest struct {
	Role string `json:"role" validate:"required,oneof=moderator member"`
}

func (h *SessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, domain.NewError(http.StatusBadRequest, "Invalid request body"))
		return
	}
	if err := checkRequest(req); err != nil {
		respond.Error(w, err)
		return
	}

	session, err := h.sessionService.CreateSession(r.Context(), req.Name, req.Description)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusCreated, map[string]interface{}{
		"message": "new session created",
		"id":      session.ID,
	})
}

func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	sessionID, err := parseSessionID(r)
	if err != nil {
		respond.Error(w, err)
		return
	}

	session, err := h.sessionService.GetActiveSession(r.Context(), sessionID)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, map[string]interface{}{
		"message":     "session retrieved",
		"name":        session.Name,
		"description": session.Description,
		"status":      session.Status,
	})
}

func (h *SessionHandler) Join(w http.ResponseWriter, r *http.Request) {
	sessionID, err := parseSessionID(r)
	if err != nil {
		respond.Error(w, err)
		return
	}
	userID, err := parseUintParam(r, "userId")
	if err != nil {
		respond.Error(w, err)
		return
	}

	var req JoinSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, domain.NewError(http.StatusBadRequest, "Invalid request body"))
		return
	}
	if err := checkRequest(req); err != nil {
		respond.Error(w, err)
		return
	}
	role, err := domain.ParseRole(req.Role)
	if err != nil {
		respond.Error(w, err)
		return
	}

	participant, created, err := h.sessionService.JoinSession(r.Context(), sessionID, userID, role)
	if err != nil {
		respond.Error(w, err)
		return
	}

	if !created {
		respond.JSON(w, http.StatusOK, map[string]interface{}{
			"message": "user has already joined session",
			"role":    participant.Role,
		})
		return
	}
	respond.JSON(w, http.StatusCreated, map[string]interface{}{
		"message": "new participant added",
		"role":    participant.Role,
	})
}

func parseSessionID(r *http.Request) (uuid.UUID, error) {
	sessionID, err := uuid.Parse(chi.URLParam(r, "sessionId"))
	if err != nil {
		return uuid.Nil, domain.NewError(http.StatusUnprocessableEntity, "Invalid session id")
	}
	return sessionID, nil
}

func parseUintParam(r *http.Request, name string) (uint, error) {
	value, err := strconv.ParseUint(chi.URLParam(r, name), 10, 32)
	if err != nil {
		return 0, domain.NewError(http.StatusUnprocessableEntity, "Invalid "+name)
	}
	return uint(value), nil
}
