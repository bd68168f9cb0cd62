package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/Aayush1011/poker-planning-backend/internal/api/respond"
	"github.com/Aayush1011/poker-planning-backend/internal/domain"
	"github.com/Aayush1011/poker-planning-backend/internal/service"
)

type StoryHandler struct {
	storyService *service.StoryService
}

func NewStoryHandler(storyService *service.StoryService) *StoryHandler {
	return &StoryHandler{storyService: storyService}
}

type AddStoryRequest struct {
	UserID      uint   `json:"userId" validate:"required"`
	Name        string `json:"name" validate:"required"`
	Description string `json:"description" validate:"required"`
}

type EditStoryRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description" validate:"required"`
}

type StoryRow struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (h *StoryHandler) Add(w http.ResponseWriter, r *http.Request) {
	sessionID, err := parseSessionID(r)
	if err != nil {
		respond.Error(w, err)
		return
	}

	var req AddStoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, domain.NewError(http.StatusBadRequest, "Invalid request body"))
		return
	}
	if err := checkRequest(req); err != nil {
		respond.Error(w, err)
		return
	}

	story, err := h.storyService.AddStory(r.Context(), sessionID, req.UserID, req.Name, req.Description)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusCreated, map[string]interface{}{
		"message": "new story added",
		"id":      story.ID,
	})
}

func (h *StoryHandler) List(w http.ResponseWriter, r *http.Request) {
	sessionID, err := parseSessionID(r)
	if err != nil {
		respond.Error(w, err)
		return
	}

	stories, err := h.storyService.ListStories(r.Context(), sessionID)
	if err != nil {
		respond.Error(w, err)
		return
	}

	rows := make([]StoryRow, 0, len(stories))
	for _, story := range stories {
		rows = append(rows, StoryRow{
			ID:          story.ID,
			Name:        story.Name,
			Description: story.Description,
		})
	}
	respond.JSON(w, http.StatusOK, map[string]interface{}{
		"message": "stories fetched",
		"stories": rows,
	})
}

func (h *StoryHandler) Edit(w http.ResponseWriter, r *http.Request) {
	sessionID, err := parseSessionID(r)
	if err != nil {
		respond.Error(w, err)
		return
	}
	storyID, err := parseUintParam(r, "storyId")
	if err != nil {
		respond.Error(w, err)
		return
	}

	var req EditStoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, domain.NewError(http.StatusBadRequest, "Invalid request body"))
		return
	}
	if err := checkRequest(req); err != nil {
		respond.Error(w, err)
		return
	}

	if _, err := h.storyService.EditStory(r.Context(), sessionID, storyID, req.Name, req.Description); err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, map[string]string{"message": "story edited"})
}

func (h *StoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	sessionID, err := parseSessionID(r)
	if err != nil {
		respond.Error(w, err)
		return
	}
	storyID, err := parseUintParam(r, "storyId")
	if err != nil {
		respond.Error(w, err)
		return
	}

	if err := h.storyService.DeleteStory(r.Context(), sessionID, storyID); err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, map[string]string{"message": "story deleted"})
}
