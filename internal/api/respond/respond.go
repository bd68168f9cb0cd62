// Package respond is the single place an error becomes an HTTP response.
// Domain failures carry their own status and optional field messages;
// anything else collapses to a generic 500 with no internal detail leaked.
package respond

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/Aayush1011/poker-planning-backend/internal/domain"
)

func JSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("ERROR [respond.JSON] failed to encode response: %v", err)
	}
}

type errorBody struct {
	Message string            `json:"message"`
	Data    map[string]string `json:"data,omitempty"`
}

func Error(w http.ResponseWriter, err error) {
	if appErr, ok := domain.AsError(err); ok {
		JSON(w, appErr.Status, errorBody{Message: appErr.Message, Data: appErr.Fields})
		return
	}
	log.Printf("ERROR [respond.Error] unexpected error: %v", err)
	JSON(w, http.StatusInternalServerError, errorBody{Message: "Sorry an error occurred"})
}
