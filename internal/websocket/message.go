package websocket

import (
	"encoding/json"
	"time"
)

type Event string

const (
	// Client to Server
	EventRoom  Event = "room"
	EventStory Event = "story"

	// Server to Client
	EventSession Event = "session"
	EventError   Event = "error"
)

const (
	ActionJoin   = "join"
	ActionLeave  = "leave"
	ActionAdd    = "add"
	ActionEdit   = "edit"
	ActionDelete = "delete"
	ActionVote   = "vote"
)

type Message struct {
	Event     Event           `json:"event"`
	Payload   json.RawMessage `json:"payload"`
	Timestamp int64           `json:"timestamp"`
}

func NewMessage(event Event, payload interface{}) (*Message, error) {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return &Message{
		Event:     event,
		Payload:   payloadBytes,
		Timestamp: time.Now().UnixMilli(),
	}, nil
}

// Client to Server payloads

type RoomPayload struct {
	Action   string `json:"action"`
	ID       string `json:"id"`
	Username string `json:"username,omitempty"`
	Role     string `json:"role,omitempty"`
}

type VotePayload struct {
	Action    string `json:"action"`
	StoryID   uint   `json:"storyId"`
	SessionID string `json:"sessionId"`
	UserID    uint   `json:"userId,omitempty"`
	Points    *int   `json:"points,omitempty"`
}

// Server to Client payloads

type SessionEventPayload struct {
	Action   string `json:"action"`
	Username string `json:"username"`
	Role     string `json:"role,omitempty"`
}

type StoryEventPayload struct {
	Action      string `json:"action"`
	ID          uint   `json:"id"`
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
}

type ErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
