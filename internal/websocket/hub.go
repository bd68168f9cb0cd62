package websocket

import (
	"context"
	"log"
	"sync"

	"github.com/Aayush1011/poker-planning-backend/internal/domain"
	"github.com/Aayush1011/poker-planning-backend/internal/repository"
	"github.com/google/uuid"
)

// Hub owns room membership for the realtime channel. Rooms are keyed by
// session id; membership mutates under the hub lock, so concurrent
// join/leave from independent connections is safe. Broadcasts push onto
// each client's buffered send channel, which preserves per-connection
// delivery order.
type Hub struct {
	rooms      map[string]map[*Client]bool
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	stop       chan struct{}
	done       chan struct{} // closed when Run() exits
	stopped    bool

	// voteGlobal reproduces the legacy behavior of fanning votes out to
	// every connected socket instead of the originating room.
	voteGlobal bool
	points     repository.StoryPointRepository
	mu         sync.RWMutex
}

func NewHub(points repository.StoryPointRepository, voteGlobal bool) *Hub {
	return &Hub{
		rooms:      make(map[string]map[*Client]bool),
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		stop:       make(chan struct{}),
		done:       make(chan struct{}),
		voteGlobal: voteGlobal,
		points:     points,
	}
}

func (h *Hub) Run() {
	defer close(h.done)

	for {
		select {
		case <-h.stop:
			h.mu.Lock()
			h.stopped = true
			for client := range h.clients {
				client.Close()
			}
			h.clients = make(map[*Client]bool)
			h.rooms = make(map[string]map[*Client]bool)
			h.mu.Unlock()
			return

		case client := <-h.register:
			h.mu.Lock()
			if !h.stopped {
				h.clients[client] = true
			}
			h.mu.Unlock()

		case client := <-h.unregister:
			h.mu.Lock()
			if !h.stopped {
				if _, ok := h.clients[client]; ok {
					delete(h.clients, client)
					h.removeFromRoomLocked(client)
					client.Close()
				}
			}
			h.mu.Unlock()
		}
	}
}

// Stop shuts down the hub and closes every client channel. It blocks until
// Run() has exited.
func (h *Hub) Stop() {
	h.mu.Lock()
	if h.stopped {
		h.mu.Unlock()
		return
	}
	h.mu.Unlock()

	close(h.stop)
	<-h.done
}

func (h *Hub) Register(client *Client) {
	h.register <- client
}

// Unregister safely unregisters a client, handling the case where the hub
// may already be stopped.
func (h *Hub) Unregister(client *Client) {
	h.mu.RLock()
	stopped := h.stopped
	h.mu.RUnlock()
	if stopped {
		return
	}

	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

// JoinRoom adds the client to the session's room and notifies every other
// current member. The joining socket does not receive its own join event.
func (h *Hub) JoinRoom(client *Client, sessionID, username, role string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.stopped {
		return
	}

	h.removeFromRoomLocked(client)

	room, ok := h.rooms[sessionID]
	if !ok {
		room = make(map[*Client]bool)
		h.rooms[sessionID] = room
	}
	room[client] = true
	client.sessionID = sessionID
	client.username = username
	client.role = role

	msg, err := NewMessage(EventSession, SessionEventPayload{
		Action:   ActionJoin,
		Username: username,
		Role:     role,
	})
	if err != nil {
		log.Printf("ERROR [websocket.JoinRoom] failed to build join event: %v", err)
		return
	}
	for member := range room {
		if member != client {
			member.Send(msg)
		}
	}
}

// LeaveRoom removes the client from its room and tells the remaining
// members who left.
func (h *Hub) LeaveRoom(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.stopped {
		return
	}

	sessionID := client.sessionID
	username := client.username
	h.removeFromRoomLocked(client)

	room, ok := h.rooms[sessionID]
	if !ok {
		return
	}
	msg, err := NewMessage(EventSession, SessionEventPayload{
		Action:   ActionLeave,
		Username: username,
	})
	if err != nil {
		log.Printf("ERROR [websocket.LeaveRoom] failed to build leave event: %v", err)
		return
	}
	for member := range room {
		member.Send(msg)
	}
}

// EmitToRoom fans an event out to every current member of the session's
// room, including the actor's own connections. Delivery is best-effort;
// the store commit that preceded the call is authoritative.
func (h *Hub) EmitToRoom(sessionID string, event string, payload interface{}) {
	msg, err := NewMessage(Event(event), payload)
	if err != nil {
		log.Printf("ERROR [websocket.EmitToRoom] failed to marshal %s event: %v", event, err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for member := range h.rooms[sessionID] {
		member.Send(msg)
	}
}

// HandleVote persists the estimate when the payload carries one, then
// rebroadcasts the vote notification.
func (h *Hub) HandleVote(ctx context.Context, payload VotePayload) {
	if payload.Points != nil && payload.UserID != 0 && h.points != nil {
		sessionID, err := uuid.Parse(payload.SessionID)
		if err != nil {
			log.Printf("ERROR [websocket.HandleVote] invalid session id %q: %v", payload.SessionID, err)
			return
		}
		point := &domain.StoryPoint{
			SessionID: sessionID,
			StoryID:   payload.StoryID,
			UserID:    payload.UserID,
			Points:    *payload.Points,
		}
		if err := h.points.Upsert(ctx, point); err != nil {
			log.Printf("ERROR [websocket.HandleVote] failed to persist story point: %v", err)
			return
		}
	}

	msg, err := NewMessage(EventStory, StoryEventPayload{
		Action: ActionVote,
		ID:     payload.StoryID,
	})
	if err != nil {
		log.Printf("ERROR [websocket.HandleVote] failed to build vote event: %v", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.voteGlobal {
		for client := range h.clients {
			client.Send(msg)
		}
		return
	}
	for member := range h.rooms[payload.SessionID] {
		member.Send(msg)
	}
}

// RoomSize reports current membership of a session's room.
func (h *Hub) RoomSize(sessionID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[sessionID])
}

func (h *Hub) removeFromRoomLocked(client *Client) {
	if client.sessionID == "" {
		return
	}
	if room, ok := h.rooms[client.sessionID]; ok {
		delete(room, client)
		if len(room) == 0 {
			delete(h.rooms, client.sessionID)
		}
	}
	client.sessionID = ""
}
