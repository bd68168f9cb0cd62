package testutil

import (
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/Aayush1011/poker-planning-backend/internal/websocket"
	gorillaWS "github.com/gorilla/websocket"
)

// WSClient is a test WebSocket client
type WSClient struct {
	t        *testing.T
	conn     *gorillaWS.Conn
	messages chan *websocket.Message
	errors   chan error
	done     chan struct{}
	mu       sync.Mutex
}

// NewWSClient creates a new WebSocket test client
func NewWSClient(t *testing.T, url string) *WSClient {
	t.Helper()

	dialer := gorillaWS.DefaultDialer
	dialer.HandshakeTimeout = 5 * time.Second

	conn, _, err := dialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("failed to connect to websocket: %v", err)
	}

	client := &WSClient{
		t:        t,
		conn:     conn,
		messages: make(chan *websocket.Message, 100),
		errors:   make(chan error, 10),
		done:     make(chan struct{}),
	}

	go client.readPump()

	t.Cleanup(func() {
		client.Close()
	})

	return client
}

func (c *WSClient) readPump() {
	defer close(c.messages)
	for {
		select {
		case <-c.done:
			return
		default:
			_, data, err := c.conn.ReadMessage()
			if err != nil {
				select {
				case <-c.done:
					return
				case c.errors <- err:
				}
				return
			}

			var msg websocket.Message
			if err := json.Unmarshal(data, &msg); err != nil {
				c.errors <- err
				continue
			}

			select {
			case c.messages <- &msg:
			case <-c.done:
				return
			}
		}
	}
}

// Close closes the WebSocket connection gracefully
func (c *WSClient) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	select {
	case <-c.done:
		return
	default:
		close(c.done)
		c.conn.WriteMessage(gorillaWS.CloseMessage, gorillaWS.FormatCloseMessage(gorillaWS.CloseNormalClosure, ""))
		c.conn.Close()
	}
}

func (c *WSClient) send(event websocket.Event, payload interface{}) {
	c.t.Helper()

	msg, err := websocket.NewMessage(event, payload)
	if err != nil {
		c.t.Fatalf("failed to build message: %v", err)
	}
	data, err := json.Marshal(msg)
	if err != nil {
		c.t.Fatalf("failed to marshal message: %v", err)
	}
	if err := c.conn.WriteMessage(gorillaWS.TextMessage, data); err != nil {
		c.t.Fatalf("failed to send message: %v", err)
	}
}

// JoinRoom sends a room:join event for the given session
func (c *WSClient) JoinRoom(sessionID, username, role string) {
	c.send(websocket.EventRoom, websocket.RoomPayload{
		Action:   websocket.ActionJoin,
		ID:       sessionID,
		Username: username,
		Role:     role,
	})
}

// LeaveRoom sends a room:leave event
func (c *WSClient) LeaveRoom(sessionID string) {
	c.send(websocket.EventRoom, websocket.RoomPayload{
		Action: websocket.ActionLeave,
		ID:     sessionID,
	})
}

// Vote sends a story:vote event
func (c *WSClient) Vote(payload websocket.VotePayload) {
	payload.Action = websocket.ActionVote
	c.send(websocket.EventStory, payload)
}

// NextMessage waits for the next server-sent message
func (c *WSClient) NextMessage(timeout time.Duration) (*websocket.Message, bool) {
	c.t.Helper()

	select {
	case msg, ok := <-c.messages:
		if !ok {
			return nil, false
		}
		return msg, true
	case err := <-c.errors:
		c.t.Fatalf("websocket read error: %v", err)
		return nil, false
	case <-time.After(timeout):
		return nil, false
	}
}

// ExpectNoMessage asserts that nothing arrives within the window
func (c *WSClient) ExpectNoMessage(window time.Duration) {
	c.t.Helper()

	if msg, ok := c.NextMessage(window); ok {
		c.t.Fatalf("expected no message, got %s: %s", msg.Event, string(msg.Payload))
	}
}
