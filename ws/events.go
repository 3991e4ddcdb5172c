package ws

import (
	"log"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// Event is pushed to a user's open connections: cart changes, order status
// updates. This is the in-app channel; push notifications are separate.
type Event struct {
	Type string `json:"type"`
	Data any    `json:"data,omitempty"`
}

// EventHub fans events out to every connection a user has open.
type EventHub struct {
	clients    map[uint]map[*websocket.Conn]bool // userID -> set of connections
	broadcast  chan userEvent
	register   chan subscription
	unregister chan subscription
	mu         sync.Mutex
}

type subscription struct {
	Conn   *websocket.Conn
	UserID uint
}

type userEvent struct {
	UserID uint
	Event  Event
}

func NewEventHub() *EventHub {
	return &EventHub{
		clients:    make(map[uint]map[*websocket.Conn]bool),
		broadcast:  make(chan userEvent, 64),
		register:   make(chan subscription),
		unregister: make(chan subscription),
	}
}

func (h *EventHub) Run() {
	for {
		select {
		case sub := <-h.register:
			h.mu.Lock()
			if h.clients[sub.UserID] == nil {
				h.clients[sub.UserID] = make(map[*websocket.Conn]bool)
			}
			h.clients[sub.UserID][sub.Conn] = true
			h.mu.Unlock()

		case sub := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[sub.UserID][sub.Conn]; ok {
				delete(h.clients[sub.UserID], sub.Conn)
				sub.Conn.Close()
			}
			h.mu.Unlock()

		case msg := <-h.broadcast:
			h.mu.Lock()
			for conn := range h.clients[msg.UserID] {
				if err := conn.WriteJSON(msg.Event); err != nil {
					log.Printf("ws write error: %v", err)
					conn.Close()
					delete(h.clients[msg.UserID], conn)
				}
			}
			h.mu.Unlock()
		}
	}
}

// Publish never blocks the caller; if the hub's buffer is full the event is
// dropped (it is a UI hint, not a durable message).
func (h *EventHub) Publish(userID uint, event Event) {
	select {
	case h.broadcast <- userEvent{UserID: userID, Event: event}:
	default:
		log.Printf("ws hub full, dropping %s event for user %d", event.Type, userID)
	}
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// WS route: /ws/events (behind auth middleware)
func (h *EventHub) HandleWebSocket(c *gin.Context) {
	userIDVal, ok := c.Get("userId")
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	userID, _ := userIDVal.(uint)
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("ws upgrade error: %v", err)
		return
	}

	sub := subscription{Conn: conn, UserID: userID}
	h.register <- sub

	go h.drain(sub)
}

// drain keeps reading until the client goes away; clients do not send
// anything meaningful on this channel.
func (h *EventHub) drain(sub subscription) {
	defer func() { h.unregister <- sub }()
	for {
		if _, _, err := sub.Conn.ReadMessage(); err != nil {
			break
		}
	}
}
