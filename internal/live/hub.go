// Package live pushes gift-list changes to open public pages over
// websockets. Clients subscribe to a username; mutations on that user's list
// broadcast an event so viewers refresh without polling.
package live

import (
	"encoding/json"
	"sync"

	"github.com/sirupsen/logrus"
)

// Event is the JSON payload broadcast to subscribers of a username.
type Event struct {
	Type     string `json:"type"`
	Username string `json:"username"`
}

const EventGiftsUpdated = "gifts_updated"

type Hub struct {
	topics     map[string]map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan Event
	stop       chan struct{}
	done       chan struct{} // closed when Run() exits
	stopped    bool
	mu         sync.Mutex
	log        *logrus.Logger
}

func NewHub(log *logrus.Logger) *Hub {
	return &Hub{
		topics:     make(map[string]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan Event, 16),
		stop:       make(chan struct{}),
		done:       make(chan struct{}),
		log:        log,
	}
}

func (h *Hub) Run() {
	defer close(h.done)

	for {
		select {
		case <-h.stop:
			h.mu.Lock()
			h.stopped = true
			for _, clients := range h.topics {
				for client := range clients {
					client.Close()
				}
			}
			h.topics = make(map[string]map[*Client]bool)
			h.mu.Unlock()
			return

		case client := <-h.register:
			h.mu.Lock()
			if !h.stopped {
				if h.topics[client.username] == nil {
					h.topics[client.username] = make(map[*Client]bool)
				}
				h.topics[client.username][client] = true
			}
			h.mu.Unlock()

		case client := <-h.unregister:
			h.mu.Lock()
			if clients, ok := h.topics[client.username]; ok {
				if _, registered := clients[client]; registered {
					delete(clients, client)
					client.Close()
					if len(clients) == 0 {
						delete(h.topics, client.username)
					}
				}
			}
			h.mu.Unlock()

		case event := <-h.broadcast:
			h.deliver(event)
		}
	}
}

// Stop gracefully shuts down the hub and disconnects all clients. It blocks
// until Run() has exited.
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

// GiftsUpdated notifies subscribers that a user's list changed. Safe to call
// from any goroutine; drops the event if the hub is saturated rather than
// blocking a request handler.
func (h *Hub) GiftsUpdated(username string) {
	event := Event{Type: EventGiftsUpdated, Username: username}
	select {
	case h.broadcast <- event:
	default:
		h.log.WithField("username", username).Warn("live event dropped, hub saturated")
	}
}

func (h *Hub) deliver(event Event) {
	data, err := json.Marshal(event)
	if err != nil {
		h.log.WithError(err).Error("failed to marshal live event")
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	for client := range h.topics[event.Username] {
		select {
		case client.send <- data:
		default:
			// Slow consumer; disconnect instead of backing up the hub
			delete(h.topics[event.Username], client)
			client.Close()
		}
	}
}
