package socket

import (
	"encoding/json"
	"sync"

	"stickyboard/pkg/logger"
)

const (
	InsertType = "INSERT" // A row was created
	UpdateType = "UPDATE" // A row was modified
	DeleteType = "DELETE" // A row was removed

	TableNotes = "notes"
)

// Event is a single change-feed notification. INSERT and UPDATE carry the
// full row as payload; DELETE carries only {"id": ...}.
type Event struct {
	Type    string          `json:"type"`
	Table   string          `json:"table"`
	Payload json.RawMessage `json:"payload"`
}

// NewEvent builds an Event from any JSON-marshalable payload.
func NewEvent(eventType, table string, payload any) Event {
	raw, err := json.Marshal(payload)
	if err != nil {
		logger.Sugar.Errorf("Error marshalling %s event payload: %v", eventType, err)
		raw = []byte("null")
	}
	return Event{Type: eventType, Table: table, Payload: raw}
}

// Hub fans change events out to every client subscribed to a table.
// Unlike a chat room there is no sender exclusion: the writer receives the
// echo of its own change and relies on it to render new rows.
type Hub struct {
	Channels   map[string]map[*Client]bool // table -> subscribers
	Broadcast  chan Event
	Register   chan *Client
	Unregister chan *Client
	mu         sync.Mutex
}

func NewHub() *Hub {
	return &Hub{
		Channels:   make(map[string]map[*Client]bool),
		Broadcast:  make(chan Event),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
	}
}

// ClientCount reports how many clients are subscribed to a table.
func (h *Hub) ClientCount(table string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.Channels[table])
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			h.mu.Lock()
			if h.Channels[client.Table] == nil {
				h.Channels[client.Table] = make(map[*Client]bool)
			}
			h.Channels[client.Table][client] = true
			h.mu.Unlock()
			logger.Sugar.Infof("Client %s subscribed to table %s", client.UserID, client.Table)

		case client := <-h.Unregister:
			h.mu.Lock()
			if _, ok := h.Channels[client.Table][client]; ok {
				delete(h.Channels[client.Table], client)
				close(client.Send)
				if len(h.Channels[client.Table]) == 0 {
					delete(h.Channels, client.Table)
				}
			}
			h.mu.Unlock()

		case event := <-h.Broadcast:
			payload, err := json.Marshal(event)
			if err != nil {
				logger.Sugar.Errorf("Error marshalling broadcast event: %v", err)
				continue
			}

			// Copy the subscriber list so the lock is not held during I/O.
			h.mu.Lock()
			clientsToSend := make([]*Client, 0, len(h.Channels[event.Table]))
			for client := range h.Channels[event.Table] {
				clientsToSend = append(clientsToSend, client)
			}
			h.mu.Unlock()

			for _, client := range clientsToSend {
				select {
				case client.Send <- payload:
				default:
					// Send buffer full means the client is lagging.
					// Evict it inline; sending to Unregister here would
					// block the loop on its own channel.
					logger.Sugar.Warnf("Client %s's send buffer is full. Evicting.", client.UserID)
					h.mu.Lock()
					if _, ok := h.Channels[client.Table][client]; ok {
						delete(h.Channels[client.Table], client)
						close(client.Send)
						if len(h.Channels[client.Table]) == 0 {
							delete(h.Channels, client.Table)
						}
					}
					h.mu.Unlock()
				}
			}
		}
	}
}
