// file: internal/realtime/events.go
// version: 2.0.0
// guid: 9e8d7f6a-5c4b-3a21-0f9e-8d7c6b5a4392

package realtime

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	ulid "github.com/oklog/ulid/v2"

	"github.com/jdfalk/catalog-search/internal/models"
)

// EventType defines the type of real-time event
type EventType string

const (
	EventConnected           EventType = "connection.established"
	EventCatalogReloaded     EventType = "catalog.reloaded"
	EventCatalogReloadFailed EventType = "catalog.reload_failed"
	EventHeartbeat           EventType = "heartbeat"
)

// Event represents a real-time event to send to clients
type Event struct {
	Type      EventType      `json:"type"`
	Timestamp time.Time      `json:"timestamp"`
	Data      map[string]any `json:"data,omitempty"`
}

// Client represents a connected SSE client. A client with no subscribed
// types receives every event.
type Client struct {
	ID      string
	Channel chan *Event
	types   map[EventType]bool
	mu      sync.RWMutex
}

// NewClient creates a new SSE client
func NewClient(id string) *Client {
	return &Client{
		ID:      id,
		Channel: make(chan *Event, 32),
		types:   make(map[EventType]bool),
	}
}

// Subscribe limits the client to the given event type (cumulative).
func (c *Client) Subscribe(t EventType) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.types[t] = true
}

// Wants reports whether the client should receive events of type t.
func (c *Client) Wants(t EventType) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.types) == 0 || c.types[t]
}

// EventHub manages SSE connections and event distribution
type EventHub struct {
	mu      sync.RWMutex
	clients map[string]*Client
}

// NewEventHub creates a new event hub
func NewEventHub() *EventHub {
	return &EventHub{
		clients: make(map[string]*Client),
	}
}

// RegisterClient registers a new client
func (h *EventHub) RegisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[client.ID] = client
	log.Printf("[DEBUG] realtime: client %s registered, total clients: %d", client.ID, len(h.clients))
}

// UnregisterClient removes a client and closes its channel.
func (h *EventHub) UnregisterClient(clientID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if client, exists := h.clients[clientID]; exists {
		close(client.Channel)
		delete(h.clients, clientID)
		log.Printf("[DEBUG] realtime: client %s unregistered, remaining clients: %d", clientID, len(h.clients))
	}
}

// Broadcast sends an event to every interested client. Slow clients drop
// events rather than block the sender.
func (h *EventHub) Broadcast(event *Event) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	count := 0
	for _, client := range h.clients {
		if !client.Wants(event.Type) {
			continue
		}
		select {
		case client.Channel <- event:
			count++
		default:
			log.Printf("[WARN] realtime: client %s channel full, dropping %s", client.ID, event.Type)
		}
	}
	return count
}

// CatalogReloaded announces a new catalog snapshot.
func (h *EventHub) CatalogReloaded(cat *models.Catalog) {
	stats := cat.Stats()
	h.Broadcast(&Event{
		Type:      EventCatalogReloaded,
		Timestamp: time.Now(),
		Data: map[string]any{
			"parts":     stats.Parts,
			"colors":    stats.Colors,
			"fuses":     stats.Fuses,
			"source":    stats.Source,
			"loaded_at": stats.LoadedAt,
		},
	})
}

// CatalogReloadFailed announces a reload that kept the previous snapshot.
func (h *EventHub) CatalogReloadFailed(err error) {
	h.Broadcast(&Event{
		Type:      EventCatalogReloadFailed,
		Timestamp: time.Now(),
		Data:      map[string]any{"error": err.Error()},
	})
}

// GetClientCount returns the number of connected clients
func (h *EventHub) GetClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// HeartbeatInterval is how often idle SSE connections receive a heartbeat.
var HeartbeatInterval = 15 * time.Second

// HandleSSE handles Server-Sent Events connection. Repeated ?type= query
// parameters restrict which event types the client receives.
func (h *EventHub) HandleSSE(c *gin.Context) {
	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache, no-transform")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	// The server's WriteTimeout would otherwise cut the stream.
	if err := http.NewResponseController(c.Writer).SetWriteDeadline(time.Time{}); err != nil {
		log.Printf("[DEBUG] realtime: cannot clear write deadline: %v", err)
	}

	clientID := ulid.Make().String()
	client := NewClient(clientID)
	for _, t := range c.QueryArray("type") {
		client.Subscribe(EventType(t))
	}

	h.RegisterClient(client)
	defer h.UnregisterClient(clientID)

	if !writeEvent(c, &Event{
		Type:      EventConnected,
		Timestamp: time.Now(),
		Data:      map[string]any{"client_id": clientID},
	}) {
		return
	}

	ticker := time.NewTicker(HeartbeatInterval)
	defer ticker.Stop()

	for {
		select {
		case <-c.Request.Context().Done():
			return
		case event := <-client.Channel:
			if !writeEvent(c, event) {
				return
			}
		case <-ticker.C:
			if !writeEvent(c, &Event{Type: EventHeartbeat, Timestamp: time.Now()}) {
				return
			}
		}
	}
}

// writeEvent writes one SSE frame: data: {json}\n\n
func writeEvent(c *gin.Context, event *Event) bool {
	data, err := json.Marshal(event)
	if err != nil {
		log.Printf("[ERROR] realtime: marshaling %s event: %v", event.Type, err)
		return true
	}
	if _, err := fmt.Fprintf(c.Writer, "data: %s\n\n", data); err != nil {
		log.Printf("[WARN] realtime: write failed: %v", err)
		return false
	}
	c.Writer.Flush()
	return true
}
