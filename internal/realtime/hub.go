package realtime

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Event types pushed to gallery owners.
const (
	EventSelectionSubmitted = "selection.submitted"
	EventPhotosUploaded     = "photos.uploaded"
)

// Event is the JSON frame written to subscribers.
type Event struct {
	Type      string                 `json:"type"`
	GalleryID string                 `json:"gallery_id"`
	Payload   map[string]interface{} `json:"payload,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

// Hub fans gallery events out to the websocket clients watching that gallery.
type Hub struct {
	mu         sync.RWMutex
	clients    map[string]map[*Client]struct{}
	broadcast  chan *Event
	register   chan *Client
	unregister chan *Client
	done       chan struct{}
	logger     *zap.Logger
}

func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		clients:    make(map[string]map[*Client]struct{}),
		broadcast:  make(chan *Event, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		logger:     logger,
	}
}

// Run processes registrations and broadcasts until ctx is cancelled. All
// client send channels are closed on return. Run must be called once.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			h.mu.Lock()
			for galleryID, clients := range h.clients {
				for client := range clients {
					close(client.send)
				}
				delete(h.clients, galleryID)
			}
			h.mu.Unlock()
			return

		case client := <-h.register:
			h.mu.Lock()
			if h.clients[client.galleryID] == nil {
				h.clients[client.galleryID] = make(map[*Client]struct{})
			}
			h.clients[client.galleryID][client] = struct{}{}
			h.mu.Unlock()

		case client := <-h.unregister:
			h.mu.Lock()
			h.remove(client)
			h.mu.Unlock()

		case event := <-h.broadcast:
			frame, err := json.Marshal(event)
			if err != nil {
				h.logger.Error("failed to marshal event", zap.Error(err), zap.String("type", event.Type))
				continue
			}

			h.mu.Lock()
			for client := range h.clients[event.GalleryID] {
				select {
				case client.send <- frame:
				default:
					// Slow consumer; drop it rather than stall the hub.
					h.remove(client)
				}
			}
			h.mu.Unlock()
		}
	}
}

// remove must be called with mu held.
func (h *Hub) remove(client *Client) {
	clients, ok := h.clients[client.galleryID]
	if !ok {
		return
	}
	if _, ok := clients[client]; !ok {
		return
	}
	delete(clients, client)
	close(client.send)
	if len(clients) == 0 {
		delete(h.clients, client.galleryID)
	}
}

// Publish queues an event for the gallery's subscribers. It never blocks;
// events are dropped when the hub is saturated.
func (h *Hub) Publish(galleryID uuid.UUID, eventType string, payload map[string]interface{}) {
	event := &Event{
		Type:      eventType,
		GalleryID: galleryID.String(),
		Payload:   payload,
		Timestamp: time.Now().UTC(),
	}
	select {
	case h.broadcast <- event:
	default:
		h.logger.Warn("realtime queue full, dropping event",
			zap.String("type", eventType),
			zap.String("gallery_id", event.GalleryID))
	}
}

// Subscribers reports how many clients watch a gallery.
func (h *Hub) Subscribers(galleryID uuid.UUID) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[galleryID.String()])
}

func SelectionSubmittedPayload(clientName, clientEmail string, count int) map[string]interface{} {
	return map[string]interface{}{
		"client_name":  clientName,
		"client_email": clientEmail,
		"count":        count,
	}
}

func PhotosUploadedPayload(uploaded, failed int) map[string]interface{} {
	return map[string]interface{}{
		"uploaded": uploaded,
		"failed":   failed,
	}
}
