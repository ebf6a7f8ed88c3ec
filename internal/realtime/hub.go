// Package realtime fans chat events out to Server-Sent Events subscribers. A room is keyed by
// course ID. Delivery is fire-and-forget: slow clients lose messages instead of blocking senders.
package realtime

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/golang/glog"
	"github.com/google/uuid"
)

type Event string

const (
	EventChatMessage Event = "ChatMessage"

	clientBuffer      = 16
	heartbeatInterval = 15 * time.Second
)

type Message struct {
	Room  string      `json:"room"`
	Event Event       `json:"event"`
	Data  interface{} `json:"data,omitempty"`
}

type Client struct {
	ID       string
	GuestID  string
	Room     string
	Outbound chan Message
	done     chan struct{}
}

type Hub struct {
	mu    sync.RWMutex
	rooms map[string]map[*Client]bool
}

func NewHub() *Hub {
	return &Hub{rooms: make(map[string]map[*Client]bool)}
}

// Join subscribes a new client for guestID to room.
func (hub *Hub) Join(room string, guestID string) *Client {
	client := &Client{
		ID:       uuid.New().String(),
		GuestID:  guestID,
		Room:     strings.TrimSpace(room),
		Outbound: make(chan Message, clientBuffer),
		done:     make(chan struct{}),
	}

	hub.mu.Lock()
	defer hub.mu.Unlock()

	clients, ok := hub.rooms[client.Room]
	if !ok {
		clients = make(map[*Client]bool)
		hub.rooms[client.Room] = clients
	}
	clients[client] = true

	glog.V(1).Infof("realtime client %s (%s) joined room %s", client.ID, guestID, client.Room)
	return client
}

// Leave unsubscribes the client and closes its outbound channel.
func (hub *Hub) Leave(client *Client) {
	hub.mu.Lock()
	defer hub.mu.Unlock()

	clients, ok := hub.rooms[client.Room]
	if !ok || !clients[client] {
		return
	}
	delete(clients, client)
	if len(clients) == 0 {
		delete(hub.rooms, client.Room)
	}

	close(client.done)
	close(client.Outbound)
}

// RoomSize returns the number of clients subscribed to room.
func (hub *Hub) RoomSize(room string) int {
	hub.mu.RLock()
	defer hub.mu.RUnlock()
	return len(hub.rooms[room])
}

// Broadcast delivers msg to every client in msg.Room without blocking.
func (hub *Hub) Broadcast(msg Message) {
	hub.mu.RLock()
	defer hub.mu.RUnlock()

	for c := range hub.rooms[msg.Room] {
		select {
		case c.Outbound <- msg:
		default:
			glog.Warningf("dropping realtime message for client %s; outbound buffer full", c.ID)
		}
	}
}

// Serve streams the client's messages to w until the request ends, then removes the client.
func (hub *Hub) Serve(w http.ResponseWriter, r *http.Request, client *Client) {
	defer hub.Leave(client)

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	heartbeat := time.NewTicker(heartbeatInterval)
	defer heartbeat.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case <-client.done:
			return
		case <-heartbeat.C:
			fmt.Fprint(w, ": ping\n\n")
			flusher.Flush()
		case msg, ok := <-client.Outbound:
			if !ok {
				return
			}
			data, err := json.Marshal(msg)
			if err != nil {
				glog.Warningf("failed to marshal realtime message: %v", err)
				continue
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", msg.Event, data)
			flusher.Flush()
		}
	}
}
