// Package realtime pushes booking changes to connected browsers over
// websockets so dashboards refresh without polling.
package realtime

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"expertbook/internal/model"
)

const (
	BookingCreated = "BOOKING_CREATED"
	BookingUpdated = "BOOKING_UPDATED"
	BookingDeleted = "BOOKING_DELETED"
)

const sendBuffer = 64

// Event is the JSON frame written to clients.
type Event struct {
	Type    string        `json:"type"`
	Booking model.Booking `json:"booking"`
}

// Publisher fans events out to the connections of the given users.
type Publisher interface {
	Publish(ev Event, userIDs ...string)
}

type delivery struct {
	payload []byte
	userIDs []string
}

type onlineQuery struct {
	userID string
	reply  chan int
}

// Hub owns the client registry. Only the Run goroutine touches clients.
type Hub struct {
	clients    map[string]map[*Client]struct{}
	register   chan *Client
	unregister chan *Client
	broadcast  chan delivery
	online     chan onlineQuery
	done       chan struct{}
	log        *zap.Logger
}

var _ Publisher = (*Hub)(nil)

func NewHub(log *zap.Logger) *Hub {
	return &Hub{
		clients:    make(map[string]map[*Client]struct{}),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan delivery, 256),
		online:     make(chan onlineQuery),
		done:       make(chan struct{}),
		log:        log,
	}
}

// Run processes registrations and deliveries until ctx is done, then closes
// every client.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			for _, set := range h.clients {
				for c := range set {
					close(c.send)
				}
			}
			h.clients = make(map[string]map[*Client]struct{})
			return

		case c := <-h.register:
			set, ok := h.clients[c.userID]
			if !ok {
				set = make(map[*Client]struct{})
				h.clients[c.userID] = set
			}
			set[c] = struct{}{}
			h.log.Debug("ws client registered", zap.String("user_id", c.userID), zap.Int("connections", len(set)))

		case c := <-h.unregister:
			h.remove(c)

		case d := <-h.broadcast:
			for _, uid := range d.userIDs {
				for c := range h.clients[uid] {
					select {
					case c.send <- d.payload:
					default:
						h.log.Warn("ws send buffer full, dropping client", zap.String("user_id", uid))
						h.remove(c)
					}
				}
			}

		case q := <-h.online:
			q.reply <- len(h.clients[q.userID])
		}
	}
}

func (h *Hub) remove(c *Client) {
	set, ok := h.clients[c.userID]
	if !ok {
		return
	}
	if _, ok := set[c]; !ok {
		return
	}
	delete(set, c)
	close(c.send)
	if len(set) == 0 {
		delete(h.clients, c.userID)
	}
}

// Publish never blocks the caller; events are dropped when the hub is backed up.
func (h *Hub) Publish(ev Event, userIDs ...string) {
	ids := dedupe(userIDs)
	if len(ids) == 0 {
		return
	}
	payload, err := json.Marshal(ev)
	if err != nil {
		h.log.Error("marshal ws event", zap.Error(err))
		return
	}
	select {
	case h.broadcast <- delivery{payload: payload, userIDs: ids}:
	default:
		h.log.Warn("ws broadcast queue full, event dropped", zap.String("type", ev.Type))
	}
}

// connections returns the number of live connections for userID.
func (h *Hub) connections(ctx context.Context, userID string) int {
	q := onlineQuery{userID: userID, reply: make(chan int, 1)}
	select {
	case h.online <- q:
	case <-ctx.Done():
		return 0
	case <-h.done:
		return 0
	}
	return <-q.reply
}

func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
