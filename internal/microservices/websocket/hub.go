package websocket

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// GroupName is the hub group a user's connections join
func GroupName(userID string) string {
	return "user_" + userID
}

// Hub tracks live clients by group. A user may hold several connections
// (tabs, devices) and every one of them receives each push.
type Hub struct {
	mu     sync.RWMutex
	groups map[string]map[*Client]struct{}
	closed bool
	logger *slog.Logger
}

func NewHub(logger *slog.Logger) *Hub {
	if logger == nil {
		logger = slog.Default()
	}
	return &Hub{
		groups: make(map[string]map[*Client]struct{}),
		logger: logger,
	}
}

// Join adds the client to its user's group. It returns false once the hub is closed.
func (h *Hub) Join(c *Client) bool {
	group := GroupName(c.UserID)

	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return false
	}
	members, ok := h.groups[group]
	if !ok {
		members = make(map[*Client]struct{})
		h.groups[group] = members
	}
	members[c] = struct{}{}

	h.logger.Info("client_added", "group", group, "client_id", c.ID, "connections", len(members))
	return true
}

// Leave removes the client; empty groups are dropped
func (h *Hub) Leave(c *Client) {
	group := GroupName(c.UserID)

	h.mu.Lock()
	defer h.mu.Unlock()

	members, ok := h.groups[group]
	if !ok {
		return
	}
	if _, present := members[c]; !present {
		return
	}
	delete(members, c)
	if len(members) == 0 {
		delete(h.groups, group)
	}

	h.logger.Info("client_removed", "group", group, "client_id", c.ID)
}

// ConnectionCount returns the number of live connections for userID
func (h *Hub) ConnectionCount(userID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.groups[GroupName(userID)])
}

// Push implements service.Pusher for a single user
func (h *Hub) Push(ctx context.Context, userID, event string, payload any) error {
	return h.PushMany(ctx, []string{userID}, event, payload)
}

// PushMany encodes the frame once and hands it to every connection of every user
func (h *Hub) PushMany(_ context.Context, userIDs []string, event string, payload any) error {
	if len(userIDs) == 0 {
		return nil
	}
	frame, err := EncodeFrame(event, payload, time.Now())
	if err != nil {
		return err
	}
	h.Deliver(userIDs, frame)
	return nil
}

// Deliver sends an encoded frame to the users' connections and returns how
// many connections accepted it. Full client buffers drop the frame.
func (h *Hub) Deliver(userIDs []string, frame []byte) int {
	targets := h.snapshot(userIDs)

	delivered := 0
	for _, c := range targets {
		if c.trySend(frame) {
			delivered++
			continue
		}
		h.logger.Warn("client_send_dropped", "client_id", c.ID, "user_id", c.UserID)
	}
	return delivered
}

// snapshot copies the target clients under the read lock so sends happen unlocked
func (h *Hub) snapshot(userIDs []string) []*Client {
	h.mu.RLock()
	defer h.mu.RUnlock()

	seen := make(map[string]struct{}, len(userIDs))
	var targets []*Client
	for _, userID := range userIDs {
		if _, dup := seen[userID]; dup {
			continue
		}
		seen[userID] = struct{}{}
		for c := range h.groups[GroupName(userID)] {
			targets = append(targets, c)
		}
	}
	return targets
}

// Close disconnects every client and rejects further joins
func (h *Hub) Close() {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return
	}
	h.closed = true
	var all []*Client
	for _, members := range h.groups {
		for c := range members {
			all = append(all, c)
		}
	}
	h.groups = make(map[string]map[*Client]struct{})
	h.mu.Unlock()

	for _, c := range all {
		c.Close()
	}
	h.logger.Info("hub_closed", "clients", len(all))
}
