package services

import (
	"context"
	"sync"
	"time"

	"coursetrack-backend-go/internal/models"

	"go.uber.org/zap"
)

// Subscriber is a live connection receiving a user's progress records as JSON.
// *websocket.Conn satisfies it.
type Subscriber interface {
	WriteJSON(v interface{}) error
	SetWriteDeadline(t time.Time) error
	Close() error
}

const subscriberWriteTimeout = 5 * time.Second

// ProgressHub fans stored progress records out to the owning user's subscribers.
// Only Run writes to subscribers.
type ProgressHub struct {
	mu      sync.RWMutex
	clients map[string]map[Subscriber]struct{}
	ch      chan models.ProgressRecord
	logger  *zap.Logger
}

func NewProgressHub(logger *zap.Logger) *ProgressHub {
	return &ProgressHub{
		clients: map[string]map[Subscriber]struct{}{},
		ch:      make(chan models.ProgressRecord, 64),
		logger:  logger,
	}
}

func (h *ProgressHub) Run(ctx context.Context) {
	for {
		select {
		case record := <-h.ch:
			h.deliver(record)
		case <-ctx.Done():
			h.closeAll()
			return
		}
	}
}

// Publish never blocks; records are dropped when the hub is saturated.
func (h *ProgressHub) Publish(record models.ProgressRecord) {
	select {
	case h.ch <- record:
	default:
		h.logger.Warn("progress hub saturated, dropping update", zap.String("user_id", record.UserID))
	}
}

func (h *ProgressHub) Add(userID string, sub Subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()
	subs, ok := h.clients[userID]
	if !ok {
		subs = map[Subscriber]struct{}{}
		h.clients[userID] = subs
	}
	subs[sub] = struct{}{}
}

func (h *ProgressHub) Remove(userID string, sub Subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()
	subs, ok := h.clients[userID]
	if !ok {
		return
	}
	delete(subs, sub)
	if len(subs) == 0 {
		delete(h.clients, userID)
	}
}

func (h *ProgressHub) Subscribers(userID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[userID])
}

func (h *ProgressHub) deliver(record models.ProgressRecord) {
	h.mu.RLock()
	targets := make([]Subscriber, 0, len(h.clients[record.UserID]))
	for sub := range h.clients[record.UserID] {
		targets = append(targets, sub)
	}
	h.mu.RUnlock()

	payload := NewProgressEvent(record)
	for _, sub := range targets {
		_ = sub.SetWriteDeadline(time.Now().Add(subscriberWriteTimeout))
		if err := sub.WriteJSON(payload); err != nil {
			h.logger.Debug("dropping progress subscriber", zap.String("user_id", record.UserID), zap.Error(err))
			h.Remove(record.UserID, sub)
			_ = sub.Close()
		}
	}
}

func (h *ProgressHub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for userID, subs := range h.clients {
		for sub := range subs {
			_ = sub.Close()
		}
		delete(h.clients, userID)
	}
}

// ProgressEvent is the JSON pushed to subscribers; it mirrors the progress API shape.
type ProgressEvent struct {
	Type            string    `json:"type"`
	ID              string    `json:"id"`
	UserID          string    `json:"user_id"`
	CourseID        string    `json:"course_id"`
	VideoID         string    `json:"video_id"`
	WatchedDuration int       `json:"watched_duration"`
	Completed       bool      `json:"completed"`
	LastWatched     time.Time `json:"last_watched"`
}

func NewProgressEvent(record models.ProgressRecord) ProgressEvent {
	return ProgressEvent{
		Type:            "progress",
		ID:              record.ID,
		UserID:          record.UserID,
		CourseID:        record.CourseID,
		VideoID:         record.VideoID,
		WatchedDuration: record.WatchedDuration,
		Completed:       record.Completed,
		LastWatched:     record.LastWatched.UTC(),
	}
}
