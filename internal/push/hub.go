// Package push fans state-change events out to every connected real-time
// client, best-effort.
package push

import (
	"encoding/json"
	"log/slog"
	"sync"
)

// subscriberBuffer bounds how far one slow reader can fall behind before it
// starts losing messages.
const subscriberBuffer = 16

// Subscriber is one connected client's view of the broadcast stream.
type Subscriber struct {
	ch chan []byte
}

// Messages yields serialized frames. The channel is closed on Unsubscribe.
func (s *Subscriber) Messages() <-chan []byte {
	return s.ch
}

// Hub delivers every broadcast to all current subscribers. Delivery is
// fire-and-forget: a full or closed subscriber never blocks the producer or
// affects other subscribers.
type Hub struct {
	mu   sync.Mutex
	subs map[*Subscriber]struct{}
}

func NewHub() *Hub {
	return &Hub{subs: make(map[*Subscriber]struct{})}
}

func (h *Hub) Subscribe() *Subscriber {
	sub := &Subscriber{ch: make(chan []byte, subscriberBuffer)}

	h.mu.Lock()
	h.subs[sub] = struct{}{}
	h.mu.Unlock()

	return sub
}

// Unsubscribe removes the subscriber and closes its channel. Safe to call
// concurrently with Broadcast and idempotent.
func (h *Hub) Unsubscribe(sub *Subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.subs[sub]; !ok {
		return
	}
	delete(h.subs, sub)
	close(sub.ch)
}

// Broadcast serializes the event once and hands it to every subscriber. A
// subscriber whose buffer is full misses this message.
func (h *Hub) Broadcast(event any) {
	data, err := json.Marshal(event)
	if err != nil {
		slog.Error("dropping unserializable broadcast", "error", err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	for sub := range h.subs {
		select {
		case sub.ch <- data:
		default:
		}
	}
}

// SubscriberCount reports how many clients are currently connected.
func (h *Hub) SubscriberCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}
