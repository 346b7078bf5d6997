package push

import (
	"bytes"
	"encoding/json"
	"testing"
)

type frame struct {
	Type  string `json:"type"`
	Count int    `json:"count"`
}

func TestBroadcastWithoutSubscribers(t *testing.T) {
	h := NewHub()

	// Must be a silent no-op.
	h.Broadcast(frame{Type: "vision_analysis"})

	if h.SubscriberCount() != 0 {
		t.Errorf("subscriber count = %d, want 0", h.SubscriberCount())
	}
}

func TestBroadcastReachesAllSubscribers(t *testing.T) {
	h := NewHub()

	subs := []*Subscriber{h.Subscribe(), h.Subscribe(), h.Subscribe()}

	h.Broadcast(frame{Type: "audio_analysis", Count: 7})

	want, _ := json.Marshal(frame{Type: "audio_analysis", Count: 7})
	for i, sub := range subs {
		select {
		case got := <-sub.Messages():
			if !bytes.Equal(got, want) {
				t.Errorf("subscriber %d got %s, want %s", i, got, want)
			}
		default:
			t.Errorf("subscriber %d received nothing", i)
		}
	}
}

func TestUnsubscribedClientDoesNotAffectOthers(t *testing.T) {
	h := NewHub()

	gone := h.Subscribe()
	stays := h.Subscribe()

	h.Unsubscribe(gone)
	h.Broadcast(frame{Type: "navigation_updated"})

	select {
	case _, ok := <-gone.Messages():
		if ok {
			t.Error("unsubscribed client received a message")
		}
	default:
		t.Error("unsubscribed client's channel should be closed")
	}

	select {
	case <-stays.Messages():
	default:
		t.Error("remaining subscriber missed the broadcast")
	}
}

func TestUnsubscribeIsIdempotent(t *testing.T) {
	h := NewHub()

	sub := h.Subscribe()
	h.Unsubscribe(sub)
	h.Unsubscribe(sub)

	if h.SubscriberCount() != 0 {
		t.Errorf("subscriber count = %d, want 0", h.SubscriberCount())
	}
}

func TestSlowSubscriberDropsInsteadOfBlocking(t *testing.T) {
	h := NewHub()

	slow := h.Subscribe()
	fresh := h.Subscribe()

	// Overrun the slow subscriber's buffer without draining it. Broadcast
	// must never block.
	for i := 0; i < subscriberBuffer+10; i++ {
		h.Broadcast(frame{Type: "vision_analysis", Count: i})
	}

	if got := len(slow.ch); got != subscriberBuffer {
		t.Errorf("slow subscriber buffered %d frames, want %d", got, subscriberBuffer)
	}
	if got := len(fresh.ch); got != subscriberBuffer {
		t.Errorf("second subscriber buffered %d frames, want %d", got, subscriberBuffer)
	}

	// The buffered frames are the earliest ones; overflow was dropped.
	first := <-slow.Messages()
	var decoded frame
	if err := json.Unmarshal(first, &decoded); err != nil {
		t.Fatal(err)
	}
	if decoded.Count != 0 {
		t.Errorf("first buffered frame = %d, want 0", decoded.Count)
	}
}

func TestConcurrentBroadcastAndUnsubscribe(t *testing.T) {
	h := NewHub()

	var subs []*Subscriber
	for i := 0; i < 8; i++ {
		subs = append(subs, h.Subscribe())
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 100; i++ {
			h.Broadcast(frame{Type: "navigation_updated", Count: i})
		}
	}()

	for _, sub := range subs {
		h.Unsubscribe(sub)
	}
	<-done

	if h.SubscriberCount() != 0 {
		t.Errorf("subscriber count = %d, want 0", h.SubscriberCount())
	}
}

func TestBroadcastSkipsUnserializableEvent(t *testing.T) {
	h := NewHub()
	sub := h.Subscribe()

	h.Broadcast(make(chan int)) // not serializable

	select {
	case <-sub.Messages():
		t.Error("subscriber received a frame for an unserializable event")
	default:
	}
}
