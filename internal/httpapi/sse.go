package httpapi

import (
	"net/http"

	"github.com/jmalm/sightline/internal/push"
)

// StreamEvents subscribes the connection to the broadcast hub and relays
// every frame as a server-sent event until the client goes away.
func StreamEvents(hub *push.Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Connection", "keep-alive")

		flusher, ok := w.(http.Flusher)
		if !ok {
			http.Error(w, "streaming unsupported", http.StatusInternalServerError)
			return
		}

		sub := hub.Subscribe()
		defer hub.Unsubscribe(sub)

		w.WriteHeader(http.StatusOK)
		flusher.Flush()

		for {
			select {
			case data, ok := <-sub.Messages():
				if !ok {
					return
				}

				w.Write([]byte("data: "))
				w.Write(data)
				w.Write([]byte("\n\n"))

				flusher.Flush()

			case <-r.Context().Done():
				return
			}
		}
	}
}
