package http

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/cmlabs-hris/checkin-bot/internal/handler/http/response"
	"github.com/cmlabs-hris/checkin-bot/internal/pkg/sse"
)

type FeedHandler interface {
	// Stream handles GET /admin/attendance/stream
	Stream(w http.ResponseWriter, r *http.Request)
}

type feedHandlerImpl struct {
	hub       *sse.Hub
	keepalive time.Duration
}

func NewFeedHandler(hub *sse.Hub) FeedHandler {
	return &feedHandlerImpl{
		hub:       hub,
		keepalive: 30 * time.Second,
	}
}

// Stream implements FeedHandler.
func (h *feedHandlerImpl) Stream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		response.InternalServerError(w, "Streaming not supported")
		return
	}

	// Set SSE headers
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	employeeID := r.URL.Query().Get("employee_id")
	events, cleanup := h.hub.Subscribe(employeeID)
	defer cleanup()

	fmt.Fprint(w, "event: connected\ndata: {\"status\":\"connected\"}\n\n")
	flusher.Flush()

	keepalive := time.NewTicker(h.keepalive)
	defer keepalive.Stop()

	for {
		select {
		case event, ok := <-events:
			if !ok {
				return
			}
			data, err := json.Marshal(event.Data)
			if err != nil {
				slog.Error("failed to encode feed event", "event", event.Name, "error", err)
				continue
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Name, data)
			flusher.Flush()

		case <-keepalive.C:
			fmt.Fprintf(w, "event: ping\ndata: {\"timestamp\":%d}\n\n", time.Now().Unix())
			flusher.Flush()

		case <-r.Context().Done():
			return
		}
	}
}
