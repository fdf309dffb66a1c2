package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/checkin-bot/internal/domain/chat"
	"github.com/cmlabs-hris/checkin-bot/internal/domain/location"
	"github.com/cmlabs-hris/checkin-bot/internal/handler/http/response"
	"github.com/cmlabs-hris/checkin-bot/internal/pkg/messages"
)

// WebhookHandler is the inbound side of chat platforms that push events over HTTP.
type WebhookHandler interface {
	Message(w http.ResponseWriter, r *http.Request)
	Location(w http.ResponseWriter, r *http.Request)
}

type webhookHandlerImpl struct {
	dispatcher      chat.Dispatcher
	locationService location.LocationService
	catalog         *messages.Catalog
}

func NewWebhookHandler(dispatcher chat.Dispatcher, locationService location.LocationService, catalog *messages.Catalog) WebhookHandler {
	return &webhookHandlerImpl{
		dispatcher:      dispatcher,
		locationService: locationService,
		catalog:         catalog,
	}
}

// Message implements WebhookHandler.
func (h *webhookHandlerImpl) Message(w http.ResponseWriter, r *http.Request) {
	var req chat.MessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Failed to decode message request", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	reply := h.dispatcher.HandleMessage(r.Context(), req.ToEvent())

	response.Success(w, chat.MessageResponse{
		Outcome: reply.Outcome,
		Params:  reply.Params,
		Reply:   h.catalog.Render(reply),
	})
}

// Location implements WebhookHandler.
func (h *webhookHandlerImpl) Location(w http.ResponseWriter, r *http.Request) {
	var req location.RecordLocationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Failed to decode location request", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	sample, err := h.locationService.RecordLocation(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Location recorded", sample)
}
