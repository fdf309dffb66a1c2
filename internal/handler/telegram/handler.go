// Package telegram adapts Telegram updates to the chat dispatcher and location ingest.
package telegram

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"time"

	"github.com/cmlabs-hris/checkin-bot/internal/domain/chat"
	"github.com/cmlabs-hris/checkin-bot/internal/domain/location"
	"github.com/cmlabs-hris/checkin-bot/internal/pkg/messages"
	"github.com/cmlabs-hris/checkin-bot/internal/pkg/validator"
	"gopkg.in/telebot.v3"
)

const handleTimeout = 30 * time.Second

// ExternalID namespaces Telegram user ids so they never collide with other platforms.
func ExternalID(u *telebot.User) string {
	return "tg:" + strconv.FormatInt(u.ID, 10)
}

type Handler struct {
	dispatcher      chat.Dispatcher
	locationService location.LocationService
	catalog         *messages.Catalog
}

func NewHandler(dispatcher chat.Dispatcher, locationService location.LocationService, catalog *messages.Catalog) *Handler {
	return &Handler{
		dispatcher:      dispatcher,
		locationService: locationService,
		catalog:         catalog,
	}
}

// OnText feeds a text message to the dispatcher and sends back the rendered reply.
func (h *Handler) OnText(c telebot.Context) error {
	if c.Sender() == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), handleTimeout)
	defer cancel()

	reply := h.dispatcher.HandleMessage(ctx, chat.Event{
		ExternalID: ExternalID(c.Sender()),
		Text:       c.Text(),
	})
	return c.Send(h.catalog.Render(reply))
}

// OnLocation stores a shared location as the sender's latest sample.
func (h *Handler) OnLocation(c telebot.Context) error {
	msg := c.Message()
	if c.Sender() == nil || msg == nil || msg.Location == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), handleTimeout)
	defer cancel()

	lat := float64(msg.Location.Lat)
	lng := float64(msg.Location.Lng)
	req := location.RecordLocationRequest{
		ExternalID: ExternalID(c.Sender()),
		Latitude:   &lat,
		Longitude:  &lng,
	}
	if msg.Unixtime > 0 {
		ts := msg.Unixtime
		req.Timestamp = &ts
	}

	outcome := chat.OutcomeLocationRecorded
	var validationErrs validator.ValidationErrors
	_, err := h.locationService.RecordLocation(ctx, req)
	switch {
	case err == nil:
	case errors.Is(err, location.ErrUnknownIdentity):
		outcome = chat.OutcomeUnknownIdentity
	case errors.As(err, &validationErrs):
		outcome = chat.OutcomeInvalidLocation
	default:
		slog.Error("failed to record telegram location", "external_id", req.ExternalID, "error", err)
		outcome = chat.OutcomeInternalError
	}
	return c.Send(h.catalog.Render(chat.NewReply(outcome)))
}
