package telegram

import (
	"fmt"
	"log/slog"
	"time"

	"gopkg.in/telebot.v3"
	"gopkg.in/telebot.v3/middleware"
)

type Config struct {
	Token       string
	PollTimeout time.Duration
}

// Bot long-polls Telegram and routes updates to a Handler.
type Bot struct {
	bot *telebot.Bot
}

func NewBot(cfg Config, h *Handler) (*Bot, error) {
	pref := telebot.Settings{
		Token:   cfg.Token,
		Poller:  &telebot.LongPoller{Timeout: cfg.PollTimeout},
		OnError: onError,
	}

	b, err := telebot.NewBot(pref)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}

	b.Use(middleware.Recover(func(err error) {
		slog.Error("telegram handler panic", "error", err)
	}))
	b.Handle(telebot.OnText, h.OnText)
	b.Handle(telebot.OnLocation, h.OnLocation)

	return &Bot{bot: b}, nil
}

func onError(err error, c telebot.Context) {
	if c != nil && c.Sender() != nil {
		slog.Error("telegram update failed", "external_id", ExternalID(c.Sender()), "error", err)
		return
	}
	slog.Error("telegram bot error", "error", err)
}

// Start blocks until Stop is called.
func (b *Bot) Start() {
	slog.Info("telegram bot started", "username", b.bot.Me.Username)
	b.bot.Start()
}

func (b *Bot) Stop() {
	b.bot.Stop()
	slog.Info("telegram bot stopped")
}
