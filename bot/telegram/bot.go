// Package telegram adapts Telegram updates to dialogue events and relays the
// replies back. Everything Telegram-specific stays inside this package.
package telegram

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	tele "gopkg.in/telebot.v4"

	contractx "github.com/avelichko/shkolabot/bot/contract"
	"github.com/avelichko/shkolabot/bot/dialog"
)

const msgInternal = "⚠️ Что-то пошло не так. Попробуйте ещё раз."

type Config struct {
	Token         string        `split_words:"true" required:"true"`
	PollTimeout   time.Duration `split_words:"true" default:"10s"`
	HandleTimeout time.Duration `split_words:"true" default:"30s"`
}

// menu is the visible command list registered with Telegram at startup.
var menu = []tele.Command{
	{Text: "start", Description: "Начать работу с ботом"},
	{Text: "students", Description: "Посмотреть список учеников"},
	{Text: "delete", Description: "Удалить ученика по ID"},
	{Text: "breed", Description: "Узнать о породе кошек"},
	{Text: "space", Description: "Космическая картинка дня"},
}

type Bot struct {
	bot           *tele.Bot
	router        *dialog.Router
	handleTimeout time.Duration
}

func New(cfg Config, router *dialog.Router) (*Bot, error) {
	if router == nil {
		return nil, errors.New("router is required")
	}
	token := strings.TrimSpace(cfg.Token)
	if token == "" {
		return nil, errors.New("bot token is required")
	}

	pollTimeout := cfg.PollTimeout
	if pollTimeout <= 0 {
		pollTimeout = 10 * time.Second
	}
	handleTimeout := cfg.HandleTimeout
	if handleTimeout <= 0 {
		handleTimeout = 30 * time.Second
	}

	b, err := tele.NewBot(tele.Settings{
		Token:  token,
		Poller: &tele.LongPoller{Timeout: pollTimeout},
	})
	if err != nil {
		return nil, err
	}

	bot := &Bot{
		bot:           b,
		router:        router,
		handleTimeout: handleTimeout,
	}
	bot.registerHandlers()

	return bot, nil
}

func (b *Bot) registerHandlers() {
	for _, command := range []string{
		dialog.CmdStart,
		dialog.CmdBreed,
		dialog.CmdStudents,
		dialog.CmdDelete,
		dialog.CmdSpace,
	} {
		b.bot.Handle(command, b.commandHandler(command))
	}
	b.bot.Handle(tele.OnText, b.textHandler)
}

func (b *Bot) commandHandler(command string) tele.HandlerFunc {
	return func(c tele.Context) error {
		return b.dispatch(c, contractx.Event{
			UserID:  c.Sender().ID,
			Kind:    contractx.KindCommand,
			Command: command,
			Payload: c.Message().Payload,
		})
	}
}

func (b *Bot) textHandler(c tele.Context) error {
	return b.dispatch(c, contractx.Event{
		UserID:  c.Sender().ID,
		Kind:    contractx.KindText,
		Payload: c.Text(),
	})
}

func (b *Bot) dispatch(c tele.Context, ev contractx.Event) error {
	ctx, cancel := context.WithTimeout(context.Background(), b.handleTimeout)
	defer cancel()

	reply, err := b.router.Dispatch(ctx, ev)
	if err != nil {
		// Routing bugs and storage faults land here; the user gets a
		// generic notice, the details go to the log.
		log.Error().Err(err).
			Int64("user_id", ev.UserID).
			Str("kind", string(ev.Kind)).
			Str("command", ev.Command).
			Msg("dispatch failed")
		return c.Send(msgInternal)
	}
	return c.Send(reply.Text)
}

// RegisterCommands publishes the command menu, as the reference bot did with
// set_my_commands.
func (b *Bot) RegisterCommands() error {
	return b.bot.SetCommands(menu)
}

// Start begins long polling and blocks until Stop is called.
func (b *Bot) Start() {
	b.bot.Start()
}

func (b *Bot) Stop() {
	b.bot.Stop()
}
