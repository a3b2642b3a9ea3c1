// Package telegram is the conversational surface: it owns the bot connection,
// routes updates into per-user handler queues, and renders replies.
package telegram

import (
	"context"
	"fmt"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/An1ketGupta/TradeAni-Bot/internal/chain"
	"github.com/An1ketGupta/TradeAni-Bot/internal/config"
	"github.com/An1ketGupta/TradeAni-Bot/internal/executor"
	"github.com/An1ketGupta/TradeAni-Bot/internal/jupiter"
	"github.com/An1ketGupta/TradeAni-Bot/internal/portfolio"
	"github.com/An1ketGupta/TradeAni-Bot/internal/session"
	"github.com/An1ketGupta/TradeAni-Bot/internal/telemetry"
	"github.com/An1ketGupta/TradeAni-Bot/internal/wallet"
)

type Controller struct {
	Bot  *tgbotapi.BotAPI
	Cfg  *config.Config
	Path string

	allowedChatID int64

	registry *wallet.Registry
	sessions *session.Manager
	chain    *chain.Client
	jup      *jupiter.Client
	exec     *executor.Executor
	lister   *portfolio.Lister

	// One worker per user so a user's actions run in arrival order without
	// one user's slow swap stalling everyone else.
	queueMu sync.Mutex
	queues  map[int64]chan func()

	runCtx context.Context
}

type Deps struct {
	Registry *wallet.Registry
	Sessions *session.Manager
	Chain    *chain.Client
	Jupiter  *jupiter.Client
	Executor *executor.Executor
	Lister   *portfolio.Lister
}

func NewController(cfg *config.Config, path string, deps Deps) (*Controller, error) {
	if cfg.TELEGRAM_TOKEN == "" {
		return nil, fmt.Errorf("TELEGRAM_TOKEN is empty")
	}
	bot, err := tgbotapi.NewBotAPI(cfg.TELEGRAM_TOKEN)
	if err != nil {
		return nil, fmt.Errorf("telegram init: %w", err)
	}
	return &Controller{
		Bot:           bot,
		Cfg:           cfg,
		Path:          path,
		allowedChatID: cfg.TELEGRAM_CHAT_ID,
		registry:      deps.Registry,
		sessions:      deps.Sessions,
		chain:         deps.Chain,
		jup:           deps.Jupiter,
		exec:          deps.Executor,
		lister:        deps.Lister,
		queues:        make(map[int64]chan func()),
	}, nil
}

func (c *Controller) reply(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = "Markdown"
	_, _ = c.Bot.Send(msg)
}

func (c *Controller) replyKeyboard(chatID int64, text string, kb tgbotapi.InlineKeyboardMarkup) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = "Markdown"
	msg.ReplyMarkup = kb
	_, _ = c.Bot.Send(msg)
}

// dispatch enqueues fn on the user's serial queue, spawning the worker on
// first use. A full queue drops the action with a notice rather than
// blocking the update loop.
func (c *Controller) dispatch(userID, chatID int64, fn func()) {
	c.queueMu.Lock()
	q, ok := c.queues[userID]
	if !ok {
		q = make(chan func(), 32)
		c.queues[userID] = q
		go c.worker(userID, q)
	}
	c.queueMu.Unlock()

	select {
	case q <- fn:
	default:
		telemetry.Warnf("[telegram] queue full for user %d, dropping action", userID)
		c.reply(chatID, "⏳ Too many pending actions. Try again in a moment.")
	}
}

func (c *Controller) worker(userID int64, q chan func()) {
	for {
		select {
		case <-c.runCtx.Done():
			return
		case fn := <-q:
			fn()
		}
	}
}
