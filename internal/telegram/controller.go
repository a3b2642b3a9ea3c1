package telegram

import (
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/An1ketGupta/TradeAni-Bot/internal/config"
	"github.com/An1ketGupta/TradeAni-Bot/internal/helpers"
	"github.com/An1ketGupta/TradeAni-Bot/internal/telemetry"
)

func (c *Controller) Start(ctx context.Context) error {
	c.runCtx = ctx

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 30
	updates := c.Bot.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			return nil
		case update := <-updates:
			switch {
			case update.Message != nil:
				c.routeMessage(update.Message)
			case update.CallbackQuery != nil:
				c.routeCallback(update.CallbackQuery)
			}
		}
	}
}

func (c *Controller) routeMessage(m *tgbotapi.Message) {
	chatID := m.Chat.ID
	// allow only configured chat
	if c.allowedChatID != 0 && chatID != c.allowedChatID {
		return
	}
	userID := m.From.ID
	text := strings.TrimSpace(m.Text)

	switch {
	case strings.HasPrefix(text, "/start"):
		c.dispatch(userID, chatID, func() { c.handleStart(chatID, userID) })
	case strings.HasPrefix(text, "/help"), strings.HasPrefix(text, "/commands"):
		c.reply(chatID,
			"*Available Commands:*\n\n"+
				"▶️ *Trading*\n"+
				"/start – Create your wallet and show the main menu\n"+
				"Paste a token mint address to open its buy view\n\n"+
				"ℹ️ *Info*\n"+
				"/status – Show current state\n"+
				"/show_config – Show non-secret config\n"+
				"/debug on|off – enable/disable debug logs\n"+
				"/trace on|off – enable/disable very noisy logs\n"+
				"/tail [n] – show last n log lines (default 50)\n"+
				"/whoami – Show your Telegram chat ID\n"+
				"/set_chat <id> – restrict bot to a specific chat ID\n")
	case strings.HasPrefix(text, "/status"):
		c.reply(chatID, fmt.Sprintf(
			"State: *running*\nRPC: `%s`\nAggregator: `%s`\nSlippage: `%d bps`",
			c.Cfg.RPC_URL, c.Cfg.JUPITER_BASE_URL, c.Cfg.SLIPPAGE_BPS,
		))
	case strings.HasPrefix(text, "/show_config"):
		apiKey := "not set"
		if c.Cfg.JUPITER_API_KEY != "" {
			apiKey = "set"
		}
		c.reply(chatID, fmt.Sprintf(
			"*Configuration:*\n\n"+
				"*RPC:* `%s`\n"+
				"*Aggregator:* `%s`\n"+
				"*Screener:* `%s`\n"+
				"*API Key:* %s\n"+
				"*Slippage:* `%d bps`\n"+
				"*Chat ID:* `%d`",
			c.Cfg.RPC_URL,
			c.Cfg.JUPITER_BASE_URL,
			c.Cfg.DEXSCREENER_BASE_URL,
			apiKey,
			c.Cfg.SLIPPAGE_BPS,
			c.Cfg.TELEGRAM_CHAT_ID,
		))
	case strings.HasPrefix(text, "/debug "):
		arg := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(text, "/debug")))
		on := arg == "on" || arg == "1" || arg == "true"
		telemetry.EnableDebug(on)
		c.reply(chatID, fmt.Sprintf("✅ debug: %v", on))
	case strings.HasPrefix(text, "/trace "):
		arg := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(text, "/trace")))
		on := arg == "on" || arg == "1" || arg == "true"
		telemetry.EnableTrace(on)
		c.reply(chatID, fmt.Sprintf("✅ trace: %v", on))
	case strings.HasPrefix(text, "/tail"):
		n := 50
		parts := strings.Fields(text)
		if len(parts) > 1 {
			fmt.Sscan(parts[1], &n)
			if n <= 0 {
				n = 50
			}
			if n > 500 {
				n = 500
			} // avoid flooding telegram
		}
		lines := telemetry.Tail(n)
		if len(lines) == 0 {
			c.reply(chatID, "ℹ️ log buffer empty")
			break
		}
		// Telegram messages max ~4096 chars; chunk if needed
		var buf strings.Builder
		for _, ln := range lines {
			if buf.Len()+len(ln)+1 > 3500 { // conservative
				c.reply(chatID, "```\n"+buf.String()+"\n```")
				buf.Reset()
			}
			buf.WriteString(ln)
			buf.WriteByte('\n')
		}
		if buf.Len() > 0 {
			c.reply(chatID, "```\n"+buf.String()+"\n```")
		}
	case strings.HasPrefix(text, "/whoami"):
		c.reply(chatID, fmt.Sprintf("Your chat ID: `%d`", chatID))
	case strings.HasPrefix(text, "/set_chat "):
		arg := strings.TrimSpace(strings.TrimPrefix(text, "/set_chat"))
		var id int64
		fmt.Sscan(arg, &id)
		if id == 0 {
			c.reply(chatID, "❌ Provide a valid numeric chat ID")
			return
		}
		c.Cfg.TELEGRAM_CHAT_ID = id
		c.allowedChatID = id
		_ = config.Save(c.Path, c.Cfg)
		c.reply(chatID, fmt.Sprintf("✅ Allowed chat set to %d", id))
	case helpers.IsMintAddress(text):
		// A pasted mint always opens the buy view, whatever step the user
		// was in before.
		c.dispatch(userID, chatID, func() { c.handleMint(chatID, userID, text) })
	case helpers.IsDecimalAmount(text):
		// Classified on the user's queue, not here: the step may still be
		// changed by a handler ahead of this one.
		c.dispatch(userID, chatID, func() { c.handleAmountText(chatID, userID, text) })
	default:
		// ignore non-commands to reduce noise
	}
}

func (c *Controller) routeCallback(cq *tgbotapi.CallbackQuery) {
	if cq.Message == nil {
		return
	}
	chatID := cq.Message.Chat.ID
	if c.allowedChatID != 0 && chatID != c.allowedChatID {
		return
	}
	userID := cq.From.ID
	msgID := cq.Message.MessageID
	data := cq.Data

	// Ack immediately so the button stops spinning even if the action is slow.
	_, _ = c.Bot.Request(tgbotapi.NewCallback(cq.ID, ""))

	switch data {
	case cbClose:
		_, _ = c.Bot.Request(tgbotapi.NewDeleteMessage(chatID, msgID))
	case cbBuy:
		c.reply(chatID, "📝 Paste the token mint address you want to buy.")
	case cbSell:
		c.dispatch(userID, chatID, func() { c.handlePortfolio(chatID, userID) })
	case cbFund:
		c.dispatch(userID, chatID, func() { c.handleFund(chatID, userID) })
	case cbWallet:
		c.dispatch(userID, chatID, func() { c.handleWallet(chatID, userID) })
	case cbRefresh:
		c.dispatch(userID, chatID, func() { c.handleRefreshBuy(chatID, userID) })
	case cbRefreshSell:
		c.dispatch(userID, chatID, func() { c.handleRefreshSell(chatID, userID) })
	case cbSlippage:
		c.reply(chatID, fmt.Sprintf("Slippage tolerance: *%d bps*", c.Cfg.SLIPPAGE_BPS))
	case cbBuyTenth:
		c.dispatch(userID, chatID, func() { c.executeBuy(chatID, userID, "0.1") })
	case cbBuyHalf:
		c.dispatch(userID, chatID, func() { c.executeBuy(chatID, userID, "0.5") })
	case cbBuyOne:
		c.dispatch(userID, chatID, func() { c.executeBuy(chatID, userID, "1.0") })
	case cbBuyX:
		c.dispatch(userID, chatID, func() { c.promptBuyAmount(chatID, userID) })
	case cbSell25:
		c.dispatch(userID, chatID, func() { c.executeSellPercent(chatID, userID, 0.25) })
	case cbSell50:
		c.dispatch(userID, chatID, func() { c.executeSellPercent(chatID, userID, 0.50) })
	case cbSell100:
		c.dispatch(userID, chatID, func() { c.executeSellPercent(chatID, userID, 1.0) })
	case cbSellX:
		c.dispatch(userID, chatID, func() { c.promptSellAmount(chatID, userID) })
	default:
		if mint, ok := strings.CutPrefix(data, cbSellMintPrefix); ok {
			c.dispatch(userID, chatID, func() { c.handleSellMint(chatID, userID, mint) })
		}
	}
}
