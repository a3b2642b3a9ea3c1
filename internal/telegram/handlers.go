package telegram

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gagliardetto/solana-go"

	"github.com/An1ketGupta/TradeAni-Bot/internal/helpers"
	"github.com/An1ketGupta/TradeAni-Bot/internal/jupiter"
	"github.com/An1ketGupta/TradeAni-Bot/internal/quantity"
	"github.com/An1ketGupta/TradeAni-Bot/internal/session"
	"github.com/An1ketGupta/TradeAni-Bot/internal/telemetry"
	"github.com/An1ketGupta/TradeAni-Bot/internal/trade"
)

// opTimeout bounds a single user action end to end, swap submission included.
const opTimeout = 90 * time.Second

func (c *Controller) opCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.runCtx, opTimeout)
}

// fail logs the real cause and shows the user the short taxonomy message.
// Every failure path ends the conversational step.
func (c *Controller) fail(chatID, userID int64, op string, err error) {
	telemetry.Errorf("[telegram] %s user=%d: %v", op, userID, err)
	c.reply(chatID, "❌ "+trade.UserMessage(err))
	c.sessions.Reset(userID)
}

// Session state is only ever touched from the user's serial queue, so the
// prompt transitions and the step-dependent classification below are queued
// handlers like every trade action. An inline mutation on the poll goroutine
// would race with whatever handler is mid-flight for the same user.

func (c *Controller) promptBuyAmount(chatID, userID int64) {
	c.sessions.AwaitBuyAmount(userID)
	c.reply(chatID, "📝 Enter the SOL amount to spend (e.g. 0.25):")
}

func (c *Controller) promptSellAmount(chatID, userID int64) {
	c.sessions.AwaitSellAmount(userID)
	c.reply(chatID, "📝 Enter the token amount to sell (e.g. 1500):")
}

// handleAmountText interprets a bare decimal by the step current when the
// queue reaches it, not the step at arrival. Outside a prompt it is chatter.
func (c *Controller) handleAmountText(chatID, userID int64, text string) {
	switch c.sessions.Step(userID) {
	case session.StepAwaitBuyAmount:
		c.executeBuy(chatID, userID, text)
	case session.StepAwaitSellAmount:
		c.executeSellAmount(chatID, userID, text)
	}
}

func (c *Controller) handleStart(chatID, userID int64) {
	w := c.registry.Ensure(userID)
	addr := w.PublicKey()

	ctx, cancel := c.opCtx()
	defer cancel()
	lamports, err := c.chain.Balance(ctx, addr)
	if err != nil {
		telemetry.Warnf("[telegram] start balance user=%d: %v", userID, err)
	}

	c.sessions.Reset(userID)
	c.replyKeyboard(chatID, fmt.Sprintf(
		"👋 *Welcome to TradeAni!*\n\n"+
			"Your wallet:\n`%s`\n\n"+
			"💰 Balance: *%s SOL*\n\n"+
			"Paste a token mint address to start buying, or use the buttons below.",
		addr, helpers.FormatSol(lamports)),
		startKeyboard())
}

func tokenCard(info *jupiter.TokenInfo, mint string) string {
	if info == nil {
		return fmt.Sprintf("🔎 *Unknown token*\n`%s`\n\nNo aggregator listing found. Trade with caution.", mint)
	}
	return fmt.Sprintf(
		"🔎 *%s* (%s)\n`%s`\n\n"+
			"💵 Price: *$%s*\n"+
			"📊 Market Cap: *$%s*",
		info.Name, info.Symbol, mint,
		helpers.FormatUSD(info.UsdPrice), helpers.FormatUSD(info.MCap))
}

// handleMint opens the buy view for a pasted mint address.
func (c *Controller) handleMint(chatID, userID int64, text string) {
	w, ok := c.registry.Get(userID)
	if !ok {
		c.fail(chatID, userID, "mint paste", trade.ErrNoWallet)
		return
	}
	mint, err := helpers.ParseMint(text)
	if err != nil {
		c.fail(chatID, userID, "parse mint", fmt.Errorf("%w: %v", trade.ErrLookupFailed, err))
		return
	}

	ctx, cancel := c.opCtx()
	defer cancel()
	info, err := c.jup.SearchToken(ctx, mint.String())
	if err != nil {
		c.fail(chatID, userID, "token search", fmt.Errorf("%w: %v", trade.ErrLookupFailed, err))
		return
	}
	lamports, err := c.chain.Balance(ctx, w.PublicKey())
	if err != nil {
		telemetry.Warnf("[telegram] mint paste balance user=%d: %v", userID, err)
	}

	c.sessions.SetBuyTarget(userID, mint.String())
	c.sessions.Reset(userID)
	card := tokenCard(info, mint.String())
	card += fmt.Sprintf("\n\n💰 Your balance: *%s SOL*", helpers.FormatSol(lamports))
	c.replyKeyboard(chatID, card, tokenBuyKeyboard())
}

func (c *Controller) handleRefreshBuy(chatID, userID int64) {
	mint, ok := c.sessions.BuyTarget(userID)
	if !ok {
		c.fail(chatID, userID, "refresh buy", trade.ErrNoTokenSelected)
		return
	}
	c.handleMint(chatID, userID, mint)
}

func (c *Controller) handleRefreshSell(chatID, userID int64) {
	mint, ok := c.sessions.SellTarget(userID)
	if !ok {
		c.fail(chatID, userID, "refresh sell", trade.ErrNoTokenSelected)
		return
	}
	c.handleSellMint(chatID, userID, mint)
}

func (c *Controller) handleFund(chatID, userID int64) {
	w, ok := c.registry.Get(userID)
	if !ok {
		c.fail(chatID, userID, "fund", trade.ErrNoWallet)
		return
	}
	c.reply(chatID, fmt.Sprintf(
		"💵 *Fund your wallet*\n\nSend SOL to:\n`%s`\n\nDeposits are credited as soon as they finalize.",
		w.PublicKey()))
}

func (c *Controller) handleWallet(chatID, userID int64) {
	w, ok := c.registry.Get(userID)
	if !ok {
		c.fail(chatID, userID, "wallet", trade.ErrNoWallet)
		return
	}

	ctx, cancel := c.opCtx()
	defer cancel()
	lamports, err := c.chain.Balance(ctx, w.PublicKey())
	if err != nil {
		c.fail(chatID, userID, "wallet balance", err)
		return
	}
	c.reply(chatID, fmt.Sprintf(
		"💼 *Your Wallet*\n\nAddress:\n`%s`\n\n💰 Balance: *%s SOL*",
		w.PublicKey(), helpers.FormatSol(lamports)))
}

func (c *Controller) handlePortfolio(chatID, userID int64) {
	w, ok := c.registry.Get(userID)
	if !ok {
		c.fail(chatID, userID, "portfolio", trade.ErrNoWallet)
		return
	}

	ctx, cancel := c.opCtx()
	defer cancel()
	holdings, err := c.lister.List(ctx, w.PublicKey())
	if err != nil {
		c.fail(chatID, userID, "portfolio", err)
		return
	}
	if len(holdings) == 0 {
		c.replyKeyboard(chatID,
			"💼 You don't hold any tokens yet.\n\nFund your wallet and buy your first token to get started.",
			zeroBalanceKeyboard())
		return
	}

	var b strings.Builder
	b.WriteString("📊 *Your Portfolio:*\n\n")
	total := 0.0
	for _, h := range holdings {
		if h.Priced {
			fmt.Fprintf(&b, "*%s* — %s\n💵 $%s ($%s each)\n`%s`\n\n",
				h.Symbol,
				helpers.FormatTokenAmount(h.Raw, h.Decimals),
				helpers.FormatUSD(h.ValueUSD),
				helpers.FormatUSD(h.PriceUSD),
				h.Mint)
			total += h.ValueUSD
		} else {
			fmt.Fprintf(&b, "*%s* — %s\n💵 price unavailable\n`%s`\n\n",
				h.Symbol,
				helpers.FormatTokenAmount(h.Raw, h.Decimals),
				h.Mint)
		}
	}
	fmt.Fprintf(&b, "Total value: *$%s*\n\nTap a token to sell it.", helpers.FormatUSD(total))
	c.replyKeyboard(chatID, b.String(), portfolioKeyboard(holdings))
}

// handleSellMint opens the sell view for a token picked from the portfolio.
func (c *Controller) handleSellMint(chatID, userID int64, mintStr string) {
	w, ok := c.registry.Get(userID)
	if !ok {
		c.fail(chatID, userID, "sell view", trade.ErrNoWallet)
		return
	}
	mint, err := helpers.ParseMint(mintStr)
	if err != nil {
		c.fail(chatID, userID, "sell view", fmt.Errorf("%w: %v", trade.ErrLookupFailed, err))
		return
	}

	ctx, cancel := c.opCtx()
	defer cancel()
	raw, decimals, err := c.chain.TokenHolding(ctx, w.PublicKey(), mint)
	if err != nil {
		c.fail(chatID, userID, "sell view", err)
		return
	}
	info, err := c.jup.SearchToken(ctx, mint.String())
	if err != nil {
		telemetry.Warnf("[telegram] sell view token search user=%d mint=%s: %v", userID, mint, err)
	}
	// Amounts are resolved against the chain's decimals; a disagreeing
	// aggregator listing is worth a log line before any sell math runs.
	if info != nil && raw > 0 && info.Decimals != decimals {
		telemetry.Warnf("[telegram] decimals mismatch for %s: chain=%d aggregator=%d", mint, decimals, info.Decimals)
	}

	c.sessions.SetSellTarget(userID, mint.String())
	c.sessions.Reset(userID)

	card := tokenCard(info, mint.String())
	card += fmt.Sprintf("\n\n💰 You hold: *%s*", helpers.FormatTokenAmount(raw, decimals))
	c.replyKeyboard(chatID, card, tokenSellKeyboard())
}

// executeBuy swaps SOL into the session's buy target. solText is a decimal
// SOL amount from a tier button or a custom prompt reply.
func (c *Controller) executeBuy(chatID, userID int64, solText string) {
	w, ok := c.registry.Get(userID)
	if !ok {
		c.fail(chatID, userID, "buy", trade.ErrNoWallet)
		return
	}
	mint, ok := c.sessions.BuyTarget(userID)
	if !ok {
		c.fail(chatID, userID, "buy", trade.ErrNoTokenSelected)
		return
	}

	lamports, err := quantity.BaseCurrencyUnits(solText, solana.SolMint)
	if err != nil {
		telemetry.Debugf("[telegram] buy amount %q user=%d: %v", solText, userID, err)
		c.reply(chatID, "❌ Invalid amount. Enter a positive number like 0.25.")
		c.sessions.Reset(userID)
		return
	}

	ctx, cancel := c.opCtx()
	defer cancel()
	balance, err := c.chain.Balance(ctx, w.PublicKey())
	if err != nil {
		c.fail(chatID, userID, "buy balance", err)
		return
	}
	// <= keeps headroom for fees: spending the full balance would fail on
	// gas anyway.
	if balance <= lamports {
		c.fail(chatID, userID, "buy",
			fmt.Errorf("%w: need %d lamports, have %d", trade.ErrInsufficientBalance, lamports, balance))
		return
	}

	c.reply(chatID, fmt.Sprintf("🔄 Buying with *%s SOL*...", solText))

	outcome, err := c.exec.Execute(ctx, w.PrivateKey, solana.SolMint.String(), mint, lamports)
	if err != nil {
		c.fail(chatID, userID, "buy swap", err)
		return
	}
	c.sessions.Reset(userID)
	if outcome.Confirmed {
		c.reply(chatID, fmt.Sprintf(
			"✅ *Buy executed!*\nSpent: *%s SOL*\nToken: `%s`\n[View on Solscan](%s)",
			solText, mint, helpers.SolscanTxURL(outcome.Signature)))
	} else {
		c.reply(chatID, "⏳ *Transaction submitted*, final status unknown. Check your holdings in a moment.")
	}
}

// executeSellPercent sells a fixed fraction of the current holding.
func (c *Controller) executeSellPercent(chatID, userID int64, pct float64) {
	w, ok := c.registry.Get(userID)
	if !ok {
		c.fail(chatID, userID, "sell", trade.ErrNoWallet)
		return
	}
	mintStr, ok := c.sessions.SellTarget(userID)
	if !ok {
		c.fail(chatID, userID, "sell", trade.ErrNoTokenSelected)
		return
	}
	mint, err := helpers.ParseMint(mintStr)
	if err != nil {
		c.fail(chatID, userID, "sell", fmt.Errorf("%w: %v", trade.ErrLookupFailed, err))
		return
	}

	ctx, cancel := c.opCtx()
	defer cancel()
	raw, _, err := c.chain.TokenHolding(ctx, w.PublicKey(), mint)
	if err != nil {
		c.fail(chatID, userID, "sell holding", err)
		return
	}
	if raw == 0 {
		c.fail(chatID, userID, "sell", trade.ErrZeroHoldings)
		return
	}
	amount, err := quantity.PercentOfBalance(raw, pct)
	if err != nil || amount == 0 {
		c.fail(chatID, userID, "sell", fmt.Errorf("%w: resolve %v%% of %d: %v", trade.ErrZeroHoldings, pct*100, raw, err))
		return
	}

	c.reply(chatID, fmt.Sprintf("🔄 Selling *%.0f%%*...", pct*100))
	c.finishSell(ctx, chatID, userID, mintStr, amount)
}

// executeSellAmount sells a user-typed token amount from a custom prompt.
func (c *Controller) executeSellAmount(chatID, userID int64, text string) {
	w, ok := c.registry.Get(userID)
	if !ok {
		c.fail(chatID, userID, "sell", trade.ErrNoWallet)
		return
	}
	mintStr, ok := c.sessions.SellTarget(userID)
	if !ok {
		c.fail(chatID, userID, "sell", trade.ErrNoTokenSelected)
		return
	}
	mint, err := helpers.ParseMint(mintStr)
	if err != nil {
		c.fail(chatID, userID, "sell", fmt.Errorf("%w: %v", trade.ErrLookupFailed, err))
		return
	}

	ctx, cancel := c.opCtx()
	defer cancel()
	raw, decimals, err := c.chain.TokenHolding(ctx, w.PublicKey(), mint)
	if err != nil {
		c.fail(chatID, userID, "sell holding", err)
		return
	}
	if raw == 0 {
		c.fail(chatID, userID, "sell", trade.ErrZeroHoldings)
		return
	}

	amount, err := quantity.BaseUnits(text, decimals)
	if err != nil {
		telemetry.Debugf("[telegram] sell amount %q user=%d: %v", text, userID, err)
		c.reply(chatID, "❌ Invalid amount. Enter a positive number like 1500.")
		c.sessions.Reset(userID)
		return
	}
	if amount > raw {
		c.fail(chatID, userID, "sell",
			fmt.Errorf("%w: selling %d, hold %d", trade.ErrInsufficientBalance, amount, raw))
		return
	}

	c.reply(chatID, fmt.Sprintf("🔄 Selling *%s*...", text))
	c.finishSell(ctx, chatID, userID, mintStr, amount)
}

func (c *Controller) finishSell(ctx context.Context, chatID, userID int64, mint string, amount uint64) {
	w, ok := c.registry.Get(userID)
	if !ok {
		c.fail(chatID, userID, "sell", trade.ErrNoWallet)
		return
	}
	outcome, err := c.exec.Execute(ctx, w.PrivateKey, mint, solana.SolMint.String(), amount)
	if err != nil {
		c.fail(chatID, userID, "sell swap", err)
		return
	}
	c.sessions.Reset(userID)
	if outcome.Confirmed {
		c.reply(chatID, fmt.Sprintf(
			"✅ *Sell executed!*\nToken: `%s`\n[View on Solscan](%s)",
			mint, helpers.SolscanTxURL(outcome.Signature)))
	} else {
		c.reply(chatID, "⏳ *Transaction submitted*, final status unknown. Check your holdings in a moment.")
	}
}
