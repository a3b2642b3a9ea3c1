package telegram

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/An1ketGupta/TradeAni-Bot/internal/portfolio"
)

// Callback data values. Tier buttons carry the amount in the suffix;
// portfolio token buttons carry the mint after cbSellMintPrefix.
const (
	cbBuy         = "buy"
	cbSell        = "sell"
	cbFund        = "fund"
	cbWallet      = "wallet"
	cbClose       = "close"
	cbRefresh     = "refresh"
	cbRefreshSell = "refresh_sell"
	cbSlippage    = "slippage"

	cbBuyTenth = "buy_0.1"
	cbBuyHalf  = "buy_0.5"
	cbBuyOne   = "buy_1.0"
	cbBuyX     = "buy_x"

	cbSell25  = "sell_25"
	cbSell50  = "sell_50"
	cbSell100 = "sell_100"
	cbSellX   = "sell_x"

	cbSellMintPrefix = "sellmint_"
)

func btn(label, data string) tgbotapi.InlineKeyboardButton {
	return tgbotapi.NewInlineKeyboardButtonData(label, data)
}

func startKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(btn("🟢 Buy", cbBuy), btn("🔴 Sell", cbSell)),
		tgbotapi.NewInlineKeyboardRow(btn("💵 Fund", cbFund), btn("💼 Wallet", cbWallet)),
	)
}

func zeroBalanceKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(btn("💼 Wallet", cbWallet), btn("💵 Fund", cbFund)),
		tgbotapi.NewInlineKeyboardRow(btn("❌ Close", cbClose)),
	)
}

func tokenBuyKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			btn("Buy 0.1 Sol", cbBuyTenth),
			btn("Buy 1.0 Sol", cbBuyOne),
			btn("Buy 0.5 Sol", cbBuyHalf),
		),
		tgbotapi.NewInlineKeyboardRow(btn("Buy X Sol", cbBuyX)),
		tgbotapi.NewInlineKeyboardRow(btn("🔄 Refresh", cbRefresh), btn("Slippage - 1%", cbSlippage)),
		tgbotapi.NewInlineKeyboardRow(btn("❌ Close", cbClose)),
	)
}

func tokenSellKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(btn("Sell 25%", cbSell25), btn("Sell 50%", cbSell50)),
		tgbotapi.NewInlineKeyboardRow(btn("Sell 100%", cbSell100), btn("Sell X", cbSellX)),
		tgbotapi.NewInlineKeyboardRow(btn("🔄 Refresh", cbRefreshSell), btn("Slippage - 1%", cbSlippage)),
		tgbotapi.NewInlineKeyboardRow(btn("❌ Close", cbClose)),
	)
}

// portfolioKeyboard lays the holdings out two buttons per row, each button
// selecting its token for sale, with a Close row at the bottom.
func portfolioKeyboard(holdings []portfolio.Holding) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	var row []tgbotapi.InlineKeyboardButton
	for _, h := range holdings {
		label := h.Symbol
		if label == "" {
			label = h.Mint[:8]
		}
		row = append(row, btn(label, cbSellMintPrefix+h.Mint))
		if len(row) == 2 {
			rows = append(rows, tgbotapi.NewInlineKeyboardRow(row...))
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(row...))
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(btn("❌ Close", cbClose)))
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}
