// Package portfolio assembles the user's token positions with USD pricing.
package portfolio

import (
	"context"
	"strconv"

	"github.com/gagliardetto/solana-go"

	"github.com/An1ketGupta/TradeAni-Bot/internal/chain"
	"github.com/An1ketGupta/TradeAni-Bot/internal/dexscreener"
	"github.com/An1ketGupta/TradeAni-Bot/internal/helpers"
	"github.com/An1ketGupta/TradeAni-Bot/internal/telemetry"
)

// ChainReader is the slice of the RPC client the lister needs.
type ChainReader interface {
	Holdings(ctx context.Context, owner solana.PublicKey) ([]chain.Holding, error)
}

// PriceSource resolves USD prices for batches of mints.
type PriceSource interface {
	Pairs(ctx context.Context, mints []string) ([]dexscreener.Pair, error)
}

// Holding is one position ready for display. Priced is false when no trading
// pair was found; the position is still shown and still sellable.
type Holding struct {
	Mint     string
	Raw      uint64
	Decimals uint8
	Amount   float64
	Name     string
	Symbol   string
	PriceUSD float64
	ValueUSD float64
	Priced   bool
}

type Lister struct {
	chain  ChainReader
	prices PriceSource
}

func NewLister(chain ChainReader, prices PriceSource) *Lister {
	return &Lister{chain: chain, prices: prices}
}

// List scans the owner's token accounts and prices them in screener-sized
// batches. Holdings without a known pair come back unpriced, never dropped.
func (l *Lister) List(ctx context.Context, owner solana.PublicKey) ([]Holding, error) {
	positions, err := l.chain.Holdings(ctx, owner)
	if err != nil {
		return nil, err
	}
	if len(positions) == 0 {
		return nil, nil
	}

	out := make([]Holding, 0, len(positions))
	index := make(map[string]int, len(positions))
	mints := make([]string, 0, len(positions))
	for _, p := range positions {
		index[p.Mint] = len(out)
		out = append(out, Holding{
			Mint:     p.Mint,
			Raw:      p.Raw,
			Decimals: p.Decimals,
			Amount:   p.UiAmount,
			Symbol:   helpers.ShortMint(p.Mint),
		})
		mints = append(mints, p.Mint)
	}

	for start := 0; start < len(mints); start += dexscreener.MaxMintsPerCall {
		end := start + dexscreener.MaxMintsPerCall
		if end > len(mints) {
			end = len(mints)
		}
		pairs, err := l.prices.Pairs(ctx, mints[start:end])
		if err != nil {
			// Pricing is best effort; the batch falls back to unpriced.
			telemetry.Warnf("portfolio: price batch failed: %v", err)
			continue
		}
		for _, pair := range pairs {
			i, ok := index[pair.BaseToken.Address]
			if !ok || out[i].Priced {
				continue
			}
			price, err := strconv.ParseFloat(pair.PriceUsd, 64)
			if err != nil {
				continue
			}
			out[i].Name = pair.BaseToken.Name
			out[i].Symbol = pair.BaseToken.Symbol
			out[i].PriceUSD = price
			out[i].ValueUSD = price * out[i].Amount
			out[i].Priced = true
		}
	}
	return out, nil
}
