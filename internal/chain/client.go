// Package chain wraps the Solana RPC node: native balance, a single token
// holding, and the full token-account scan for the portfolio view.
package chain

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"

	"github.com/An1ketGupta/TradeAni-Bot/internal/telemetry"
	"github.com/An1ketGupta/TradeAni-Bot/internal/trade"
)

// Holding is one SPL token position with a nonzero balance.
type Holding struct {
	Mint     string
	Raw      uint64
	Decimals uint8
	UiAmount float64
}

type Client struct {
	rpc *rpc.Client
}

func NewClient(rpcURL string) *Client {
	return &Client{rpc: rpc.New(rpcURL)}
}

// Balance returns the owner's native SOL balance in lamports.
func (c *Client) Balance(ctx context.Context, owner solana.PublicKey) (uint64, error) {
	out, err := c.rpc.GetBalance(ctx, owner, rpc.CommitmentFinalized)
	if err != nil {
		telemetry.Errorf("chain: GetBalance %s: %v", owner, err)
		return 0, fmt.Errorf("%w: balance query: %v", trade.ErrLookupFailed, err)
	}
	return out.Value, nil
}

// parsedTokenAccount is the jsonParsed shape returned for SPL token accounts.
// Decoded explicitly so decimals and the raw amount come straight from the
// node instead of a second metadata lookup.
type parsedTokenAccount struct {
	Parsed struct {
		Info struct {
			Mint        string `json:"mint"`
			TokenAmount struct {
				Amount   string  `json:"amount"`
				Decimals uint8   `json:"decimals"`
				UiAmount float64 `json:"uiAmount"`
			} `json:"tokenAmount"`
		} `json:"info"`
	} `json:"parsed"`
}

// TokenHolding returns the owner's balance of a single mint. A missing or
// empty token account reports zero with the mint's decimals unknown (0).
func (c *Client) TokenHolding(ctx context.Context, owner, mint solana.PublicKey) (uint64, uint8, error) {
	out, err := c.rpc.GetTokenAccountsByOwner(
		ctx,
		owner,
		&rpc.GetTokenAccountsConfig{Mint: &mint},
		&rpc.GetTokenAccountsOpts{Encoding: solana.EncodingJSONParsed},
	)
	if err != nil {
		telemetry.Errorf("chain: GetTokenAccountsByOwner %s mint=%s: %v", owner, mint, err)
		return 0, 0, fmt.Errorf("%w: token account query: %v", trade.ErrLookupFailed, err)
	}
	for _, acc := range out.Value {
		var parsed parsedTokenAccount
		if err := json.Unmarshal(acc.Account.Data.GetRawJSON(), &parsed); err != nil {
			telemetry.Warnf("chain: unparseable token account for %s: %v", owner, err)
			continue
		}
		raw, err := strconv.ParseUint(parsed.Parsed.Info.TokenAmount.Amount, 10, 64)
		if err != nil {
			continue
		}
		return raw, parsed.Parsed.Info.TokenAmount.Decimals, nil
	}
	return 0, 0, nil
}

// Holdings scans every SPL token account the owner holds and returns the
// positions with a nonzero balance.
func (c *Client) Holdings(ctx context.Context, owner solana.PublicKey) ([]Holding, error) {
	out, err := c.rpc.GetTokenAccountsByOwner(
		ctx,
		owner,
		&rpc.GetTokenAccountsConfig{ProgramId: &solana.TokenProgramID},
		&rpc.GetTokenAccountsOpts{Encoding: solana.EncodingJSONParsed},
	)
	if err != nil {
		telemetry.Errorf("chain: holdings scan %s: %v", owner, err)
		return nil, fmt.Errorf("%w: holdings scan: %v", trade.ErrLookupFailed, err)
	}
	var holdings []Holding
	for _, acc := range out.Value {
		var parsed parsedTokenAccount
		if err := json.Unmarshal(acc.Account.Data.GetRawJSON(), &parsed); err != nil {
			telemetry.Warnf("chain: unparseable token account for %s: %v", owner, err)
			continue
		}
		amt := parsed.Parsed.Info.TokenAmount
		if amt.UiAmount <= 0 {
			continue
		}
		raw, err := strconv.ParseUint(amt.Amount, 10, 64)
		if err != nil || raw == 0 {
			continue
		}
		holdings = append(holdings, Holding{
			Mint:     parsed.Parsed.Info.Mint,
			Raw:      raw,
			Decimals: amt.Decimals,
			UiAmount: amt.UiAmount,
		})
	}
	return holdings, nil
}
