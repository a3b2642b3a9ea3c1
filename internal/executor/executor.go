// Package executor runs the swap pipeline: order, sign, submit, interpret.
package executor

import (
	"context"
	"encoding/base64"
	"fmt"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"

	"github.com/An1ketGupta/TradeAni-Bot/internal/jupiter"
	"github.com/An1ketGupta/TradeAni-Bot/internal/telemetry"
	"github.com/An1ketGupta/TradeAni-Bot/internal/trade"
)

// Outcome reports a submitted swap. Confirmed is false when the aggregator's
// reply was ambiguous: the transaction went out but its fate is unknown, and
// the caller must not present it as either success or failure.
type Outcome struct {
	Signature string
	Confirmed bool
}

type Executor struct {
	jup *jupiter.Client
}

func New(jup *jupiter.Client) *Executor {
	return &Executor{jup: jup}
}

// Execute swaps amount base units of inputMint into outputMint on behalf of
// signer. The private key never leaves the process: the aggregator builds an
// unsigned transaction, we sign locally and hand back only the signed bytes.
func (e *Executor) Execute(ctx context.Context, signer solana.PrivateKey, inputMint, outputMint string, amount uint64) (*Outcome, error) {
	taker := signer.PublicKey()

	order, err := e.jup.Order(ctx, inputMint, outputMint, amount, taker.String())
	if err != nil {
		telemetry.Errorf("executor: order %s->%s amount=%d: %v", inputMint, outputMint, amount, err)
		return nil, fmt.Errorf("%w: order: %v", trade.ErrSwapFailed, err)
	}
	if order.Transaction == "" {
		telemetry.Warnf("executor: no route for %s->%s amount=%d", inputMint, outputMint, amount)
		return nil, trade.ErrQuoteUnavailable
	}

	raw, err := base64.StdEncoding.DecodeString(order.Transaction)
	if err != nil {
		telemetry.Errorf("executor: decode order transaction: %v", err)
		return nil, fmt.Errorf("%w: decode: %v", trade.ErrSwapFailed, err)
	}
	tx, err := solana.TransactionFromDecoder(bin.NewBinDecoder(raw))
	if err != nil {
		telemetry.Errorf("executor: parse order transaction: %v", err)
		return nil, fmt.Errorf("%w: parse: %v", trade.ErrSwapFailed, err)
	}

	if _, err := tx.Sign(func(key solana.PublicKey) *solana.PrivateKey {
		if key.Equals(taker) {
			return &signer
		}
		return nil
	}); err != nil {
		telemetry.Errorf("executor: sign: %v", err)
		return nil, fmt.Errorf("%w: sign: %v", trade.ErrSwapFailed, err)
	}

	signed, err := tx.MarshalBinary()
	if err != nil {
		telemetry.Errorf("executor: serialize signed transaction: %v", err)
		return nil, fmt.Errorf("%w: serialize: %v", trade.ErrSwapFailed, err)
	}

	res, err := e.jup.Execute(ctx, base64.StdEncoding.EncodeToString(signed), order.RequestID)
	if err != nil {
		telemetry.Errorf("executor: execute requestId=%s: %v", order.RequestID, err)
		return nil, fmt.Errorf("%w: execute: %v", trade.ErrSwapFailed, err)
	}

	if res.Status == "Success" || res.Signature != "" {
		telemetry.Infof("executor: swap confirmed sig=%s", res.Signature)
		return &Outcome{Signature: res.Signature, Confirmed: true}, nil
	}
	// The order was submitted and may still land on-chain, so this is not
	// classified as a failure. The aggregator's reason, if any, stays in
	// the logs.
	telemetry.Warnf("executor: ambiguous result status=%q err=%q", res.Status, res.Error)
	return &Outcome{Confirmed: false}, nil
}
