// Package quantity converts human amounts into on-chain integer base units.
// Nothing here may round-trip through float64: precision loss at high decimal
// counts would corrupt order sizes, so the raw path is big.Int and the
// decimal-input path is exact decimal arithmetic.
package quantity

import (
	"fmt"
	"math"
	"math/big"

	"github.com/gagliardetto/solana-go"
	"github.com/shopspring/decimal"
)

// SolDecimals is the precision of the base currency. It is valid only for
// the wrapped-SOL mint; BaseCurrencyUnits refuses any other mint rather than
// silently producing wrong sizes.
const SolDecimals = 9

// PercentOfBalance resolves a fixed-fraction sell: floor(raw * round(pct*100) / 100).
// pct must be in (0, 1]. raw == 0 is the caller's ZeroHoldings short-circuit;
// here it simply yields 0.
func PercentOfBalance(raw uint64, pct float64) (uint64, error) {
	if pct <= 0 || pct > 1 {
		return 0, fmt.Errorf("percentage out of range: %v", pct)
	}
	factor := int64(math.Round(pct * 100))
	n := new(big.Int).SetUint64(raw)
	n.Mul(n, big.NewInt(factor))
	n.Div(n, big.NewInt(100))
	if !n.IsUint64() {
		return 0, fmt.Errorf("resolved amount overflows uint64")
	}
	return n.Uint64(), nil
}

// BaseUnits converts a user-typed decimal string into integer base units for
// a token with the given decimal precision: round(value * 10^decimals).
// Non-positive results are rejected.
func BaseUnits(text string, decimals uint8) (uint64, error) {
	d, err := decimal.NewFromString(text)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q: %w", text, err)
	}
	scaled := d.Shift(int32(decimals)).Round(0)
	if scaled.Sign() <= 0 {
		return 0, fmt.Errorf("amount must be positive")
	}
	bi := scaled.BigInt()
	if !bi.IsUint64() {
		return 0, fmt.Errorf("amount too large")
	}
	return bi.Uint64(), nil
}

// BaseCurrencyUnits converts a decimal SOL amount into lamports for the given
// base-currency mint. The mint is checked explicitly so a changed base
// currency fails loudly instead of inheriting SOL's 9 decimals.
func BaseCurrencyUnits(text string, baseMint solana.PublicKey) (uint64, error) {
	if !baseMint.Equals(solana.SolMint) {
		return 0, fmt.Errorf("unsupported base currency mint %s", baseMint)
	}
	return BaseUnits(text, SolDecimals)
}
