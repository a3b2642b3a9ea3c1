package helpers

import (
	"fmt"

	"github.com/gagliardetto/solana-go"
)

// SOL/lamport display helpers. These are presentation only; amounts that
// reach the chain boundary go through internal/quantity and stay integer.

func FormatSol(lamports uint64) string {
	f := float64(lamports) / float64(solana.LAMPORTS_PER_SOL)
	if f == 0 {
		return "0"
	}
	if f < 0.0001 {
		return fmt.Sprintf("%.9f", f)
	} else if f < 1 {
		return fmt.Sprintf("%.6f", f)
	} else if f < 100 {
		return fmt.Sprintf("%.4f", f)
	}
	return fmt.Sprintf("%.2f", f)
}

func FormatUSD(v float64) string {
	if v >= 1_000_000_000 {
		return fmt.Sprintf("%.2fB", v/1_000_000_000)
	} else if v >= 1_000_000 {
		return fmt.Sprintf("%.2fM", v/1_000_000)
	} else if v >= 1_000 {
		return fmt.Sprintf("%.2fK", v/1_000)
	}
	return fmt.Sprintf("%.2f", v)
}

// FormatTokenAmount renders a raw base-unit amount with its decimal precision.
func FormatTokenAmount(raw uint64, decimals uint8) string {
	div := 1.0
	for i := uint8(0); i < decimals; i++ {
		div *= 10
	}
	f := float64(raw) / div
	if decimals <= 2 {
		return fmt.Sprintf("%.0f", f)
	} else if decimals <= 8 {
		return fmt.Sprintf("%.4f", f)
	}
	return fmt.Sprintf("%.6f", f)
}

// ShortMint abbreviates a mint address for display.
func ShortMint(mint string) string {
	if len(mint) > 12 {
		return mint[:4] + "..." + mint[len(mint)-4:]
	}
	return mint
}

// SolscanTxURL returns the explorer reference for a transaction signature.
func SolscanTxURL(signature string) string {
	return "https://solscan.io/tx/" + signature
}
