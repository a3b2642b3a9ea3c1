package helpers

import (
	"fmt"
	"regexp"

	"github.com/gagliardetto/solana-go"
)

var (
	// Base58 mint address: 32-44 chars, alphabet excludes 0, O, I, l.
	mintRe = regexp.MustCompile(`^[1-9A-HJ-NP-Za-km-z]{32,44}$`)

	// Unsigned decimal amount, e.g. "0.1", "12.5", "3".
	amountRe = regexp.MustCompile(`^\d+(\.\d+)?$`)
)

// IsMintAddress reports whether text looks like a base58 token mint.
func IsMintAddress(text string) bool {
	return mintRe.MatchString(text)
}

// IsDecimalAmount reports whether text is a strict unsigned decimal.
// Anything else is unrelated chatter and must be ignored, not rejected.
func IsDecimalAmount(text string) bool {
	return amountRe.MatchString(text)
}

// ParseMint validates text against the base58 pattern and decodes it into a
// public key. The regexp alone admits strings that are not 32 bytes once
// decoded, so both checks are needed.
func ParseMint(text string) (solana.PublicKey, error) {
	if !mintRe.MatchString(text) {
		return solana.PublicKey{}, fmt.Errorf("not a base58 mint: %q", text)
	}
	pk, err := solana.PublicKeyFromBase58(text)
	if err != nil {
		return solana.PublicKey{}, fmt.Errorf("invalid mint %q: %w", text, err)
	}
	return pk, nil
}
