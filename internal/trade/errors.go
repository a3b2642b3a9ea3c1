// Package trade defines the error taxonomy shared by every trading flow.
// Handlers match these with errors.Is and convert them to short user-facing
// messages; the underlying cause stays in the logs.
package trade

import "errors"

var (
	// ErrNoWallet is returned when an action requires a wallet that was
	// never created for the user.
	ErrNoWallet = errors.New("no wallet found")

	// ErrNoTokenSelected is returned when an action requires a prior token
	// selection absent from the user's context.
	ErrNoTokenSelected = errors.New("no token selected")

	// ErrInsufficientBalance is returned by pre-flight balance checks
	// before a swap is attempted.
	ErrInsufficientBalance = errors.New("insufficient balance")

	// ErrZeroHoldings is returned when a sell was requested on an empty
	// token balance.
	ErrZeroHoldings = errors.New("zero holdings")

	// ErrQuoteUnavailable is returned when the aggregator produced no
	// transaction payload for an order request.
	ErrQuoteUnavailable = errors.New("quote unavailable")

	// ErrSwapFailed wraps any failure during quote/sign/submit.
	ErrSwapFailed = errors.New("swap failed")

	// ErrLookupFailed wraps market-data and token-search failures.
	ErrLookupFailed = errors.New("lookup failed")
)

// UserMessage maps a taxonomy member to the short message shown in chat.
// Unrecognized errors fall back to a generic failure line so no internal
// detail leaks to the user.
func UserMessage(err error) string {
	switch {
	case errors.Is(err, ErrNoWallet):
		return "Wallet not found. /start first."
	case errors.Is(err, ErrNoTokenSelected):
		return "No token selected."
	case errors.Is(err, ErrInsufficientBalance):
		return "Insufficient SOL balance."
	case errors.Is(err, ErrZeroHoldings):
		return "Balance is zero. Nothing to sell."
	case errors.Is(err, ErrQuoteUnavailable):
		return "Jupiter did not return a transaction. Try again later."
	case errors.Is(err, ErrSwapFailed):
		return "Swap failed. Ensure you have enough SOL for gas fees."
	case errors.Is(err, ErrLookupFailed):
		return "Error fetching token info."
	default:
		return "Something went wrong. Please try again."
	}
}
