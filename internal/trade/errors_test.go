package trade

import (
	"errors"
	"fmt"
	"testing"
)

func TestUserMessageMatchesWrappedErrors(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{ErrNoWallet, "Wallet not found. /start first."},
		{fmt.Errorf("%w: user 42", ErrNoWallet), "Wallet not found. /start first."},
		{fmt.Errorf("%w: order: 502", ErrSwapFailed), "Swap failed. Ensure you have enough SOL for gas fees."},
		{ErrQuoteUnavailable, "Jupiter did not return a transaction. Try again later."},
		{fmt.Errorf("%w: need 5, have 3", ErrInsufficientBalance), "Insufficient SOL balance."},
		{ErrZeroHoldings, "Balance is zero. Nothing to sell."},
		{ErrNoTokenSelected, "No token selected."},
		{fmt.Errorf("%w: dns", ErrLookupFailed), "Error fetching token info."},
		{errors.New("internal rpc detail"), "Something went wrong. Please try again."},
	}
	for _, tt := range tests {
		if got := UserMessage(tt.err); got != tt.want {
			t.Errorf("UserMessage(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}

// The generic fallback must never leak internal detail to chat.
func TestUserMessageNeverEchoesCause(t *testing.T) {
	err := errors.New("rpc node 10.0.0.3 timed out")
	if got := UserMessage(err); got != "Something went wrong. Please try again." {
		t.Fatalf("UserMessage leaked: %q", got)
	}
}
