// Package wallet holds the custodial keypair registry: one keypair per user,
// created lazily on first interaction, in-memory only. Keys are lost on
// restart; that is an accepted limitation of the custody model, not a bug.
package wallet

import (
	"sync"

	"github.com/gagliardetto/solana-go"
)

type Registry struct {
	mu      sync.Mutex
	wallets map[int64]*solana.Wallet
}

func NewRegistry() *Registry {
	return &Registry{wallets: make(map[int64]*solana.Wallet)}
}

// Ensure returns the user's wallet, generating one on first call.
// Idempotent afterwards; generation cannot fail.
func (r *Registry) Ensure(userID int64) *solana.Wallet {
	r.mu.Lock()
	defer r.mu.Unlock()
	if w, ok := r.wallets[userID]; ok {
		return w
	}
	w := solana.NewWallet()
	r.wallets[userID] = w
	return w
}

// Get returns the user's wallet without creating one. Wallet-dependent
// actions other than /start go through here so a missing wallet is caught
// before any collaborator call.
func (r *Registry) Get(userID int64) (*solana.Wallet, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	w, ok := r.wallets[userID]
	return w, ok
}
