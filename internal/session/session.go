// Package session tracks the per-user conversational state: which step the
// dialogue is in, and which tokens are currently targeted for buy and sell.
// The three pieces live in one record per user so a transition never leaves
// them partially updated. Pure state, no collaborators — fully testable
// offline.
package session

import "sync"

// Step is the conversational mode gating interpretation of free-text input.
type Step int

const (
	StepIdle Step = iota
	StepAwaitBuyAmount
	StepAwaitSellAmount
)

func (s Step) String() string {
	switch s {
	case StepAwaitBuyAmount:
		return "awaiting-buy-amount"
	case StepAwaitSellAmount:
		return "awaiting-sell-amount"
	default:
		return "idle"
	}
}

type state struct {
	step       Step
	buyTarget  string // mint currently considered for purchase
	sellTarget string // mint currently selected for sale
}

// Manager owns all per-user session records. Keyed by user identity;
// a handler only ever touches its own user's record.
type Manager struct {
	mu    sync.Mutex
	users map[int64]*state
}

func NewManager() *Manager {
	return &Manager{users: make(map[int64]*state)}
}

func (m *Manager) get(userID int64) *state {
	st, ok := m.users[userID]
	if !ok {
		st = &state{step: StepIdle}
		m.users[userID] = st
	}
	return st
}

// Step returns the user's current conversational step (idle on first contact).
func (m *Manager) Step(userID int64) Step {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.get(userID).step
}

// AwaitBuyAmount moves the user into the buy-amount prompt state.
func (m *Manager) AwaitBuyAmount(userID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.get(userID).step = StepAwaitBuyAmount
}

// AwaitSellAmount moves the user into the sell-amount prompt state.
func (m *Manager) AwaitSellAmount(userID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.get(userID).step = StepAwaitSellAmount
}

// Reset returns the user to idle. Called on every resolution path, success
// or failure, so a failed action never leaves the user stuck.
func (m *Manager) Reset(userID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.get(userID).step = StepIdle
}

func (m *Manager) SetBuyTarget(userID int64, mint string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.get(userID).buyTarget = mint
}

// BuyTarget returns the mint the user is evaluating for purchase, if any.
func (m *Manager) BuyTarget(userID int64) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t := m.get(userID).buyTarget
	return t, t != ""
}

func (m *Manager) SetSellTarget(userID int64, mint string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.get(userID).sellTarget = mint
}

// SellTarget returns the mint the user selected for sale, if any.
func (m *Manager) SellTarget(userID int64) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t := m.get(userID).sellTarget
	return t, t != ""
}
