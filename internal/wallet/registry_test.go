package wallet

import "testing"

func TestEnsureIsIdempotent(t *testing.T) {
	r := NewRegistry()

	first := r.Ensure(1)
	second := r.Ensure(1)
	if first != second {
		t.Fatal("Ensure generated a second wallet for the same user")
	}
	if !first.PublicKey().Equals(second.PublicKey()) {
		t.Fatal("repeated Ensure changed the public key")
	}
}

func TestEnsureIsolatesUsers(t *testing.T) {
	r := NewRegistry()

	a := r.Ensure(1)
	b := r.Ensure(2)
	if a.PublicKey().Equals(b.PublicKey()) {
		t.Fatal("two users share a keypair")
	}
}

func TestGetNeverCreates(t *testing.T) {
	r := NewRegistry()

	if _, ok := r.Get(99); ok {
		t.Fatal("Get returned a wallet for an unknown user")
	}

	w := r.Ensure(99)
	got, ok := r.Get(99)
	if !ok || got != w {
		t.Fatal("Get did not return the ensured wallet")
	}
}
