package dexscreener

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestPairs(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/tokens/v1/solana/mintA,mintB" {
			t.Errorf("path = %s", r.URL.Path)
		}
		w.Write([]byte(`[
			{"baseToken":{"address":"mintA","name":"Token A","symbol":"TKA"},"priceUsd":"1.25"},
			{"baseToken":{"address":"mintB","name":"Token B","symbol":"TKB"},"priceUsd":"0.0003"}
		]`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	pairs, err := c.Pairs(context.Background(), []string{"mintA", "mintB"})
	if err != nil {
		t.Fatalf("Pairs: %v", err)
	}
	if len(pairs) != 2 {
		t.Fatalf("len(pairs) = %d", len(pairs))
	}
	if pairs[0].BaseToken.Address != "mintA" || pairs[0].PriceUsd != "1.25" {
		t.Fatalf("pairs[0] = %+v", pairs[0])
	}
	if pairs[1].BaseToken.Symbol != "TKB" {
		t.Fatalf("pairs[1] = %+v", pairs[1])
	}
}

func TestPairsEnforcesBatchLimit(t *testing.T) {
	c := NewClient("http://unused")
	mints := make([]string, MaxMintsPerCall+1)
	for i := range mints {
		mints[i] = "mint"
	}
	if _, err := c.Pairs(context.Background(), mints); err == nil {
		t.Fatal("Pairs accepted an oversized batch")
	}
}

func TestPairsEmptyInput(t *testing.T) {
	c := NewClient("http://unused")
	pairs, err := c.Pairs(context.Background(), nil)
	if err != nil || pairs != nil {
		t.Fatalf("Pairs(nil) = %v, %v", pairs, err)
	}
}
