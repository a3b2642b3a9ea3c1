// Package dexscreener fetches USD spot prices for SPL tokens by trading pair.
package dexscreener

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// MaxMintsPerCall is the batch limit of the tokens endpoint.
const MaxMintsPerCall = 10

// Pair is one trading pair as reported by the screener. Only the fields the
// portfolio view consumes are decoded.
type Pair struct {
	BaseToken struct {
		Address string `json:"address"`
		Name    string `json:"name"`
		Symbol  string `json:"symbol"`
	} `json:"baseToken"`
	PriceUsd string `json:"priceUsd"`
}

type Client struct {
	http    *http.Client
	baseURL string
}

func NewClient(baseURL string) *Client {
	return &Client{
		http:    &http.Client{Timeout: 15 * time.Second},
		baseURL: baseURL,
	}
}

// Pairs returns the known trading pairs for up to MaxMintsPerCall mints.
// Mints without a listed pair are simply absent from the result.
func (c *Client) Pairs(ctx context.Context, mints []string) ([]Pair, error) {
	if len(mints) == 0 {
		return nil, nil
	}
	if len(mints) > MaxMintsPerCall {
		return nil, fmt.Errorf("dexscreener: %d mints exceeds the %d per-call limit", len(mints), MaxMintsPerCall)
	}
	u := c.baseURL + "/tokens/v1/solana/" + strings.Join(mints, ",")
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("dexscreener: tokens endpoint returned %d", resp.StatusCode)
	}
	var pairs []Pair
	if err := json.Unmarshal(body, &pairs); err != nil {
		return nil, err
	}
	return pairs, nil
}
