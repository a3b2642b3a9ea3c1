// Package jupiter is the HTTP client for the Jupiter aggregator: swap order
// construction, signed-transaction execution, and token search.
package jupiter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/An1ketGupta/TradeAni-Bot/internal/telemetry"
)

// OrderResponse carries the unsigned swap transaction and the id that ties
// the later execute call back to this order.
type OrderResponse struct {
	Transaction string `json:"transaction"`
	RequestID   string `json:"requestId"`
}

// ExecuteResponse is the aggregator's verdict on a submitted swap.
type ExecuteResponse struct {
	Status    string `json:"status"`
	Signature string `json:"signature"`
	Error     string `json:"error"`
}

// TokenInfo is one result of the token search endpoint.
type TokenInfo struct {
	ID       string  `json:"id"`
	Symbol   string  `json:"symbol"`
	Name     string  `json:"name"`
	UsdPrice float64 `json:"usdPrice"`
	MCap     float64 `json:"mcap"`
	Decimals uint8   `json:"decimals"`
}

type Client struct {
	http        *http.Client
	baseURL     string
	apiKey      string
	slippageBps int
}

func NewClient(baseURL, apiKey string, slippageBps int) *Client {
	return &Client{
		http:        &http.Client{Timeout: 30 * time.Second},
		baseURL:     baseURL,
		apiKey:      apiKey,
		slippageBps: slippageBps,
	}
}

func (c *Client) do(req *http.Request, out interface{}) error {
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("x-api-key", c.apiKey)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		telemetry.Debugf("jupiter: %s %s -> %d: %s", req.Method, req.URL.Path, resp.StatusCode, body)
		return fmt.Errorf("jupiter: %s returned %d", req.URL.Path, resp.StatusCode)
	}
	return json.Unmarshal(body, out)
}

// Order asks the aggregator to build a swap of amount base units from
// inputMint to outputMint, payable by taker.
func (c *Client) Order(ctx context.Context, inputMint, outputMint string, amount uint64, taker string) (*OrderResponse, error) {
	q := url.Values{}
	q.Set("inputMint", inputMint)
	q.Set("outputMint", outputMint)
	q.Set("amount", strconv.FormatUint(amount, 10))
	q.Set("taker", taker)
	q.Set("slippageBps", strconv.Itoa(c.slippageBps))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/ultra/v1/order?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	var out OrderResponse
	if err := c.do(req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Execute submits a signed swap transaction for the given order.
func (c *Client) Execute(ctx context.Context, signedTxB64, requestID string) (*ExecuteResponse, error) {
	payload, err := json.Marshal(map[string]string{
		"signedTransaction": signedTxB64,
		"requestId":         requestID,
	})
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/ultra/v1/execute", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	var out ExecuteResponse
	if err := c.do(req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SearchToken looks a token up by mint address or symbol. Returns the first
// match or nil when the aggregator knows nothing about the query.
func (c *Client) SearchToken(ctx context.Context, query string) (*TokenInfo, error) {
	q := url.Values{}
	q.Set("query", query)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/tokens/v2/search?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	var out []TokenInfo
	if err := c.do(req, &out); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, nil
	}
	return &out[0], nil
}
