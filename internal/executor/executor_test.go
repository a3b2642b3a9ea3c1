package executor

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/programs/system"

	"github.com/An1ketGupta/TradeAni-Bot/internal/jupiter"
	"github.com/An1ketGupta/TradeAni-Bot/internal/trade"
)

// unsignedOrderTx builds a serialized transaction the way the aggregator
// would return it: message ready, signature slots empty.
func unsignedOrderTx(t *testing.T, payer solana.PublicKey) string {
	t.Helper()
	tx, err := solana.NewTransaction(
		[]solana.Instruction{
			system.NewTransferInstruction(1, payer, solana.SolMint).Build(),
		},
		solana.Hash{},
		solana.TransactionPayer(payer),
	)
	if err != nil {
		t.Fatalf("build tx: %v", err)
	}
	raw, err := tx.MarshalBinary()
	if err != nil {
		t.Fatalf("marshal tx: %v", err)
	}
	return base64.StdEncoding.EncodeToString(raw)
}

type fakeAggregator struct {
	t         *testing.T
	orderResp jupiter.OrderResponse
	execResp  jupiter.ExecuteResponse

	orderCalls int
	execCalls  int
	// captured from the execute call
	signedTx  string
	requestID string
}

func (f *fakeAggregator) server() *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/ultra/v1/order":
			f.orderCalls++
			json.NewEncoder(w).Encode(f.orderResp)
		case "/ultra/v1/execute":
			f.execCalls++
			var body map[string]string
			if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
				f.t.Errorf("decode execute body: %v", err)
			}
			f.signedTx = body["signedTransaction"]
			f.requestID = body["requestId"]
			json.NewEncoder(w).Encode(f.execResp)
		default:
			f.t.Errorf("unexpected path %s", r.URL.Path)
			http.NotFound(w, r)
		}
	}))
}

func TestExecuteSignsAndSubmits(t *testing.T) {
	signer := solana.NewWallet().PrivateKey
	payer := signer.PublicKey()

	agg := &fakeAggregator{
		t:         t,
		orderResp: jupiter.OrderResponse{Transaction: unsignedOrderTx(t, payer), RequestID: "req-7"},
		execResp:  jupiter.ExecuteResponse{Status: "Success", Signature: "sig-7"},
	}
	srv := agg.server()
	defer srv.Close()

	exec := New(jupiter.NewClient(srv.URL, "", 100))
	out, err := exec.Execute(context.Background(), signer, solana.SolMint.String(), "outMint", 100_000_000)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !out.Confirmed || out.Signature != "sig-7" {
		t.Fatalf("outcome = %+v", out)
	}
	if agg.requestID != "req-7" {
		t.Fatalf("execute used requestId %q", agg.requestID)
	}

	// The submitted payload must carry a real signature over the order's
	// message, verifiable with the signer's public key.
	raw, err := base64.StdEncoding.DecodeString(agg.signedTx)
	if err != nil {
		t.Fatalf("submitted payload is not base64: %v", err)
	}
	tx, err := solana.TransactionFromDecoder(bin.NewBinDecoder(raw))
	if err != nil {
		t.Fatalf("submitted payload is not a transaction: %v", err)
	}
	if len(tx.Signatures) != 1 {
		t.Fatalf("got %d signatures", len(tx.Signatures))
	}
	msg, err := tx.Message.MarshalBinary()
	if err != nil {
		t.Fatalf("marshal message: %v", err)
	}
	if !tx.Signatures[0].Verify(payer, msg) {
		t.Fatal("signature does not verify against the signer key")
	}
}

func TestExecuteNoRoute(t *testing.T) {
	signer := solana.NewWallet().PrivateKey
	agg := &fakeAggregator{
		t:         t,
		orderResp: jupiter.OrderResponse{Transaction: "", RequestID: ""},
	}
	srv := agg.server()
	defer srv.Close()

	exec := New(jupiter.NewClient(srv.URL, "", 100))
	_, err := exec.Execute(context.Background(), signer, "inMint", "outMint", 1)
	if !errors.Is(err, trade.ErrQuoteUnavailable) {
		t.Fatalf("err = %v, want ErrQuoteUnavailable", err)
	}
	if agg.execCalls != 0 {
		t.Fatal("execute endpoint was called despite missing transaction")
	}
}

func TestExecuteSignatureAloneIsSuccess(t *testing.T) {
	signer := solana.NewWallet().PrivateKey
	agg := &fakeAggregator{
		t:         t,
		orderResp: jupiter.OrderResponse{Transaction: unsignedOrderTx(t, signer.PublicKey()), RequestID: "req-1"},
		execResp:  jupiter.ExecuteResponse{Status: "", Signature: "sig-1"},
	}
	srv := agg.server()
	defer srv.Close()

	exec := New(jupiter.NewClient(srv.URL, "", 100))
	out, err := exec.Execute(context.Background(), signer, "inMint", "outMint", 1)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !out.Confirmed || out.Signature != "sig-1" {
		t.Fatalf("outcome = %+v", out)
	}
}

// A response with neither a success status nor a signature is not a
// failure: the order may still land on-chain.
func TestExecuteAmbiguousResult(t *testing.T) {
	signer := solana.NewWallet().PrivateKey
	agg := &fakeAggregator{
		t:         t,
		orderResp: jupiter.OrderResponse{Transaction: unsignedOrderTx(t, signer.PublicKey()), RequestID: "req-2"},
		execResp:  jupiter.ExecuteResponse{Status: "Failed", Error: "slippage exceeded"},
	}
	srv := agg.server()
	defer srv.Close()

	exec := New(jupiter.NewClient(srv.URL, "", 100))
	out, err := exec.Execute(context.Background(), signer, "inMint", "outMint", 1)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if out.Confirmed {
		t.Fatal("ambiguous result reported as confirmed")
	}
}

func TestExecuteMalformedTransaction(t *testing.T) {
	signer := solana.NewWallet().PrivateKey
	agg := &fakeAggregator{
		t:         t,
		orderResp: jupiter.OrderResponse{Transaction: "!!!not-base64!!!", RequestID: "req-3"},
	}
	srv := agg.server()
	defer srv.Close()

	exec := New(jupiter.NewClient(srv.URL, "", 100))
	_, err := exec.Execute(context.Background(), signer, "inMint", "outMint", 1)
	if !errors.Is(err, trade.ErrSwapFailed) {
		t.Fatalf("err = %v, want ErrSwapFailed", err)
	}
	if agg.execCalls != 0 {
		t.Fatal("execute endpoint was called with an unparseable order")
	}
}
