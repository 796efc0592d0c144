package wallet

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/blues/cfd/internal/chain"
	"github.com/blues/cfd/internal/config"
)

func testRequest() *chain.TransactionRequest {
	return &chain.TransactionRequest{
		Sender:    "aleo1sender",
		Network:   "testnet3",
		Program:   "project_crowdfunding7.aleo",
		Function:  "create_project",
		Arguments: []string{"12345field", "5000field"},
		FeeLimit:  350000,
	}
}

func newBridge(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := Init(config.WalletConfig{Endpoint: server.URL, Address: "aleo1sender"}, server.Client())
	if err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	return client
}

func TestInitRequiresEndpoint(t *testing.T) {
	if _, err := Init(config.WalletConfig{}, nil); err == nil {
		t.Error("Init() with empty endpoint should fail")
	}
}

func TestRequestTransaction(t *testing.T) {
	var got chain.TransactionRequest
	client := newBridge(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/transaction" {
			http.NotFound(w, r)
			return
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		json.NewEncoder(w).Encode(map[string]string{"transaction_id": "at1xyz"})
	})

	txID, err := client.RequestTransaction(context.Background(), testRequest())
	if err != nil {
		t.Fatalf("RequestTransaction() error = %v", err)
	}
	if txID != "at1xyz" {
		t.Errorf("txID = %q, want %q", txID, "at1xyz")
	}

	// 请求必须原样传递给钱包
	if got.Program != "project_crowdfunding7.aleo" || got.Function != "create_project" {
		t.Errorf("forwarded request = %+v", got)
	}
	if len(got.Arguments) != 2 || got.Arguments[0] != "12345field" {
		t.Errorf("forwarded arguments = %v", got.Arguments)
	}
}

func TestRequestTransactionRejected(t *testing.T) {
	client := newBridge(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		json.NewEncoder(w).Encode(map[string]string{"error": "user rejected the request"})
	})

	_, err := client.RequestTransaction(context.Background(), testRequest())
	if err == nil {
		t.Fatal("RequestTransaction() should fail when wallet rejects")
	}
	// 钱包给出的失败原因必须透出
	if !strings.Contains(err.Error(), "user rejected the request") {
		t.Errorf("error = %v, want wallet cause included", err)
	}
}

func TestRequestTransactionNoResponse(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	server.Close()

	client, err := Init(config.WalletConfig{Endpoint: server.URL, Address: "aleo1sender"}, nil)
	if err != nil {
		t.Fatalf("Init() error = %v", err)
	}

	if _, err := client.RequestTransaction(context.Background(), testRequest()); err == nil {
		t.Error("RequestTransaction() should fail when wallet is unreachable")
	}
}

func TestRequestTransactionMissingTxID(t *testing.T) {
	client := newBridge(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{})
	})

	if _, err := client.RequestTransaction(context.Background(), testRequest()); err == nil {
		t.Error("RequestTransaction() should fail when wallet returns no transaction id")
	}
}
