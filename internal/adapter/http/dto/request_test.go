package dto

import (
	"encoding/json"
	"testing"
)

func TestCreateWalletRequestToUseCaseInput(t *testing.T) {
	var req CreateWalletRequest
	payload := `{"wallet_id":"w1","owner":"Alice","initial_balance":100}`
	if err := json.Unmarshal([]byte(payload), &req); err != nil {
		t.Fatalf("failed to decode request: %v", err)
	}

	input := req.ToUseCaseInput()

	if input.WalletID != "w1" || input.Owner != "Alice" || input.InitialBalance != 100 {
		t.Fatalf("unexpected input: %+v", input)
	}
}

func TestMutateRequestDecoding(t *testing.T) {
	var req MutateRequest
	if err := json.Unmarshal([]byte(`{"amount":50}`), &req); err != nil {
		t.Fatalf("failed to decode request: %v", err)
	}

	if req.Amount != 50 {
		t.Fatalf("expected amount 50, got %d", req.Amount)
	}
}
