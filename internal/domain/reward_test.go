package domain

import (
	"errors"
	"testing"
)

func TestRewardProcess(t *testing.T) {
	now := fixedNow()
	r := BitcoinReward{ID: NewID("btc_reward"), UserID: "u1", Amount: 5000, Status: RewardPending}

	if err := r.Process("abc123", now); err != nil {
		t.Fatalf("Process: %v", err)
	}
	if r.Status != RewardCompleted {
		t.Fatalf("Status = %s, want completed", r.Status)
	}
	if r.TransactionHash == nil || *r.TransactionHash != "abc123" {
		t.Errorf("TransactionHash = %v", r.TransactionHash)
	}
	if r.ProcessedAt == nil {
		t.Error("ProcessedAt not set")
	}

	// A processed reward can no longer be claimed.
	if err := r.Claim("bc1qaddr", now); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("claim after process: got %v, want InvalidInput", err)
	}
}

func TestRewardClaim(t *testing.T) {
	now := fixedNow()
	r := BitcoinReward{ID: NewID("btc_reward"), UserID: "u1", Amount: 5000, Status: RewardPending}

	if err := r.Claim("", now); !errors.Is(err, ErrInvalidPayload) {
		t.Errorf("empty wallet: got %v, want InvalidPayload", err)
	}
	if err := r.Claim("bc1qaddr", now); err != nil {
		t.Fatalf("Claim: %v", err)
	}
	if r.Status != RewardClaimed {
		t.Fatalf("Status = %s, want claimed", r.Status)
	}
	if r.WalletAddress == nil || *r.WalletAddress != "bc1qaddr" {
		t.Errorf("WalletAddress = %v", r.WalletAddress)
	}
	if r.ClaimedAt == nil {
		t.Error("ClaimedAt not set")
	}

	// A claimed reward can no longer be processed.
	if err := r.Process("abc123", now); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("process after claim: got %v, want InvalidInput", err)
	}
}
