package domain

import "time"

// Bitcoin reward states. A pending reward ends in exactly one of the two
// terminal states: completed (paid out on-chain) or claimed (swept to a
// user-supplied wallet).
const (
	RewardPending   = "pending"
	RewardCompleted = "completed"
	RewardClaimed   = "claimed"
)

// BitcoinReward is a satoshi payout earned through course completion,
// streaks, or battles.
type BitcoinReward struct {
	ID              string     `json:"id"`
	UserID          Principal  `json:"user_id"`
	Amount          uint64     `json:"amount"` // satoshis
	RewardType      string     `json:"reward_type"`
	SourceID        string     `json:"source_id"`
	Status          string     `json:"status"`
	TransactionHash *string    `json:"transaction_hash,omitempty"`
	ProcessedAt     *time.Time `json:"processed_at,omitempty"`
	WalletAddress   *string    `json:"wallet_address,omitempty"`
	ClaimedAt       *time.Time `json:"claimed_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
}

// Process settles a pending reward on-chain, recording the transaction.
func (r *BitcoinReward) Process(txHash string, now time.Time) error {
	if r.Status != RewardPending {
		return InvalidInputf("reward is %s, only pending rewards can be processed", r.Status)
	}
	r.Status = RewardCompleted
	r.TransactionHash = &txHash
	r.ProcessedAt = &now
	return nil
}

// Claim sweeps a pending reward to the given wallet address.
func (r *BitcoinReward) Claim(walletAddress string, now time.Time) error {
	if r.Status != RewardPending {
		return InvalidInputf("reward is %s, only pending rewards can be claimed", r.Status)
	}
	if walletAddress == "" {
		return InvalidPayloadf("wallet address is required")
	}
	r.Status = RewardClaimed
	r.WalletAddress = &walletAddress
	r.ClaimedAt = &now
	return nil
}
