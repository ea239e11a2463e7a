package domain

import "time"

// Battle lifecycle states.
const (
	BattlePending    = "pending"
	BattleInProgress = "in_progress"
	BattleCompleted  = "completed"
	BattleCancelled  = "cancelled"
)

// ValidBattleStatus reports whether v is a recognized battle state.
func ValidBattleStatus(v string) bool {
	switch v {
	case BattlePending, BattleInProgress, BattleCompleted, BattleCancelled:
		return true
	}
	return false
}

// CombatArena is a venue where skill battles take place.
type CombatArena struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	SkillCategory string    `json:"skill_category"`
	MinStake      uint64    `json:"min_stake"`
	MaxStake      uint64    `json:"max_stake"`
	IsActive      bool      `json:"is_active"`
	CreatedAt     time.Time `json:"created_at"`
}

// Battle is a head-to-head skill contest between two users in an arena.
// The challenged party joining moves it from pending to in_progress.
type Battle struct {
	ID           string     `json:"id"`
	ArenaID      string     `json:"arena_id"`
	ChallengerID Principal  `json:"challenger_id"`
	OpponentID   Principal  `json:"opponent_id"`
	SkillID      string     `json:"skill_id"`
	StakeAmount  uint64     `json:"stake_amount"`
	Status       string     `json:"status"`
	WinnerID     *Principal `json:"winner_id,omitempty"`
	StartedAt    *time.Time `json:"started_at,omitempty"`
	CompletedAt  *time.Time `json:"completed_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

// Join accepts a pending challenge and starts the battle.
func (b *Battle) Join(caller Principal, now time.Time) error {
	if b.Status != BattlePending {
		return InvalidInputf("battle is %s, only pending battles can be joined", b.Status)
	}
	if caller != b.OpponentID {
		return Forbiddenf("only the challenged user can join this battle")
	}
	b.Status = BattleInProgress
	b.StartedAt = &now
	return nil
}

// Finish records the winner of an in-progress battle. The winner must be
// one of the two participants.
func (b *Battle) Finish(winner Principal, now time.Time) error {
	if b.Status != BattleInProgress {
		return InvalidInputf("battle is %s, only battles in progress can be completed", b.Status)
	}
	if winner != b.ChallengerID && winner != b.OpponentID {
		return InvalidPayloadf("winner must be a battle participant")
	}
	b.Status = BattleCompleted
	b.WinnerID = &winner
	b.CompletedAt = &now
	return nil
}

// Cancel withdraws a pending challenge.
func (b *Battle) Cancel(caller Principal, now time.Time) error {
	if b.Status != BattlePending {
		return InvalidInputf("battle is %s, only pending battles can be cancelled", b.Status)
	}
	if caller != b.ChallengerID {
		return Forbiddenf("only the challenger can cancel this battle")
	}
	b.Status = BattleCancelled
	b.CompletedAt = &now
	return nil
}

// BattleReward is the payout owed to a battle winner.
type BattleReward struct {
	ID        string    `json:"id"`
	BattleID  string    `json:"battle_id"`
	UserID    Principal `json:"user_id"`
	Amount    uint64    `json:"amount"`
	Claimed   bool      `json:"claimed"`
	ClaimedAt *time.Time `json:"claimed_at,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// MarkClaimed claims the reward for its owner. Rewards can be claimed once.
func (r *BattleReward) MarkClaimed(now time.Time) error {
	if r.Claimed {
		return InvalidInputf("battle reward already claimed")
	}
	r.Claimed = true
	r.ClaimedAt = &now
	return nil
}
