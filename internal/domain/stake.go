package domain

import "time"

// Stake lifecycle states.
const (
	StakeActive    = "active"
	StakeCompleted = "completed"
	StakeFailed    = "failed"
)

// MinStakeDurationDays is the shortest commitment a stake may run for.
const MinStakeDurationDays = 7

// NeuroStake is a token commitment against a learning goal. The stake is
// created active and ends either completed (goal met, reward multiplier
// applies) or failed (forfeited).
type NeuroStake struct {
	ID               string    `json:"id"`
	UserID           Principal `json:"user_id"`
	Amount           uint64    `json:"amount"`
	SkillID          string    `json:"skill_id"`
	DurationDays     uint64    `json:"duration_days"`
	StartDate        time.Time `json:"start_date"`
	EndDate          time.Time `json:"end_date"`
	Status           string    `json:"status"`
	RewardMultiplier float64   `json:"reward_multiplier"`
	StreakDays       uint64    `json:"streak_days"`
	LastCheckIn      time.Time `json:"last_check_in"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// ValidateNew checks the constraints for creating a stake.
func (s *NeuroStake) ValidateNew() error {
	if s.Amount == 0 {
		return InvalidPayloadf("stake amount must be greater than zero")
	}
	if s.DurationDays < MinStakeDurationDays {
		return InvalidPayloadf("stake duration must be at least %d days", MinStakeDurationDays)
	}
	return nil
}

// Amend updates the amount and duration of an active stake and recomputes
// the end date from the original start date. Terminal stakes cannot change.
func (s *NeuroStake) Amend(amount, durationDays uint64, now time.Time) error {
	if s.Status != StakeActive {
		return InvalidInputf("cannot update a %s stake", s.Status)
	}
	if amount == 0 {
		return InvalidPayloadf("stake amount must be greater than zero")
	}
	if durationDays < MinStakeDurationDays {
		return InvalidPayloadf("stake duration must be at least %d days", MinStakeDurationDays)
	}
	s.Amount = amount
	s.DurationDays = durationDays
	s.EndDate = s.StartDate.AddDate(0, 0, int(durationDays))
	s.UpdatedAt = now
	return nil
}

// CheckIn records daily activity against the stake. Consecutive-day
// check-ins extend the streak; a gap resets it to one.
func (s *NeuroStake) CheckIn(now time.Time) error {
	if s.Status != StakeActive {
		return InvalidInputf("cannot check in on a %s stake", s.Status)
	}
	if sameDay(s.LastCheckIn, now) {
		return InvalidInputf("already checked in today")
	}
	if sameDay(s.LastCheckIn.AddDate(0, 0, 1), now) {
		s.StreakDays++
	} else {
		s.StreakDays = 1
	}
	s.LastCheckIn = now
	s.UpdatedAt = now
	return nil
}

// Complete moves an active stake to its successful terminal state.
func (s *NeuroStake) Complete(now time.Time) error {
	if s.Status != StakeActive {
		return InvalidInputf("cannot complete a %s stake", s.Status)
	}
	s.Status = StakeCompleted
	s.UpdatedAt = now
	return nil
}

// Fail moves an active stake to its forfeited terminal state.
func (s *NeuroStake) Fail(now time.Time) error {
	if s.Status != StakeActive {
		return InvalidInputf("cannot fail a %s stake", s.Status)
	}
	s.Status = StakeFailed
	s.UpdatedAt = now
	return nil
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.UTC().Date()
	by, bm, bd := b.UTC().Date()
	return ay == by && am == bm && ad == bd
}
