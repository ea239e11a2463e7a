package domain

import "time"

// NFT rarity tiers, ordered from most to least common.
const (
	RarityCommon    = "common"
	RarityRare      = "rare"
	RarityEpic      = "epic"
	RarityLegendary = "legendary"
)

// ValidRarity reports whether v is a recognized rarity tier.
func ValidRarity(v string) bool {
	switch v {
	case RarityCommon, RarityRare, RarityEpic, RarityLegendary:
		return true
	}
	return false
}

// GenesisNFT is the one-per-user membership token minted at onboarding.
type GenesisNFT struct {
	ID           string            `json:"id"`
	UserID       Principal         `json:"user_id"`
	TokenID      uint64            `json:"token_id"`
	Metadata     map[string]string `json:"metadata"`
	Rarity       string            `json:"rarity"`
	MintedAt     time.Time         `json:"minted_at"`
	IsStakeBoost bool              `json:"is_stake_boost"`
	BoostFactor  float64           `json:"boost_factor"`
}

// SkillNFT is an achievement token minted when a user masters a skill.
type SkillNFT struct {
	ID           string            `json:"id"`
	UserID       Principal         `json:"user_id"`
	SkillID      string            `json:"skill_id"`
	TokenID      uint64            `json:"token_id"`
	MasteryLevel string            `json:"mastery_level"`
	Metadata     map[string]string `json:"metadata"`
	Rarity       string            `json:"rarity"`
	MintedAt     time.Time         `json:"minted_at"`
}
