package domain

// MasteryLevel is a tiered label derived purely from an XP threshold table.
type MasteryLevel string

const (
	MasteryBeginner     MasteryLevel = "beginner"
	MasteryIntermediate MasteryLevel = "intermediate"
	MasteryAdvanced     MasteryLevel = "advanced"
	MasteryExpert       MasteryLevel = "expert"
)

// XP thresholds: each tier spans 250 XP, expert is open-ended.
const (
	xpIntermediate = 250
	xpAdvanced     = 500
	xpExpert       = 750
	tierSpan       = 250
)

// ValidMastery reports whether the label is one of the four tiers.
func ValidMastery(m MasteryLevel) bool {
	switch m {
	case MasteryBeginner, MasteryIntermediate, MasteryAdvanced, MasteryExpert:
		return true
	}
	return false
}

// MasteryForXP maps total XP onto a tier:
// 0-249 beginner, 250-499 intermediate, 500-749 advanced, 750+ expert.
func MasteryForXP(xp uint64) MasteryLevel {
	switch {
	case xp < xpIntermediate:
		return MasteryBeginner
	case xp < xpAdvanced:
		return MasteryIntermediate
	case xp < xpExpert:
		return MasteryAdvanced
	default:
		return MasteryExpert
	}
}

// ProgressForXP maps total XP onto a 0-100 percentage. Within the beginner
// tier the percentage tracks progress toward intermediate; the upper tiers
// each contribute a 25-point band, scaled linearly within the tier.
func ProgressForXP(xp uint64) uint64 {
	switch {
	case xp < xpIntermediate:
		return xp * 100 / tierSpan
	case xp < xpAdvanced:
		return 25 + (xp-xpIntermediate)*25/tierSpan
	case xp < xpExpert:
		return 50 + (xp-xpAdvanced)*25/tierSpan
	default:
		over := (xp - xpExpert) * 25 / tierSpan
		if over > 25 {
			over = 25
		}
		return 75 + over
	}
}
