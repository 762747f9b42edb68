package core

// Tier is an asteroid size class. Larger tiers split into smaller ones.
type Tier int

const (
	TierSmall Tier = iota
	TierMedium
	TierLarge
)

// String returns the lowercase tier name.
func (t Tier) String() string {
	switch t {
	case TierSmall:
		return "small"
	case TierMedium:
		return "medium"
	case TierLarge:
		return "large"
	default:
		return "unknown"
	}
}

// Smaller returns the next tier down. ok is false for TierSmall.
func (t Tier) Smaller() (next Tier, ok bool) {
	if t <= TierSmall || t > TierLarge {
		return t, false
	}
	return t - 1, true
}

// Weight is the tier's share of the asteroid population cap.
func (t Tier) Weight() int {
	switch t {
	case TierLarge:
		return 4
	case TierMedium:
		return 2
	default:
		return 1
	}
}
