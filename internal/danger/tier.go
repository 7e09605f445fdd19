package danger

// Tier buckets a danger level into a coarse label for reports and logs.
type Tier int

const (
	TierSafe Tier = iota
	TierLow
	TierModerate
	TierHigh
	TierSevere
	TierDeadly
)

func (t Tier) String() string {
	switch t {
	case TierSafe:
		return "Safe"
	case TierLow:
		return "Low"
	case TierModerate:
		return "Moderate"
	case TierHigh:
		return "High"
	case TierSevere:
		return "Severe"
	case TierDeadly:
		return "Deadly"
	default:
		return "Unknown"
	}
}

// TierFor maps a danger level onto a tier relative to the configured scale
// maximum. Anything past the scale top is Deadly.
func (c *Calculator) TierFor(level float64) Tier {
	if level <= 0 {
		return TierSafe
	}
	max := float64(c.cfg.ScaleMax)
	switch {
	case level < max*0.2:
		return TierLow
	case level < max*0.4:
		return TierModerate
	case level < max*0.6:
		return TierHigh
	case level < max*0.8:
		return TierSevere
	default:
		return TierDeadly
	}
}
