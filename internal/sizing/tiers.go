package sizing

// Tier pairs an upper bound with the percentage that applies at or
// below it. Tables are ordered by strictly increasing ceiling; a
// non-positive ceiling marks the unbounded final tier.
type Tier struct {
	Ceiling float64
	Percent float64
}

// lookupTier returns the percent of the first tier whose ceiling covers
// value. Exhausting the table without a match (a finite final ceiling
// that value exceeds) falls back to the last tier's percent.
func lookupTier(value float64, tiers []Tier) float64 {
	for _, t := range tiers {
		if t.Ceiling <= 0 || value <= t.Ceiling {
			return t.Percent
		}
	}
	if len(tiers) == 0 {
		return 0
	}
	return tiers[len(tiers)-1].Percent
}
