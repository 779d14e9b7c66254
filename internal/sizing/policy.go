package sizing

import (
	"math"

	"github.com/eddiefleurent/schrute_sizer/internal/models"
)

// deployPercent resolves the percent of balance committed to the
// trade's purchase cost. The secondary slot gets half the tier value.
func (c *Calculator) deployPercent(balance float64, slot models.TradeSlot) float64 {
	base := lookupTier(balance, c.cfg.DeployTiers)
	if slot == models.SlotSecondary {
		return base / 2.0
	}
	return base
}

// riskPercent resolves the percent of balance the account may lose at
// the stop. Halved for the secondary slot, independently of the stop
// tightening below, so the secondary trade never out-risks the primary.
func (c *Calculator) riskPercent(balance float64, slot models.TradeSlot) float64 {
	base := lookupTier(balance, c.cfg.RiskTiers)
	if slot == models.SlotSecondary {
		return base / 2.0
	}
	return base
}

// stopLossPercent returns the stop distance as a percent of premium.
// The primary slot uses a fixed percent. The secondary slot starts from
// its own base, subtracts a tightening amount keyed on entry price
// (cheap contracts swing a larger percent on small absolute moves, so
// their stop must sit tighter to keep dollar risk comparable), then
// clamps into the configured band.
func (c *Calculator) stopLossPercent(slot models.TradeSlot, entryPrice float64) float64 {
	if slot != models.SlotSecondary {
		return c.cfg.PrimaryStopPct
	}
	pct := c.cfg.SecondaryStopBasePct - lookupTier(entryPrice, c.cfg.SecondaryTightening)
	return math.Max(c.cfg.SecondaryStopMinPct, math.Min(c.cfg.SecondaryStopMaxPct, pct))
}

// sizingStopPercent returns the stop percent used for risk budgeting.
// With the anti-gaming floor enabled, the secondary slot sizes against
// the primary stop even though its displayed stop is tighter; otherwise
// tightening the stop would let the sizer admit more contracts.
func (c *Calculator) sizingStopPercent(slot models.TradeSlot, entryPrice float64) float64 {
	if slot == models.SlotSecondary && c.cfg.SecondaryRiskFloor {
		return c.cfg.PrimaryStopPct
	}
	return c.stopLossPercent(slot, entryPrice)
}
