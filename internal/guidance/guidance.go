// Package guidance labels a sizing plan against the account's goal and
// risk comfort bands. Verdicts are advisory only and never feed back
// into the sizing decision.
package guidance

import (
	"fmt"

	"github.com/eddiefleurent/schrute_sizer/internal/models"
)

// Level grades a verdict for display.
type Level string

const (
	// LevelOK means the plan sits inside the configured band.
	LevelOK Level = "ok"
	// LevelInfo flags something worth knowing, not worth changing.
	LevelInfo Level = "info"
	// LevelWarn flags a plan outside the configured comfort band.
	LevelWarn Level = "warn"
)

// Verdict is one advisory statement about a plan.
type Verdict struct {
	Level   Level  `json:"level"`
	Message string `json:"message"`
}

// Config holds the advisory thresholds.
type Config struct {
	MinGoalPct          float64
	MaxGoalPct          float64
	PrimaryLossCapPct   float64
	SecondaryLossCapPct float64
}

// Advisor reviews plans against a fixed set of thresholds.
type Advisor struct {
	cfg Config
}

// NewAdvisor returns an Advisor bound to the given thresholds.
func NewAdvisor(cfg Config) *Advisor {
	return &Advisor{cfg: cfg}
}

// Review produces the advisory verdicts for a plan: the net account
// gain checked against the goal band, and the gross account loss at the
// stop checked against the slot's soft cap.
func (a *Advisor) Review(plan models.Plan) []Verdict {
	var verdicts []Verdict

	gainNet := plan.AcctGainTPNet
	lossGross := plan.AcctLossStopGross

	if plan.Contracts == 0 || gainNet == 0 {
		verdicts = append(verdicts, Verdict{
			Level:   LevelInfo,
			Message: "this plan currently sizes to 0% account gain (probably 0 contracts)",
		})
	} else {
		switch {
		case gainNet < a.cfg.MinGoalPct:
			verdicts = append(verdicts, Verdict{
				Level: LevelInfo,
				Message: fmt.Sprintf("targets ~%.2f%% net account gain, below the %.2f%%+ guidance; fine for weaker setups or extra safety",
					gainNet, a.cfg.MinGoalPct),
			})
		case gainNet > a.cfg.MaxGoalPct:
			verdicts = append(verdicts, Verdict{
				Level: LevelWarn,
				Message: fmt.Sprintf("targets ~%.2f%% net account gain, above the %.2f%% per-trade guidance; consider fewer contracts or a lower target",
					gainNet, a.cfg.MaxGoalPct),
			})
		default:
			verdicts = append(verdicts, Verdict{
				Level: LevelOK,
				Message: fmt.Sprintf("targets ~%.2f%% net account gain, inside the %.2f%%-%.2f%% goal band",
					gainNet, a.cfg.MinGoalPct, a.cfg.MaxGoalPct),
			})
		}
	}

	if lossGross > 0 {
		softCap := a.lossCap(plan.Slot)
		if lossGross > softCap {
			verdicts = append(verdicts, Verdict{
				Level: LevelWarn,
				Message: fmt.Sprintf("stop would cost ~%.2f%% of the account, over the %.2f%% soft cap for the %s slot; consider fewer contracts or a tighter stop",
					lossGross, softCap, plan.Slot),
			})
		} else {
			verdicts = append(verdicts, Verdict{
				Level: LevelInfo,
				Message: fmt.Sprintf("account loss at stop is ~%.2f%%, within the %.2f%% soft cap for the %s slot",
					lossGross, softCap, plan.Slot),
			})
		}
	}

	return verdicts
}

func (a *Advisor) lossCap(slot models.TradeSlot) float64 {
	if slot == models.SlotSecondary {
		return a.cfg.SecondaryLossCapPct
	}
	return a.cfg.PrimaryLossCapPct
}
