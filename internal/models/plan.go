// Package models defines the trade request and sizing plan records.
package models

import "fmt"

// TradeSlot identifies which of the two per-period trade allowances a
// request is sizing. The secondary slot is deliberately smaller: half
// deploy budget, half risk budget, and a tighter stop.
type TradeSlot int

const (
	// SlotPrimary is the main trade of the period.
	SlotPrimary TradeSlot = 1
	// SlotSecondary is the reduced-size second trade of the period.
	SlotSecondary TradeSlot = 2
)

// Valid returns true if the TradeSlot is one of the defined constants.
func (s TradeSlot) Valid() bool {
	switch s {
	case SlotPrimary, SlotSecondary:
		return true
	default:
		return false
	}
}

func (s TradeSlot) String() string {
	switch s {
	case SlotPrimary:
		return "primary"
	case SlotSecondary:
		return "secondary"
	default:
		return fmt.Sprintf("slot(%d)", int(s))
	}
}

// Request carries the five user-supplied inputs for one evaluation.
// Requests have no identity and no lifecycle beyond the single call.
type Request struct {
	Balance        float64   `json:"balance"`
	EntryPrice     float64   `json:"entry_price"`
	Slot           TradeSlot `json:"trade_slot"`
	TargetGainPct  float64   `json:"target_gain_pct"`
	FeePerContract float64   `json:"fee_per_contract"` // per contract, per side
}

// Validate checks the request against plausible input ranges. The
// allowed target band is configuration, so the caller supplies it.
func (r *Request) Validate(minGoalPct, maxGoalPct float64) error {
	if r.Balance < 0 {
		return fmt.Errorf("balance must be >= 0")
	}
	if r.EntryPrice <= 0 {
		return fmt.Errorf("entry_price must be > 0")
	}
	if !r.Slot.Valid() {
		return fmt.Errorf("trade_slot must be 1 (primary) or 2 (secondary)")
	}
	if r.TargetGainPct < minGoalPct || r.TargetGainPct > maxGoalPct {
		return fmt.Errorf("target_gain_pct must be between %.2f and %.2f", minGoalPct, maxGoalPct)
	}
	if r.FeePerContract < 0 {
		return fmt.Errorf("fee_per_contract must be >= 0")
	}
	return nil
}

// Plan is the fully-determined result of one sizing evaluation. A zero
// plan (Contracts == 0) zeroes every monetary and percentage field but
// still reports the budgets and per-constraint contract limits so the
// caller can explain why sizing failed.
type Plan struct {
	Contracts int `json:"contracts"`

	// Percentages applied, resolved from balance tiers and slot.
	DeployPct   float64 `json:"deploy_pct"`
	RiskPct     float64 `json:"risk_pct"`
	StopLossPct float64 `json:"stop_loss_pct"`

	// Exit levels and realized take-profit percent after tick rounding.
	TPPrice        float64 `json:"tp_price"`
	StopPrice      float64 `json:"stop_price"`
	TPPctEffective float64 `json:"tp_pct_effective"`

	// Position-level dollars.
	PositionCost  float64 `json:"position_cost"`
	GrossProfitTP float64 `json:"gross_profit_tp"`
	GrossLossStop float64 `json:"gross_loss_stop"`
	TotalFeesEst  float64 `json:"total_fees_est"`
	NetProfitTP   float64 `json:"net_profit_tp"`

	// Account-level impact, as percent of balance.
	AcctGainTPGross   float64 `json:"acct_gain_tp_gross"`
	AcctLossStopGross float64 `json:"acct_loss_stop_gross"`
	AcctGainTPNet     float64 `json:"acct_gain_tp_net"`

	// Sizing diagnostics, populated even on a zero plan.
	DeployBudget    float64 `json:"deploy_budget"`
	RiskBudget      float64 `json:"risk_budget"`
	CostPerContract float64 `json:"cost_per_contract"`
	MaxByDeploy     int     `json:"max_by_deploy"`
	MaxByRisk       int     `json:"max_by_risk"`

	// Infeasible marks a best-effort plan returned when the take-profit
	// cap excludes every candidate; Note explains what is attainable.
	Infeasible bool   `json:"infeasible,omitempty"`
	Note       string `json:"note,omitempty"`

	// Echo of the request, so the plan is self-contained for reporting.
	EntryPrice    float64   `json:"entry_price"`
	Slot          TradeSlot `json:"trade_slot"`
	TargetGainPct float64   `json:"target_gain_pct"`
}
