// Package report renders sizing plans as copy-ready text.
package report

import (
	"fmt"
	"strings"

	"github.com/eddiefleurent/schrute_sizer/internal/models"
)

// CopyLine flattens a plan into a single pipe-separated line suitable
// for pasting into a trade journal or chat.
func CopyLine(p models.Plan) string {
	return fmt.Sprintf(
		"ENTRY $%.2f | CONTRACTS %d | TP $%.2f (TP%% on premium %.2f) | SL $%.2f (SL%% %.1f) | "+
			"POS COST $%.2f | GROSS P@TP $%.2f | L@SL $%.2f | FEES ~$%.2f | NET P@TP $%.2f | NET ACCT GAIN %.2f%%",
		p.EntryPrice, p.Contracts, p.TPPrice, p.TPPctEffective, p.StopPrice, p.StopLossPct,
		p.PositionCost, p.GrossProfitTP, p.GrossLossStop, p.TotalFeesEst, p.NetProfitTP, p.AcctGainTPNet)
}

// Breakdown renders a multi-line human-readable summary of the plan,
// including the budget diagnostics that explain a zero sizing.
func Breakdown(p models.Plan) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s trade @ $%.2f, target %.2f%% net account gain\n", p.Slot, p.EntryPrice, p.TargetGainPct)
	fmt.Fprintf(&b, "  contracts:       %d (position cost $%.2f)\n", p.Contracts, p.PositionCost)
	fmt.Fprintf(&b, "  take profit:     $%.2f (%.2f%% on premium)\n", p.TPPrice, p.TPPctEffective)
	fmt.Fprintf(&b, "  stop loss:       $%.2f (%.1f%% on premium)\n", p.StopPrice, p.StopLossPct)
	fmt.Fprintf(&b, "  P&L at TP:       $%.2f gross, $%.2f net after ~$%.2f fees\n", p.GrossProfitTP, p.NetProfitTP, p.TotalFeesEst)
	fmt.Fprintf(&b, "  loss at SL:      $%.2f\n", p.GrossLossStop)
	fmt.Fprintf(&b, "  account impact:  +%.2f%% net at TP, -%.2f%% gross at SL\n", p.AcctGainTPNet, p.AcctLossStopGross)
	fmt.Fprintf(&b, "  budgets:         deploy $%.2f (%.1f%%), risk $%.2f (%.1f%%)\n", p.DeployBudget, p.DeployPct, p.RiskBudget, p.RiskPct)
	fmt.Fprintf(&b, "  limits:          %d by deploy, %d by risk at $%.2f/contract\n", p.MaxByDeploy, p.MaxByRisk, p.CostPerContract)

	if p.Contracts == 0 {
		b.WriteString("  no contracts fit the deploy/risk rules at this entry price\n")
	}
	if p.Note != "" {
		fmt.Fprintf(&b, "  note: %s\n", p.Note)
	}

	return b.String()
}
