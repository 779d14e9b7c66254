package report

import (
	"testing"

	"github.com/eddiefleurent/schrute_sizer/internal/models"
	"github.com/stretchr/testify/assert"
)

func samplePlan() models.Plan {
	return models.Plan{
		Contracts:         1,
		DeployPct:         35,
		RiskPct:           2,
		StopLossPct:       30,
		TPPrice:           0.29,
		StopPrice:         0.17,
		TPPctEffective:    16.0,
		PositionCost:      25,
		GrossProfitTP:     4.00,
		GrossLossStop:     7.50,
		TotalFeesEst:      0.08,
		NetProfitTP:       3.92,
		AcctGainTPGross:   0.86,
		AcctLossStopGross: 1.61,
		AcctGainTPNet:     0.84,
		DeployBudget:      163.45,
		RiskBudget:        9.34,
		CostPerContract:   25,
		MaxByDeploy:       6,
		MaxByRisk:         1,
		EntryPrice:        0.25,
		Slot:              models.SlotPrimary,
		TargetGainPct:     0.80,
	}
}

func TestCopyLine(t *testing.T) {
	line := CopyLine(samplePlan())

	assert.Equal(t,
		"ENTRY $0.25 | CONTRACTS 1 | TP $0.29 (TP% on premium 16.00) | SL $0.17 (SL% 30.0) | "+
			"POS COST $25.00 | GROSS P@TP $4.00 | L@SL $7.50 | FEES ~$0.08 | NET P@TP $3.92 | NET ACCT GAIN 0.84%",
		line)
}

func TestBreakdown(t *testing.T) {
	out := Breakdown(samplePlan())

	assert.Contains(t, out, "primary trade @ $0.25")
	assert.Contains(t, out, "contracts:       1")
	assert.Contains(t, out, "take profit:     $0.29")
	assert.Contains(t, out, "6 by deploy, 1 by risk")
	assert.NotContains(t, out, "no contracts fit")
}

func TestBreakdownZeroPlan(t *testing.T) {
	plan := models.Plan{
		Slot:          models.SlotSecondary,
		EntryPrice:    4.20,
		TPPrice:       4.20,
		StopPrice:     3.19,
		DeployBudget:  81.73,
		RiskBudget:    4.67,
		TargetGainPct: 0.40,
	}

	out := Breakdown(plan)
	assert.Contains(t, out, "no contracts fit")
	assert.Contains(t, out, "secondary trade @ $4.20")
}

func TestBreakdownIncludesNote(t *testing.T) {
	plan := samplePlan()
	plan.Infeasible = true
	plan.Note = "target unreachable under the cap"

	assert.Contains(t, Breakdown(plan), "note: target unreachable under the cap")
}
