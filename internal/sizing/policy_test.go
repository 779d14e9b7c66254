package sizing

import (
	"testing"

	"github.com/eddiefleurent/schrute_sizer/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestDeployAndRiskPercents(t *testing.T) {
	calc := NewCalculator(testConfig())

	tests := []struct {
		name       string
		balance    float64
		slot       models.TradeSlot
		wantDeploy float64
		wantRisk   float64
	}{
		{"small account primary", 467, models.SlotPrimary, 35, 2.0},
		{"small account secondary halves both", 467, models.SlotSecondary, 17.5, 1.0},
		{"tier boundary inclusive", 25000, models.SlotPrimary, 35, 2.0},
		{"second tier", 25001, models.SlotPrimary, 25, 1.8},
		{"third tier", 150000, models.SlotPrimary, 15, 1.5},
		{"unbounded tier", 1000000, models.SlotPrimary, 8, 1.2},
		{"unbounded tier secondary", 1000000, models.SlotSecondary, 4, 0.6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.wantDeploy, calc.deployPercent(tt.balance, tt.slot), 1e-12)
			assert.InDelta(t, tt.wantRisk, calc.riskPercent(tt.balance, tt.slot), 1e-12)
		})
	}
}

func TestTierPercentsNonIncreasingInBalance(t *testing.T) {
	calc := NewCalculator(testConfig())

	balances := []float64{100, 5000, 24999, 25000, 25001, 99999, 100001, 299999, 300001, 2000000}
	for i := 1; i < len(balances); i++ {
		lo, hi := balances[i-1], balances[i]
		assert.GreaterOrEqual(t, calc.deployPercent(lo, models.SlotPrimary), calc.deployPercent(hi, models.SlotPrimary),
			"deploy percent must not grow with balance (%.0f vs %.0f)", lo, hi)
		assert.GreaterOrEqual(t, calc.riskPercent(lo, models.SlotPrimary), calc.riskPercent(hi, models.SlotPrimary),
			"risk percent must not grow with balance (%.0f vs %.0f)", lo, hi)
	}
}

func TestStopLossPercent(t *testing.T) {
	calc := NewCalculator(testConfig())

	// Primary ignores the entry price entirely.
	assert.InDelta(t, 30.0, calc.stopLossPercent(models.SlotPrimary, 0.10), 1e-12)
	assert.InDelta(t, 30.0, calc.stopLossPercent(models.SlotPrimary, 5.00), 1e-12)

	// Secondary subtracts the bracket tightening from its base.
	tests := []struct {
		entry float64
		want  float64
	}{
		{0.10, 20.0}, // 24 - 4
		{0.25, 20.0}, // boundary inclusive
		{0.30, 21.0}, // 24 - 3
		{0.40, 22.0}, // 24 - 2
		{0.80, 24.0}, // no tightening
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, calc.stopLossPercent(models.SlotSecondary, tt.entry), 1e-12, "entry %.2f", tt.entry)
	}
}

func TestStopLossPercentClamped(t *testing.T) {
	cfg := testConfig()
	cfg.SecondaryStopBasePct = 12.0 // base below the floor after any tightening
	assert.InDelta(t, 15.0, NewCalculator(cfg).stopLossPercent(models.SlotSecondary, 0.80), 1e-12)

	cfg = testConfig()
	cfg.SecondaryStopBasePct = 40.0
	assert.InDelta(t, 26.0, NewCalculator(cfg).stopLossPercent(models.SlotSecondary, 0.80), 1e-12)
}

func TestSizingStopPercent(t *testing.T) {
	calc := NewCalculator(testConfig())

	// Secondary risk budgeting uses the primary stop under the floor.
	assert.InDelta(t, 30.0, calc.sizingStopPercent(models.SlotSecondary, 0.20), 1e-12)
	assert.InDelta(t, 30.0, calc.sizingStopPercent(models.SlotPrimary, 0.20), 1e-12)

	cfg := testConfig()
	cfg.SecondaryRiskFloor = false
	assert.InDelta(t, 20.0, NewCalculator(cfg).sizingStopPercent(models.SlotSecondary, 0.20), 1e-12)
}
