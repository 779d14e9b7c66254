// Package sizing computes position-sizing and exit-level plans for
// single options trades. The calculator is a pure function of its
// inputs: no I/O, no shared state, identical inputs yield identical
// plans.
package sizing

import (
	"fmt"
	"math"

	"github.com/eddiefleurent/schrute_sizer/internal/models"
	"github.com/eddiefleurent/schrute_sizer/internal/util"
)

// Config holds the immutable sizing policy. Built once at startup and
// passed in; the calculator never mutates it.
type Config struct {
	Multiplier float64 // shares per contract, 100 for equity options
	Tick       float64 // minimum price increment

	DeployTiers []Tier // balance-keyed percent of account deployed
	RiskTiers   []Tier // balance-keyed percent of account at risk

	PrimaryStopPct       float64
	SecondaryStopBasePct float64
	SecondaryTightening  []Tier // entry-price-keyed subtraction from the base
	SecondaryStopMinPct  float64
	SecondaryStopMaxPct  float64

	// SecondaryRiskFloor sizes the secondary slot's risk budget against
	// the primary stop percent instead of its own tighter stop.
	SecondaryRiskFloor bool

	// TPCapPct excludes candidates whose effective take-profit percent
	// on premium exceeds it. Zero disables the cap.
	TPCapPct float64
}

// Calculator evaluates trade requests against a fixed sizing policy.
type Calculator struct {
	cfg Config
}

// NewCalculator returns a Calculator bound to the given policy.
func NewCalculator(cfg Config) *Calculator {
	return &Calculator{cfg: cfg}
}

// Evaluate computes the sizing plan for one request. It never fails:
// degenerate inputs degrade to a zero plan with diagnostics populated.
func (c *Calculator) Evaluate(req models.Request) models.Plan {
	deployPct := c.deployPercent(req.Balance, req.Slot)
	riskPct := c.riskPercent(req.Balance, req.Slot)
	stopPct := c.stopLossPercent(req.Slot, req.EntryPrice)

	deployBudget := req.Balance * deployPct / 100.0
	riskBudget := req.Balance * riskPct / 100.0

	costPerContract := req.EntryPrice * c.cfg.Multiplier
	stopPrice := req.EntryPrice * (1.0 - stopPct/100.0)

	// Risk sizing may use a wider stop than the one displayed.
	sizingStopPct := c.sizingStopPercent(req.Slot, req.EntryPrice)
	sizingStopPrice := req.EntryPrice * (1.0 - sizingStopPct/100.0)
	lossPerContract := (req.EntryPrice - sizingStopPrice) * c.cfg.Multiplier

	maxByDeploy := 0
	if costPerContract > 0 {
		maxByDeploy = int(math.Floor(deployBudget / costPerContract))
	}
	maxByRisk := 0
	if lossPerContract > 0 {
		maxByRisk = int(math.Floor(riskBudget / lossPerContract))
	}
	maxContracts := maxByDeploy
	if maxByRisk < maxContracts {
		maxContracts = maxByRisk
	}
	if maxContracts < 0 {
		maxContracts = 0
	}

	plan := models.Plan{
		DeployPct:       deployPct,
		RiskPct:         riskPct,
		StopLossPct:     stopPct,
		TPPrice:         req.EntryPrice,
		StopPrice:       stopPrice,
		DeployBudget:    deployBudget,
		RiskBudget:      riskBudget,
		CostPerContract: costPerContract,
		MaxByDeploy:     maxByDeploy,
		MaxByRisk:       maxByRisk,
		EntryPrice:      req.EntryPrice,
		Slot:            req.Slot,
		TargetGainPct:   req.TargetGainPct,
	}

	if maxContracts == 0 {
		return plan
	}

	best, capped, ok := c.search(req, stopPrice, maxContracts)
	if !ok {
		if capped {
			return c.cappedFallback(req, plan, stopPrice, maxContracts)
		}
		return plan
	}

	c.fill(&plan, req, best, stopPrice)
	return plan
}

// candidate is one contract count considered during the search. Only
// the best-scoring candidate survives into the plan.
type candidate struct {
	contracts      int
	tpPrice        float64
	tpPctEffective float64
	diff           float64
}

// search scans every contract count from 1 to maxContracts and keeps
// the one whose net account gain lands closest to the target. Ties go
// to the lower count because the scan ascends with a strict-less
// comparison. The capped result reports whether the take-profit cap
// excluded at least one otherwise valid candidate.
func (c *Calculator) search(req models.Request, stopPrice float64, maxContracts int) (best candidate, capped bool, ok bool) {
	for n := 1; n <= maxContracts; n++ {
		tpPctRaw, valid := c.tpPercentForTarget(req, n)
		if !valid {
			continue
		}

		tpPrice := util.RoundToTick(req.EntryPrice*(1.0+tpPctRaw/100.0), c.cfg.Tick)
		tpPrice = util.EnsureAboveEntry(tpPrice, req.EntryPrice, c.cfg.Tick)

		// Rounding shifts the realized percent away from the raw target.
		tpPctEffective := (tpPrice/req.EntryPrice - 1.0) * 100.0

		if c.cfg.TPCapPct > 0 && tpPctEffective > c.cfg.TPCapPct {
			capped = true
			continue
		}

		netProfit := c.netProfitAt(req, n, tpPrice)
		acctGainNet := netProfit / req.Balance * 100.0
		diff := math.Abs(acctGainNet - req.TargetGainPct)

		if !ok || diff < best.diff {
			best = candidate{
				contracts:      n,
				tpPrice:        tpPrice,
				tpPctEffective: tpPctEffective,
				diff:           diff,
			}
			ok = true
		}
	}
	return best, capped, ok
}

// tpPercentForTarget solves the gross take-profit percent on premium
// that nets the target account gain after round-trip fees. Returns
// false on any non-positive denominator term.
func (c *Calculator) tpPercentForTarget(req models.Request, contracts int) (float64, bool) {
	if contracts <= 0 || req.Balance <= 0 || req.EntryPrice <= 0 {
		return 0, false
	}
	profitGoalNet := req.Balance * (req.TargetGainPct / 100.0)
	profitGoalGross := profitGoalNet + c.roundTripFees(req.FeePerContract, contracts)

	denom := req.EntryPrice * c.cfg.Multiplier * float64(contracts)
	if denom <= 0 {
		return 0, false
	}
	return (profitGoalGross / denom) * 100.0, true
}

// roundTripFees estimates total fees for a buy plus a sell. The fee
// input is per contract per side.
func (c *Calculator) roundTripFees(feePerContract float64, contracts int) float64 {
	return feePerContract * float64(contracts) * 2.0
}

// netProfitAt is the dollar profit at the given take-profit price after
// estimated round-trip fees.
func (c *Calculator) netProfitAt(req models.Request, contracts int, tpPrice float64) float64 {
	gross := (tpPrice - req.EntryPrice) * c.cfg.Multiplier * float64(contracts)
	return gross - c.roundTripFees(req.FeePerContract, contracts)
}

// fill completes the plan from the winning candidate.
func (c *Calculator) fill(plan *models.Plan, req models.Request, best candidate, stopPrice float64) {
	n := best.contracts
	plan.Contracts = n
	plan.TPPrice = best.tpPrice
	plan.TPPctEffective = best.tpPctEffective
	plan.PositionCost = float64(n) * plan.CostPerContract
	plan.GrossProfitTP = (best.tpPrice - req.EntryPrice) * c.cfg.Multiplier * float64(n)
	plan.GrossLossStop = (req.EntryPrice - stopPrice) * c.cfg.Multiplier * float64(n)
	plan.TotalFeesEst = c.roundTripFees(req.FeePerContract, n)
	plan.NetProfitTP = plan.GrossProfitTP - plan.TotalFeesEst

	if req.Balance > 0 {
		plan.AcctGainTPGross = plan.GrossProfitTP / req.Balance * 100.0
		plan.AcctLossStopGross = plan.GrossLossStop / req.Balance * 100.0
		plan.AcctGainTPNet = plan.NetProfitTP / req.Balance * 100.0
	}
}

// cappedFallback builds the best-effort plan reported when the
// take-profit cap excluded every candidate: maximum size, exit capped
// at the highest allowed price, flagged infeasible.
func (c *Calculator) cappedFallback(req models.Request, plan models.Plan, stopPrice float64, maxContracts int) models.Plan {
	tpPrice := util.RoundToTick(req.EntryPrice*(1.0+c.cfg.TPCapPct/100.0), c.cfg.Tick)
	tpPrice = util.EnsureAboveEntry(tpPrice, req.EntryPrice, c.cfg.Tick)

	best := candidate{
		contracts:      maxContracts,
		tpPrice:        tpPrice,
		tpPctEffective: (tpPrice/req.EntryPrice - 1.0) * 100.0,
	}
	c.fill(&plan, req, best, stopPrice)
	plan.Infeasible = true
	plan.Note = fmt.Sprintf(
		"target %.2f%% net account gain is unreachable under the %.2f%% take-profit cap; best attainable is %.2f%% at %d contracts",
		req.TargetGainPct, c.cfg.TPCapPct, plan.AcctGainTPNet, maxContracts)
	return plan
}
