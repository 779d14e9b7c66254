package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/eddiefleurent/schrute_sizer/internal/config"
	"github.com/eddiefleurent/schrute_sizer/internal/guidance"
	"github.com/eddiefleurent/schrute_sizer/internal/models"
	"github.com/eddiefleurent/schrute_sizer/internal/report"
	"github.com/eddiefleurent/schrute_sizer/internal/server"
	"github.com/eddiefleurent/schrute_sizer/internal/sizing"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

func main() {
	var (
		configPath string
		serve      bool
		port       int
		balance    float64
		entry      float64
		trade      int
		target     float64
		fee        float64
	)
	flag.StringVar(&configPath, "config", "", "Path to configuration file (built-in defaults when empty)")
	flag.BoolVar(&serve, "serve", false, "Run the HTTP API instead of a one-shot evaluation")
	flag.IntVar(&port, "port", 0, "Override the configured API port")
	flag.Float64Var(&balance, "balance", 467.00, "Account balance ($)")
	flag.Float64Var(&entry, "entry", 0.25, "Entry price (option premium)")
	flag.IntVar(&trade, "trade", 1, "Trade slot: 1 = primary, 2 = secondary")
	flag.Float64Var(&target, "target", 0.80, "Target net account gain (%)")
	flag.Float64Var(&fee, "fee", 0.04, "Estimated fee per contract per side ($)")
	flag.Parse()

	logger := logrus.New()

	cfg := config.Default()
	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			logger.Fatalf("Failed to load config: %v", err)
		}
		cfg = loaded
	}

	if level, err := logrus.ParseLevel(cfg.Environment.LogLevel); err == nil {
		logger.SetLevel(level)
	}

	calc := sizing.NewCalculator(sizingConfig(cfg))
	advisor := guidance.NewAdvisor(guidance.Config{
		MinGoalPct:          cfg.Guidance.MinGoalPct,
		MaxGoalPct:          cfg.Guidance.MaxGoalPct,
		PrimaryLossCapPct:   cfg.Guidance.PrimaryLossCapPct,
		SecondaryLossCapPct: cfg.Guidance.SecondaryLossCapPct,
	})

	if serve {
		if port == 0 {
			port = cfg.Server.Port
		}
		runServer(cfg, calc, advisor, logger, port)
		return
	}

	req := models.Request{
		Balance:        balance,
		EntryPrice:     entry,
		Slot:           models.TradeSlot(trade),
		TargetGainPct:  target,
		FeePerContract: fee,
	}
	if err := req.Validate(cfg.Guidance.MinGoalPct, cfg.Guidance.MaxGoalPct); err != nil {
		logger.Fatalf("Invalid inputs: %v", err)
	}

	plan := calc.Evaluate(req)

	fmt.Print(report.Breakdown(plan))
	for _, v := range advisor.Review(plan) {
		fmt.Printf("  [%s] %s\n", v.Level, v.Message)
	}
	fmt.Println()
	fmt.Println(report.CopyLine(plan))
}

func runServer(cfg *config.Config, calc *sizing.Calculator, advisor *guidance.Advisor, logger *logrus.Logger, port int) {
	srv := server.NewServer(server.Config{
		Port:       port,
		AuthToken:  cfg.Server.AuthToken,
		MinGoalPct: cfg.Guidance.MinGoalPct,
		MaxGoalPct: cfg.Guidance.MaxGoalPct,
	}, calc, advisor, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Fatalf("Server error: %v", err)
	}
	logger.Info("Server stopped")
}

// sizingConfig maps the yaml configuration onto the calculator policy.
func sizingConfig(cfg *config.Config) sizing.Config {
	return sizing.Config{
		Multiplier:           cfg.Sizing.Multiplier,
		Tick:                 cfg.Sizing.Tick,
		DeployTiers:          tiers(cfg.Sizing.DeployTiers),
		RiskTiers:            tiers(cfg.Sizing.RiskTiers),
		PrimaryStopPct:       cfg.Sizing.PrimaryStopPct,
		SecondaryStopBasePct: cfg.Sizing.SecondaryStopBasePct,
		SecondaryTightening:  tiers(cfg.Sizing.SecondaryTightening),
		SecondaryStopMinPct:  cfg.Sizing.SecondaryStopMinPct,
		SecondaryStopMaxPct:  cfg.Sizing.SecondaryStopMaxPct,
		SecondaryRiskFloor:   cfg.Sizing.SecondaryRiskFloor,
		TPCapPct:             cfg.Sizing.TPCapPct,
	}
}

func tiers(in []config.Tier) []sizing.Tier {
	out := make([]sizing.Tier, len(in))
	for i, t := range in {
		out[i] = sizing.Tier{Ceiling: t.Ceiling, Percent: t.Percent}
	}
	return out
}
