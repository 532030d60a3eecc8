// Package payload builds deterministic simulation responses for the mock
// engine. The numbers follow a simple closed-form runway model, not a real
// Monte-Carlo run; the point is exercising the full response shape offline.
package payload

import (
	"math"
	"math/rand"
	"time"

	"runway-dss/internal/engine"
)

// Config selects the shape of the generated response.
type Config struct {
	Scenario string // healthy, stressed
	Seed     int64
}

// Build produces a complete response honoring the request's horizon and run
// count. Identical requests and seeds produce identical responses.
func Build(req *engine.SimulationRequest, cfg Config) *engine.SimulationResponse {
	rng := rand.New(rand.NewSource(cfg.Seed))

	horizon := req.TimeHorizon
	if horizon <= 0 {
		horizon = 36
	}
	runs := req.NSimulations
	if runs <= 0 {
		runs = 500
	}

	capital := req.InitialCapital.Params["mode"]
	if capital <= 0 {
		capital = 5000
	}
	burn := req.DevBurn.Params["mode"]
	if burn <= 0 {
		burn = 200
	}

	stressed := cfg.Scenario == "stressed"

	growth := 0.04
	if stressed {
		growth = -0.015
	}

	percentiles := make([]engine.PathPercentile, horizon+1)
	median := make([]float64, horizon+1)
	for m := 0; m <= horizon; m++ {
		// Burn through development, then compound.
		p50 := capital - burn*math.Min(float64(m), 6)
		if m > 6 {
			p50 *= math.Pow(1+growth, float64(m-6))
		}
		if p50 < 0 {
			p50 = 0
		}
		spread := 0.02 * float64(m) * p50
		jitter := 1 + 0.01*rng.Float64()

		percentiles[m] = engine.PathPercentile{
			Month: m,
			P5:    math.Max(0, (p50-2*spread)*jitter),
			P25:   math.Max(0, (p50-spread)*jitter),
			P50:   p50 * jitter,
			P75:   (p50 + spread) * jitter,
			P95:   (p50 + 2*spread) * jitter,
		}
		median[m] = percentiles[m].P50
	}

	summary := &engine.SummaryStats{
		ProbProfit:      0.78,
		ProbDouble:      0.41,
		ProbRuin:        0.04,
		ReturnMean:      0.62,
		ReturnMedian:    0.55,
		ReturnStd:       0.40,
		ReturnP5:        -0.35,
		ReturnP95:       1.80,
		MaxDrawdownMean: 0.22,
		MaxDrawdownP95:  0.45,
		BreakevenRate:   0.81,
		Recommendation:  "GO",
	}
	breakeven := 14.0
	failureRate := 0.08
	if stressed {
		summary = &engine.SummaryStats{
			ProbProfit:      0.38,
			ProbDouble:      0.12,
			ProbRuin:        0.27,
			ReturnMean:      -0.18,
			ReturnMedian:    -0.25,
			ReturnStd:       0.55,
			ReturnP5:        -0.90,
			ReturnP95:       0.60,
			MaxDrawdownMean: 0.58,
			MaxDrawdownP95:  0.92,
			BreakevenRate:   0.31,
			Recommendation:  "NO-GO",
		}
		breakeven = 29.0
		failureRate = 0.41
	}
	summary.BreakevenMean = &breakeven

	ruin := int(float64(runs) * summary.ProbRuin)
	double := int(float64(runs) * summary.ProbDouble)
	profitable := int(float64(runs)*summary.ProbProfit) - double
	loss := runs - double - profitable - ruin

	medianFailure := breakeven + 4

	premortem := &engine.Premortem{
		FailureDefinition:  "capital exhausted before breakeven",
		FailureRate:        failureRate,
		FailureCount:       int(failureRate * float64(runs)),
		MedianFailureMonth: &medianFailure,
	}
	if stressed {
		premortem.PrimaryCauses = []engine.FailureCause{
			{
				Factor:           "churn_rate",
				DisplayName:      "Churn Rate",
				FailedMean:       0.18,
				SuccessMean:      0.09,
				DifferencePct:    95,
				AttributionScore: 0.52,
				Direction:        "higher",
			},
			{
				Factor:           "win_rate_open",
				DisplayName:      "Win Rate (Open Market)",
				FailedMean:       0.11,
				SuccessMean:      0.19,
				DifferencePct:    40,
				AttributionScore: 0.23,
				Direction:        "lower",
			},
		}
		premortem.FailureTrajectories = []engine.FailureTrajectory{
			{TrajectoryType: "slow_bleed", Prevalence: 0.64, MonthsToFailure: 22},
			{TrajectoryType: "sudden_collapse", Prevalence: 0.36, MonthsToFailure: 11},
		}
		premortem.EarlyWarningSignals = []string{
			"monthly churn above 12% for two consecutive months",
			"pipeline conversion below 15%",
		}
	} else {
		premortem.PrimaryCauses = []engine.FailureCause{
			{
				Factor:           "dev_duration",
				DisplayName:      "Development Duration",
				FailedMean:       9.1,
				SuccessMean:      6.4,
				DifferencePct:    42,
				AttributionScore: 0.31,
				Direction:        "higher",
			},
			{
				Factor:           "dev_burn",
				DisplayName:      "Development Burn",
				FailedMean:       245,
				SuccessMean:      198,
				DifferencePct:    24,
				AttributionScore: 0.27,
				Direction:        "higher",
			},
		}
	}

	sensitivity := &engine.Sensitivity{
		Tornado: []engine.TornadoItem{
			{Parameter: "churn_rate", DisplayName: "Churn Rate", OutputAtLow: 0.92, OutputAtBase: 0.62, OutputAtHigh: 0.18},
			{Parameter: "win_rate_open", DisplayName: "Win Rate (Open Market)", OutputAtLow: 0.35, OutputAtBase: 0.62, OutputAtHigh: 0.88},
			{Parameter: "dev_burn", DisplayName: "Development Burn", OutputAtLow: 0.75, OutputAtBase: 0.62, OutputAtHigh: 0.44},
			{Parameter: "leads_per_month", DisplayName: "Leads per Month", OutputAtLow: 0.48, OutputAtBase: 0.62, OutputAtHigh: 0.74},
			{Parameter: "contract_medium", DisplayName: "Medium Contract Value", OutputAtLow: 0.55, OutputAtBase: 0.62, OutputAtHigh: 0.70},
		},
		TopPositiveDrivers: []string{"win_rate_open", "leads_per_month"},
		TopNegativeDrivers: []string{"churn_rate", "dev_burn"},
		TotalR2:            0.84,
	}

	return &engine.SimulationResponse{
		Summary: summary,
		Paths: &engine.PathData{
			Percentiles: percentiles,
			MedianPath:  median,
		},
		Outcomes: &engine.Outcomes{
			DoublePlus: double,
			Profitable: profitable,
			Loss:       loss,
			Ruin:       ruin,
			Total:      runs,
		},
		ReturnDistribution: returnBuckets(summary, runs),
		RiskMetrics: &engine.RiskMetrics{
			VaR:          map[string]float64{"5": summary.ReturnP5},
			CVaR:         map[string]float64{"5": summary.ReturnP5 * 1.2},
			DrawdownMean: summary.MaxDrawdownMean,
			DrawdownP95:  summary.MaxDrawdownP95,
		},
		Premortem:   premortem,
		Sensitivity: sensitivity,
		Meta: &engine.Meta{
			NSimulations:      runs,
			TimeHorizon:       horizon,
			Seed:              req.Seed,
			ComputationTimeMs: 12,
			Timestamp:         time.Now().UTC().Format(time.RFC3339),
		},
	}
}

func returnBuckets(summary *engine.SummaryStats, runs int) []engine.ReturnBucket {
	edges := []float64{-1, -0.5, 0, 0.5, 1, 2}
	weights := []float64{0.05, 0.15, 0.30, 0.30, 0.20}
	if summary.ReturnMean < 0 {
		weights = []float64{0.25, 0.30, 0.25, 0.15, 0.05}
	}

	buckets := make([]engine.ReturnBucket, len(weights))
	for i, w := range weights {
		count := int(w * float64(runs))
		buckets[i] = engine.ReturnBucket{
			RangeStart: edges[i],
			RangeEnd:   edges[i+1],
			Count:      count,
			Percentage: w * 100,
		}
	}
	return buckets
}
