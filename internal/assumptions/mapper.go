package assumptions

import (
	"math"

	"runway-dss/internal/engine"
)

// Spread and shape constants. These encode domain calibration agreed with the
// engine team; the beta concentration in particular must be preserved exactly
// for engine compatibility.
const (
	capitalSpreadDown = 0.8
	capitalSpreadUp   = 1.2
	burnSpreadUp      = 1.25

	durationFloor      = 3.0
	durationSpreadDown = 2.0
	durationSpreadUp   = 3.0

	leadsFloor      = 1.0
	leadsSpreadDown = 3.0
	leadsSpreadUp   = 5.0

	// BetaConcentration is alpha+beta for every rate-like input.
	BetaConcentration = 20.0

	cvContractSmall  = 0.2
	cvContractMedium = 0.15
	cvContractLarge  = 0.1

	// Structural constants, independent of user input.
	salesCycleShape = 6.25
	salesCycleScale = 0.8
)

// SizeDistribution is the fixed contract size mix forwarded to the engine.
var SizeDistribution = map[string]float64{
	"small":  0.5,
	"medium": 0.35,
	"large":  0.15,
}

// Map derives the engine-facing stochastic spec from an AssumptionSet and run
// config. It is a pure function: the same inputs always produce the same
// request, and every field the engine expects is populated.
func Map(a AssumptionSet, cfg RunConfig) *engine.SimulationRequest {
	riskEvents := a.RiskEvents
	if riskEvents == nil {
		riskEvents = []engine.RiskEvent{}
	}

	return &engine.SimulationRequest{
		InitialCapital: triangular(a.InitialCapital*capitalSpreadDown, a.InitialCapital, a.InitialCapital*capitalSpreadUp),
		DevDuration:    triangular(math.Max(durationFloor, a.DevDuration-durationSpreadDown), a.DevDuration, a.DevDuration+durationSpreadUp),
		DevBurn:        triangular(a.DevBurn*capitalSpreadDown, a.DevBurn, a.DevBurn*burnSpreadUp),

		LeadsPerMonth:    triangular(math.Max(leadsFloor, a.LeadsPerMonth-leadsSpreadDown), a.LeadsPerMonth, a.LeadsPerMonth+leadsSpreadUp),
		WinRateBUMN:      betaFromMean(a.WinRateBUMN),
		WinRateOpen:      betaFromMean(a.WinRateOpen),
		BUMNRatio:        a.BUMNRatio,
		SalesCycleMonths: gamma(salesCycleShape, salesCycleScale),

		ContractSmall:    lognormal(a.ContractSmall, cvContractSmall),
		ContractMedium:   lognormal(a.ContractMedium, cvContractMedium),
		ContractLarge:    lognormal(a.ContractLarge, cvContractLarge),
		SizeDistribution: SizeDistribution,

		ChurnRate:       betaFromMean(a.ChurnRate),
		OpOverhead:      a.OpOverhead,
		CostPerCustomer: a.CostPerCustomer,

		RiskEvents: riskEvents,

		NSimulations:          cfg.Runs,
		TimeHorizon:           cfg.Horizon,
		Seed:                  cfg.Seed,
		EnableRegimeSwitching: cfg.RegimeSwitching,
		EnableRiskEvents:      cfg.RiskEvents,
	}
}

func triangular(min, mode, max float64) engine.DistributionSpec {
	return engine.DistributionSpec{
		Type:   "triangular",
		Params: map[string]float64{"min": min, "mode": mode, "max": max},
	}
}

// betaFromMean matches a target mean at fixed concentration, so the stated
// best guess becomes the distribution mean with a calibrated variance.
func betaFromMean(mean float64) engine.DistributionSpec {
	return engine.DistributionSpec{
		Type:   "beta",
		Params: map[string]float64{"alpha": mean * BetaConcentration, "beta": (1 - mean) * BetaConcentration},
	}
}

func lognormal(mean, cv float64) engine.DistributionSpec {
	return engine.DistributionSpec{
		Type:   "lognormal",
		Params: map[string]float64{"mean": mean, "cv": cv},
	}
}

func gamma(shape, scale float64) engine.DistributionSpec {
	return engine.DistributionSpec{
		Type:   "gamma",
		Params: map[string]float64{"shape": shape, "scale": scale},
	}
}
