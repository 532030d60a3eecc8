package assumptions

import (
	"fmt"

	"runway-dss/internal/engine"
)

// Provenance tracks whether the live AssumptionSet still matches a named
// preset. Any manual edit transitions to Custom; applying a preset transitions
// back to PresetDerived.
type Provenance string

const (
	PresetDerived Provenance = "preset-derived"
	Custom        Provenance = "custom"
)

// AssumptionSet is the user-facing set of best-guess scalar business
// parameters. Capital amounts are in millions of the account currency.
type AssumptionSet struct {
	InitialCapital  float64 `json:"initial_capital"`
	DevDuration     float64 `json:"dev_duration"` // months
	DevBurn         float64 `json:"dev_burn"`     // per month
	LeadsPerMonth   float64 `json:"leads_per_month"`
	WinRateBUMN     float64 `json:"win_rate_bumn"`
	WinRateOpen     float64 `json:"win_rate_open"`
	BUMNRatio       float64 `json:"bumn_ratio"`
	ContractSmall   float64 `json:"contract_small"`
	ContractMedium  float64 `json:"contract_medium"`
	ContractLarge   float64 `json:"contract_large"`
	ChurnRate       float64 `json:"churn_rate"` // monthly
	OpOverhead      float64 `json:"op_overhead"`
	CostPerCustomer float64 `json:"cost_per_customer"`

	// Risk events pass through to the engine unchanged.
	RiskEvents []engine.RiskEvent `json:"risk_events,omitempty"`
}

// Apply sets the named scalar fields on the set. Unknown field names are
// rejected so that client typos surface instead of silently dropping edits.
func (a *AssumptionSet) Apply(edits map[string]float64) error {
	for name, value := range edits {
		switch name {
		case "initial_capital":
			a.InitialCapital = value
		case "dev_duration":
			a.DevDuration = value
		case "dev_burn":
			a.DevBurn = value
		case "leads_per_month":
			a.LeadsPerMonth = value
		case "win_rate_bumn":
			a.WinRateBUMN = value
		case "win_rate_open":
			a.WinRateOpen = value
		case "bumn_ratio":
			a.BUMNRatio = value
		case "contract_small":
			a.ContractSmall = value
		case "contract_medium":
			a.ContractMedium = value
		case "contract_large":
			a.ContractLarge = value
		case "churn_rate":
			a.ChurnRate = value
		case "op_overhead":
			a.OpOverhead = value
		case "cost_per_customer":
			a.CostPerCustomer = value
		default:
			return fmt.Errorf("unknown assumption field: %s", name)
		}
	}
	return nil
}

// Validate performs basic sanity checks on the set. It guards against edits
// that the engine would reject or that would produce degenerate distributions
// downstream.
func (a *AssumptionSet) Validate() error {
	if a.InitialCapital <= 0 {
		return fmt.Errorf("initial_capital must be positive, got %g", a.InitialCapital)
	}
	if a.DevDuration <= 0 {
		return fmt.Errorf("dev_duration must be positive, got %g", a.DevDuration)
	}
	if a.DevBurn < 0 {
		return fmt.Errorf("dev_burn must not be negative, got %g", a.DevBurn)
	}
	if a.LeadsPerMonth < 0 {
		return fmt.Errorf("leads_per_month must not be negative, got %g", a.LeadsPerMonth)
	}
	for name, rate := range map[string]float64{
		"win_rate_bumn": a.WinRateBUMN,
		"win_rate_open": a.WinRateOpen,
		"bumn_ratio":    a.BUMNRatio,
		"churn_rate":    a.ChurnRate,
	} {
		if rate < 0 || rate > 1 {
			return fmt.Errorf("%s must be between 0 and 1, got %g", name, rate)
		}
	}
	if a.ContractSmall <= 0 || a.ContractMedium <= 0 || a.ContractLarge <= 0 {
		return fmt.Errorf("contract values must be positive")
	}
	return nil
}

// RunCountOptions is the closed set of allowed simulation run counts.
var RunCountOptions = []int{200, 500, 1000, 2000}

// RunConfig holds the per-run simulation settings.
type RunConfig struct {
	Runs            int    `json:"runs"`
	Horizon         int    `json:"horizon"` // months
	Seed            *int64 `json:"seed,omitempty"`
	RegimeSwitching bool   `json:"regime_switching"`
	RiskEvents      bool   `json:"risk_events"`
}

// DefaultRunConfig returns the default simulation settings.
func DefaultRunConfig() RunConfig {
	return RunConfig{
		Runs:            500,
		Horizon:         36,
		RegimeSwitching: true,
		RiskEvents:      true,
	}
}

// Validate checks the run config against the allowed option sets.
func (c RunConfig) Validate() error {
	valid := false
	for _, n := range RunCountOptions {
		if c.Runs == n {
			valid = true
			break
		}
	}
	if !valid {
		return fmt.Errorf("run count %d is not one of the allowed options %v", c.Runs, RunCountOptions)
	}
	if c.Horizon < 6 || c.Horizon > 120 {
		return fmt.Errorf("time horizon %d months is outside the supported range 6-120", c.Horizon)
	}
	return nil
}
