package assumptions

import (
	"testing"
)

func baseSet() AssumptionSet {
	p, _ := LookupPreset("Base")
	return p.Assumptions
}

func TestMap_DevDuration(t *testing.T) {
	a := baseSet()
	a.InitialCapital = 5000
	a.DevDuration = 6

	spec := Map(a, DefaultRunConfig())

	d := spec.DevDuration
	if d.Type != "triangular" {
		t.Fatalf("Expected triangular dev_duration, got %s", d.Type)
	}
	if d.Params["min"] != 4 || d.Params["mode"] != 6 || d.Params["max"] != 9 {
		t.Errorf("Expected {min:4, mode:6, max:9}, got %v", d.Params)
	}
}

func TestMap_DurationFloor(t *testing.T) {
	a := baseSet()
	a.DevDuration = 4

	spec := Map(a, DefaultRunConfig())
	if spec.DevDuration.Params["min"] != 3 {
		t.Errorf("Expected duration min clamped to 3, got %v", spec.DevDuration.Params["min"])
	}
}

func TestMap_LeadsFloor(t *testing.T) {
	a := baseSet()
	a.LeadsPerMonth = 2

	spec := Map(a, DefaultRunConfig())
	p := spec.LeadsPerMonth.Params
	if p["min"] != 1 || p["mode"] != 2 || p["max"] != 7 {
		t.Errorf("Expected {min:1, mode:2, max:7}, got %v", p)
	}
}

func TestMap_TriangularInvariant(t *testing.T) {
	sets := []AssumptionSet{baseSet()}
	for _, name := range []string{"Conservative", "Aggressive", "Pessimistic"} {
		p, err := LookupPreset(name)
		if err != nil {
			t.Fatal(err)
		}
		sets = append(sets, p.Assumptions)
	}

	for _, a := range sets {
		spec := Map(a, DefaultRunConfig())
		for name, d := range map[string]map[string]float64{
			"initial_capital": spec.InitialCapital.Params,
			"dev_duration":    spec.DevDuration.Params,
			"dev_burn":        spec.DevBurn.Params,
			"leads_per_month": spec.LeadsPerMonth.Params,
		} {
			if !(d["min"] <= d["mode"] && d["mode"] <= d["max"]) {
				t.Errorf("%s violates min <= mode <= max: %v", name, d)
			}
		}
	}
}

func TestMap_BetaConcentration(t *testing.T) {
	a := baseSet()
	spec := Map(a, DefaultRunConfig())

	for name, d := range map[string]map[string]float64{
		"win_rate_bumn": spec.WinRateBUMN.Params,
		"win_rate_open": spec.WinRateOpen.Params,
		"churn_rate":    spec.ChurnRate.Params,
	} {
		sum := d["alpha"] + d["beta"]
		if sum != BetaConcentration {
			t.Errorf("%s: alpha+beta = %v, want %v", name, sum, BetaConcentration)
		}
	}

	// The stated best guess must be the distribution mean.
	if got := spec.ChurnRate.Params["alpha"] / BetaConcentration; got != a.ChurnRate {
		t.Errorf("churn_rate mean = %v, want %v", got, a.ChurnRate)
	}
}

func TestMap_ContractTiers(t *testing.T) {
	a := baseSet()
	spec := Map(a, DefaultRunConfig())

	tests := []struct {
		name string
		spec map[string]float64
		mean float64
		cv   float64
	}{
		{"contract_small", spec.ContractSmall.Params, 180, 0.2},
		{"contract_medium", spec.ContractMedium.Params, 320, 0.15},
		{"contract_large", spec.ContractLarge.Params, 550, 0.1},
	}

	for _, tt := range tests {
		if tt.spec["mean"] != tt.mean || tt.spec["cv"] != tt.cv {
			t.Errorf("%s: got mean=%v cv=%v, want mean=%v cv=%v", tt.name, tt.spec["mean"], tt.spec["cv"], tt.mean, tt.cv)
		}
	}
}

func TestMap_StructuralConstants(t *testing.T) {
	a := baseSet()
	a.LeadsPerMonth = 999 // structural fields must not react to user input

	spec := Map(a, DefaultRunConfig())

	if spec.SalesCycleMonths.Type != "gamma" {
		t.Fatalf("Expected gamma sales cycle, got %s", spec.SalesCycleMonths.Type)
	}
	if spec.SalesCycleMonths.Params["shape"] != 6.25 || spec.SalesCycleMonths.Params["scale"] != 0.8 {
		t.Errorf("Sales cycle shape constants changed: %v", spec.SalesCycleMonths.Params)
	}
	if spec.SizeDistribution["small"] != 0.5 || spec.SizeDistribution["medium"] != 0.35 || spec.SizeDistribution["large"] != 0.15 {
		t.Errorf("Size distribution constants changed: %v", spec.SizeDistribution)
	}
}

func TestMap_PassThrough(t *testing.T) {
	a := baseSet()
	cfg := DefaultRunConfig()
	seed := int64(42)
	cfg.Seed = &seed
	cfg.Runs = 1000

	spec := Map(a, cfg)

	if spec.BUMNRatio != a.BUMNRatio {
		t.Errorf("bumn_ratio not passed through: %v", spec.BUMNRatio)
	}
	if spec.OpOverhead != 120 || spec.CostPerCustomer != 5 {
		t.Errorf("Cost scalars not passed through: %v / %v", spec.OpOverhead, spec.CostPerCustomer)
	}
	if spec.NSimulations != 1000 || spec.TimeHorizon != 36 {
		t.Errorf("Run config not forwarded: %d / %d", spec.NSimulations, spec.TimeHorizon)
	}
	if spec.Seed == nil || *spec.Seed != 42 {
		t.Errorf("Seed not forwarded: %v", spec.Seed)
	}
	if !spec.EnableRegimeSwitching || !spec.EnableRiskEvents {
		t.Error("Toggles should default to enabled")
	}
	if spec.RiskEvents == nil {
		t.Error("risk_events must be emitted even when empty")
	}
}

func TestMap_Deterministic(t *testing.T) {
	a := baseSet()
	cfg := DefaultRunConfig()

	first := Map(a, cfg)
	second := Map(a, cfg)

	if first.DevBurn.Params["max"] != second.DevBurn.Params["max"] {
		t.Error("Map is not deterministic")
	}
	if first.DevBurn.Params["max"] != 250 {
		t.Errorf("Expected dev_burn max 250 (200 * 1.25), got %v", first.DevBurn.Params["max"])
	}
}
