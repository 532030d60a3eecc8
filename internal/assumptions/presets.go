package assumptions

import "fmt"

// Preset is a complete, immutable AssumptionSet snapshot. Selecting one
// replaces the live set wholesale.
type Preset struct {
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Assumptions AssumptionSet `json:"assumptions"`
}

var presets = []Preset{
	{
		Name:        "Base",
		Description: "Default parameters based on market research.",
		Assumptions: AssumptionSet{
			InitialCapital:  5000,
			DevDuration:     6,
			DevBurn:         200,
			LeadsPerMonth:   7,
			WinRateBUMN:     0.70,
			WinRateOpen:     0.20,
			BUMNRatio:       0.35,
			ContractSmall:   180,
			ContractMedium:  320,
			ContractLarge:   550,
			ChurnRate:       0.10,
			OpOverhead:      120,
			CostPerCustomer: 5,
		},
	},
	{
		Name:        "Conservative",
		Description: "Deltas from Base: more capital (6000), slower development (8 months), higher burn (220), fewer leads (5), lower win rates (0.60/0.15), higher churn (0.12).",
		Assumptions: AssumptionSet{
			InitialCapital:  6000,
			DevDuration:     8,
			DevBurn:         220,
			LeadsPerMonth:   5,
			WinRateBUMN:     0.60,
			WinRateOpen:     0.15,
			BUMNRatio:       0.35,
			ContractSmall:   180,
			ContractMedium:  320,
			ContractLarge:   550,
			ChurnRate:       0.12,
			OpOverhead:      120,
			CostPerCustomer: 5,
		},
	},
	{
		Name:        "Aggressive",
		Description: "Deltas from Base: more capital (7000), faster development (5 months), heavier burn (280), more leads (10), higher win rates (0.80/0.28), lower churn (0.08).",
		Assumptions: AssumptionSet{
			InitialCapital:  7000,
			DevDuration:     5,
			DevBurn:         280,
			LeadsPerMonth:   10,
			WinRateBUMN:     0.80,
			WinRateOpen:     0.28,
			BUMNRatio:       0.35,
			ContractSmall:   180,
			ContractMedium:  320,
			ContractLarge:   550,
			ChurnRate:       0.08,
			OpOverhead:      120,
			CostPerCustomer: 5,
		},
	},
	{
		Name:        "Pessimistic",
		Description: "Deltas from Base: less capital (4000), slow development (9 months), elevated burn (240), weak demand (4 leads), depressed win rates (0.50/0.12), high churn (0.15).",
		Assumptions: AssumptionSet{
			InitialCapital:  4000,
			DevDuration:     9,
			DevBurn:         240,
			LeadsPerMonth:   4,
			WinRateBUMN:     0.50,
			WinRateOpen:     0.12,
			BUMNRatio:       0.35,
			ContractSmall:   180,
			ContractMedium:  320,
			ContractLarge:   550,
			ChurnRate:       0.15,
			OpOverhead:      120,
			CostPerCustomer: 5,
		},
	},
}

// Presets returns the full preset catalog in display order.
func Presets() []Preset {
	out := make([]Preset, len(presets))
	copy(out, presets)
	return out
}

// LookupPreset finds a preset by name.
func LookupPreset(name string) (Preset, error) {
	for _, p := range presets {
		if p.Name == name {
			return p, nil
		}
	}
	return Preset{}, fmt.Errorf("unknown preset: %s. Available presets: Base, Conservative, Aggressive, Pessimistic", name)
}
