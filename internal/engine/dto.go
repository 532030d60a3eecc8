package engine

// Wire types for the external Monte-Carlo simulation engine. Field names
// follow the engine's JSON contract exactly; the engine rejects unknown
// fields, so nothing beyond this set may ever be emitted.

// DistributionSpec is a tagged distribution descriptor for one input parameter.
type DistributionSpec struct {
	Type   string             `json:"type"` // triangular, beta, lognormal, gamma, fixed
	Params map[string]float64 `json:"params"`
}

// RiskEvent configures one stochastic risk factor.
type RiskEvent struct {
	Name         string  `json:"name"`
	Intensity    float64 `json:"intensity"` // annual arrival rate
	ImpactType   string  `json:"impact_type"`
	SeverityMin  float64 `json:"severity_min"`
	SeverityMode float64 `json:"severity_mode"`
	SeverityMax  float64 `json:"severity_max"`
	RecoveryRate float64 `json:"recovery_rate"`
	StartMonth   int     `json:"start_month"`
	EndMonth     *int    `json:"end_month,omitempty"`
}

// SimulationRequest is the body for POST /simulate.
type SimulationRequest struct {
	// Capital & Development
	InitialCapital DistributionSpec `json:"initial_capital"`
	DevDuration    DistributionSpec `json:"dev_duration"`
	DevBurn        DistributionSpec `json:"dev_burn"`

	// Sales
	LeadsPerMonth    DistributionSpec `json:"leads_per_month"`
	WinRateBUMN      DistributionSpec `json:"win_rate_bumn"`
	WinRateOpen      DistributionSpec `json:"win_rate_open"`
	BUMNRatio        float64          `json:"bumn_ratio"`
	SalesCycleMonths DistributionSpec `json:"sales_cycle_months"`

	// Pricing
	ContractSmall    DistributionSpec   `json:"contract_small"`
	ContractMedium   DistributionSpec   `json:"contract_medium"`
	ContractLarge    DistributionSpec   `json:"contract_large"`
	SizeDistribution map[string]float64 `json:"size_distribution"`

	// Retention & Costs
	ChurnRate       DistributionSpec `json:"churn_rate"`
	OpOverhead      float64          `json:"op_overhead"`
	CostPerCustomer float64          `json:"cost_per_customer"`

	// Risk Events
	RiskEvents []RiskEvent `json:"risk_events"`

	// Simulation Config
	NSimulations          int    `json:"n_simulations"`
	TimeHorizon           int    `json:"time_horizon"`
	Seed                  *int64 `json:"seed,omitempty"`
	EnableRegimeSwitching bool   `json:"enable_regime_switching"`
	EnableRiskEvents      bool   `json:"enable_risk_events"`
}

// SummaryStats holds the scalar aggregate metrics of a run.
type SummaryStats struct {
	ProbProfit      float64  `json:"prob_profit"`
	ProbDouble      float64  `json:"prob_double"`
	ProbRuin        float64  `json:"prob_ruin"`
	ReturnMean      float64  `json:"return_mean"`
	ReturnMedian    float64  `json:"return_median"`
	ReturnStd       float64  `json:"return_std"`
	ReturnP5        float64  `json:"return_p5"`
	ReturnP95       float64  `json:"return_p95"`
	VaR5            float64  `json:"var_5"`
	CVaR5           float64  `json:"cvar_5"`
	MaxDrawdownMean float64  `json:"max_drawdown_mean"`
	MaxDrawdownP95  float64  `json:"max_drawdown_p95"`
	BreakevenMean   *float64 `json:"breakeven_mean"`
	BreakevenRate   float64  `json:"breakeven_rate"`
	Recommendation  string   `json:"recommendation"`
}

// PathPercentile is the equity-curve percentile tuple at one month.
type PathPercentile struct {
	Month int     `json:"month"`
	P5    float64 `json:"p5"`
	P25   float64 `json:"p25"`
	P50   float64 `json:"p50"`
	P75   float64 `json:"p75"`
	P95   float64 `json:"p95"`
}

// PathData carries the per-month percentile bands and any literal sample paths.
type PathData struct {
	Percentiles []PathPercentile `json:"percentiles"`
	SamplePaths [][]float64      `json:"sample_paths"`
	MedianPath  []float64        `json:"median_path"`
}

// Outcomes counts terminal outcomes per bucket.
type Outcomes struct {
	DoublePlus int `json:"double_plus"`
	Profitable int `json:"profitable"`
	Loss       int `json:"loss"`
	Ruin       int `json:"ruin"`
	Total      int `json:"total"`
}

// ReturnBucket is one bin of the return histogram.
type ReturnBucket struct {
	RangeStart float64 `json:"range_start"`
	RangeEnd   float64 `json:"range_end"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// RiskMetrics carries tail-loss and drawdown statistics.
type RiskMetrics struct {
	VaR                  map[string]float64 `json:"var"`
	CVaR                 map[string]float64 `json:"cvar"`
	DrawdownMean         float64            `json:"drawdown_mean"`
	DrawdownStd          float64            `json:"drawdown_std"`
	DrawdownP95          float64            `json:"drawdown_p95"`
	DrawdownMax          float64            `json:"drawdown_max"`
	MonthsUnderwaterMean float64            `json:"months_underwater_mean"`
	SurvivalCurve        []float64          `json:"survival_curve"`
	TailLossMean         float64            `json:"tail_loss_mean"`
}

// FailureCause attributes failures to one input factor.
type FailureCause struct {
	Factor           string  `json:"factor"`
	DisplayName      string  `json:"display_name"`
	FailedMean       float64 `json:"failed_mean"`
	SuccessMean      float64 `json:"success_mean"`
	DifferencePct    float64 `json:"difference_pct"`
	AttributionScore float64 `json:"attribution_score"`
	Direction        string  `json:"direction"` // higher, lower, similar
	Interpretation   string  `json:"interpretation"`
}

// CriticalPeriod marks a window of elevated failure hazard.
type CriticalPeriod struct {
	StartMonth         int     `json:"start_month"`
	EndMonth           int     `json:"end_month"`
	HazardRate         float64 `json:"hazard_rate"`
	CumulativeFailures float64 `json:"cumulative_failures"`
	DominantCause      string  `json:"dominant_cause"`
}

// FailureTrajectory is a failure-path archetype.
type FailureTrajectory struct {
	TrajectoryType     string   `json:"trajectory_type"` // slow_bleed, sudden_collapse, recovery_failure
	Prevalence         float64  `json:"prevalence"`
	MonthsToFailure    float64  `json:"months_to_failure"`
	PeakCapitalReached float64  `json:"peak_capital_reached"`
	WarningSigns       []string `json:"warning_signs"`
}

// RegimeImpact quantifies a market regime's effect on failure.
type RegimeImpact struct {
	Regime                 string  `json:"regime"`
	TimeSpentPct           float64 `json:"time_spent_pct"`
	ConditionalFailureRate float64 `json:"conditional_failure_rate"`
	RiskMultiplier         float64 `json:"risk_multiplier"`
}

// Premortem is the failure-scenario attribution payload.
type Premortem struct {
	FailureDefinition      string              `json:"failure_definition"`
	FailureRate            float64             `json:"failure_rate"`
	FailureCount           int                 `json:"failure_count"`
	PrimaryCauses          []FailureCause      `json:"primary_causes"`
	CriticalPeriods        []CriticalPeriod    `json:"critical_periods"`
	FailureTimingHistogram []int               `json:"failure_timing_histogram"`
	MedianFailureMonth     *float64            `json:"median_failure_month"`
	FailureTrajectories    []FailureTrajectory `json:"failure_trajectories"`
	RegimeImpacts          []RegimeImpact      `json:"regime_impacts"`
	EarlyWarningSignals    []string            `json:"early_warning_signals"`
	MitigationPriorities   []string            `json:"mitigation_priorities"`
}

// TornadoItem is one parameter's raw sensitivity triple.
type TornadoItem struct {
	Parameter    string  `json:"parameter"`
	DisplayName  string  `json:"display_name"`
	LowValue     float64 `json:"low_value"`
	BaseValue    float64 `json:"base_value"`
	HighValue    float64 `json:"high_value"`
	OutputAtLow  float64 `json:"output_at_low"`
	OutputAtBase float64 `json:"output_at_base"`
	OutputAtHigh float64 `json:"output_at_high"`
	Swing        float64 `json:"swing"`
}

// Correlation is a rank-correlation result for one parameter.
type Correlation struct {
	Parameter     string  `json:"parameter"`
	SpearmanCorr  float64 `json:"spearman_corr"`
	IsSignificant bool    `json:"is_significant"`
}

// Sensitivity is the sensitivity-analysis payload.
type Sensitivity struct {
	Tornado            []TornadoItem `json:"tornado"`
	Correlations       []Correlation `json:"correlations"`
	TopPositiveDrivers []string      `json:"top_positive_drivers"`
	TopNegativeDrivers []string      `json:"top_negative_drivers"`
	TotalR2            float64       `json:"total_r2"`
}

// Meta is the run metadata echoed by the engine.
type Meta struct {
	NSimulations      int     `json:"n_simulations"`
	TimeHorizon       int     `json:"time_horizon"`
	Seed              *int64  `json:"seed"`
	ComputationTimeMs float64 `json:"computation_time_ms"`
	Timestamp         string  `json:"timestamp"`
}

// SimulationResponse is the complete engine result payload. Sub-payloads are
// pointers so that a missing section is distinguishable from an empty one;
// consumers must degrade to an explicit no-data state on nil.
type SimulationResponse struct {
	Summary            *SummaryStats  `json:"summary"`
	Paths              *PathData      `json:"paths"`
	Outcomes           *Outcomes      `json:"outcomes"`
	ReturnDistribution []ReturnBucket `json:"return_distribution"`
	RiskMetrics        *RiskMetrics   `json:"risk_metrics"`
	Premortem          *Premortem     `json:"premortem"`
	Sensitivity        *Sensitivity   `json:"sensitivity"`
	Meta               *Meta          `json:"meta"`
}
