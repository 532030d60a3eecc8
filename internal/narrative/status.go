// Package narrative maps scalar metrics to qualitative status bands and turns
// premortem attribution data into plain-language findings.
package narrative

// Status is a qualitative band for one metric value.
type Status string

const (
	StatusGood    Status = "good"
	StatusWarning Status = "warning"
	StatusBad     Status = "bad"
	StatusNeutral Status = "neutral"
)

// Metric identifiers with fixed thresholds.
const (
	MetricProbProfit   = "probability-of-profit"
	MetricProbDoubling = "probability-of-doubling"
	MetricProbRuin     = "probability-of-ruin"
	MetricMaxDrawdown  = "max-drawdown"
	MetricMeanReturn   = "mean-return"
)

type threshold struct {
	good        float64
	warning     float64
	inverse     bool // inverse metrics are bad when high
	probability bool // thresholds stated on the [0,1] probability scale
}

// Threshold table. These values are domain calibration decisions, independent
// of the classification logic.
var thresholds = map[string]threshold{
	MetricProbProfit:   {good: 0.70, warning: 0.50, probability: true},
	MetricProbDoubling: {good: 0.50, warning: 0.30, probability: true},
	MetricProbRuin:     {good: 0.05, warning: 0.15, inverse: true, probability: true},
	MetricMaxDrawdown:  {good: 30, warning: 50, inverse: true},
	MetricMeanReturn:   {good: 50, warning: 0},
}

// Classify maps a metric value to its status band. Unknown metrics classify
// as neutral. Probability values supplied as whole percent (1,100] are
// normalized to the [0,1] scale before comparison.
func Classify(metricID string, value float64) Status {
	th, ok := thresholds[metricID]
	if !ok {
		return StatusNeutral
	}

	if th.probability && value > 1 && value <= 100 {
		value /= 100
	}

	if th.inverse {
		switch {
		case value <= th.good:
			return StatusGood
		case value <= th.warning:
			return StatusWarning
		default:
			return StatusBad
		}
	}

	switch {
	case value >= th.good:
		return StatusGood
	case value >= th.warning:
		return StatusWarning
	default:
		return StatusBad
	}
}
