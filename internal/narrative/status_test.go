package narrative

import "testing"

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		metric   string
		value    float64
		expected Status
	}{
		{"ProfitGood", MetricProbProfit, 0.75, StatusGood},
		{"ProfitWarning", MetricProbProfit, 0.55, StatusWarning},
		{"ProfitBad", MetricProbProfit, 0.40, StatusBad},
		{"DoublingGoodBoundary", MetricProbDoubling, 0.50, StatusGood},
		{"DoublingBad", MetricProbDoubling, 0.10, StatusBad},
		{"RuinGoodBoundary", MetricProbRuin, 0.05, StatusGood},
		{"RuinWarning", MetricProbRuin, 0.10, StatusWarning},
		{"RuinBad", MetricProbRuin, 0.20, StatusBad},
		{"DrawdownGood", MetricMaxDrawdown, 25, StatusGood},
		{"DrawdownWarning", MetricMaxDrawdown, 45, StatusWarning},
		{"DrawdownBad", MetricMaxDrawdown, 60, StatusBad},
		{"ReturnGood", MetricMeanReturn, 80, StatusGood},
		{"ReturnWarning", MetricMeanReturn, 10, StatusWarning},
		{"ReturnBad", MetricMeanReturn, -5, StatusBad},
		{"Unknown", "probability-of-unicorns", 0.99, StatusNeutral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.metric, tt.value); got != tt.expected {
				t.Errorf("Classify(%s, %v) = %s, want %s", tt.metric, tt.value, got, tt.expected)
			}
		})
	}
}

func TestClassify_WholePercentNormalization(t *testing.T) {
	// A probability handed over as whole percent must compare on the same scale.
	if got := Classify(MetricProbProfit, 75); got != StatusGood {
		t.Errorf("Classify(probability-of-profit, 75) = %s, want good", got)
	}
	if got := Classify(MetricProbRuin, 20); got != StatusBad {
		t.Errorf("Classify(probability-of-ruin, 20) = %s, want bad", got)
	}
}
