// Package sensitivity shapes the engine's raw sensitivity triples into
// tornado bars ready for charting.
package sensitivity

import (
	"math"
	"sort"

	"runway-dss/internal/engine"
)

// MaxBars caps the tornado chart to the highest-impact parameters.
const MaxBars = 8

// Bar is one parameter's signed impact on the output metric.
type Bar struct {
	Name      string  `json:"name"`
	LowDelta  float64 `json:"low_delta"`
	HighDelta float64 `json:"high_delta"`
	Swing     float64 `json:"swing"`
}

// Result holds the sorted bars and the shared axis bound. All bars are drawn
// against one zero-centered scale; a tornado chart is only interpretable when
// every bar's magnitude is comparable on the same axis.
type Result struct {
	Bars     []Bar   `json:"bars"`
	MaxRange float64 `json:"max_range"`
}

// Side reports which side of the axis a delta renders on. The sign of the
// delta drives this, not which input extreme produced it: a low input that
// improves the output is an upside bar.
func Side(delta float64) string {
	if delta < 0 {
		return "downside"
	}
	return "upside"
}

// Normalize derives sorted, axis-normalized tornado bars from the raw
// sensitivity entries, capped to the top MaxBars by swing.
func Normalize(entries []engine.TornadoItem) Result {
	bars := make([]Bar, 0, len(entries))
	for _, e := range entries {
		swing := e.Swing
		if swing == 0 {
			swing = math.Abs(e.OutputAtHigh - e.OutputAtLow)
		}
		bars = append(bars, Bar{
			Name:      displayName(e),
			LowDelta:  e.OutputAtLow - e.OutputAtBase,
			HighDelta: e.OutputAtHigh - e.OutputAtBase,
			Swing:     swing,
		})
	}

	sort.SliceStable(bars, func(i, j int) bool {
		return bars[i].Swing > bars[j].Swing
	})
	if len(bars) > MaxBars {
		bars = bars[:MaxBars]
	}

	maxRange := 0.0
	for _, b := range bars {
		if m := math.Max(math.Abs(b.LowDelta), math.Abs(b.HighDelta)); m > maxRange {
			maxRange = m
		}
	}

	return Result{Bars: bars, MaxRange: maxRange}
}

func displayName(e engine.TornadoItem) string {
	if e.DisplayName != "" {
		return e.DisplayName
	}
	return e.Parameter
}
