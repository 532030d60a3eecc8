package visuals

import (
	"fmt"
	"math"
	"strings"

	"runway-dss/internal/engine"
	"runway-dss/internal/sensitivity"
)

// maxFunnelPoints limits the number of x-axis labels a funnel chart renders.
// Mermaid becomes unreadable past roughly this many categories.
const maxFunnelPoints = 60

// GenerateTornadoChart creates a Mermaid xychart-beta for the normalized
// tornado bars. Downside and upside deltas render as two bar series around
// zero so the dominant drivers stand out.
func GenerateTornadoChart(result sensitivity.Result) string {
	if len(result.Bars) == 0 {
		return ""
	}

	var labels []string
	var lows []string
	var highs []string

	for _, b := range result.Bars {
		labels = append(labels, fmt.Sprintf("\"%s\"", b.Name))
		lows = append(lows, fmt.Sprintf("%.1f", b.LowDelta))
		highs = append(highs, fmt.Sprintf("%.1f", b.HighDelta))
	}

	bound := int(math.Ceil(result.MaxRange * 1.1))
	if bound < 1 {
		bound = 1
	}

	var sb strings.Builder
	sb.WriteString("```mermaid\n")
	sb.WriteString("xychart-beta\n")
	sb.WriteString("    title \"Sensitivity Tornado (Output Delta vs. Base)\"\n")
	sb.WriteString(fmt.Sprintf("    x-axis [%s]\n", strings.Join(labels, ", ")))
	sb.WriteString(fmt.Sprintf("    y-axis \"Delta\" %d --> %d\n", -bound, bound))
	sb.WriteString(fmt.Sprintf("    bar [%s]\n", strings.Join(lows, ", ")))
	sb.WriteString(fmt.Sprintf("    bar [%s]\n", strings.Join(highs, ", ")))
	sb.WriteString("```")
	return sb.String()
}

// GenerateFunnelChart creates a Mermaid xychart-beta of the capital percentile
// funnel over time (p5, p50, p95). Long horizons get subsampled to keep the
// axis legible.
func GenerateFunnelChart(percentiles []engine.PathPercentile) string {
	if len(percentiles) == 0 {
		return ""
	}

	stride := 1
	if len(percentiles) > maxFunnelPoints {
		stride = int(math.Ceil(float64(len(percentiles)) / float64(maxFunnelPoints)))
	}

	var labels []string
	var p5s []string
	var p50s []string
	var p95s []string

	maxY := 0.0
	for i := 0; i < len(percentiles); i += stride {
		p := percentiles[i]
		labels = append(labels, fmt.Sprintf("%d", p.Month))
		p5s = append(p5s, fmt.Sprintf("%.0f", p.P5))
		p50s = append(p50s, fmt.Sprintf("%.0f", p.P50))
		p95s = append(p95s, fmt.Sprintf("%.0f", p.P95))
		if p.P95 > maxY {
			maxY = p.P95
		}
	}

	var sb strings.Builder
	sb.WriteString("```mermaid\n")
	sb.WriteString("xychart-beta\n")
	sb.WriteString("    title \"Capital Funnel (p5 / p50 / p95)\"\n")
	sb.WriteString(fmt.Sprintf("    x-axis [%s]\n", strings.Join(labels, ", ")))
	sb.WriteString(fmt.Sprintf("    y-axis \"Capital\" 0 --> %d\n", int(math.Ceil(maxY*1.1))))
	sb.WriteString(fmt.Sprintf("    line [%s]\n", strings.Join(p5s, ", ")))
	sb.WriteString(fmt.Sprintf("    line [%s]\n", strings.Join(p50s, ", ")))
	sb.WriteString(fmt.Sprintf("    line [%s]\n", strings.Join(p95s, ", ")))
	sb.WriteString("```")
	return sb.String()
}
