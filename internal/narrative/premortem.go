package narrative

import (
	"fmt"
	"math"
	"strings"

	"runway-dss/internal/engine"
)

// DominantCauseThreshold is the attribution score above which a single cause
// carries the narrative on its own.
const DominantCauseThreshold = 0.40

// ExplainFailure synthesizes a one-sentence failure narrative from the
// premortem payload. This is deterministic template selection: a generic
// statement when no cause stands out, a single-cause narrative when one
// attribution dominates, and a combined narrative for the top two otherwise.
func ExplainFailure(p *engine.Premortem) string {
	if p == nil {
		return ""
	}

	rate := asPercent(p.FailureRate)

	if len(p.PrimaryCauses) == 0 {
		return fmt.Sprintf("Simulations fail in %.0f%% of runs, with no single identifiable driver.", rate)
	}

	top := p.PrimaryCauses[0]
	if top.AttributionScore > DominantCauseThreshold {
		sentence := fmt.Sprintf("Failures (%.0f%% of runs) are dominated by %s (%.0f%% attribution), which ran %s by %.0f%% in failed scenarios",
			rate, top.DisplayName, asPercent(top.AttributionScore), direction(top.Direction), math.Abs(top.DifferencePct))

		if traj := dominantTrajectory(p.FailureTrajectories); traj != nil {
			sentence += fmt.Sprintf("; the dominant failure pattern is a %s, typically reaching failure around month %.0f",
				humanizeTrajectory(traj.TrajectoryType), traj.MonthsToFailure)
		}
		return sentence + "."
	}

	if len(p.PrimaryCauses) >= 2 {
		second := p.PrimaryCauses[1]
		return fmt.Sprintf("Failures (%.0f%% of runs) stem from a combination of %s and %s, neither dominant on its own.",
			rate, top.DisplayName, second.DisplayName)
	}

	return fmt.Sprintf("Simulations fail in %.0f%% of runs, with no single identifiable driver.", rate)
}

// dominantTrajectory picks the most prevalent failure archetype, if any.
func dominantTrajectory(trajectories []engine.FailureTrajectory) *engine.FailureTrajectory {
	var best *engine.FailureTrajectory
	for i := range trajectories {
		if best == nil || trajectories[i].Prevalence > best.Prevalence {
			best = &trajectories[i]
		}
	}
	return best
}

func humanizeTrajectory(trajectoryType string) string {
	return strings.ReplaceAll(trajectoryType, "_", " ")
}

func direction(d string) string {
	switch d {
	case "higher":
		return "higher"
	case "lower":
		return "lower"
	default:
		return "off"
	}
}

// asPercent accepts both fractional and whole-percent inputs.
func asPercent(v float64) float64 {
	if v <= 1 {
		return v * 100
	}
	return v
}
