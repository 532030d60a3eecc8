// Package trajectory turns the engine's percentile bands into renderable
// capital paths. When the engine supplies literal sample paths they are used
// directly; otherwise paths are synthesized from the bands.
//
// Synthesized paths are a visualization approximation, not a statistical
// resampling of the original simulation: they stay within the percentile
// envelope and vary path-to-path, but carry no distributional guarantees.
package trajectory

import (
	"math"
	"math/rand"
	"sort"
	"time"

	"runway-dss/internal/engine"
)

const (
	syntheticPathCount = 50
	displayPathCap     = 30

	// Per-step blend: value = smoothPrev*prev + smoothTarget*target + noise.
	smoothPrev   = 0.7
	smoothTarget = 0.3

	// Noise is uniform in ±noiseFraction of the p5..p95 range.
	noiseFraction = 0.15
)

// Role classifies a path for display. It is derived from the path set's final
// values and recomputed on every synthesis, never stored.
type Role string

const (
	RoleSample Role = "sample"
	RoleBest   Role = "best"
	RoleWorst  Role = "worst"
	RoleMedian Role = "median"
)

// Path is one capital trajectory with its derived display role.
type Path struct {
	Values []float64 `json:"values"`
	Role   Role      `json:"role"`
}

// Result holds the display paths plus the ranked extremes.
type Result struct {
	DisplayPaths []Path    `json:"display_paths"`
	Best         []float64 `json:"best"`
	Worst        []float64 `json:"worst"`
	Median       []float64 `json:"median"`
}

// Synthesizer produces display paths. The random source is isolated so tests
// can pin determinism.
type Synthesizer struct {
	rng *rand.Rand
}

// New creates a Synthesizer with a time-based seed.
func New() *Synthesizer {
	return NewWithSeed(time.Now().UnixNano())
}

// NewWithSeed creates a Synthesizer with a fixed seed. Identical seeds and
// inputs produce identical paths.
func NewWithSeed(seed int64) *Synthesizer {
	return &Synthesizer{rng: rand.New(rand.NewSource(seed))}
}

// Synthesize builds the display path set. Literal paths win when present;
// otherwise paths are synthesized from the percentile bands. Empty inputs
// yield an explicit empty result rather than paths invented from nothing.
func (s *Synthesizer) Synthesize(percentiles []engine.PathPercentile, literalPaths [][]float64, initialCapital float64) Result {
	paths := literalPaths
	if len(paths) == 0 {
		if len(percentiles) == 0 {
			return Result{}
		}
		paths = s.synthesizePaths(percentiles, initialCapital)
	}

	ranked := rankByFinalValue(paths)
	best := paths[ranked[0]]
	worst := paths[ranked[len(ranked)-1]]
	median := paths[ranked[len(ranked)/2]]

	roles := map[int]Role{
		ranked[0]:             RoleBest,
		ranked[len(ranked)-1]: RoleWorst,
	}
	// Assigned last so a single path reports as median in the degenerate case.
	if _, taken := roles[ranked[len(ranked)/2]]; !taken || len(paths) == 1 {
		roles[ranked[len(ranked)/2]] = RoleMedian
	}

	display := selectDisplay(paths, roles)

	return Result{
		DisplayPaths: display,
		Best:         best,
		Worst:        worst,
		Median:       median,
	}
}

// synthesizePaths runs the smoothed random walk toward the percentile
// envelope for each synthetic path.
func (s *Synthesizer) synthesizePaths(percentiles []engine.PathPercentile, initialCapital float64) [][]float64 {
	paths := make([][]float64, syntheticPathCount)
	for i := range paths {
		values := make([]float64, len(percentiles))
		prev := initialCapital
		for m, band := range percentiles {
			spread := band.P95 - band.P5
			target := band.P5 + s.rng.Float64()*spread
			noise := (s.rng.Float64()*2 - 1) * noiseFraction * spread
			value := smoothPrev*prev + smoothTarget*target + noise
			if value < 0 {
				value = 0
			}
			values[m] = value
			prev = value
		}
		paths[i] = values
	}
	return paths
}

// finalValue ranks a path by its last step, falling back to the
// second-to-last step when the final one is undefined.
func finalValue(path []float64) float64 {
	if len(path) == 0 {
		return math.Inf(-1)
	}
	last := path[len(path)-1]
	if math.IsNaN(last) && len(path) > 1 {
		return path[len(path)-2]
	}
	return last
}

// rankByFinalValue returns path indexes ordered best-first.
func rankByFinalValue(paths [][]float64) []int {
	ranked := make([]int, len(paths))
	for i := range ranked {
		ranked[i] = i
	}
	sort.SliceStable(ranked, func(a, b int) bool {
		return finalValue(paths[ranked[a]]) > finalValue(paths[ranked[b]])
	})
	return ranked
}

// selectDisplay keeps at most displayPathCap paths using a deterministic
// stride. The ranked extremes are reserved first so they survive regardless
// of where the stride lands.
func selectDisplay(paths [][]float64, roles map[int]Role) []Path {
	stride := len(paths) / displayPathCap
	if stride < 1 {
		stride = 1
	}

	kept := make(map[int]bool, displayPathCap)
	for idx := range roles {
		kept[idx] = true
	}
	for i := 0; i < len(paths) && len(kept) < displayPathCap; i += stride {
		kept[i] = true
	}

	indexes := make([]int, 0, len(kept))
	for idx := range kept {
		indexes = append(indexes, idx)
	}
	sort.Ints(indexes)

	display := make([]Path, 0, len(indexes))
	for _, idx := range indexes {
		role := roles[idx]
		if role == "" {
			role = RoleSample
		}
		display = append(display, Path{Values: paths[idx], Role: role})
	}
	return display
}
