// Package session holds the mutable working state of a dashboard session:
// the live assumption set, its provenance, the run configuration, and the
// latest simulation result. All access is mutex guarded so concurrent tool
// calls see a consistent snapshot.
package session

import (
	"sync"

	"github.com/google/uuid"

	"runway-dss/internal/assumptions"
	"runway-dss/internal/engine"
)

// Session is the single working state shared by all tool handlers.
type Session struct {
	mu sync.Mutex

	current    assumptions.AssumptionSet
	provenance assumptions.Provenance
	presetName string

	runCfg assumptions.RunConfig

	nextSeq   uint64
	latestSeq uint64
	latestRun *RunRecord
}

// RunRecord pairs a completed simulation response with the inputs that
// produced it, so views can be re-derived without re-running the engine.
type RunRecord struct {
	ID          string
	Assumptions assumptions.AssumptionSet
	RunConfig   assumptions.RunConfig
	Response    *engine.SimulationResponse
}

// New returns a session initialized from the Base preset with the default
// run configuration.
func New() *Session {
	base, err := assumptions.LookupPreset("Base")
	if err != nil {
		// Base is defined in this module; a miss is a programming error.
		panic(err)
	}
	return &Session{
		current:    base.Assumptions,
		provenance: assumptions.PresetDerived,
		presetName: base.Name,
		runCfg:     assumptions.DefaultRunConfig(),
	}
}

// Assumptions returns a snapshot of the live assumption set along with its
// provenance and, when preset derived, the preset name.
func (s *Session) Assumptions() (assumptions.AssumptionSet, assumptions.Provenance, string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current, s.provenance, s.presetName
}

// ApplyPreset replaces the live assumption set wholesale and marks it as
// preset derived.
func (s *Session) ApplyPreset(p assumptions.Preset) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = p.Assumptions
	s.provenance = assumptions.PresetDerived
	s.presetName = p.Name
}

// Edit applies field-level overrides to the live assumption set. Any edit,
// even one that restores a preset value, moves provenance to Custom.
func (s *Session) Edit(fields map[string]float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.current
	if err := next.Apply(fields); err != nil {
		return err
	}
	if err := next.Validate(); err != nil {
		return err
	}
	s.current = next
	s.provenance = assumptions.Custom
	s.presetName = ""
	return nil
}

// SetRiskEvents replaces the configured risk event list. Provenance moves to
// Custom, same as any scalar edit.
func (s *Session) SetRiskEvents(events []engine.RiskEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current.RiskEvents = events
	s.provenance = assumptions.Custom
	s.presetName = ""
}

// RunConfig returns the current run configuration.
func (s *Session) RunConfig() assumptions.RunConfig {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.runCfg
}

// SetRunConfig validates and stores a new run configuration.
func (s *Session) SetRunConfig(cfg assumptions.RunConfig) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.runCfg = cfg
	return nil
}

// BeginRun snapshots the state a run will be made with and allocates a
// sequence number for staleness detection. The snapshot, not the live state,
// is what gets sent to the engine, so concurrent edits cannot tear a request.
func (s *Session) BeginRun() (seq uint64, rec RunRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextSeq++
	return s.nextSeq, RunRecord{
		ID:          uuid.NewString(),
		Assumptions: s.current,
		RunConfig:   s.runCfg,
	}
}

// CommitRun stores a completed run unless a later run already committed.
// It reports whether the result was accepted.
func (s *Session) CommitRun(seq uint64, rec RunRecord, res *engine.SimulationResponse) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if seq < s.latestSeq {
		return false
	}
	rec.Response = res
	s.latestSeq = seq
	s.latestRun = &rec
	return true
}

// Latest returns the most recent committed run, or nil when no run has
// completed yet.
func (s *Session) Latest() *RunRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.latestRun
}
