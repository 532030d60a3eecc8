package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"runway-dss/internal/assumptions"
	"runway-dss/internal/engine"
	"runway-dss/internal/narrative"
	"runway-dss/internal/sensitivity"
	"runway-dss/internal/session"
	"runway-dss/internal/visuals"
)

func (s *Server) handleListPresets(_ map[string]interface{}) (interface{}, error) {
	all := assumptions.Presets()
	items := make([]interface{}, 0, len(all))
	for _, p := range all {
		items = append(items, map[string]interface{}{
			"name":        p.Name,
			"description": p.Description,
			"assumptions": p.Assumptions,
		})
	}
	return map[string]interface{}{
		"presets":           items,
		"run_count_options": assumptions.RunCountOptions,
		"horizon_months":    map[string]int{"min": 6, "max": 120, "default": 36},
	}, nil
}

func (s *Server) handleApplyPreset(args map[string]interface{}) (interface{}, error) {
	name := asString(args["name"])
	p, err := assumptions.LookupPreset(name)
	if err != nil {
		return nil, err
	}
	s.session.ApplyPreset(p)
	log.Info().Str("preset", p.Name).Msg("Preset applied")
	return s.assumptionState(), nil
}

func (s *Server) handleSetAssumptions(args map[string]interface{}) (interface{}, error) {
	if raw, ok := args["assumptions"].(map[string]interface{}); ok && len(raw) > 0 {
		edits := make(map[string]float64, len(raw))
		for name, v := range raw {
			f, ok := asFloat(v)
			if !ok {
				return nil, fmt.Errorf("assumption %s must be a number", name)
			}
			edits[name] = f
		}
		if err := s.session.Edit(edits); err != nil {
			return nil, err
		}
		log.Info().Int("fields", len(edits)).Msg("Assumptions edited")
	}

	if raw, ok := args["risk_event_list"]; ok {
		events, err := decodeRiskEvents(raw)
		if err != nil {
			return nil, err
		}
		s.session.SetRiskEvents(events)
		log.Info().Int("events", len(events)).Msg("Risk events replaced")
	}

	if err := s.applyRunConfigEdits(args); err != nil {
		return nil, err
	}

	return s.assumptionState(), nil
}

// decodeRiskEvents round-trips the raw argument through JSON so the wire
// struct tags do the field mapping.
func decodeRiskEvents(raw interface{}) ([]engine.RiskEvent, error) {
	buf, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid risk_event_list: %w", err)
	}
	var events []engine.RiskEvent
	if err := json.Unmarshal(buf, &events); err != nil {
		return nil, fmt.Errorf("invalid risk_event_list: %w", err)
	}
	return events, nil
}

func (s *Server) applyRunConfigEdits(args map[string]interface{}) error {
	cfg := s.session.RunConfig()
	changed := false

	if v, ok := args["runs"]; ok {
		cfg.Runs = asInt(v)
		changed = true
	}
	if v, ok := args["horizon"]; ok {
		cfg.Horizon = asInt(v)
		changed = true
	}
	if v, ok := args["seed"]; ok {
		seed := int64(asInt(v))
		cfg.Seed = &seed
		changed = true
	}
	if v, ok := args["regime_switching"].(bool); ok {
		cfg.RegimeSwitching = v
		changed = true
	}
	if v, ok := args["risk_events"].(bool); ok {
		cfg.RiskEvents = v
		changed = true
	}

	if !changed {
		return nil
	}
	return s.session.SetRunConfig(cfg)
}

func (s *Server) handleGetAssumptions(_ map[string]interface{}) (interface{}, error) {
	state := s.assumptionState()
	set, _, _ := s.session.Assumptions()
	state["stochastic_spec_preview"] = assumptions.Map(set, s.session.RunConfig())
	return state, nil
}

func (s *Server) assumptionState() map[string]interface{} {
	set, prov, presetName := s.session.Assumptions()
	state := map[string]interface{}{
		"assumptions": set,
		"provenance":  prov,
		"run_config":  s.session.RunConfig(),
	}
	if presetName != "" {
		state["preset"] = presetName
	}
	return state
}

func (s *Server) handleRunSimulation(_ map[string]interface{}) (interface{}, error) {
	seq, rec := s.session.BeginRun()
	spec := assumptions.Map(rec.Assumptions, rec.RunConfig)

	log.Info().
		Str("runId", rec.ID).
		Int("nSimulations", spec.NSimulations).
		Int("timeHorizon", spec.TimeHorizon).
		Msg("Submitting simulation")

	res, err := s.engine.Simulate(context.Background(), spec)
	if err != nil {
		log.Error().Err(err).Str("runId", rec.ID).Msg("Simulation failed")
		return nil, fmt.Errorf("simulation failed, previous results remain available: %w", err)
	}

	if !s.session.CommitRun(seq, rec, res) {
		log.Warn().Str("runId", rec.ID).Msg("Run superseded by a newer submission, result discarded")
		return map[string]interface{}{
			"run_id":     rec.ID,
			"superseded": true,
		}, nil
	}

	return s.buildRunReport(rec, res)
}

// buildRunReport shapes the committed engine response into the dashboard
// views. The three view families are independent, so they are derived
// concurrently.
func (s *Server) buildRunReport(rec session.RunRecord, res *engine.SimulationResponse) (interface{}, error) {
	report := map[string]interface{}{
		"run_id": rec.ID,
	}
	if res.Meta != nil {
		report["meta"] = res.Meta
	}

	var trajectorySummary interface{}
	var tornadoView interface{}
	var statusView interface{}
	var narrativeView interface{}

	var g errgroup.Group
	g.Go(func() error {
		trajectorySummary = s.trajectoryView(rec, res, false)
		return nil
	})
	g.Go(func() error {
		tornadoView = s.tornadoView(res)
		return nil
	})
	g.Go(func() error {
		statusView = s.statusView(res)
		narrativeView = s.narrativeView(res)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	report["summary"] = statusView
	report["premortem"] = narrativeView
	report["tornado"] = tornadoView
	report["trajectories"] = trajectorySummary
	if res.Outcomes != nil {
		report["outcomes"] = res.Outcomes
	}
	return report, nil
}

func (s *Server) handleGetTrajectories(_ map[string]interface{}) (interface{}, error) {
	rec := s.session.Latest()
	if rec == nil {
		return noData("trajectories", "no simulation run yet"), nil
	}
	return s.trajectoryView(*rec, rec.Response, s.enableCharts), nil
}

func (s *Server) trajectoryView(rec session.RunRecord, res *engine.SimulationResponse, withChart bool) interface{} {
	if res == nil || res.Paths == nil {
		return noData("trajectories", "engine response carried no path data")
	}

	result := s.synth.Synthesize(res.Paths.Percentiles, res.Paths.SamplePaths, rec.Assumptions.InitialCapital)
	if len(result.DisplayPaths) == 0 {
		return noData("trajectories", "engine response carried no path data")
	}

	view := map[string]interface{}{
		"paths":        result.DisplayPaths,
		"best_final":   pathFinal(result.Best),
		"worst_final":  pathFinal(result.Worst),
		"median_final": pathFinal(result.Median),
		"percentiles":  res.Paths.Percentiles,
	}
	if withChart {
		if chart := visuals.GenerateFunnelChart(res.Paths.Percentiles); chart != "" {
			view["chart"] = chart
		}
	}
	return view
}

func pathFinal(p []float64) interface{} {
	if len(p) == 0 {
		return nil
	}
	return p[len(p)-1]
}

func (s *Server) handleGetTornado(_ map[string]interface{}) (interface{}, error) {
	rec := s.session.Latest()
	if rec == nil {
		return noData("tornado", "no simulation run yet"), nil
	}
	view := s.tornadoView(rec.Response)
	if m, ok := view.(map[string]interface{}); ok && !isNoData(m) && s.enableCharts {
		result := sensitivity.Normalize(rec.Response.Sensitivity.Tornado)
		if chart := visuals.GenerateTornadoChart(result); chart != "" {
			m["chart"] = chart
		}
	}
	return view, nil
}

func (s *Server) tornadoView(res *engine.SimulationResponse) interface{} {
	if res == nil || res.Sensitivity == nil || len(res.Sensitivity.Tornado) == 0 {
		return noData("tornado", "engine response carried no sensitivity data")
	}

	result := sensitivity.Normalize(res.Sensitivity.Tornado)
	bars := make([]interface{}, 0, len(result.Bars))
	for _, b := range result.Bars {
		bars = append(bars, map[string]interface{}{
			"name":       b.Name,
			"low_delta":  b.LowDelta,
			"high_delta": b.HighDelta,
			"swing":      b.Swing,
			"low_side":   sensitivity.Side(b.LowDelta),
			"high_side":  sensitivity.Side(b.HighDelta),
		})
	}
	return map[string]interface{}{
		"bars":      bars,
		"max_range": result.MaxRange,
	}
}

func (s *Server) handleGetMetricStatus(_ map[string]interface{}) (interface{}, error) {
	rec := s.session.Latest()
	if rec == nil {
		return noData("metric_status", "no simulation run yet"), nil
	}
	return s.statusView(rec.Response), nil
}

func (s *Server) statusView(res *engine.SimulationResponse) interface{} {
	if res == nil || res.Summary == nil {
		return noData("metric_status", "engine response carried no summary")
	}
	sum := res.Summary

	metrics := []map[string]interface{}{
		metricStatus(narrative.MetricProbProfit, "Probability of Profit", sum.ProbProfit),
		metricStatus(narrative.MetricProbDoubling, "Probability of Doubling", sum.ProbDouble),
		metricStatus(narrative.MetricProbRuin, "Probability of Ruin", sum.ProbRuin),
		metricStatus(narrative.MetricMaxDrawdown, "Mean Max Drawdown", asDisplayPercent(sum.MaxDrawdownMean)),
		metricStatus(narrative.MetricMeanReturn, "Mean Return", asDisplayPercent(sum.ReturnMean)),
	}

	view := map[string]interface{}{
		"metrics":        metrics,
		"recommendation": sum.Recommendation,
		"breakeven": map[string]interface{}{
			"mean_month": narrative.FormatMonths(sum.BreakevenMean),
			"rate":       sum.BreakevenRate,
		},
	}
	return view
}

func metricStatus(id, label string, value float64) map[string]interface{} {
	return map[string]interface{}{
		"id":     id,
		"label":  label,
		"value":  value,
		"status": narrative.Classify(id, value),
	}
}

// asDisplayPercent lifts fraction-scale engine metrics onto the percent scale
// the drawdown and return thresholds are defined in.
func asDisplayPercent(v float64) float64 {
	return v * 100
}

func (s *Server) handleGetPremortemNarrative(_ map[string]interface{}) (interface{}, error) {
	rec := s.session.Latest()
	if rec == nil {
		return noData("premortem", "no simulation run yet"), nil
	}
	return s.narrativeView(rec.Response), nil
}

func (s *Server) narrativeView(res *engine.SimulationResponse) interface{} {
	if res == nil || res.Premortem == nil {
		return noData("premortem", "engine response carried no premortem data")
	}
	p := res.Premortem

	view := map[string]interface{}{
		"narrative":            narrative.ExplainFailure(p),
		"failure_rate":         p.FailureRate,
		"median_failure_month": narrative.FormatMonths(p.MedianFailureMonth),
	}
	if len(p.PrimaryCauses) > 0 {
		view["primary_causes"] = p.PrimaryCauses
	}
	if len(p.EarlyWarningSignals) > 0 {
		view["early_warning_signals"] = p.EarlyWarningSignals
	}
	if len(p.MitigationPriorities) > 0 {
		view["mitigation_priorities"] = p.MitigationPriorities
	}
	return view
}

func noData(view, reason string) map[string]interface{} {
	return map[string]interface{}{
		"view":    view,
		"no_data": true,
		"reason":  reason,
	}
}

func isNoData(m map[string]interface{}) bool {
	nd, _ := m["no_data"].(bool)
	return nd
}
