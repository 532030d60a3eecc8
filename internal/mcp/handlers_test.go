package mcp

import (
	"context"
	"errors"
	"strings"
	"testing"

	"runway-dss/internal/assumptions"
	"runway-dss/internal/engine"
	"runway-dss/internal/narrative"
	"runway-dss/internal/session"
	"runway-dss/internal/trajectory"
)

type stubEngine struct {
	response *engine.SimulationResponse
	err      error
	lastReq  *engine.SimulationRequest
	calls    int
}

func (s *stubEngine) Simulate(_ context.Context, req *engine.SimulationRequest) (*engine.SimulationResponse, error) {
	s.calls++
	s.lastReq = req
	if s.err != nil {
		return nil, s.err
	}
	return s.response, nil
}

func (s *stubEngine) Health(_ context.Context) error { return nil }

func newTestServer(stub *stubEngine) *Server {
	s := &Server{
		engine:  stub,
		session: session.New(),
		synth:   trajectory.NewWithSeed(42),
	}
	s.tools = s.buildTools()
	return s
}

func fullResponse() *engine.SimulationResponse {
	month := 18.0
	percentiles := make([]engine.PathPercentile, 36)
	for m := range percentiles {
		percentiles[m] = engine.PathPercentile{
			Month: m, P5: 1000, P25: 3000, P50: 5000, P75: 7000, P95: 9000,
		}
	}
	return &engine.SimulationResponse{
		Summary: &engine.SummaryStats{
			ProbProfit:      0.75,
			ProbDouble:      0.40,
			ProbRuin:        0.10,
			ReturnMean:      0.60,
			MaxDrawdownMean: 0.25,
			BreakevenMean:   &month,
			Recommendation:  "GO",
		},
		Paths: &engine.PathData{Percentiles: percentiles},
		Outcomes: &engine.Outcomes{
			DoublePlus: 200, Profitable: 175, Loss: 75, Ruin: 50, Total: 500,
		},
		Premortem: &engine.Premortem{
			FailureRate: 0.25,
			PrimaryCauses: []engine.FailureCause{
				{DisplayName: "Churn Rate", AttributionScore: 0.5, Direction: "higher", DifferencePct: 30},
			},
		},
		Sensitivity: &engine.Sensitivity{
			Tornado: []engine.TornadoItem{
				{Parameter: "churn_rate", DisplayName: "Churn Rate", OutputAtBase: 100, OutputAtLow: 140, OutputAtHigh: 40},
				{Parameter: "dev_burn", DisplayName: "Dev Burn", OutputAtBase: 100, OutputAtLow: 115, OutputAtHigh: 80},
			},
		},
		Meta: &engine.Meta{NSimulations: 500, TimeHorizon: 36},
	}
}

func TestRunSimulationProducesShapedReport(t *testing.T) {
	stub := &stubEngine{response: fullResponse()}
	s := newTestServer(stub)

	data, err := s.handleRunSimulation(nil)
	if err != nil {
		t.Fatalf("handleRunSimulation failed: %v", err)
	}
	report := data.(map[string]interface{})

	if report["run_id"] == "" {
		t.Error("Expected a run ID in the report")
	}

	summary := report["summary"].(map[string]interface{})
	metrics := summary["metrics"].([]map[string]interface{})
	if len(metrics) != 5 {
		t.Fatalf("Expected 5 classified metrics, got %d", len(metrics))
	}
	byID := map[string]map[string]interface{}{}
	for _, m := range metrics {
		byID[m["id"].(string)] = m
	}
	if got := byID["probability-of-profit"]["status"]; got != narrative.StatusGood {
		t.Errorf("prob profit 0.75 should be good, got %v", got)
	}
	if got := byID["probability-of-ruin"]["status"]; got != narrative.StatusWarning {
		t.Errorf("prob ruin 0.10 should be warning, got %v", got)
	}
	if got := byID["mean-return"]["value"].(float64); got != 60 {
		t.Errorf("Expected mean return on percent scale (60), got %v", got)
	}

	premortem := report["premortem"].(map[string]interface{})
	if !strings.Contains(premortem["narrative"].(string), "Churn Rate") {
		t.Errorf("Expected dominant cause in narrative, got %v", premortem["narrative"])
	}

	tornado := report["tornado"].(map[string]interface{})
	bars := tornado["bars"].([]interface{})
	if len(bars) != 2 {
		t.Fatalf("Expected 2 tornado bars, got %d", len(bars))
	}
	top := bars[0].(map[string]interface{})
	if top["name"] != "Churn Rate" {
		t.Errorf("Expected Churn Rate as top driver, got %v", top["name"])
	}

	trajectories := report["trajectories"].(map[string]interface{})
	paths := trajectories["paths"].([]trajectory.Path)
	if len(paths) == 0 || len(paths) > 30 {
		t.Errorf("Expected between 1 and 30 display paths, got %d", len(paths))
	}

	if stub.lastReq.NSimulations != 500 {
		t.Errorf("Expected default run count 500, got %d", stub.lastReq.NSimulations)
	}
}

func TestRunSimulationEngineFailureKeepsPreviousRun(t *testing.T) {
	stub := &stubEngine{response: fullResponse()}
	s := newTestServer(stub)

	if _, err := s.handleRunSimulation(nil); err != nil {
		t.Fatalf("First run failed: %v", err)
	}
	first := s.session.Latest()

	stub.err = errors.New("engine unavailable")
	if _, err := s.handleRunSimulation(nil); err == nil {
		t.Fatal("Expected error when engine fails")
	}

	if s.session.Latest() != first {
		t.Error("Failed run must not displace the previous result")
	}
	data, err := s.handleGetMetricStatus(nil)
	if err != nil {
		t.Fatalf("handleGetMetricStatus failed: %v", err)
	}
	if isNoData(data.(map[string]interface{})) {
		t.Error("Previous run's views must stay available after an engine failure")
	}
}

func TestViewsDegradeToNoData(t *testing.T) {
	stub := &stubEngine{response: &engine.SimulationResponse{
		Meta: &engine.Meta{NSimulations: 500, TimeHorizon: 36},
	}}
	s := newTestServer(stub)

	if _, err := s.handleRunSimulation(nil); err != nil {
		t.Fatalf("handleRunSimulation failed: %v", err)
	}

	handlers := map[string]func(map[string]interface{}) (interface{}, error){
		"trajectories": s.handleGetTrajectories,
		"tornado":      s.handleGetTornado,
		"status":       s.handleGetMetricStatus,
		"premortem":    s.handleGetPremortemNarrative,
	}
	for name, h := range handlers {
		data, err := h(nil)
		if err != nil {
			t.Fatalf("%s handler errored instead of degrading: %v", name, err)
		}
		if !isNoData(data.(map[string]interface{})) {
			t.Errorf("%s view must report no data for a missing sub-payload", name)
		}
	}
}

func TestViewsBeforeFirstRun(t *testing.T) {
	s := newTestServer(&stubEngine{})

	data, err := s.handleGetTrajectories(nil)
	if err != nil {
		t.Fatalf("handleGetTrajectories failed: %v", err)
	}
	view := data.(map[string]interface{})
	if !isNoData(view) {
		t.Error("Expected no-data view before the first run")
	}
	if !strings.Contains(view["reason"].(string), "no simulation run") {
		t.Errorf("Expected reason to mention missing run, got %v", view["reason"])
	}
}

func TestSetAssumptionsHandler(t *testing.T) {
	s := newTestServer(&stubEngine{})

	data, err := s.handleSetAssumptions(map[string]interface{}{
		"assumptions": map[string]interface{}{"churn_rate": 0.2},
		"runs":        float64(1000),
		"horizon":     float64(48),
	})
	if err != nil {
		t.Fatalf("handleSetAssumptions failed: %v", err)
	}

	state := data.(map[string]interface{})
	if state["provenance"] != assumptions.Custom {
		t.Errorf("Expected custom provenance, got %v", state["provenance"])
	}
	cfg := s.session.RunConfig()
	if cfg.Runs != 1000 || cfg.Horizon != 48 {
		t.Errorf("Run config not applied, got %+v", cfg)
	}
}

func TestSetAssumptionsRejectsBadInput(t *testing.T) {
	s := newTestServer(&stubEngine{})

	if _, err := s.handleSetAssumptions(map[string]interface{}{
		"assumptions": map[string]interface{}{"no_such_field": 1.0},
	}); err == nil {
		t.Error("Expected error for unknown assumption field")
	}
	if _, err := s.handleSetAssumptions(map[string]interface{}{
		"runs": float64(333),
	}); err == nil {
		t.Error("Expected error for disallowed run count")
	}
}

func TestSetAssumptionsRiskEventPassthrough(t *testing.T) {
	stub := &stubEngine{response: fullResponse()}
	s := newTestServer(stub)

	_, err := s.handleSetAssumptions(map[string]interface{}{
		"risk_event_list": []interface{}{
			map[string]interface{}{
				"name":          "key client loss",
				"intensity":     0.5,
				"impact_type":   "revenue_shock",
				"severity_mode": 0.3,
			},
		},
	})
	if err != nil {
		t.Fatalf("handleSetAssumptions failed: %v", err)
	}

	if _, err := s.handleRunSimulation(nil); err != nil {
		t.Fatalf("handleRunSimulation failed: %v", err)
	}

	events := stub.lastReq.RiskEvents
	if len(events) != 1 || events[0].Name != "key client loss" {
		t.Fatalf("Expected risk event forwarded to engine, got %+v", events)
	}
	if events[0].Intensity != 0.5 || events[0].ImpactType != "revenue_shock" {
		t.Errorf("Risk event fields must pass through unchanged, got %+v", events[0])
	}
}

func TestApplyPresetHandler(t *testing.T) {
	s := newTestServer(&stubEngine{})

	data, err := s.handleApplyPreset(map[string]interface{}{"name": "Pessimistic"})
	if err != nil {
		t.Fatalf("handleApplyPreset failed: %v", err)
	}
	state := data.(map[string]interface{})
	if state["preset"] != "Pessimistic" {
		t.Errorf("Expected Pessimistic preset label, got %v", state["preset"])
	}

	if _, err := s.handleApplyPreset(map[string]interface{}{"name": "Nope"}); err == nil {
		t.Error("Expected error for unknown preset")
	}
}

func TestListPresetsHandler(t *testing.T) {
	s := newTestServer(&stubEngine{})

	data, err := s.handleListPresets(nil)
	if err != nil {
		t.Fatalf("handleListPresets failed: %v", err)
	}
	view := data.(map[string]interface{})
	presets := view["presets"].([]interface{})
	if len(presets) != 4 {
		t.Errorf("Expected 4 presets, got %d", len(presets))
	}
}

func TestGetAssumptionsIncludesSpecPreview(t *testing.T) {
	s := newTestServer(&stubEngine{})

	data, err := s.handleGetAssumptions(nil)
	if err != nil {
		t.Fatalf("handleGetAssumptions failed: %v", err)
	}
	state := data.(map[string]interface{})
	preview, ok := state["stochastic_spec_preview"].(*engine.SimulationRequest)
	if !ok {
		t.Fatal("Expected a stochastic spec preview")
	}
	if preview.InitialCapital.Type != "triangular" {
		t.Errorf("Expected triangular capital spec, got %q", preview.InitialCapital.Type)
	}
}
