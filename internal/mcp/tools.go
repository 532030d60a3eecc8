package mcp

import (
	"fmt"

	"github.com/google/jsonschema-go/jsonschema"
)

// tool pairs a catalog entry with its resolved argument schema and handler.
// Schemas are resolved once at construction; tools/call validates arguments
// against the resolved schema before the handler runs.
type tool struct {
	name        string
	description string
	schema      *jsonschema.Schema
	resolved    *jsonschema.Resolved
	handler     func(args map[string]interface{}) (interface{}, error)
}

func mustResolve(s *jsonschema.Schema) *jsonschema.Resolved {
	r, err := s.Resolve(nil)
	if err != nil {
		panic(fmt.Sprintf("invalid tool schema: %v", err))
	}
	return r
}

func newTool(name, description string, schema *jsonschema.Schema, handler func(args map[string]interface{}) (interface{}, error)) *tool {
	return &tool{
		name:        name,
		description: description,
		schema:      schema,
		resolved:    mustResolve(schema),
		handler:     handler,
	}
}

func emptySchema() *jsonschema.Schema {
	return &jsonschema.Schema{Type: "object"}
}

func (s *Server) buildTools() []*tool {
	return []*tool{
		newTool("list_presets",
			"List the available assumption presets with their full parameter values and how each deviates from the Base scenario. Also returns the allowed simulation run counts and horizon range.",
			emptySchema(),
			s.handleListPresets),

		newTool("apply_preset",
			"Replace the live assumption set wholesale with a named preset (Base, Conservative, Aggressive, Pessimistic). Marks the session as preset-derived until the next manual edit.",
			&jsonschema.Schema{
				Type: "object",
				Properties: map[string]*jsonschema.Schema{
					"name": {Type: "string", Description: "Preset name, e.g. 'Base'"},
				},
				Required: []string{"name"},
			},
			s.handleApplyPreset),

		newTool("set_assumptions",
			"Apply partial edits to the live assumption set and/or the run configuration. Any assumption edit marks the session as custom. Unknown field names are rejected.\n\n"+
				"Assumption fields: initial_capital, dev_duration, dev_burn, leads_per_month, win_rate_bumn, win_rate_open, bumn_ratio, contract_small, contract_medium, contract_large, churn_rate, op_overhead, cost_per_customer.",
			&jsonschema.Schema{
				Type: "object",
				Properties: map[string]*jsonschema.Schema{
					"assumptions": {
						Type:                 "object",
						Description:          "Map of assumption field names to new numeric values.",
						AdditionalProperties: &jsonschema.Schema{Type: "number"},
					},
					"runs":             {Type: "integer", Description: "Simulation run count. One of 200, 500, 1000, 2000."},
					"horizon":          {Type: "integer", Description: "Time horizon in months (6-120)."},
					"seed":             {Type: "integer", Description: "Optional RNG seed for reproducible runs."},
					"regime_switching": {Type: "boolean", Description: "Enable market regime switching (default true)."},
					"risk_events":      {Type: "boolean", Description: "Enable stochastic risk events (default true)."},
					"risk_event_list": {
						Type:        "array",
						Description: "Replace the configured risk events. Each event passes through to the engine unchanged.",
						Items: &jsonschema.Schema{
							Type: "object",
							Properties: map[string]*jsonschema.Schema{
								"name":          {Type: "string"},
								"intensity":     {Type: "number", Description: "Annual arrival rate."},
								"impact_type":   {Type: "string"},
								"severity_min":  {Type: "number"},
								"severity_mode": {Type: "number"},
								"severity_max":  {Type: "number"},
								"recovery_rate": {Type: "number"},
								"start_month":   {Type: "integer"},
								"end_month":     {Type: "integer"},
							},
							Required: []string{"name", "intensity", "impact_type"},
						},
					},
				},
			},
			s.handleSetAssumptions),

		newTool("get_assumptions",
			"Get the live assumption set, its provenance (preset-derived or custom), the run configuration, and a preview of the stochastic specification the engine would receive.",
			emptySchema(),
			s.handleGetAssumptions),

		newTool("run_simulation",
			"Map the live assumptions to a stochastic specification, submit it to the Monte-Carlo engine, and return the shaped run report (metric statuses, failure narrative, tornado, trajectory summary). \n\n"+
				"If the engine is unavailable the previous run's views remain intact. A run superseded by a newer one before completion is discarded.",
			emptySchema(),
			s.handleRunSimulation),

		newTool("get_trajectories",
			"Get the display trajectory set of the latest run: up to 30 paths with best, worst and median cases marked. Literal engine sample paths are used when present; otherwise paths are synthesized from the percentile bands.",
			emptySchema(),
			s.handleGetTrajectories),

		newTool("get_tornado",
			"Get the normalized sensitivity tornado of the latest run: per-parameter output deltas versus base, sorted by swing, capped to the top 8 drivers, with a shared symmetric axis bound.",
			emptySchema(),
			s.handleGetTornado),

		newTool("get_metric_status",
			"Classify the latest run's summary metrics into good/warning/bad status bands using fixed thresholds.",
			emptySchema(),
			s.handleGetMetricStatus),

		newTool("get_premortem_narrative",
			"Get the plain-language failure narrative of the latest run: dominant or combined failure causes, typical failure pattern, and supporting premortem detail.",
			emptySchema(),
			s.handleGetPremortemNarrative),
	}
}
