package api

import "github.com/inference-sim/cpusim/sim"

// ScheduleRequest is the body of the schedule and compare endpoints.
// Omitted parameters fall back to the server's defaults.
type ScheduleRequest struct {
	Quantum     *int64            `json:"quantum,omitempty"`
	Levels      *int              `json:"levels,omitempty"`
	AgingFactor *int64            `json:"aging_factor,omitempty"`
	Processes   []sim.ProcessSpec `json:"processes"`
}

// config overlays the request's parameters on the defaults.
func (r *ScheduleRequest) config(defaults sim.Config) sim.Config {
	cfg := defaults
	if r.Quantum != nil {
		cfg.Quantum = *r.Quantum
	}
	if r.Levels != nil {
		cfg.Levels = *r.Levels
	}
	if r.AgingFactor != nil {
		cfg.AgingFactor = *r.AgingFactor
	}
	return cfg
}

// ScheduleResponse is one run's output, with the stored run ID when persistence is enabled.
type ScheduleResponse struct {
	RunID string `json:"run_id,omitempty"`
	sim.RunOutput
}

// CompareResponse holds one response per policy in presentation order.
type CompareResponse struct {
	Results []ScheduleResponse `json:"results"`
}

// PolicyInfo describes one policy for GET /policies.
type PolicyInfo struct {
	Name         string `json:"name"`
	Description  string `json:"description"`
	NeedsQuantum bool   `json:"needs_quantum"`
}
