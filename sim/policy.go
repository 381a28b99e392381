package sim

import "fmt"

// Policy drives a Simulator from time 0 until every process has completed.
// Implementations select which eligible process runs next and for how long,
// using the Simulator's Execute/Complete/IdleTick helpers so that clock and
// bookkeeping rules are shared.
type Policy interface {
	Name() string
	Schedule(sim *Simulator)
}

// Policy names accepted by NewPolicy.
const (
	PolicyFCFS     = "fcfs"
	PolicyRR       = "rr"
	PolicySPN      = "spn"
	PolicySRT      = "srt"
	PolicyHRRN     = "hrrn"
	PolicyFeedback = "feedback"
	PolicyAging    = "aging"
)

// policyNames lists the policies in presentation order.
var policyNames = []string{PolicyFCFS, PolicyRR, PolicySPN, PolicySRT, PolicyHRRN, PolicyFeedback, PolicyAging}

// validPolicies is the set of recognized policy names, mapped to whether the policy takes a quantum.
var validPolicies = map[string]bool{
	PolicyFCFS:     false,
	PolicyRR:       true,
	PolicySPN:      false,
	PolicySRT:      false,
	PolicyHRRN:     false,
	PolicyFeedback: true,
	PolicyAging:    true,
}

// policyDescriptions holds the long names shown by the CLI and the API.
var policyDescriptions = map[string]string{
	PolicyFCFS:     "First-Come First-Served",
	PolicyRR:       "Round Robin",
	PolicySPN:      "Shortest Process Next",
	PolicySRT:      "Shortest Remaining Time",
	PolicyHRRN:     "Highest Response Ratio Next",
	PolicyFeedback: "Multilevel Feedback",
	PolicyAging:    "Priority with Aging",
}

// PolicyNames returns every policy name in presentation order.
func PolicyNames() []string {
	names := make([]string, len(policyNames))
	copy(names, policyNames)
	return names
}

// IsValidPolicy returns true if name is a recognized policy.
func IsValidPolicy(name string) bool {
	_, ok := validPolicies[name]
	return ok
}

// PolicyNeedsQuantum reports whether the named policy requires a positive quantum.
func PolicyNeedsQuantum(name string) bool {
	return validPolicies[name]
}

// PolicyDescription returns the long name of a policy, or "" if unknown.
func PolicyDescription(name string) string {
	return policyDescriptions[name]
}

// NewPolicy creates a Policy by name, validating the config parameters it uses.
// Panics on unrecognized names; check IsValidPolicy first.
func NewPolicy(name string, cfg Config) (Policy, error) {
	if !IsValidPolicy(name) {
		panic(fmt.Sprintf("unknown policy %q", name))
	}
	if err := cfg.Validate(name); err != nil {
		return nil, err
	}
	switch name {
	case PolicyFCFS:
		return &FCFS{}, nil
	case PolicyRR:
		return &RoundRobin{Quantum: cfg.Quantum}, nil
	case PolicySPN:
		return &SPN{}, nil
	case PolicySRT:
		return &SRT{}, nil
	case PolicyHRRN:
		return &HRRN{}, nil
	case PolicyFeedback:
		return &Feedback{BaseQuantum: cfg.Quantum, Levels: cfg.Levels}, nil
	case PolicyAging:
		return &Aging{Quantum: cfg.Quantum, Levels: cfg.Levels, AgingFactor: cfg.AgingFactor}, nil
	default:
		panic(fmt.Sprintf("unhandled policy %q", name))
	}
}
