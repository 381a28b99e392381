// sim/metrics_utils.go
package sim

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"slices"

	"github.com/sirupsen/logrus"
)

type IntOrFloat64 interface {
	int | int64 | float64
}

// CalculatePercentile is a util function that calculates the p-th percentile
// of a sorted data list by linear interpolation between closest ranks.
// Returns 0 for an empty list.
func CalculatePercentile[T IntOrFloat64](data []T, p float64) float64 {
	n := len(data)
	if n == 0 {
		return 0
	}

	rank := p / 100.0 * float64(n-1)
	lowerIdx := int(math.Floor(rank))
	upperIdx := int(math.Ceil(rank))

	if lowerIdx == upperIdx {
		return float64(data[lowerIdx])
	}
	if upperIdx >= n {
		return float64(data[n-1])
	}
	lowerVal := data[lowerIdx]
	upperVal := data[upperIdx]
	return float64(lowerVal) + float64(upperVal-lowerVal)*(rank-float64(lowerIdx))
}

// CalculateMean is a util function that calculates the mean of a data list
func CalculateMean[T IntOrFloat64](numbers []T) float64 {
	if len(numbers) == 0 {
		return 0.0
	}

	sum := 0.0
	for _, number := range numbers {
		sum += float64(number)
	}

	return sum / float64(len(numbers))
}

func sortedCopy[T IntOrFloat64](data []T) []T {
	out := slices.Clone(data)
	slices.Sort(out)
	return out
}

// ProcessOutput is the JSON form of one process's results.
type ProcessOutput struct {
	ID             int   `json:"id"`
	ArrivalTime    int64 `json:"arrival"`
	BurstTime      int64 `json:"burst"`
	Priority       int   `json:"priority"`
	WaitingTime    int64 `json:"waiting"`
	TurnaroundTime int64 `json:"turnaround"`
	ResponseTime   int64 `json:"response"`
	CompletionTime int64 `json:"completion"`
}

// SliceOutput is the JSON form of one merged Gantt bar.
type SliceOutput struct {
	ProcessID int   `json:"process_id"`
	Start     int64 `json:"start"`
	End       int64 `json:"end"`
}

// RunOutput is the JSON document written by SaveResults and returned by the HTTP API.
type RunOutput struct {
	Policy    string          `json:"policy"`
	Config    Config          `json:"config"`
	EndTime   int64           `json:"end_time"`
	Summary   *Summary        `json:"summary"`
	Processes []ProcessOutput `json:"processes"`
	Gantt     []SliceOutput   `json:"gantt"`
}

// NewRunOutput flattens a Result and its Summary into the JSON output form.
func NewRunOutput(res *Result, s *Summary) RunOutput {
	out := RunOutput{
		Policy:    res.Policy,
		Config:    res.Config,
		EndTime:   res.EndTime,
		Summary:   s,
		Processes: make([]ProcessOutput, 0, len(res.Processes)),
		Gantt:     make([]SliceOutput, 0),
	}
	for _, p := range res.Processes {
		out.Processes = append(out.Processes, ProcessOutput{
			ID:             p.ID,
			ArrivalTime:    p.ArrivalTime,
			BurstTime:      p.TotalBurst,
			Priority:       p.Priority,
			WaitingTime:    p.WaitingTime,
			TurnaroundTime: p.TurnaroundTime,
			ResponseTime:   p.ResponseTime,
			CompletionTime: p.CompletionTime,
		})
	}
	for _, b := range res.Trace.Gantt() {
		out.Gantt = append(out.Gantt, SliceOutput{ProcessID: b.ProcessID, Start: b.Start, End: b.End})
	}
	return out
}

// SaveResults writes the outputs of one or more runs to fileName as indented JSON.
func SaveResults(fileName string, outputs []RunOutput) error {
	data, err := json.MarshalIndent(outputs, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding results: %w", err)
	}
	if err := os.WriteFile(fileName, data, 0o644); err != nil {
		return fmt.Errorf("writing results to %s: %w", fileName, err)
	}
	logrus.Debugf("Successfully wrote %d run(s) to '%s'", len(outputs), fileName)
	return nil
}
