// Package trace provides dispatch-trace recording for scheduling runs.
// This package has no dependencies on sim/; it stores pure data types.
package trace

// SliceRecord captures one contiguous stretch of CPU time given to a process.
type SliceRecord struct {
	ProcessID int
	Start     int64
	End       int64
	Level     int // ready-queue level the process was dispatched from (0 for single-queue policies)
}

// Duration returns End - Start.
func (r SliceRecord) Duration() int64 {
	return r.End - r.Start
}

// IdleRecord captures a stretch of time in which no process was runnable.
type IdleRecord struct {
	Start int64
	End   int64
}

// PromotionRecord captures an aging promotion between queue levels.
type PromotionRecord struct {
	ProcessID int
	Clock     int64
	From      int
	To        int
}
