package trace

// SimulationTrace collects dispatch records during a single scheduling run.
type SimulationTrace struct {
	Slices     []SliceRecord
	Idles      []IdleRecord
	Promotions []PromotionRecord
}

// NewSimulationTrace creates a SimulationTrace ready for recording.
func NewSimulationTrace() *SimulationTrace {
	return &SimulationTrace{
		Slices:     make([]SliceRecord, 0),
		Idles:      make([]IdleRecord, 0),
		Promotions: make([]PromotionRecord, 0),
	}
}

// RecordSlice appends a dispatch slice.
func (st *SimulationTrace) RecordSlice(record SliceRecord) {
	st.Slices = append(st.Slices, record)
}

// RecordIdle appends an idle stretch, extending the previous one when contiguous.
func (st *SimulationTrace) RecordIdle(start, end int64) {
	if n := len(st.Idles); n > 0 && st.Idles[n-1].End == start {
		st.Idles[n-1].End = end
		return
	}
	st.Idles = append(st.Idles, IdleRecord{Start: start, End: end})
}

// RecordPromotion appends an aging promotion.
func (st *SimulationTrace) RecordPromotion(record PromotionRecord) {
	st.Promotions = append(st.Promotions, record)
}

// Gantt returns the slices with adjacent slices of the same process merged,
// which turns unit-granularity runs into one bar per uninterrupted stretch.
func (st *SimulationTrace) Gantt() []SliceRecord {
	if st == nil {
		return nil
	}
	merged := make([]SliceRecord, 0, len(st.Slices))
	for _, s := range st.Slices {
		if n := len(merged); n > 0 && merged[n-1].ProcessID == s.ProcessID && merged[n-1].End == s.Start {
			merged[n-1].End = s.End
			continue
		}
		merged = append(merged, s)
	}
	return merged
}
