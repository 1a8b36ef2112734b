package snapshot

import (
	"encoding/json"
	"fmt"
	"io"
)

// JSONSink writes one JSON object per line to w: the per-cycle snapshot
// stream, followed by the final statistics record. This is what the CLI's
// -trace flag wires up.
type JSONSink struct {
	w   io.Writer
	enc *json.Encoder
}

// NewJSONSink creates a JSONSink writing to w.
func NewJSONSink(w io.Writer) *JSONSink {
	return &JSONSink{w: w, enc: json.NewEncoder(w)}
}

// Emit writes one snapshot as a JSON line.
func (s *JSONSink) Emit(snap Snapshot) {
	_ = s.enc.Encode(snap)
}

// Finalize writes the final statistics record as a JSON line.
func (s *JSONSink) Finalize(stats Statistics) {
	_ = s.enc.Encode(stats)
}

// MemorySink buffers every snapshot and the final statistics record
// in-process. Used by controller tests to assert on the emitted stream
// without parsing JSON.
type MemorySink struct {
	Snapshots []Snapshot
	Stats     Statistics
}

// NewMemorySink creates an empty MemorySink.
func NewMemorySink() *MemorySink {
	return &MemorySink{}
}

// Emit appends snap to Snapshots.
func (s *MemorySink) Emit(snap Snapshot) {
	s.Snapshots = append(s.Snapshots, snap)
}

// Finalize records stats.
func (s *MemorySink) Finalize(stats Statistics) {
	s.Stats = stats
}

// TextSink writes a terse, human-readable line per cycle, in the style of
// the teacher's fmt.Fprintf-based CLI summaries.
type TextSink struct {
	w io.Writer
}

// NewTextSink creates a TextSink writing to w.
func NewTextSink(w io.Writer) *TextSink {
	return &TextSink{w: w}
}

// Emit prints one summary line for snap.
func (s *TextSink) Emit(snap Snapshot) {
	fmt.Fprintf(s.w, "cycle %6d  IF=%-11s ID=%-11s EX=%-11s MEM=%-11s WB=%-11s\n",
		snap.Cycle, snap.IFStatus, snap.IDStatus, snap.EXStatus, snap.MEMStatus, snap.WBStatus)
}

// Finalize prints the final statistics summary.
func (s *TextSink) Finalize(stats Statistics) {
	fmt.Fprintf(s.w, "\ndynamic_instructions=%d total_cycles=%d ic_hits=%d ic_misses=%d dc_hits=%d dc_misses=%d load_stalls=%d\n",
		stats.DynamicInstructions, stats.TotalCycles, stats.ICHits, stats.ICMisses, stats.DCHits, stats.DCMisses, stats.LoadStalls)
}
