package matcher

import (
	"runtime"
	"time"
)

// Tracker is side-car instrumentation for a batch run. It records chunk
// boundaries and memory snapshots and derives throughput metrics at the
// end. It observes the run and never alters matching outcomes.
type Tracker struct {
	now        func() time.Time
	start      time.Time
	startHeap  uint64
	peakHeap   uint64
	chunks     []ChunkMetric
	totalItems int
}

// ChunkMetric captures one completed chunk.
type ChunkMetric struct {
	Index       int           `json:"index"`
	Listings    int           `json:"listings"`
	Duration    time.Duration `json:"duration"`
	HeapAllocMB float64       `json:"heapAllocMb"`
}

// PerformanceReport is the derived view over a finished run.
type PerformanceReport struct {
	TotalDuration          time.Duration `json:"totalDuration"`
	Chunks                 []ChunkMetric `json:"chunks,omitempty"`
	ListingsPerSecond      float64       `json:"listingsPerSecond"`
	SolicitationsPerSecond float64       `json:"solicitationsPerSecond"`
	ScoredPairsPerSecond   float64       `json:"scoredPairsPerSecond"`
	EarlyTerminationRate   float64       `json:"earlyTerminationRate"`
	StartHeapAllocMB       float64       `json:"startHeapAllocMb"`
	PeakHeapAllocMB        float64       `json:"peakHeapAllocMb"`
}

// NewTracker snapshots the wall clock and heap at run start.
func NewTracker(now func() time.Time) *Tracker {
	if now == nil {
		now = time.Now
	}
	heap := heapAlloc()
	return &Tracker{
		now:       now,
		start:     now(),
		startHeap: heap,
		peakHeap:  heap,
	}
}

// RecordChunk registers a completed chunk and takes a memory snapshot.
// The reducer calls it from a single goroutine.
func (t *Tracker) RecordChunk(index, listings int, duration time.Duration) {
	heap := heapAlloc()
	if heap > t.peakHeap {
		t.peakHeap = heap
	}
	t.totalItems += listings
	t.chunks = append(t.chunks, ChunkMetric{
		Index:       index,
		Listings:    listings,
		Duration:    duration,
		HeapAllocMB: toMB(heap),
	})
}

// Finalize derives the aggregate report. Scored pairs exclude pairs that
// were terminated early.
func (t *Tracker) Finalize(listings, solicitations, processed, earlyTerminated int) PerformanceReport {
	elapsed := t.now().Sub(t.start)
	report := PerformanceReport{
		TotalDuration:    elapsed,
		Chunks:           t.chunks,
		StartHeapAllocMB: toMB(t.startHeap),
		PeakHeapAllocMB:  toMB(t.peakHeap),
	}

	if secs := elapsed.Seconds(); secs > 0 {
		report.ListingsPerSecond = float64(listings) / secs
		report.SolicitationsPerSecond = float64(solicitations) / secs
		report.ScoredPairsPerSecond = float64(processed-earlyTerminated) / secs
	}
	if processed > 0 {
		report.EarlyTerminationRate = float64(earlyTerminated) / float64(processed)
	}

	return report
}

func heapAlloc() uint64 {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return m.HeapAlloc
}

func toMB(b uint64) float64 {
	return float64(b) / (1024 * 1024)
}
