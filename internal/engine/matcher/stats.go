package matcher

import "time"

// TerminationReason labels why a pair was skipped before full scoring.
type TerminationReason string

const (
	ReasonInvalidRequirements TerminationReason = "INVALID_REQUIREMENTS"
	ReasonStateMismatch       TerminationReason = "STATE_MISMATCH"
	ReasonSpaceTooSmall       TerminationReason = "SPACE_TOO_SMALL"
)

// RunStatistics aggregates one batch invocation. It is returned to the
// caller and never persisted; only the match results are durable.
type RunStatistics struct {
	RunID                   string                    `json:"runId"`
	StartedAt               time.Time                 `json:"startedAt"`
	CompletedAt             time.Time                 `json:"completedAt"`
	Duration                time.Duration             `json:"duration"`
	ListingCount            int                       `json:"listingCount"`
	SolicitationCount       int                       `json:"solicitationCount"`
	Processed               int                       `json:"processed"`
	Matched                 int                       `json:"matched"`
	Skipped                 int                       `json:"skipped"`
	EarlyTerminated         int                       `json:"earlyTerminated"`
	EarlyTerminationReasons map[TerminationReason]int `json:"earlyTerminationReasons"`
	Errors                  []string                  `json:"errors,omitempty"`
	Performance             PerformanceReport         `json:"performance"`
}

// chunkStats is the plain statistics struct each chunk worker returns.
// Chunk results are merged by a single reducer via addition; workers never
// share counters.
type chunkStats struct {
	processed       int
	matched         int
	skipped         int
	earlyTerminated int
	reasons         map[TerminationReason]int
	errors          []string
}

func newChunkStats() chunkStats {
	return chunkStats{reasons: make(map[TerminationReason]int)}
}

func (s *chunkStats) terminate(reason TerminationReason) {
	s.processed++
	s.earlyTerminated++
	s.reasons[reason]++
}

func (stats *RunStatistics) merge(cs chunkStats) {
	stats.Processed += cs.processed
	stats.Matched += cs.matched
	stats.Skipped += cs.skipped
	stats.EarlyTerminated += cs.earlyTerminated
	for reason, n := range cs.reasons {
		stats.EarlyTerminationReasons[reason] += n
	}
	stats.Errors = append(stats.Errors, cs.errors...)
}
