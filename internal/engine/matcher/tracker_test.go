package matcher

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTracker_Finalize(t *testing.T) {
	clock := fixedNow
	now := func() time.Time { return clock }

	tracker := NewTracker(now)
	tracker.RecordChunk(0, 50, 120*time.Millisecond)
	tracker.RecordChunk(1, 30, 80*time.Millisecond)

	clock = clock.Add(2 * time.Second)
	report := tracker.Finalize(80, 10, 800, 200)

	assert.Equal(t, 2*time.Second, report.TotalDuration)
	assert.InDelta(t, 40.0, report.ListingsPerSecond, 0.001)
	assert.InDelta(t, 5.0, report.SolicitationsPerSecond, 0.001)
	// Scored pairs exclude the early-terminated ones.
	assert.InDelta(t, 300.0, report.ScoredPairsPerSecond, 0.001)
	assert.InDelta(t, 0.25, report.EarlyTerminationRate, 0.001)

	require.Len(t, report.Chunks, 2)
	assert.Equal(t, 0, report.Chunks[0].Index)
	assert.Equal(t, 50, report.Chunks[0].Listings)
	assert.Equal(t, 120*time.Millisecond, report.Chunks[0].Duration)
	assert.Greater(t, report.Chunks[0].HeapAllocMB, 0.0)
}

func TestTracker_ZeroDurationAndZeroProcessed(t *testing.T) {
	now := func() time.Time { return fixedNow }
	report := NewTracker(now).Finalize(0, 0, 0, 0)

	assert.Equal(t, time.Duration(0), report.TotalDuration)
	assert.Equal(t, 0.0, report.ListingsPerSecond)
	assert.Equal(t, 0.0, report.EarlyTerminationRate)
	assert.Empty(t, report.Chunks)
}

func TestTracker_PeakHeapNeverBelowStart(t *testing.T) {
	tracker := NewTracker(nil)
	tracker.RecordChunk(0, 10, time.Millisecond)
	report := tracker.Finalize(10, 1, 10, 0)

	assert.GreaterOrEqual(t, report.PeakHeapAllocMB, report.StartHeapAllocMB)
}
