// Package matcher orchestrates the cross-product of active listings
// against active solicitations. Listings are processed in bounded-size
// chunks fanned out to a worker pool; a single reducer merges each chunk's
// statistics and collects matches for persistence.
package matcher

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	commonerrors "leasematch/internal/common/errors"
	"leasematch/internal/common/logger"
	"leasematch/internal/common/metrics"
	"leasematch/internal/engine/extractor"
	"leasematch/internal/engine/scoring"
	"leasematch/internal/models"
)

const (
	DefaultMinScore  = 40
	DefaultChunkSize = 50
	DefaultWorkers   = 4

	// DefaultSpaceTooSmallFactor: a listing below this fraction of the
	// requirement's effective minimum is skipped without full scoring.
	// Empirical constant, preserved as-is.
	DefaultSpaceTooSmallFactor = 0.7
)

type ListingStore interface {
	FetchActiveListings(ctx context.Context) ([]models.Listing, error)
}

type SolicitationStore interface {
	FetchActiveSolicitations(ctx context.Context) ([]models.Solicitation, error)
}

type MatchStore interface {
	UpsertMatches(ctx context.Context, results []models.MatchResult) error
}

// ProfileStore resolves broker experience profiles. Optional; listings
// without a resolvable profile score with the configured default.
type ProfileStore interface {
	FetchProfile(ctx context.Context, brokerID string) (*models.ExperienceProfile, error)
}

// Options configures one engine instance. The default experience profile
// is part of the run configuration so callers with real profile data can
// override it without touching shared state.
type Options struct {
	MinScore            int
	ChunkSize           int
	Workers             int
	SpaceTooSmallFactor float64
	DefaultProfile      models.ExperienceProfile
	Now                 func() time.Time
}

func (o *Options) applyDefaults() {
	if o.MinScore <= 0 {
		o.MinScore = DefaultMinScore
	}
	if o.ChunkSize <= 0 {
		o.ChunkSize = DefaultChunkSize
	}
	if o.Workers <= 0 {
		o.Workers = DefaultWorkers
	}
	if o.SpaceTooSmallFactor <= 0 {
		o.SpaceTooSmallFactor = DefaultSpaceTooSmallFactor
	}
	if o.Now == nil {
		o.Now = time.Now
	}
}

type Engine struct {
	listings      ListingStore
	solicitations SolicitationStore
	matches       MatchStore
	profiles      ProfileStore
	logger        logger.Logger
	opts          Options
}

func New(listings ListingStore, solicitations SolicitationStore, matches MatchStore, profiles ProfileStore, log logger.Logger, opts Options) *Engine {
	opts.applyDefaults()
	return &Engine{
		listings:      listings,
		solicitations: solicitations,
		matches:       matches,
		profiles:      profiles,
		logger:        log.WithFields(map[string]interface{}{"component": "matcher"}),
		opts:          opts,
	}
}

type chunkJob struct {
	index    int
	listings []models.Listing
}

type chunkResult struct {
	index    int
	listings int
	duration time.Duration
	stats    chunkStats
	matches  []models.MatchResult
}

// RunMatching executes one full batch run. The returned statistics are
// non-nil even on terminal errors so callers can report what happened.
func (e *Engine) RunMatching(ctx context.Context) (*RunStatistics, error) {
	stats := &RunStatistics{
		RunID:                   uuid.NewString(),
		StartedAt:               e.opts.Now(),
		EarlyTerminationReasons: make(map[TerminationReason]int),
	}
	tracker := NewTracker(e.opts.Now)

	log := e.logger.WithFields(map[string]interface{}{"runId": stats.RunID})
	log.Info("starting batch matching run", map[string]interface{}{
		"minScore":  e.opts.MinScore,
		"chunkSize": e.opts.ChunkSize,
		"workers":   e.opts.Workers,
	})

	listings, err := e.listings.FetchActiveListings(ctx)
	if err != nil {
		return e.finish(stats, tracker, "error"), commonerrors.NewListingFetchFailedError(err)
	}
	if len(listings) == 0 {
		return e.finish(stats, tracker, "empty"), commonerrors.NewNoActiveListingsError()
	}

	solicitations, err := e.solicitations.FetchActiveSolicitations(ctx)
	if err != nil {
		return e.finish(stats, tracker, "error"), commonerrors.NewSolicitationFetchFailedError(err)
	}
	if len(solicitations) == 0 {
		return e.finish(stats, tracker, "empty"), commonerrors.NewNoActiveSolicitationsError()
	}

	stats.ListingCount = len(listings)
	stats.SolicitationCount = len(solicitations)

	// Requirements are recomputed fresh on every run, never cached.
	requirements := make([]models.Requirement, len(solicitations))
	for i, s := range solicitations {
		requirements[i] = extractor.Extract(s)
	}

	// Profile resolution happens before chunking so no I/O ever occurs
	// inside the scoring loop.
	profiles := e.resolveProfiles(ctx, listings)

	collected := e.runChunks(ctx, listings, requirements, profiles, stats, tracker)

	var runErr error
	if len(collected) > 0 {
		if err := e.matches.UpsertMatches(ctx, collected); err != nil {
			// The computed results still count in the statistics; only
			// their durability is affected.
			persistErr := commonerrors.NewMatchPersistFailedError(err)
			stats.Errors = append(stats.Errors, persistErr.Error())
			runErr = persistErr
		}
	}

	status := "success"
	if runErr != nil {
		status = "persist_error"
	}
	e.finish(stats, tracker, status)

	log.Info("batch matching run complete", map[string]interface{}{
		"processed":       stats.Processed,
		"matched":         stats.Matched,
		"skipped":         stats.Skipped,
		"earlyTerminated": stats.EarlyTerminated,
		"duration":        stats.Duration.String(),
		"errors":          len(stats.Errors),
	})

	return stats, runErr
}

// runChunks fans chunk jobs out to the worker pool and reduces results on
// the calling goroutine. Cancellation stops further submissions; in-flight
// chunks complete and their results are kept.
func (e *Engine) runChunks(ctx context.Context, listings []models.Listing, requirements []models.Requirement, profiles map[string]models.ExperienceProfile, stats *RunStatistics, tracker *Tracker) []models.MatchResult {
	jobs := make(chan chunkJob)
	results := make(chan chunkResult)

	var wg sync.WaitGroup
	for i := 0; i < e.opts.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range jobs {
				results <- e.scoreChunk(job, requirements, profiles)
			}
		}()
	}

	go func() {
		defer close(jobs)
		for index, start := 0, 0; start < len(listings); index, start = index+1, start+e.opts.ChunkSize {
			end := start + e.opts.ChunkSize
			if end > len(listings) {
				end = len(listings)
			}
			select {
			case <-ctx.Done():
				return
			case jobs <- chunkJob{index: index, listings: listings[start:end]}:
			}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	var collected []models.MatchResult
	for res := range results {
		stats.merge(res.stats)
		collected = append(collected, res.matches...)
		tracker.RecordChunk(res.index, res.listings, res.duration)
		metrics.ChunkDuration.Observe(res.duration.Seconds())
	}
	return collected
}

// scoreChunk scores every (listing, solicitation) pair in one chunk and
// returns a plain statistics struct for the reducer to merge.
func (e *Engine) scoreChunk(job chunkJob, requirements []models.Requirement, profiles map[string]models.ExperienceProfile) chunkResult {
	start := time.Now()
	cs := newChunkStats()
	var matches []models.MatchResult

	for _, listing := range job.listings {
		profile := profiles[listing.ID]
		for _, req := range requirements {
			switch {
			case !req.Viable():
				cs.terminate(ReasonInvalidRequirements)
				continue
			case !strings.EqualFold(listing.State, req.Location.State):
				cs.terminate(ReasonStateMismatch)
				continue
			}
			if effMin, ok := req.Space.EffectiveMinimum(); ok && listing.EffectiveArea() < e.opts.SpaceTooSmallFactor*effMin {
				cs.terminate(ReasonSpaceTooSmall)
				continue
			}

			cs.processed++
			result, err := e.scorePair(listing, req, profile)
			if err != nil {
				cs.errors = append(cs.errors, commonerrors.NewPairScoringFailedError(listing.ID, req.SolicitationID, err).Error())
				continue
			}
			if result.OverallScore >= e.opts.MinScore {
				cs.matched++
				matches = append(matches, result)
			} else {
				cs.skipped++
			}
		}
	}

	return chunkResult{
		index:    job.index,
		listings: len(job.listings),
		duration: time.Since(start),
		stats:    cs,
		matches:  matches,
	}
}

// scorePair isolates one pair: a panic while scoring is converted into an
// error so a single bad pair never aborts the run.
func (e *Engine) scorePair(listing models.Listing, req models.Requirement, profile models.ExperienceProfile) (result models.MatchResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("scoring panic: %v", r)
		}
	}()
	result = scoring.ScoreMatch(listing, req, profile, e.opts.Now())
	return result, nil
}

// resolveProfiles maps each listing to the experience profile it scores
// with: the listing's own, then the profile store's, then the default.
func (e *Engine) resolveProfiles(ctx context.Context, listings []models.Listing) map[string]models.ExperienceProfile {
	out := make(map[string]models.ExperienceProfile, len(listings))
	for _, l := range listings {
		if l.Profile != nil {
			out[l.ID] = *l.Profile
			continue
		}
		if e.profiles != nil && l.BrokerID != "" {
			profile, err := e.profiles.FetchProfile(ctx, l.BrokerID)
			if err != nil {
				e.logger.Warn("profile fetch failed, using default", map[string]interface{}{
					"brokerId": l.BrokerID,
					"error":    err.Error(),
				})
			} else if profile != nil {
				out[l.ID] = *profile
				continue
			}
		}
		out[l.ID] = e.opts.DefaultProfile
	}
	return out
}

func (e *Engine) finish(stats *RunStatistics, tracker *Tracker, status string) *RunStatistics {
	stats.CompletedAt = e.opts.Now()
	stats.Duration = stats.CompletedAt.Sub(stats.StartedAt)
	stats.Performance = tracker.Finalize(stats.ListingCount, stats.SolicitationCount, stats.Processed, stats.EarlyTerminated)

	metrics.MatchRunsTotal.WithLabelValues(status).Inc()
	metrics.PairsProcessedTotal.Add(float64(stats.Processed))
	metrics.PairsMatchedTotal.Add(float64(stats.Matched))
	for reason, n := range stats.EarlyTerminationReasons {
		metrics.PairsEarlyTerminatedTotal.WithLabelValues(string(reason)).Add(float64(n))
	}
	metrics.RunDuration.Observe(stats.Duration.Seconds())

	return stats
}
