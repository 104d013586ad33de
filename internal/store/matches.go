package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"leasematch/internal/common/logger"
	"leasematch/internal/models"
)

const upsertMatchQuery = `
	INSERT INTO match_results (
		listing_id, solicitation_id, overall_score, grade, qualified, competitive,
		factor_scores, disqualifiers, strengths, weaknesses, recommendations, scored_at
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	ON CONFLICT (listing_id, solicitation_id) DO UPDATE SET
		overall_score   = EXCLUDED.overall_score,
		grade           = EXCLUDED.grade,
		qualified       = EXCLUDED.qualified,
		competitive     = EXCLUDED.competitive,
		factor_scores   = EXCLUDED.factor_scores,
		disqualifiers   = EXCLUDED.disqualifiers,
		strengths       = EXCLUDED.strengths,
		weaknesses      = EXCLUDED.weaknesses,
		recommendations = EXCLUDED.recommendations,
		scored_at       = EXCLUDED.scored_at`

type MatchStore struct {
	db     *sql.DB
	logger logger.Logger
}

func NewMatchStore(db *sql.DB, log logger.Logger) *MatchStore {
	return &MatchStore{db: db, logger: log}
}

// factorScores is the persisted jsonb shape of the five factor scores.
type factorScores struct {
	Location   models.LocationScore   `json:"location"`
	Space      models.SpaceScore      `json:"space"`
	Building   models.BuildingScore   `json:"building"`
	Timeline   models.TimelineScore   `json:"timeline"`
	Experience models.ExperienceScore `json:"experience"`
}

// UpsertMatches writes all results of one run in a single transaction,
// keyed by (listing_id, solicitation_id). Reruns overwrite prior rows for
// the same pair, never duplicate them.
func (s *MatchStore) UpsertMatches(ctx context.Context, results []models.MatchResult) error {
	if len(results) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin match upsert: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, upsertMatchQuery)
	if err != nil {
		return fmt.Errorf("prepare match upsert: %w", err)
	}
	defer stmt.Close()

	for _, r := range results {
		factors, err := json.Marshal(factorScores{
			Location:   r.Location,
			Space:      r.Space,
			Building:   r.Building,
			Timeline:   r.Timeline,
			Experience: r.Experience,
		})
		if err != nil {
			return fmt.Errorf("marshal factor scores for %s/%s: %w", r.ListingID, r.SolicitationID, err)
		}

		_, err = stmt.ExecContext(ctx,
			r.ListingID, r.SolicitationID, r.OverallScore, r.Grade, r.Qualified, r.Competitive,
			factors, mustJSON(r.Disqualifiers), mustJSON(r.Strengths),
			mustJSON(r.Weaknesses), mustJSON(r.Recommendations), r.ScoredAt,
		)
		if err != nil {
			return fmt.Errorf("upsert match %s/%s: %w", r.ListingID, r.SolicitationID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit match upsert: %w", err)
	}

	s.logger.Info("persisted match results", map[string]interface{}{"count": len(results)})
	return nil
}

func mustJSON(items []string) []byte {
	if items == nil {
		items = []string{}
	}
	b, _ := json.Marshal(items)
	return b
}
