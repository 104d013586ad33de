package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	commonerrors "leasematch/internal/common/errors"
	"leasematch/internal/common/logger"
	"leasematch/internal/common/validation"
	"leasematch/internal/models"
)

const solicitationQuery = `
	SELECT id, document, response_deadline
	FROM solicitations
	WHERE active = true AND response_deadline >= $1
	ORDER BY response_deadline`

type SolicitationStore struct {
	db     *sql.DB
	logger logger.Logger
	now    func() time.Time
}

func NewSolicitationStore(db *sql.DB, log logger.Logger) *SolicitationStore {
	return &SolicitationStore{db: db, logger: log, now: time.Now}
}

// FetchActiveSolicitations returns active, non-expired solicitations. The
// ingestion pipeline stores each one as a raw JSON document; rows whose
// document fails schema validation are logged and skipped rather than
// failing the run.
func (s *SolicitationStore) FetchActiveSolicitations(ctx context.Context) ([]models.Solicitation, error) {
	rows, err := s.db.QueryContext(ctx, solicitationQuery, s.now())
	if err != nil {
		return nil, fmt.Errorf("query active solicitations: %w", err)
	}
	defer rows.Close()

	var solicitations []models.Solicitation
	for rows.Next() {
		var (
			id       string
			document []byte
			deadline time.Time
		)
		if err := rows.Scan(&id, &document, &deadline); err != nil {
			return nil, fmt.Errorf("scan solicitation: %w", err)
		}

		if err := validation.ValidateSolicitationDocument(document); err != nil {
			invalid := commonerrors.NewInvalidSolicitationPayloadError(id, err.Error())
			s.logger.Warn("skipping invalid solicitation document", map[string]interface{}{
				"solicitationId": id,
				"error":          invalid.Details,
			})
			continue
		}

		var sol models.Solicitation
		if err := json.Unmarshal(document, &sol); err != nil {
			s.logger.Warn("skipping undecodable solicitation document", map[string]interface{}{
				"solicitationId": id,
				"error":          err.Error(),
			})
			continue
		}

		sol.ID = id
		sol.ResponseDeadline = deadline
		sol.Active = true
		solicitations = append(solicitations, sol)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate solicitations: %w", err)
	}

	s.logger.Debug("fetched active solicitations", map[string]interface{}{"count": len(solicitations)})
	return solicitations, nil
}
