package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"leasematch/internal/common/logger"
	"leasematch/internal/models"
)

func sampleResult(listingID, solicitationID string) models.MatchResult {
	return models.MatchResult{
		ListingID:      listingID,
		SolicitationID: solicitationID,
		OverallScore:   87,
		Grade:          models.GradeA,
		Qualified:      true,
		Competitive:    true,
		Strengths:      []string{"space requirements fully met"},
		ScoredAt:       time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestUpsertMatches(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	prep := mock.ExpectPrepare("INSERT INTO match_results")
	prep.ExpectExec().WillReturnResult(sqlmock.NewResult(0, 1))
	prep.ExpectExec().WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	store := NewMatchStore(db, logger.NewNoOpLogger())
	err = store.UpsertMatches(context.Background(), []models.MatchResult{
		sampleResult("lst-1", "sol-1"),
		sampleResult("lst-1", "sol-2"),
	})

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpsertMatches_EmptyIsNoOp(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	store := NewMatchStore(db, logger.NewNoOpLogger())
	assert.NoError(t, store.UpsertMatches(context.Background(), nil))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpsertMatches_ExecFailureRollsBack(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	prep := mock.ExpectPrepare("INSERT INTO match_results")
	prep.ExpectExec().WillReturnError(errors.New("deadlock detected"))
	mock.ExpectRollback()

	store := NewMatchStore(db, logger.NewNoOpLogger())
	err = store.UpsertMatches(context.Background(), []models.MatchResult{sampleResult("lst-1", "sol-1")})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "upsert match lst-1/sol-1")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpsertMatches_BeginFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin().WillReturnError(errors.New("too many connections"))

	store := NewMatchStore(db, logger.NewNoOpLogger())
	err = store.UpsertMatches(context.Background(), []models.MatchResult{sampleResult("lst-1", "sol-1")})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "begin match upsert")
}

func TestMustJSON_NilBecomesEmptyArray(t *testing.T) {
	assert.Equal(t, []byte(`[]`), mustJSON(nil))
	assert.Equal(t, []byte(`["a","b"]`), mustJSON([]string{"a", "b"}))
}
