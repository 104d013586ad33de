package store

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"leasematch/internal/common/logger"
	"leasematch/internal/models"
)

var profileColumns = []string{
	"government_leases", "government_certified", "reference_count",
	"build_to_suit", "tenant_improvements",
}

func TestFetchProfile_CacheMissReadsThrough(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()

	mock.ExpectQuery("FROM broker_profiles").WithArgs("brk-1").
		WillReturnRows(sqlmock.NewRows(profileColumns).AddRow(5, true, 3, true, false))

	store := NewProfileStore(db, rdb, 10*time.Minute, logger.NewNoOpLogger())
	profile, err := store.FetchProfile(context.Background(), "brk-1")

	require.NoError(t, err)
	require.NotNil(t, profile)
	assert.Equal(t, 5, profile.GovernmentLeases)
	assert.True(t, profile.GovernmentCertified)
	assert.Equal(t, 3, profile.References)

	// The result was written through to the cache.
	cached, err := mr.Get("broker:profile:brk-1")
	require.NoError(t, err)
	var fromCache models.ExperienceProfile
	require.NoError(t, json.Unmarshal([]byte(cached), &fromCache))
	assert.Equal(t, *profile, fromCache)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFetchProfile_CacheHitSkipsDatabase(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()

	cached, _ := json.Marshal(models.ExperienceProfile{GovernmentLeases: 2, References: 1})
	require.NoError(t, mr.Set("broker:profile:brk-1", string(cached)))

	store := NewProfileStore(db, rdb, 10*time.Minute, logger.NewNoOpLogger())
	profile, err := store.FetchProfile(context.Background(), "brk-1")

	require.NoError(t, err)
	require.NotNil(t, profile)
	assert.Equal(t, 2, profile.GovernmentLeases)
	// No query was expected; any DB traffic fails here.
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFetchProfile_NotFoundIsNotAnError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("FROM broker_profiles").WithArgs("brk-missing").
		WillReturnRows(sqlmock.NewRows(profileColumns))

	store := NewProfileStore(db, nil, 10*time.Minute, logger.NewNoOpLogger())
	profile, err := store.FetchProfile(context.Background(), "brk-missing")

	assert.NoError(t, err)
	assert.Nil(t, profile)
}

func TestFetchProfile_WithoutRedis(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("FROM broker_profiles").WithArgs("brk-1").
		WillReturnRows(sqlmock.NewRows(profileColumns).AddRow(1, false, 0, false, true))

	store := NewProfileStore(db, nil, 0, logger.NewNoOpLogger())
	profile, err := store.FetchProfile(context.Background(), "brk-1")

	require.NoError(t, err)
	require.NotNil(t, profile)
	assert.True(t, profile.TenantImprovements)
}

func TestFetchProfile_QueryError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("FROM broker_profiles").WithArgs("brk-1").
		WillReturnError(errors.New("connection reset"))

	store := NewProfileStore(db, nil, 0, logger.NewNoOpLogger())
	profile, err := store.FetchProfile(context.Background(), "brk-1")

	assert.Error(t, err)
	assert.Nil(t, profile)
	assert.Contains(t, err.Error(), "query broker profile brk-1")
}

func TestFetchProfile_CorruptCacheFallsThrough(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()

	require.NoError(t, mr.Set("broker:profile:brk-1", "not-json"))
	mock.ExpectQuery("FROM broker_profiles").WithArgs("brk-1").
		WillReturnRows(sqlmock.NewRows(profileColumns).AddRow(4, false, 2, false, false))

	store := NewProfileStore(db, rdb, time.Minute, logger.NewNoOpLogger())
	profile, err := store.FetchProfile(context.Background(), "brk-1")

	require.NoError(t, err)
	require.NotNil(t, profile)
	assert.Equal(t, 4, profile.GovernmentLeases)
	assert.NoError(t, mock.ExpectationsWereMet())
}
