package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"leasematch/internal/common/logger"
	"leasematch/internal/models"
)

const profileQuery = `
	SELECT government_leases, government_certified, reference_count,
	       build_to_suit, tenant_improvements
	FROM broker_profiles
	WHERE broker_id = $1`

const profileCacheKeyPrefix = "broker:profile:"

// ProfileStore resolves broker experience profiles from Postgres with a
// Redis read-through cache. A missing profile is not an error; the caller
// falls back to its configured default.
type ProfileStore struct {
	db       *sql.DB
	redis    *redis.Client
	cacheTTL time.Duration
	logger   logger.Logger
}

func NewProfileStore(db *sql.DB, rdb *redis.Client, cacheTTL time.Duration, log logger.Logger) *ProfileStore {
	return &ProfileStore{db: db, redis: rdb, cacheTTL: cacheTTL, logger: log}
}

func (s *ProfileStore) FetchProfile(ctx context.Context, brokerID string) (*models.ExperienceProfile, error) {
	cacheKey := profileCacheKeyPrefix + brokerID
	if s.redis != nil {
		if val, err := s.redis.Get(ctx, cacheKey).Result(); err == nil {
			var profile models.ExperienceProfile
			if err := json.Unmarshal([]byte(val), &profile); err == nil {
				return &profile, nil
			}
		}
	}

	row := s.db.QueryRowContext(ctx, profileQuery, brokerID)

	var profile models.ExperienceProfile
	err := row.Scan(
		&profile.GovernmentLeases, &profile.GovernmentCertified, &profile.References,
		&profile.BuildToSuit, &profile.TenantImprovements,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query broker profile %s: %w", brokerID, err)
	}

	if s.redis != nil {
		data, _ := json.Marshal(profile)
		if err := s.redis.Set(ctx, cacheKey, data, s.cacheTTL).Err(); err != nil {
			s.logger.Debug("profile cache write failed", map[string]interface{}{
				"brokerId": brokerID,
				"error":    err.Error(),
			})
		}
	}

	return &profile, nil
}
