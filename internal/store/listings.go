// Package store implements the Postgres-backed listing, solicitation,
// match-result and broker-profile stores consumed by the matching engine.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"leasematch/internal/common/logger"
	"leasematch/internal/models"
)

const listingQuery = `
	SELECT id, broker_id, title, address, city, state, zip,
	       latitude, longitude,
	       total_sf, available_sf, usable_sf, min_divisible_sf, contiguous,
	       building_class, ada_compliant, public_transit,
	       fiber_optic, backup_power, loading_dock, security_24x7, secure_access,
	       scif_capable, data_center, cafeteria, fitness_center, conference_space,
	       certifications, available_from, min_lease_term_months, max_lease_term_months
	FROM listings
	WHERE status = 'active'
	ORDER BY id`

type ListingStore struct {
	db     *sql.DB
	logger logger.Logger
}

func NewListingStore(db *sql.DB, log logger.Logger) *ListingStore {
	return &ListingStore{db: db, logger: log}
}

// FetchActiveListings returns every listing currently available for
// leasing. Listings are read fresh on every batch run.
func (s *ListingStore) FetchActiveListings(ctx context.Context) ([]models.Listing, error) {
	rows, err := s.db.QueryContext(ctx, listingQuery)
	if err != nil {
		return nil, fmt.Errorf("query active listings: %w", err)
	}
	defer rows.Close()

	var listings []models.Listing
	for rows.Next() {
		var (
			l              models.Listing
			lat, lng       sql.NullFloat64
			certifications []byte
		)
		err := rows.Scan(
			&l.ID, &l.BrokerID, &l.Title, &l.Address, &l.City, &l.State, &l.Zip,
			&lat, &lng,
			&l.TotalSF, &l.AvailableSF, &l.UsableSF, &l.MinDivisibleSF, &l.Contiguous,
			&l.BuildingClass, &l.ADACompliant, &l.PublicTransit,
			&l.Features.FiberOptic, &l.Features.BackupPower, &l.Features.LoadingDock,
			&l.Features.Security24x7, &l.Features.SecureAccess,
			&l.Features.SCIFCapable, &l.Features.DataCenter, &l.Features.Cafeteria,
			&l.Features.FitnessCenter, &l.Features.ConferenceSpace,
			&certifications, &l.AvailableFrom, &l.MinLeaseTermMonths, &l.MaxLeaseTermMonths,
		)
		if err != nil {
			return nil, fmt.Errorf("scan listing: %w", err)
		}

		if lat.Valid {
			l.Latitude = &lat.Float64
		}
		if lng.Valid {
			l.Longitude = &lng.Float64
		}
		if len(certifications) > 0 {
			if err := json.Unmarshal(certifications, &l.Certifications); err != nil {
				l.Certifications = nil
			}
		}

		listings = append(listings, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate listings: %w", err)
	}

	s.logger.Debug("fetched active listings", map[string]interface{}{"count": len(listings)})
	return listings, nil
}
