// internal/interfaces/campaign_store.go
package interfaces

import (
	"context"

	"campaignhub/internal/models"
)

// CampaignFilter defines the filter and window for listing campaigns.
type CampaignFilter struct {
	// Status matches exactly when non-empty.
	Status models.CampaignStatus
	// Advertiser matches as a case-insensitive substring when non-empty.
	Advertiser string
	Offset     int
	Limit      int
}

// CampaignStore defines the persistence operations for campaigns.
//
// Lookups by id accept both native keys and legacy string keys; see package
// ident. Missing records are reported as ErrCampaignNotFound, and driver
// faults are wrapped in *PersistenceError.
type CampaignStore interface {
	Create(ctx context.Context, campaign *models.Campaign) error
	List(ctx context.Context, filter CampaignFilter) (*models.CampaignPage, error)
	GetByID(ctx context.Context, id string) (*models.Campaign, error)
	UpdateStatus(ctx context.Context, id string, status models.CampaignStatus) (*models.Campaign, error)
	// UpdateStats overwrites both counters. It does not check clicks against
	// impressions; callers validate before writing.
	UpdateStats(ctx context.Context, id string, impressions, clicks int64) (*models.Campaign, error)
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

const (
	DefaultPageLimit = 10
	MaxPageLimit     = 100
)

// Normalize clamps the window to a non-negative offset and a limit in
// [1, MaxPageLimit], substituting DefaultPageLimit for a missing limit.
func (f CampaignFilter) Normalize() CampaignFilter {
	if f.Offset < 0 {
		f.Offset = 0
	}
	if f.Limit <= 0 {
		f.Limit = DefaultPageLimit
	}
	if f.Limit > MaxPageLimit {
		f.Limit = MaxPageLimit
	}
	return f
}
