package repository

import (
	"time"

	"campaignhub/internal/ident"
	"campaignhub/internal/models"
)

// storeNow is the store clock. Timestamps are truncated to milliseconds,
// the coarsest precision among the supported backends.
func storeNow() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}

// prepareForCreate assigns a fresh id, fills defaults and stamps the
// bookkeeping timestamps.
func prepareForCreate(c *models.Campaign, now time.Time) ident.Key {
	key := ident.New()
	c.ID = key.String()
	if c.Status == "" {
		c.Status = models.CampaignStatusActive
	}
	c.StartDate = c.StartDate.UTC().Truncate(time.Millisecond)
	c.EndDate = c.EndDate.UTC().Truncate(time.Millisecond)
	c.CreatedAt = now
	c.UpdatedAt = now
	return key
}

func newPage(campaigns []*models.Campaign, total int64, offset, limit int) *models.CampaignPage {
	if campaigns == nil {
		campaigns = []*models.Campaign{}
	}
	return &models.CampaignPage{
		Campaigns: campaigns,
		Total:     total,
		Page:      offset/limit + 1,
		Pages:     int((total + int64(limit) - 1) / int64(limit)),
	}
}

// lookupKeys returns the candidate keys for id with duplicates removed. For
// a lowercase hex id both interpretations have the same textual form.
func lookupKeys(id string) []ident.Key {
	keys := ident.Resolve(id)
	out := keys[:0:0]
	seen := make(map[string]bool, len(keys))
	for _, k := range keys {
		if seen[k.String()] {
			continue
		}
		seen[k.String()] = true
		out = append(out, k)
	}
	return out
}
