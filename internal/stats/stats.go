// Package stats derives display metrics from a campaign snapshot.
package stats

import (
	"math"

	"campaignhub/internal/models"
)

// Compute returns CTR, CPC and remaining budget for c. CTR and CPC are rounded
// to two decimals, and the remaining budget is computed from the rounded CPC
// so the three figures agree with each other when displayed together.
func Compute(c *models.Campaign) models.CampaignStats {
	var ctr, cpc float64
	if c.Impressions > 0 {
		ctr = float64(c.Clicks) / float64(c.Impressions) * 100
	}
	if c.Clicks > 0 {
		cpc = c.Budget / float64(c.Clicks)
	}
	ctr = round2(ctr)
	cpc = round2(cpc)

	return models.CampaignStats{
		CTR:              ctr,
		CPC:              cpc,
		TotalImpressions: c.Impressions,
		TotalClicks:      c.Clicks,
		RemainingBudget:  math.Max(0, c.Budget-float64(c.Clicks)*cpc),
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
