// internal/models/campaign.go
package models

import "time"

type CampaignStatus string

const (
	CampaignStatusActive   CampaignStatus = "active"
	CampaignStatusPaused   CampaignStatus = "paused"
	CampaignStatusFinished CampaignStatus = "finished"
)

// CampaignStatuses lists every accepted status, in display order.
var CampaignStatuses = []CampaignStatus{
	CampaignStatusActive,
	CampaignStatusPaused,
	CampaignStatusFinished,
}

func (s CampaignStatus) Valid() bool {
	switch s {
	case CampaignStatusActive, CampaignStatusPaused, CampaignStatusFinished:
		return true
	}
	return false
}

// CanTransitionTo reports whether a campaign in status s may move to next.
// Finished is terminal; re-applying the current status is always allowed.
func (s CampaignStatus) CanTransitionTo(next CampaignStatus) bool {
	if !next.Valid() {
		return false
	}
	if s == next {
		return true
	}
	return s != CampaignStatusFinished
}

type Campaign struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Advertiser  string         `json:"advertiser"`
	Budget      float64        `json:"budget"`
	StartDate   time.Time      `json:"startDate"`
	EndDate     time.Time      `json:"endDate"`
	Status      CampaignStatus `json:"status"`
	Impressions int64          `json:"impressions"`
	Clicks      int64          `json:"clicks"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
}

// CampaignInput is a candidate campaign as supplied by a caller. Every field
// is optional at the type level so that missing values can be reported as
// validation errors rather than decode failures.
type CampaignInput struct {
	Name        string   `json:"name" validate:"notblank,max=255"`
	Advertiser  string   `json:"advertiser" validate:"notblank,max=255"`
	Budget      *float64 `json:"budget" validate:"required,gt=0,lte=1000000000"`
	StartDate   string   `json:"startDate" validate:"required"`
	EndDate     string   `json:"endDate" validate:"required"`
	Status      string   `json:"status,omitempty" validate:"omitempty,oneof=active paused finished"`
	Impressions *int64   `json:"impressions,omitempty" validate:"omitempty,gte=0"`
	Clicks      *int64   `json:"clicks,omitempty" validate:"omitempty,gte=0"`
}

// UpdateStatusRequest is the body of a status transition.
type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=active paused finished"`
}

// UpdateStatsRequest is the body of a counters update. A nil counter keeps
// its stored value.
type UpdateStatsRequest struct {
	Impressions *int64 `json:"impressions,omitempty" validate:"omitempty,gte=0"`
	Clicks      *int64 `json:"clicks,omitempty" validate:"omitempty,gte=0"`
}

// UpdateCampaignRequest is the combined PATCH body: it carries either a
// status or counters, never both.
type UpdateCampaignRequest struct {
	Status      *string `json:"status,omitempty"`
	Impressions *int64  `json:"impressions,omitempty"`
	Clicks      *int64  `json:"clicks,omitempty"`
}

func (r UpdateCampaignRequest) HasStatus() bool {
	return r.Status != nil && *r.Status != ""
}

func (r UpdateCampaignRequest) HasStats() bool {
	return r.Impressions != nil || r.Clicks != nil
}

type CampaignStats struct {
	CTR              float64 `json:"ctr"`
	CPC              float64 `json:"cpc"`
	TotalImpressions int64   `json:"totalImpressions"`
	TotalClicks      int64   `json:"totalClicks"`
	RemainingBudget  float64 `json:"remainingBudget"`
}

// CampaignPage is one page of a filtered campaign listing.
type CampaignPage struct {
	Campaigns []*Campaign `json:"campaigns"`
	Total     int64       `json:"total"`
	Page      int         `json:"page"`
	Pages     int         `json:"pages"`
}
