package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"campaignhub/internal/interfaces"
	"campaignhub/internal/logger"
	"campaignhub/internal/models"
)

// cachedCampaignStore serves GetByID from redis and drops cached entries on
// every update. Listing and creation go straight to the wrapped store.
// Cache faults are logged and never fail a request.
type cachedCampaignStore struct {
	interfaces.CampaignStore
	client *redis.Client
	ttl    time.Duration
}

func NewCachedCampaignStore(next interfaces.CampaignStore, client *redis.Client, ttl time.Duration) interfaces.CampaignStore {
	return &cachedCampaignStore{CampaignStore: next, client: client, ttl: ttl}
}

func campaignCacheKey(id string) string {
	return fmt.Sprintf("campaign:%s", id)
}

func (s *cachedCampaignStore) GetByID(ctx context.Context, id string) (*models.Campaign, error) {
	log := logger.FromContext(ctx)

	data, err := s.client.Get(ctx, campaignCacheKey(id)).Bytes()
	switch {
	case err == nil:
		var c models.Campaign
		if err := json.Unmarshal(data, &c); err == nil {
			return &c, nil
		}
		log.Warn("discarding malformed cached campaign", slog.String("campaign_id", id))
		s.invalidate(ctx, id)
	case !errors.Is(err, redis.Nil):
		log.Warn("campaign cache read failed", slog.String("campaign_id", id), slog.Any("error", err))
	}

	c, err := s.CampaignStore.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// Only canonical ids are cached so each record has a single entry to
	// invalidate.
	if c.ID == id {
		s.set(ctx, c)
	}
	return c, nil
}

func (s *cachedCampaignStore) UpdateStatus(ctx context.Context, id string, status models.CampaignStatus) (*models.Campaign, error) {
	c, err := s.CampaignStore.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx, c.ID)
	return c, nil
}

func (s *cachedCampaignStore) UpdateStats(ctx context.Context, id string, impressions, clicks int64) (*models.Campaign, error) {
	c, err := s.CampaignStore.UpdateStats(ctx, id, impressions, clicks)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx, c.ID)
	return c, nil
}

func (s *cachedCampaignStore) Close(ctx context.Context) error {
	return errors.Join(s.CampaignStore.Close(ctx), s.client.Close())
}

func (s *cachedCampaignStore) set(ctx context.Context, c *models.Campaign) {
	data, err := json.Marshal(c)
	if err != nil {
		return
	}
	// A read that raced an update must not replace a newer entry.
	if err := s.client.SetNX(ctx, campaignCacheKey(c.ID), data, s.ttl).Err(); err != nil {
		logger.FromContext(ctx).Warn("campaign cache write failed",
			slog.String("campaign_id", c.ID), slog.Any("error", err))
	}
}

func (s *cachedCampaignStore) invalidate(ctx context.Context, id string) {
	if err := s.client.Del(ctx, campaignCacheKey(id)).Err(); err != nil {
		logger.FromContext(ctx).Warn("campaign cache invalidation failed",
			slog.String("campaign_id", id), slog.Any("error", err))
	}
}
