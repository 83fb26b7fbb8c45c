package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"campaignhub/internal/interfaces"
	"campaignhub/internal/logger"
	"campaignhub/internal/models"
)

const campaignColumns = `
            id, name, advertiser, budget, start_date, end_date, status,
            impressions, clicks, created_at, updated_at`

type campaignRepository struct {
	db  *sql.DB
	now func() time.Time
}

// NewCampaignRepository returns a postgres-backed campaign store. Ids are
// kept as text, so native keys and legacy keys share one column.
func NewCampaignRepository(db *sql.DB) interfaces.CampaignStore {
	return &campaignRepository{db: db, now: storeNow}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCampaign(row rowScanner) (*models.Campaign, error) {
	var c models.Campaign
	err := row.Scan(
		&c.ID,
		&c.Name,
		&c.Advertiser,
		&c.Budget,
		&c.StartDate,
		&c.EndDate,
		&c.Status,
		&c.Impressions,
		&c.Clicks,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	c.StartDate = c.StartDate.UTC()
	c.EndDate = c.EndDate.UTC()
	c.CreatedAt = c.CreatedAt.UTC()
	c.UpdatedAt = c.UpdatedAt.UTC()
	return &c, nil
}

func (r *campaignRepository) Create(ctx context.Context, campaign *models.Campaign) error {
	prepareForCreate(campaign, r.now())

	query := `
        INSERT INTO campaigns (` + campaignColumns + `
        ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
    `

	_, err := r.db.ExecContext(
		ctx,
		query,
		campaign.ID,
		campaign.Name,
		campaign.Advertiser,
		campaign.Budget,
		campaign.StartDate,
		campaign.EndDate,
		campaign.Status,
		campaign.Impressions,
		campaign.Clicks,
		campaign.CreatedAt,
		campaign.UpdatedAt,
	)
	if err != nil {
		return interfaces.NewPersistenceError("create campaign", err)
	}

	logger.FromContext(ctx).Info("campaign created", slog.String("campaign_id", campaign.ID))
	return nil
}

// List retrieves one page of campaigns matching the filter, newest first.
func (r *campaignRepository) List(ctx context.Context, filter interfaces.CampaignFilter) (*models.CampaignPage, error) {
	filter = filter.Normalize()

	var args []any
	var whereClauses []string
	argPos := 1

	if filter.Status != "" {
		whereClauses = append(whereClauses, fmt.Sprintf("status = $%d", argPos))
		args = append(args, string(filter.Status))
		argPos++
	}

	if filter.Advertiser != "" {
		whereClauses = append(whereClauses, fmt.Sprintf("strpos(lower(advertiser), lower($%d)) > 0", argPos))
		args = append(args, filter.Advertiser)
		argPos++
	}

	where := " WHERE 1=1"
	if len(whereClauses) > 0 {
		where += " AND " + strings.Join(whereClauses, " AND ")
	}

	var total int64
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM campaigns"+where, args...).Scan(&total); err != nil {
		return nil, interfaces.NewPersistenceError("count campaigns", err)
	}

	query := "SELECT" + campaignColumns + "\n        FROM campaigns" + where +
		" ORDER BY created_at DESC, id DESC" +
		fmt.Sprintf(" LIMIT $%d OFFSET $%d", argPos, argPos+1)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, interfaces.NewPersistenceError("list campaigns", err)
	}
	defer rows.Close()

	var campaigns []*models.Campaign
	for rows.Next() {
		c, err := scanCampaign(rows)
		if err != nil {
			return nil, interfaces.NewPersistenceError("list campaigns", err)
		}
		campaigns = append(campaigns, c)
	}
	if err := rows.Err(); err != nil {
		return nil, interfaces.NewPersistenceError("list campaigns", err)
	}

	return newPage(campaigns, total, filter.Offset, filter.Limit), nil
}

func (r *campaignRepository) GetByID(ctx context.Context, id string) (*models.Campaign, error) {
	query := "SELECT" + campaignColumns + "\n        FROM campaigns\n        WHERE id = $1"

	return r.firstMatch(ctx, "get campaign", id, func(key string) (*models.Campaign, error) {
		return scanCampaign(r.db.QueryRowContext(ctx, query, key))
	})
}

func (r *campaignRepository) UpdateStatus(ctx context.Context, id string, status models.CampaignStatus) (*models.Campaign, error) {
	query := `
        UPDATE campaigns
        SET status = $1,
            updated_at = $2
        WHERE id = $3
        RETURNING` + campaignColumns

	now := r.now()
	return r.firstMatch(ctx, "update campaign status", id, func(key string) (*models.Campaign, error) {
		return scanCampaign(r.db.QueryRowContext(ctx, query, string(status), now, key))
	})
}

func (r *campaignRepository) UpdateStats(ctx context.Context, id string, impressions, clicks int64) (*models.Campaign, error) {
	query := `
        UPDATE campaigns
        SET impressions = $1,
            clicks = $2,
            updated_at = $3
        WHERE id = $4
        RETURNING` + campaignColumns

	now := r.now()
	return r.firstMatch(ctx, "update campaign stats", id, func(key string) (*models.Campaign, error) {
		return scanCampaign(r.db.QueryRowContext(ctx, query, impressions, clicks, now, key))
	})
}

// firstMatch runs fn for each lookup key of id in order and returns the first
// row found.
func (r *campaignRepository) firstMatch(ctx context.Context, op, id string, fn func(key string) (*models.Campaign, error)) (*models.Campaign, error) {
	for _, key := range lookupKeys(id) {
		c, err := fn(key.String())
		if errors.Is(err, sql.ErrNoRows) {
			continue
		}
		if err != nil {
			return nil, interfaces.NewPersistenceError(op, err)
		}
		return c, nil
	}

	logger.FromContext(ctx).Debug("campaign not found", slog.String("op", op), slog.String("campaign_id", id))
	return nil, interfaces.ErrCampaignNotFound
}

func (r *campaignRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

func (r *campaignRepository) Close(ctx context.Context) error {
	return r.db.Close()
}
