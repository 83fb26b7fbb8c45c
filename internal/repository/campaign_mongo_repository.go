package repository

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"campaignhub/internal/ident"
	"campaignhub/internal/interfaces"
	"campaignhub/internal/logger"
	"campaignhub/internal/models"
)

// campaignDocument is the stored shape of a campaign. ID holds either a
// primitive.ObjectID or, for legacy records, a string.
type campaignDocument struct {
	ID          any       `bson:"_id"`
	Name        string    `bson:"name"`
	Advertiser  string    `bson:"advertiser"`
	Budget      float64   `bson:"budget"`
	StartDate   time.Time `bson:"startDate"`
	EndDate     time.Time `bson:"endDate"`
	Status      string    `bson:"status"`
	Impressions int64     `bson:"impressions"`
	Clicks      int64     `bson:"clicks"`
	CreatedAt   time.Time `bson:"createdAt"`
	UpdatedAt   time.Time `bson:"updatedAt"`
}

func (d *campaignDocument) toModel() *models.Campaign {
	var id string
	switch v := d.ID.(type) {
	case primitive.ObjectID:
		id = v.Hex()
	case string:
		id = v
	default:
		id = fmt.Sprint(v)
	}

	return &models.Campaign{
		ID:          id,
		Name:        d.Name,
		Advertiser:  d.Advertiser,
		Budget:      d.Budget,
		StartDate:   d.StartDate.UTC(),
		EndDate:     d.EndDate.UTC(),
		Status:      models.CampaignStatus(d.Status),
		Impressions: d.Impressions,
		Clicks:      d.Clicks,
		CreatedAt:   d.CreatedAt.UTC(),
		UpdatedAt:   d.UpdatedAt.UTC(),
	}
}

type mongoCampaignRepository struct {
	coll *mongo.Collection
	now  func() time.Time
}

// NewMongoCampaignRepository returns a campaign store over coll.
func NewMongoCampaignRepository(coll *mongo.Collection) interfaces.CampaignStore {
	return &mongoCampaignRepository{coll: coll, now: storeNow}
}

// EnsureCampaignIndexes creates the indexes backing the listing order and the
// status filter. Existing indexes are left untouched.
func EnsureCampaignIndexes(ctx context.Context, coll *mongo.Collection) error {
	_, err := coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}},
			Options: options.Index().SetName("createdAt_desc"),
		},
		{
			Keys:    bson.D{{Key: "status", Value: 1}, {Key: "createdAt", Value: -1}},
			Options: options.Index().SetName("status_createdAt_desc"),
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create campaign indexes: %w", err)
	}
	return nil
}

func (r *mongoCampaignRepository) Create(ctx context.Context, campaign *models.Campaign) error {
	key := prepareForCreate(campaign, r.now())

	doc := campaignDocument{
		ID:          key.Value(),
		Name:        campaign.Name,
		Advertiser:  campaign.Advertiser,
		Budget:      campaign.Budget,
		StartDate:   campaign.StartDate,
		EndDate:     campaign.EndDate,
		Status:      string(campaign.Status),
		Impressions: campaign.Impressions,
		Clicks:      campaign.Clicks,
		CreatedAt:   campaign.CreatedAt,
		UpdatedAt:   campaign.UpdatedAt,
	}

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return interfaces.NewPersistenceError("create campaign", err)
	}

	logger.FromContext(ctx).Info("campaign created", slog.String("campaign_id", campaign.ID))
	return nil
}

func (r *mongoCampaignRepository) List(ctx context.Context, filter interfaces.CampaignFilter) (*models.CampaignPage, error) {
	filter = filter.Normalize()

	query := bson.M{}
	if filter.Status != "" {
		query["status"] = string(filter.Status)
	}
	if filter.Advertiser != "" {
		query["advertiser"] = primitive.Regex{Pattern: regexp.QuoteMeta(filter.Advertiser), Options: "i"}
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}).
		SetSkip(int64(filter.Offset)).
		SetLimit(int64(filter.Limit))

	cur, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, interfaces.NewPersistenceError("list campaigns", err)
	}

	var docs []campaignDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, interfaces.NewPersistenceError("list campaigns", err)
	}

	total, err := r.coll.CountDocuments(ctx, query)
	if err != nil {
		return nil, interfaces.NewPersistenceError("count campaigns", err)
	}

	campaigns := make([]*models.Campaign, 0, len(docs))
	for i := range docs {
		campaigns = append(campaigns, docs[i].toModel())
	}

	return newPage(campaigns, total, filter.Offset, filter.Limit), nil
}

func (r *mongoCampaignRepository) GetByID(ctx context.Context, id string) (*models.Campaign, error) {
	return r.firstMatch(ctx, "get campaign", id, func(key ident.Key) *mongo.SingleResult {
		return r.coll.FindOne(ctx, bson.M{"_id": key.Value()})
	})
}

func (r *mongoCampaignRepository) UpdateStatus(ctx context.Context, id string, status models.CampaignStatus) (*models.Campaign, error) {
	update := bson.M{"$set": bson.M{
		"status":    string(status),
		"updatedAt": r.now(),
	}}
	return r.firstMatch(ctx, "update campaign status", id, func(key ident.Key) *mongo.SingleResult {
		return r.coll.FindOneAndUpdate(ctx, bson.M{"_id": key.Value()}, update,
			options.FindOneAndUpdate().SetReturnDocument(options.After))
	})
}

func (r *mongoCampaignRepository) UpdateStats(ctx context.Context, id string, impressions, clicks int64) (*models.Campaign, error) {
	update := bson.M{"$set": bson.M{
		"impressions": impressions,
		"clicks":      clicks,
		"updatedAt":   r.now(),
	}}
	return r.firstMatch(ctx, "update campaign stats", id, func(key ident.Key) *mongo.SingleResult {
		return r.coll.FindOneAndUpdate(ctx, bson.M{"_id": key.Value()}, update,
			options.FindOneAndUpdate().SetReturnDocument(options.After))
	})
}

// firstMatch tries each interpretation of id, native key first, and decodes
// the first document found.
func (r *mongoCampaignRepository) firstMatch(ctx context.Context, op, id string, fn func(ident.Key) *mongo.SingleResult) (*models.Campaign, error) {
	for _, key := range ident.Resolve(id) {
		var doc campaignDocument
		err := fn(key).Decode(&doc)
		if errors.Is(err, mongo.ErrNoDocuments) {
			continue
		}
		if err != nil {
			return nil, interfaces.NewPersistenceError(op, err)
		}
		return doc.toModel(), nil
	}

	logger.FromContext(ctx).Debug("campaign not found", slog.String("op", op), slog.String("campaign_id", id))
	return nil, interfaces.ErrCampaignNotFound
}

func (r *mongoCampaignRepository) Ping(ctx context.Context) error {
	return r.coll.Database().Client().Ping(ctx, readpref.Primary())
}

func (r *mongoCampaignRepository) Close(ctx context.Context) error {
	return r.coll.Database().Client().Disconnect(ctx)
}
