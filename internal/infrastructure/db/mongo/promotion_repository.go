package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/teamroster/employee-directory/internal/core/domain"
)

const collectionPromotions = "promotions"

type PromotionRepository struct {
	col *mongo.Collection
}

func NewPromotionRepository(db *mongo.Database) *PromotionRepository {
	return &PromotionRepository{col: db.Collection(collectionPromotions)}
}

// Insert appends a promotion document.
func (r *PromotionRepository) Insert(ctx context.Context, p *domain.Promotion) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.InsertOne(ctx, p); err != nil {
		return fmt.Errorf("insert promotion: %w", err)
	}
	return nil
}

// List returns up to limit promotions ordered by requested_at descending.
func (r *PromotionRepository) List(ctx context.Context, limit int) ([]domain.Promotion, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "requested_at", Value: -1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}

	cur, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("find promotions: %w", err)
	}
	defer cur.Close(ctx)

	out := []domain.Promotion{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode promotions: %w", err)
	}
	return out, nil
}

// EnsureIndexes creates the indexes used by List and per-employee lookups.
func (r *PromotionRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "requested_at", Value: -1}}},
		{Keys: bson.D{{Key: "employee_id", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
