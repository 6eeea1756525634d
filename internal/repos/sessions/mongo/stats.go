package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/latlat/ledger/internal/domain"
)

func (r *sessionsRepo) Stats(ctx context.Context) (*domain.StoreStats, error) {
	dbs, err := r.client.ListDatabaseNames(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("list databases: %w", err)
	}

	count, err := r.col.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("count documents: %w", err)
	}

	cur, err := r.col.Find(ctx, bson.M{}, options.Find().SetLimit(1))
	if err != nil {
		return nil, fmt.Errorf("find sample: %w", err)
	}

	var sample []domain.Session

	err = cur.All(ctx, &sample)
	if err != nil {
		return nil, fmt.Errorf("decode sample: %w", err)
	}

	stats := &domain.StoreStats{
		Databases:     dbs,
		DocumentCount: count,
	}
	if len(sample) > 0 {
		stats.SampleDocument = &sample[0]
	}

	return stats, nil
}
