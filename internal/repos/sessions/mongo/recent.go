package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/latlat/ledger/internal/domain"
)

func (r *sessionsRepo) Recent(ctx context.Context, limit int64) ([]domain.Session, error) {
	cur, err := r.col.Find(ctx,
		bson.M{"game": domain.Game},
		options.Find().
			SetSort(bson.D{{Key: "createdAt", Value: -1}}).
			SetLimit(limit),
	)
	if err != nil {
		return nil, fmt.Errorf("find sessions: %w", err)
	}

	out := []domain.Session{}

	err = cur.All(ctx, &out)
	if err != nil {
		return nil, fmt.Errorf("decode sessions: %w", err)
	}

	return out, nil
}
