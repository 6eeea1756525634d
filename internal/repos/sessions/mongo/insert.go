package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/latlat/ledger/internal/domain"
)

func (r *sessionsRepo) Insert(ctx context.Context, s *domain.Session) (string, error) {
	res, err := r.col.InsertOne(ctx, s)
	if err != nil {
		return "", fmt.Errorf("insert session: %w", err)
	}

	id, ok := res.InsertedID.(bson.ObjectID)
	if !ok {
		return "", fmt.Errorf("unexpected inserted id type %T", res.InsertedID)
	}

	s.ID = id

	return id.Hex(), nil
}
