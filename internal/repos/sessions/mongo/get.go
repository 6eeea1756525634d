package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/latlat/ledger/internal/domain"
	"github.com/latlat/ledger/internal/repos/sessions"
)

func (r *sessionsRepo) Get(ctx context.Context, code string) (*domain.Session, error) {
	var s domain.Session

	err := r.col.FindOne(ctx, bson.M{
		"sessionCode": code,
		"game":        domain.Game,
	}).Decode(&s)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, sessions.ErrSessionNotFound
		}

		return nil, fmt.Errorf("find session: %w", err)
	}

	return &s, nil
}
