package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/latlat/ledger/internal/domain"
	"github.com/latlat/ledger/internal/repos/sessions"
)

// PlaceBet relies on the store applying both $inc fields and the $push in a
// single atomic document update; there is no partial effect on a miss.
func (r *sessionsRepo) PlaceBet(ctx context.Context, code string, txn domain.Transaction, bankChange float64) error {
	res, err := r.col.UpdateOne(ctx,
		bson.M{
			"sessionCode":  code,
			"game":         domain.Game,
			"players.name": txn.PlayerName,
		},
		bson.M{
			"$inc": bson.M{
				"players.$.budget": txn.Amount,
				"bankBalance":      bankChange,
			},
			"$push": bson.M{
				"transactions": txn,
			},
		},
	)
	if err != nil {
		return fmt.Errorf("update session: %w", err)
	}

	if res.MatchedCount == 0 {
		return sessions.ErrSessionNotFound
	}

	return nil
}
