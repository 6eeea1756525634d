package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/latlat/ledger/internal/domain"
	"github.com/latlat/ledger/internal/repos/sessions"
)

// ContinueRound replaces players/initialFee/bankBalance wholesale. Players
// absent from the new list are dropped; the transaction log only ever grows.
func (r *sessionsRepo) ContinueRound(ctx context.Context, code string, initialFee, bankBalance float64, players []domain.Player, fees []domain.Transaction) error {
	res, err := r.col.UpdateOne(ctx,
		bson.M{
			"sessionCode": code,
			"game":        domain.Game,
		},
		bson.M{
			"$set": bson.M{
				"players":     players,
				"initialFee":  initialFee,
				"bankBalance": bankBalance,
			},
			"$push": bson.M{
				"transactions": bson.M{"$each": fees},
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
