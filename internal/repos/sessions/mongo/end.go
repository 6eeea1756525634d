package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/latlat/ledger/internal/domain"
	"github.com/latlat/ledger/internal/repos/sessions"
)

// End does not check the current status: ending an already completed session
// simply re-sets endedAt to the later timestamp.
func (r *sessionsRepo) End(ctx context.Context, code string, endedAt time.Time) error {
	res, err := r.col.UpdateOne(ctx,
		bson.M{
			"sessionCode": code,
			"game":        domain.Game,
		},
		bson.M{
			"$set": bson.M{
				"status":  domain.StatusCompleted,
				"endedAt": endedAt,
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
