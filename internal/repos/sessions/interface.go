package sessions

import (
	"context"
	"errors"
	"time"

	"github.com/latlat/ledger/internal/domain"
)

// ErrSessionNotFound is returned when no document matches the session filter.
// For PlaceBet the filter also matches on player name, so a missing player
// and a missing session are indistinguishable. That ambiguity is part of the
// contract.
var ErrSessionNotFound = errors.New("session not found")

type Sessions interface {
	// Insert stores a new session document and returns its generated id.
	Insert(ctx context.Context, s *domain.Session) (string, error)

	// Get looks a session up by its code.
	Get(ctx context.Context, code string) (*domain.Session, error)

	// PlaceBet applies txn.Amount to the named player's budget, bankChange
	// to the bank balance, and appends txn to the log, all in one atomic
	// update.
	PlaceBet(ctx context.Context, code string, txn domain.Transaction, bankChange float64) error

	// ContinueRound replaces the player list, fee and bank balance wholesale
	// and appends the supplied fee transactions, in one atomic update.
	ContinueRound(ctx context.Context, code string, initialFee, bankBalance float64, players []domain.Player, fees []domain.Transaction) error

	// End marks the session completed. Repeated calls re-set endedAt.
	End(ctx context.Context, code string, endedAt time.Time) error

	// Recent returns up to limit sessions, most recently created first.
	Recent(ctx context.Context, limit int64) ([]domain.Session, error)

	// Stats reports store-level diagnostics.
	Stats(ctx context.Context) (*domain.StoreStats, error)
}
