package mongo

import (
	"context"
	"testing"
	"time"

	"github.com/latlat/ledger/internal/domain"
	"github.com/latlat/ledger/internal/infra/mongotestutil"
)

// newTestRepo gives the test its own database on the local instance.
func newTestRepo(t *testing.T) *sessionsRepo {
	t.Helper()

	client, dbName, cleanup := mongotestutil.NewTestDB(t)
	t.Cleanup(cleanup)

	return New(client, dbName, mongotestutil.TestCollection)
}

// seedSession builds and stores an active two-player session.
func seedSession(t *testing.T, repo *sessionsRepo, code string, createdAt time.Time) *domain.Session {
	t.Helper()

	doc := &domain.Session{
		SessionCode: code,
		InitialFee:  10,
		Players: []domain.Player{
			{Name: "Alice", Budget: 90, InitialBudget: 100},
			{Name: "Bob", Budget: 40, InitialBudget: 50},
		},
		BankBalance: 20,
		Transactions: []domain.Transaction{
			{PlayerName: "Alice", Amount: -10, Type: domain.TxTypeInitialFee, Timestamp: createdAt, Description: "Initial game fee"},
			{PlayerName: "Bob", Amount: -10, Type: domain.TxTypeInitialFee, Timestamp: createdAt, Description: "Initial game fee"},
		},
		CreatedAt: createdAt,
		Status:    domain.StatusActive,
		Game:      domain.Game,
	}

	ctx, cancel := context.WithTimeout(t.Context(), 5*time.Second)
	defer cancel()

	_, err := repo.Insert(ctx, doc)
	if err != nil {
		t.Fatalf("seed session %s: %v", code, err)
	}

	return doc
}

// storeTime mirrors the store's timestamp precision.
func storeTime() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}
