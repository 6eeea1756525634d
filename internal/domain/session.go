package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Game is the discriminator value namespacing latlat documents inside a
// store collection shared with other games.
const Game = "latlat"

// Session status values. A session only ever moves active -> completed.
const (
	StatusActive    = "active"
	StatusCompleted = "completed"
)

// Transaction types. The field is an open string enumeration; new types may
// appear without a schema change.
const (
	TxTypeInitialFee = "INITIAL_FEE"
	TxTypeWin        = "WIN"
	TxTypeLoss       = "LOSS"
)

// Player is one participant embedded in a session document. Name is the
// match key for targeted updates; callers must keep it unique within a
// session's player list.
type Player struct {
	Name          string  `bson:"name" json:"name"`
	Budget        float64 `bson:"budget" json:"budget"`
	InitialBudget float64 `bson:"initialBudget" json:"initialBudget"`
}

// Transaction is one immutable entry in a session's audit trail.
type Transaction struct {
	PlayerName  string    `bson:"playerName" json:"playerName"`
	Amount      float64   `bson:"amount" json:"amount"`
	Type        string    `bson:"type" json:"type"`
	Timestamp   time.Time `bson:"timestamp" json:"timestamp"`
	Description string    `bson:"description" json:"description"`
}

// Session is one tracked game instance. Budgets, the bank balance and the
// transaction log are maintained by incremental atomic updates and never
// recomputed from each other.
type Session struct {
	ID           bson.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	SessionCode  string        `bson:"sessionCode" json:"sessionCode"`
	InitialFee   float64       `bson:"initialFee" json:"initialFee"`
	Players      []Player      `bson:"players" json:"players"`
	BankBalance  float64       `bson:"bankBalance" json:"bankBalance"`
	Transactions []Transaction `bson:"transactions" json:"transactions"`
	CreatedAt    time.Time     `bson:"createdAt" json:"createdAt"`
	Status       string        `bson:"status" json:"status"`
	Game         string        `bson:"game" json:"game"`
	EndedAt      *time.Time    `bson:"endedAt,omitempty" json:"endedAt,omitempty"`
}

// StoreStats is a read-only snapshot used by the diagnostics endpoint.
type StoreStats struct {
	Databases      []string `json:"databases"`
	DocumentCount  int64    `json:"documentCount"`
	SampleDocument *Session `json:"sampleDocument"`
}
