package main

import (
	"context"
	"log"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	mongosessions "github.com/latlat/ledger/internal/repos/sessions/mongo"
	"github.com/latlat/ledger/internal/services/ledger"
)

const (
	sessionCount = 3
	initialFee   = 10
	playerBudget = 100
	defaultDB    = "latlat"
	defaultColl  = "games"
)

func main() {
	uri := os.Getenv("MONGO_URI")
	if uri == "" {
		// Fallback for local development if env not set
		uri = "mongodb://localhost:27017"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, err := mongo.Connect(options.Client().ApplyURI(uri))
	if err != nil {
		log.Fatalf("Unable to connect to mongo: %v", err)
	}
	defer client.Disconnect(ctx)

	svc := ledger.New(mongosessions.New(client, defaultDB, defaultColl))

	log.Println("--- Seeding demo sessions ---")

	for i := 0; i < sessionCount; i++ {
		code := strings.ToUpper(uuid.New().String()[:8])

		_, id, err := svc.CreateSession(ctx, ledger.CreateSessionParams{
			SessionCode: code,
			InitialFee:  initialFee,
			Players: []ledger.PlayerEntry{
				{Name: "Alice", Budget: playerBudget},
				{Name: "Bob", Budget: playerBudget},
				{Name: "Chloe", Budget: playerBudget},
			},
		})
		if err != nil {
			log.Fatalf("Create session failed: %v", err)
		}

		// A couple of bets so budgets and the bank drift apart visibly.
		err = svc.PlaceBet(ctx, code, "Alice", 15, -15)
		if err != nil {
			log.Fatalf("Seed bet failed: %v", err)
		}

		err = svc.PlaceBet(ctx, code, "Bob", -5, 5)
		if err != nil {
			log.Fatalf("Seed bet failed: %v", err)
		}

		log.Printf("Seeded session %s (id %s)", code, id)
	}

	log.Printf("Successfully seeded %d sessions.", sessionCount)
}
