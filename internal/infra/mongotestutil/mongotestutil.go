// Package mongotestutil gives every test its own throwaway database on a
// local MongoDB instance, dropped again on cleanup.
package mongotestutil

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"hash/fnv"
	"strings"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

const (
	BaseURI        = "mongodb://localhost:27017"
	TestCollection = "games"
)

// NewTestDB connects to the local instance and returns the client plus the
// name of a uniquely named database to work in.
func NewTestDB(t *testing.T) (*mongo.Client, string, func()) {
	t.Helper()

	client, err := mongo.Connect(options.Client().ApplyURI(BaseURI))
	if err != nil {
		t.Fatalf("connect: %v", err)
	}

	ctx, cancel := context.WithTimeout(t.Context(), 10*time.Second)
	defer cancel()

	err = client.Ping(ctx, nil)
	if err != nil {
		_ = client.Disconnect(context.Background())
		t.Fatalf("ping (is mongod running on localhost:27017?): %v", err)
	}

	dbName := uniqueDBName("testdb", t.Name())

	cleanup := func() {
		dctx, dcancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer dcancel()

		_ = client.Database(dbName).Drop(dctx)
		_ = client.Disconnect(dctx)
	}

	return client, dbName, cleanup
}

func uniqueDBName(prefix, testName string) string {
	h := fnv.New32a()
	_, _ = h.Write([]byte(testName))

	var rnd [6]byte
	_, _ = rand.Read(rnd[:])

	name := fmt.Sprintf("%s_%08x_%s", prefix, h.Sum32(), hex.EncodeToString(rnd[:]))

	// Mongo database names may not contain these characters.
	repl := strings.NewReplacer("/", "_", "\\", "_", " ", "_", ".", "_", "$", "_")

	return repl.Replace(name)
}
