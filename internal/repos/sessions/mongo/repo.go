package mongo

import (
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/latlat/ledger/internal/repos/sessions"
)

var _ sessions.Sessions = (*sessionsRepo)(nil)

type sessionsRepo struct {
	client *mongo.Client
	col    *mongo.Collection
}

func New(client *mongo.Client, database, collection string) *sessionsRepo {
	return &sessionsRepo{
		client: client,
		col:    client.Database(database).Collection(collection),
	}
}
