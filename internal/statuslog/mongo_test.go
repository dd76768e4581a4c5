package statuslog

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// lazyDatabase returns a database on a client that has not dialed yet, so
// no server is needed.
func lazyDatabase(t *testing.T) (*mongo.Client, func(context.Context) (*mongo.Database, error)) {
	t.Helper()
	client, err := mongo.Connect(context.Background(), options.Client().ApplyURI("mongodb://127.0.0.1:1"))
	require.NoError(t, err)
	return client, func(context.Context) (*mongo.Database, error) {
		return client.Database("resortdesk_test"), nil
	}
}

func TestOpenMongoStore_DisconnectsWhenSetupFails(t *testing.T) {
	client, connect := lazyDatabase(t)
	indexErr := errors.New("index build failed")

	store, disconnect, err := openMongoStore(context.Background(), connect,
		func(context.Context, *mongo.Database) (*MongoStore, error) { return nil, indexErr })

	assert.ErrorIs(t, err, indexErr)
	assert.Nil(t, store)
	assert.Nil(t, disconnect)
	assert.ErrorIs(t, client.Disconnect(context.Background()), mongo.ErrClientDisconnected)
}

func TestOpenMongoStore_ReturnsDisconnect(t *testing.T) {
	client, connect := lazyDatabase(t)

	store, disconnect, err := openMongoStore(context.Background(), connect,
		func(_ context.Context, db *mongo.Database) (*MongoStore, error) {
			return &MongoStore{col: db.Collection(mongoCollection)}, nil
		})
	require.NoError(t, err)
	require.NotNil(t, store)

	require.NoError(t, disconnect(context.Background()))
	assert.ErrorIs(t, client.Disconnect(context.Background()), mongo.ErrClientDisconnected)
}

func TestOpenMongoStore_ConnectError(t *testing.T) {
	dialErr := errors.New("server selection timeout")
	_, _, err := openMongoStore(context.Background(),
		func(context.Context) (*mongo.Database, error) { return nil, dialErr },
		NewMongoStore)
	assert.ErrorIs(t, err, dialErr)
}
