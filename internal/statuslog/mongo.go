package statuslog

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"resortdesk/internal/domain"
)

const mongoCollection = "room_status_history"

// MongoStore keeps the status history in a MongoDB collection.
type MongoStore struct {
	col *mongo.Collection
}

// ConnectMongo dials uri and returns the named database.
func ConnectMongo(ctx context.Context, uri, database string) (*mongo.Database, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri).SetRetryWrites(true))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}
	return client.Database(database), nil
}

// OpenMongoStore connects to uri and prepares the history collection. The
// returned func disconnects the client; on error nothing is left connected.
func OpenMongoStore(ctx context.Context, uri, database string) (*MongoStore, func(context.Context) error, error) {
	connect := func(ctx context.Context) (*mongo.Database, error) {
		return ConnectMongo(ctx, uri, database)
	}
	return openMongoStore(ctx, connect, NewMongoStore)
}

func openMongoStore(
	ctx context.Context,
	connect func(context.Context) (*mongo.Database, error),
	newStore func(context.Context, *mongo.Database) (*MongoStore, error),
) (*MongoStore, func(context.Context) error, error) {
	db, err := connect(ctx)
	if err != nil {
		return nil, nil, err
	}
	disconnect := func(ctx context.Context) error { return db.Client().Disconnect(ctx) }

	store, err := newStore(ctx, db)
	if err != nil {
		_ = disconnect(context.Background())
		return nil, nil, fmt.Errorf("mongodb history store: %w", err)
	}
	return store, disconnect, nil
}

func NewMongoStore(ctx context.Context, db *mongo.Database) (*MongoStore, error) {
	col := db.Collection(mongoCollection)
	_, err := col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "room_id", Value: 1}, {Key: "created_at", Value: -1}},
	})
	if err != nil {
		return nil, err
	}
	return &MongoStore{col: col}, nil
}

type statusDocument struct {
	RoomID     int64  `bson:"room_id"`
	RoomNumber string `bson:"room_number"`
	From       string `bson:"from"`
	To         string `bson:"to"`
	Reason     string `bson:"reason"`
	BookingID  *int64 `bson:"booking_id,omitempty"`
	Source     string `bson:"source"`
	CreatedAt  int64  `bson:"created_at"`
}

func newStatusDocument(c domain.RoomStatusChange) statusDocument {
	return statusDocument{
		RoomID:     c.RoomID,
		RoomNumber: c.RoomNumber,
		From:       string(c.From),
		To:         string(c.To),
		Reason:     c.Reason,
		BookingID:  c.BookingID,
		Source:     c.Source,
		CreatedAt:  c.At.UnixMilli(),
	}
}

func (d statusDocument) toDomain() domain.RoomStatusLog {
	return domain.RoomStatusLog{
		RoomID:     d.RoomID,
		RoomNumber: d.RoomNumber,
		From:       domain.RoomStatus(d.From),
		To:         domain.RoomStatus(d.To),
		Reason:     d.Reason,
		BookingID:  d.BookingID,
		Source:     d.Source,
		CreatedAt:  time.UnixMilli(d.CreatedAt).UTC(),
	}
}

func (s *MongoStore) Record(ctx context.Context, change domain.RoomStatusChange) error {
	_, err := s.col.InsertOne(ctx, newStatusDocument(change))
	return err
}

func (s *MongoStore) ListByRoom(ctx context.Context, roomID int64, limit int) ([]domain.RoomStatusLog, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(limit))

	cur, err := s.col.Find(ctx, bson.M{"room_id": roomID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var docs []statusDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}

	out := make([]domain.RoomStatusLog, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toDomain())
	}
	return out, nil
}
