package schedule

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/wayfare/wayfare/pkg/itinerary"
)

// collectionName holds reconciled schedules, one document per trip.
const collectionName = "schedules"

// MongoStore persists schedules in MongoDB for production deployments.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// MongoConfig configures the MongoDB connection.
type MongoConfig struct {
	URI      string
	Database string
}

// NewMongoStore connects to MongoDB and verifies the connection.
func NewMongoStore(ctx context.Context, cfg MongoConfig) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("connect mongo %s: %w", cfg.URI, err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongo %s: %w", cfg.URI, err)
	}
	return &MongoStore{
		client: client,
		coll:   client.Database(cfg.Database).Collection(collectionName),
	}, nil
}

// Save upserts the schedule document for its trip.
func (s *MongoStore) Save(ctx context.Context, sched itinerary.Schedule) error {
	return observeSave(ctx, "mongo", sched, func() error {
		filter := bson.M{"trip_id": sched.TripID}
		opts := options.Replace().SetUpsert(true)
		if _, err := s.coll.ReplaceOne(ctx, filter, sched, opts); err != nil {
			return fmt.Errorf("save schedule %s: %w", sched.TripID, err)
		}
		return nil
	})
}

// Load retrieves the schedule document for a trip.
func (s *MongoStore) Load(ctx context.Context, tripID string) (itinerary.Schedule, error) {
	return observeLoad(ctx, "mongo", tripID, func() (itinerary.Schedule, error) {
		var sched itinerary.Schedule
		err := s.coll.FindOne(ctx, bson.M{"trip_id": tripID}).Decode(&sched)
		if errors.Is(err, mongo.ErrNoDocuments) {
			return itinerary.Schedule{}, ErrNotFound
		}
		if err != nil {
			return itinerary.Schedule{}, fmt.Errorf("load schedule %s: %w", tripID, err)
		}
		return sched, nil
	})
}

// Close disconnects from MongoDB.
func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

var _ Store = (*MongoStore)(nil)
