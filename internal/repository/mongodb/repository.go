package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mamadbah2/foodtracker/internal/repository/slot"
)

// slotDocument is the stored shape of one slot.
type slotDocument struct {
	Key       string    `bson:"_id"`
	Payload   string    `bson:"payload"`
	UpdatedAt time.Time `bson:"updated_at"`
}

// MongoDBRepository implements slot.Slot with one document per key.
type MongoDBRepository struct {
	client   *mongo.Client
	dbName   string
	collName string
	now      func() time.Time
}

// NewMongoDBRepository creates a new MongoDB repository.
func NewMongoDBRepository(ctx context.Context, uri, dbName, collName string) (*MongoDBRepository, error) {
	clientOptions := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	// Ping the database to verify connection
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return NewMongoDBRepositoryWithClient(client, dbName, collName), nil
}

// NewMongoDBRepositoryWithClient wraps an already connected client.
func NewMongoDBRepositoryWithClient(client *mongo.Client, dbName, collName string) *MongoDBRepository {
	if collName == "" {
		collName = "slots"
	}
	return &MongoDBRepository{
		client:   client,
		dbName:   dbName,
		collName: collName,
		now:      time.Now,
	}
}

// Get loads the slot payload.
func (r *MongoDBRepository) Get(ctx context.Context, key string) (string, error) {
	var doc slotDocument
	err := r.collection().FindOne(ctx, bson.M{"_id": key}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return "", slot.ErrNotFound
		}
		return "", fmt.Errorf("failed to load slot %s: %w", key, err)
	}
	return doc.Payload, nil
}

// Set upserts the slot payload.
func (r *MongoDBRepository) Set(ctx context.Context, key, value string) error {
	doc := slotDocument{Key: key, Payload: value, UpdatedAt: r.now().UTC()}
	_, err := r.collection().ReplaceOne(ctx, bson.M{"_id": key}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to save slot %s: %w", key, err)
	}
	return nil
}

// Close closes the MongoDB connection.
func (r *MongoDBRepository) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}

func (r *MongoDBRepository) collection() *mongo.Collection {
	return r.client.Database(r.dbName).Collection(r.collName)
}
