package repo

import (
	"context"
	"errors"
	"time"

	dmn "github.com/beka-birhanu/labyrinth-api/domain"
	"github.com/beka-birhanu/labyrinth-api/service/i"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var _ i.RenderRepo = &RenderRepo{}

// RenderRepo handles the persistence of render records.
type RenderRepo struct {
	collection *mongo.Collection
}

// NewRenderRepo creates a RenderRepo on the given database and collection.
func NewRenderRepo(client *mongo.Client, dbName, collectionName string) *RenderRepo {
	collection := client.Database(dbName).Collection(collectionName)
	return &RenderRepo{
		collection: collection,
	}
}

// EnsureIndexes creates the index used by BySession.
func (r *RenderRepo) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "sessionId", Value: 1}, {Key: "createdAt", Value: -1}},
	})
	return err
}

// Save inserts a record. Records are immutable, so a duplicate ID is rejected.
func (r *RenderRepo) Save(record *dmn.RenderRecord) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	if _, err := r.collection.InsertOne(ctx, record); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return errors.New("render record conflict")
		}
		return errors.New("unexpected error: " + err.Error())
	}
	return nil
}

// BySession returns the records of a session, newest first.
func (r *RenderRepo) BySession(sessionID uuid.UUID) ([]*dmn.RenderRecord, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	filter := bson.M{"sessionId": sessionID}
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, errors.New("unexpected error: " + err.Error())
	}
	defer cursor.Close(ctx)

	records := []*dmn.RenderRecord{}
	if err := cursor.All(ctx, &records); err != nil {
		return nil, errors.New("unexpected error: " + err.Error())
	}
	return records, nil
}
