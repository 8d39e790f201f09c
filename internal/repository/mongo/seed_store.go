package mongo

import (
	"context"
	"fmt"

	"musclemania/gym-catalog/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// mongoSeedStore implements repository.SeedStore. Batches run inside a
// multi-document transaction, so they commit or abort as a whole.
type mongoSeedStore struct {
	db *mongo.Database
}

// NewMongoSeedStore creates the seeding store for db.
func NewMongoSeedStore(db *mongo.Database) repository.SeedStore {
	return &mongoSeedStore{db: db}
}

// QueryFirst returns the IDs of at most limit documents in collection.
func (s *mongoSeedStore) QueryFirst(ctx context.Context, collection string, limit int) ([]string, error) {
	findOptions := options.Find().
		SetLimit(int64(limit)).
		SetProjection(bson.M{"_id": 1})

	cursor, err := s.db.Collection(collection).Find(ctx, bson.M{}, findOptions)
	if err != nil {
		return nil, classify(err)
	}
	defer cursor.Close(ctx)

	var docs []bson.M
	if err = cursor.All(ctx, &docs); err != nil {
		return nil, classify(err)
	}

	ids := make([]string, 0, len(docs))
	for _, doc := range docs {
		ids = append(ids, idString(doc["_id"]))
	}
	return ids, nil
}

// AllocateID issues an ObjectID-based key. MongoDB needs no round trip for it.
func (s *mongoSeedStore) AllocateID(string) string {
	return newID()
}

// BatchWrite inserts every record in one transaction.
func (s *mongoSeedStore) BatchWrite(ctx context.Context, writes []repository.Write) error {
	if len(writes) == 0 {
		return nil
	}

	docs := make([]bson.D, len(writes))
	for i, w := range writes {
		doc, err := withID(w.Record, w.ID)
		if err != nil {
			return fmt.Errorf("encode %s/%s: %w", w.Collection, w.ID, err)
		}
		docs[i] = doc
	}

	session, err := s.db.Client().StartSession()
	if err != nil {
		return classify(err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		for i, w := range writes {
			if _, err := s.db.Collection(w.Collection).InsertOne(sc, docs[i]); err != nil {
				return nil, err
			}
		}
		return nil, nil
	})
	return classify(err)
}

// withID encodes record and forces its _id to id.
func withID(record any, id string) (bson.D, error) {
	raw, err := bson.Marshal(record)
	if err != nil {
		return nil, err
	}
	var doc bson.D
	if err := bson.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}

	out := bson.D{{Key: "_id", Value: id}}
	for _, elem := range doc {
		if elem.Key != "_id" {
			out = append(out, elem)
		}
	}
	return out, nil
}
