package database

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoStore implements Store on a MongoDB database.
type MongoStore struct {
	client *mongo.Client
	db     *mongo.Database
}

// Connect dials MongoDB and pings it before returning a usable store.
func Connect(ctx context.Context, uri, dbName string) (*MongoStore, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, &PersistenceError{Op: "connect", Collection: dbName, Err: err}
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, &PersistenceError{Op: "ping", Collection: dbName, Err: err}
	}

	return &MongoStore{client: client, db: client.Database(dbName)}, nil
}

func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func (s *MongoStore) Get(ctx context.Context, collection, id string, out any) error {
	err := s.db.Collection(collection).FindOne(ctx, bson.M{"_id": id}).Decode(out)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return &PersistenceError{Op: "get", Collection: collection, Err: ErrDocNotFound}
	}
	if err != nil {
		return &PersistenceError{Op: "get", Collection: collection, Err: err}
	}
	return nil
}

func (s *MongoStore) Set(ctx context.Context, collection, id string, doc any) error {
	_, err := s.db.Collection(collection).ReplaceOne(
		ctx,
		bson.M{"_id": id},
		doc,
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		return &PersistenceError{Op: "set", Collection: collection, Err: err}
	}
	return nil
}

func (s *MongoStore) Update(ctx context.Context, collection, id string, fields map[string]any) error {
	res, err := s.db.Collection(collection).UpdateOne(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": fields},
	)
	if err != nil {
		return &PersistenceError{Op: "update", Collection: collection, Err: err}
	}
	if res.MatchedCount == 0 {
		return &PersistenceError{Op: "update", Collection: collection, Err: ErrDocNotFound}
	}
	return nil
}

func (s *MongoStore) Delete(ctx context.Context, collection, id string) error {
	res, err := s.db.Collection(collection).DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return &PersistenceError{Op: "delete", Collection: collection, Err: err}
	}
	if res.DeletedCount == 0 {
		return &PersistenceError{Op: "delete", Collection: collection, Err: ErrDocNotFound}
	}
	return nil
}

func (s *MongoStore) Find(ctx context.Context, collection string, q Query, out any) error {
	filter := bson.M{}
	for k, v := range q.Filter {
		filter[k] = v
	}

	opts := options.Find()
	if q.SortBy != "" {
		order := 1
		if q.SortDesc {
			order = -1
		}
		opts.SetSort(bson.D{{Key: q.SortBy, Value: order}})
	}

	cursor, err := s.db.Collection(collection).Find(ctx, filter, opts)
	if err != nil {
		return &PersistenceError{Op: "find", Collection: collection, Err: err}
	}
	if err := cursor.All(ctx, out); err != nil {
		return &PersistenceError{Op: "find", Collection: collection, Err: err}
	}
	return nil
}
