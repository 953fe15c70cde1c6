package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoRepository[T any] struct {
	mongo *mongo.Database
}

func NewMongoRepository[T any](mongo *mongo.Database) *MongoRepository[T] {
	return &MongoRepository[T]{mongo: mongo}
}

// Create inserts the entity as a single write, with createdAt/updatedAt
// assigned here rather than by the caller.
func (r *MongoRepository[T]) Create(ctx context.Context, collectionName string, entity T) (T, error) {
	var out T
	collection := r.mongo.Collection(collectionName)

	raw, err := bson.Marshal(entity)
	if err != nil {
		return out, err
	}

	var doc bson.M
	if err := bson.Unmarshal(raw, &doc); err != nil {
		return out, err
	}

	now := time.Now().UTC()
	doc["createdAt"] = now
	doc["updatedAt"] = now
	if id, ok := doc["_id"]; !ok || id == primitive.NilObjectID {
		doc["_id"] = primitive.NewObjectID()
	}

	if _, err := collection.InsertOne(ctx, doc); err != nil {
		return out, err
	}

	final, err := bson.Marshal(doc)
	if err != nil {
		return out, err
	}
	err = bson.Unmarshal(final, &out)
	return out, err
}

func (r *MongoRepository[T]) FindByID(ctx context.Context, collectionName string, id string) (T, error) {
	var entity T
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return entity, err
	}

	collection := r.mongo.Collection(collectionName)
	err = collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&entity)
	return entity, err
}

// FindByUser returns the user's documents, newest first.
func (r *MongoRepository[T]) FindByUser(ctx context.Context, collectionName string, userID string) ([]T, error) {
	collection := r.mongo.Collection(collectionName)

	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := collection.Find(ctx, bson.M{"userId": userID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var entities []T
	for cursor.Next(ctx) {
		var entity T
		if err := cursor.Decode(&entity); err != nil {
			return nil, err
		}
		entities = append(entities, entity)
	}
	return entities, cursor.Err()
}

// UpdateFields applies a partial $set and returns the updated document.
func (r *MongoRepository[T]) UpdateFields(ctx context.Context, collectionName string, id string, fields map[string]any) (T, error) {
	var entity T
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return entity, err
	}

	set := bson.M{"updatedAt": time.Now().UTC()}
	for key, value := range fields {
		set[key] = value
	}

	collection := r.mongo.Collection(collectionName)
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	err = collection.FindOneAndUpdate(ctx, bson.M{"_id": objectID}, bson.M{"$set": set}, opts).Decode(&entity)
	return entity, err
}

func (r *MongoRepository[T]) Delete(ctx context.Context, collectionName string, id string) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return err
	}

	collection := r.mongo.Collection(collectionName)
	result, err := collection.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
