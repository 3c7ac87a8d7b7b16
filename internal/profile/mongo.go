// internal/profile/mongo.go

package profile

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const profilesCollection = "profiles"

// mongoRepository implements Repository on a MongoDB collection, one document
// per user keyed by uid.
type mongoRepository struct {
	collection *mongo.Collection
}

// NewMongoRepository creates a new MongoDB repository
func NewMongoRepository(db *mongo.Database) Repository {
	return &mongoRepository{collection: db.Collection(profilesCollection)}
}

func (r *mongoRepository) Get(ctx context.Context, uid string) (*Profile, error) {
	var p Profile
	err := r.collection.FindOne(ctx, bson.M{"_id": uid}).Decode(&p)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return &p, nil
}

func (r *mongoRepository) ListAll(ctx context.Context) ([]*Profile, error) {
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}
	defer cursor.Close(ctx)

	var profiles []*Profile
	if err := cursor.All(ctx, &profiles); err != nil {
		return nil, fmt.Errorf("failed to decode profiles: %w", err)
	}
	return profiles, nil
}

func (r *mongoRepository) Update(ctx context.Context, uid string, fields map[string]any) error {
	update, err := buildMongoUpdate(fields, time.Now())
	if err != nil {
		return err
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": uid}, update)
	if err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrProfileNotFound
	}
	return nil
}

func (r *mongoRepository) Create(ctx context.Context, p *Profile) error {
	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now

	_, err := r.collection.InsertOne(ctx, p)
	if mongo.IsDuplicateKeyError(err) {
		return ErrProfileExists
	}
	if err != nil {
		return fmt.Errorf("failed to create profile: %w", err)
	}
	return nil
}

// buildMongoUpdate splits fields into $set and $unset operations. Known
// fields live at the top level, the rest under attributes.
func buildMongoUpdate(fields map[string]any, now time.Time) (bson.M, error) {
	set := bson.M{"updatedAt": now}
	unset := bson.M{}

	for key, value := range fields {
		path := "attributes." + key
		if IsKnownField(key) {
			path = key
			normalized, err := columnValue(key, value)
			if err != nil {
				return nil, fmt.Errorf("%w: %s: %v", ErrInvalidField, key, err)
			}
			value = mongoValue(normalized, value)
		}

		if value == nil {
			unset[path] = ""
			continue
		}
		set[path] = value
	}

	update := bson.M{"$set": set}
	if len(unset) > 0 {
		update["$unset"] = unset
	}
	return update, nil
}

// mongoValue unwraps the normalized column argument into a plain BSON value.
func mongoValue(normalized, original any) any {
	switch v := normalized.(type) {
	case *string:
		if v == nil {
			return nil
		}
		return *v
	case *int:
		if v == nil {
			return nil
		}
		return *v
	case bool:
		return v
	case nil:
		return nil
	}
	// list fields: columnValue wraps them for pq, store the raw list instead
	list, err := toStrings(original)
	if err != nil || list == nil {
		return nil
	}
	return list
}
