// internal/app/store/mosque/mosquestore.go
package mosquestore

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mefen/volunteerhub/internal/domain/models"
)

// Store provides access to the mosque_info collection. A single
// document holds the contact details shown on the info screen.
type Store struct {
	c *mongo.Collection
}

const singletonKey = "mosque"

// New creates a new mosque info store.
func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("mosque_info")}
}

// Get returns the saved mosque info, or the built-in defaults when no
// admin has edited it yet.
func (s *Store) Get(ctx context.Context) (models.MosqueInfo, error) {
	var info models.MosqueInfo
	err := s.c.FindOne(ctx, bson.M{"key": singletonKey}).Decode(&info)
	if err == mongo.ErrNoDocuments {
		return models.DefaultMosqueInfo(), nil
	}
	if err != nil {
		return models.MosqueInfo{}, err
	}
	return info, nil
}

// Save persists edited mosque info.
// Uses upsert so it works whether a document exists or not.
func (s *Store) Save(ctx context.Context, info models.MosqueInfo) error {
	now := time.Now().UTC()
	info.UpdatedAt = &now

	update := bson.M{
		"$set": bson.M{
			"men_address":     info.MenAddress,
			"men_city":        info.MenCity,
			"women_address":   info.WomenAddress,
			"women_city":      info.WomenCity,
			"phone":           info.Phone,
			"email":           info.Email,
			"updated_at":      info.UpdatedAt,
			"updated_by_id":   info.UpdatedByID,
			"updated_by_name": info.UpdatedByName,
		},
		"$setOnInsert": bson.M{
			"_id": primitive.NewObjectID(),
			"key": singletonKey,
		},
	}

	opts := options.Update().SetUpsert(true)
	_, err := s.c.UpdateOne(ctx, bson.M{"key": singletonKey}, update, opts)
	return err
}
