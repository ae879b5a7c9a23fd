// internal/app/store/rooms/roomstore.go
package roomstore

import (
	"context"
	"errors"
	"strings"
	"time"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mefen/volunteerhub/internal/domain/models"
)

type Store struct {
	c *mongo.Collection
}

// ErrDuplicateName is returned when a room with the same folded name exists.
var ErrDuplicateName = errors.New("a room with this name already exists")

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("rooms")}
}

// Create inserts a new Room, setting NameCI and timestamps.
func (s *Store) Create(ctx context.Context, room models.Room) (models.Room, error) {
	if strings.TrimSpace(room.Name) == "" {
		return models.Room{}, mongo.CommandError{Message: "name is required"}
	}
	if room.Capacity < 0 {
		return models.Room{}, mongo.CommandError{Message: "capacity cannot be negative"}
	}

	now := time.Now().UTC()
	room.ID = primitive.NewObjectID()
	room.Name = strings.TrimSpace(room.Name)
	room.NameCI = text.Fold(room.Name)
	room.CreatedAt = now
	room.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, room); err != nil {
		if wafflemongo.IsDup(err) {
			return models.Room{}, ErrDuplicateName
		}
		return models.Room{}, err
	}
	return room, nil
}

// Update modifies a room's name and capacity.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, name string, capacity int) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return mongo.CommandError{Message: "name is required"}
	}
	if capacity < 0 {
		return mongo.CommandError{Message: "capacity cannot be negative"}
	}

	res, err := s.c.UpdateByID(ctx, id, bson.M{"$set": bson.M{
		"name":       name,
		"name_ci":    text.Fold(name),
		"capacity":   capacity,
		"updated_at": time.Now().UTC(),
	}})
	if err != nil {
		if wafflemongo.IsDup(err) {
			return ErrDuplicateName
		}
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// GetByID returns a room by its ID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Room, error) {
	var room models.Room
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&room)
	if err != nil {
		return models.Room{}, err
	}
	return room, nil
}

// List returns all rooms sorted by name.
func (s *Store) List(ctx context.Context) ([]models.Room, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name_ci", Value: 1}})
	cur, err := s.c.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var rooms []models.Room
	if err := cur.All(ctx, &rooms); err != nil {
		return nil, err
	}
	return rooms, nil
}

// Delete removes a room by ID. Returns the number of documents deleted (0 or 1).
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// Count returns the total number of rooms.
func (s *Store) Count(ctx context.Context) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{})
}
