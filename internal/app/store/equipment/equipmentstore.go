// internal/app/store/equipment/equipmentstore.go
package equipmentstore

import (
	"context"
	"errors"
	"time"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mefen/volunteerhub/internal/domain/models"
)

type Store struct {
	c *mongo.Collection
}

var (
	// ErrNotFound is returned when no item exists for a (type, number) pair.
	ErrNotFound = errors.New("equipment not found")
	// ErrDuplicate is returned when a (type, number) pair already exists.
	ErrDuplicate = errors.New("equipment with this type and number already exists")
)

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("equipment")}
}

// Create registers a new piece of equipment. The number must fall
// within the configured range for the type, and the (type, number)
// pair must be unique.
func (s *Store) Create(ctx context.Context, e models.Equipment) (models.Equipment, error) {
	if _, ok := models.EquipmentTypeByID(e.Type); !ok {
		return models.Equipment{}, mongo.CommandError{Message: "unknown equipment type"}
	}
	if !models.IsValidEquipmentNumber(e.Type, e.Number) {
		return models.Equipment{}, mongo.CommandError{Message: "number out of range for type"}
	}

	now := time.Now().UTC()
	e.ID = primitive.NewObjectID()
	e.VolunteerID = nil
	e.IsCheckedOut = false
	e.CheckedOutAt = nil
	e.CreatedAt = now
	e.UpdatedAt = &now

	if _, err := s.c.InsertOne(ctx, e); err != nil {
		if wafflemongo.IsDup(err) {
			return models.Equipment{}, ErrDuplicate
		}
		return models.Equipment{}, err
	}
	return e, nil
}

// GetByID returns a piece of equipment by its ID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Equipment, error) {
	var e models.Equipment
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&e)
	if err != nil {
		return models.Equipment{}, err
	}
	return e, nil
}

// GetByTypeNumber returns the item registered under a (type, number) pair.
func (s *Store) GetByTypeNumber(ctx context.Context, equipType string, number int) (models.Equipment, error) {
	var e models.Equipment
	err := s.c.FindOne(ctx, bson.M{"type": equipType, "number": number}).Decode(&e)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Equipment{}, ErrNotFound
	}
	if err != nil {
		return models.Equipment{}, err
	}
	return e, nil
}

// List returns all equipment sorted by type then number. When
// checkedOutOnly is true, only items currently with a volunteer are
// returned.
func (s *Store) List(ctx context.Context, checkedOutOnly bool) ([]models.Equipment, error) {
	filter := bson.M{}
	if checkedOutOnly {
		filter["is_checked_out"] = true
	}

	opts := options.Find().SetSort(bson.D{
		{Key: "type", Value: 1},
		{Key: "number", Value: 1},
	})

	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var items []models.Equipment
	if err := cur.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// ListByVolunteer returns the items currently checked out to a volunteer.
func (s *Store) ListByVolunteer(ctx context.Context, volunteerID primitive.ObjectID) ([]models.Equipment, error) {
	cur, err := s.c.Find(ctx, bson.M{"volunteer_id": volunteerID, "is_checked_out": true})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var items []models.Equipment
	if err := cur.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// Assign checks an item out to a volunteer, addressed by its (type,
// number) pair. An item already checked out is reassigned; the pair is
// the physical label on the item, so the last scan wins.
// Returns ErrNotFound when no item is registered under the pair.
func (s *Store) Assign(ctx context.Context, equipType string, number int, volunteerID primitive.ObjectID) error {
	now := time.Now().UTC()
	res, err := s.c.UpdateOne(ctx,
		bson.M{"type": equipType, "number": number},
		bson.M{"$set": bson.M{
			"volunteer_id":   volunteerID,
			"is_checked_out": true,
			"checked_out_at": now,
			"updated_at":     now,
		}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Return checks an item back in, clearing the volunteer reference.
// Returning an item that is not checked out is a no-op, not an error.
func (s *Store) Return(ctx context.Context, id primitive.ObjectID) error {
	now := time.Now().UTC()
	res, err := s.c.UpdateByID(ctx, id, bson.M{
		"$set": bson.M{
			"is_checked_out": false,
			"updated_at":     now,
		},
		"$unset": bson.M{
			"volunteer_id":   "",
			"checked_out_at": "",
		},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes an item by ID. Returns the number of documents deleted (0 or 1).
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// CountByType returns how many items are registered per type.
func (s *Store) CountByType(ctx context.Context) (map[string]int64, error) {
	cur, err := s.c.Aggregate(ctx, mongo.Pipeline{
		{{Key: "$group", Value: bson.M{"_id": "$type", "count": bson.M{"$sum": 1}}}},
	})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	counts := make(map[string]int64)
	for cur.Next(ctx) {
		var row struct {
			ID    string `bson:"_id"`
			Count int64  `bson:"count"`
		}
		if err := cur.Decode(&row); err != nil {
			return nil, err
		}
		counts[row.ID] = row.Count
	}
	return counts, cur.Err()
}
