// internal/app/store/volunteers/volunteerstore.go
package volunteerstore

import (
	"context"
	"regexp"
	"strings"
	"time"

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

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("volunteers")}
}

// searchKey folds the fields the list screen searches over into one
// string, so a single substring match covers name and phone together.
func searchKey(v models.Volunteer) string {
	return text.Fold(strings.Join([]string{v.FirstName, v.LastName, v.PhoneNumber}, " "))
}

// Create inserts a new Volunteer, setting SearchCI and timestamps.
func (s *Store) Create(ctx context.Context, v models.Volunteer) (models.Volunteer, error) {
	if strings.TrimSpace(v.FirstName) == "" {
		return models.Volunteer{}, mongo.CommandError{Message: "first name is required"}
	}
	if strings.TrimSpace(v.LastName) == "" {
		return models.Volunteer{}, mongo.CommandError{Message: "last name is required"}
	}
	if strings.TrimSpace(v.PhoneNumber) == "" {
		return models.Volunteer{}, mongo.CommandError{Message: "phone number is required"}
	}

	now := time.Now().UTC()
	v.ID = primitive.NewObjectID()
	v.SearchCI = searchKey(v)
	v.CreatedAt = now
	v.UpdatedAt = &now

	if _, err := s.c.InsertOne(ctx, v); err != nil {
		return models.Volunteer{}, err
	}
	return v, nil
}

// Update modifies mutable fields and refreshes SearchCI and UpdatedAt.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, mut models.Volunteer) error {
	if strings.TrimSpace(mut.FirstName) == "" {
		return mongo.CommandError{Message: "first name is required"}
	}
	if strings.TrimSpace(mut.LastName) == "" {
		return mongo.CommandError{Message: "last name is required"}
	}
	if strings.TrimSpace(mut.PhoneNumber) == "" {
		return mongo.CommandError{Message: "phone number is required"}
	}

	now := time.Now().UTC()
	set := bson.M{
		"first_name":   mut.FirstName,
		"last_name":    mut.LastName,
		"phone_number": mut.PhoneNumber,
		"email":        mut.Email,
		"search_ci":    searchKey(mut),
		"updated_at":   now,
	}

	res, err := s.c.UpdateByID(ctx, id, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// GetByID returns a volunteer by its ID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Volunteer, error) {
	var v models.Volunteer
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&v)
	if err != nil {
		return models.Volunteer{}, err
	}
	return v, nil
}

// GetByIDs returns multiple volunteers by their IDs.
func (s *Store) GetByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Volunteer, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	cur, err := s.c.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var out []models.Volunteer
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// List returns volunteers sorted by last then first name. When q is
// non-empty, results are restricted to a case-insensitive substring
// match over the folded name and phone fields.
func (s *Store) List(ctx context.Context, q string) ([]models.Volunteer, error) {
	filter := bson.M{}
	if folded := text.Fold(strings.TrimSpace(q)); folded != "" {
		filter["search_ci"] = bson.M{"$regex": regexp.QuoteMeta(folded)}
	}

	opts := options.Find().SetSort(bson.D{
		{Key: "last_name", Value: 1},
		{Key: "first_name", Value: 1},
	})

	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var volunteers []models.Volunteer
	if err := cur.All(ctx, &volunteers); err != nil {
		return nil, err
	}
	return volunteers, nil
}

// Delete removes a volunteer by ID. Returns the number of documents deleted (0 or 1).
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// DeleteMany removes the given volunteers in one call and returns the
// number actually deleted. IDs that no longer exist are skipped.
func (s *Store) DeleteMany(ctx context.Context, ids []primitive.ObjectID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	res, err := s.c.DeleteMany(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// Count returns the number of volunteers matching the given filter.
func (s *Store) Count(ctx context.Context, filter bson.M) (int64, error) {
	return s.c.CountDocuments(ctx, filter)
}
