// internal/app/store/plannings/planningstore.go
package planningstore

import (
	"context"
	"time"

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
	return &Store{c: db.Collection("plannings")}
}

// Create schedules a volunteer into a room. The date range is inclusive
// on both ends; EndDate must not precede StartDate.
func (s *Store) Create(ctx context.Context, p models.Planning) (models.Planning, error) {
	if p.VolunteerID.IsZero() {
		return models.Planning{}, mongo.CommandError{Message: "volunteer is required"}
	}
	if p.RoomID.IsZero() {
		return models.Planning{}, mongo.CommandError{Message: "room is required"}
	}
	if p.StartDate.IsZero() || p.EndDate.IsZero() {
		return models.Planning{}, mongo.CommandError{Message: "start and end dates are required"}
	}
	if p.EndDate.Before(p.StartDate) {
		return models.Planning{}, mongo.CommandError{Message: "end date cannot precede start date"}
	}

	p.ID = primitive.NewObjectID()
	p.CreatedAt = time.Now().UTC()

	if _, err := s.c.InsertOne(ctx, p); err != nil {
		return models.Planning{}, err
	}
	return p, nil
}

// Update replaces a planning's volunteer, room and date range.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, p models.Planning) error {
	if p.VolunteerID.IsZero() || p.RoomID.IsZero() {
		return mongo.CommandError{Message: "volunteer and room are required"}
	}
	if p.EndDate.Before(p.StartDate) {
		return mongo.CommandError{Message: "end date cannot precede start date"}
	}

	res, err := s.c.UpdateByID(ctx, id, bson.M{"$set": bson.M{
		"volunteer_id": p.VolunteerID,
		"room_id":      p.RoomID,
		"start_date":   p.StartDate,
		"end_date":     p.EndDate,
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// GetByID returns a planning by its ID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Planning, error) {
	var p models.Planning
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&p)
	if err != nil {
		return models.Planning{}, err
	}
	return p, nil
}

// List returns all plannings sorted by start date, most recent first.
func (s *Store) List(ctx context.Context) ([]models.Planning, error) {
	opts := options.Find().SetSort(bson.D{{Key: "start_date", Value: -1}})
	cur, err := s.c.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var plannings []models.Planning
	if err := cur.All(ctx, &plannings); err != nil {
		return nil, err
	}
	return plannings, nil
}

// ListActiveOn returns plannings whose inclusive date range covers the
// given day. Used for the home screen's "today" panel.
func (s *Store) ListActiveOn(ctx context.Context, day time.Time) ([]models.Planning, error) {
	filter := bson.M{
		"start_date": bson.M{"$lte": day},
		"end_date":   bson.M{"$gte": day},
	}
	cur, err := s.c.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "start_date", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var plannings []models.Planning
	if err := cur.All(ctx, &plannings); err != nil {
		return nil, err
	}
	return plannings, nil
}

// ListByRoom returns plannings for one room.
func (s *Store) ListByRoom(ctx context.Context, roomID primitive.ObjectID) ([]models.Planning, error) {
	cur, err := s.c.Find(ctx, bson.M{"room_id": roomID})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var plannings []models.Planning
	if err := cur.All(ctx, &plannings); err != nil {
		return nil, err
	}
	return plannings, nil
}

// Delete removes a planning by ID. Returns the number of documents deleted (0 or 1).
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// DeleteByVolunteer removes all plannings for a volunteer. Called when
// the volunteer record itself is deleted.
func (s *Store) DeleteByVolunteer(ctx context.Context, volunteerIDs []primitive.ObjectID) (int64, error) {
	if len(volunteerIDs) == 0 {
		return 0, nil
	}
	res, err := s.c.DeleteMany(ctx, bson.M{"volunteer_id": bson.M{"$in": volunteerIDs}})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// Count returns the total number of plannings.
func (s *Store) Count(ctx context.Context) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{})
}
