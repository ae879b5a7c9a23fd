package testutil

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/dalemusser/waffle/pantry/text"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"

	"github.com/mefen/volunteerhub/internal/domain/models"
)

// WithChiURLParam adds a chi URL parameter to the request context.
// Use this in handler tests that need to access chi.URLParam values.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateVolunteer creates a test volunteer record.
func (f *Fixtures) CreateVolunteer(ctx context.Context, firstName, lastName, phone string) models.Volunteer {
	f.t.Helper()

	now := time.Now().UTC()
	v := models.Volunteer{
		ID:          primitive.NewObjectID(),
		FirstName:   firstName,
		LastName:    lastName,
		SearchCI:    text.Fold(firstName + " " + lastName + " " + phone),
		PhoneNumber: phone,
		CreatedAt:   now,
		UpdatedAt:   &now,
	}

	if _, err := f.db.Collection("volunteers").InsertOne(ctx, v); err != nil {
		f.t.Fatalf("failed to create test volunteer: %v", err)
	}
	return v
}

// CreateUser creates a test account with the given role and an "active"
// status. The password for every fixture account is "wachtwoord123".
func (f *Fixtures) CreateUser(ctx context.Context, fullName, email, role string) models.User {
	f.t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("wachtwoord123"), bcrypt.MinCost)
	if err != nil {
		f.t.Fatalf("failed to hash fixture password: %v", err)
	}

	now := time.Now().UTC()
	user := models.User{
		ID:           primitive.NewObjectID(),
		FullName:     fullName,
		FullNameCI:   text.Fold(fullName),
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		Status:       "active",
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if _, err := f.db.Collection("users").InsertOne(ctx, user); err != nil {
		f.t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateAdmin creates a test admin account.
func (f *Fixtures) CreateAdmin(ctx context.Context, fullName, email string) models.User {
	f.t.Helper()
	return f.CreateUser(ctx, fullName, email, models.RoleAdmin)
}

// CreateMedewerker creates a test medewerker account.
func (f *Fixtures) CreateMedewerker(ctx context.Context, fullName, email string) models.User {
	f.t.Helper()
	return f.CreateUser(ctx, fullName, email, models.RoleMedewerker)
}

// CreateDisabledUser creates a test account with disabled status.
func (f *Fixtures) CreateDisabledUser(ctx context.Context, fullName, email string) models.User {
	f.t.Helper()

	user := f.CreateUser(ctx, fullName, email, models.RoleMedewerker)
	_, err := f.db.Collection("users").UpdateByID(ctx, user.ID, map[string]any{
		"$set": map[string]any{"status": "disabled"},
	})
	if err != nil {
		f.t.Fatalf("failed to disable test user: %v", err)
	}
	user.Status = "disabled"
	return user
}

// CreateRoom creates a test room.
func (f *Fixtures) CreateRoom(ctx context.Context, name string, capacity int) models.Room {
	f.t.Helper()

	now := time.Now().UTC()
	room := models.Room{
		ID:        primitive.NewObjectID(),
		Name:      name,
		NameCI:    text.Fold(name),
		Capacity:  capacity,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := f.db.Collection("rooms").InsertOne(ctx, room); err != nil {
		f.t.Fatalf("failed to create test room: %v", err)
	}
	return room
}

// CreateEquipment creates a test equipment item that is not checked out.
func (f *Fixtures) CreateEquipment(ctx context.Context, typeID string, number int) models.Equipment {
	f.t.Helper()

	now := time.Now().UTC()
	item := models.Equipment{
		ID:        primitive.NewObjectID(),
		Type:      typeID,
		Number:    number,
		CreatedAt: now,
		UpdatedAt: &now,
	}

	if _, err := f.db.Collection("equipment").InsertOne(ctx, item); err != nil {
		f.t.Fatalf("failed to create test equipment: %v", err)
	}
	return item
}

// CreatePlanning schedules a volunteer into a room for the given range.
func (f *Fixtures) CreatePlanning(ctx context.Context, volunteerID, roomID primitive.ObjectID, start, end time.Time) models.Planning {
	f.t.Helper()

	p := models.Planning{
		ID:          primitive.NewObjectID(),
		VolunteerID: volunteerID,
		RoomID:      roomID,
		StartDate:   start,
		EndDate:     end,
		CreatedAt:   time.Now().UTC(),
	}

	if _, err := f.db.Collection("plannings").InsertOne(ctx, p); err != nil {
		f.t.Fatalf("failed to create test planning: %v", err)
	}
	return p
}
