// internal/app/store/passwordreset/resetstore.go
package passwordreset

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	// DefaultExpiry is how long a reset token is valid.
	DefaultExpiry = 1 * time.Hour
	// MaxRequests is the maximum number of reset requests within the rate limit window.
	MaxRequests = 3
	// RequestWindow is the time window for tracking request rate limiting.
	RequestWindow = 15 * time.Minute
)

var (
	// ErrNotFound is returned when a reset record is not found, expired, or already used.
	ErrNotFound = errors.New("reset token not found or expired")
	// ErrTooManyRequests is returned when too many reset requests have been made.
	ErrTooManyRequests = errors.New("too many reset requests")
)

// Reset represents a pending password reset.
type Reset struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	UserID       primitive.ObjectID `bson:"user_id"`
	Email        string             `bson:"email"`
	Token        string             `bson:"token"`      // UUID sent in the reset link
	ExpiresAt    time.Time          `bson:"expires_at"` // TTL index field
	CreatedAt    time.Time          `bson:"created_at"`
	RequestCount int                `bson:"request_count"` // Number of requests in the current window
	WindowStart  time.Time          `bson:"window_start"`  // Start of rate limit window
}

// Store manages password reset records.
type Store struct {
	c      *mongo.Collection
	expiry time.Duration
}

// New creates a new Store with the specified expiry duration.
// If expiry is 0 or negative, DefaultExpiry (1 hour) is used.
func New(db *mongo.Database, expiry time.Duration) *Store {
	if expiry <= 0 {
		expiry = DefaultExpiry
	}
	return &Store{
		c:      db.Collection("password_resets"),
		expiry: expiry,
	}
}

// Expiry returns the expiry duration for reset tokens.
func (s *Store) Expiry() time.Duration {
	return s.expiry
}

// EnsureIndexes creates necessary indexes including TTL index for auto-cleanup.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "expires_at", Value: 1}},
			Options: options.Index().SetName("idx_pwreset_expires_ttl").SetExpireAfterSeconds(0), // TTL index
		},
		{
			Keys:    bson.D{{Key: "token", Value: 1}},
			Options: options.Index().SetName("idx_pwreset_token"),
		},
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}},
			Options: options.Index().SetName("idx_pwreset_user"),
		},
	}
	_, err := s.c.Indexes().CreateMany(ctx, indexes)
	return err
}

// Create creates a new reset record and returns the token to embed in the
// reset link. Any earlier record for the same user is replaced; only the
// most recent token is valid.
func (s *Store) Create(ctx context.Context, userID primitive.ObjectID, email string) (string, error) {
	now := time.Now()

	var existing Reset
	err := s.c.FindOne(ctx, bson.M{"user_id": userID}).Decode(&existing)
	existingFound := err == nil

	requestCount := 1
	windowStart := now
	if existingFound && now.Before(existing.WindowStart.Add(RequestWindow)) {
		if existing.RequestCount >= MaxRequests {
			return "", ErrTooManyRequests
		}
		windowStart = existing.WindowStart
		requestCount = existing.RequestCount + 1
	}

	token := uuid.NewString()

	_, _ = s.c.DeleteMany(ctx, bson.M{"user_id": userID})

	rec := Reset{
		ID:           primitive.NewObjectID(),
		UserID:       userID,
		Email:        email,
		Token:        token,
		ExpiresAt:    now.Add(s.expiry),
		CreatedAt:    now,
		RequestCount: requestCount,
		WindowStart:  windowStart,
	}
	if _, err := s.c.InsertOne(ctx, rec); err != nil {
		return "", fmt.Errorf("insert reset: %w", err)
	}
	return token, nil
}

// Lookup returns the reset record for a token without consuming it.
// Used to validate the token before showing the new-password form.
func (s *Store) Lookup(ctx context.Context, token string) (*Reset, error) {
	var rec Reset
	err := s.c.FindOne(ctx, bson.M{
		"token":      token,
		"expires_at": bson.M{"$gt": time.Now()},
	}).Decode(&rec)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &rec, nil
}

// Consume validates a token and deletes the record. The token is single use;
// a second Consume with the same token returns ErrNotFound.
func (s *Store) Consume(ctx context.Context, token string) (*Reset, error) {
	var rec Reset
	err := s.c.FindOneAndDelete(ctx, bson.M{
		"token":      token,
		"expires_at": bson.M{"$gt": time.Now()},
	}).Decode(&rec)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &rec, nil
}

// DeleteByUser deletes all reset records for a user.
func (s *Store) DeleteByUser(ctx context.Context, userID primitive.ObjectID) error {
	_, err := s.c.DeleteMany(ctx, bson.M{"user_id": userID})
	return err
}
