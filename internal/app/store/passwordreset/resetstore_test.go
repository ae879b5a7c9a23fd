package passwordreset_test

import (
	"errors"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/mefen/volunteerhub/internal/app/store/passwordreset"
	"github.com/mefen/volunteerhub/internal/testutil"
)

func TestStore_CreateAndConsume(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := passwordreset.New(db, time.Hour)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	userID := primitive.NewObjectID()
	token, err := store.Create(ctx, userID, "fatima@example.com")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if token == "" {
		t.Fatal("expected a token")
	}

	rec, err := store.Consume(ctx, token)
	if err != nil {
		t.Fatalf("Consume failed: %v", err)
	}
	if rec.UserID != userID {
		t.Errorf("UserID = %v, want %v", rec.UserID, userID)
	}
	if rec.Email != "fatima@example.com" {
		t.Errorf("Email = %q", rec.Email)
	}

	// Single use.
	if _, err := store.Consume(ctx, token); !errors.Is(err, passwordreset.ErrNotFound) {
		t.Errorf("second Consume = %v, want ErrNotFound", err)
	}
}

func TestStore_Lookup_DoesNotConsume(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := passwordreset.New(db, time.Hour)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	token, err := store.Create(ctx, primitive.NewObjectID(), "imam@example.com")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if _, err := store.Lookup(ctx, token); err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}
	if _, err := store.Lookup(ctx, token); err != nil {
		t.Errorf("second Lookup failed: %v", err)
	}
	if _, err := store.Consume(ctx, token); err != nil {
		t.Errorf("Consume after Lookup failed: %v", err)
	}
}

func TestStore_Consume_Expired(t *testing.T) {
	db := testutil.SetupTestDB(t)
	// Negative expiry is replaced by the default, so use the shortest
	// positive duration to get an already-expired token.
	store := passwordreset.New(db, time.Nanosecond)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	token, err := store.Create(ctx, primitive.NewObjectID(), "late@example.com")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	time.Sleep(5 * time.Millisecond)

	if _, err := store.Consume(ctx, token); !errors.Is(err, passwordreset.ErrNotFound) {
		t.Errorf("Consume expired = %v, want ErrNotFound", err)
	}
}

func TestStore_Create_ReplacesEarlierToken(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := passwordreset.New(db, time.Hour)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	userID := primitive.NewObjectID()
	first, err := store.Create(ctx, userID, "x@example.com")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	second, err := store.Create(ctx, userID, "x@example.com")
	if err != nil {
		t.Fatalf("second Create failed: %v", err)
	}
	if first == second {
		t.Fatal("expected a fresh token")
	}

	if _, err := store.Consume(ctx, first); !errors.Is(err, passwordreset.ErrNotFound) {
		t.Errorf("old token = %v, want ErrNotFound", err)
	}
	if _, err := store.Consume(ctx, second); err != nil {
		t.Errorf("new token failed: %v", err)
	}
}

func TestStore_Create_RateLimited(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := passwordreset.New(db, time.Hour)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	userID := primitive.NewObjectID()
	for i := 0; i < passwordreset.MaxRequests; i++ {
		if _, err := store.Create(ctx, userID, "spam@example.com"); err != nil {
			t.Fatalf("Create %d failed: %v", i+1, err)
		}
	}
	if _, err := store.Create(ctx, userID, "spam@example.com"); !errors.Is(err, passwordreset.ErrTooManyRequests) {
		t.Errorf("Create over limit = %v, want ErrTooManyRequests", err)
	}

	// Other users are unaffected.
	if _, err := store.Create(ctx, primitive.NewObjectID(), "other@example.com"); err != nil {
		t.Errorf("Create for other user failed: %v", err)
	}
}
