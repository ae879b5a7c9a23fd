package planningstore_test

import (
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	planningstore "github.com/mefen/volunteerhub/internal/app/store/plannings"
	"github.com/mefen/volunteerhub/internal/domain/models"
	"github.com/mefen/volunteerhub/internal/testutil"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestStore_Create(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := planningstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	p := models.Planning{
		VolunteerID: primitive.NewObjectID(),
		RoomID:      primitive.NewObjectID(),
		StartDate:   day(2026, 9, 1),
		EndDate:     day(2026, 9, 7),
	}

	created, err := store.Create(ctx, p)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if created.ID == primitive.NilObjectID {
		t.Error("expected ID to be assigned")
	}
	if created.CreatedAt.IsZero() {
		t.Error("expected CreatedAt to be set")
	}
}

func TestStore_Create_Validation(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := planningstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	base := models.Planning{
		VolunteerID: primitive.NewObjectID(),
		RoomID:      primitive.NewObjectID(),
		StartDate:   day(2026, 9, 1),
		EndDate:     day(2026, 9, 7),
	}

	t.Run("missing volunteer", func(t *testing.T) {
		p := base
		p.VolunteerID = primitive.NilObjectID
		if _, err := store.Create(ctx, p); err == nil {
			t.Fatal("expected error")
		}
	})

	t.Run("missing room", func(t *testing.T) {
		p := base
		p.RoomID = primitive.NilObjectID
		if _, err := store.Create(ctx, p); err == nil {
			t.Fatal("expected error")
		}
	})

	t.Run("end before start", func(t *testing.T) {
		p := base
		p.StartDate = day(2026, 9, 7)
		p.EndDate = day(2026, 9, 1)
		if _, err := store.Create(ctx, p); err == nil {
			t.Fatal("expected error")
		}
	})

	t.Run("single day is allowed", func(t *testing.T) {
		p := base
		p.StartDate = day(2026, 9, 3)
		p.EndDate = day(2026, 9, 3)
		if _, err := store.Create(ctx, p); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	})
}

func TestStore_ListActiveOn(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := planningstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	mk := func(start, end time.Time) {
		t.Helper()
		_, err := store.Create(ctx, models.Planning{
			VolunteerID: primitive.NewObjectID(),
			RoomID:      primitive.NewObjectID(),
			StartDate:   start,
			EndDate:     end,
		})
		if err != nil {
			t.Fatalf("fixture create: %v", err)
		}
	}

	mk(day(2026, 9, 1), day(2026, 9, 7))  // covers the 3rd
	mk(day(2026, 9, 3), day(2026, 9, 3))  // exactly the 3rd
	mk(day(2026, 9, 10), day(2026, 9, 12)) // later

	active, err := store.ListActiveOn(ctx, day(2026, 9, 3))
	if err != nil {
		t.Fatalf("ListActiveOn failed: %v", err)
	}
	if len(active) != 2 {
		t.Errorf("expected 2 active plannings on Sep 3, got %d", len(active))
	}
}

func TestStore_DeleteByVolunteer(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := planningstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	keep := primitive.NewObjectID()
	gone := primitive.NewObjectID()

	for _, vid := range []primitive.ObjectID{keep, gone, gone} {
		_, err := store.Create(ctx, models.Planning{
			VolunteerID: vid,
			RoomID:      primitive.NewObjectID(),
			StartDate:   day(2026, 9, 1),
			EndDate:     day(2026, 9, 2),
		})
		if err != nil {
			t.Fatalf("fixture create: %v", err)
		}
	}

	deleted, err := store.DeleteByVolunteer(ctx, []primitive.ObjectID{gone})
	if err != nil {
		t.Fatalf("DeleteByVolunteer failed: %v", err)
	}
	if deleted != 2 {
		t.Errorf("deleted = %d, want 2", deleted)
	}

	remaining, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(remaining) != 1 || remaining[0].VolunteerID != keep {
		t.Errorf("unexpected remaining plannings: %d", len(remaining))
	}
}
