package roomstore_test

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	roomstore "github.com/mefen/volunteerhub/internal/app/store/rooms"
	"github.com/mefen/volunteerhub/internal/domain/models"
	"github.com/mefen/volunteerhub/internal/testutil"
)

func TestStore_Create(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := roomstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, models.Room{Name: "  Gebedsruimte  ", Capacity: 40})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if created.ID == primitive.NilObjectID {
		t.Error("expected ID to be assigned")
	}
	if created.Name != "Gebedsruimte" {
		t.Errorf("Name not trimmed: %q", created.Name)
	}
	if created.NameCI == "" {
		t.Error("expected NameCI to be set")
	}
}

func TestStore_Create_Validation(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := roomstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := store.Create(ctx, models.Room{Name: "   "}); err == nil {
		t.Error("expected error for blank name")
	}
	if _, err := store.Create(ctx, models.Room{Name: "Zaal", Capacity: -1}); err == nil {
		t.Error("expected error for negative capacity")
	}
}

func TestStore_Update(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := roomstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, models.Room{Name: "Zaal A", Capacity: 20})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if err := store.Update(ctx, created.ID, "Zaal B", 25); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	got, err := store.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Name != "Zaal B" || got.Capacity != 25 {
		t.Errorf("unexpected room after update: %+v", got)
	}

	if err := store.Update(ctx, primitive.NewObjectID(), "X", 1); err != mongo.ErrNoDocuments {
		t.Errorf("expected ErrNoDocuments for unknown id, got %v", err)
	}
}

func TestStore_List_SortedByName(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := roomstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	for _, name := range []string{"Keuken", "Bibliotheek", "Gebedsruimte"} {
		if _, err := store.Create(ctx, models.Room{Name: name}); err != nil {
			t.Fatalf("fixture create: %v", err)
		}
	}

	rooms, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(rooms) != 3 {
		t.Fatalf("expected 3 rooms, got %d", len(rooms))
	}
	if rooms[0].Name != "Bibliotheek" || rooms[2].Name != "Keuken" {
		t.Errorf("unexpected order: %s, %s, %s", rooms[0].Name, rooms[1].Name, rooms[2].Name)
	}
}

func TestStore_Delete(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := roomstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, models.Room{Name: "Zaal"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	deleted, err := store.Delete(ctx, created.ID)
	if err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if deleted != 1 {
		t.Errorf("deleted = %d, want 1", deleted)
	}

	deleted, err = store.Delete(ctx, created.ID)
	if err != nil {
		t.Fatalf("second Delete failed: %v", err)
	}
	if deleted != 0 {
		t.Errorf("deleted = %d, want 0 for missing room", deleted)
	}
}
