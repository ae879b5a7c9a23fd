package mosquestore_test

import (
	"testing"

	mosquestore "github.com/mefen/volunteerhub/internal/app/store/mosque"
	"github.com/mefen/volunteerhub/internal/domain/models"
	"github.com/mefen/volunteerhub/internal/testutil"
)

func TestStore_Get_ReturnsDefaultsWhenEmpty(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := mosquestore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	info, err := store.Get(ctx)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}

	want := models.DefaultMosqueInfo()
	if info.MenAddress != want.MenAddress {
		t.Errorf("MenAddress = %q, want default %q", info.MenAddress, want.MenAddress)
	}
	if info.Phone != want.Phone || info.Email != want.Email {
		t.Errorf("contact defaults wrong: %q / %q", info.Phone, info.Email)
	}
}

func TestStore_SaveThenGet(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := mosquestore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	edited := models.DefaultMosqueInfo()
	edited.Phone = "031234567"
	edited.Email = "contact@mefen.be"

	if err := store.Save(ctx, edited); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	got, err := store.Get(ctx)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Phone != "031234567" || got.Email != "contact@mefen.be" {
		t.Errorf("saved values not returned: %q / %q", got.Phone, got.Email)
	}
	if got.UpdatedAt == nil {
		t.Error("UpdatedAt not set on save")
	}

	// Second save updates the same document.
	edited.Phone = "039999999"
	if err := store.Save(ctx, edited); err != nil {
		t.Fatalf("second Save failed: %v", err)
	}
	got, err = store.Get(ctx)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Phone != "039999999" {
		t.Errorf("Phone = %q after second save", got.Phone)
	}
}
