package materials_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"go.uber.org/zap"

	uierrors "github.com/mefen/volunteerhub/internal/app/features/errors"
	"github.com/mefen/volunteerhub/internal/app/features/materials"
	equipmentstore "github.com/mefen/volunteerhub/internal/app/store/equipment"
	"github.com/mefen/volunteerhub/internal/app/system/flash"
	"github.com/mefen/volunteerhub/internal/testutil"
)

func newTestHandler(t *testing.T) (*materials.Handler, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	logger := zap.NewNop()
	handler := materials.NewHandler(db, uierrors.NewErrorLogger(logger), nil, flash.NewCodec("test-session-key-for-testing-only"), logger)
	return handler, testutil.NewFixtures(t, db)
}

func postForm(target string, form url.Values) *http.Request {
	req := httptest.NewRequest("POST", target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func TestHandleAssign(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	vol := fixtures.CreateVolunteer(ctx, "Ali", "Yilmaz", "0612345678")
	fixtures.CreateEquipment(ctx, "jacket", 5)

	req := postForm("/materials/assign", url.Values{
		"type":         {"jacket"},
		"number":       {"5"},
		"volunteer_id": {vol.ID.Hex()},
	})
	req = testutil.WithUser(req, testutil.MedewerkerUser())
	rec := httptest.NewRecorder()
	handler.HandleAssign(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected redirect, got %d", rec.Code)
	}

	item, err := handler.Equipment.GetByTypeNumber(ctx, "jacket", 5)
	if err != nil {
		t.Fatalf("get equipment: %v", err)
	}
	if !item.IsCheckedOut {
		t.Error("item not checked out")
	}
	if item.VolunteerID == nil || *item.VolunteerID != vol.ID {
		t.Error("item not assigned to volunteer")
	}
}

func TestHandleAssign_UnregisteredItem(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	vol := fixtures.CreateVolunteer(ctx, "Ali", "Yilmaz", "0612345678")

	req := postForm("/materials/assign", url.Values{
		"type":         {"lamp"},
		"number":       {"3"},
		"volunteer_id": {vol.ID.Hex()},
	})
	req = testutil.WithUser(req, testutil.MedewerkerUser())
	rec := httptest.NewRecorder()
	handler.HandleAssign(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected redirect, got %d", rec.Code)
	}

	// Registering items is the manage screen's job; assigning an unknown
	// label must report it and write nothing.
	if _, err := handler.Equipment.GetByTypeNumber(ctx, "lamp", 3); !errors.Is(err, equipmentstore.ErrNotFound) {
		t.Fatalf("expected no record for the unregistered label, got err=%v", err)
	}
}

func TestHandleAssign_LastScanWins(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	first := fixtures.CreateVolunteer(ctx, "Ali", "Yilmaz", "0612345678")
	second := fixtures.CreateVolunteer(ctx, "Yusuf", "Demir", "0687654321")
	fixtures.CreateEquipment(ctx, "vest", 12)

	for _, vol := range []string{first.ID.Hex(), second.ID.Hex()} {
		req := postForm("/materials/assign", url.Values{
			"type":         {"vest"},
			"number":       {"12"},
			"volunteer_id": {vol},
		})
		req = testutil.WithUser(req, testutil.MedewerkerUser())
		handler.HandleAssign(httptest.NewRecorder(), req)
	}

	item, err := handler.Equipment.GetByTypeNumber(ctx, "vest", 12)
	if err != nil {
		t.Fatalf("get equipment: %v", err)
	}
	if item.VolunteerID == nil || *item.VolunteerID != second.ID {
		t.Error("expected the item to follow the most recent scan")
	}
}

func TestHandleAssign_NumberOutOfRange(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	vol := fixtures.CreateVolunteer(ctx, "Ali", "Yilmaz", "0612345678")

	// Lamps run 1-20.
	req := postForm("/materials/assign", url.Values{
		"type":         {"lamp"},
		"number":       {"21"},
		"volunteer_id": {vol.ID.Hex()},
	})
	req = testutil.WithUser(req, testutil.MedewerkerUser())
	rec := httptest.NewRecorder()
	handler.HandleAssign(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected redirect, got %d", rec.Code)
	}
	if _, err := handler.Equipment.GetByTypeNumber(ctx, "lamp", 21); err == nil {
		t.Error("out-of-range item should not have been created")
	}
}

func TestHandleReturn(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	vol := fixtures.CreateVolunteer(ctx, "Ali", "Yilmaz", "0612345678")
	item := fixtures.CreateEquipment(ctx, "walkie_talkie", 2)
	if err := handler.Equipment.Assign(ctx, "walkie_talkie", 2, vol.ID); err != nil {
		t.Fatalf("assign: %v", err)
	}

	req := httptest.NewRequest("POST", "/materials/"+item.ID.Hex()+"/return", nil)
	req = testutil.WithChiURLParam(req, "id", item.ID.Hex())
	req = testutil.WithUser(req, testutil.MedewerkerUser())
	rec := httptest.NewRecorder()
	handler.HandleReturn(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected redirect, got %d", rec.Code)
	}

	got, err := handler.Equipment.GetByID(ctx, item.ID)
	if err != nil {
		t.Fatalf("get equipment: %v", err)
	}
	if got.IsCheckedOut || got.VolunteerID != nil {
		t.Error("item still checked out after return")
	}

	// Returning again is harmless.
	req = httptest.NewRequest("POST", "/materials/"+item.ID.Hex()+"/return", nil)
	req = testutil.WithChiURLParam(req, "id", item.ID.Hex())
	req = testutil.WithUser(req, testutil.MedewerkerUser())
	rec = httptest.NewRecorder()
	handler.HandleReturn(rec, req)
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("second return: expected redirect, got %d", rec.Code)
	}
}

func TestHandleManageCreate(t *testing.T) {
	handler, _ := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	req := postForm("/materials/manage", url.Values{
		"type":   {"jacket"},
		"number": {"42"},
	})
	req = testutil.WithUser(req, testutil.AdminUser())
	rec := httptest.NewRecorder()
	handler.HandleManageCreate(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected redirect, got %d", rec.Code)
	}
	if _, err := handler.Equipment.GetByTypeNumber(ctx, "jacket", 42); err != nil {
		t.Fatalf("item not created: %v", err)
	}
}

func TestHandleManageCreate_Duplicate(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fixtures.CreateEquipment(ctx, "jacket", 7)

	req := postForm("/materials/manage", url.Values{
		"type":   {"jacket"},
		"number": {"7"},
	})
	req = testutil.WithUser(req, testutil.AdminUser())
	rec := httptest.NewRecorder()
	handler.HandleManageCreate(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected redirect, got %d", rec.Code)
	}

	items, err := handler.Equipment.List(ctx, false)
	if err != nil {
		t.Fatalf("list equipment: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("duplicate create should not add an item, got %d", len(items))
	}
}

func TestHandleManageDelete(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	item := fixtures.CreateEquipment(ctx, "vest", 9)

	req := httptest.NewRequest("POST", "/materials/manage/"+item.ID.Hex()+"/delete", nil)
	req = testutil.WithChiURLParam(req, "id", item.ID.Hex())
	req = testutil.WithUser(req, testutil.AdminUser())
	rec := httptest.NewRecorder()
	handler.HandleManageDelete(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected redirect, got %d", rec.Code)
	}
	if _, err := handler.Equipment.GetByTypeNumber(ctx, "vest", 9); err == nil {
		t.Error("item still present after delete")
	}
}
