package rooms_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	uierrors "github.com/mefen/volunteerhub/internal/app/features/errors"
	"github.com/mefen/volunteerhub/internal/app/features/rooms"
	"github.com/mefen/volunteerhub/internal/app/system/flash"
	"github.com/mefen/volunteerhub/internal/testutil"
)

func newTestHandler(t *testing.T) (*rooms.Handler, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	logger := zap.NewNop()
	handler := rooms.NewHandler(db, uierrors.NewErrorLogger(logger), nil, flash.NewCodec("test-session-key-for-testing-only"), logger)
	return handler, testutil.NewFixtures(t, db)
}

func postForm(target string, form url.Values) *http.Request {
	req := httptest.NewRequest("POST", target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func TestHandleCreate(t *testing.T) {
	handler, _ := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	req := postForm("/rooms/new", url.Values{
		"name":     {"  Gebedsruimte 1  "},
		"capacity": {"40"},
	})
	req = testutil.WithUser(req, testutil.AdminUser())
	rec := httptest.NewRecorder()
	handler.HandleCreate(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected redirect, got %d", rec.Code)
	}

	list, err := handler.Rooms.List(ctx)
	if err != nil {
		t.Fatalf("list rooms: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("expected 1 room, got %d", len(list))
	}
	if list[0].Name != "Gebedsruimte 1" {
		t.Errorf("name not trimmed: %q", list[0].Name)
	}
	if list[0].Capacity != 40 {
		t.Errorf("capacity = %d, want 40", list[0].Capacity)
	}
}

func TestHandleCreate_DuplicateName(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fixtures.CreateRoom(ctx, "Bibliotheek", 20)

	req := postForm("/rooms/new", url.Values{
		"name": {"Bibliotheek"},
	})
	req = testutil.WithUser(req, testutil.AdminUser())
	rec := httptest.NewRecorder()

	// Re-rendering the form panics without registered layouts.
	func() {
		defer func() { recover() }()
		handler.HandleCreate(rec, req)
	}()

	list, err := handler.Rooms.List(ctx)
	if err != nil {
		t.Fatalf("list rooms: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("duplicate create should not add a room, got %d", len(list))
	}
}

func TestHandleEdit(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	room := fixtures.CreateRoom(ctx, "Zaal A", 10)

	req := postForm("/rooms/"+room.ID.Hex()+"/edit", url.Values{
		"name":     {"Zaal B"},
		"capacity": {"25"},
	})
	req = testutil.WithChiURLParam(req, "id", room.ID.Hex())
	req = testutil.WithUser(req, testutil.AdminUser())
	rec := httptest.NewRecorder()
	handler.HandleEdit(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected redirect, got %d", rec.Code)
	}

	got, err := handler.Rooms.GetByID(ctx, room.ID)
	if err != nil {
		t.Fatalf("get room: %v", err)
	}
	if got.Name != "Zaal B" || got.Capacity != 25 {
		t.Errorf("room not updated: %q cap %d", got.Name, got.Capacity)
	}
}

func TestHandleDelete(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	room := fixtures.CreateRoom(ctx, "Zaal A", 10)

	req := httptest.NewRequest("POST", "/rooms/"+room.ID.Hex()+"/delete", nil)
	req = testutil.WithChiURLParam(req, "id", room.ID.Hex())
	req = testutil.WithUser(req, testutil.AdminUser())
	rec := httptest.NewRecorder()
	handler.HandleDelete(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected redirect, got %d", rec.Code)
	}

	count, err := handler.Rooms.Count(ctx)
	if err != nil {
		t.Fatalf("count rooms: %v", err)
	}
	if count != 0 {
		t.Errorf("expected 0 rooms after delete, got %d", count)
	}
}

func TestHandleDelete_RefusedWhilePlanned(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	room := fixtures.CreateRoom(ctx, "Zaal A", 10)
	vol := fixtures.CreateVolunteer(ctx, "Ali", "Yilmaz", "0612345678")
	start := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	fixtures.CreatePlanning(ctx, vol.ID, room.ID, start, start.AddDate(0, 0, 7))

	req := httptest.NewRequest("POST", "/rooms/"+room.ID.Hex()+"/delete", nil)
	req = testutil.WithChiURLParam(req, "id", room.ID.Hex())
	req = testutil.WithUser(req, testutil.AdminUser())
	rec := httptest.NewRecorder()
	handler.HandleDelete(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected redirect, got %d", rec.Code)
	}

	count, err := handler.Rooms.Count(ctx)
	if err != nil {
		t.Fatalf("count rooms: %v", err)
	}
	if count != 1 {
		t.Errorf("room with plannings must survive delete, count = %d", count)
	}
}
