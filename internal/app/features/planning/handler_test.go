package planning_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	uierrors "github.com/mefen/volunteerhub/internal/app/features/errors"
	"github.com/mefen/volunteerhub/internal/app/features/planning"
	"github.com/mefen/volunteerhub/internal/app/system/flash"
	"github.com/mefen/volunteerhub/internal/testutil"
)

func newTestHandler(t *testing.T) (*planning.Handler, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	logger := zap.NewNop()
	handler := planning.NewHandler(db, uierrors.NewErrorLogger(logger), nil, flash.NewCodec("test-session-key-for-testing-only"), logger)
	return handler, testutil.NewFixtures(t, db)
}

func postForm(target string, form url.Values) *http.Request {
	req := httptest.NewRequest("POST", target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func TestHandleCreate(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	vol := fixtures.CreateVolunteer(ctx, "Ali", "Yilmaz", "0612345678")
	room := fixtures.CreateRoom(ctx, "Zaal A", 10)

	req := postForm("/planning/new", url.Values{
		"volunteer_id": {vol.ID.Hex()},
		"room_id":      {room.ID.Hex()},
		"start_date":   {"2026-09-07"},
		"end_date":     {"2026-09-13"},
	})
	req = testutil.WithUser(req, testutil.MedewerkerUser())
	rec := httptest.NewRecorder()
	handler.HandleCreate(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected redirect, got %d", rec.Code)
	}

	list, err := handler.Plannings.List(ctx)
	if err != nil {
		t.Fatalf("list plannings: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("expected 1 planning, got %d", len(list))
	}
	if !list[0].StartDate.Equal(time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("start date = %v", list[0].StartDate)
	}
	if list[0].VolunteerID != vol.ID || list[0].RoomID != room.ID {
		t.Error("planning references wrong volunteer or room")
	}
}

func TestHandleCreate_EndBeforeStart(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	vol := fixtures.CreateVolunteer(ctx, "Ali", "Yilmaz", "0612345678")
	room := fixtures.CreateRoom(ctx, "Zaal A", 10)

	req := postForm("/planning/new", url.Values{
		"volunteer_id": {vol.ID.Hex()},
		"room_id":      {room.ID.Hex()},
		"start_date":   {"2026-09-13"},
		"end_date":     {"2026-09-07"},
	})
	req = testutil.WithUser(req, testutil.MedewerkerUser())
	rec := httptest.NewRecorder()

	// Re-rendering the form panics without registered layouts.
	func() {
		defer func() { recover() }()
		handler.HandleCreate(rec, req)
	}()

	count, err := handler.Plannings.Count(ctx)
	if err != nil {
		t.Fatalf("count plannings: %v", err)
	}
	if count != 0 {
		t.Errorf("invalid range must not be stored, count = %d", count)
	}
}

func TestHandleCreate_UnknownVolunteer(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	room := fixtures.CreateRoom(ctx, "Zaal A", 10)

	req := postForm("/planning/new", url.Values{
		"volunteer_id": {"64f000000000000000000000"},
		"room_id":      {room.ID.Hex()},
		"start_date":   {"2026-09-07"},
		"end_date":     {"2026-09-13"},
	})
	req = testutil.WithUser(req, testutil.MedewerkerUser())
	rec := httptest.NewRecorder()

	func() {
		defer func() { recover() }()
		handler.HandleCreate(rec, req)
	}()

	count, err := handler.Plannings.Count(ctx)
	if err != nil {
		t.Fatalf("count plannings: %v", err)
	}
	if count != 0 {
		t.Errorf("planning for unknown volunteer must not be stored, count = %d", count)
	}
}

func TestHandleEdit(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	vol := fixtures.CreateVolunteer(ctx, "Ali", "Yilmaz", "0612345678")
	roomA := fixtures.CreateRoom(ctx, "Zaal A", 10)
	roomB := fixtures.CreateRoom(ctx, "Zaal B", 20)
	start := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
	p := fixtures.CreatePlanning(ctx, vol.ID, roomA.ID, start, start.AddDate(0, 0, 6))

	req := postForm("/planning/"+p.ID.Hex()+"/edit", url.Values{
		"volunteer_id": {vol.ID.Hex()},
		"room_id":      {roomB.ID.Hex()},
		"start_date":   {"2026-09-08"},
		"end_date":     {"2026-09-14"},
	})
	req = testutil.WithChiURLParam(req, "id", p.ID.Hex())
	req = testutil.WithUser(req, testutil.MedewerkerUser())
	rec := httptest.NewRecorder()
	handler.HandleEdit(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected redirect, got %d", rec.Code)
	}

	got, err := handler.Plannings.GetByID(ctx, p.ID)
	if err != nil {
		t.Fatalf("get planning: %v", err)
	}
	if got.RoomID != roomB.ID {
		t.Error("room not updated")
	}
	if !got.StartDate.Equal(time.Date(2026, 9, 8, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("start date = %v", got.StartDate)
	}
}

func TestHandleDelete(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	vol := fixtures.CreateVolunteer(ctx, "Ali", "Yilmaz", "0612345678")
	room := fixtures.CreateRoom(ctx, "Zaal A", 10)
	start := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
	p := fixtures.CreatePlanning(ctx, vol.ID, room.ID, start, start.AddDate(0, 0, 6))

	req := httptest.NewRequest("POST", "/planning/"+p.ID.Hex()+"/delete", nil)
	req = testutil.WithChiURLParam(req, "id", p.ID.Hex())
	req = testutil.WithUser(req, testutil.MedewerkerUser())
	rec := httptest.NewRecorder()
	handler.HandleDelete(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected redirect, got %d", rec.Code)
	}

	count, err := handler.Plannings.Count(ctx)
	if err != nil {
		t.Fatalf("count plannings: %v", err)
	}
	if count != 0 {
		t.Errorf("expected 0 plannings after delete, got %d", count)
	}
}
