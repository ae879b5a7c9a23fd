package importexport_test

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"

	uierrors "github.com/mefen/volunteerhub/internal/app/features/errors"
	"github.com/mefen/volunteerhub/internal/app/features/importexport"
	"github.com/mefen/volunteerhub/internal/app/system/flash"
	"github.com/mefen/volunteerhub/internal/testutil"
)

func newTestHandler(t *testing.T) (*importexport.Handler, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	logger := zap.NewNop()
	handler := importexport.NewHandler(db, uierrors.NewErrorLogger(logger), nil, flash.NewCodec("test-session-key-for-testing-only"), logger)
	return handler, testutil.NewFixtures(t, db)
}

func uploadRequest(t *testing.T, csvBody string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("roster", "vrijwilligers.csv")
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := fw.Write([]byte(csvBody)); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	mw.Close()

	req := httptest.NewRequest("POST", "/import-export/import", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return testutil.WithUser(req, testutil.MedewerkerUser())
}

func TestHandleImport(t *testing.T) {
	handler, _ := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	body := "Voornaam,Achternaam,Telefoonnummer,E-mailadres\r\n" +
		"Ali,Yilmaz,0612345678,Ali@Example.com\r\n" +
		"Fatima,El Amrani,0687654321,\r\n" +
		",Zonder Voornaam,0600000000,\r\n"

	rec := httptest.NewRecorder()
	handler.HandleImport(rec, uploadRequest(t, body))

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected redirect, got %d", rec.Code)
	}

	vols, err := handler.Volunteers.List(ctx, "")
	if err != nil {
		t.Fatalf("list volunteers: %v", err)
	}
	if len(vols) != 2 {
		t.Fatalf("expected 2 imported volunteers, got %d", len(vols))
	}
	for _, v := range vols {
		if v.FirstName == "Ali" && v.Email != "ali@example.com" {
			t.Errorf("email not normalized: %q", v.Email)
		}
	}
}

func TestHandleImport_ByteOrderMark(t *testing.T) {
	handler, _ := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	// Excel exports prefix the first header cell with a UTF-8 BOM.
	body := "\uFEFFVoornaam,Achternaam,Telefoonnummer\r\n" +
		"Ali,Yilmaz,0612345678\r\n"

	rec := httptest.NewRecorder()
	handler.HandleImport(rec, uploadRequest(t, body))

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected redirect, got %d", rec.Code)
	}

	vols, err := handler.Volunteers.List(ctx, "")
	if err != nil {
		t.Fatalf("list volunteers: %v", err)
	}
	if len(vols) != 1 || vols[0].FirstName != "Ali" {
		t.Fatalf("expected Ali imported despite BOM, got %d volunteers", len(vols))
	}
}

func TestHandleImport_SkipsExisting(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fixtures.CreateVolunteer(ctx, "Ali", "Yilmaz", "0612345678")

	body := "Ali,Yilmaz,0612345678\r\n" +
		"Yusuf,Demir,0611111111\r\n"

	rec := httptest.NewRecorder()
	handler.HandleImport(rec, uploadRequest(t, body))

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected redirect, got %d", rec.Code)
	}

	vols, err := handler.Volunteers.List(ctx, "")
	if err != nil {
		t.Fatalf("list volunteers: %v", err)
	}
	if len(vols) != 2 {
		t.Fatalf("expected 2 volunteers after import, got %d", len(vols))
	}
}

func TestServeCSV(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fixtures.CreateVolunteer(ctx, "Ali", "Yilmaz", "0612345678")

	req := httptest.NewRequest("GET", "/import-export/volunteers.csv", nil)
	req = testutil.WithUser(req, testutil.MedewerkerUser())
	rec := httptest.NewRecorder()
	handler.ServeCSV(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/csv") {
		t.Errorf("content type = %q", ct)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Voornaam") {
		t.Error("header row missing")
	}
	if !strings.Contains(body, "Ali,Yilmaz,0612345678") {
		t.Errorf("volunteer row missing in %q", body)
	}
}

func TestServeCSV_Selection(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	ali := fixtures.CreateVolunteer(ctx, "Ali", "Yilmaz", "0612345678")
	fixtures.CreateVolunteer(ctx, "Fatima", "El Amrani", "0687654321")

	req := httptest.NewRequest("GET", "/import-export/volunteers.csv?ids="+ali.ID.Hex(), nil)
	req = testutil.WithUser(req, testutil.MedewerkerUser())
	rec := httptest.NewRecorder()
	handler.ServeCSV(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Ali,Yilmaz") {
		t.Error("selected volunteer missing")
	}
	if strings.Contains(body, "Fatima") {
		t.Error("unselected volunteer should not be exported")
	}
}

func TestServePDF(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fixtures.CreateVolunteer(ctx, "Ali", "Yilmaz", "0612345678")

	req := httptest.NewRequest("GET", "/import-export/volunteers.pdf", nil)
	req = testutil.WithUser(req, testutil.MedewerkerUser())
	rec := httptest.NewRecorder()
	handler.ServePDF(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Errorf("content type = %q", ct)
	}
	if !bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF")) {
		t.Error("response is not a PDF")
	}
}
