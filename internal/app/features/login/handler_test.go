package login_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	uierrors "github.com/mefen/volunteerhub/internal/app/features/errors"
	"github.com/mefen/volunteerhub/internal/app/features/login"
	auditstore "github.com/mefen/volunteerhub/internal/app/store/audit"
	"github.com/mefen/volunteerhub/internal/app/store/passwordreset"
	userstore "github.com/mefen/volunteerhub/internal/app/store/users"
	"github.com/mefen/volunteerhub/internal/app/system/auditlog"
	"github.com/mefen/volunteerhub/internal/app/system/auth"
	"github.com/mefen/volunteerhub/internal/app/system/flash"
	"github.com/mefen/volunteerhub/internal/app/system/mailer"
	"github.com/mefen/volunteerhub/internal/testutil"
)

// captureMailer records outgoing mail instead of sending it.
type captureMailer struct {
	sent []mailer.Email
}

func (m *captureMailer) Send(_ context.Context, e mailer.Email) error {
	m.sent = append(m.sent, e)
	return nil
}

func newTestHandler(t *testing.T) (*login.Handler, *testutil.Fixtures, *captureMailer) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	logger := zap.NewNop()
	errLog := uierrors.NewErrorLogger(logger)

	sessionMgr, err := auth.NewSessionManager("test-session-key-for-testing-only", "test-session", "", time.Hour, false, logger)
	if err != nil {
		t.Fatalf("NewSessionManager failed: %v", err)
	}

	mail := &captureMailer{}
	resets := passwordreset.New(db, time.Hour)
	fl := flash.NewCodec("test-session-key-for-testing-only")

	handler := login.NewHandler(db, sessionMgr, errLog, mail, nil, resets, fl, "http://localhost:8080", logger)
	fixtures := testutil.NewFixtures(t, db)
	return handler, fixtures, mail
}

func postForm(target string, form url.Values) *http.Request {
	req := httptest.NewRequest("POST", target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func TestHandleLoginPost_Success(t *testing.T) {
	handler, fixtures, _ := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fixtures.CreateAdmin(ctx, "Test Admin", "admin@example.com")

	req := postForm("/login", url.Values{
		"email":    {"admin@example.com"},
		"password": {"wachtwoord123"},
	})
	rec := httptest.NewRecorder()
	handler.HandleLoginPost(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Errorf("expected status %d, got %d", http.StatusSeeOther, rec.Code)
	}
	if got := rec.Header().Get("Location"); got != "/" {
		t.Errorf("Location: got %q, want %q", got, "/")
	}

	found := false
	for _, c := range rec.Result().Cookies() {
		if c.Name == "test-session" {
			found = true
		}
	}
	if !found {
		t.Error("expected session cookie to be set")
	}
}

func TestHandleLoginPost_EmailIsCaseInsensitive(t *testing.T) {
	handler, fixtures, _ := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fixtures.CreateMedewerker(ctx, "Yusuf Demir", "yusuf@example.com")

	req := postForm("/login", url.Values{
		"email":    {"  Yusuf@Example.COM  "},
		"password": {"wachtwoord123"},
	})
	rec := httptest.NewRecorder()
	handler.HandleLoginPost(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Errorf("expected redirect, got %d", rec.Code)
	}
}

func TestHandleLoginPost_WithReturnURL(t *testing.T) {
	handler, fixtures, _ := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fixtures.CreateAdmin(ctx, "Test Admin", "admin@example.com")

	req := postForm("/login", url.Values{
		"email":    {"admin@example.com"},
		"password": {"wachtwoord123"},
		"return":   {"/volunteers"},
	})
	rec := httptest.NewRecorder()
	handler.HandleLoginPost(rec, req)

	if got := rec.Header().Get("Location"); got != "/volunteers" {
		t.Errorf("Location: got %q, want %q", got, "/volunteers")
	}
}

func TestHandleLoginPost_WrongPassword(t *testing.T) {
	handler, fixtures, _ := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fixtures.CreateAdmin(ctx, "Test Admin", "admin@example.com")

	req := postForm("/login", url.Values{
		"email":    {"admin@example.com"},
		"password": {"verkeerd"},
	})
	rec := httptest.NewRecorder()

	// Handler re-renders the form, which needs the registered templates;
	// without the shared layout loaded the render panics, which is fine
	// for this test since we only check that no session was created.
	func() {
		defer func() { recover() }()
		handler.HandleLoginPost(rec, req)
	}()

	for _, c := range rec.Result().Cookies() {
		if c.Name == "test-session" {
			t.Error("session cookie must not be set on wrong password")
		}
	}
}

func TestHandleLoginPost_DisabledUser(t *testing.T) {
	handler, fixtures, _ := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	// Real audit logger so the recorded failure reason can be checked:
	// the response stays on the generic wrong-credentials path, and only
	// the audit trail names the disabled account.
	events := auditstore.New(fixtures.DB())
	handler.AuditLog = auditlog.New(events, zap.NewNop(), auditlog.Config{Auth: "db", Admin: "db"})

	fixtures.CreateDisabledUser(ctx, "Oud Lid", "oud@example.com")

	req := postForm("/login", url.Values{
		"email":    {"oud@example.com"},
		"password": {"wachtwoord123"},
	})
	rec := httptest.NewRecorder()

	func() {
		defer func() { recover() }()
		handler.HandleLoginPost(rec, req)
	}()

	for _, c := range rec.Result().Cookies() {
		if c.Name == "test-session" {
			t.Error("session cookie must not be set for a disabled account")
		}
	}

	logged, err := events.Query(ctx, auditstore.QueryFilter{EventType: auditstore.EventLoginFailedUserDisabled})
	if err != nil {
		t.Fatalf("query audit events: %v", err)
	}
	if len(logged) != 1 {
		t.Fatalf("expected 1 disabled-login audit event, got %d", len(logged))
	}
	if logged[0].Success {
		t.Error("disabled login must be recorded as a failure")
	}
}

func TestHandleResetRequest_SendsMailForKnownAccount(t *testing.T) {
	handler, fixtures, mail := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fixtures.CreateMedewerker(ctx, "Fatima Bouali", "fatima@example.com")

	req := postForm("/login/reset", url.Values{"email": {"fatima@example.com"}})
	rec := httptest.NewRecorder()

	func() {
		defer func() { recover() }()
		handler.HandleResetRequest(rec, req)
	}()

	if len(mail.sent) != 1 {
		t.Fatalf("expected 1 mail, got %d", len(mail.sent))
	}
	if mail.sent[0].To != "fatima@example.com" {
		t.Errorf("To = %q", mail.sent[0].To)
	}
	if !strings.Contains(mail.sent[0].TextBody, "/login/reset/confirm?token=") {
		t.Error("mail body does not contain the reset link")
	}
}

func TestHandleResetRequest_UnknownEmailSendsNothing(t *testing.T) {
	handler, _, mail := newTestHandler(t)

	req := postForm("/login/reset", url.Values{"email": {"nobody@example.com"}})
	rec := httptest.NewRecorder()

	func() {
		defer func() { recover() }()
		handler.HandleResetRequest(rec, req)
	}()

	if len(mail.sent) != 0 {
		t.Errorf("expected no mail for unknown address, got %d", len(mail.sent))
	}
}

func TestHandleResetConfirm_UpdatesPassword(t *testing.T) {
	handler, fixtures, _ := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	u := fixtures.CreateMedewerker(ctx, "Fatima Bouali", "fatima@example.com")
	token, err := handler.Resets.Create(ctx, u.ID, u.Email)
	if err != nil {
		t.Fatalf("create reset token: %v", err)
	}

	req := postForm("/login/reset/confirm", url.Values{
		"token":            {token},
		"password":         {"nieuwwachtwoord1"},
		"password_confirm": {"nieuwwachtwoord1"},
	})
	rec := httptest.NewRecorder()
	handler.HandleResetConfirm(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected redirect, got %d", rec.Code)
	}
	if got := rec.Header().Get("Location"); got != "/login" {
		t.Errorf("Location: got %q, want %q", got, "/login")
	}

	// The stored hash now matches the new password.
	fresh, err := userstore.New(fixtures.DB()).GetByID(ctx, u.ID)
	if err != nil {
		t.Fatalf("reload user: %v", err)
	}
	if fresh.PasswordHash == u.PasswordHash {
		t.Error("password hash was not updated")
	}

	// The token is single use.
	rec2 := httptest.NewRecorder()
	func() {
		defer func() { recover() }()
		handler.HandleResetConfirm(rec2, postForm("/login/reset/confirm", url.Values{
			"token":            {token},
			"password":         {"nogeenwachtwoord"},
			"password_confirm": {"nogeenwachtwoord"},
		}))
	}()
	if rec2.Code == http.StatusSeeOther {
		t.Error("expected reuse of the token to fail")
	}
}

func TestHandleResetConfirm_PasswordTooShort(t *testing.T) {
	handler, fixtures, _ := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	u := fixtures.CreateMedewerker(ctx, "Fatima Bouali", "fatima@example.com")
	token, err := handler.Resets.Create(ctx, u.ID, u.Email)
	if err != nil {
		t.Fatalf("create reset token: %v", err)
	}

	rec := httptest.NewRecorder()
	func() {
		defer func() { recover() }()
		handler.HandleResetConfirm(rec, postForm("/login/reset/confirm", url.Values{
			"token":            {token},
			"password":         {"kort"},
			"password_confirm": {"kort"},
		}))
	}()

	if rec.Code == http.StatusSeeOther {
		t.Error("expected short password to be rejected")
	}
	// Token must survive a rejected form.
	if _, err := handler.Resets.Lookup(ctx, token); err != nil {
		t.Errorf("token should still be valid: %v", err)
	}
}
