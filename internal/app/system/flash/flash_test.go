package flash

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestSetThenPop(t *testing.T) {
	codec := NewCodec("0123456789abcdef0123456789abcdef")

	rec := httptest.NewRecorder()
	codec.Success(rec, "Vrijwilliger toegevoegd")
	cookies := rec.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("expected 1 cookie, got %d", len(cookies))
	}

	req := httptest.NewRequest(http.MethodGet, "/volunteers", nil)
	req.AddCookie(cookies[0])
	rec2 := httptest.NewRecorder()

	msg, ok := codec.Pop(rec2, req)
	if !ok {
		t.Fatal("Pop returned no message")
	}
	if msg.Kind != KindSuccess || msg.Text != "Vrijwilliger toegevoegd" {
		t.Errorf("unexpected message: %+v", msg)
	}

	// Pop must clear the cookie.
	cleared := false
	for _, c := range rec2.Result().Cookies() {
		if c.Name == "vh_flash" && c.MaxAge < 0 {
			cleared = true
		}
	}
	if !cleared {
		t.Error("Pop did not clear the flash cookie")
	}
}

func TestPopWithoutCookie(t *testing.T) {
	codec := NewCodec("0123456789abcdef0123456789abcdef")
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if _, ok := codec.Pop(httptest.NewRecorder(), req); ok {
		t.Error("Pop returned a message for a request without a cookie")
	}
}

func TestPopRejectsTamperedCookie(t *testing.T) {
	codec := NewCodec("0123456789abcdef0123456789abcdef")
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "vh_flash", Value: "forged"})
	if _, ok := codec.Pop(httptest.NewRecorder(), req); ok {
		t.Error("Pop accepted a forged cookie")
	}
}

func TestCodecsWithDifferentKeysDoNotInterop(t *testing.T) {
	a := NewCodec("0123456789abcdef0123456789abcdef")
	b := NewCodec("fedcba9876543210fedcba9876543210")

	rec := httptest.NewRecorder()
	a.Error(rec, "mislukt")

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range rec.Result().Cookies() {
		req.AddCookie(c)
	}
	if _, ok := b.Pop(httptest.NewRecorder(), req); ok {
		t.Error("codec with different key decoded the cookie")
	}
}
