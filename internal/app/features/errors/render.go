// internal/app/features/errors/render.go
package errors

import (
	"net/http"

	"github.com/dalemusser/waffle/pantry/httpnav"
	"github.com/dalemusser/waffle/pantry/templates"

	"github.com/mefen/volunteerhub/internal/app/system/auth"
)

func basePageData(r *http.Request, title, msg, backURL string) pageData {
	u, signed := auth.CurrentUser(r)
	role, name := "", ""
	if signed && u != nil {
		role, name = u.Role, u.Name
	}

	return pageData{
		Title:      title,
		IsLoggedIn: signed,
		Role:       role,
		UserName:   name,
		Message:    msg,
		BackURL:    backURL,
	}
}

// RenderUnauthorized shows a friendly "sign in required" page.
// If backURL is empty, it will default to /login.
func RenderUnauthorized(w http.ResponseWriter, r *http.Request, backURL string) {
	if backURL == "" {
		backURL = "/login"
	}
	data := basePageData(r, "Aanmelden vereist", "Meld je aan om verder te gaan.", backURL)
	templates.Render(w, r, "error_unauthorized", data)
}

// RenderForbidden shows a friendly access error page with a message.
// If backURL is empty, it resolves a safe back URL with a default fallback.
func RenderForbidden(w http.ResponseWriter, r *http.Request, msg, backURL string) {
	if backURL == "" {
		backURL = httpnav.ResolveBackURL(r, "/")
	}
	w.WriteHeader(http.StatusForbidden)
	templates.Render(w, r, "error_forbidden", basePageData(r, "Geen toegang", msg, backURL))
}

// RenderNotFound shows a friendly "not found" page with a message.
func RenderNotFound(w http.ResponseWriter, r *http.Request, msg, backURL string) {
	if backURL == "" {
		backURL = "/"
	}
	w.WriteHeader(http.StatusNotFound)
	templates.Render(w, r, "error_notfound", basePageData(r, "Niet gevonden", msg, backURL))
}

// RenderBadRequest shows a friendly error page for invalid input.
func RenderBadRequest(w http.ResponseWriter, r *http.Request, msg, backURL string) {
	if backURL == "" {
		backURL = httpnav.ResolveBackURL(r, "/")
	}
	w.WriteHeader(http.StatusBadRequest)
	templates.Render(w, r, "error_generic", basePageData(r, "Ongeldige aanvraag", msg, backURL))
}

// RenderServerError shows a friendly error page for server-side failures.
func RenderServerError(w http.ResponseWriter, r *http.Request, msg, backURL string) {
	if backURL == "" {
		backURL = httpnav.ResolveBackURL(r, "/")
	}
	w.WriteHeader(http.StatusInternalServerError)
	templates.Render(w, r, "error_generic", basePageData(r, "Er ging iets mis", msg, backURL))
}
