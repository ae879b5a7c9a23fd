// internal/app/features/settings/settings.go
package settings

import (
	"context"
	"net/http"
	"strings"

	"github.com/dalemusser/waffle/pantry/templates"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/mefen/volunteerhub/internal/app/store/audit"
	"github.com/mefen/volunteerhub/internal/app/system/auth"
	"github.com/mefen/volunteerhub/internal/app/system/flash"
	"github.com/mefen/volunteerhub/internal/app/system/htmlsanitize"
	"github.com/mefen/volunteerhub/internal/app/system/timeouts"
	"github.com/mefen/volunteerhub/internal/app/system/viewdata"
	"github.com/mefen/volunteerhub/internal/domain/models"
)

const maxSiteNameLength = 100

type settingsData struct {
	viewdata.BaseVM
	Notice     string
	Error      string
	EditName   string
	FooterHTML string
}

// ServeSettings renders the admin settings form for GET /settings.
func (h *Handler) ServeSettings(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	current, err := h.Settings.Get(ctx)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "load settings", err, "De instellingen konden niet worden geladen.", "/")
		return
	}

	data := settingsData{
		BaseVM:     viewdata.NewBaseVM(r, h.DB, "Instellingen", "/"),
		EditName:   current.SiteName,
		FooterHTML: current.FooterHTML,
	}
	if msg, ok := h.Flash.Pop(w, r); ok {
		if msg.Kind == flash.KindSuccess {
			data.Notice = msg.Text
		} else {
			data.Error = msg.Text
		}
	}

	templates.Render(w, r, "settings", data)
}

// HandleSettings processes the settings form POST. The footer HTML is
// sanitized before storage.
func (h *Handler) HandleSettings(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Ongeldige invoer.", "/settings")
		return
	}

	siteName := strings.TrimSpace(r.FormValue("site_name"))
	if siteName == "" {
		h.Flash.Error(w, "De naam van de site is verplicht.")
		http.Redirect(w, r, "/settings", http.StatusSeeOther)
		return
	}
	if len(siteName) > maxSiteNameLength {
		h.Flash.Error(w, "De naam van de site is te lang.")
		http.Redirect(w, r, "/settings", http.StatusSeeOther)
		return
	}

	settings := models.SiteSettings{
		SiteName:   siteName,
		FooterHTML: htmlsanitize.Sanitize(r.FormValue("footer_html")),
	}
	if u, ok := auth.CurrentUser(r); ok {
		if uid, err := primitive.ObjectIDFromHex(u.ID); err == nil {
			settings.UpdatedByID = &uid
		}
		settings.UpdatedByName = u.Name
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if err := h.Settings.Save(ctx, settings); err != nil {
		h.ErrLog.LogServerError(w, r, "save settings", err, "Opslaan is niet gelukt. Probeer het opnieuw.", "/settings")
		return
	}

	h.AuditLog.Action(ctx, r, audit.EventSettingsUpdated, nil, "Instellingen bijgewerkt")

	h.Flash.Success(w, "De instellingen zijn opgeslagen.")
	http.Redirect(w, r, "/settings", http.StatusSeeOther)
}
