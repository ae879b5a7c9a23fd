// internal/app/features/volunteers/create.go
package volunteers

import (
	"context"
	"net/http"

	"github.com/dalemusser/waffle/pantry/templates"

	"github.com/mefen/volunteerhub/internal/app/store/audit"
	"github.com/mefen/volunteerhub/internal/app/system/auditlog"
	"github.com/mefen/volunteerhub/internal/app/system/formutil"
	"github.com/mefen/volunteerhub/internal/app/system/inputval"
	"github.com/mefen/volunteerhub/internal/app/system/navigation"
	"github.com/mefen/volunteerhub/internal/app/system/normalize"
	"github.com/mefen/volunteerhub/internal/app/system/timeouts"
	"github.com/mefen/volunteerhub/internal/domain/models"
)

// ServeNew renders the add-volunteer form.
func (h *Handler) ServeNew(w http.ResponseWriter, r *http.Request) {
	var data formData
	formutil.SetBase(&data.Base, r, "Vrijwilliger toevoegen", "/volunteers")
	templates.Render(w, r, "volunteer_form", data)
}

// HandleCreate processes the add-volunteer form POST.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Ongeldige invoer.", "/volunteers")
		return
	}

	in := volunteerInput{
		FirstName:   normalize.Name(r.FormValue("first_name")),
		LastName:    normalize.Name(r.FormValue("last_name")),
		PhoneNumber: normalize.Phone(r.FormValue("phone_number")),
		Email:       normalize.Email(r.FormValue("email")),
	}

	if res := inputval.Validate(in); res.HasErrors() {
		h.renderFormWithError(w, r, "Vrijwilliger toevoegen", "", in, res.First())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	created, err := h.Volunteers.Create(ctx, models.Volunteer{
		FirstName:   in.FirstName,
		LastName:    in.LastName,
		PhoneNumber: in.PhoneNumber,
		Email:       in.Email,
	})
	if err != nil {
		h.ErrLog.LogServerError(w, r, "create volunteer", err, "Opslaan is niet gelukt. Probeer het opnieuw.", "/volunteers")
		return
	}

	h.AuditLog.Action(ctx, r, audit.EventVolunteerCreated,
		auditlog.SubjectFor("volunteer", created.ID, created.FullName()),
		"Vrijwilliger toegevoegd")

	h.Flash.Success(w, "Vrijwilliger "+created.FullName()+" is toegevoegd.")
	http.Redirect(w, r, navigation.SafeBackURL(r, navigation.VolunteersBackURL), http.StatusSeeOther)
}

func (h *Handler) renderFormWithError(w http.ResponseWriter, r *http.Request, title, id string, in volunteerInput, msg string) {
	data := formData{
		ID:          id,
		FirstName:   in.FirstName,
		LastName:    in.LastName,
		PhoneNumber: in.PhoneNumber,
		Email:       in.Email,
	}
	formutil.SetBase(&data.Base, r, title, "/volunteers")
	data.SetError(msg)
	templates.Render(w, r, "volunteer_form", data)
}
