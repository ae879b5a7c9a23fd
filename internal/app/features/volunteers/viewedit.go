// internal/app/features/volunteers/viewedit.go
package volunteers

import (
	"context"
	"errors"
	"net/http"

	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/mefen/volunteerhub/internal/app/store/audit"
	"github.com/mefen/volunteerhub/internal/app/system/auditlog"
	"github.com/mefen/volunteerhub/internal/app/system/formutil"
	"github.com/mefen/volunteerhub/internal/app/system/inputval"
	"github.com/mefen/volunteerhub/internal/app/system/navigation"
	"github.com/mefen/volunteerhub/internal/app/system/normalize"
	"github.com/mefen/volunteerhub/internal/app/system/timeouts"
	"github.com/mefen/volunteerhub/internal/app/system/viewdata"
	"github.com/mefen/volunteerhub/internal/domain/models"
)

const dateLayout = "02-01-2006"

// ServeView renders one volunteer with their checked-out materials and
// plannings.
func (h *Handler) ServeView(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		h.ErrLog.LogBadRequest(w, r, "bad volunteer id", err, "Ongeldige vrijwilliger.", "/volunteers")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	v, err := h.Volunteers.GetByID(ctx, id)
	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		h.ErrLog.LogNotFound(w, r, "volunteer not found", err, "Deze vrijwilliger bestaat niet (meer).", "/volunteers")
		return
	case err != nil:
		h.ErrLog.LogServerError(w, r, "load volunteer", err, "Er ging iets mis bij het laden.", "/volunteers")
		return
	}

	data := viewData{
		BaseVM:    viewdata.NewBaseVM(r, h.DB, v.FullName(), "/volunteers"),
		Volunteer: v,
	}

	if items, err := h.Equipment.ListByVolunteer(ctx, id); err == nil {
		for _, item := range items {
			label := item.Type
			if t, ok := models.EquipmentTypeByID(item.Type); ok {
				label = t.Label
			}
			data.Materials = append(data.Materials, materialLine{
				ID:       item.ID,
				TypeName: label,
				Number:   item.Number,
			})
		}
	}

	if plans, err := h.Plannings.List(ctx); err == nil {
		roomNames := map[primitive.ObjectID]string{}
		if rooms, err := h.Rooms.List(ctx); err == nil {
			for _, room := range rooms {
				roomNames[room.ID] = room.Name
			}
		}
		for _, p := range plans {
			if p.VolunteerID != id {
				continue
			}
			data.Plannings = append(data.Plannings, planningLine{
				ID:        p.ID,
				RoomName:  roomNames[p.RoomID],
				StartDate: p.StartDate.Format(dateLayout),
				EndDate:   p.EndDate.Format(dateLayout),
			})
		}
	}

	templates.Render(w, r, "volunteer_view", data)
}

// ServeEdit renders the edit form pre-filled with the stored record.
func (h *Handler) ServeEdit(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		h.ErrLog.LogBadRequest(w, r, "bad volunteer id", err, "Ongeldige vrijwilliger.", "/volunteers")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	v, err := h.Volunteers.GetByID(ctx, id)
	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		h.ErrLog.LogNotFound(w, r, "volunteer not found", err, "Deze vrijwilliger bestaat niet (meer).", "/volunteers")
		return
	case err != nil:
		h.ErrLog.LogServerError(w, r, "load volunteer", err, "Er ging iets mis bij het laden.", "/volunteers")
		return
	}

	data := formData{
		ID:          v.ID.Hex(),
		FirstName:   v.FirstName,
		LastName:    v.LastName,
		PhoneNumber: v.PhoneNumber,
		Email:       v.Email,
	}
	formutil.SetBase(&data.Base, r, "Vrijwilliger bewerken", "/volunteers")
	templates.Render(w, r, "volunteer_form", data)
}

// HandleEdit processes the edit form POST.
func (h *Handler) HandleEdit(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		h.ErrLog.LogBadRequest(w, r, "bad volunteer id", err, "Ongeldige vrijwilliger.", "/volunteers")
		return
	}
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
		h.renderFormWithError(w, r, "Vrijwilliger bewerken", id.Hex(), in, res.First())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	mut := models.Volunteer{
		FirstName:   in.FirstName,
		LastName:    in.LastName,
		PhoneNumber: in.PhoneNumber,
		Email:       in.Email,
	}
	err = h.Volunteers.Update(ctx, id, mut)
	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		h.ErrLog.LogNotFound(w, r, "volunteer not found", err, "Deze vrijwilliger bestaat niet (meer).", "/volunteers")
		return
	case err != nil:
		h.ErrLog.LogServerError(w, r, "update volunteer", err, "Opslaan is niet gelukt. Probeer het opnieuw.", "/volunteers")
		return
	}

	h.AuditLog.Action(ctx, r, audit.EventVolunteerUpdated,
		auditlog.SubjectFor("volunteer", id, in.FirstName+" "+in.LastName),
		"Vrijwilliger bijgewerkt")

	h.Flash.Success(w, "De wijzigingen zijn opgeslagen.")
	http.Redirect(w, r, navigation.SafeBackURL(r, navigation.VolunteersBackURL), http.StatusSeeOther)
}
