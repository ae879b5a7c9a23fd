// internal/app/features/planning/form.go
package planning

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/mefen/volunteerhub/internal/app/store/audit"
	"github.com/mefen/volunteerhub/internal/app/system/auditlog"
	"github.com/mefen/volunteerhub/internal/app/system/formutil"
	"github.com/mefen/volunteerhub/internal/app/system/timeouts"
	"github.com/mefen/volunteerhub/internal/domain/models"
)

// planningForm carries the parsed and validated form fields.
type planningForm struct {
	VolunteerID primitive.ObjectID
	RoomID      primitive.ObjectID
	StartDate   time.Time
	EndDate     time.Time
}

// ServeNew renders the add-planning form.
func (h *Handler) ServeNew(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	data := formData{}
	formutil.SetBase(&data.Base, r, "Planning toevoegen", "/planning")
	if err := h.loadSelectOptions(ctx, &data); err != nil {
		h.ErrLog.LogServerError(w, r, "load planning form options", err, "Het formulier kon niet worden geladen.", "/planning")
		return
	}
	templates.Render(w, r, "planning_form", data)
}

// HandleCreate processes the add-planning form POST.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	form, ok := h.parseForm(ctx, w, r, "Planning toevoegen", "")
	if !ok {
		return
	}

	created, err := h.Plannings.Create(ctx, models.Planning{
		VolunteerID: form.VolunteerID,
		RoomID:      form.RoomID,
		StartDate:   form.StartDate,
		EndDate:     form.EndDate,
	})
	if err != nil {
		h.ErrLog.LogServerError(w, r, "create planning", err, "Opslaan is niet gelukt. Probeer het opnieuw.", "/planning")
		return
	}

	h.auditPlanning(ctx, r, audit.EventPlanningCreated, created.ID, form, "Planning toegevoegd")
	h.Flash.Success(w, "De planning is toegevoegd.")
	http.Redirect(w, r, "/planning", http.StatusSeeOther)
}

// ServeEdit renders the edit-planning form.
func (h *Handler) ServeEdit(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		h.ErrLog.LogBadRequest(w, r, "bad planning id", err, "Ongeldige planning.", "/planning")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	p, err := h.Plannings.GetByID(ctx, id)
	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		h.ErrLog.LogNotFound(w, r, "planning not found", err, "Deze planning bestaat niet (meer).", "/planning")
		return
	case err != nil:
		h.ErrLog.LogServerError(w, r, "load planning", err, "Er ging iets mis. Probeer het opnieuw.", "/planning")
		return
	}

	data := formData{
		ID:          p.ID.Hex(),
		VolunteerID: p.VolunteerID.Hex(),
		RoomID:      p.RoomID.Hex(),
		StartDate:   p.StartDate.Format(inputLayout),
		EndDate:     p.EndDate.Format(inputLayout),
	}
	formutil.SetBase(&data.Base, r, "Planning bewerken", "/planning")
	if err := h.loadSelectOptions(ctx, &data); err != nil {
		h.ErrLog.LogServerError(w, r, "load planning form options", err, "Het formulier kon niet worden geladen.", "/planning")
		return
	}
	templates.Render(w, r, "planning_form", data)
}

// HandleEdit processes the edit-planning form POST.
func (h *Handler) HandleEdit(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		h.ErrLog.LogBadRequest(w, r, "bad planning id", err, "Ongeldige planning.", "/planning")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	form, ok := h.parseForm(ctx, w, r, "Planning bewerken", id.Hex())
	if !ok {
		return
	}

	err = h.Plannings.Update(ctx, id, models.Planning{
		VolunteerID: form.VolunteerID,
		RoomID:      form.RoomID,
		StartDate:   form.StartDate,
		EndDate:     form.EndDate,
	})
	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		h.ErrLog.LogNotFound(w, r, "planning not found", err, "Deze planning bestaat niet (meer).", "/planning")
		return
	case err != nil:
		h.ErrLog.LogServerError(w, r, "update planning", err, "Opslaan is niet gelukt. Probeer het opnieuw.", "/planning")
		return
	}

	h.auditPlanning(ctx, r, audit.EventPlanningUpdated, id, form, "Planning bijgewerkt")
	h.Flash.Success(w, "De planning is bijgewerkt.")
	http.Redirect(w, r, "/planning", http.StatusSeeOther)
}

// HandleDelete removes a planning for POST /planning/{id}/delete.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		h.ErrLog.LogBadRequest(w, r, "bad planning id", err, "Ongeldige planning.", "/planning")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if _, err := h.Plannings.Delete(ctx, id); err != nil {
		h.ErrLog.LogServerError(w, r, "delete planning", err, "Verwijderen is niet gelukt. Probeer het opnieuw.", "/planning")
		return
	}

	h.AuditLog.Action(ctx, r, audit.EventPlanningDeleted,
		auditlog.SubjectFor("planning", id, ""),
		"Planning verwijderd")

	h.Flash.Success(w, "De planning is verwijderd.")
	http.Redirect(w, r, "/planning", http.StatusSeeOther)
}

// parseForm validates the posted fields and resolves the referenced
// volunteer and room. On a validation error it re-renders the form and
// returns ok=false.
func (h *Handler) parseForm(ctx context.Context, w http.ResponseWriter, r *http.Request, title, id string) (planningForm, bool) {
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Ongeldige invoer.", "/planning")
		return planningForm{}, false
	}

	volRaw := strings.TrimSpace(r.FormValue("volunteer_id"))
	roomRaw := strings.TrimSpace(r.FormValue("room_id"))
	startRaw := strings.TrimSpace(r.FormValue("start_date"))
	endRaw := strings.TrimSpace(r.FormValue("end_date"))

	fail := func(msg string) (planningForm, bool) {
		data := formData{
			ID:          id,
			VolunteerID: volRaw,
			RoomID:      roomRaw,
			StartDate:   startRaw,
			EndDate:     endRaw,
		}
		formutil.SetBase(&data.Base, r, title, "/planning")
		data.SetError(msg)
		if err := h.loadSelectOptions(ctx, &data); err != nil {
			h.ErrLog.LogServerError(w, r, "load planning form options", err, "Het formulier kon niet worden geladen.", "/planning")
			return planningForm{}, false
		}
		templates.Render(w, r, "planning_form", data)
		return planningForm{}, false
	}

	volID, err := primitive.ObjectIDFromHex(volRaw)
	if err != nil {
		return fail("Kies een vrijwilliger.")
	}
	roomID, err := primitive.ObjectIDFromHex(roomRaw)
	if err != nil {
		return fail("Kies een ruimte.")
	}

	start, err := time.ParseInLocation(inputLayout, startRaw, time.UTC)
	if err != nil {
		return fail("Vul een geldige startdatum in.")
	}
	end, err := time.ParseInLocation(inputLayout, endRaw, time.UTC)
	if err != nil {
		return fail("Vul een geldige einddatum in.")
	}
	if end.Before(start) {
		return fail("De einddatum mag niet voor de startdatum liggen.")
	}

	if _, err := h.Volunteers.GetByID(ctx, volID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return fail("Deze vrijwilliger bestaat niet (meer).")
		}
		h.ErrLog.LogServerError(w, r, "load volunteer for planning", err, "Er ging iets mis. Probeer het opnieuw.", "/planning")
		return planningForm{}, false
	}
	if _, err := h.Rooms.GetByID(ctx, roomID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return fail("Deze ruimte bestaat niet (meer).")
		}
		h.ErrLog.LogServerError(w, r, "load room for planning", err, "Er ging iets mis. Probeer het opnieuw.", "/planning")
		return planningForm{}, false
	}

	return planningForm{VolunteerID: volID, RoomID: roomID, StartDate: start, EndDate: end}, true
}

func (h *Handler) loadSelectOptions(ctx context.Context, data *formData) error {
	vols, err := h.Volunteers.List(ctx, "")
	if err != nil {
		return err
	}
	for _, v := range vols {
		data.Volunteers = append(data.Volunteers, selectOption{ID: v.ID, Name: v.FullName()})
	}

	rooms, err := h.Rooms.List(ctx)
	if err != nil {
		return err
	}
	for _, room := range rooms {
		data.Rooms = append(data.Rooms, selectOption{ID: room.ID, Name: room.Name})
	}
	return nil
}

func (h *Handler) auditPlanning(ctx context.Context, r *http.Request, event string, id primitive.ObjectID, form planningForm, desc string) {
	name := ""
	if vol, err := h.Volunteers.GetByID(ctx, form.VolunteerID); err == nil {
		name = vol.FullName()
	}
	h.AuditLog.Action(ctx, r, event,
		auditlog.SubjectFor("planning", id, name),
		desc)
}
