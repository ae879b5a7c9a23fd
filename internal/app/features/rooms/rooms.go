// internal/app/features/rooms/rooms.go
package rooms

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/mefen/volunteerhub/internal/app/store/audit"
	roomstore "github.com/mefen/volunteerhub/internal/app/store/rooms"
	"github.com/mefen/volunteerhub/internal/app/system/auditlog"
	"github.com/mefen/volunteerhub/internal/app/system/flash"
	"github.com/mefen/volunteerhub/internal/app/system/formutil"
	"github.com/mefen/volunteerhub/internal/app/system/inputval"
	"github.com/mefen/volunteerhub/internal/app/system/timeouts"
	"github.com/mefen/volunteerhub/internal/app/system/viewdata"
	"github.com/mefen/volunteerhub/internal/domain/models"
)

type roomInput struct {
	Name     string `validate:"required,max=100" label:"Naam"`
	Capacity int    `validate:"min=0" label:"Capaciteit"`
}

type roomRow struct {
	ID       primitive.ObjectID
	Name     string
	Capacity int
}

type listData struct {
	viewdata.BaseVM
	Notice string
	Error  string
	Rows   []roomRow
}

type formData struct {
	formutil.Base
	ID       string
	Name     string
	Capacity int
}

// ServeList renders the room overview for GET /rooms.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	rooms, err := h.Rooms.List(ctx)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list rooms", err, "De ruimtes konden niet worden geladen.", "/")
		return
	}

	data := listData{BaseVM: viewdata.NewBaseVM(r, h.DB, "Ruimtes", "/")}
	for _, room := range rooms {
		data.Rows = append(data.Rows, roomRow{ID: room.ID, Name: room.Name, Capacity: room.Capacity})
	}
	if msg, ok := h.Flash.Pop(w, r); ok {
		if msg.Kind == flash.KindSuccess {
			data.Notice = msg.Text
		} else {
			data.Error = msg.Text
		}
	}

	templates.Render(w, r, "rooms_list", data)
}

// ServeNew renders the add-room form.
func (h *Handler) ServeNew(w http.ResponseWriter, r *http.Request) {
	var data formData
	formutil.SetBase(&data.Base, r, "Ruimte toevoegen", "/rooms")
	templates.Render(w, r, "room_form", data)
}

// HandleCreate processes the add-room form POST.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	in, ok := h.parseInput(w, r)
	if !ok {
		return
	}

	if res := inputval.Validate(in); res.HasErrors() {
		h.renderFormWithError(w, r, "Ruimte toevoegen", "", in, res.First())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	created, err := h.Rooms.Create(ctx, models.Room{Name: in.Name, Capacity: in.Capacity})
	switch {
	case errors.Is(err, roomstore.ErrDuplicateName):
		h.renderFormWithError(w, r, "Ruimte toevoegen", "", in, "Er bestaat al een ruimte met deze naam.")
		return
	case err != nil:
		h.ErrLog.LogServerError(w, r, "create room", err, "Opslaan is niet gelukt. Probeer het opnieuw.", "/rooms")
		return
	}

	h.AuditLog.Action(ctx, r, audit.EventRoomCreated,
		auditlog.SubjectFor("room", created.ID, created.Name),
		"Ruimte toegevoegd")

	h.Flash.Success(w, "Ruimte "+created.Name+" is toegevoegd.")
	http.Redirect(w, r, "/rooms", http.StatusSeeOther)
}

// ServeEdit renders the edit-room form.
func (h *Handler) ServeEdit(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		h.ErrLog.LogBadRequest(w, r, "bad room id", err, "Ongeldige ruimte.", "/rooms")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	room, err := h.Rooms.GetByID(ctx, id)
	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		h.ErrLog.LogNotFound(w, r, "room not found", err, "Deze ruimte bestaat niet (meer).", "/rooms")
		return
	case err != nil:
		h.ErrLog.LogServerError(w, r, "load room", err, "Er ging iets mis. Probeer het opnieuw.", "/rooms")
		return
	}

	data := formData{ID: room.ID.Hex(), Name: room.Name, Capacity: room.Capacity}
	formutil.SetBase(&data.Base, r, "Ruimte bewerken", "/rooms")
	templates.Render(w, r, "room_form", data)
}

// HandleEdit processes the edit-room form POST.
func (h *Handler) HandleEdit(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		h.ErrLog.LogBadRequest(w, r, "bad room id", err, "Ongeldige ruimte.", "/rooms")
		return
	}

	in, ok := h.parseInput(w, r)
	if !ok {
		return
	}

	if res := inputval.Validate(in); res.HasErrors() {
		h.renderFormWithError(w, r, "Ruimte bewerken", id.Hex(), in, res.First())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	err = h.Rooms.Update(ctx, id, in.Name, in.Capacity)
	switch {
	case errors.Is(err, roomstore.ErrDuplicateName):
		h.renderFormWithError(w, r, "Ruimte bewerken", id.Hex(), in, "Er bestaat al een ruimte met deze naam.")
		return
	case errors.Is(err, mongo.ErrNoDocuments):
		h.ErrLog.LogNotFound(w, r, "room not found", err, "Deze ruimte bestaat niet (meer).", "/rooms")
		return
	case err != nil:
		h.ErrLog.LogServerError(w, r, "update room", err, "Opslaan is niet gelukt. Probeer het opnieuw.", "/rooms")
		return
	}

	h.AuditLog.Action(ctx, r, audit.EventRoomUpdated,
		auditlog.SubjectFor("room", id, in.Name),
		"Ruimte bijgewerkt")

	h.Flash.Success(w, "Ruimte "+in.Name+" is bijgewerkt.")
	http.Redirect(w, r, "/rooms", http.StatusSeeOther)
}

// HandleDelete removes a room for POST /rooms/{id}/delete. A room that
// still has plannings cannot be deleted; the plannings name the room, so
// they must be moved or removed first.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		h.ErrLog.LogBadRequest(w, r, "bad room id", err, "Ongeldige ruimte.", "/rooms")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	room, err := h.Rooms.GetByID(ctx, id)
	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		h.ErrLog.LogNotFound(w, r, "room not found", err, "Deze ruimte bestaat niet (meer).", "/rooms")
		return
	case err != nil:
		h.ErrLog.LogServerError(w, r, "load room", err, "Er ging iets mis. Probeer het opnieuw.", "/rooms")
		return
	}

	plannings, err := h.Plannings.ListByRoom(ctx, id)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list plannings for room", err, "Er ging iets mis. Probeer het opnieuw.", "/rooms")
		return
	}
	if len(plannings) > 0 {
		h.Flash.Error(w, "Ruimte "+room.Name+" heeft nog "+strconv.Itoa(len(plannings))+" planning(en). Verwijder die eerst.")
		http.Redirect(w, r, "/rooms", http.StatusSeeOther)
		return
	}

	if _, err := h.Rooms.Delete(ctx, id); err != nil {
		h.ErrLog.LogServerError(w, r, "delete room", err, "Verwijderen is niet gelukt. Probeer het opnieuw.", "/rooms")
		return
	}

	h.AuditLog.Action(ctx, r, audit.EventRoomDeleted,
		auditlog.SubjectFor("room", id, room.Name),
		"Ruimte verwijderd")

	h.Flash.Success(w, "Ruimte "+room.Name+" is verwijderd.")
	http.Redirect(w, r, "/rooms", http.StatusSeeOther)
}

func (h *Handler) parseInput(w http.ResponseWriter, r *http.Request) (roomInput, bool) {
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Ongeldige invoer.", "/rooms")
		return roomInput{}, false
	}

	capacity := 0
	if raw := strings.TrimSpace(r.FormValue("capacity")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			h.renderFormWithError(w, r, "Ruimte", "", roomInput{Name: strings.TrimSpace(r.FormValue("name"))}, "Capaciteit moet een getal zijn.")
			return roomInput{}, false
		}
		capacity = n
	}

	return roomInput{
		Name:     strings.TrimSpace(r.FormValue("name")),
		Capacity: capacity,
	}, true
}

func (h *Handler) renderFormWithError(w http.ResponseWriter, r *http.Request, title, id string, in roomInput, msg string) {
	data := formData{ID: id, Name: in.Name, Capacity: in.Capacity}
	formutil.SetBase(&data.Base, r, title, "/rooms")
	data.SetError(msg)
	templates.Render(w, r, "room_form", data)
}
