// internal/app/features/materials/assign.go
package materials

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/mefen/volunteerhub/internal/app/store/audit"
	equipmentstore "github.com/mefen/volunteerhub/internal/app/store/equipment"
	"github.com/mefen/volunteerhub/internal/app/system/auditlog"
	"github.com/mefen/volunteerhub/internal/app/system/timeouts"
	"github.com/mefen/volunteerhub/internal/domain/models"
)

// HandleAssign checks an item out to a volunteer for POST /materials/assign.
// The (type, number) pair identifies the physical label on the item; an
// item that was still registered to someone else moves to the new
// volunteer. Items are only registered on the admin manage screen, so a
// pair with no record is reported, not created.
func (h *Handler) HandleAssign(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Ongeldige invoer.", "/materials")
		return
	}

	equipType := strings.TrimSpace(r.FormValue("type"))
	numberRaw := strings.TrimSpace(r.FormValue("number"))
	volRaw := strings.TrimSpace(r.FormValue("volunteer_id"))

	number, err := strconv.Atoi(numberRaw)
	if err != nil || !models.IsValidEquipmentNumber(equipType, number) {
		maxN := 0
		if t, ok := models.EquipmentTypeByID(equipType); ok {
			maxN = t.MaxNumber
		}
		if maxN > 0 {
			h.Flash.Error(w, fmt.Sprintf("Ongeldig nummer. Kies een nummer van 1 tot %d.", maxN))
		} else {
			h.Flash.Error(w, "Onbekend materiaaltype.")
		}
		http.Redirect(w, r, "/materials", http.StatusSeeOther)
		return
	}

	volunteerID, err := primitive.ObjectIDFromHex(volRaw)
	if err != nil {
		h.Flash.Error(w, "Kies een vrijwilliger.")
		http.Redirect(w, r, "/materials", http.StatusSeeOther)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	vol, err := h.Volunteers.GetByID(ctx, volunteerID)
	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		h.Flash.Error(w, "Deze vrijwilliger bestaat niet (meer).")
		http.Redirect(w, r, "/materials", http.StatusSeeOther)
		return
	case err != nil:
		h.ErrLog.LogServerError(w, r, "load volunteer for assign", err, "Er ging iets mis. Probeer het opnieuw.", "/materials")
		return
	}

	err = h.Equipment.Assign(ctx, equipType, number, volunteerID)
	switch {
	case errors.Is(err, equipmentstore.ErrNotFound):
		h.Flash.Error(w, fmt.Sprintf("%s #%d is niet geregistreerd.", typeLabel(equipType), number))
		http.Redirect(w, r, "/materials", http.StatusSeeOther)
		return
	case err != nil:
		h.ErrLog.LogServerError(w, r, "assign equipment", err, "Toewijzen is niet gelukt. Probeer het opnieuw.", "/materials")
		return
	}

	label := fmt.Sprintf("%s #%d", typeLabel(equipType), number)
	h.AuditLog.Action(ctx, r, audit.EventMaterialAssigned,
		auditlog.SubjectFor("volunteer", vol.ID, vol.FullName()),
		label+" uitgeleend")

	h.Flash.Success(w, label+" is uitgeleend aan "+vol.FullName()+".")
	http.Redirect(w, r, "/materials", http.StatusSeeOther)
}

// HandleReturn checks an item back in for POST /materials/{id}/return.
// Returning an item that is already in is a no-op.
func (h *Handler) HandleReturn(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		h.ErrLog.LogBadRequest(w, r, "bad equipment id", err, "Ongeldig materiaal.", "/materials")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	item, err := h.Equipment.GetByID(ctx, id)
	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		h.ErrLog.LogNotFound(w, r, "equipment not found", err, "Dit materiaal bestaat niet (meer).", "/materials")
		return
	case err != nil:
		h.ErrLog.LogServerError(w, r, "load equipment", err, "Er ging iets mis. Probeer het opnieuw.", "/materials")
		return
	}

	if err := h.Equipment.Return(ctx, id); err != nil {
		h.ErrLog.LogServerError(w, r, "return equipment", err, "Innemen is niet gelukt. Probeer het opnieuw.", "/materials")
		return
	}

	label := fmt.Sprintf("%s #%d", typeLabel(item.Type), item.Number)
	h.AuditLog.Action(ctx, r, audit.EventMaterialReturned,
		auditlog.SubjectFor("equipment", item.ID, label),
		label+" ingenomen")

	h.Flash.Success(w, label+" is ingenomen.")
	http.Redirect(w, r, "/materials", http.StatusSeeOther)
}
