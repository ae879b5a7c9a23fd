// internal/app/features/materials/manage.go
package materials

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/mefen/volunteerhub/internal/app/store/audit"
	equipmentstore "github.com/mefen/volunteerhub/internal/app/store/equipment"
	"github.com/mefen/volunteerhub/internal/app/system/auditlog"
	"github.com/mefen/volunteerhub/internal/app/system/flash"
	"github.com/mefen/volunteerhub/internal/app/system/timeouts"
	"github.com/mefen/volunteerhub/internal/app/system/viewdata"
	"github.com/mefen/volunteerhub/internal/domain/models"
)

// ServeManage renders the inventory screen for GET /materials/manage.
func (h *Handler) ServeManage(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	items, err := h.Equipment.List(ctx, false)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list equipment", err, "Het materiaaloverzicht kon niet worden geladen.", "/materials")
		return
	}

	counts, err := h.Equipment.CountByType(ctx)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "count equipment by type", err, "Het materiaaloverzicht kon niet worden geladen.", "/materials")
		return
	}

	data := manageData{
		BaseVM: viewdata.NewBaseVM(r, h.DB, "Materiaalbeheer", "/materials"),
		Types:  typeOptions(),
		Counts: counts,
	}
	for _, it := range items {
		data.Rows = append(data.Rows, manageRow{
			ID:           it.ID,
			TypeLabel:    typeLabel(it.Type),
			Number:       it.Number,
			IsCheckedOut: it.IsCheckedOut,
		})
	}
	if msg, ok := h.Flash.Pop(w, r); ok {
		if msg.Kind == flash.KindSuccess {
			data.Notice = msg.Text
		} else {
			data.Error = msg.Text
		}
	}

	templates.Render(w, r, "materials_manage", data)
}

// HandleManageCreate registers a new item for POST /materials/manage.
func (h *Handler) HandleManageCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Ongeldige invoer.", "/materials/manage")
		return
	}

	equipType := strings.TrimSpace(r.FormValue("type"))
	number, err := strconv.Atoi(strings.TrimSpace(r.FormValue("number")))
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
		http.Redirect(w, r, "/materials/manage", http.StatusSeeOther)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	label := fmt.Sprintf("%s #%d", typeLabel(equipType), number)

	item, err := h.Equipment.Create(ctx, models.Equipment{Type: equipType, Number: number})
	switch {
	case errors.Is(err, equipmentstore.ErrDuplicate):
		h.Flash.Error(w, label+" bestaat al.")
		http.Redirect(w, r, "/materials/manage", http.StatusSeeOther)
		return
	case err != nil:
		h.ErrLog.LogServerError(w, r, "create equipment", err, "Toevoegen is niet gelukt. Probeer het opnieuw.", "/materials/manage")
		return
	}

	h.AuditLog.Action(ctx, r, audit.EventMaterialCreated,
		auditlog.SubjectFor("equipment", item.ID, label),
		label+" toegevoegd")

	h.Flash.Success(w, label+" is toegevoegd.")
	http.Redirect(w, r, "/materials/manage", http.StatusSeeOther)
}

// HandleManageDelete removes an item for POST /materials/manage/{id}/delete.
func (h *Handler) HandleManageDelete(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		h.ErrLog.LogBadRequest(w, r, "bad equipment id", err, "Ongeldig materiaal.", "/materials/manage")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	item, err := h.Equipment.GetByID(ctx, id)
	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		h.ErrLog.LogNotFound(w, r, "equipment not found", err, "Dit materiaal bestaat niet (meer).", "/materials/manage")
		return
	case err != nil:
		h.ErrLog.LogServerError(w, r, "load equipment", err, "Er ging iets mis. Probeer het opnieuw.", "/materials/manage")
		return
	}

	if _, err := h.Equipment.Delete(ctx, id); err != nil {
		h.ErrLog.LogServerError(w, r, "delete equipment", err, "Verwijderen is niet gelukt. Probeer het opnieuw.", "/materials/manage")
		return
	}

	label := fmt.Sprintf("%s #%d", typeLabel(item.Type), item.Number)
	h.AuditLog.Action(ctx, r, audit.EventMaterialDeleted,
		auditlog.SubjectFor("equipment", item.ID, label),
		label+" verwijderd")

	h.Flash.Success(w, label+" is verwijderd.")
	http.Redirect(w, r, "/materials/manage", http.StatusSeeOther)
}
