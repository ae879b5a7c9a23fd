// internal/app/features/volunteers/delete.go
package volunteers

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/mefen/volunteerhub/internal/app/store/audit"
	"github.com/mefen/volunteerhub/internal/app/system/auditlog"
	"github.com/mefen/volunteerhub/internal/app/system/navigation"
	"github.com/mefen/volunteerhub/internal/app/system/timeouts"
)

// HandleDelete removes one volunteer for POST /volunteers/{id}/delete.
// Their checked-out materials are returned and their plannings removed
// first, so no dangling references survive the delete.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		h.ErrLog.LogBadRequest(w, r, "bad volunteer id", err, "Ongeldige vrijwilliger.", "/volunteers")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	name := ""
	if v, err := h.Volunteers.GetByID(ctx, id); err == nil {
		name = v.FullName()
	}

	h.cleanupReferences(ctx, []primitive.ObjectID{id})

	deleted, err := h.Volunteers.Delete(ctx, id)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "delete volunteer", err, "Verwijderen is niet gelukt. Probeer het opnieuw.", "/volunteers")
		return
	}

	if deleted > 0 {
		h.AuditLog.Action(ctx, r, audit.EventVolunteerDeleted,
			auditlog.SubjectFor("volunteer", id, name),
			"Vrijwilliger verwijderd")
		h.Flash.Success(w, "De vrijwilliger is verwijderd.")
	}

	http.Redirect(w, r, navigation.SafeBackURL(r, navigation.VolunteersBackURL), http.StatusSeeOther)
}

// HandleBulkDelete removes the selected volunteers for
// POST /volunteers/bulk-delete. Unknown ids are skipped silently; the
// flash message reports how many records actually went away.
func (h *Handler) HandleBulkDelete(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Ongeldige invoer.", "/volunteers")
		return
	}

	var ids []primitive.ObjectID
	for _, raw := range r.Form["ids"] {
		id, err := primitive.ObjectIDFromHex(strings.TrimSpace(raw))
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	if len(ids) == 0 {
		h.Flash.Error(w, "Geen vrijwilligers geselecteerd.")
		http.Redirect(w, r, "/volunteers", http.StatusSeeOther)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	h.cleanupReferences(ctx, ids)

	deleted, err := h.Volunteers.DeleteMany(ctx, ids)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "bulk delete volunteers", err, "Verwijderen is niet gelukt. Probeer het opnieuw.", "/volunteers")
		return
	}

	h.AuditLog.Action(ctx, r, audit.EventVolunteersBulkDelete, nil,
		fmt.Sprintf("%d vrijwilligers verwijderd", deleted))

	h.Flash.Success(w, fmt.Sprintf("%d vrijwilliger(s) verwijderd.", deleted))
	http.Redirect(w, r, navigation.SafeBackURL(r, navigation.VolunteersBackURL), http.StatusSeeOther)
}

// cleanupReferences returns checked-out materials and deletes plannings
// for the given volunteers. Failures are logged but do not block the
// delete; a leftover reference is better than a volunteer that cannot
// be removed.
func (h *Handler) cleanupReferences(ctx context.Context, ids []primitive.ObjectID) {
	for _, id := range ids {
		items, err := h.Equipment.ListByVolunteer(ctx, id)
		if err != nil {
			h.Log.Warn("list equipment for volunteer cleanup", zap.Error(err), zap.String("volunteer_id", id.Hex()))
			continue
		}
		for _, item := range items {
			if err := h.Equipment.Return(ctx, item.ID); err != nil {
				h.Log.Warn("return equipment during volunteer cleanup", zap.Error(err), zap.String("equipment_id", item.ID.Hex()))
			}
		}
	}

	if _, err := h.Plannings.DeleteByVolunteer(ctx, ids); err != nil {
		h.Log.Warn("delete plannings during volunteer cleanup", zap.Error(err))
	}
}
