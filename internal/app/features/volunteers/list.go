// internal/app/features/volunteers/list.go
package volunteers

import (
	"context"
	"net/http"
	"strings"

	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/templates"

	"github.com/mefen/volunteerhub/internal/app/system/flash"
	"github.com/mefen/volunteerhub/internal/app/system/timeouts"
	"github.com/mefen/volunteerhub/internal/app/system/viewdata"
)

// ServeList renders the volunteers screen for GET /volunteers. The search
// box filters by name or phone number; an HTMX request gets just the table
// rows so the search updates in place.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	q := strings.TrimSpace(query.Get(r, "q"))

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	vols, err := h.Volunteers.List(ctx, q)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list volunteers", err, "Er ging iets mis bij het laden van de vrijwilligers.", "/")
		return
	}

	rows := make([]volunteerRow, 0, len(vols))
	for _, v := range vols {
		rows = append(rows, volunteerRow{
			ID:          v.ID,
			FirstName:   v.FirstName,
			LastName:    v.LastName,
			PhoneNumber: v.PhoneNumber,
			Email:       v.Email,
		})
	}

	data := listData{
		BaseVM:      viewdata.NewBaseVM(r, h.DB, "Vrijwilligers", "/"),
		SearchQuery: q,
		Rows:        rows,
		Total:       len(rows),
	}

	if r.Header.Get("HX-Request") != "" {
		templates.Render(w, r, "volunteers_rows", data)
		return
	}

	if msg, ok := h.Flash.Pop(w, r); ok && msg.Kind == flash.KindSuccess {
		data.Notice = msg.Text
	}
	templates.Render(w, r, "volunteers_list", data)
}
