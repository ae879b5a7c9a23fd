// internal/app/features/materials/list.go
package materials

import (
	"context"
	"net/http"

	"github.com/dalemusser/waffle/pantry/templates"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/mefen/volunteerhub/internal/app/system/flash"
	"github.com/mefen/volunteerhub/internal/app/system/timeouts"
	"github.com/mefen/volunteerhub/internal/app/system/viewdata"
)

const timeLayout = "02-01-2006 15:04"

// ServeList renders the checkout screen for GET /materials: everything
// currently checked out plus the assign form.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	data, err := h.buildListData(ctx, r)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "load materials overview", err, "Er ging iets mis bij het laden van de materialen.", "/")
		return
	}

	if msg, ok := h.Flash.Pop(w, r); ok {
		if msg.Kind == flash.KindSuccess {
			data.Notice = msg.Text
		} else {
			data.Error = msg.Text
		}
	}

	templates.Render(w, r, "materials_list", data)
}

func (h *Handler) buildListData(ctx context.Context, r *http.Request) (listData, error) {
	data := listData{
		BaseVM: viewdata.NewBaseVM(r, h.DB, "Materialen", "/"),
		Types:  typeOptions(),
	}

	items, err := h.Equipment.List(ctx, true)
	if err != nil {
		return data, err
	}

	// One batch lookup for the volunteer names on the checked-out rows.
	var volIDs []primitive.ObjectID
	for _, item := range items {
		if item.VolunteerID != nil {
			volIDs = append(volIDs, *item.VolunteerID)
		}
	}
	names := map[primitive.ObjectID]string{}
	if len(volIDs) > 0 {
		vols, err := h.Volunteers.GetByIDs(ctx, volIDs)
		if err != nil {
			h.Log.Warn("resolve volunteer names", zap.Error(err))
		}
		for _, v := range vols {
			names[v.ID] = v.FullName()
		}
	}

	for _, item := range items {
		row := checkedOutRow{
			ID:        item.ID,
			TypeLabel: typeLabel(item.Type),
			Number:    item.Number,
		}
		if item.VolunteerID != nil {
			row.VolunteerName = names[*item.VolunteerID]
		}
		if item.CheckedOutAt != nil {
			row.CheckedOutAt = item.CheckedOutAt.Format(timeLayout)
		}
		data.Rows = append(data.Rows, row)
	}

	vols, err := h.Volunteers.List(ctx, "")
	if err != nil {
		return data, err
	}
	for _, v := range vols {
		data.Volunteers = append(data.Volunteers, volunteerOption{ID: v.ID, Name: v.FullName()})
	}

	return data, nil
}
