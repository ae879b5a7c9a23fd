// internal/app/features/planning/list.go
package planning

import (
	"context"
	"net/http"
	"time"

	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/mefen/volunteerhub/internal/app/system/flash"
	"github.com/mefen/volunteerhub/internal/app/system/timeouts"
	"github.com/mefen/volunteerhub/internal/app/system/viewdata"
	"github.com/mefen/volunteerhub/internal/domain/models"
)

// ServeList renders the schedule for GET /planning. An optional ?date=
// filter narrows the list to plannings active on that day.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	data := listData{BaseVM: viewdata.NewBaseVM(r, h.DB, "Planning", "/")}

	var (
		plannings []models.Planning
		err       error
	)
	if raw := query.Get(r, "date"); raw != "" {
		day, parseErr := time.ParseInLocation(inputLayout, raw, time.UTC)
		if parseErr != nil {
			h.ErrLog.LogBadRequest(w, r, "bad date filter", parseErr, "Ongeldige datum.", "/planning")
			return
		}
		data.FilterDate = raw
		plannings, err = h.Plannings.ListActiveOn(ctx, day)
	} else {
		plannings, err = h.Plannings.List(ctx)
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list plannings", err, "De planning kon niet worden geladen.", "/")
		return
	}

	volNames, roomNames, err := h.nameMaps(ctx, plannings)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "resolve planning names", err, "De planning kon niet worden geladen.", "/")
		return
	}

	for _, p := range plannings {
		data.Rows = append(data.Rows, planningRow{
			ID:            p.ID,
			VolunteerName: volNames[p.VolunteerID],
			RoomName:      roomNames[p.RoomID],
			StartDate:     p.StartDate.Format(displayLayout),
			EndDate:       p.EndDate.Format(displayLayout),
		})
	}
	if msg, ok := h.Flash.Pop(w, r); ok {
		if msg.Kind == flash.KindSuccess {
			data.Notice = msg.Text
		} else {
			data.Error = msg.Text
		}
	}

	templates.Render(w, r, "planning_list", data)
}

// nameMaps resolves the volunteer and room names referenced by a batch of
// plannings. A planning whose room was deleted keeps an empty room name.
func (h *Handler) nameMaps(ctx context.Context, plannings []models.Planning) (map[primitive.ObjectID]string, map[primitive.ObjectID]string, error) {
	volNames := map[primitive.ObjectID]string{}
	roomNames := map[primitive.ObjectID]string{}
	if len(plannings) == 0 {
		return volNames, roomNames, nil
	}

	seen := map[primitive.ObjectID]bool{}
	var volIDs []primitive.ObjectID
	for _, p := range plannings {
		if !seen[p.VolunteerID] {
			seen[p.VolunteerID] = true
			volIDs = append(volIDs, p.VolunteerID)
		}
	}
	vols, err := h.Volunteers.GetByIDs(ctx, volIDs)
	if err != nil {
		return nil, nil, err
	}
	for _, v := range vols {
		volNames[v.ID] = v.FullName()
	}

	rooms, err := h.Rooms.List(ctx)
	if err != nil {
		return nil, nil, err
	}
	for _, room := range rooms {
		roomNames[room.ID] = room.Name
	}

	return volNames, roomNames, nil
}
