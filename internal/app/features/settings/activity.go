// internal/app/features/settings/activity.go
package settings

import (
	"context"
	"net/http"
	"strconv"

	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/templates"

	"github.com/mefen/volunteerhub/internal/app/store/audit"
	"github.com/mefen/volunteerhub/internal/app/system/timeouts"
	"github.com/mefen/volunteerhub/internal/app/system/viewdata"
)

const activityPageSize = 50

type activityRow struct {
	Timestamp   string
	Category    string
	EventType   string
	ActorName   string
	SubjectName string
	Description string
	Success     bool
}

type activityData struct {
	viewdata.BaseVM
	Rows     []activityRow
	Category string
	Event    string
	Page     int64
	HasPrev  bool
	HasNext  bool
	PrevPage int64
	NextPage int64
	Total    int64
}

// ServeActivity renders the activity log for GET /settings/activity.
// Supports ?category=, ?event= and ?page= filters.
func (h *Handler) ServeActivity(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	page, _ := strconv.ParseInt(query.Get(r, "page"), 10, 64)
	if page < 1 {
		page = 1
	}

	filter := audit.QueryFilter{
		Category:  query.Get(r, "category"),
		EventType: query.Get(r, "event"),
		Limit:     activityPageSize,
		Offset:    (page - 1) * activityPageSize,
	}

	events, err := h.Events.Query(ctx, filter)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "query audit events", err, "Het activiteitenlogboek kon niet worden geladen.", "/settings")
		return
	}
	total, err := h.Events.CountByFilter(ctx, filter)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "count audit events", err, "Het activiteitenlogboek kon niet worden geladen.", "/settings")
		return
	}

	data := activityData{
		BaseVM:   viewdata.NewBaseVM(r, h.DB, "Activiteitenlogboek", "/settings"),
		Category: filter.Category,
		Event:    filter.EventType,
		Page:     page,
		Total:    total,
		HasPrev:  page > 1,
		HasNext:  page*activityPageSize < total,
		PrevPage: page - 1,
		NextPage: page + 1,
	}
	for _, e := range events {
		row := activityRow{
			Timestamp:   e.Timestamp.Format("02-01-2006 15:04:05"),
			Category:    e.Category,
			EventType:   e.EventType,
			ActorName:   e.ActorName,
			Description: e.Description,
			Success:     e.Success,
		}
		if e.Subject != nil {
			row.SubjectName = e.Subject.Name
		}
		data.Rows = append(data.Rows, row)
	}

	templates.Render(w, r, "settings_activity", data)
}
