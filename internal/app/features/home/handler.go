// internal/app/features/home/handler.go
package home

import (
	"context"
	"net/http"
	"time"

	"github.com/dalemusser/waffle/pantry/templates"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	auditstore "github.com/mefen/volunteerhub/internal/app/store/audit"
	equipmentstore "github.com/mefen/volunteerhub/internal/app/store/equipment"
	planningstore "github.com/mefen/volunteerhub/internal/app/store/plannings"
	roomstore "github.com/mefen/volunteerhub/internal/app/store/rooms"
	volunteerstore "github.com/mefen/volunteerhub/internal/app/store/volunteers"
	"github.com/mefen/volunteerhub/internal/app/system/auth"
	"github.com/mefen/volunteerhub/internal/app/system/timeouts"
	"github.com/mefen/volunteerhub/internal/app/system/viewdata"
)

// Handler serves the landing page and, for signed-in staff, the dashboard.
type Handler struct {
	DB         *mongo.Database
	Log        *zap.Logger
	Volunteers *volunteerstore.Store
	Equipment  *equipmentstore.Store
	Rooms      *roomstore.Store
	Plannings  *planningstore.Store
	Events     *auditstore.Store
}

func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		DB:         db,
		Log:        logger,
		Volunteers: volunteerstore.New(db),
		Equipment:  equipmentstore.New(db),
		Rooms:      roomstore.New(db),
		Plannings:  planningstore.New(db),
		Events:     auditstore.New(db),
	}
}

type activityRow struct {
	When        string
	ActorName   string
	Description string
}

type dashboardData struct {
	viewdata.BaseVM
	VolunteerCount  int64
	CheckedOutCount int
	RoomCount       int64
	ActiveToday     int
	Recent          []activityRow
}

// ServeRoot handles GET /. Anonymous visitors get the landing page;
// signed-in staff get the dashboard.
func (h *Handler) ServeRoot(w http.ResponseWriter, r *http.Request) {
	if _, ok := auth.CurrentUser(r); !ok {
		templates.Render(w, r, "home_landing", struct {
			viewdata.BaseVM
		}{
			BaseVM: viewdata.NewBaseVM(r, h.DB, "Welkom", "/"),
		})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	data := dashboardData{
		BaseVM: viewdata.NewBaseVM(r, h.DB, "Overzicht", "/"),
	}

	// Counts are best effort; a failed counter renders as zero rather
	// than failing the whole page.
	if n, err := h.Volunteers.Count(ctx, bson.M{}); err == nil {
		data.VolunteerCount = n
	} else {
		h.Log.Warn("count volunteers", zap.Error(err))
	}
	if items, err := h.Equipment.List(ctx, true); err == nil {
		data.CheckedOutCount = len(items)
	} else {
		h.Log.Warn("count checked-out equipment", zap.Error(err))
	}
	if n, err := h.Rooms.Count(ctx); err == nil {
		data.RoomCount = n
	} else {
		h.Log.Warn("count rooms", zap.Error(err))
	}
	today := time.Now()
	if active, err := h.Plannings.ListActiveOn(ctx, today); err == nil {
		data.ActiveToday = len(active)
	} else {
		h.Log.Warn("count active plannings", zap.Error(err))
	}

	// Only admins see the activity feed; it mirrors /settings/activity.
	if data.IsAdmin {
		if events, err := h.Events.GetRecent(ctx, 8); err == nil {
			for _, ev := range events {
				data.Recent = append(data.Recent, activityRow{
					When:        ev.Timestamp.Local().Format("02-01-2006 15:04"),
					ActorName:   ev.ActorName,
					Description: ev.Description,
				})
			}
		} else {
			h.Log.Warn("load recent activity", zap.Error(err))
		}
	}

	templates.Render(w, r, "home_dashboard", data)
}
