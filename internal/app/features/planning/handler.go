// internal/app/features/planning/handler.go
package planning

import (
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	uierrors "github.com/mefen/volunteerhub/internal/app/features/errors"
	planningstore "github.com/mefen/volunteerhub/internal/app/store/plannings"
	roomstore "github.com/mefen/volunteerhub/internal/app/store/rooms"
	volunteerstore "github.com/mefen/volunteerhub/internal/app/store/volunteers"
	"github.com/mefen/volunteerhub/internal/app/system/auditlog"
	"github.com/mefen/volunteerhub/internal/app/system/flash"
)

// Handler is the feature-level handler for the volunteer planning. All
// staff can view and edit the schedule.
type Handler struct {
	DB         *mongo.Database
	Log        *zap.Logger
	ErrLog     *uierrors.ErrorLogger
	AuditLog   *auditlog.Logger
	Flash      *flash.Codec
	Plannings  *planningstore.Store
	Volunteers *volunteerstore.Store
	Rooms      *roomstore.Store
}

func NewHandler(db *mongo.Database, errLog *uierrors.ErrorLogger, audit *auditlog.Logger, fl *flash.Codec, logger *zap.Logger) *Handler {
	return &Handler{
		DB:         db,
		Log:        logger,
		ErrLog:     errLog,
		AuditLog:   audit,
		Flash:      fl,
		Plannings:  planningstore.New(db),
		Volunteers: volunteerstore.New(db),
		Rooms:      roomstore.New(db),
	}
}
