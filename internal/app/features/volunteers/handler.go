// internal/app/features/volunteers/handler.go
package volunteers

import (
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	uierrors "github.com/mefen/volunteerhub/internal/app/features/errors"
	equipmentstore "github.com/mefen/volunteerhub/internal/app/store/equipment"
	planningstore "github.com/mefen/volunteerhub/internal/app/store/plannings"
	roomstore "github.com/mefen/volunteerhub/internal/app/store/rooms"
	volunteerstore "github.com/mefen/volunteerhub/internal/app/store/volunteers"
	"github.com/mefen/volunteerhub/internal/app/system/auditlog"
	"github.com/mefen/volunteerhub/internal/app/system/flash"
)

// Handler is the feature-level handler for volunteer management. Deleting
// a volunteer also returns their checked-out materials and removes their
// plannings, so the equipment and planning stores are dependencies here.
type Handler struct {
	DB         *mongo.Database
	Log        *zap.Logger
	ErrLog     *uierrors.ErrorLogger
	AuditLog   *auditlog.Logger
	Flash      *flash.Codec
	Volunteers *volunteerstore.Store
	Equipment  *equipmentstore.Store
	Plannings  *planningstore.Store
	Rooms      *roomstore.Store
}

func NewHandler(db *mongo.Database, errLog *uierrors.ErrorLogger, audit *auditlog.Logger, fl *flash.Codec, logger *zap.Logger) *Handler {
	return &Handler{
		DB:         db,
		Log:        logger,
		ErrLog:     errLog,
		AuditLog:   audit,
		Flash:      fl,
		Volunteers: volunteerstore.New(db),
		Equipment:  equipmentstore.New(db),
		Plannings:  planningstore.New(db),
		Rooms:      roomstore.New(db),
	}
}
