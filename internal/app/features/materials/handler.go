// internal/app/features/materials/handler.go
package materials

import (
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	uierrors "github.com/mefen/volunteerhub/internal/app/features/errors"
	equipmentstore "github.com/mefen/volunteerhub/internal/app/store/equipment"
	volunteerstore "github.com/mefen/volunteerhub/internal/app/store/volunteers"
	"github.com/mefen/volunteerhub/internal/app/system/auditlog"
	"github.com/mefen/volunteerhub/internal/app/system/flash"
)

// Handler is the feature-level handler for material checkout. The overview
// and assign/return actions are for all staff; stock management under
// /materials/manage is admin-only.
type Handler struct {
	DB         *mongo.Database
	Log        *zap.Logger
	ErrLog     *uierrors.ErrorLogger
	AuditLog   *auditlog.Logger
	Flash      *flash.Codec
	Equipment  *equipmentstore.Store
	Volunteers *volunteerstore.Store
}

func NewHandler(db *mongo.Database, errLog *uierrors.ErrorLogger, audit *auditlog.Logger, fl *flash.Codec, logger *zap.Logger) *Handler {
	return &Handler{
		DB:         db,
		Log:        logger,
		ErrLog:     errLog,
		AuditLog:   audit,
		Flash:      fl,
		Equipment:  equipmentstore.New(db),
		Volunteers: volunteerstore.New(db),
	}
}
