// internal/app/features/importexport/handler.go
package importexport

import (
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	uierrors "github.com/mefen/volunteerhub/internal/app/features/errors"
	volunteerstore "github.com/mefen/volunteerhub/internal/app/store/volunteers"
	"github.com/mefen/volunteerhub/internal/app/system/auditlog"
	"github.com/mefen/volunteerhub/internal/app/system/flash"
)

// Handler serves the roster import/export screen: the volunteer list as
// PDF or CSV, and bulk import from CSV.
type Handler struct {
	DB         *mongo.Database
	Log        *zap.Logger
	ErrLog     *uierrors.ErrorLogger
	AuditLog   *auditlog.Logger
	Flash      *flash.Codec
	Volunteers *volunteerstore.Store
}

func NewHandler(db *mongo.Database, errLog *uierrors.ErrorLogger, audit *auditlog.Logger, fl *flash.Codec, logger *zap.Logger) *Handler {
	return &Handler{
		DB:         db,
		Log:        logger,
		ErrLog:     errLog,
		AuditLog:   audit,
		Flash:      fl,
		Volunteers: volunteerstore.New(db),
	}
}
