// internal/app/features/rooms/handler.go
package rooms

import (
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	uierrors "github.com/mefen/volunteerhub/internal/app/features/errors"
	planningstore "github.com/mefen/volunteerhub/internal/app/store/plannings"
	roomstore "github.com/mefen/volunteerhub/internal/app/store/rooms"
	"github.com/mefen/volunteerhub/internal/app/system/auditlog"
	"github.com/mefen/volunteerhub/internal/app/system/flash"
)

// Handler is the feature-level handler for room management. All routes
// are admin-only.
type Handler struct {
	DB        *mongo.Database
	Log       *zap.Logger
	ErrLog    *uierrors.ErrorLogger
	AuditLog  *auditlog.Logger
	Flash     *flash.Codec
	Rooms     *roomstore.Store
	Plannings *planningstore.Store
}

func NewHandler(db *mongo.Database, errLog *uierrors.ErrorLogger, audit *auditlog.Logger, fl *flash.Codec, logger *zap.Logger) *Handler {
	return &Handler{
		DB:        db,
		Log:       logger,
		ErrLog:    errLog,
		AuditLog:  audit,
		Flash:     fl,
		Rooms:     roomstore.New(db),
		Plannings: planningstore.New(db),
	}
}
