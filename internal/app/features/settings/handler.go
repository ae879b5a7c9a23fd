// internal/app/features/settings/handler.go
package settings

import (
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	uierrors "github.com/mefen/volunteerhub/internal/app/features/errors"
	"github.com/mefen/volunteerhub/internal/app/store/audit"
	settingsstore "github.com/mefen/volunteerhub/internal/app/store/settings"
	"github.com/mefen/volunteerhub/internal/app/system/auditlog"
	"github.com/mefen/volunteerhub/internal/app/system/flash"
)

// Handler serves the admin settings screen and the activity log viewer.
type Handler struct {
	DB       *mongo.Database
	Log      *zap.Logger
	ErrLog   *uierrors.ErrorLogger
	AuditLog *auditlog.Logger
	Flash    *flash.Codec
	Settings *settingsstore.Store
	Events   *audit.Store
}

func NewHandler(db *mongo.Database, errLog *uierrors.ErrorLogger, auditL *auditlog.Logger, fl *flash.Codec, logger *zap.Logger) *Handler {
	return &Handler{
		DB:       db,
		Log:      logger,
		ErrLog:   errLog,
		AuditLog: auditL,
		Flash:    fl,
		Settings: settingsstore.New(db),
		Events:   audit.New(db),
	}
}
