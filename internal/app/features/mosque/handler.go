// internal/app/features/mosque/handler.go
package mosque

import (
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	uierrors "github.com/mefen/volunteerhub/internal/app/features/errors"
	mosquestore "github.com/mefen/volunteerhub/internal/app/store/mosque"
	"github.com/mefen/volunteerhub/internal/app/system/auditlog"
	"github.com/mefen/volunteerhub/internal/app/system/flash"
)

// Handler serves the mosque info card. Viewing is for all staff,
// editing is admin-only.
type Handler struct {
	DB       *mongo.Database
	Log      *zap.Logger
	ErrLog   *uierrors.ErrorLogger
	AuditLog *auditlog.Logger
	Flash    *flash.Codec
	Mosque   *mosquestore.Store
}

func NewHandler(db *mongo.Database, errLog *uierrors.ErrorLogger, audit *auditlog.Logger, fl *flash.Codec, logger *zap.Logger) *Handler {
	return &Handler{
		DB:       db,
		Log:      logger,
		ErrLog:   errLog,
		AuditLog: audit,
		Flash:    fl,
		Mosque:   mosquestore.New(db),
	}
}
