// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	"github.com/dalemusser/waffle/config"
	"github.com/dalemusser/waffle/pantry/fileserver"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"github.com/gorilla/csrf"
	"go.uber.org/zap"

	errorsfeature "github.com/mefen/volunteerhub/internal/app/features/errors"
	healthfeature "github.com/mefen/volunteerhub/internal/app/features/health"
	homefeature "github.com/mefen/volunteerhub/internal/app/features/home"
	importexportfeature "github.com/mefen/volunteerhub/internal/app/features/importexport"
	loginfeature "github.com/mefen/volunteerhub/internal/app/features/login"
	logoutfeature "github.com/mefen/volunteerhub/internal/app/features/logout"
	materialsfeature "github.com/mefen/volunteerhub/internal/app/features/materials"
	mosquefeature "github.com/mefen/volunteerhub/internal/app/features/mosque"
	planningfeature "github.com/mefen/volunteerhub/internal/app/features/planning"
	profilefeature "github.com/mefen/volunteerhub/internal/app/features/profile"
	registerfeature "github.com/mefen/volunteerhub/internal/app/features/register"
	roomsfeature "github.com/mefen/volunteerhub/internal/app/features/rooms"
	settingsfeature "github.com/mefen/volunteerhub/internal/app/features/settings"
	volunteersfeature "github.com/mefen/volunteerhub/internal/app/features/volunteers"
	auditstore "github.com/mefen/volunteerhub/internal/app/store/audit"
	resetstore "github.com/mefen/volunteerhub/internal/app/store/passwordreset"
	userstore "github.com/mefen/volunteerhub/internal/app/store/users"
	"github.com/mefen/volunteerhub/internal/app/system/auditlog"
	"github.com/mefen/volunteerhub/internal/app/system/auth"
	"github.com/mefen/volunteerhub/internal/app/system/flash"
	"github.com/mefen/volunteerhub/internal/app/system/mailer"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// any Startup hooks have completed. At this point you have access to:
//   - coreCfg: WAFFLE core configuration (ports, env, timeouts, etc.)
//   - appCfg: app-specific configuration defined in AppConfig
//   - deps: any DB or backend clients bundled in DBDeps
//   - logger: the fully configured zap.Logger for this app
//
// The handler initializes the template engine, applies session and CSRF
// middleware, and mounts feature routers for all application areas:
// home, authentication, volunteers, materials, rooms, planning, mosque
// info, import/export, profile, and settings.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	db := deps.MongoDatabase

	// Create the session manager using app config.
	// Secure cookies are enabled in production mode.
	secure := coreCfg.Env == "prod"
	sessionMgr, err := auth.NewSessionManager(appCfg.SessionKey, appCfg.SessionName, appCfg.SessionDomain, appCfg.SessionTTL, secure, logger)
	if err != nil {
		logger.Error("session manager init failed", zap.Error(err))
		return nil, err
	}

	// Set up the UserFetcher so LoadSessionUser fetches fresh user data on each request.
	// This ensures role changes, disabled accounts, and profile updates take effect immediately.
	sessionMgr.SetUserFetcher(userstore.NewFetcher(db))

	// Initialize and boot the template engine once at startup.
	// Dev mode enables template reloading for faster iteration.
	eng := templates.New(coreCfg.Env == "dev")
	if err := eng.Boot(logger); err != nil {
		logger.Error("template engine boot failed", zap.Error(err))
		return nil, err
	}
	templates.UseEngine(eng, logger)

	// Shared plumbing for handlers.
	errLog := errorsfeature.NewErrorLogger(logger)
	fl := flash.NewCodec(appCfg.SessionKey)
	auditLog := auditlog.New(auditstore.New(db), logger, auditlog.Config{
		Auth:  appCfg.AuditLogAuth,
		Admin: appCfg.AuditLogAdmin,
	})
	resets := resetstore.New(db, appCfg.ResetTokenExpiry)

	// Outgoing mail goes through Resend. Without an API key, reset links
	// are only written to the log, which is fine for local development.
	var mail mailer.Mailer
	if appCfg.ResendAPIKey != "" {
		mail = mailer.NewResend(appCfg.ResendAPIKey, appCfg.MailFrom, logger)
	} else {
		logger.Warn("resend_api_key not set; outgoing mail is disabled")
		mail = mailer.NewNop(logger)
	}

	r := chi.NewRouter()

	// Global auth middleware: loads SessionUser into context if logged in.
	// This makes the current user available to all handlers via auth.CurrentUser(r).
	r.Use(sessionMgr.LoadSessionUser)

	// All forms carry the token rendered via csrf.Token(r).
	r.Use(csrf.Protect([]byte(appCfg.SessionKey), csrf.Secure(secure), csrf.Path("/")))

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.MongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Static assets with pre-compressed file support (gzip/brotli)
	r.Handle("/static/*", fileserver.Handler("/static", "public"))

	// Home page (redirects to /login when signed out)
	homeHandler := homefeature.NewHandler(db, logger)
	r.Mount("/", homefeature.Routes(homeHandler))

	// Authentication
	loginHandler := loginfeature.NewHandler(db, sessionMgr, errLog, mail, auditLog, resets, fl, appCfg.BaseURL, logger)
	r.Mount("/login", loginfeature.Routes(loginHandler))

	registerHandler := registerfeature.NewHandler(db, sessionMgr, errLog, auditLog, logger)
	r.Mount("/register", registerfeature.Routes(registerHandler))

	logoutHandler := logoutfeature.NewHandler(sessionMgr, auditLog, logger)
	r.Mount("/logout", logoutfeature.Routes(logoutHandler, sessionMgr))

	// Error pages
	errorsHandler := errorsfeature.NewHandler()
	r.Get("/forbidden", errorsHandler.Forbidden)
	r.Get("/unauthorized", errorsHandler.Unauthorized)
	r.NotFound(errorsHandler.NotFound)

	// Volunteer roster
	volunteersHandler := volunteersfeature.NewHandler(db, errLog, auditLog, fl, logger)
	r.Mount("/volunteers", volunteersfeature.Routes(volunteersHandler, sessionMgr))

	// Material checkout and inventory
	materialsHandler := materialsfeature.NewHandler(db, errLog, auditLog, fl, logger)
	r.Mount("/materials", materialsfeature.Routes(materialsHandler, sessionMgr))

	// Rooms and planning
	roomsHandler := roomsfeature.NewHandler(db, errLog, auditLog, fl, logger)
	r.Mount("/rooms", roomsfeature.Routes(roomsHandler, sessionMgr))

	planningHandler := planningfeature.NewHandler(db, errLog, auditLog, fl, logger)
	r.Mount("/planning", planningfeature.Routes(planningHandler, sessionMgr))

	// Mosque information
	mosqueHandler := mosquefeature.NewHandler(db, errLog, auditLog, fl, logger)
	r.Mount("/mosque", mosquefeature.Routes(mosqueHandler, sessionMgr))

	// Roster import and export
	importExportHandler := importexportfeature.NewHandler(db, errLog, auditLog, fl, logger)
	r.Mount("/import-export", importexportfeature.Routes(importExportHandler, sessionMgr))

	// Own account
	profileHandler := profilefeature.NewHandler(db, sessionMgr, errLog, auditLog, fl, logger)
	r.Mount("/profile", profilefeature.Routes(profileHandler, sessionMgr))

	// Site settings and activity log (admin only)
	settingsHandler := settingsfeature.NewHandler(db, errLog, auditLog, fl, logger)
	r.Mount("/settings", settingsfeature.Routes(settingsHandler, sessionMgr))

	return r, nil
}
