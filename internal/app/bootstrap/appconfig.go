// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). They represent *app-level*
// configuration, not WAFFLE core configuration.
//
// WAFFLE's CoreConfig handles framework-level settings like HTTP/HTTPS
// ports, TLS, logging level, and request limits. AppConfig is where
// everything specific to this application lives: the MongoDB connection,
// session cookies, outgoing mail, and the initial admin account.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase    string // Database name within MongoDB
	MongoMaxPoolSize uint64 // Max connections in the driver pool
	MongoMinPoolSize uint64 // Min connections kept warm in the driver pool

	// Session management configuration
	SessionKey    string        // Secret key for signing session cookies (must be strong in production)
	SessionName   string        // Cookie name for sessions
	SessionDomain string        // Cookie domain (blank means current host)
	SessionTTL    time.Duration // How long a signed-in session stays valid

	// Outgoing mail (password reset links)
	ResendAPIKey string // Resend API key; blank disables outgoing mail
	MailFrom     string // From address (e.g., "MEFEN <noreply@mefen.be>")

	// Base URL for links in outgoing mail
	BaseURL string // e.g., "https://vrijwilligers.mefen.be" or "http://localhost:3000"

	// Password reset token lifetime
	ResetTokenExpiry time.Duration

	// Audit logging settings ("all", "db", "log", or "off")
	AuditLogAuth  string
	AuditLogAdmin string

	// Initial admin account, created on startup when no matching user exists
	AdminEmail    string
	AdminName     string
	AdminPassword string
}
