// internal/app/features/login/handler.go
package login

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/dalemusser/waffle/pantry/urlutil"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	uierrors "github.com/mefen/volunteerhub/internal/app/features/errors"
	"github.com/mefen/volunteerhub/internal/app/store/passwordreset"
	userstore "github.com/mefen/volunteerhub/internal/app/store/users"
	"github.com/mefen/volunteerhub/internal/app/system/auditlog"
	"github.com/mefen/volunteerhub/internal/app/system/auth"
	"github.com/mefen/volunteerhub/internal/app/system/flash"
	"github.com/mefen/volunteerhub/internal/app/system/mailer"
	"github.com/mefen/volunteerhub/internal/app/system/normalize"
	"github.com/mefen/volunteerhub/internal/app/system/timeouts"
	"github.com/mefen/volunteerhub/internal/app/system/viewdata"
)

// errWrongEmailOrPassword is the single message shown for both an unknown
// email and a wrong password. The audit log records which one it was.
const errWrongEmailOrPassword = "E-mailadres of wachtwoord is onjuist."

type Handler struct {
	DB         *mongo.Database
	Log        *zap.Logger
	Users      *userstore.Store
	Resets     *passwordreset.Store
	SessionMgr *auth.SessionManager
	ErrLog     *uierrors.ErrorLogger
	Mailer     mailer.Mailer
	AuditLog   *auditlog.Logger
	Flash      *flash.Codec
	BaseURL    string // absolute URL prefix for reset links
}

func NewHandler(
	db *mongo.Database,
	sessionMgr *auth.SessionManager,
	errLog *uierrors.ErrorLogger,
	mail mailer.Mailer,
	audit *auditlog.Logger,
	resets *passwordreset.Store,
	fl *flash.Codec,
	baseURL string,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		DB:         db,
		Log:        logger,
		Users:      userstore.New(db),
		Resets:     resets,
		SessionMgr: sessionMgr,
		ErrLog:     errLog,
		Mailer:     mail,
		AuditLog:   audit,
		Flash:      fl,
		BaseURL:    strings.TrimRight(baseURL, "/"),
	}
}

type loginFormData struct {
	viewdata.BaseVM
	Error     string
	Notice    string
	Email     string
	ReturnURL string
}

// ServeLogin renders the sign-in form for GET /login.
func (h *Handler) ServeLogin(w http.ResponseWriter, r *http.Request) {
	data := loginFormData{
		BaseVM:    viewdata.NewBaseVM(r, h.DB, "Inloggen", "/"),
		ReturnURL: query.Get(r, "return"),
	}
	if msg, ok := h.Flash.Pop(w, r); ok && msg.Kind == flash.KindSuccess {
		data.Notice = msg.Text
	}
	templates.Render(w, r, "login", data)
}

// HandleLoginPost verifies the credentials for POST /login and starts a
// session on success.
func (h *Handler) HandleLoginPost(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Ongeldige invoer.", "/login")
		return
	}

	email := normalize.Email(r.FormValue("email"))
	password := r.FormValue("password")
	if email == "" || password == "" {
		h.renderFormWithError(w, r, "Vul je e-mailadres en wachtwoord in.", email)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	u, err := h.Users.GetByEmail(ctx, email)
	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		h.AuditLog.LoginFailedUserNotFound(ctx, r, email)
		h.renderFormWithError(w, r, errWrongEmailOrPassword, email)
		return
	case err != nil:
		h.ErrLog.LogServerError(w, r, "find user by email", err, "Er ging iets mis. Probeer het opnieuw.", "/login")
		return
	}

	// A disabled account gets the same generic message as a wrong
	// password; the audit log keeps the real reason.
	if normalize.Status(u.Status) == "disabled" {
		h.AuditLog.LoginFailedUserDisabled(ctx, r, u.ID, email)
		h.renderFormWithError(w, r, errWrongEmailOrPassword, email)
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		h.AuditLog.LoginFailedWrongPassword(ctx, r, u.ID, email)
		h.renderFormWithError(w, r, errWrongEmailOrPassword, email)
		return
	}

	sessionUser := &auth.SessionUser{
		ID:    u.ID.Hex(),
		Name:  u.FullName,
		Email: u.Email,
		Role:  normalize.Role(u.Role),
	}
	if err := h.SessionMgr.SignIn(w, r, sessionUser); err != nil {
		h.Log.Error("save session failed", zap.Error(err), zap.String("email", email))
		h.renderFormWithError(w, r, "Inloggen is niet gelukt. Probeer het opnieuw.", email)
		return
	}

	h.AuditLog.LoginSuccess(r.Context(), r, u.ID, email)

	dest := urlutil.SafeReturn(strings.TrimSpace(r.FormValue("return")), "", "/")
	http.Redirect(w, r, dest, http.StatusSeeOther)
}

func (h *Handler) renderFormWithError(w http.ResponseWriter, r *http.Request, msg, email string) {
	ret := strings.TrimSpace(r.FormValue("return"))
	if ret == "" {
		ret = query.Get(r, "return")
	}
	templates.Render(w, r, "login", loginFormData{
		BaseVM:    viewdata.NewBaseVM(r, h.DB, "Inloggen", "/"),
		Error:     msg,
		Email:     email,
		ReturnURL: ret,
	})
}
