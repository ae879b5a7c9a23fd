// internal/app/features/register/handler.go
package register

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/dalemusser/waffle/pantry/templates"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	uierrors "github.com/mefen/volunteerhub/internal/app/features/errors"
	userstore "github.com/mefen/volunteerhub/internal/app/store/users"
	"github.com/mefen/volunteerhub/internal/app/system/auditlog"
	"github.com/mefen/volunteerhub/internal/app/system/auth"
	"github.com/mefen/volunteerhub/internal/app/system/inputval"
	"github.com/mefen/volunteerhub/internal/app/system/normalize"
	"github.com/mefen/volunteerhub/internal/app/system/timeouts"
	"github.com/mefen/volunteerhub/internal/app/system/viewdata"
	"github.com/mefen/volunteerhub/internal/domain/models"
)

const minPasswordLength = 8

// Handler serves self-registration. New accounts always get the medewerker
// role; admins are promoted by an existing admin afterwards.
type Handler struct {
	DB         *mongo.Database
	Log        *zap.Logger
	Users      *userstore.Store
	SessionMgr *auth.SessionManager
	ErrLog     *uierrors.ErrorLogger
	AuditLog   *auditlog.Logger
}

func NewHandler(db *mongo.Database, sessionMgr *auth.SessionManager, errLog *uierrors.ErrorLogger, audit *auditlog.Logger, logger *zap.Logger) *Handler {
	return &Handler{
		DB:         db,
		Log:        logger,
		Users:      userstore.New(db),
		SessionMgr: sessionMgr,
		ErrLog:     errLog,
		AuditLog:   audit,
	}
}

type registerFormData struct {
	viewdata.BaseVM
	Error    string
	FullName string
	Email    string
}

type registerInput struct {
	FullName string `validate:"required,max=100" label:"Naam"`
	Email    string `validate:"required,email" label:"E-mailadres"`
}

// ServeForm renders the registration form for GET /register.
func (h *Handler) ServeForm(w http.ResponseWriter, r *http.Request) {
	templates.Render(w, r, "register", registerFormData{
		BaseVM: viewdata.NewBaseVM(r, h.DB, "Registreren", "/login"),
	})
}

// HandleSubmit creates the account for POST /register and signs the new
// user in.
func (h *Handler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Ongeldige invoer.", "/register")
		return
	}

	in := registerInput{
		FullName: normalize.Name(r.FormValue("full_name")),
		Email:    normalize.Email(r.FormValue("email")),
	}
	password := r.FormValue("password")
	confirm := r.FormValue("password_confirm")

	if res := inputval.Validate(in); res.HasErrors() {
		h.renderFormWithError(w, r, res.First(), in.FullName, in.Email)
		return
	}
	if len(password) < minPasswordLength {
		h.renderFormWithError(w, r,
			fmt.Sprintf("Het wachtwoord moet minimaal %d tekens lang zijn.", minPasswordLength),
			in.FullName, in.Email)
		return
	}
	if password != confirm {
		h.renderFormWithError(w, r, "De wachtwoorden komen niet overeen.", in.FullName, in.Email)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "hash password failed", err, "Er ging iets mis. Probeer het opnieuw.", "/register")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	created, err := h.Users.Create(ctx, models.User{
		FullName:     in.FullName,
		Email:        in.Email,
		PasswordHash: string(hash),
		Role:         models.RoleMedewerker,
	})
	switch {
	case errors.Is(err, userstore.ErrDuplicateEmail):
		h.renderFormWithError(w, r, "Er bestaat al een account met dit e-mailadres.", in.FullName, in.Email)
		return
	case err != nil:
		h.ErrLog.LogServerError(w, r, "create user failed", err, "Er ging iets mis. Probeer het opnieuw.", "/register")
		return
	}

	h.AuditLog.UserRegistered(ctx, r, created.ID, created.Email)

	sessionUser := &auth.SessionUser{
		ID:    created.ID.Hex(),
		Name:  created.FullName,
		Email: created.Email,
		Role:  created.Role,
	}
	if err := h.SessionMgr.SignIn(w, r, sessionUser); err != nil {
		// Account exists; let the user sign in manually.
		h.Log.Error("save session after registration failed", zap.Error(err), zap.String("email", created.Email))
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *Handler) renderFormWithError(w http.ResponseWriter, r *http.Request, msg, fullName, email string) {
	templates.Render(w, r, "register", registerFormData{
		BaseVM:   viewdata.NewBaseVM(r, h.DB, "Registreren", "/login"),
		Error:    msg,
		FullName: fullName,
		Email:    email,
	})
}
