// internal/app/features/profile/profile.go
package profile

import (
	"context"
	"errors"
	"net/http"

	"github.com/dalemusser/waffle/pantry/templates"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	userstore "github.com/mefen/volunteerhub/internal/app/store/users"
	"github.com/mefen/volunteerhub/internal/app/system/auth"
	"github.com/mefen/volunteerhub/internal/app/system/flash"
	"github.com/mefen/volunteerhub/internal/app/system/formutil"
	"github.com/mefen/volunteerhub/internal/app/system/inputval"
	"github.com/mefen/volunteerhub/internal/app/system/normalize"
	"github.com/mefen/volunteerhub/internal/app/system/timeouts"
	"github.com/mefen/volunteerhub/internal/domain/models"
)

const minPasswordLength = 8

type profileInput struct {
	FullName string `validate:"required,max=100" label:"Naam"`
	Email    string `validate:"required,email,max=254" label:"E-mailadres"`
}

type profileData struct {
	formutil.Base
	Notice   string
	FullName string
	Email    string
}

// currentDBUser resolves the session user to its database record.
func (h *Handler) currentDBUser(ctx context.Context, r *http.Request) (*models.User, error) {
	u, ok := auth.CurrentUser(r)
	if !ok {
		return nil, errors.New("no session user")
	}
	id, err := primitive.ObjectIDFromHex(u.ID)
	if err != nil {
		return nil, err
	}
	return h.Users.GetByID(ctx, id)
}

// ServeProfile renders the profile form for GET /profile.
func (h *Handler) ServeProfile(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	user, err := h.currentDBUser(ctx, r)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "load profile user", err, "Je profiel kon niet worden geladen.", "/")
		return
	}

	data := profileData{FullName: user.FullName, Email: user.Email}
	formutil.SetBase(&data.Base, r, "Mijn profiel", "/")
	if msg, ok := h.Flash.Pop(w, r); ok {
		if msg.Kind == flash.KindSuccess {
			data.Notice = msg.Text
		} else {
			data.SetError(msg.Text)
		}
	}

	templates.Render(w, r, "profile", data)
}

// HandleProfile updates the user's name and e-mail address. The session
// is refreshed so the header shows the new name right away.
func (h *Handler) HandleProfile(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Ongeldige invoer.", "/profile")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	user, err := h.currentDBUser(ctx, r)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "load profile user", err, "Je profiel kon niet worden geladen.", "/")
		return
	}

	in := profileInput{
		FullName: normalize.Name(r.FormValue("full_name")),
		Email:    normalize.Email(r.FormValue("email")),
	}
	if res := inputval.Validate(in); res.HasErrors() {
		h.Flash.Error(w, res.First())
		http.Redirect(w, r, "/profile", http.StatusSeeOther)
		return
	}

	err = h.Users.UpdateProfile(ctx, user.ID, in.FullName, in.Email)
	switch {
	case errors.Is(err, userstore.ErrDuplicateEmail):
		h.Flash.Error(w, "Er bestaat al een account met dit e-mailadres.")
		http.Redirect(w, r, "/profile", http.StatusSeeOther)
		return
	case err != nil:
		h.ErrLog.LogServerError(w, r, "update profile", err, "Opslaan is niet gelukt. Probeer het opnieuw.", "/profile")
		return
	}

	if err := h.SessionMgr.SignIn(w, r, &auth.SessionUser{
		ID:    user.ID.Hex(),
		Name:  in.FullName,
		Email: in.Email,
		Role:  user.Role,
	}); err != nil {
		h.Log.Warn("refresh session after profile update")
	}

	h.Flash.Success(w, "Je profiel is bijgewerkt.")
	http.Redirect(w, r, "/profile", http.StatusSeeOther)
}

// HandlePassword changes the user's password for POST /profile/password.
// The current password must be supplied and correct.
func (h *Handler) HandlePassword(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Ongeldige invoer.", "/profile")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	user, err := h.currentDBUser(ctx, r)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "load profile user", err, "Je profiel kon niet worden geladen.", "/")
		return
	}

	current := r.FormValue("current_password")
	newPassword := r.FormValue("new_password")
	confirm := r.FormValue("confirm_password")

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(current)) != nil {
		h.Flash.Error(w, "Je huidige wachtwoord is onjuist.")
		http.Redirect(w, r, "/profile", http.StatusSeeOther)
		return
	}
	if len(newPassword) < minPasswordLength {
		h.Flash.Error(w, "Het nieuwe wachtwoord moet minimaal 8 tekens lang zijn.")
		http.Redirect(w, r, "/profile", http.StatusSeeOther)
		return
	}
	if newPassword != confirm {
		h.Flash.Error(w, "De wachtwoorden komen niet overeen.")
		http.Redirect(w, r, "/profile", http.StatusSeeOther)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "hash new password", err, "Er ging iets mis. Probeer het opnieuw.", "/profile")
		return
	}
	if err := h.Users.UpdatePassword(ctx, user.ID, string(hash)); err != nil {
		h.ErrLog.LogServerError(w, r, "update password", err, "Opslaan is niet gelukt. Probeer het opnieuw.", "/profile")
		return
	}

	h.AuditLog.PasswordChanged(ctx, r, user.ID)

	h.Flash.Success(w, "Je wachtwoord is gewijzigd.")
	http.Redirect(w, r, "/profile", http.StatusSeeOther)
}
