// internal/app/features/login/reset.go
package login

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/mefen/volunteerhub/internal/app/store/passwordreset"
	"github.com/mefen/volunteerhub/internal/app/system/mailer"
	"github.com/mefen/volunteerhub/internal/app/system/normalize"
	"github.com/mefen/volunteerhub/internal/app/system/timeouts"
	"github.com/mefen/volunteerhub/internal/app/system/viewdata"
)

const minPasswordLength = 8

// formatExpiry renders a duration for the reset email, e.g. "30 minuten"
// or "1 uur".
func formatExpiry(d time.Duration) string {
	minutes := int(d.Minutes())
	if minutes < 60 {
		if minutes == 1 {
			return "1 minuut"
		}
		return fmt.Sprintf("%d minuten", minutes)
	}
	hours := minutes / 60
	if hours == 1 {
		return "1 uur"
	}
	return fmt.Sprintf("%d uur", hours)
}

type resetRequestFormData struct {
	viewdata.BaseVM
	Error string
	Email string
}

type resetConfirmFormData struct {
	viewdata.BaseVM
	Error string
	Token string
}

// ServeResetRequest renders the forgot-password form for GET /login/reset.
func (h *Handler) ServeResetRequest(w http.ResponseWriter, r *http.Request) {
	templates.Render(w, r, "login_reset", resetRequestFormData{
		BaseVM: viewdata.NewBaseVM(r, h.DB, "Wachtwoord vergeten", "/login"),
	})
}

// HandleResetRequest handles POST /login/reset. The response is the same
// whether or not the email belongs to an account, so the form cannot be
// used to probe which addresses are registered.
func (h *Handler) HandleResetRequest(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Ongeldige invoer.", "/login/reset")
		return
	}

	email := normalize.Email(r.FormValue("email"))
	if email == "" {
		templates.Render(w, r, "login_reset", resetRequestFormData{
			BaseVM: viewdata.NewBaseVM(r, h.DB, "Wachtwoord vergeten", "/login"),
			Error:  "Vul je e-mailadres in.",
		})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	u, err := h.Users.GetByEmail(ctx, email)
	accountExists := err == nil && normalize.Status(u.Status) != "disabled"
	if err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
		h.ErrLog.LogServerError(w, r, "find user for reset", err, "Er ging iets mis. Probeer het opnieuw.", "/login/reset")
		return
	}

	h.AuditLog.PasswordResetRequested(ctx, r, email, accountExists)

	if accountExists {
		token, err := h.Resets.Create(ctx, u.ID, email)
		switch {
		case errors.Is(err, passwordreset.ErrTooManyRequests):
			// Silently drop; the generic confirmation still renders.
			h.Log.Warn("reset request rate limited", zap.String("email", email))
		case err != nil:
			h.ErrLog.LogServerError(w, r, "create reset token", err, "Er ging iets mis. Probeer het opnieuw.", "/login/reset")
			return
		default:
			msg := mailer.BuildPasswordResetEmail(mailer.PasswordResetEmailData{
				SiteName:  viewdata.GetSiteName(ctx, h.DB),
				ResetLink: fmt.Sprintf("%s/login/reset/confirm?token=%s", h.BaseURL, token),
				ExpiresIn: formatExpiry(h.Resets.Expiry()),
			})
			msg.To = email
			if err := h.Mailer.Send(ctx, msg); err != nil {
				h.Log.Error("send reset email failed", zap.Error(err), zap.String("email", email))
			}
		}
	}

	templates.Render(w, r, "login_reset_sent", resetRequestFormData{
		BaseVM: viewdata.NewBaseVM(r, h.DB, "Wachtwoord vergeten", "/login"),
		Email:  email,
	})
}

// ServeResetConfirm validates the token from the emailed link and shows
// the new-password form for GET /login/reset/confirm.
func (h *Handler) ServeResetConfirm(w http.ResponseWriter, r *http.Request) {
	token := strings.TrimSpace(query.Get(r, "token"))
	if token == "" {
		h.renderResetInvalid(w, r)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if _, err := h.Resets.Lookup(ctx, token); err != nil {
		if !errors.Is(err, passwordreset.ErrNotFound) {
			h.Log.Error("lookup reset token", zap.Error(err))
		}
		h.renderResetInvalid(w, r)
		return
	}

	templates.Render(w, r, "login_reset_confirm", resetConfirmFormData{
		BaseVM: viewdata.NewBaseVM(r, h.DB, "Nieuw wachtwoord", "/login"),
		Token:  token,
	})
}

// HandleResetConfirm consumes the token and saves the new password for
// POST /login/reset/confirm.
func (h *Handler) HandleResetConfirm(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Ongeldige invoer.", "/login")
		return
	}

	token := strings.TrimSpace(r.FormValue("token"))
	password := r.FormValue("password")
	confirm := r.FormValue("password_confirm")

	if token == "" {
		h.renderResetInvalid(w, r)
		return
	}
	if len(password) < minPasswordLength {
		h.renderResetConfirmWithError(w, r, token,
			fmt.Sprintf("Het wachtwoord moet minimaal %d tekens lang zijn.", minPasswordLength))
		return
	}
	if password != confirm {
		h.renderResetConfirmWithError(w, r, token, "De wachtwoorden komen niet overeen.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	rec, err := h.Resets.Consume(ctx, token)
	switch {
	case errors.Is(err, passwordreset.ErrNotFound):
		h.AuditLog.PasswordResetFailed(ctx, r, "token invalid or expired")
		h.renderResetInvalid(w, r)
		return
	case err != nil:
		h.ErrLog.LogServerError(w, r, "consume reset token", err, "Er ging iets mis. Probeer het opnieuw.", "/login")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "hash password failed", err, "Er ging iets mis. Probeer het opnieuw.", "/login")
		return
	}

	if err := h.Users.UpdatePassword(ctx, rec.UserID, string(hash)); err != nil {
		h.ErrLog.LogServerError(w, r, "update password failed", err, "Er ging iets mis. Probeer het opnieuw.", "/login")
		return
	}

	h.AuditLog.PasswordResetCompleted(ctx, r, rec.UserID)

	h.Flash.Success(w, "Je wachtwoord is gewijzigd. Je kunt nu inloggen.")
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

func (h *Handler) renderResetInvalid(w http.ResponseWriter, r *http.Request) {
	templates.Render(w, r, "login_reset_invalid", resetRequestFormData{
		BaseVM: viewdata.NewBaseVM(r, h.DB, "Link verlopen", "/login"),
	})
}

func (h *Handler) renderResetConfirmWithError(w http.ResponseWriter, r *http.Request, token, msg string) {
	templates.Render(w, r, "login_reset_confirm", resetConfirmFormData{
		BaseVM: viewdata.NewBaseVM(r, h.DB, "Nieuw wachtwoord", "/login"),
		Error:  msg,
		Token:  token,
	})
}
