// internal/app/features/mosque/mosque.go
package mosque

import (
	"context"
	"net/http"

	"github.com/dalemusser/waffle/pantry/templates"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/mefen/volunteerhub/internal/app/store/audit"
	"github.com/mefen/volunteerhub/internal/app/system/auth"
	"github.com/mefen/volunteerhub/internal/app/system/flash"
	"github.com/mefen/volunteerhub/internal/app/system/formutil"
	"github.com/mefen/volunteerhub/internal/app/system/inputval"
	"github.com/mefen/volunteerhub/internal/app/system/normalize"
	"github.com/mefen/volunteerhub/internal/app/system/timeouts"
	"github.com/mefen/volunteerhub/internal/app/system/viewdata"
	"github.com/mefen/volunteerhub/internal/domain/models"
)

type infoInput struct {
	MenAddress   string `validate:"required,max=200" label:"Adres mannen"`
	MenCity      string `validate:"required,max=100" label:"Plaats mannen"`
	WomenAddress string `validate:"required,max=200" label:"Adres vrouwen"`
	WomenCity    string `validate:"required,max=100" label:"Plaats vrouwen"`
	Phone        string `validate:"required,max=30" label:"Telefoonnummer"`
	Email        string `validate:"required,email,max=254" label:"E-mailadres"`
}

type viewData struct {
	viewdata.BaseVM
	Notice string
	Info   models.MosqueInfo
}

type formData struct {
	formutil.Base
	Info infoInput
}

// ServeInfo renders the contact card for GET /mosque.
func (h *Handler) ServeInfo(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	info, err := h.Mosque.Get(ctx)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "load mosque info", err, "De gegevens konden niet worden geladen.", "/")
		return
	}

	data := viewData{
		BaseVM: viewdata.NewBaseVM(r, h.DB, "Moskee-informatie", "/"),
		Info:   info,
	}
	if msg, ok := h.Flash.Pop(w, r); ok && msg.Kind == flash.KindSuccess {
		data.Notice = msg.Text
	}

	templates.Render(w, r, "mosque_info", data)
}

// ServeEdit renders the admin edit form.
func (h *Handler) ServeEdit(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	info, err := h.Mosque.Get(ctx)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "load mosque info", err, "De gegevens konden niet worden geladen.", "/mosque")
		return
	}

	data := formData{Info: infoInput{
		MenAddress:   info.MenAddress,
		MenCity:      info.MenCity,
		WomenAddress: info.WomenAddress,
		WomenCity:    info.WomenCity,
		Phone:        info.Phone,
		Email:        info.Email,
	}}
	formutil.SetBase(&data.Base, r, "Moskee-informatie bewerken", "/mosque")
	templates.Render(w, r, "mosque_form", data)
}

// HandleEdit processes the admin edit form POST.
func (h *Handler) HandleEdit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Ongeldige invoer.", "/mosque")
		return
	}

	in := infoInput{
		MenAddress:   normalize.Name(r.FormValue("men_address")),
		MenCity:      normalize.Name(r.FormValue("men_city")),
		WomenAddress: normalize.Name(r.FormValue("women_address")),
		WomenCity:    normalize.Name(r.FormValue("women_city")),
		Phone:        normalize.Phone(r.FormValue("phone")),
		Email:        normalize.Email(r.FormValue("email")),
	}

	if res := inputval.Validate(in); res.HasErrors() {
		data := formData{Info: in}
		formutil.SetBase(&data.Base, r, "Moskee-informatie bewerken", "/mosque")
		data.SetError(res.First())
		templates.Render(w, r, "mosque_form", data)
		return
	}

	info := models.MosqueInfo{
		MenAddress:   in.MenAddress,
		MenCity:      in.MenCity,
		WomenAddress: in.WomenAddress,
		WomenCity:    in.WomenCity,
		Phone:        in.Phone,
		Email:        in.Email,
	}
	if u, ok := auth.CurrentUser(r); ok {
		if uid, err := primitive.ObjectIDFromHex(u.ID); err == nil {
			info.UpdatedByID = &uid
		}
		info.UpdatedByName = u.Name
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if err := h.Mosque.Save(ctx, info); err != nil {
		h.ErrLog.LogServerError(w, r, "save mosque info", err, "Opslaan is niet gelukt. Probeer het opnieuw.", "/mosque")
		return
	}

	h.AuditLog.Action(ctx, r, audit.EventMosqueInfoUpdated, nil, "Moskee-informatie bijgewerkt")

	h.Flash.Success(w, "De moskee-informatie is bijgewerkt.")
	http.Redirect(w, r, "/mosque", http.StatusSeeOther)
}
