// internal/app/features/importexport/page.go
package importexport

import (
	"net/http"

	"github.com/dalemusser/waffle/pantry/templates"

	"github.com/mefen/volunteerhub/internal/app/system/flash"
	"github.com/mefen/volunteerhub/internal/app/system/viewdata"
)

type pageData struct {
	viewdata.BaseVM
	Notice string
	Error  string
}

// ServePage renders the import/export screen for GET /import-export.
func (h *Handler) ServePage(w http.ResponseWriter, r *http.Request) {
	data := pageData{BaseVM: viewdata.NewBaseVM(r, h.DB, "Importeren en exporteren", "/")}
	if msg, ok := h.Flash.Pop(w, r); ok {
		if msg.Kind == flash.KindSuccess {
			data.Notice = msg.Text
		} else {
			data.Error = msg.Text
		}
	}
	templates.Render(w, r, "importexport", data)
}
