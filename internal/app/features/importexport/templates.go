// internal/app/features/importexport/templates.go
package importexport

import (
	"embed"

	"github.com/dalemusser/waffle/pantry/templates"
)

//go:embed templates/*.gohtml
var FS embed.FS

func init() {
	templates.Register(templates.Set{
		Name:     "importexport",
		FS:       FS,
		Patterns: []string{"templates/*.gohtml"},
	})
}
