// internal/app/features/importexport/import.go
package importexport

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/dalemusser/waffle/pantry/text"
	"go.uber.org/zap"

	"github.com/mefen/volunteerhub/internal/app/store/audit"
	"github.com/mefen/volunteerhub/internal/app/system/normalize"
	"github.com/mefen/volunteerhub/internal/app/system/timeouts"
	"github.com/mefen/volunteerhub/internal/domain/models"
)

// Upload limits for the roster CSV.
const (
	maxUploadSize = 5 << 20 // 5 MB
	maxRows       = 5000
)

type rowError struct {
	Line   int
	Reason string
}

type parsedRoster struct {
	Volunteers []models.Volunteer
	Errors     []rowError
}

// HandleImport processes POST /import-export/import. Expected columns:
// voornaam, achternaam, telefoonnummer, e-mailadres (optional). A header
// row is detected and skipped; rows matching an existing volunteer are
// skipped, not duplicated.
func (h *Handler) HandleImport(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		h.Flash.Error(w, "Het bestand is te groot of ongeldig (maximaal 5 MB).")
		http.Redirect(w, r, "/import-export", http.StatusSeeOther)
		return
	}

	file, _, err := r.FormFile("roster")
	if err != nil {
		h.Flash.Error(w, "Kies een CSV-bestand om te importeren.")
		http.Redirect(w, r, "/import-export", http.StatusSeeOther)
		return
	}
	defer file.Close()

	parsed, err := parseRosterCSV(file)
	if err != nil {
		h.Flash.Error(w, "Het bestand kon niet worden gelezen als CSV.")
		http.Redirect(w, r, "/import-export", http.StatusSeeOther)
		return
	}
	if len(parsed.Volunteers) == 0 && len(parsed.Errors) == 0 {
		h.Flash.Error(w, "Het bestand bevat geen rijen.")
		http.Redirect(w, r, "/import-export", http.StatusSeeOther)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	existing, err := h.existingKeys(ctx)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "load volunteers for import dedupe", err, "De import is niet gelukt. Probeer het opnieuw.", "/import-export")
		return
	}

	imported, skippedDup := 0, 0
	for _, v := range parsed.Volunteers {
		key := rosterKey(v.FirstName, v.LastName, v.PhoneNumber)
		if existing[key] {
			skippedDup++
			continue
		}
		if _, err := h.Volunteers.Create(ctx, v); err != nil {
			h.Log.Warn("import volunteer row", zap.String("name", v.FirstName+" "+v.LastName), zap.Error(err))
			continue
		}
		existing[key] = true
		imported++
	}

	h.AuditLog.Action(ctx, r, audit.EventRosterImported, nil,
		fmt.Sprintf("Vrijwilligerslijst geïmporteerd: %d toegevoegd, %d overgeslagen, %d ongeldig",
			imported, skippedDup, len(parsed.Errors)))

	msg := fmt.Sprintf("%d vrijwilliger(s) geïmporteerd.", imported)
	if skippedDup > 0 {
		msg += fmt.Sprintf(" %d bestaande overgeslagen.", skippedDup)
	}
	if n := len(parsed.Errors); n > 0 {
		first := parsed.Errors[0]
		msg += fmt.Sprintf(" %d rij(en) ongeldig (eerste: regel %d, %s).", n, first.Line, first.Reason)
		h.Flash.Error(w, msg)
	} else {
		h.Flash.Success(w, msg)
	}
	http.Redirect(w, r, "/import-export", http.StatusSeeOther)
}

// existingKeys builds the dedupe set from the volunteers already stored.
func (h *Handler) existingKeys(ctx context.Context) (map[string]bool, error) {
	vols, err := h.Volunteers.List(ctx, "")
	if err != nil {
		return nil, err
	}
	keys := make(map[string]bool, len(vols))
	for _, v := range vols {
		keys[rosterKey(v.FirstName, v.LastName, v.PhoneNumber)] = true
	}
	return keys, nil
}

func rosterKey(first, last, phone string) string {
	return text.Fold(first + " " + last + " " + phone)
}

func parseRosterCSV(r io.Reader) (parsedRoster, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	var result parsedRoster
	line := 0
	for {
		rec, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			result.Errors = append(result.Errors, rowError{Line: line, Reason: "rij kon niet worden gelezen"})
			continue
		}
		if len(rec) == 0 {
			continue
		}
		rec[0] = strings.TrimPrefix(rec[0], "\uFEFF")

		if line == 1 && isHeaderRow(rec) {
			continue
		}
		if len(result.Volunteers) >= maxRows {
			result.Errors = append(result.Errors, rowError{Line: line, Reason: "maximum aantal rijen bereikt"})
			break
		}

		v, reason := parseRosterRow(rec)
		if reason != "" {
			result.Errors = append(result.Errors, rowError{Line: line, Reason: reason})
			continue
		}
		result.Volunteers = append(result.Volunteers, v)
	}
	return result, nil
}

func isHeaderRow(rec []string) bool {
	first := strings.ToLower(strings.TrimSpace(rec[0]))
	return first == "voornaam" || first == "first_name" || first == "firstname"
}

func parseRosterRow(rec []string) (models.Volunteer, string) {
	if len(rec) < 3 {
		return models.Volunteer{}, "te weinig kolommen"
	}

	v := models.Volunteer{
		FirstName:   normalize.Name(rec[0]),
		LastName:    normalize.Name(rec[1]),
		PhoneNumber: normalize.Phone(rec[2]),
	}
	if len(rec) > 3 {
		v.Email = normalize.Email(rec[3])
	}

	switch {
	case v.FirstName == "":
		return models.Volunteer{}, "voornaam ontbreekt"
	case v.LastName == "":
		return models.Volunteer{}, "achternaam ontbreekt"
	case v.PhoneNumber == "":
		return models.Volunteer{}, "telefoonnummer ontbreekt"
	}
	return v, ""
}
