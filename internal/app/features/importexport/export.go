// internal/app/features/importexport/export.go
package importexport

import (
	"context"
	"encoding/csv"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dalemusser/waffle/pantry/query"
	"github.com/go-pdf/fpdf"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/mefen/volunteerhub/internal/app/store/audit"
	"github.com/mefen/volunteerhub/internal/app/system/timeouts"
	"github.com/mefen/volunteerhub/internal/domain/models"
)

// Brand color used in the PDF header band.
const (
	brandR = 150
	brandG = 62
	brandB = 86
)

var csvHeader = []string{"Voornaam", "Achternaam", "Telefoonnummer", "E-mailadres"}

// loadRoster returns the volunteers to export. An optional ids query
// parameter (comma-separated hex ids) restricts the export to a selection;
// unknown ids are simply absent from the result.
func (h *Handler) loadRoster(ctx context.Context, r *http.Request) ([]models.Volunteer, error) {
	raw := strings.TrimSpace(query.Get(r, "ids"))
	if raw == "" {
		return h.Volunteers.List(ctx, "")
	}

	var ids []primitive.ObjectID
	for _, part := range strings.Split(raw, ",") {
		id, err := primitive.ObjectIDFromHex(strings.TrimSpace(part))
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	return h.Volunteers.GetByIDs(ctx, ids)
}

// ServeCSV streams the volunteer roster for GET /import-export/volunteers.csv.
func (h *Handler) ServeCSV(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	vols, err := h.loadRoster(ctx, r)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list volunteers for CSV", err, "De export is niet gelukt.", "/import-export")
		return
	}

	filename := "vrijwilligers_" + time.Now().UTC().Format("20060102_150405") + ".csv"
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, url.PathEscape(filename)))

	// UTF-8 BOM so Excel treats it as Unicode
	_, _ = w.Write([]byte{0xEF, 0xBB, 0xBF})

	cw := csv.NewWriter(w)
	cw.UseCRLF = true
	defer cw.Flush()

	_ = cw.Write(csvHeader)
	for _, v := range vols {
		_ = cw.Write([]string{v.FirstName, v.LastName, v.PhoneNumber, v.Email})
	}

	h.AuditLog.Action(ctx, r, audit.EventRosterExported, nil,
		fmt.Sprintf("Vrijwilligerslijst geëxporteerd als CSV (%d rijen)", len(vols)))
	h.Log.Info("volunteer CSV exported", zap.Int("rows", len(vols)))
}

// ServePDF streams the roster as a printable PDF for
// GET /import-export/volunteers.pdf.
func (h *Handler) ServePDF(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	vols, err := h.loadRoster(ctx, r)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list volunteers for PDF", err, "De export is niet gelukt.", "/import-export")
		return
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Vrijwilligerslijst", true)
	pdf.SetAutoPageBreak(true, 20)

	colWidths := []float64{40, 45, 40, 65}

	drawHeader := func() {
		pdf.SetFillColor(brandR, brandG, brandB)
		pdf.SetTextColor(255, 255, 255)
		pdf.SetFont("Helvetica", "B", 9)
		for i, head := range csvHeader {
			pdf.CellFormat(colWidths[i], 8, head, "1", 0, "L", true, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetTextColor(0, 0, 0)
		pdf.SetFont("Helvetica", "", 9)
	}

	pdf.SetHeaderFunc(func() {
		pdf.SetFillColor(brandR, brandG, brandB)
		pdf.Rect(0, 0, 210, 16, "F")
		pdf.SetY(4)
		pdf.SetTextColor(255, 255, 255)
		pdf.SetFont("Helvetica", "B", 13)
		pdf.CellFormat(0, 8, "MEFEN Vrijwilligerslijst", "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 9)
		pdf.CellFormat(0, 8, time.Now().Format("02-01-2006"), "", 0, "R", false, 0, "")
		pdf.Ln(14)
	})
	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetTextColor(120, 120, 120)
		pdf.SetFont("Helvetica", "", 8)
		pdf.CellFormat(0, 10, fmt.Sprintf("Pagina %d", pdf.PageNo()), "", 0, "C", false, 0, "")
	})

	pdf.AddPage()
	drawHeader()
	for _, v := range vols {
		if pdf.GetY() > 270 {
			pdf.AddPage()
			drawHeader()
		}
		cells := []string{v.FirstName, v.LastName, v.PhoneNumber, v.Email}
		for i, cell := range cells {
			pdf.CellFormat(colWidths[i], 7, cell, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}
	if len(vols) == 0 {
		pdf.CellFormat(190, 7, "Er zijn nog geen vrijwilligers.", "1", 0, "L", false, 0, "")
		pdf.Ln(-1)
	}

	filename := "vrijwilligers_" + time.Now().UTC().Format("20060102_150405") + ".pdf"
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, url.PathEscape(filename)))

	if err := pdf.Output(w); err != nil {
		h.Log.Error("write volunteer PDF", zap.Error(err))
		return
	}

	h.AuditLog.Action(ctx, r, audit.EventRosterExported, nil,
		fmt.Sprintf("Vrijwilligerslijst geëxporteerd als PDF (%d rijen)", len(vols)))
	h.Log.Info("volunteer PDF exported", zap.Int("rows", len(vols)))
}
