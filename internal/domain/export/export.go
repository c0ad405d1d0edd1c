// Package export renders a session's itinerary as a printable PDF.
package export

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"regexp"
	"strings"

	"github.com/phpdave11/gofpdf"
	"github.com/skip2/go-qrcode"

	"github.com/FACorreiaa/roammate-api/internal/domain/session"
	"github.com/FACorreiaa/roammate-api/internal/types"
	"github.com/FACorreiaa/roammate-api/pkg/interceptors"
)

const (
	mapsSearchURL = "https://www.google.com/maps/search/?api=1&query="
	qrSize        = 256
)

var nonSlug = regexp.MustCompile(`[^a-z0-9]+`)

// MapsLink points at the destination on Google Maps.
func MapsLink(destination string) string {
	return mapsSearchURL + url.QueryEscape(destination)
}

// RenderItinerary writes it to w as an A4 PDF with a QR code linking to the
// destination on a map.
func RenderItinerary(w io.Writer, it *types.Itinerary) error {
	if it == nil {
		return types.ErrNoItinerary
	}

	qrPNG, err := qrcode.Encode(MapsLink(it.Destination), qrcode.Medium, qrSize)
	if err != nil {
		return fmt.Errorf("failed to generate QR code: %w", err)
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle(tr(it.Destination+" itinerary"), false)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 20)
	pdf.Cell(140, 12, tr(it.Destination))
	pdf.Ln(14)

	imageOpts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("maps-qr", imageOpts, bytes.NewReader(qrPNG))
	pdf.ImageOptions("maps-qr", 160, 10, 35, 35, false, imageOpts, 0, "")

	pdf.SetFont("Arial", "I", 11)
	pdf.MultiCell(140, 6, tr(it.Summary), "", "L", false)
	pdf.Ln(6)

	for _, day := range it.Days {
		pdf.SetFont("Arial", "B", 14)
		pdf.CellFormat(0, 9, tr(fmt.Sprintf("Day %d: %s", day.Day, day.Theme)), "B", 1, "L", false, 0, "")
		pdf.Ln(2)

		for _, a := range day.Activities {
			pdf.SetFont("Arial", "B", 11)
			heading := fmt.Sprintf("%s  %s", a.Time, a.Activity)
			if a.EstimatedCost != "" {
				heading += fmt.Sprintf(" (%s)", a.EstimatedCost)
			}
			pdf.MultiCell(0, 6, tr(heading), "", "L", false)

			pdf.SetFont("Arial", "", 10)
			pdf.MultiCell(0, 5, tr(fmt.Sprintf("%s | %s", a.Location, a.Type)), "", "L", false)
			pdf.MultiCell(0, 5, tr(a.Description), "", "L", false)
			pdf.Ln(3)
		}
		pdf.Ln(4)
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("failed to render PDF: %w", err)
	}
	return nil
}

func filename(destination string) string {
	slug := strings.Trim(nonSlug.ReplaceAllString(strings.ToLower(destination), "-"), "-")
	if slug == "" {
		return "itinerary.pdf"
	}
	return "itinerary-" + slug + ".pdf"
}

// NewHandler serves the current session's itinerary as a PDF download.
func NewHandler(svc session.Service, logger *slog.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.Header().Set("Allow", http.MethodGet)
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}

		id, ok := interceptors.SessionIDFromContext(r.Context())
		if !ok || id == "" {
			http.Error(w, "session required", http.StatusUnauthorized)
			return
		}

		snap, err := svc.Snapshot(r.Context(), id)
		if err != nil {
			logger.ErrorContext(r.Context(), "failed to load session for export",
				slog.String("session_id", id), slog.Any("error", err))
			http.Error(w, "session unavailable", http.StatusServiceUnavailable)
			return
		}

		var buf bytes.Buffer
		if err := RenderItinerary(&buf, snap.Itinerary); err != nil {
			if errors.Is(err, types.ErrNoItinerary) {
				http.Error(w, "no itinerary to export", http.StatusNotFound)
				return
			}
			logger.ErrorContext(r.Context(), "failed to export itinerary",
				slog.String("session_id", id), slog.Any("error", err))
			http.Error(w, "failed to generate PDF", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", `attachment; filename="`+filename(snap.Itinerary.Destination)+`"`)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(buf.Bytes())
	})
}
