package services

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"

	"luxetravel/ledger"
	"luxetravel/travel"
)

// BookingPDF renders a confirmation sheet for one ledger record and returns
// the raw bytes.
func BookingPDF(rec ledger.BookingRecord, generatedAt time.Time) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(20, 20, 20)

	// ── Footer ────────────────────────────────────────────────
	pdf.SetFooterFunc(func() {
		pdf.SetY(-18)
		pdf.SetDrawColor(200, 200, 200)
		pdf.SetLineWidth(0.3)
		pdf.Line(20, pdf.GetY(), 190, pdf.GetY())
		pdf.SetFont("Helvetica", "I", 8)
		pdf.SetTextColor(150, 150, 150)
		pdf.CellFormat(0, 8,
			fmt.Sprintf("LuxeTravel AI Concierge - generated %s - page %d",
				generatedAt.UTC().Format("02 Jan 2006 15:04"), pdf.PageNo()),
			"", 0, "C", false, 0, "")
	})

	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	// ── Header Bar ───────────────────────────────────────────
	pdf.SetFillColor(30, 27, 75) // indigo-950
	pdf.Rect(0, 0, 210, 28, "F")
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 18)
	pdf.SetXY(20, 8)
	pdf.CellFormat(100, 10, "LuxeTravel", "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(212, 168, 67) // gold
	pdf.SetXY(20, 18)
	pdf.CellFormat(170, 6, "Booking Confirmation", "", 1, "L", false, 0, "")

	pdf.SetY(35)
	pdf.SetTextColor(0, 0, 0)

	sectionHeader := func(title string) {
		pdf.SetFillColor(30, 27, 75)
		pdf.SetTextColor(255, 255, 255)
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(170, 8, "  "+title, "", 1, "L", true, 0, "")
		pdf.SetTextColor(0, 0, 0)
		pdf.Ln(2)
	}

	row := func(label, value string) {
		pdf.SetFont("Helvetica", "", 10)
		pdf.SetTextColor(100, 100, 100)
		pdf.CellFormat(45, 7, label, "", 0, "L", false, 0, "")
		pdf.SetTextColor(20, 20, 20)
		pdf.SetFont("Helvetica", "B", 10)
		pdf.MultiCell(125, 7, tr(value), "", "L", false)
	}

	// ── Reservation ──────────────────────────────────────────
	sectionHeader("Reservation")
	row("Reference", rec.ID)
	row("Type", typeLabel(rec.Type))
	row("Status", string(rec.Status))
	row("Booked", rec.Date.UTC().Format("02 Jan 2006, 15:04 UTC"))
	pdf.Ln(4)

	// ── Details ──────────────────────────────────────────────
	switch d := rec.Details.(type) {
	case ledger.FlightDetails:
		sectionHeader("Flight")
		row("Airline", d.Airline)
		row("Flight Number", d.FlightNumber)
		row("Departure", endpointLine(d.Departure))
		row("Arrival", endpointLine(d.Arrival))
		row("Duration", d.Duration)
		row("Price", d.Price)
		if d.Link != travel.Unavailable && d.Link != "" {
			row("Link", d.Link)
		}

	case ledger.HotelDetails:
		sectionHeader("Hotel")
		row("Hotel", d.Name)
		row("Location", d.Location)
		row("Price", d.PricePerNight+" per night")
		row("Rating", d.Rating)
		if len(d.Amenities) > 0 {
			row("Amenities", strings.Join(d.Amenities, ", "))
		}
		if d.Link != travel.Unavailable && d.Link != "" {
			row("Link", d.Link)
		}

	case ledger.ItineraryDetails:
		sectionHeader("Itinerary")
		row("Request", d.Prompt)
		if d.Itinerary != "" {
			pdf.Ln(2)
			pdf.SetFont("Helvetica", "", 10)
			pdf.SetTextColor(40, 40, 40)
			pdf.MultiCell(170, 5, tr(d.Itinerary), "", "L", false)
		}

	default:
		return nil, fmt.Errorf("booking %s has no details", rec.ID)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("PDF output failed: %w", err)
	}
	return buf.Bytes(), nil
}

func typeLabel(t ledger.Type) string {
	switch t {
	case ledger.TypeFlight:
		return "Flight"
	case ledger.TypeHotel:
		return "Hotel"
	case ledger.TypeItinerary:
		return "Itinerary"
	}
	return string(t)
}

func endpointLine(raw string) string {
	ep := travel.SplitTimeLocation(raw)
	line := ep.Time + ", " + ep.Location
	if ep.AirportCode != "" {
		line += " (" + ep.AirportCode + ")"
	}
	return line
}
