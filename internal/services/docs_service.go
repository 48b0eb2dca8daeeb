package services

import (
	"bytes"
	"context"
	"fmt"

	"bikerental/internal/domain"
	"bikerental/internal/repositories"
	"bikerental/internal/utils"

	"github.com/phpdave11/gofpdf"
)

// DocsService renders a PDF receipt for a reservation.
type DocsService struct {
	Reservations ReservationStore
	Bikes        BikeStore
	Users        UserStore
	RequestID    string
	Loader       func(ctx context.Context, reservationID domain.ID) (receiptData, error)
}

type receiptData struct {
	ReservationID domain.ID
	BikeID        domain.ID
	Model         string
	Color         string
	Location      string
	Username      string
	Range         domain.DateRange
	Rating        int
}

func (s DocsService) ReservationReceipt(ctx context.Context, reservationID domain.ID) ([]byte, string, error) {
	data, err := s.loadReceiptData(ctx, reservationID)
	if err != nil {
		return nil, "", asDomainErr("failed to load reservation", err)
	}
	utils.LogEvent(s.RequestID, "docs", "generate_receipt", fmt.Sprintf("reservation_id=%d", reservationID))
	pdf, name, err := buildReceiptPDF(data)
	if err != nil {
		return nil, "", domain.InternalError{Msg: "failed to render receipt", Err: err}
	}
	return pdf, name, nil
}

func (s DocsService) loadReceiptData(ctx context.Context, reservationID domain.ID) (receiptData, error) {
	if s.Loader != nil {
		return s.Loader(ctx, reservationID)
	}
	var out receiptData
	res, err := s.reservations().GetByID(ctx, reservationID)
	if err != nil {
		return out, err
	}
	out.ReservationID = res.ID
	out.BikeID = res.BikeID
	out.Range = res.Range()
	out.Rating = res.Rating

	bike, err := s.bikes().GetByID(ctx, res.BikeID)
	if err != nil {
		return out, err
	}
	out.Model = bike.Model
	out.Color = bike.Color
	out.Location = bike.Location

	// a deleted user would have cascaded the reservation away; tolerate a race anyway
	if u, err := s.users().GetByID(ctx, res.UserID); err == nil {
		out.Username = u.Username
	}
	return out, nil
}

func buildReceiptPDF(d receiptData) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Reservation receipt", false)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "RESERVATION RECEIPT")
	pdf.Ln(12)

	rating := "not rated"
	if d.Rating > 0 {
		rating = fmt.Sprintf("%d / %d", d.Rating, domain.MaxRating)
	}

	pdf.SetFont("Helvetica", "", 12)
	lines := []string{
		fmt.Sprintf("Reservation : #%d", d.ReservationID),
		fmt.Sprintf("Renter      : %s", utils.Fallback(d.Username, "-")),
		fmt.Sprintf("Bike        : #%d %s", d.BikeID, utils.Fallback(d.Model, "-")),
		fmt.Sprintf("Color       : %s", utils.Fallback(d.Color, "-")),
		fmt.Sprintf("Location    : %s", utils.Fallback(d.Location, "-")),
		fmt.Sprintf("From        : %s", d.Range.From),
		fmt.Sprintf("To          : %s", d.Range.To),
		fmt.Sprintf("Days        : %d", d.Range.Days()),
		fmt.Sprintf("Rating      : %s", rating),
		fmt.Sprintf("Issued      : %s UTC", utils.FormatDateTime(utils.NowUTC())),
	}
	for _, s := range lines {
		pdf.Cell(0, 7, s)
		pdf.Ln(7)
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 6, "Pick-up and return days are both included in the reservation.", "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("RECEIPT_%d_%s.pdf", d.ReservationID, utils.SafeFilenamePart(d.Username))
	return buf.Bytes(), filename, nil
}

func (s DocsService) reservations() ReservationStore {
	if s.Reservations != nil {
		return s.Reservations
	}
	return repositories.ReservationRepository{}
}

func (s DocsService) bikes() BikeStore {
	if s.Bikes != nil {
		return s.Bikes
	}
	return repositories.BikeRepository{}
}

func (s DocsService) users() UserStore {
	if s.Users != nil {
		return s.Users
	}
	return repositories.UserRepository{}
}
