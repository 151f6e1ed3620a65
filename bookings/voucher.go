package bookings

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/Atiqul-Imon/jhatika-safar-sub000/apperr"
	"github.com/Atiqul-Imon/jhatika-safar-sub000/models"
	"github.com/Atiqul-Imon/jhatika-safar-sub000/utils"

	"github.com/julienschmidt/httprouter"
	"github.com/phpdave11/gofpdf"
	"github.com/skip2/go-qrcode"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// voucherPayload returns the QR content: bookingid|vouchercode|timestamp|signature.
// The HMAC lets the office verify a presented voucher without a lookup.
func voucherPayload(bookingID, voucherCode string, issuedAt time.Time, secret []byte) string {
	data := fmt.Sprintf("%s|%s|%d", bookingID, voucherCode, issuedAt.Unix())
	h := hmac.New(sha256.New, secret)
	h.Write([]byte(data))
	sig := base64.StdEncoding.EncodeToString(h.Sum(nil))
	return data + "|" + sig
}

// VerifyVoucherPayload checks the signature on a scanned payload and returns
// the booking id it was issued for.
func VerifyVoucherPayload(payload string, secret []byte) (string, bool) {
	parts := strings.SplitN(payload, "|", 4)
	if len(parts) != 4 {
		return "", false
	}
	data := strings.Join(parts[:3], "|")
	h := hmac.New(sha256.New, secret)
	h.Write([]byte(data))
	want := base64.StdEncoding.EncodeToString(h.Sum(nil))
	if !hmac.Equal([]byte(want), []byte(parts[3])) {
		return "", false
	}
	return parts[0], true
}

// voucherDates formats the travel date range. Creation sets both dates
// together, but a document carrying only one (hand-edited, partial import)
// must not take the handler down, so both are checked.
func voucherDates(b models.Booking) (string, bool) {
	if b.StartDate == nil || b.EndDate == nil {
		return "", false
	}
	return fmt.Sprintf("%s to %s",
		b.StartDate.Format("02 Jan 2006"),
		b.EndDate.Format("02 Jan 2006")), true
}

// Voucher handles GET /api/admin/bookings/:bookingid/voucher. Streams a
// PDF with the booking summary and a signed QR code.
func (h *Handler) Voucher(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()
	id := ps.ByName("bookingid")

	var booking models.Booking
	err := h.DB.Bookings.FindOne(ctx, bson.M{"bookingid": id}).Decode(&booking)
	if err == mongo.ErrNoDocuments {
		utils.RespondWithError(w, apperr.NotFound("booking not found"))
		return
	}
	if err != nil {
		h.Logger.Error("booking lookup failed", "bookingid", id, "error", err)
		utils.RespondWithError(w, apperr.Store(err))
		return
	}

	payload := voucherPayload(booking.BookingID, booking.VoucherCode, time.Now(), h.VoucherSecret)
	qrPNG, err := qrcode.Encode(payload, qrcode.Medium, 256)
	if err != nil {
		h.Logger.Error("voucher qr failed", "bookingid", id, "error", err)
		utils.RespondWithError(w, apperr.Store(err))
		return
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 18)
	pdf.Cell(0, 12, "Jhatika Safar - Booking Voucher")
	pdf.Ln(16)

	pdf.SetFont("Arial", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Booking: %s", booking.BookingID))
	pdf.Ln(8)
	pdf.Cell(0, 8, fmt.Sprintf("Tour: %s", booking.TourTitle))
	pdf.Ln(8)
	pdf.Cell(0, 8, fmt.Sprintf("Guest: %s (%s)", booking.CustomerName, booking.CustomerPhone))
	pdf.Ln(8)
	pdf.Cell(0, 8, fmt.Sprintf("Travellers: %d", booking.NumberOfPeople))
	pdf.Ln(8)
	if dates, ok := voucherDates(booking); ok {
		pdf.Cell(0, 8, "Dates: "+dates)
		pdf.Ln(8)
	}
	pdf.Cell(0, 8, fmt.Sprintf("Total: BDT %.0f", booking.TotalPrice))
	pdf.Ln(8)
	pdf.Cell(0, 8, fmt.Sprintf("Status: %s / payment %s", booking.Status, booking.PaymentStatus))
	pdf.Ln(12)

	imageOpts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("qr", imageOpts, bytes.NewReader(qrPNG))
	pdf.ImageOptions("qr", 150, 40, 40, 40, false, imageOpts, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		h.Logger.Error("voucher pdf failed", "bookingid", id, "error", err)
		utils.RespondWithError(w, apperr.Store(err))
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=voucher-"+booking.BookingID+".pdf")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}
