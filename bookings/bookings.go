package bookings

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/Atiqul-Imon/jhatika-safar-sub000/apperr"
	"github.com/Atiqul-Imon/jhatika-safar-sub000/db"
	"github.com/Atiqul-Imon/jhatika-safar-sub000/models"
	"github.com/Atiqul-Imon/jhatika-safar-sub000/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Booking reads change with every admin action; keep intermediary caching
// to seconds.
const bookingCacheControl = "private, max-age=10"

type Handler struct {
	DB            *db.Database
	Logger        *slog.Logger
	VoucherSecret []byte
}

func NewHandler(database *db.Database, logger *slog.Logger, voucherSecret []byte) *Handler {
	return &Handler{DB: database, Logger: logger, VoucherSecret: voucherSecret}
}

// CreateBooking handles POST /api/bookings, the public intake flow.
func (h *Handler) CreateBooking(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var in BookingInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		utils.RespondWithError(w, apperr.Validation("", "invalid request body"))
		return
	}

	if err := in.validateRequired(); err != nil {
		utils.RespondWithError(w, err)
		return
	}

	var tour models.Tour
	err := h.DB.Tours.FindOne(ctx, bson.M{"tourid": in.TourID}).Decode(&tour)
	if err == mongo.ErrNoDocuments {
		utils.RespondWithError(w, apperr.NotFound("tour not found"))
		return
	}
	if err != nil {
		h.Logger.Error("tour lookup failed", "tourid", in.TourID, "error", err)
		utils.RespondWithError(w, apperr.Store(err))
		return
	}

	booking, err := buildBooking(in, tour, time.Now())
	if err != nil {
		utils.RespondWithError(w, err)
		return
	}

	if _, err := h.DB.Bookings.InsertOne(ctx, booking); err != nil {
		h.Logger.Error("booking insert failed", "error", err)
		utils.RespondWithError(w, apperr.Store(err))
		return
	}

	h.Logger.Info("booking created",
		"bookingid", booking.BookingID,
		"tourid", booking.TourID,
		"people", booking.NumberOfPeople,
		"total", booking.TotalPrice,
	)
	utils.RespondWithJSON(w, http.StatusCreated, utils.M{"success": true, "data": booking})
}

// ListBookings handles GET /api/admin/bookings.
func (h *Handler) ListBookings(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	q := utils.ParseQueryOptions(r, "created_at")
	params := r.URL.Query()

	filter := bson.M{}
	if status := params.Get("status"); status != "" {
		filter["status"] = status
	}
	if payment := params.Get("payment_status"); payment != "" {
		filter["payment_status"] = payment
	}
	if tourID := params.Get("tourid"); tourID != "" {
		filter["tourid"] = tourID
	}
	if q.Search != "" {
		filter["$or"] = []bson.M{
			{"customer_name": bson.M{"$regex": q.Search, "$options": "i"}},
			{"customer_phone": bson.M{"$regex": q.Search, "$options": "i"}},
			{"tour_title": bson.M{"$regex": q.Search, "$options": "i"}},
		}
	}

	total, err := h.DB.Bookings.CountDocuments(ctx, filter)
	if err != nil {
		h.Logger.Error("booking count failed", "error", err)
		utils.RespondWithError(w, apperr.Store(err))
		return
	}

	opts := options.Find().
		SetSort(bson.D{{Key: q.Sort, Value: q.Order}}).
		SetSkip(q.Skip()).
		SetLimit(int64(q.Limit))

	list, err := utils.FindAndDecode[models.Booking](ctx, h.DB.Bookings, filter, opts)
	if err != nil {
		h.Logger.Error("booking list failed", "error", err)
		utils.RespondWithError(w, apperr.Store(err))
		return
	}

	w.Header().Set("Cache-Control", bookingCacheControl)
	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"success":    true,
		"data":       list,
		"pagination": utils.NewPagination(q.Page, q.Limit, total),
	})
}

// GetBooking handles GET /api/admin/bookings/:bookingid.
func (h *Handler) GetBooking(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var booking models.Booking
	err := h.DB.Bookings.FindOne(ctx, bson.M{"bookingid": ps.ByName("bookingid")}).Decode(&booking)
	if err == mongo.ErrNoDocuments {
		utils.RespondWithError(w, apperr.NotFound("booking not found"))
		return
	}
	if err != nil {
		h.Logger.Error("booking lookup failed", "error", err)
		utils.RespondWithError(w, apperr.Store(err))
		return
	}

	w.Header().Set("Cache-Control", bookingCacheControl)
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "data": booking})
}

// UpdateBooking handles PUT /api/admin/bookings/:bookingid. Patches the
// given fields and bumps the modification timestamp; the total price is
// never recomputed, even if the tour's price has changed since.
func (h *Handler) UpdateBooking(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()
	id := ps.ByName("bookingid")

	var in BookingUpdate
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		utils.RespondWithError(w, apperr.Validation("", "invalid request body"))
		return
	}

	set, err := buildPatch(in, time.Now())
	if err != nil {
		utils.RespondWithError(w, err)
		return
	}

	res, err := h.DB.Bookings.UpdateOne(ctx, bson.M{"bookingid": id}, bson.M{"$set": set})
	if err != nil {
		h.Logger.Error("booking update failed", "bookingid", id, "error", err)
		utils.RespondWithError(w, apperr.Store(err))
		return
	}
	if res.MatchedCount == 0 {
		utils.RespondWithError(w, apperr.NotFound("booking not found"))
		return
	}

	var booking models.Booking
	if err := h.DB.Bookings.FindOne(ctx, bson.M{"bookingid": id}).Decode(&booking); err != nil {
		h.Logger.Error("booking reload failed", "bookingid", id, "error", err)
		utils.RespondWithError(w, apperr.Store(err))
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "data": booking})
}

// DeleteBooking handles DELETE /api/admin/bookings/:bookingid. Permanent
// removal with no effect on the referenced tour.
func (h *Handler) DeleteBooking(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()
	id := ps.ByName("bookingid")

	res, err := h.DB.Bookings.DeleteOne(ctx, bson.M{"bookingid": id})
	if err != nil {
		h.Logger.Error("booking delete failed", "bookingid", id, "error", err)
		utils.RespondWithError(w, apperr.Store(err))
		return
	}
	if res.DeletedCount == 0 {
		utils.RespondWithError(w, apperr.NotFound("booking not found"))
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true})
}
