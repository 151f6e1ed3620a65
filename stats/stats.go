// Package stats backs the admin dashboard: entity counts, bookings grouped
// by status and the revenue figure.
package stats

import (
	"context"
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
)

type Handler struct {
	DB     *db.Database
	Logger *slog.Logger
}

func NewHandler(database *db.Database, logger *slog.Logger) *Handler {
	return &Handler{DB: database, Logger: logger}
}

type statusBucket struct {
	Status  string  `bson:"_id" json:"status"`
	Count   int64   `bson:"count" json:"count"`
	Revenue float64 `bson:"revenue" json:"revenue"`
}

// revenueFrom sums the revenue of the states that count as money earned.
// Only confirmed and completed bookings contribute; this is the one place
// booking status carries computed meaning.
func revenueFrom(buckets []statusBucket) float64 {
	var total float64
	for _, b := range buckets {
		if b.Status == models.BookingStatusConfirmed || b.Status == models.BookingStatusCompleted {
			total += b.Revenue
		}
	}
	return total
}

// Dashboard handles GET /api/admin/stats/dashboard.
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	tourCount, err := h.DB.Tours.CountDocuments(ctx, bson.M{})
	if err != nil {
		h.fail(w, "tour count", err)
		return
	}
	bookingCount, err := h.DB.Bookings.CountDocuments(ctx, bson.M{})
	if err != nil {
		h.fail(w, "booking count", err)
		return
	}
	newMessages, err := h.DB.Messages.CountDocuments(ctx, bson.M{"status": models.MessageStatusNew})
	if err != nil {
		h.fail(w, "message count", err)
		return
	}
	userCount, err := h.DB.Users.CountDocuments(ctx, bson.M{})
	if err != nil {
		h.fail(w, "user count", err)
		return
	}

	pipeline := mongo.Pipeline{
		bson.D{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$status"},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
			{Key: "revenue", Value: bson.D{{Key: "$sum", Value: "$total_price"}}},
		}}},
	}
	cursor, err := h.DB.Bookings.Aggregate(ctx, pipeline)
	if err != nil {
		h.fail(w, "booking aggregation", err)
		return
	}
	defer cursor.Close(ctx)

	var buckets []statusBucket
	if err := cursor.All(ctx, &buckets); err != nil {
		h.fail(w, "booking aggregation decode", err)
		return
	}
	if buckets == nil {
		buckets = []statusBucket{}
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"success": true,
		"data": utils.M{
			"tours":            tourCount,
			"bookings":         bookingCount,
			"newMessages":      newMessages,
			"users":            userCount,
			"bookingsByStatus": buckets,
			"revenue":          revenueFrom(buckets),
		},
	})
}

func (h *Handler) fail(w http.ResponseWriter, what string, err error) {
	h.Logger.Error(what+" failed", "error", err)
	utils.RespondWithError(w, apperr.Store(err))
}
