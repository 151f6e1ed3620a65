package tours

import (
	"context"
	"encoding/json"
	"log/slog"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/Atiqul-Imon/jhatika-safar-sub000/apperr"
	"github.com/Atiqul-Imon/jhatika-safar-sub000/db"
	"github.com/Atiqul-Imon/jhatika-safar-sub000/filemgr"
	"github.com/Atiqul-Imon/jhatika-safar-sub000/middleware"
	"github.com/Atiqul-Imon/jhatika-safar-sub000/models"
	"github.com/Atiqul-Imon/jhatika-safar-sub000/rdx"
	"github.com/Atiqul-Imon/jhatika-safar-sub000/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const slugConflictMsg = "a tour with this title already exists"

type Handler struct {
	DB     *db.Database
	Cache  *rdx.Cache
	Files  *filemgr.FileStore
	Logger *slog.Logger
}

func NewHandler(database *db.Database, cache *rdx.Cache, files *filemgr.FileStore, logger *slog.Logger) *Handler {
	return &Handler{DB: database, Cache: cache, Files: files, Logger: logger}
}

// slugTaken reports whether another tour already owns slug. excludeID is the
// tour being updated, empty on create.
func (h *Handler) slugTaken(ctx context.Context, slug, excludeID string) (bool, error) {
	filter := bson.M{"slug": slug}
	if excludeID != "" {
		filter["tourid"] = bson.M{"$ne": excludeID}
	}
	n, err := h.DB.Tours.CountDocuments(ctx, filter)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// CreateTour handles POST /api/admin/tours.
func (h *Handler) CreateTour(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var in TourInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		utils.RespondWithError(w, apperr.Validation("", "invalid request body"))
		return
	}

	tour, err := newTour(in, middleware.UserID(r), time.Now())
	if err != nil {
		utils.RespondWithError(w, err)
		return
	}

	taken, err := h.slugTaken(ctx, tour.Slug, "")
	if err != nil {
		h.Logger.Error("slug lookup failed", "error", err)
		utils.RespondWithError(w, apperr.Store(err))
		return
	}
	if taken {
		utils.RespondWithError(w, apperr.Conflict(slugConflictMsg))
		return
	}

	if _, err := h.DB.Tours.InsertOne(ctx, tour); err != nil {
		// Two concurrent creates can both pass the pre-check; the unique
		// index decides the winner and the loser lands here.
		if mongo.IsDuplicateKeyError(err) {
			utils.RespondWithError(w, apperr.Conflict(slugConflictMsg))
			return
		}
		h.Logger.Error("tour insert failed", "error", err)
		utils.RespondWithError(w, apperr.Store(err))
		return
	}

	h.Cache.InvalidateTours(ctx)
	utils.RespondWithJSON(w, http.StatusCreated, utils.M{"success": true, "data": tour})
}

// UpdateTour handles PUT /api/admin/tours/:tourid. Partial merge; a title
// change recomputes the slug and re-checks collision excluding this tour.
func (h *Handler) UpdateTour(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()
	id := ps.ByName("tourid")

	var in TourInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		utils.RespondWithError(w, apperr.Validation("", "invalid request body"))
		return
	}

	set, err := buildUpdate(in, time.Now())
	if err != nil {
		utils.RespondWithError(w, err)
		return
	}

	if slug, ok := set["slug"].(string); ok {
		taken, err := h.slugTaken(ctx, slug, id)
		if err != nil {
			h.Logger.Error("slug lookup failed", "error", err)
			utils.RespondWithError(w, apperr.Store(err))
			return
		}
		if taken {
			utils.RespondWithError(w, apperr.Conflict(slugConflictMsg))
			return
		}
	}

	res, err := h.DB.Tours.UpdateOne(ctx, bson.M{"tourid": id}, bson.M{"$set": set})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			utils.RespondWithError(w, apperr.Conflict(slugConflictMsg))
			return
		}
		h.Logger.Error("tour update failed", "tourid", id, "error", err)
		utils.RespondWithError(w, apperr.Store(err))
		return
	}
	if res.MatchedCount == 0 {
		utils.RespondWithError(w, apperr.NotFound("tour not found"))
		return
	}

	var tour models.Tour
	if err := h.DB.Tours.FindOne(ctx, bson.M{"tourid": id}).Decode(&tour); err != nil {
		h.Logger.Error("tour reload failed", "tourid", id, "error", err)
		utils.RespondWithError(w, apperr.Store(err))
		return
	}

	h.Cache.InvalidateTours(ctx)
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "data": tour})
}

// GetTour handles GET /api/admin/tours/:tourid (any status).
func (h *Handler) GetTour(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var tour models.Tour
	err := h.DB.Tours.FindOne(ctx, bson.M{"tourid": ps.ByName("tourid")}).Decode(&tour)
	if err == mongo.ErrNoDocuments {
		utils.RespondWithError(w, apperr.NotFound("tour not found"))
		return
	}
	if err != nil {
		h.Logger.Error("tour lookup failed", "error", err)
		utils.RespondWithError(w, apperr.Store(err))
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "data": tour})
}

// DeleteTour handles DELETE /api/admin/tours/:tourid. Hard delete; bookings
// referencing this tour keep their denormalized title snapshot.
func (h *Handler) DeleteTour(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()
	id := ps.ByName("tourid")

	var tour models.Tour
	err := h.DB.Tours.FindOne(ctx, bson.M{"tourid": id}).Decode(&tour)
	if err == mongo.ErrNoDocuments {
		utils.RespondWithError(w, apperr.NotFound("tour not found"))
		return
	}
	if err != nil {
		h.Logger.Error("tour lookup failed", "tourid", id, "error", err)
		utils.RespondWithError(w, apperr.Store(err))
		return
	}

	if _, err := h.DB.Tours.DeleteOne(ctx, bson.M{"tourid": id}); err != nil {
		h.Logger.Error("tour delete failed", "tourid", id, "error", err)
		utils.RespondWithError(w, apperr.Store(err))
		return
	}

	for _, img := range tour.Images {
		h.Files.Remove(img)
	}

	h.Cache.InvalidateTours(ctx)
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true})
}

// saveImages stores every upload in the batch. A rejected batch leaves
// nothing behind: any file written before the failure is removed again.
func saveImages(files *filemgr.FileStore, headers []*multipart.FileHeader, tourID string) ([]string, error) {
	var urls []string
	cleanup := func() {
		for _, u := range urls {
			files.Remove(u)
		}
	}
	for _, header := range headers {
		if !utils.SupportedImageTypes[header.Header.Get("Content-Type")] {
			cleanup()
			return nil, apperr.Validation("images", "unsupported image type")
		}
		file, err := header.Open()
		if err != nil {
			cleanup()
			return nil, apperr.Validation("images", "unable to read upload")
		}
		url, err := files.SaveTourImage(file, tourID)
		file.Close()
		if err != nil {
			cleanup()
			return nil, err
		}
		urls = append(urls, url)
	}
	return urls, nil
}

// UploadImages handles POST /api/admin/tours/:tourid/images (multipart).
// Saved files are appended to the tour's ordered image list.
func (h *Handler) UploadImages(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()
	id := ps.ByName("tourid")

	n, err := h.DB.Tours.CountDocuments(ctx, bson.M{"tourid": id})
	if err != nil {
		utils.RespondWithError(w, apperr.Store(err))
		return
	}
	if n == 0 {
		utils.RespondWithError(w, apperr.NotFound("tour not found"))
		return
	}

	if err := r.ParseMultipartForm(20 << 20); err != nil {
		utils.RespondWithError(w, apperr.Validation("images", "unable to parse upload"))
		return
	}

	headers := r.MultipartForm.File["images"]
	if len(headers) == 0 {
		utils.RespondWithError(w, apperr.Validation("images", "no images supplied"))
		return
	}

	urls, err := saveImages(h.Files, headers, id)
	if err != nil {
		if apperr.KindOf(err) == apperr.KindUnknown {
			h.Logger.Error("image save failed", "tourid", id, "error", err)
			err = apperr.Store(err)
		}
		utils.RespondWithError(w, err)
		return
	}

	update := bson.M{
		"$push": bson.M{"images": bson.M{"$each": urls}},
		"$set":  bson.M{"updated_at": time.Now()},
	}
	if _, err := h.DB.Tours.UpdateOne(ctx, bson.M{"tourid": id}, update); err != nil {
		h.Logger.Error("image list update failed", "tourid", id, "error", err)
		utils.RespondWithError(w, apperr.Store(err))
		return
	}

	h.Cache.InvalidateTours(ctx)
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "data": utils.M{"images": urls}})
}
