package tours

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/Atiqul-Imon/jhatika-safar-sub000/apperr"
	"github.com/Atiqul-Imon/jhatika-safar-sub000/models"
	"github.com/Atiqul-Imon/jhatika-safar-sub000/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Catalog reads are safe to cache for minutes; writes invalidate the redis
// layer, the header covers intermediaries.
const catalogCacheControl = "public, max-age=300, stale-while-revalidate=600"

// buildListFilter assembles the Mongo predicate from the optional query
// filters, omitting absent ones.
func buildListFilter(status, category, featured, search string) bson.M {
	filter := bson.M{}
	if status != "" {
		filter["status"] = status
	}
	if category != "" {
		filter["category"] = category
	}
	switch featured {
	case "true":
		filter["featured"] = true
	case "false":
		filter["featured"] = false
	}
	if search != "" {
		filter["$or"] = []bson.M{
			{"title": bson.M{"$regex": search, "$options": "i"}},
			{"destinations": bson.M{"$regex": search, "$options": "i"}},
		}
	}
	return filter
}

// ListTours handles GET /api/tours. The storefront calls it with
// status=active; the admin console passes any combination of filters.
func (h *Handler) ListTours(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	cacheKey := "list:" + r.URL.RawQuery
	if cached, ok := h.Cache.Get(ctx, cacheKey); ok {
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Cache-Control", catalogCacheControl)
		w.Write([]byte(cached))
		return
	}

	q := utils.ParseQueryOptions(r, "created_at")
	params := r.URL.Query()
	filter := buildListFilter(params.Get("status"), params.Get("category"), params.Get("featured"), q.Search)

	total, err := h.DB.Tours.CountDocuments(ctx, filter)
	if err != nil {
		h.Logger.Error("tour count failed", "error", err)
		utils.RespondWithError(w, apperr.Store(err))
		return
	}

	opts := options.Find().
		SetSort(bson.D{{Key: q.Sort, Value: q.Order}}).
		SetSkip(q.Skip()).
		SetLimit(int64(q.Limit))

	toursList, err := utils.FindAndDecode[models.Tour](ctx, h.DB.Tours, filter, opts)
	if err != nil {
		h.Logger.Error("tour list failed", "error", err)
		utils.RespondWithError(w, apperr.Store(err))
		return
	}

	body, _ := json.Marshal(utils.M{
		"success":    true,
		"data":       toursList,
		"pagination": utils.NewPagination(q.Page, q.Limit, total),
	})
	h.Cache.Set(ctx, cacheKey, string(body))

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", catalogCacheControl)
	w.Write(body)
}

// GetFeatured handles GET /api/tours/featured for the storefront hero strip.
func (h *Handler) GetFeatured(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if cached, ok := h.Cache.Get(ctx, "featured"); ok {
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Cache-Control", catalogCacheControl)
		w.Write([]byte(cached))
		return
	}

	filter := bson.M{"status": models.TourStatusActive, "featured": true}
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(6)

	featured, err := utils.FindAndDecode[models.Tour](ctx, h.DB.Tours, filter, opts)
	if err != nil {
		h.Logger.Error("featured list failed", "error", err)
		utils.RespondWithError(w, apperr.Store(err))
		return
	}

	body, _ := json.Marshal(utils.M{"success": true, "data": featured})
	h.Cache.Set(ctx, "featured", string(body))

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", catalogCacheControl)
	w.Write(body)
}

// GetTourBySlug handles GET /api/tours/slug/:slug. Only active tours exist
// from the public surface; draft and inactive read as not found.
func (h *Handler) GetTourBySlug(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()
	slug := ps.ByName("slug")

	cacheKey := "slug:" + slug
	if cached, ok := h.Cache.Get(ctx, cacheKey); ok {
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Cache-Control", catalogCacheControl)
		w.Write([]byte(cached))
		return
	}

	var tour models.Tour
	err := h.DB.Tours.FindOne(ctx, bson.M{"slug": slug, "status": models.TourStatusActive}).Decode(&tour)
	if err == mongo.ErrNoDocuments {
		utils.RespondWithError(w, apperr.NotFound("tour not found"))
		return
	}
	if err != nil {
		h.Logger.Error("slug lookup failed", "slug", slug, "error", err)
		utils.RespondWithError(w, apperr.Store(err))
		return
	}

	body, _ := json.Marshal(utils.M{"success": true, "data": tour})
	h.Cache.Set(ctx, cacheKey, string(body))

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", catalogCacheControl)
	w.Write(body)
}

// GetCategories handles GET /api/tours/categories for the storefront filter bar.
func (h *Handler) GetCategories(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	raw, err := h.DB.Tours.Distinct(ctx, "category", bson.M{"status": models.TourStatusActive})
	if err != nil {
		h.Logger.Error("category distinct failed", "error", err)
		utils.RespondWithError(w, apperr.Store(err))
		return
	}

	categories := []string{}
	for _, v := range raw {
		if s, ok := v.(string); ok && s != "" {
			categories = append(categories, s)
		}
	}

	w.Header().Set("Cache-Control", catalogCacheControl)
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "data": categories})
}
