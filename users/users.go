package users

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

type Handler struct {
	DB     *db.Database
	Logger *slog.Logger
}

func NewHandler(database *db.Database, logger *slog.Logger) *Handler {
	return &Handler{DB: database, Logger: logger}
}

// canDeleteUser enforces the one hard rule of account management: the last
// remaining admin account must survive.
func canDeleteUser(role string, adminCount int64) bool {
	return role != models.RoleAdmin || adminCount > 1
}

// ListUsers handles GET /api/admin/users.
func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	q := utils.ParseQueryOptions(r, "created_at")

	filter := bson.M{}
	if role := r.URL.Query().Get("role"); role != "" {
		filter["role"] = role
	}
	if q.Search != "" {
		filter["$or"] = []bson.M{
			{"name": bson.M{"$regex": q.Search, "$options": "i"}},
			{"email": bson.M{"$regex": q.Search, "$options": "i"}},
		}
	}

	total, err := h.DB.Users.CountDocuments(ctx, filter)
	if err != nil {
		h.Logger.Error("user count failed", "error", err)
		utils.RespondWithError(w, apperr.Store(err))
		return
	}

	opts := options.Find().
		SetSort(bson.D{{Key: q.Sort, Value: q.Order}}).
		SetSkip(q.Skip()).
		SetLimit(int64(q.Limit))

	list, err := utils.FindAndDecode[models.User](ctx, h.DB.Users, filter, opts)
	if err != nil {
		h.Logger.Error("user list failed", "error", err)
		utils.RespondWithError(w, apperr.Store(err))
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"success":    true,
		"data":       list,
		"pagination": utils.NewPagination(q.Page, q.Limit, total),
	})
}

// UpdateUser handles PUT /api/admin/users/:userid: role and active flag.
func (h *Handler) UpdateUser(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()
	id := ps.ByName("userid")

	var in struct {
		Role     *string `json:"role"`
		IsActive *bool   `json:"is_active"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		utils.RespondWithError(w, apperr.Validation("", "invalid request body"))
		return
	}

	set := bson.M{"updated_at": time.Now()}
	if in.Role != nil {
		if *in.Role != models.RoleAdmin && *in.Role != models.RoleUser {
			utils.RespondWithError(w, apperr.Validation("role", "role must be admin or user"))
			return
		}
		set["role"] = *in.Role
	}
	if in.IsActive != nil {
		set["is_active"] = *in.IsActive
	}

	res, err := h.DB.Users.UpdateOne(ctx, bson.M{"userid": id}, bson.M{"$set": set})
	if err != nil {
		h.Logger.Error("user update failed", "userid", id, "error", err)
		utils.RespondWithError(w, apperr.Store(err))
		return
	}
	if res.MatchedCount == 0 {
		utils.RespondWithError(w, apperr.NotFound("user not found"))
		return
	}

	var user models.User
	if err := h.DB.Users.FindOne(ctx, bson.M{"userid": id}).Decode(&user); err != nil {
		h.Logger.Error("user reload failed", "userid", id, "error", err)
		utils.RespondWithError(w, apperr.Store(err))
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "data": user})
}

// DeleteUser handles DELETE /api/admin/users/:userid. Deleting the last
// admin account is rejected outright.
func (h *Handler) DeleteUser(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()
	id := ps.ByName("userid")

	var user models.User
	err := h.DB.Users.FindOne(ctx, bson.M{"userid": id}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		utils.RespondWithError(w, apperr.NotFound("user not found"))
		return
	}
	if err != nil {
		h.Logger.Error("user lookup failed", "userid", id, "error", err)
		utils.RespondWithError(w, apperr.Store(err))
		return
	}

	if user.Role == models.RoleAdmin {
		adminCount, err := h.DB.Users.CountDocuments(ctx, bson.M{"role": models.RoleAdmin})
		if err != nil {
			h.Logger.Error("admin count failed", "error", err)
			utils.RespondWithError(w, apperr.Store(err))
			return
		}
		if !canDeleteUser(user.Role, adminCount) {
			utils.RespondWithError(w, apperr.Invariant("cannot delete the last admin account"))
			return
		}
	}

	if _, err := h.DB.Users.DeleteOne(ctx, bson.M{"userid": id}); err != nil {
		h.Logger.Error("user delete failed", "userid", id, "error", err)
		utils.RespondWithError(w, apperr.Store(err))
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true})
}
