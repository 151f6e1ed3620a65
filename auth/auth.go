package auth

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/Atiqul-Imon/jhatika-safar-sub000/apperr"
	"github.com/Atiqul-Imon/jhatika-safar-sub000/db"
	"github.com/Atiqul-Imon/jhatika-safar-sub000/middleware"
	"github.com/Atiqul-Imon/jhatika-safar-sub000/models"
	"github.com/Atiqul-Imon/jhatika-safar-sub000/utils"

	"github.com/golang-jwt/jwt/v5"
	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

type Handler struct {
	DB       *db.Database
	Logger   *slog.Logger
	Secret   []byte
	TokenTTL time.Duration
}

func NewHandler(database *db.Database, logger *slog.Logger, secret []byte, tokenTTL time.Duration) *Handler {
	return &Handler{DB: database, Logger: logger, Secret: secret, TokenTTL: tokenTTL}
}

func (h *Handler) issueToken(user models.User) (string, error) {
	claims := &middleware.Claims{
		UserID: user.UserID,
		Name:   user.Name,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(h.TokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(h.Secret)
}

// Register handles POST /api/auth/register. New accounts always start as
// regular users; promotion to admin happens through user management.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var in struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		utils.RespondWithError(w, apperr.Validation("", "invalid request body"))
		return
	}

	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	switch {
	case in.Name == "":
		utils.RespondWithError(w, apperr.Validation("name", "name is required"))
		return
	case !utils.IsValidEmail(in.Email):
		utils.RespondWithError(w, apperr.Validation("email", "email is not a valid address"))
		return
	case len(in.Password) < 8:
		utils.RespondWithError(w, apperr.Validation("password", "password must be at least 8 characters"))
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		h.Logger.Error("password hash failed", "error", err)
		utils.RespondWithError(w, apperr.Store(err))
		return
	}

	now := time.Now()
	user := models.User{
		UserID:       "u" + utils.GenerateID(12),
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: string(hashed),
		Role:         models.RoleUser,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if _, err := h.DB.Users.InsertOne(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			utils.RespondWithError(w, apperr.Conflict("an account with this email already exists"))
			return
		}
		h.Logger.Error("user insert failed", "error", err)
		utils.RespondWithError(w, apperr.Store(err))
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, utils.M{"success": true, "data": user})
}

// Login handles POST /api/auth/login.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var in struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		utils.RespondWithError(w, apperr.Validation("", "invalid request body"))
		return
	}

	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if in.Email == "" || in.Password == "" {
		utils.RespondWithError(w, apperr.Validation("email", "email and password are required"))
		return
	}

	var user models.User
	err := h.DB.Users.FindOne(ctx, bson.M{"email": in.Email}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		utils.RespondWithJSON(w, http.StatusUnauthorized, utils.M{"success": false, "message": "invalid email or password"})
		return
	}
	if err != nil {
		h.Logger.Error("user lookup failed", "error", err)
		utils.RespondWithError(w, apperr.Store(err))
		return
	}

	if !user.IsActive {
		utils.RespondWithJSON(w, http.StatusUnauthorized, utils.M{"success": false, "message": "account is disabled"})
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)) != nil {
		utils.RespondWithJSON(w, http.StatusUnauthorized, utils.M{"success": false, "message": "invalid email or password"})
		return
	}

	token, err := h.issueToken(user)
	if err != nil {
		h.Logger.Error("token issue failed", "error", err)
		utils.RespondWithError(w, apperr.Store(err))
		return
	}

	now := time.Now()
	if _, err := h.DB.Users.UpdateOne(ctx,
		bson.M{"userid": user.UserID},
		bson.M{"$set": bson.M{"last_login": now}},
	); err != nil {
		h.Logger.Warn("last_login update failed", "userid", user.UserID, "error", err)
	}
	user.LastLogin = &now

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"success": true,
		"data":    utils.M{"token": token, "user": user},
	})
}

// Me handles GET /api/auth/me (authenticated).
func (h *Handler) Me(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var user models.User
	err := h.DB.Users.FindOne(ctx, bson.M{"userid": middleware.UserID(r)}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		utils.RespondWithError(w, apperr.NotFound("user not found"))
		return
	}
	if err != nil {
		h.Logger.Error("user lookup failed", "error", err)
		utils.RespondWithError(w, apperr.Store(err))
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "data": user})
}
