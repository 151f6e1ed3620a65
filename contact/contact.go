package contact

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
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

const inboxCacheControl = "private, max-age=10"

type Handler struct {
	DB     *db.Database
	Logger *slog.Logger
}

func NewHandler(database *db.Database, logger *slog.Logger) *Handler {
	return &Handler{DB: database, Logger: logger}
}

// MessageInput is the public contact-form body.
type MessageInput struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// newMessage validates the submission. Status is always forced to "new"
// regardless of anything the client sends.
func newMessage(in MessageInput, now time.Time) (models.ContactMessage, error) {
	name := strings.TrimSpace(in.Name)
	phone := strings.TrimSpace(in.Phone)
	subject := strings.TrimSpace(in.Subject)
	body := strings.TrimSpace(in.Message)
	email := strings.TrimSpace(in.Email)

	switch {
	case name == "":
		return models.ContactMessage{}, apperr.Validation("name", "name is required")
	case len(name) > 100:
		return models.ContactMessage{}, apperr.Validation("name", "name must be 100 characters or less")
	case phone == "":
		return models.ContactMessage{}, apperr.Validation("phone", "phone is required")
	case len(phone) > 20:
		return models.ContactMessage{}, apperr.Validation("phone", "phone must be 20 characters or less")
	case subject == "":
		return models.ContactMessage{}, apperr.Validation("subject", "subject is required")
	case len(subject) > 200:
		return models.ContactMessage{}, apperr.Validation("subject", "subject must be 200 characters or less")
	case body == "":
		return models.ContactMessage{}, apperr.Validation("message", "message is required")
	case len(body) > 1000:
		return models.ContactMessage{}, apperr.Validation("message", "message must be 1000 characters or less")
	}
	if email != "" && !utils.IsValidEmail(email) {
		return models.ContactMessage{}, apperr.Validation("email", "email is not a valid address")
	}

	return models.ContactMessage{
		MessageID: utils.GenerateID(14),
		Name:      name,
		Email:     email,
		Phone:     phone,
		Subject:   subject,
		Message:   body,
		Status:    models.MessageStatusNew,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// CreateMessage handles POST /api/contact, the public inquiry form.
func (h *Handler) CreateMessage(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var in MessageInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		utils.RespondWithError(w, apperr.Validation("", "invalid request body"))
		return
	}

	msg, err := newMessage(in, time.Now())
	if err != nil {
		utils.RespondWithError(w, err)
		return
	}

	if _, err := h.DB.Messages.InsertOne(ctx, msg); err != nil {
		h.Logger.Error("message insert failed", "error", err)
		utils.RespondWithError(w, apperr.Store(err))
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, utils.M{"success": true, "data": msg})
}

// ListMessages handles GET /api/admin/messages.
func (h *Handler) ListMessages(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	q := utils.ParseQueryOptions(r, "created_at")

	filter := bson.M{}
	if status := r.URL.Query().Get("status"); status != "" {
		filter["status"] = status
	}
	if q.Search != "" {
		filter["$or"] = []bson.M{
			{"name": bson.M{"$regex": q.Search, "$options": "i"}},
			{"subject": bson.M{"$regex": q.Search, "$options": "i"}},
		}
	}

	total, err := h.DB.Messages.CountDocuments(ctx, filter)
	if err != nil {
		h.Logger.Error("message count failed", "error", err)
		utils.RespondWithError(w, apperr.Store(err))
		return
	}

	opts := options.Find().
		SetSort(bson.D{{Key: q.Sort, Value: q.Order}}).
		SetSkip(q.Skip()).
		SetLimit(int64(q.Limit))

	list, err := utils.FindAndDecode[models.ContactMessage](ctx, h.DB.Messages, filter, opts)
	if err != nil {
		h.Logger.Error("message list failed", "error", err)
		utils.RespondWithError(w, apperr.Store(err))
		return
	}

	w.Header().Set("Cache-Control", inboxCacheControl)
	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"success":    true,
		"data":       list,
		"pagination": utils.NewPagination(q.Page, q.Limit, total),
	})
}

// autoRead builds the conditional update that marks a freshly opened
// message read. The filter matches only status=new, so the transition fires
// exactly once; views of an already read/replied/archived message match
// nothing and change nothing.
func autoRead(id string, now time.Time) (filter, update bson.M) {
	filter = bson.M{"messageid": id, "status": models.MessageStatusNew}
	update = bson.M{"$set": bson.M{"status": models.MessageStatusRead, "updated_at": now}}
	return filter, update
}

// GetMessage handles GET /api/admin/messages/:messageid. Opening a fresh
// message marks it read; the conditional update makes the transition fire
// exactly once, repeated views are no-ops.
func (h *Handler) GetMessage(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()
	id := ps.ByName("messageid")

	readFilter, readUpdate := autoRead(id, time.Now())
	_, err := h.DB.Messages.UpdateOne(ctx, readFilter, readUpdate)
	if err != nil {
		h.Logger.Error("message auto-read failed", "messageid", id, "error", err)
		utils.RespondWithError(w, apperr.Store(err))
		return
	}

	var msg models.ContactMessage
	err = h.DB.Messages.FindOne(ctx, bson.M{"messageid": id}).Decode(&msg)
	if err == mongo.ErrNoDocuments {
		utils.RespondWithError(w, apperr.NotFound("message not found"))
		return
	}
	if err != nil {
		h.Logger.Error("message lookup failed", "messageid", id, "error", err)
		utils.RespondWithError(w, apperr.Store(err))
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "data": msg})
}

// UpdateMessage handles PUT /api/admin/messages/:messageid. Any status
// value may be set; the workflow order is a convention, not a constraint.
func (h *Handler) UpdateMessage(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()
	id := ps.ByName("messageid")

	var in struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		utils.RespondWithError(w, apperr.Validation("", "invalid request body"))
		return
	}

	valid := false
	for _, s := range models.MessageStatuses {
		if s == in.Status {
			valid = true
			break
		}
	}
	if !valid {
		utils.RespondWithError(w, apperr.Validation("status", "unknown message status"))
		return
	}

	res, err := h.DB.Messages.UpdateOne(ctx,
		bson.M{"messageid": id},
		bson.M{"$set": bson.M{"status": in.Status, "updated_at": time.Now()}},
	)
	if err != nil {
		h.Logger.Error("message update failed", "messageid", id, "error", err)
		utils.RespondWithError(w, apperr.Store(err))
		return
	}
	if res.MatchedCount == 0 {
		utils.RespondWithError(w, apperr.NotFound("message not found"))
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true})
}

// DeleteMessage handles DELETE /api/admin/messages/:messageid.
func (h *Handler) DeleteMessage(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()
	id := ps.ByName("messageid")

	res, err := h.DB.Messages.DeleteOne(ctx, bson.M{"messageid": id})
	if err != nil {
		h.Logger.Error("message delete failed", "messageid", id, "error", err)
		utils.RespondWithError(w, apperr.Store(err))
		return
	}
	if res.DeletedCount == 0 {
		utils.RespondWithError(w, apperr.NotFound("message not found"))
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true})
}
