package utils

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Atiqul-Imon/jhatika-safar-sub000/apperr"
)

type M map[string]any

// Sends a JSON response
func RespondWithJSON(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

// RespondWithError writes the {success:false, message} envelope for err,
// picking the status from its apperr classification.
func RespondWithError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	body := M{"success": false, "message": "something went wrong, please try again"}

	var ae *apperr.Error
	if errors.As(err, &ae) {
		switch ae.Kind {
		case apperr.KindValidation:
			status = http.StatusBadRequest
			body["message"] = ae.Message
			if ae.Field != "" {
				body["field"] = ae.Field
			}
		case apperr.KindNotFound:
			status = http.StatusNotFound
			body["message"] = ae.Message
		case apperr.KindConflict, apperr.KindInvariant:
			status = http.StatusBadRequest
			body["message"] = ae.Message
		case apperr.KindStore:
			// keep the generic message, cause stays in server logs
		}
	}
	RespondWithJSON(w, status, body)
}
