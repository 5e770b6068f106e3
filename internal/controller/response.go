package controller

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	appErrors "github.com/unclebandit/proposal-backend/internal/errors"
)

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Println("failed to encode response:", err)
	}
}

// writeError maps service errors to status codes. Anything unrecognised is a
// 500 and gets logged.
func writeError(w http.ResponseWriter, err error) {
	var unknownType *appErrors.ErrUnknownCampaignType
	var unknownMessage *appErrors.ErrUnknownMessageTemplate

	switch {
	case appErrors.IsNotFound(err):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, appErrors.ErrCampaignStopped), errors.Is(err, appErrors.ErrTouchpointAlreadySent):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, appErrors.ErrInvalidStatus), errors.As(err, &unknownType):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.As(err, &unknownMessage):
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
	default:
		log.Println("request failed:", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
