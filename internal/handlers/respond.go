package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/AlexandreTessaro/Portfolio-CatolicaSC-sub002/internal/logging"
	"github.com/AlexandreTessaro/Portfolio-CatolicaSC-sub002/internal/services"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, ErrorResponse{Error: message})
}

// writeServiceError maps a service error to an HTTP status through the
// service error taxonomy. Internal errors are logged and masked.
func writeServiceError(w http.ResponseWriter, err error) {
	switch services.Categorize(err) {
	case services.CategoryNotFound:
		writeError(w, http.StatusNotFound, err.Error())
	case services.CategoryForbidden:
		writeError(w, http.StatusForbidden, err.Error())
	case services.CategoryConflict:
		writeError(w, http.StatusConflict, err.Error())
	case services.CategoryValidation:
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		logging.Error("Unhandled service error", map[string]interface{}{
			"error": err.Error(),
		})
		writeError(w, http.StatusInternalServerError, "Internal server error")
	}
}
