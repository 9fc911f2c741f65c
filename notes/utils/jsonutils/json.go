package jsonutils

import (
	"encoding/json"
	"net/http"

	"notes/notes/utils/logging"

	"go.uber.org/zap"
)

// WriteJSON writes v with the given status. A 204 gets headers only.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	if status == http.StatusNoContent || v == nil {
		w.WriteHeader(status)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.ErrorLogger.Error("encode response", zap.Error(err))
	}
}

// WriteDetail writes the {"detail": msg} error shape.
func WriteDetail(w http.ResponseWriter, status int, msg string) {
	WriteJSON(w, status, map[string]string{"detail": msg})
}
