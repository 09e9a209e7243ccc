package http

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"placement/ml"
)

type errorResponse struct {
	Error string `json:"error"`
}

type predictResponse struct {
	Result string `json:"result"`
}

func RegisterHandlers(mux *http.ServeMux, model ml.Classifier, logger *zap.Logger) {
	if logger == nil {
		logger = zap.NewNop()
	}
	mux.HandleFunc("GET /health", handleHealth)
	mux.Handle("POST /predict", &predictHandler{model: model, logger: logger})
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}
