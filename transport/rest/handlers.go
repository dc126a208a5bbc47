package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/xoarena/tictactoe-backend/internal/entity"
)

const defaultResultsLimit = 20

type statusService interface {
	Save(ctx context.Context, check *entity.StatusCheck) error
	List(ctx context.Context) ([]entity.StatusCheck, error)
}

type resultsService interface {
	ListResults(ctx context.Context, limit int) ([]entity.GameResult, error)
}

type Handlers struct {
	logger  *slog.Logger
	status  statusService
	results resultsService
}

func NewHandlers(logger *slog.Logger, status statusService, results resultsService) *Handlers {
	return &Handlers{
		logger:  logger,
		status:  status,
		results: results,
	}
}

func (that *Handlers) Router() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /ping", that.PingHandler)
	mux.HandleFunc("GET /api/", that.HelloHandler)
	mux.HandleFunc("POST /api/status", that.CreateStatusHandler)
	mux.HandleFunc("GET /api/status", that.ListStatusHandler)
	mux.HandleFunc("GET /api/results", that.ListResultsHandler)

	return mux
}

func (that *Handlers) PingHandler(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)

	if _, err := w.Write([]byte("pong")); err != nil {
		that.logger.Error("failed to write ping response", "error", err)
	}
}

func (that *Handlers) HelloHandler(w http.ResponseWriter, _ *http.Request) {
	that.writeJSON(w, http.StatusOK, map[string]string{"message": "Hello World"})
}

func (that *Handlers) CreateStatusHandler(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "CreateStatusHandler")

	var request struct {
		ClientName string `json:"client_name"`
	}

	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if request.ClientName == "" {
		http.Error(w, "client_name is required", http.StatusBadRequest)
		return
	}

	check := &entity.StatusCheck{
		ID:         uuid.NewString(),
		ClientName: request.ClientName,
		Timestamp:  time.Now().UTC(),
	}

	if err := that.status.Save(r.Context(), check); err != nil {
		log.Error("failed to save status check", "error", err)
		http.Error(w, "failed to save status check", http.StatusInternalServerError)
		return
	}

	that.writeJSON(w, http.StatusOK, check)
}

func (that *Handlers) ListStatusHandler(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "ListStatusHandler")

	checks, err := that.status.List(r.Context())
	if err != nil {
		log.Error("failed to list status checks", "error", err)
		http.Error(w, "failed to list status checks", http.StatusInternalServerError)
		return
	}

	if checks == nil {
		checks = []entity.StatusCheck{}
	}

	that.writeJSON(w, http.StatusOK, checks)
}

func (that *Handlers) ListResultsHandler(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "ListResultsHandler")

	results, err := that.results.ListResults(r.Context(), defaultResultsLimit)
	if err != nil {
		log.Error("failed to list results", "error", err)
		http.Error(w, "failed to list results", http.StatusInternalServerError)
		return
	}

	if results == nil {
		results = []entity.GameResult{}
	}

	that.writeJSON(w, http.StatusOK, results)
}

func (that *Handlers) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		that.logger.Error("failed to encode response", "error", err)
	}
}
