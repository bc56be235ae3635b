package handlers

import (
	"log/slog"
	"net/http"
)

// Pinger проверяет доступность хранилища
type Pinger interface {
	Ping() error
}

// HealthHandler обрабатывает health check запросы
type HealthHandler struct {
	logger *slog.Logger
	pinger Pinger
}

// NewHealthHandler создает новый handler для health check
func NewHealthHandler(logger *slog.Logger, pinger Pinger) *HealthHandler {
	return &HealthHandler{
		logger: logger,
		pinger: pinger,
	}
}

// HealthResponse представляет ответ health check
type HealthResponse struct {
	Status string `json:"status"`
}

// Health обрабатывает GET /health
// Health check endpoint для мониторинга
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	if h.pinger != nil {
		if err := h.pinger.Ping(); err != nil {
			h.logger.Error("health check: storage unavailable", slog.Any("error", err))
			sendJSON(h.logger, w, HealthResponse{Status: "unavailable"}, http.StatusServiceUnavailable)
			return
		}
	}

	sendJSON(h.logger, w, HealthResponse{Status: "ok"}, http.StatusOK)
}
