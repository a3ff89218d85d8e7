// Package handlers contém os handlers HTTP do serviço de webhooks
package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// WebhookPath é a rota que recebe as notificações da Membros
const WebhookPath = "/api/webhooks/membros"

// NewRouter monta as rotas do serviço.
// readiness informa se as dependências estão prontas; nil considera sempre pronto.
func NewRouter(webhook http.Handler, readiness func() bool, serviceName string, logger *zap.Logger) chi.Router {
	router := chi.NewRouter()
	router.Use(requestLogger(logger))

	health := HealthCheck(serviceName, readiness)
	router.Get("/health", health)
	router.Get("/api/health", health)

	router.Method(http.MethodPost, WebhookPath, webhook)

	return router
}

// HealthCheck responde 200 quando o serviço está pronto e 503 caso contrário
func HealthCheck(serviceName string, readiness func() bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status, code := "healthy", http.StatusOK
		if readiness != nil && !readiness() {
			status, code = "unavailable", http.StatusServiceUnavailable
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(code)
		_ = json.NewEncoder(w).Encode(map[string]string{
			"status":  status,
			"service": serviceName,
		})
	}
}

// statusRecorder captura o status escrito pelo handler
type statusRecorder struct {
	http.ResponseWriter
	status int
}

// WriteHeader guarda o status para o log da requisição
func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func requestLogger(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r)

			logger.Debug("http request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", rec.status),
				zap.Duration("duration", time.Since(start)),
			)
		})
	}
}
