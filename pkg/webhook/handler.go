package webhook

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/magnani/membros-go/pkg/apierr"
)

const (
	maxBodyBytes = 1 << 20
	// DefaultDedupTTL é quanto tempo um ID de evento fica registrado
	DefaultDedupTTL = 24 * time.Hour
)

// HandlerFunc processa um tipo de evento
type HandlerFunc func(ctx context.Context, event *Event) error

// Handler valida e roteia as notificações recebidas.
// Erros dos handlers são logados e a notificação é confirmada com 200 para
// evitar reenvios; falhas de assinatura ou payload respondem 4xx.
type Handler struct {
	secret   string
	logger   *zap.Logger
	store    Store
	dedupTTL time.Duration
	onError  func(ctx context.Context, event *Event, err error)

	mu       sync.RWMutex
	handlers map[EventType]HandlerFunc
}

// Option configura o Handler
type Option func(*Handler)

// WithLogger define o logger, padrão zap.NewNop()
func WithLogger(logger *zap.Logger) Option {
	return func(h *Handler) { h.logger = logger }
}

// WithStore liga a supressão de eventos duplicados
func WithStore(store Store, ttl time.Duration) Option {
	return func(h *Handler) {
		h.store = store
		if ttl > 0 {
			h.dedupTTL = ttl
		}
	}
}

// WithErrorHandler é chamado quando um handler devolve erro
func WithErrorHandler(fn func(ctx context.Context, event *Event, err error)) Option {
	return func(h *Handler) { h.onError = fn }
}

// NewHandler cria o handler. Com secret vazio a assinatura não é verificada,
// uso restrito a desenvolvimento.
func NewHandler(secret string, opts ...Option) *Handler {
	h := &Handler{
		secret:   secret,
		logger:   zap.NewNop(),
		dedupTTL: DefaultDedupTTL,
		handlers: make(map[EventType]HandlerFunc),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// On registra o handler de um tipo de evento, substituindo o anterior
func (h *Handler) On(eventType EventType, fn HandlerFunc) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.handlers[eventType] = fn
}

// ServeHTTP atende POST com o corpo bruto da notificação
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		h.logger.Warn("webhook body read failed", zap.Error(err))
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "failed to read body"})
		return
	}
	defer r.Body.Close()

	var event *Event
	if h.secret != "" {
		event, err = ConstructEvent(body, r.Header.Get(SignatureHeader), h.secret)
	} else {
		event, err = ParseEvent(body)
	}
	if err != nil {
		status := apierr.StatusOf(err)
		if status == 0 {
			status = http.StatusBadRequest
		}
		h.logger.Warn("webhook rejected", zap.Error(err), zap.Int("status", status))
		writeJSON(w, status, map[string]string{"error": apierr.CodeOf(err)})
		return
	}

	status := h.Process(r.Context(), event)
	writeJSON(w, http.StatusOK, map[string]string{"status": status})
}

// Resultados de Process
const (
	StatusReceived  = "received"
	StatusDuplicate = "duplicate"
	StatusIgnored   = "ignored"
)

// Process roteia um evento já validado e devolve o resultado do processamento
func (h *Handler) Process(ctx context.Context, event *Event) string {
	logger := h.logger.With(zap.String("event_id", event.ID), zap.String("event_type", string(event.Type)))

	if h.store != nil && event.ID != "" {
		first, err := h.store.MarkSeen(ctx, event.ID, h.dedupTTL)
		switch {
		case err != nil:
			logger.Warn("webhook dedup store failed, processing anyway", zap.Error(err))
		case !first:
			logger.Info("webhook duplicate ignored")
			return StatusDuplicate
		}
	}

	h.mu.RLock()
	fn, ok := h.handlers[event.Type]
	h.mu.RUnlock()

	if !ok {
		logger.Info("webhook event type not handled")
		return StatusIgnored
	}

	if err := fn(ctx, event); err != nil {
		logger.Error("webhook handler failed", zap.Error(err))
		if h.onError != nil {
			h.onError(ctx, event, err)
		}
		return StatusReceived
	}

	logger.Info("webhook processed")
	return StatusReceived
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
