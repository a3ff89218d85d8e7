// Package transport é a fronteira HTTP autenticada do SDK Membros.
//
// O Client aplica headers de autenticação, timeout por tentativa, a política
// de retentativas (uma única para 429, backoff exponencial para 5xx/rede),
// limitação de taxa opcional, spans do OpenTelemetry e eventos para listeners.
// Todo erro devolvido já está classificado em um *apierr.Error.
package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/magnani/membros-go/pkg/apierr"
)

const tracerName = "github.com/magnani/membros-go/pkg/transport"

// Códigos de erro gerados localmente pelo transporte
const (
	CodeInvalidRequestBody  = "INVALID_REQUEST_BODY"
	CodeInvalidResponseBody = "INVALID_RESPONSE_BODY"
)

// Response é o envelope devolvido por todas as chamadas
type Response struct {
	Data       json.RawMessage
	StatusCode int
	Status     string
	Header     http.Header
}

// Decode interpreta o payload JSON em v
func (r *Response) Decode(v any) error {
	if len(r.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(r.Data, v); err != nil {
		return apierr.New(apierr.KindGeneric, fmt.Sprintf("erro ao decodificar resposta: %v", err), CodeInvalidResponseBody, r.StatusCode, nil)
	}
	return nil
}

// Client é seguro para uso concorrente
type Client struct {
	cfg        Config
	baseURL    string
	creds      atomic.Pointer[credentials]
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *zap.Logger
	tracer     trace.Tracer

	// sleep é substituível nos testes
	sleep func(ctx context.Context, d time.Duration) error
}

// New valida as credenciais e cria o cliente
func New(cfg Config) (*Client, error) {
	creds, err := newCredentials(cfg.SecretKey, cfg.PublicKey)
	if err != nil {
		return nil, err
	}

	cfg = cfg.withDefaults()

	baseURL, err := cfg.apiURL()
	if err != nil {
		return nil, err
	}

	httpClient, err := newHTTPClient(cfg)
	if err != nil {
		return nil, err
	}

	c := &Client{
		cfg:        cfg,
		baseURL:    baseURL,
		httpClient: httpClient,
		logger:     cfg.Logger,
		tracer:     cfg.Tracer,
		sleep:      sleepContext,
	}
	if c.tracer == nil {
		c.tracer = otel.Tracer(tracerName)
	}
	if cfg.RateLimit > 0 {
		c.limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), cfg.RateBurst)
	}
	c.creds.Store(creds)

	return c, nil
}

// Config devolve uma cópia da configuração ativa, já com a chave secreta corrente
func (c *Client) Config() Config {
	cfg := c.cfg
	cfg.SecretKey = c.creds.Load().secretKey
	return cfg
}

// SetSecretKey rotaciona a chave secreta sem recriar o cliente.
// Chaves malformadas são rejeitadas sem alterar o estado atual. Requisições
// ainda não despachadas podem usar a chave antiga ou a nova (último escritor vence).
func (c *Client) SetSecretKey(secretKey string) error {
	if err := ValidateSecretKey(secretKey); err != nil {
		return err
	}
	current := c.creds.Load()
	c.creds.Store(&credentials{secretKey: secretKey, publicKey: current.publicKey})
	c.logger.Info("membros secret key rotated")
	return nil
}

// Get executa um GET
func (c *Client) Get(ctx context.Context, path string, opts *RequestOptions) (*Response, error) {
	return c.Do(ctx, http.MethodGet, path, nil, opts)
}

// Post executa um POST
func (c *Client) Post(ctx context.Context, path string, body any, opts *RequestOptions) (*Response, error) {
	return c.Do(ctx, http.MethodPost, path, body, opts)
}

// Put executa um PUT
func (c *Client) Put(ctx context.Context, path string, body any, opts *RequestOptions) (*Response, error) {
	return c.Do(ctx, http.MethodPut, path, body, opts)
}

// Patch executa um PATCH
func (c *Client) Patch(ctx context.Context, path string, body any, opts *RequestOptions) (*Response, error) {
	return c.Do(ctx, http.MethodPatch, path, body, opts)
}

// Delete executa um DELETE
func (c *Client) Delete(ctx context.Context, path string, opts *RequestOptions) (*Response, error) {
	return c.Do(ctx, http.MethodDelete, path, nil, opts)
}

// Do executa a requisição aplicando a política de retentativas
func (c *Client) Do(ctx context.Context, method, path string, body any, opts *RequestOptions) (*Response, error) {
	var payload []byte
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, apierr.New(apierr.KindGeneric, fmt.Sprintf("erro ao serializar body: %v", err), CodeInvalidRequestBody, 0, nil)
		}
		payload = b
	}

	settings := c.cfg.merge(opts)
	reqURL := c.buildURL(path, opts)
	requestID := uuid.NewString()

	ctx, span := c.startSpan(ctx, method, path, requestID)
	defer span.End()

	state := retryState{maxRetries: settings.maxRetries}
	for attempt := 1; ; attempt++ {
		if c.limiter != nil {
			if err := c.limiter.Wait(ctx); err != nil {
				apiErr := apierr.Network(err)
				endSpan(span, nil, apiErr, state.retries)
				return nil, apiErr
			}
		}

		resp, apiErr := c.attempt(ctx, method, reqURL, payload, requestID, attempt, settings.timeout, opts)
		if apiErr == nil {
			endSpan(span, resp, nil, state.retries)
			return resp, nil
		}

		var header http.Header
		if resp != nil {
			header = resp.Header
		}
		delay, retry := state.next(ctx, apiErr, header)
		if !retry {
			endSpan(span, resp, apiErr, state.retries)
			return nil, apiErr
		}

		c.logger.Warn("membros request retry",
			zap.String("request_id", requestID),
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("attempt", attempt),
			zap.Int("status", apiErr.Status),
			zap.String("code", apiErr.Code),
			zap.Duration("delay", delay),
		)

		if err := c.sleep(ctx, delay); err != nil {
			cancelled := apierr.Network(err)
			endSpan(span, nil, cancelled, state.retries)
			return nil, cancelled
		}
	}
}

// attempt executa uma única tentativa. Em respostas de erro devolve também o
// envelope, para que a política de retentativa leia os headers.
func (c *Client) attempt(ctx context.Context, method, reqURL string, payload []byte, requestID string, attempt int, timeout time.Duration, opts *RequestOptions) (*Response, *apierr.Error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	event := Event{RequestID: requestID, Method: method, URL: reqURL, Attempt: attempt}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, body)
	if err != nil {
		apiErr := apierr.Network(fmt.Errorf("erro ao criar requisição: %w", err))
		event.Err = apiErr
		c.emit(func(l Listener) { l.OnRequestError(event) })
		return nil, apiErr
	}
	c.applyHeaders(req, requestID, opts)

	c.emit(func(l Listener) { l.OnRequest(event) })
	c.logger.Debug("membros request",
		zap.String("request_id", requestID),
		zap.String("method", method),
		zap.String("url", reqURL),
		zap.Int("attempt", attempt),
	)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		apiErr := apierr.Network(err)
		event.Duration = time.Since(start)
		event.Err = apiErr
		c.emit(func(l Listener) { l.OnRequestError(event) })
		return nil, apiErr
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	event.Duration = time.Since(start)
	event.StatusCode = resp.StatusCode
	if err != nil {
		apiErr := apierr.Network(fmt.Errorf("erro ao ler resposta: %w", err))
		event.Err = apiErr
		c.emit(func(l Listener) { l.OnRequestError(event) })
		return nil, apiErr
	}

	envelope := &Response{
		Data:       respBody,
		StatusCode: resp.StatusCode,
		Status:     statusText(resp),
		Header:     resp.Header,
	}

	if resp.StatusCode >= 400 {
		apiErr := apierr.FromResponse(resp.StatusCode, envelope.Status, respBody)
		event.Err = apiErr
		c.emit(func(l Listener) { l.OnResponseError(event) })
		return envelope, apiErr
	}

	c.emit(func(l Listener) { l.OnResponse(event) })
	return envelope, nil
}

// applyHeaders lê o snapshot de credenciais no momento do envio
func (c *Client) applyHeaders(req *http.Request, requestID string, opts *RequestOptions) {
	creds := c.creds.Load()

	req.Header.Set("Authorization", creds.authorization())
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.cfg.UserAgent)
	req.Header.Set("X-Request-ID", requestID)
	if c.cfg.ProjectID != "" {
		req.Header.Set("X-Project-ID", c.cfg.ProjectID)
	}

	if opts == nil {
		return
	}
	if opts.IdempotencyKey != "" {
		req.Header.Set("Idempotency-Key", opts.IdempotencyKey)
	}
	for k, v := range opts.Headers {
		req.Header.Del(k)
		for _, value := range v {
			req.Header.Add(k, value)
		}
	}
}

func (c *Client) buildURL(path string, opts *RequestOptions) string {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	u := c.baseURL + path
	if opts != nil && len(opts.Query) > 0 {
		sep := "?"
		if strings.Contains(u, "?") {
			sep = "&"
		}
		u += sep + opts.Query.Encode()
	}
	return u
}

// emit chama o listener isolando panics
func (c *Client) emit(fn func(Listener)) {
	if c.cfg.Listener == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			c.logger.Warn("membros listener panic", zap.Any("panic", r))
		}
	}()
	fn(c.cfg.Listener)
}

func statusText(resp *http.Response) string {
	return strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)+" ")
}

// NewIdempotencyKey gera uma chave para RequestOptions.IdempotencyKey.
// Reutilize a mesma chave ao repetir manualmente uma criação de pagamento.
func NewIdempotencyKey() string {
	return uuid.NewString()
}
