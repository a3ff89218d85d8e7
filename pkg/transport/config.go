package transport

import (
	"fmt"
	"net/http"
	"net/url"
	"runtime"
	"strings"
	"time"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/magnani/membros-go/pkg/apierr"
)

// CodeInvalidConfiguration é o código dos erros de configuração detectados em New
const CodeInvalidConfiguration = "INVALID_CONFIGURATION"

// configError cria um erro de configuração preservando a causa
func configError(message string, cause error) *apierr.Error {
	e := apierr.New(apierr.KindGeneric, message, CodeInvalidConfiguration, 0, nil)
	e.Err = cause
	return e
}

// SDKVersion é a versão reportada no User-Agent
const SDKVersion = "1.0.0"

// Valores padrão da configuração
const (
	DefaultBaseURL    = "https://api.membros.app"
	DefaultVersion    = "v2"
	DefaultTimeout    = 30 * time.Second
	DefaultMaxRetries = 3
)

// Config reúne todas as opções aceitas pelo transporte.
// Campos zerados recebem o valor padrão documentado em cada campo.
type Config struct {
	// SecretKey é a chave secreta (sk_...), obrigatória
	SecretKey string
	// PublicKey é a chave pública (pk_...), obrigatória
	PublicKey string
	// ProjectID é enviado no header X-Project-ID quando preenchido
	ProjectID string

	// BaseURL da API, padrão DefaultBaseURL
	BaseURL string
	// Version é o prefixo de versão dos paths, padrão DefaultVersion
	Version string
	// Timeout de cada tentativa, padrão DefaultTimeout
	Timeout time.Duration
	// MaxRetries limita as retentativas de 5xx/rede, padrão DefaultMaxRetries.
	// Valores negativos desligam essas retentativas.
	MaxRetries int
	// UserAgent sobrescreve o header User-Agent
	UserAgent string

	// HTTPClient substitui o cliente HTTP interno (proxy, keep-alive, transporte próprio).
	// Quando informado, ProxyURL e o certificado são ignorados.
	HTTPClient *http.Client
	// ProxyURL roteia as requisições por um proxy HTTP
	ProxyURL string
	// CertificatePath aponta para um certificado cliente .p12 (mTLS), opcional
	CertificatePath string
	// CertificatePassword é a senha do certificado .p12
	CertificatePassword string

	// RateLimit limita as requisições por segundo deste cliente; 0 desliga
	RateLimit float64
	// RateBurst é a rajada permitida pelo limitador, padrão 1
	RateBurst int

	// Logger recebe os logs do transporte, padrão zap.NewNop()
	Logger *zap.Logger
	// Listener recebe os eventos do ciclo de vida das requisições
	Listener Listener
	// Tracer cria um span por chamada, padrão o tracer global do otel
	Tracer trace.Tracer
}

// withDefaults devolve uma cópia com os valores padrão aplicados
func (c Config) withDefaults() Config {
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	if c.Version == "" {
		c.Version = DefaultVersion
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	if c.MaxRetries == 0 {
		c.MaxRetries = DefaultMaxRetries
	}
	if c.UserAgent == "" {
		c.UserAgent = fmt.Sprintf("membros-go/%s (%s)", SDKVersion, runtime.Version())
	}
	if c.RateLimit > 0 && c.RateBurst <= 0 {
		c.RateBurst = 1
	}
	if c.Logger == nil {
		c.Logger = zap.NewNop()
	}
	return c
}

// apiURL junta BaseURL e o prefixo de versão
func (c Config) apiURL() (string, error) {
	u, err := url.Parse(c.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return "", configError(fmt.Sprintf("BaseURL inválida: %q", c.BaseURL), err)
	}
	base := strings.TrimRight(c.BaseURL, "/")
	if v := strings.Trim(c.Version, "/"); v != "" {
		base += "/" + v
	}
	return base, nil
}

// RequestOptions sobrescreve a configuração base em uma única chamada.
// Cada campo zerado herda o valor do Config do cliente.
type RequestOptions struct {
	// Query é anexada à URL
	Query url.Values
	// Headers sobrescrevem os headers padrão
	Headers http.Header
	// Timeout de cada tentativa desta chamada
	Timeout time.Duration
	// MaxRetries desta chamada; negativo desliga as retentativas de 5xx/rede
	MaxRetries int
	// IdempotencyKey é enviada no header Idempotency-Key
	IdempotencyKey string
}

// callSettings é o resultado da mescla Config + RequestOptions
type callSettings struct {
	timeout    time.Duration
	maxRetries int
}

func (c Config) merge(opts *RequestOptions) callSettings {
	s := callSettings{
		timeout:    c.Timeout,
		maxRetries: c.MaxRetries,
	}
	if opts != nil {
		if opts.Timeout > 0 {
			s.timeout = opts.Timeout
		}
		if opts.MaxRetries != 0 {
			s.maxRetries = opts.MaxRetries
		}
	}
	if s.maxRetries < 0 {
		s.maxRetries = 0
	}
	return s
}
