// Package config gerencia as configurações do serviço de webhooks
// carregando variáveis de ambiente e, opcionalmente, um arquivo .env
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"

	"github.com/magnani/membros-go/internal/logging"
	"github.com/magnani/membros-go/pkg/membros"
	"github.com/magnani/membros-go/pkg/transport"
)

// Config armazena todas as configurações da aplicação
type Config struct {
	// Servidor
	Port      string `env:"PORT" envDefault:"8080"`
	Env       string `env:"ENV" envDefault:"development"`
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT"`

	Membros MembrosConfig `envPrefix:"MEMBROS_"`
	Webhook WebhookConfig `envPrefix:"WEBHOOK_"`
	Redis   RedisConfig   `envPrefix:"REDIS_"`
}

// MembrosConfig armazena as credenciais e opções do cliente da API
type MembrosConfig struct {
	SecretKey           string        `env:"SECRET_KEY"`
	PublicKey           string        `env:"PUBLIC_KEY"`
	ProjectID           string        `env:"PROJECT_ID"`
	APIURL              string        `env:"API_URL"`
	Version             string        `env:"API_VERSION"`
	Timeout             time.Duration `env:"TIMEOUT" envDefault:"30s"`
	MaxRetries          int           `env:"MAX_RETRIES" envDefault:"3"`
	RateLimit           float64       `env:"RATE_LIMIT"`
	ProxyURL            string        `env:"PROXY_URL"`
	CertificatePath     string        `env:"CERTIFICATE_PATH"`
	CertificatePassword string        `env:"CERTIFICATE_PASSWORD"`
}

// WebhookConfig armazena configurações de webhook
type WebhookConfig struct {
	Secret   string        `env:"SECRET"`
	DedupTTL time.Duration `env:"DEDUP_TTL" envDefault:"24h"`
}

// RedisConfig configura o store de eventos duplicados; Addr vazio usa memória
type RedisConfig struct {
	Addr     string `env:"ADDR"`
	Password string `env:"PASSWORD"`
	DB       int    `env:"DB"`
}

// Load carrega as configurações do .env (opcional) e das variáveis de ambiente.
// Variáveis já definidas no ambiente têm prioridade sobre o arquivo.
func Load(files ...string) (*Config, error) {
	_ = godotenv.Load(files...)

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("erro ao ler variáveis de ambiente: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// validate verifica se as configurações obrigatórias estão presentes
func (c *Config) validate() error {
	if c.Port == "" {
		return fmt.Errorf("PORT é obrigatório")
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("LOG_LEVEL: %w", err)
	}
	if (c.Membros.SecretKey == "") != (c.Membros.PublicKey == "") {
		return fmt.Errorf("MEMBROS_SECRET_KEY e MEMBROS_PUBLIC_KEY devem ser informadas juntas")
	}
	if c.Membros.SecretKey != "" {
		if err := transport.ValidateSecretKey(c.Membros.SecretKey); err != nil {
			return fmt.Errorf("MEMBROS_SECRET_KEY: %w", err)
		}
		if err := transport.ValidatePublicKey(c.Membros.PublicKey); err != nil {
			return fmt.Errorf("MEMBROS_PUBLIC_KEY: %w", err)
		}
	}
	if c.IsProduction() && c.Webhook.Secret == "" {
		return fmt.Errorf("WEBHOOK_SECRET é obrigatório em produção")
	}
	return nil
}

// IsDevelopment retorna true se estiver em ambiente de desenvolvimento
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// IsProduction retorna true se estiver em ambiente de produção
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// HasCredentials indica se o cliente da API pode ser criado
func (c *Config) HasCredentials() bool {
	return c.Membros.SecretKey != "" && c.Membros.PublicKey != ""
}

// ClientOptions monta as opções do cliente Membros
func (c *Config) ClientOptions() membros.Options {
	return membros.Options{
		SecretKey:           c.Membros.SecretKey,
		PublicKey:           c.Membros.PublicKey,
		ProjectID:           c.Membros.ProjectID,
		BaseURL:             c.Membros.APIURL,
		Version:             c.Membros.Version,
		Timeout:             c.Membros.Timeout,
		MaxRetries:          c.Membros.MaxRetries,
		RateLimit:           c.Membros.RateLimit,
		ProxyURL:            c.Membros.ProxyURL,
		CertificatePath:     c.Membros.CertificatePath,
		CertificatePassword: c.Membros.CertificatePassword,
	}
}

// LoggingConfig monta a configuração do logger
func (c *Config) LoggingConfig(serviceName string) logging.Config {
	return logging.Config{
		ServiceName: serviceName,
		Env:         c.Env,
		Level:       c.LogLevel,
		Format:      c.LogFormat,
	}
}
