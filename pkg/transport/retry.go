package transport

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/magnani/membros-go/pkg/apierr"
)

const (
	baseBackoff       = 1 * time.Second
	maxBackoff        = 10 * time.Second
	defaultRetryAfter = 1 * time.Second
)

// backoff calcula o atraso da n-ésima retentativa de 5xx/rede: 1s, 2s, 4s, 8s, 10s...
func backoff(retry int) time.Duration {
	if retry < 1 {
		retry = 1
	}
	if retry > 5 {
		return maxBackoff
	}
	d := baseBackoff * time.Duration(1<<uint(retry-1))
	if d > maxBackoff {
		return maxBackoff
	}
	return d
}

// retryAfter lê o header Retry-After (segundos ou data HTTP), padrão 1s
func retryAfter(h http.Header) time.Duration {
	v := strings.TrimSpace(h.Get("Retry-After"))
	if v == "" {
		return defaultRetryAfter
	}
	if secs, err := strconv.ParseFloat(v, 64); err == nil && secs >= 0 {
		return time.Duration(secs * float64(time.Second))
	}
	if at, err := http.ParseTime(v); err == nil {
		if d := time.Until(at); d > 0 {
			return d
		}
		return 0
	}
	return defaultRetryAfter
}

// retryState acompanha as duas políticas independentes de uma chamada
type retryState struct {
	maxRetries  int
	retries     int  // retentativas de 5xx/rede já feitas
	rateLimited bool // a retentativa única de 429 já foi usada
}

// next decide se a chamada deve ser repetida e quanto esperar
func (s *retryState) next(ctx context.Context, err *apierr.Error, header http.Header) (time.Duration, bool) {
	if ctx.Err() != nil {
		return 0, false
	}

	switch err.Kind {
	case apierr.KindRateLimit:
		if s.rateLimited {
			return 0, false
		}
		s.rateLimited = true
		return retryAfter(header), true
	case apierr.KindAPI, apierr.KindNetwork:
		if s.retries >= s.maxRetries {
			return 0, false
		}
		s.retries++
		return backoff(s.retries), true
	}
	return 0, false
}

// sleepContext espera d ou até o contexto terminar
func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
