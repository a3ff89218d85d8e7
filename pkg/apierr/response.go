package apierr

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
)

// errorBody é o envelope de erro da API; aceita o formato plano e o aninhado em "error"
type errorBody struct {
	Message string         `json:"message"`
	Code    string         `json:"code"`
	Details map[string]any `json:"details"`
	Errors  []any          `json:"errors"`
	Error   *struct {
		Message string         `json:"message"`
		Code    string         `json:"code"`
		Details map[string]any `json:"details"`
	} `json:"error"`
}

// FromResponse classifica uma resposta HTTP de erro.
// Usa mensagem, código e detalhes informados pelo servidor quando existirem,
// caindo para o status text / corpo cru caso contrário.
func FromResponse(status int, statusText string, body []byte) *Error {
	var (
		message string
		code    string
		details map[string]any
	)

	var parsed errorBody
	if len(body) > 0 && json.Unmarshal(body, &parsed) == nil {
		message, code, details = parsed.Message, parsed.Code, parsed.Details
		if parsed.Error != nil {
			if message == "" {
				message = parsed.Error.Message
			}
			if code == "" {
				code = parsed.Error.Code
			}
			if details == nil {
				details = parsed.Error.Details
			}
		}
		if details == nil && len(parsed.Errors) > 0 {
			details = map[string]any{"errors": parsed.Errors}
		}
	}

	if message == "" {
		message = fallbackMessage(status, statusText, body)
	}

	return FromStatus(status, message, code, details)
}

func fallbackMessage(status int, statusText string, body []byte) string {
	if raw := strings.TrimSpace(string(body)); raw != "" && !strings.HasPrefix(raw, "{") && len(raw) <= 512 {
		return raw
	}
	if statusText != "" {
		return statusText
	}
	if text := http.StatusText(status); text != "" {
		return text
	}
	return "Request failed"
}

// IsNotFound retorna true se o erro indica recurso inexistente
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsAuthentication retorna true se o erro indica falha de autenticação
func IsAuthentication(err error) bool {
	return errors.Is(err, ErrAuthentication)
}

// IsValidation retorna true se o erro indica dados inválidos
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}

// IsRateLimited retorna true se o erro indica rate limiting
func IsRateLimited(err error) bool {
	return errors.Is(err, ErrRateLimit)
}

// IsServerError retorna true se o erro é do servidor (5xx)
func IsServerError(err error) bool {
	return errors.Is(err, ErrAPI)
}

// IsNetwork retorna true se nenhuma resposta HTTP foi recebida
func IsNetwork(err error) bool {
	return errors.Is(err, ErrNetwork)
}

// IsRetryable indica se o erro pertence a uma classe que o transporte retenta
// (429, 5xx, rede). Quando chega ao chamador, as tentativas já se esgotaram.
func IsRetryable(err error) bool {
	return IsRateLimited(err) || IsServerError(err) || IsNetwork(err)
}

// CodeOf retorna o código de máquina do erro, ou "" se não for um *Error
func CodeOf(err error) string {
	if e, ok := As(err); ok {
		return e.Code
	}
	return ""
}

// StatusOf retorna o status HTTP do erro, ou 0 se não for um *Error
func StatusOf(err error) int {
	if e, ok := As(err); ok {
		return e.Status
	}
	return 0
}
