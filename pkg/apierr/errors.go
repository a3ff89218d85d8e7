// Package apierr define a taxonomia de erros do SDK Membros.
//
// Todo erro que sai do SDK é um *Error com um Kind fechado, um código de máquina
// estável e o status HTTP que o originou. A classificação acontece uma única vez,
// na fronteira do transporte; as camadas de cima apenas propagam.
package apierr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind identifica a categoria de um erro
type Kind string

const (
	KindValidation     Kind = "ValidationError"
	KindAuthentication Kind = "AuthenticationError"
	KindPermission     Kind = "PermissionError"
	KindNotFound       Kind = "NotFoundError"
	KindRateLimit      Kind = "RateLimitError"
	KindAPI            Kind = "APIError"
	KindGeneric        Kind = "Error"
	KindNetwork        Kind = "NetworkError"
)

// Códigos padrão usados quando o servidor não informa um código próprio
const (
	CodeValidation     = "VALIDATION_ERROR"
	CodeAuthentication = "AUTHENTICATION_ERROR"
	CodePermission     = "PERMISSION_ERROR"
	CodeNotFound       = "NOT_FOUND_ERROR"
	CodeRateLimit      = "RATE_LIMIT_ERROR"
	CodeAPI            = "API_ERROR"
	CodeUnknown        = "UNKNOWN_ERROR"
	CodeNetwork        = "NETWORK_ERROR"
)

// Erros sentinela, um por Kind, para uso com errors.Is
var (
	// ErrValidation indica dados inválidos (400 ou validação local)
	ErrValidation = errors.New("membros: erro de validação")

	// ErrAuthentication indica credenciais inválidas (401)
	ErrAuthentication = errors.New("membros: falha de autenticação")

	// ErrPermission indica acesso negado (403)
	ErrPermission = errors.New("membros: permissão negada")

	// ErrNotFound indica que o recurso não foi encontrado (404)
	ErrNotFound = errors.New("membros: recurso não encontrado")

	// ErrRateLimit indica rate limiting (429)
	ErrRateLimit = errors.New("membros: rate limit atingido")

	// ErrAPI indica erro interno do servidor Membros (5xx)
	ErrAPI = errors.New("membros: erro do servidor")

	// ErrGeneric cobre respostas não classificadas
	ErrGeneric = errors.New("membros: erro")

	// ErrNetwork indica que nenhuma resposta HTTP foi recebida
	ErrNetwork = errors.New("membros: falha de rede")
)

var sentinels = map[Kind]error{
	KindValidation:     ErrValidation,
	KindAuthentication: ErrAuthentication,
	KindPermission:     ErrPermission,
	KindNotFound:       ErrNotFound,
	KindRateLimit:      ErrRateLimit,
	KindAPI:            ErrAPI,
	KindGeneric:        ErrGeneric,
	KindNetwork:        ErrNetwork,
}

var defaultCodes = map[Kind]string{
	KindValidation:     CodeValidation,
	KindAuthentication: CodeAuthentication,
	KindPermission:     CodePermission,
	KindNotFound:       CodeNotFound,
	KindRateLimit:      CodeRateLimit,
	KindAPI:            CodeAPI,
	KindGeneric:        CodeUnknown,
	KindNetwork:        CodeNetwork,
}

// Error é o erro estruturado devolvido por todas as operações do SDK
type Error struct {
	Kind    Kind
	Message string
	Code    string
	Status  int
	// Details carrega o payload extra do servidor, ex: {"errors": [...]}
	Details map[string]any
	// Err é a causa de transporte, presente apenas em erros de rede
	Err error
}

// Error implementa a interface error
func (e *Error) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("%s (%s, status %d): %s", e.Kind, e.Code, e.Status, e.Message)
	}
	return fmt.Sprintf("%s (%s): %s", e.Kind, e.Code, e.Message)
}

// Unwrap expõe a causa de transporte
func (e *Error) Unwrap() error {
	return e.Err
}

// Is faz o erro casar com o sentinela do seu Kind
func (e *Error) Is(target error) bool {
	s, ok := sentinels[e.Kind]
	return ok && s == target
}

// FieldErrors retorna a lista details.errors, quando presente
func (e *Error) FieldErrors() []string {
	if e.Details == nil {
		return nil
	}
	switch v := e.Details["errors"].(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			} else {
				out = append(out, fmt.Sprint(item))
			}
		}
		return out
	}
	return nil
}

// New cria um erro de um Kind específico; code vazio usa o código padrão do Kind
func New(kind Kind, message, code string, status int, details map[string]any) *Error {
	if code == "" {
		code = defaultCodes[kind]
	}
	return &Error{
		Kind:    kind,
		Message: message,
		Code:    code,
		Status:  status,
		Details: details,
	}
}

// Validation cria um erro de validação local (pré-voo, nunca chega à rede)
func Validation(message, code string, details map[string]any) *Error {
	return New(KindValidation, message, code, http.StatusBadRequest, details)
}

// Authentication cria um erro de autenticação
func Authentication(message, code string) *Error {
	return New(KindAuthentication, message, code, http.StatusUnauthorized, nil)
}

// Network cria um erro de rede a partir da falha de transporte
func Network(cause error) *Error {
	msg := "Network request failed"
	if cause != nil {
		msg = cause.Error()
	}
	e := New(KindNetwork, msg, CodeNetwork, 0, nil)
	e.Err = cause
	return e
}

// KindForStatus mapeia um status HTTP para o Kind correspondente
func KindForStatus(status int) Kind {
	switch status {
	case http.StatusBadRequest:
		return KindValidation
	case http.StatusUnauthorized:
		return KindAuthentication
	case http.StatusForbidden:
		return KindPermission
	case http.StatusNotFound:
		return KindNotFound
	case http.StatusTooManyRequests:
		return KindRateLimit
	}
	if status >= 500 {
		return KindAPI
	}
	if status == 0 {
		return KindNetwork
	}
	return KindGeneric
}

// FromStatus classifica um erro pelo status HTTP
func FromStatus(status int, message, code string, details map[string]any) *Error {
	return New(KindForStatus(status), message, code, status, details)
}

// As extrai o *Error da cadeia de err
func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}
