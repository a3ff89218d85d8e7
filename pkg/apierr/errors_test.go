package apierr

import (
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromStatus(t *testing.T) {
	tests := []struct {
		status   int
		wantKind Kind
		wantCode string
		sentinel error
	}{
		{400, KindValidation, CodeValidation, ErrValidation},
		{401, KindAuthentication, CodeAuthentication, ErrAuthentication},
		{403, KindPermission, CodePermission, ErrPermission},
		{404, KindNotFound, CodeNotFound, ErrNotFound},
		{429, KindRateLimit, CodeRateLimit, ErrRateLimit},
		{500, KindAPI, CodeAPI, ErrAPI},
		{503, KindAPI, CodeAPI, ErrAPI},
		{409, KindGeneric, CodeUnknown, ErrGeneric},
		{418, KindGeneric, CodeUnknown, ErrGeneric},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.status), func(t *testing.T) {
			err := FromStatus(tt.status, "boom", "", nil)
			assert.Equal(t, tt.wantKind, err.Kind)
			assert.Equal(t, tt.wantCode, err.Code)
			assert.Equal(t, tt.status, err.Status)
			assert.True(t, errors.Is(err, tt.sentinel))
		})
	}
}

func TestFromStatus_KeepsServerCode(t *testing.T) {
	err := FromStatus(400, "invalid", "INVALID_AMOUNT", map[string]any{"field": "amount"})

	assert.Equal(t, "INVALID_AMOUNT", err.Code)
	assert.Equal(t, "amount", err.Details["field"])
	assert.False(t, errors.Is(err, ErrNotFound))
}

func TestFromResponse(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		statusText  string
		body        string
		wantMessage string
		wantCode    string
		wantErrors  []string
	}{
		{
			name:        "flat envelope",
			status:      400,
			body:        `{"message":"amount inválido","code":"INVALID_AMOUNT","details":{"errors":["amount"]}}`,
			wantMessage: "amount inválido",
			wantCode:    "INVALID_AMOUNT",
			wantErrors:  []string{"amount"},
		},
		{
			name:        "nested envelope",
			status:      404,
			body:        `{"error":{"message":"order not found","code":"ORDER_NOT_FOUND"}}`,
			wantMessage: "order not found",
			wantCode:    "ORDER_NOT_FOUND",
		},
		{
			name:        "top level errors list",
			status:      400,
			body:        `{"message":"invalid","errors":["name","email"]}`,
			wantMessage: "invalid",
			wantCode:    CodeValidation,
			wantErrors:  []string{"name", "email"},
		},
		{
			name:        "plain text body",
			status:      502,
			statusText:  "Bad Gateway",
			body:        "upstream down",
			wantMessage: "upstream down",
			wantCode:    CodeAPI,
		},
		{
			name:        "empty body uses status text",
			status:      503,
			statusText:  "Service Unavailable",
			wantMessage: "Service Unavailable",
			wantCode:    CodeAPI,
		},
		{
			name:        "empty body without status text",
			status:      403,
			wantMessage: "Forbidden",
			wantCode:    CodePermission,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := FromResponse(tt.status, tt.statusText, []byte(tt.body))
			assert.Equal(t, tt.wantMessage, err.Message)
			assert.Equal(t, tt.wantCode, err.Code)
			assert.Equal(t, tt.status, err.Status)
			assert.Equal(t, tt.wantErrors, err.FieldErrors())
		})
	}
}

func TestNetwork(t *testing.T) {
	err := Network(io.ErrUnexpectedEOF)

	assert.Equal(t, KindNetwork, err.Kind)
	assert.Equal(t, 0, err.Status)
	assert.Equal(t, CodeNetwork, err.Code)
	assert.True(t, errors.Is(err, ErrNetwork))
	assert.True(t, errors.Is(err, io.ErrUnexpectedEOF))
	assert.True(t, IsRetryable(err))
}

func TestClassifiedErrorSurvivesWrapping(t *testing.T) {
	wrapped := fmt.Errorf("erro ao consultar pedido: %w", FromStatus(404, "missing", "", nil))

	require.True(t, IsNotFound(wrapped))
	assert.Equal(t, CodeNotFound, CodeOf(wrapped))
	assert.Equal(t, 404, StatusOf(wrapped))

	e, ok := As(wrapped)
	require.True(t, ok)
	assert.Equal(t, KindNotFound, e.Kind)
}

func TestHelpers(t *testing.T) {
	assert.True(t, IsValidation(Validation("bad", "", nil)))
	assert.True(t, IsAuthentication(Authentication("bad", "INVALID_API_KEY")))
	assert.True(t, IsRateLimited(FromStatus(429, "slow down", "", nil)))
	assert.True(t, IsServerError(FromStatus(500, "oops", "", nil)))
	assert.False(t, IsRetryable(FromStatus(400, "bad", "", nil)))
	assert.Equal(t, "", CodeOf(errors.New("plain")))
	assert.Equal(t, 0, StatusOf(errors.New("plain")))
}

func TestError_Message(t *testing.T) {
	assert.Equal(t, "NotFoundError (NOT_FOUND_ERROR, status 404): missing",
		FromStatus(404, "missing", "", nil).Error())
	assert.Equal(t, "NetworkError (NETWORK_ERROR): dial failed",
		Network(errors.New("dial failed")).Error())
}
