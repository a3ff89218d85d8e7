package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/magnani/membros-go/pkg/apierr"
	"github.com/magnani/membros-go/pkg/membros"
	"github.com/magnani/membros-go/pkg/webhook"
)

type fakeOrders struct {
	orders map[string]*membros.Order
	calls  []string
}

func (f *fakeOrders) Retrieve(_ context.Context, id string) (*membros.Order, error) {
	f.calls = append(f.calls, id)
	if o, ok := f.orders[id]; ok {
		return o, nil
	}
	return nil, apierr.FromStatus(http.StatusNotFound, "Order not found", "", nil)
}

func TestHealthCheck(t *testing.T) {
	tests := []struct {
		name       string
		ready      func() bool
		wantCode   int
		wantStatus string
	}{
		{"sem readiness", nil, http.StatusOK, "healthy"},
		{"pronto", func() bool { return true }, http.StatusOK, "healthy"},
		{"indisponível", func() bool { return false }, http.StatusServiceUnavailable, "unavailable"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			HealthCheck("membros-webhooks", tt.ready)(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

			assert.Equal(t, tt.wantCode, rec.Code)
			var body map[string]string
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.wantStatus, body["status"])
			assert.Equal(t, "membros-webhooks", body["service"])
		})
	}
}

func TestRouter_Routes(t *testing.T) {
	wh := webhook.NewHandler("secret")
	router := NewRouter(wh, nil, "svc", zap.NewNop())

	for _, path := range []string{"/health", "/api/health"} {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, rec.Code, path)
	}

	body := `{"id":"evt_1","type":"order.created","data":{"id":"ord_1"}}`
	req := httptest.NewRequest(http.MethodPost, WebhookPath, strings.NewReader(body))
	req.Header.Set(webhook.SignatureHeader, webhook.Sign("secret", []byte(body)))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, WebhookPath, nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func chargeEvent(t *testing.T, typ webhook.EventType, data string) *webhook.Event {
	t.Helper()
	event, err := webhook.ParseEvent([]byte(`{"id":"evt_1","type":"` + string(typ) + `","data":` + data + `}`))
	require.NoError(t, err)
	return event
}

func TestPaymentEvents_ChargePaid(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	orders := &fakeOrders{orders: map[string]*membros.Order{
		"ord_1": {ID: "ord_1", Amount: 9900, Status: membros.OrderStatusPaid, PaymentMethod: membros.PaymentMethodPix},
		"ord_2": {ID: "ord_2", Status: membros.OrderStatusPending},
	}}
	p := NewPaymentEvents(orders, zap.New(core))

	require.NoError(t, p.HandleChargePaid(context.Background(), chargeEvent(t, webhook.EventChargePaid, `{"order_id":"ord_1"}`)))
	assert.Equal(t, 1, logs.FilterMessage("payment confirmed").Len())

	require.NoError(t, p.HandleChargePaid(context.Background(), chargeEvent(t, webhook.EventChargePaid, `{"order_id":"ord_2"}`)))
	assert.Equal(t, 1, logs.FilterMessage("payment event for order not marked as paid").Len())

	err := p.HandleChargePaid(context.Background(), chargeEvent(t, webhook.EventChargePaid, `{"order_id":"ord_404"}`))
	require.Error(t, err)
	assert.True(t, errors.Is(err, apierr.ErrNotFound))

	err = p.HandleChargePaid(context.Background(), chargeEvent(t, webhook.EventChargePaid, `{}`))
	require.Error(t, err)

	assert.Equal(t, []string{"ord_1", "ord_2", "ord_404"}, orders.calls)
}

func TestPaymentEvents_WithoutClient(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	p := NewPaymentEvents(nil, zap.New(core))

	require.NoError(t, p.HandleChargePaid(context.Background(), chargeEvent(t, webhook.EventChargePaid, `{"order_id":"ord_1"}`)))
	require.NoError(t, p.HandleChargeFailed(context.Background(), chargeEvent(t, webhook.EventChargePaymentFailed, `{"order_id":"ord_1","failure_reason":"insufficient_funds"}`)))
	require.NoError(t, p.HandleChargeRefunded(context.Background(), chargeEvent(t, webhook.EventChargeRefunded, `{"order_id":"ord_1","refund_amount":500}`)))

	assert.Equal(t, 1, logs.FilterMessage("payment received").Len())
	failed := logs.FilterMessage("payment failed").All()
	require.Len(t, failed, 1)
	assert.Equal(t, "insufficient_funds", failed[0].ContextMap()["reason"])
	refunded := logs.FilterMessage("refund processed").All()
	require.Len(t, refunded, 1)
	assert.Equal(t, int64(500), refunded[0].ContextMap()["refund_amount"])
}

func TestPaymentEvents_RegisterDispatchesOrderEvents(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	p := NewPaymentEvents(nil, zap.New(core))
	h := webhook.NewHandler("")
	p.Register(h)

	for _, typ := range []webhook.EventType{webhook.EventOrderCreated, webhook.EventOrderCancelled, webhook.EventOrderExpired} {
		status := h.Process(context.Background(), chargeEvent(t, typ, `{"id":"ord_1","status":"pending"}`))
		assert.Equal(t, webhook.StatusReceived, status)
	}
	assert.Equal(t, 3, logs.FilterMessage("order event").Len())
}
