package membros

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magnani/membros-go/pkg/apierr"
)

func TestOrders_CreatePix(t *testing.T) {
	client, api := newFakeClient(t, 201, `{"id":"ord_1","status":"pending","payment_method":"pix","amount":25000,"pix_qr_code":"000201..."}`)

	order, err := client.Orders.CreatePix(context.Background(), PixOrderParams{
		CustomerID: "cus_1",
		Items: []OrderItem{
			{Description: "Curso", Amount: 10000, Quantity: 2},
			{Description: "Taxa", Amount: 5000, Quantity: 1},
		},
		ExpiresIn: 3600,
	})
	require.NoError(t, err)
	assert.Equal(t, OrderStatusPending, order.Status)
	assert.Equal(t, "000201...", order.PixQRCode)

	req := api.last(t)
	assert.Equal(t, http.MethodPost, req.Method)
	assert.Equal(t, "/v2/orders/pix", req.Path)
	assert.Equal(t, "cus_1", req.Body["customer"])
	assert.Equal(t, float64(25000), req.Body["amount"])
	assert.Equal(t, "pix", req.Body["payment_method"])
	assert.Equal(t, float64(3600), req.Body["expires_in"])
}

func TestOrders_ItemValidationHappensBeforeNetwork(t *testing.T) {
	tests := []struct {
		name     string
		items    []OrderItem
		wantCode string
		wantErrs []string
	}{
		{
			name:     "sem itens",
			items:    nil,
			wantCode: CodeMissingOrderItems,
		},
		{
			name:     "valor zero",
			items:    []OrderItem{{Description: "Curso", Amount: 0, Quantity: 1}},
			wantCode: CodeOrderValidation,
			wantErrs: []string{"Item 1: Amount must be greater than 0"},
		},
		{
			name: "vários problemas",
			items: []OrderItem{
				{Description: "ok", Amount: 100, Quantity: 1},
				{Description: " ", Amount: -1, Quantity: 0},
			},
			wantCode: CodeOrderValidation,
			wantErrs: []string{
				"Item 2: Description is required",
				"Item 2: Amount must be greater than 0",
				"Item 2: Quantity must be greater than 0",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, api := newFakeClient(t, 201, `{}`)

			_, err := client.Orders.CreatePix(context.Background(), PixOrderParams{CustomerID: "cus_1", Items: tt.items})
			require.Error(t, err)
			assert.True(t, errors.Is(err, apierr.ErrValidation))
			assert.Equal(t, tt.wantCode, apierr.CodeOf(err))
			assert.Equal(t, 400, apierr.StatusOf(err))
			if tt.wantErrs != nil {
				e, ok := apierr.As(err)
				require.True(t, ok)
				assert.Equal(t, tt.wantErrs, e.FieldErrors())
			}
			assert.Zero(t, api.count(), "nenhuma requisição deveria ter sido feita")
		})
	}
}

func TestOrders_RequiresCustomer(t *testing.T) {
	client, api := newFakeClient(t, 201, `{}`)

	_, err := client.Orders.Create(context.Background(), OrderParams{
		Items:         []OrderItem{{Description: "Curso", Amount: 100, Quantity: 1}},
		PaymentMethod: PaymentMethodPix,
	})
	require.Error(t, err)
	assert.Equal(t, CodeMissingCustomer, apierr.CodeOf(err))
	assert.Zero(t, api.count())
}

func TestOrders_CreateWithNewCustomer(t *testing.T) {
	client, api := newFakeClient(t, 201, `{"id":"ord_2"}`)

	_, err := client.Orders.CreateBoleto(context.Background(), BoletoOrderParams{
		Customer: &CustomerParams{
			Name:      "ACME Ltda",
			Email:     "financeiro@acme.com",
			Document:  "11444777000161",
			HomePhone: "1133334444",
		},
		Items: []OrderItem{{Description: "Licença", Amount: 49900, Quantity: 1}},
	})
	require.NoError(t, err)

	req := api.last(t)
	assert.Equal(t, "/v2/orders/boleto", req.Path)
	assert.Equal(t, "boleto", req.Body["payment_method"])
	assert.NotContains(t, req.Body, "expires_in")

	customer := req.Body["customer"].(map[string]any)
	assert.Equal(t, "11.444.777/0001-61", customer["document"])
	assert.Equal(t, "CNPJ", customer["document_type"])
	home := customer["phones"].(map[string]any)["home_phone"].(map[string]any)
	assert.Equal(t, "33334444", home["number"])
}

func TestOrders_CreateWithInvalidNewCustomer(t *testing.T) {
	client, api := newFakeClient(t, 201, `{}`)

	_, err := client.Orders.Create(context.Background(), OrderParams{
		Customer:      &CustomerParams{Name: "A", Email: "a@b.com", Document: "12345678909"},
		Items:         []OrderItem{{Description: "Curso", Amount: 100, Quantity: 1}},
		PaymentMethod: PaymentMethodPix,
	})
	require.Error(t, err)
	assert.True(t, apierr.IsValidation(err))
	assert.Zero(t, api.count())
}

func TestOrders_CreateCreditCard(t *testing.T) {
	client, api := newFakeClient(t, 201, `{"id":"ord_3","status":"paid"}`)

	_, err := client.Orders.CreateCreditCard(context.Background(), CreditCardOrderParams{
		CustomerID: "cus_1",
		Items:      []OrderItem{{Description: "Curso", Amount: 100, Quantity: 1}},
	})
	require.Error(t, err)
	assert.Equal(t, CodeMissingCardToken, apierr.CodeOf(err))
	assert.Zero(t, api.count())

	order, err := client.Orders.CreateCreditCard(context.Background(), CreditCardOrderParams{
		CustomerID: "cus_1",
		Items:      []OrderItem{{Description: "Curso", Amount: 100, Quantity: 1}},
		CardToken:  "tok_123",
	})
	require.NoError(t, err)
	assert.Equal(t, OrderStatusPaid, order.Status)

	req := api.last(t)
	assert.Equal(t, "/v2/orders/credit-card", req.Path)
	assert.Equal(t, "tok_123", req.Body["card_token"])
	assert.Equal(t, float64(1), req.Body["installments"])
	assert.Equal(t, "credit_card", req.Body["payment_method"])
}

func TestOrders_Subresources(t *testing.T) {
	tests := []struct {
		name   string
		call   func(*Client) error
		method string
		path   string
	}{
		{
			name:   "retrieve",
			call:   func(c *Client) error { _, err := c.Orders.Retrieve(context.Background(), "ord_1"); return err },
			method: http.MethodGet,
			path:   "/v2/orders/ord_1",
		},
		{
			name:   "cancel",
			call:   func(c *Client) error { _, err := c.Orders.Cancel(context.Background(), "ord_1", "duplicado"); return err },
			method: http.MethodPost,
			path:   "/v2/orders/ord_1/cancel",
		},
		{
			name: "refund",
			call: func(c *Client) error {
				_, err := c.Orders.Refund(context.Background(), "ord_1", RefundParams{Amount: 500})
				return err
			},
			method: http.MethodPost,
			path:   "/v2/orders/ord_1/refunds",
		},
		{
			name:   "pix qr code",
			call:   func(c *Client) error { _, err := c.Orders.PixQRCode(context.Background(), "ord_1"); return err },
			method: http.MethodGet,
			path:   "/v2/orders/ord_1/pix/qr-code",
		},
		{
			name:   "boleto",
			call:   func(c *Client) error { _, err := c.Orders.Boleto(context.Background(), "ord_1"); return err },
			method: http.MethodGet,
			path:   "/v2/orders/ord_1/boleto",
		},
		{
			name:   "refunds",
			call:   func(c *Client) error { _, err := c.Orders.ListRefunds(context.Background(), "ord_1"); return err },
			method: http.MethodGet,
			path:   "/v2/orders/ord_1/refunds",
		},
		{
			name:   "status",
			call:   func(c *Client) error { _, err := c.Orders.Status(context.Background(), "ord_1"); return err },
			method: http.MethodGet,
			path:   "/v2/orders/ord_1/status",
		},
		{
			name: "list",
			call: func(c *Client) error {
				_, err := c.Orders.List(context.Background(), OrderListParams{Status: OrderStatusPaid})
				return err
			},
			method: http.MethodGet,
			path:   "/v2/orders",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, api := newFakeClient(t, 200, `{}`)

			require.NoError(t, tt.call(client))
			req := api.last(t)
			assert.Equal(t, tt.method, req.Method)
			assert.Equal(t, tt.path, req.Path)
		})
	}
}

func TestOrders_CancelAndRefundBodies(t *testing.T) {
	client, api := newFakeClient(t, 200, `{}`)

	_, err := client.Orders.Cancel(context.Background(), "ord_1", "duplicado")
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"reason": "duplicado"}, api.last(t).Body)

	_, err = client.Orders.Refund(context.Background(), "ord_1", RefundParams{})
	require.NoError(t, err)
	assert.Empty(t, api.last(t).Body, "estorno total não envia valor")

	_, err = client.Orders.Refund(context.Background(), "ord_1", RefundParams{Amount: -5})
	require.Error(t, err)
	assert.Equal(t, CodeInvalidRefundAmount, apierr.CodeOf(err))
	assert.Contains(t, err.Error(), "must not be negative")
}

func TestOrders_ServerErrorsKeepClassification(t *testing.T) {
	client, _ := newFakeClient(t, 404, `{"error":{"message":"Order not found","code":"ORDER_NOT_FOUND"}}`)

	_, err := client.Orders.Retrieve(context.Background(), "ord_missing")
	require.Error(t, err)
	assert.True(t, errors.Is(err, apierr.ErrNotFound))
	assert.Equal(t, "ORDER_NOT_FOUND", apierr.CodeOf(err))

	apiErr, ok := err.(*apierr.Error)
	require.True(t, ok, "erro deve chegar ao chamador sem embrulho, veio %T", err)
	assert.Equal(t, apierr.KindNotFound, apiErr.Kind)
	assert.Equal(t, 404, apiErr.Status)
	assert.Equal(t, "Order not found", apiErr.Message)
}

func TestOrderTotal(t *testing.T) {
	items := []OrderItem{
		{Amount: 1999, Quantity: 3},
		{Amount: 1, Quantity: 1},
	}
	assert.Equal(t, int64(5998), orderTotal(items))
	assert.Zero(t, orderTotal(nil))
}
