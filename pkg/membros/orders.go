package membros

import (
	"context"
	"net/http"
)

// Orders acessa o recurso /orders
type Orders struct {
	resource
}

// orderPayload é o corpo comum de criação de pedidos
type orderPayload struct {
	Customer      any           `json:"customer"` // ID do cliente ou *customerPayload
	Items         []OrderItem   `json:"items"`
	Amount        int64         `json:"amount"`
	PaymentMethod PaymentMethod `json:"payment_method"`
	ExpiresIn     int           `json:"expires_in,omitempty"`
	Metadata      Metadata      `json:"metadata,omitempty"`
	CardToken     string        `json:"card_token,omitempty"`
	Installments  int           `json:"installments,omitempty"`
}

// prepareOrder valida itens e cliente e calcula o total antes de qualquer chamada de rede
func prepareOrder(params OrderParams) (*orderPayload, error) {
	if err := validateOrderItems(params.Items); err != nil {
		return nil, err
	}

	var customer any
	switch {
	case params.Customer != nil:
		c, err := buildCustomerPayload(*params.Customer)
		if err != nil {
			return nil, err
		}
		customer = c
	case params.CustomerID != "":
		customer = params.CustomerID
	default:
		return nil, validationError("Customer ID or customer data is required", CodeMissingCustomer, nil)
	}

	return &orderPayload{
		Customer:      customer,
		Items:         params.Items,
		Amount:        orderTotal(params.Items),
		PaymentMethod: params.PaymentMethod,
		ExpiresIn:     params.ExpiresIn,
		Metadata:      params.Metadata,
	}, nil
}

// Create cria um pedido com o meio de pagamento informado
func (o *Orders) Create(ctx context.Context, params OrderParams) (*Order, error) {
	payload, err := prepareOrder(params)
	if err != nil {
		return nil, err
	}
	return call[Order](ctx, o.resource, http.MethodPost, o.path(), payload, nil)
}

// CreatePix cria um pedido PIX; o QR Code vem em Order.PixQRCode
func (o *Orders) CreatePix(ctx context.Context, params PixOrderParams) (*Order, error) {
	payload, err := prepareOrder(OrderParams{
		CustomerID:    params.CustomerID,
		Customer:      params.Customer,
		Items:         params.Items,
		PaymentMethod: PaymentMethodPix,
		ExpiresIn:     params.ExpiresIn,
		Metadata:      params.Metadata,
	})
	if err != nil {
		return nil, err
	}
	return call[Order](ctx, o.resource, http.MethodPost, o.path("pix"), payload, nil)
}

// CreateCreditCard cria um pedido no cartão a partir de um token de cartão
func (o *Orders) CreateCreditCard(ctx context.Context, params CreditCardOrderParams) (*Order, error) {
	if params.CardToken == "" {
		return nil, validationError("Card token is required for credit card payments", CodeMissingCardToken, nil)
	}

	payload, err := prepareOrder(OrderParams{
		CustomerID:    params.CustomerID,
		Customer:      params.Customer,
		Items:         params.Items,
		PaymentMethod: PaymentMethodCreditCard,
		Metadata:      params.Metadata,
	})
	if err != nil {
		return nil, err
	}

	payload.CardToken = params.CardToken
	payload.Installments = params.Installments
	if payload.Installments <= 0 {
		payload.Installments = 1
	}

	return call[Order](ctx, o.resource, http.MethodPost, o.path("credit-card"), payload, nil)
}

// CreateBoleto cria um pedido com boleto
func (o *Orders) CreateBoleto(ctx context.Context, params BoletoOrderParams) (*Order, error) {
	payload, err := prepareOrder(OrderParams{
		CustomerID:    params.CustomerID,
		Customer:      params.Customer,
		Items:         params.Items,
		PaymentMethod: PaymentMethodBoleto,
		ExpiresIn:     params.ExpiresIn,
		Metadata:      params.Metadata,
	})
	if err != nil {
		return nil, err
	}
	return call[Order](ctx, o.resource, http.MethodPost, o.path("boleto"), payload, nil)
}

// Retrieve consulta um pedido pelo ID
func (o *Orders) Retrieve(ctx context.Context, id string) (*Order, error) {
	if err := requireID("order id", id); err != nil {
		return nil, err
	}
	return call[Order](ctx, o.resource, http.MethodGet, o.path(id), nil, nil)
}

// List lista pedidos com filtros opcionais
func (o *Orders) List(ctx context.Context, params OrderListParams) (*ListResponse[Order], error) {
	q := params.values()
	if params.CustomerID != "" {
		q.Set("customer_id", params.CustomerID)
	}
	if params.Status != "" {
		q.Set("status", string(params.Status))
	}
	if params.PaymentMethod != "" {
		q.Set("payment_method", string(params.PaymentMethod))
	}
	return list[Order](ctx, o.resource, o.path(), q)
}

// Cancel cancela um pedido pendente
func (o *Orders) Cancel(ctx context.Context, id, reason string) (*Order, error) {
	if err := requireID("order id", id); err != nil {
		return nil, err
	}
	body := map[string]string{}
	if reason != "" {
		body["reason"] = reason
	}
	return call[Order](ctx, o.resource, http.MethodPost, o.path(id, "cancel"), body, nil)
}

// Refund estorna um pedido pago, total ou parcialmente
func (o *Orders) Refund(ctx context.Context, id string, params RefundParams) (*Refund, error) {
	if err := requireID("order id", id); err != nil {
		return nil, err
	}
	if params.Amount < 0 {
		return nil, validationError("Refund amount must not be negative", CodeInvalidRefundAmount, nil)
	}
	return call[Refund](ctx, o.resource, http.MethodPost, o.path(id, "refunds"), params, nil)
}

// PixQRCode consulta o QR Code PIX de um pedido
func (o *Orders) PixQRCode(ctx context.Context, id string) (*PixQRCode, error) {
	if err := requireID("order id", id); err != nil {
		return nil, err
	}
	return call[PixQRCode](ctx, o.resource, http.MethodGet, o.path(id, "pix", "qr-code"), nil, nil)
}

// Boleto consulta a URL e o código de barras do boleto de um pedido
func (o *Orders) Boleto(ctx context.Context, id string) (*Boleto, error) {
	if err := requireID("order id", id); err != nil {
		return nil, err
	}
	return call[Boleto](ctx, o.resource, http.MethodGet, o.path(id, "boleto"), nil, nil)
}

// ListRefunds lista os estornos de um pedido
func (o *Orders) ListRefunds(ctx context.Context, id string) (*ListResponse[Refund], error) {
	if err := requireID("order id", id); err != nil {
		return nil, err
	}
	return list[Refund](ctx, o.resource, o.path(id, "refunds"), nil)
}

// Status consulta o status de pagamento de um pedido
func (o *Orders) Status(ctx context.Context, id string) (*OrderPaymentStatus, error) {
	if err := requireID("order id", id); err != nil {
		return nil, err
	}
	return call[OrderPaymentStatus](ctx, o.resource, http.MethodGet, o.path(id, "status"), nil, nil)
}
