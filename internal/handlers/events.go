package handlers

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/magnani/membros-go/pkg/membros"
	"github.com/magnani/membros-go/pkg/webhook"
)

// OrderRetriever busca o pedido completo na API; satisfeito por *membros.Orders
type OrderRetriever interface {
	Retrieve(ctx context.Context, id string) (*membros.Order, error)
}

// chargeData é o payload dos eventos charge.*
type chargeData struct {
	OrderID       string `json:"order_id"`
	FailureReason string `json:"failure_reason,omitempty"`
	RefundAmount  int64  `json:"refund_amount,omitempty"`
}

// PaymentEvents trata os eventos de cobrança e pedido
type PaymentEvents struct {
	orders OrderRetriever
	logger *zap.Logger
}

// NewPaymentEvents cria os handlers. orders pode ser nil quando o serviço
// roda sem credenciais; nesse caso os eventos são apenas registrados em log.
func NewPaymentEvents(orders OrderRetriever, logger *zap.Logger) *PaymentEvents {
	return &PaymentEvents{orders: orders, logger: logger}
}

// Register associa cada tipo de evento ao seu handler
func (p *PaymentEvents) Register(h *webhook.Handler) {
	h.On(webhook.EventChargePaid, p.HandleChargePaid)
	h.On(webhook.EventChargePaymentFailed, p.HandleChargeFailed)
	h.On(webhook.EventChargeRefunded, p.HandleChargeRefunded)
	h.On(webhook.EventOrderCreated, p.HandleOrderEvent)
	h.On(webhook.EventOrderCancelled, p.HandleOrderEvent)
	h.On(webhook.EventOrderExpired, p.HandleOrderEvent)
}

// HandleChargePaid confirma o pagamento consultando o pedido na API
func (p *PaymentEvents) HandleChargePaid(ctx context.Context, event *webhook.Event) error {
	data, err := decodeCharge(event)
	if err != nil {
		return err
	}

	order, err := p.retrieve(ctx, data.OrderID)
	if err != nil {
		return err
	}
	if order == nil {
		p.logger.Info("payment received", zap.String("order_id", data.OrderID))
		return nil
	}

	fields := []zap.Field{
		zap.String("order_id", order.ID),
		zap.Int64("amount", order.Amount),
		zap.String("payment_method", string(order.PaymentMethod)),
		zap.String("status", string(order.Status)),
	}
	if order.Customer != nil {
		fields = append(fields, zap.String("customer", order.Customer.Name))
	}

	if order.Status != membros.OrderStatusPaid {
		p.logger.Warn("payment event for order not marked as paid", fields...)
		return nil
	}
	p.logger.Info("payment confirmed", fields...)
	return nil
}

// HandleChargeFailed registra a falha de pagamento com o motivo informado
func (p *PaymentEvents) HandleChargeFailed(ctx context.Context, event *webhook.Event) error {
	data, err := decodeCharge(event)
	if err != nil {
		return err
	}

	if _, err := p.retrieve(ctx, data.OrderID); err != nil {
		return err
	}
	p.logger.Warn("payment failed",
		zap.String("order_id", data.OrderID),
		zap.String("reason", data.FailureReason),
	)
	return nil
}

// HandleChargeRefunded registra o estorno
func (p *PaymentEvents) HandleChargeRefunded(ctx context.Context, event *webhook.Event) error {
	data, err := decodeCharge(event)
	if err != nil {
		return err
	}

	if _, err := p.retrieve(ctx, data.OrderID); err != nil {
		return err
	}
	p.logger.Info("refund processed",
		zap.String("order_id", data.OrderID),
		zap.Int64("refund_amount", data.RefundAmount),
	)
	return nil
}

// HandleOrderEvent registra criação, cancelamento e expiração de pedidos
func (p *PaymentEvents) HandleOrderEvent(_ context.Context, event *webhook.Event) error {
	var order membros.Order
	if err := event.Decode(&order); err != nil {
		return err
	}
	p.logger.Info("order event",
		zap.String("type", string(event.Type)),
		zap.String("order_id", order.ID),
		zap.String("status", string(order.Status)),
	)
	return nil
}

func (p *PaymentEvents) retrieve(ctx context.Context, orderID string) (*membros.Order, error) {
	if p.orders == nil {
		return nil, nil
	}
	order, err := p.orders.Retrieve(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar pedido %s: %w", orderID, err)
	}
	return order, nil
}

func decodeCharge(event *webhook.Event) (*chargeData, error) {
	var data chargeData
	if err := event.Decode(&data); err != nil {
		return nil, err
	}
	if data.OrderID == "" {
		return nil, fmt.Errorf("evento %s sem order_id", event.ID)
	}
	return &data, nil
}
