// Package webhook recebe e valida as notificações enviadas pela Membros.
package webhook

import (
	"encoding/json"
	"fmt"

	"github.com/magnani/membros-go/pkg/apierr"
)

// EventType é o discriminador do evento
type EventType string

// Eventos enviados pela Membros
const (
	EventChargePaid          EventType = "charge.paid"
	EventChargePaymentFailed EventType = "charge.payment_failed"
	EventChargeRefunded      EventType = "charge.refunded"
	EventOrderCreated        EventType = "order.created"
	EventOrderCancelled      EventType = "order.cancelled"
	EventOrderExpired        EventType = "order.expired"
)

// Códigos de erro do webhook
const (
	CodeInvalidSignature = "INVALID_WEBHOOK_SIGNATURE"
	CodeInvalidPayload   = "INVALID_WEBHOOK_PAYLOAD"
)

// Event é o envelope de uma notificação
type Event struct {
	ID        string          `json:"id"`
	Type      EventType       `json:"type"`
	CreatedAt string          `json:"created_at,omitempty"`
	Data      json.RawMessage `json:"data"`
}

// Decode interpreta Data no tipo informado (ex: *membros.Order)
func (e *Event) Decode(v any) error {
	if len(e.Data) == 0 {
		return apierr.Validation("webhook event has no data", CodeInvalidPayload, nil)
	}
	if err := json.Unmarshal(e.Data, v); err != nil {
		return apierr.Validation(fmt.Sprintf("erro ao decodificar dados do evento %s: %v", e.Type, err), CodeInvalidPayload, nil)
	}
	return nil
}

// ParseEvent interpreta o corpo bruto de uma notificação
func ParseEvent(body []byte) (*Event, error) {
	var event Event
	if err := json.Unmarshal(body, &event); err != nil {
		return nil, apierr.Validation(fmt.Sprintf("invalid webhook payload: %v", err), CodeInvalidPayload, nil)
	}
	if event.Type == "" {
		return nil, apierr.Validation("webhook event type is required", CodeInvalidPayload, nil)
	}
	return &event, nil
}

// ConstructEvent verifica a assinatura e interpreta o evento
func ConstructEvent(body []byte, signature, secret string) (*Event, error) {
	if !VerifySignature(secret, body, signature) {
		return nil, apierr.Authentication("Invalid webhook signature", CodeInvalidSignature)
	}
	return ParseEvent(body)
}
