package membros

import (
	"fmt"
	"strings"

	"github.com/magnani/membros-go/pkg/apierr"
	"github.com/magnani/membros-go/pkg/validation"
)

// Códigos dos erros de validação locais
const (
	CodeMissingID             = "MISSING_ID"
	CodeMissingCustomer       = "MISSING_CUSTOMER"
	CodeMissingOrderItems     = "MISSING_ORDER_ITEMS"
	CodeOrderValidation       = "ORDER_VALIDATION_ERROR"
	CodeMissingCardToken      = "MISSING_CARD_TOKEN"
	CodeInvalidWithdrawAmount = "INVALID_WITHDRAW_AMOUNT"
	CodeInvalidRefundAmount   = "INVALID_REFUND_AMOUNT"
	CodeMissingSearchCriteria = "MISSING_SEARCH_CRITERIA"
)

func validationError(message, code string, details map[string]any) error {
	return apierr.Validation(message, code, details)
}

// validateOrderItems exige ao menos um item com descrição, valor e quantidade positivos
func validateOrderItems(items []OrderItem) error {
	if len(items) == 0 {
		return validationError("At least one order item is required", CodeMissingOrderItems, nil)
	}

	var errs []string
	for i, item := range items {
		n := i + 1
		if strings.TrimSpace(item.Description) == "" {
			errs = append(errs, fmt.Sprintf("Item %d: Description is required", n))
		}
		if item.Amount <= 0 {
			errs = append(errs, fmt.Sprintf("Item %d: Amount must be greater than 0", n))
		}
		if item.Quantity <= 0 {
			errs = append(errs, fmt.Sprintf("Item %d: Quantity must be greater than 0", n))
		}
	}

	if len(errs) > 0 {
		return validationError(
			fmt.Sprintf("Order validation failed: %s", strings.Join(errs, ", ")),
			CodeOrderValidation,
			map[string]any{"errors": errs},
		)
	}
	return nil
}

// orderTotal soma amount·quantity de todos os itens
func orderTotal(items []OrderItem) int64 {
	var total int64
	for _, item := range items {
		total += item.Amount * item.Quantity
	}
	return total
}

// normalizePhones converte telefones livres no formato estruturado.
// Devolve nil quando nenhum telefone foi informado.
func normalizePhones(mobile, home string) (*Phones, error) {
	if mobile == "" && home == "" {
		return nil, nil
	}

	phones := &Phones{}
	if mobile != "" {
		p, err := validation.FormatBrazilianPhone(mobile)
		if err != nil {
			return nil, err
		}
		phones.MobilePhone = &p
	}
	if home != "" {
		p, err := validation.FormatBrazilianPhone(home)
		if err != nil {
			return nil, err
		}
		phones.HomePhone = &p
	}
	return phones, nil
}

// documentFields infere o tipo quando ausente e aplica a máscara canônica
func documentFields(document string, docType DocumentType) (string, DocumentType) {
	if docType == "" {
		if t, err := validation.DocumentTypeOf(document); err == nil {
			docType = t
		}
	}
	return validation.FormatDocument(document, docType), docType
}
