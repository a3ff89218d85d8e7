package validation

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/magnani/membros-go/pkg/apierr"
)

// CodeCustomerValidation é o código do erro agregado de dados de cliente
const CodeCustomerValidation = "CUSTOMER_VALIDATION_ERROR"

var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidateEmail faz uma checagem estrutural simples do e-mail
func ValidateEmail(email string) bool {
	return emailRegex.MatchString(email)
}

// ValidateCustomerData valida os campos obrigatórios de um cliente.
// Todas as falhas são agregadas em um único erro com details {"errors": [...]}.
func ValidateCustomerData(name, email, document string) error {
	var errs []string

	if len(strings.TrimSpace(name)) < 2 {
		errs = append(errs, "Name is required and must be at least 2 characters long")
	}

	if email == "" || !ValidateEmail(email) {
		errs = append(errs, "Valid email address is required")
	}

	if document == "" {
		errs = append(errs, "Document is required")
	} else if !ValidateDocument(document, "") {
		errs = append(errs, "Invalid document format. Must be a valid CPF or CNPJ")
	}

	if len(errs) > 0 {
		return apierr.Validation(
			fmt.Sprintf("Validation failed: %s", strings.Join(errs, ", ")),
			CodeCustomerValidation,
			map[string]any{"errors": errs},
		)
	}
	return nil
}
