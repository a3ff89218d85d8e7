package validation

import "github.com/magnani/membros-go/pkg/apierr"

// BrazilCountryCode é o DDI fixo dos telefones normalizados
const BrazilCountryCode = "55"

// CodeInvalidPhoneFormat é o código do erro de telefone inválido
const CodeInvalidPhoneFormat = "INVALID_PHONE_FORMAT"

// Phone representa um telefone brasileiro estruturado
type Phone struct {
	CountryCode string `json:"country_code"`
	AreaCode    string `json:"area_code"`
	Number      string `json:"number"`
}

// String devolve DDD + número, forma aceita de volta por FormatBrazilianPhone
func (p Phone) String() string {
	return p.AreaCode + p.Number
}

// ValidateBrazilianPhone aceita fixo (10 dígitos) ou celular (11 dígitos)
func ValidateBrazilianPhone(phone string) bool {
	n := len(Digits(phone))
	return n == 10 || n == 11
}

// FormatBrazilianPhone normaliza um telefone livre em DDI/DDD/número
func FormatBrazilianPhone(phone string) (Phone, error) {
	d := Digits(phone)
	if !ValidateBrazilianPhone(d) {
		return Phone{}, apierr.Validation(
			"Invalid Brazilian phone number format",
			CodeInvalidPhoneFormat,
			nil,
		)
	}

	return Phone{
		CountryCode: BrazilCountryCode,
		AreaCode:    d[:2],
		Number:      d[2:],
	}, nil
}
