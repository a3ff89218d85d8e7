// Package validation implementa a validação e formatação de documentos brasileiros
// (CPF/CNPJ), telefones e dados de cliente usados pelo SDK Membros.
package validation

import (
	"strings"

	"github.com/magnani/membros-go/pkg/apierr"
)

// DocumentType identifica o tipo de documento
type DocumentType string

const (
	DocumentTypeCPF  DocumentType = "CPF"
	DocumentTypeCNPJ DocumentType = "CNPJ"
)

const (
	cpfLength  = 11
	cnpjLength = 14
)

// CodeInvalidDocumentFormat é o código do erro de documento com tamanho inválido
const CodeInvalidDocumentFormat = "INVALID_DOCUMENT_FORMAT"

// Digits remove tudo que não for dígito (pontos, barra, hífen, espaços)
func Digits(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// DocumentTypeOf determina o tipo do documento pela quantidade de dígitos
func DocumentTypeOf(document string) (DocumentType, error) {
	switch len(Digits(document)) {
	case cpfLength:
		return DocumentTypeCPF, nil
	case cnpjLength:
		return DocumentTypeCNPJ, nil
	}
	return "", apierr.Validation(
		"Invalid document format. Must be a valid CPF (11 digits) or CNPJ (14 digits)",
		CodeInvalidDocumentFormat,
		nil,
	)
}

// ValidateCPF valida os dígitos verificadores de um CPF
func ValidateCPF(cpf string) bool {
	d := Digits(cpf)
	if len(d) != cpfLength || allSameDigit(d) {
		return false
	}

	// Primeiro dígito: pesos 10..2 sobre d1..d9
	if cpfCheckDigit(d[:9], 10) != int(d[9]-'0') {
		return false
	}
	// Segundo dígito: pesos 11..2 sobre d1..d10
	return cpfCheckDigit(d[:10], 11) == int(d[10]-'0')
}

func cpfCheckDigit(base string, firstWeight int) int {
	sum := 0
	for i := 0; i < len(base); i++ {
		sum += int(base[i]-'0') * (firstWeight - i)
	}
	rem := (sum * 10) % 11
	if rem == 10 || rem == 11 {
		rem = 0
	}
	return rem
}

// ValidateCNPJ valida os dígitos verificadores de um CNPJ
func ValidateCNPJ(cnpj string) bool {
	d := Digits(cnpj)
	if len(d) != cnpjLength || allSameDigit(d) {
		return false
	}

	if cnpjCheckDigit(d[:12]) != int(d[12]-'0') {
		return false
	}
	// A base do segundo dígito inclui o primeiro verificador
	return cnpjCheckDigit(d[:13]) == int(d[13]-'0')
}

// cnpjCheckDigit percorre a base do dígito mais significativo ao menos significativo
// com pesos decrescentes que voltam para 9 ao passar de 2
func cnpjCheckDigit(base string) int {
	sum := 0
	pos := len(base) - 7
	for i := 0; i < len(base); i++ {
		sum += int(base[i]-'0') * pos
		pos--
		if pos < 2 {
			pos = 9
		}
	}
	if sum%11 < 2 {
		return 0
	}
	return 11 - sum%11
}

func allSameDigit(d string) bool {
	for i := 1; i < len(d); i++ {
		if d[i] != d[0] {
			return false
		}
	}
	return true
}

// ValidateDocument valida um CPF ou CNPJ. Com docType vazio o tipo é inferido;
// se a inferência falhar o documento é inválido. Nunca retorna erro.
func ValidateDocument(document string, docType DocumentType) bool {
	if docType == "" {
		t, err := DocumentTypeOf(document)
		if err != nil {
			return false
		}
		docType = t
	}

	switch docType {
	case DocumentTypeCPF:
		return ValidateCPF(document)
	case DocumentTypeCNPJ:
		return ValidateCNPJ(document)
	}
	return false
}

// FormatDocument aplica a máscara canônica (000.000.000-00 ou 00.000.000/0000-00).
// Com docType vazio o tipo é inferido pelo tamanho. Documentos que não podem ser
// projetados na máscara são devolvidos como vieram.
func FormatDocument(document string, docType DocumentType) string {
	d := Digits(document)

	if docType == "" {
		switch len(d) {
		case cpfLength:
			docType = DocumentTypeCPF
		case cnpjLength:
			docType = DocumentTypeCNPJ
		}
	}

	switch {
	case docType == DocumentTypeCPF && len(d) == cpfLength:
		return d[0:3] + "." + d[3:6] + "." + d[6:9] + "-" + d[9:11]
	case docType == DocumentTypeCNPJ && len(d) == cnpjLength:
		return d[0:2] + "." + d[2:5] + "." + d[5:8] + "/" + d[8:12] + "-" + d[12:14]
	}
	return document
}
