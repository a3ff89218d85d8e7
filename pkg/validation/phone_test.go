package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magnani/membros-go/pkg/apierr"
)

func TestFormatBrazilianPhone(t *testing.T) {
	tests := []struct {
		name  string
		phone string
		want  Phone
	}{
		{"mobile digits", "11999888777", Phone{"55", "11", "999888777"}},
		{"mobile masked", "(11) 99988-8777", Phone{"55", "11", "999888777"}},
		{"landline", "2133334444", Phone{"55", "21", "33334444"}},
		{"landline masked", "(21) 3333-4444", Phone{"55", "21", "33334444"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FormatBrazilianPhone(tt.phone)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatBrazilianPhone_Invalid(t *testing.T) {
	for _, phone := range []string{"", "123", "999888777", "+55 11 99988-8777", "119998887770"} {
		t.Run(phone, func(t *testing.T) {
			_, err := FormatBrazilianPhone(phone)
			require.Error(t, err)
			assert.True(t, apierr.IsValidation(err))
			assert.Equal(t, CodeInvalidPhoneFormat, apierr.CodeOf(err))
		})
	}
}

func TestFormatBrazilianPhone_Idempotent(t *testing.T) {
	for _, phone := range []string{"11999888777", "(21) 3333-4444", "47 98888-1234"} {
		first, err := FormatBrazilianPhone(phone)
		require.NoError(t, err)

		second, err := FormatBrazilianPhone(first.String())
		require.NoError(t, err)
		assert.Equal(t, first, second)
	}
}

func TestValidateBrazilianPhone(t *testing.T) {
	assert.True(t, ValidateBrazilianPhone("1133334444"))
	assert.True(t, ValidateBrazilianPhone("11999998888"))
	assert.False(t, ValidateBrazilianPhone("113333444"))
	assert.False(t, ValidateBrazilianPhone("5511999998888"))
}
