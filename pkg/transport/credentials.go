package transport

import (
	"strings"

	"github.com/magnani/membros-go/pkg/apierr"
)

// Prefixos obrigatórios das chaves
const (
	SecretKeyPrefix = "sk_"
	PublicKeyPrefix = "pk_"
)

// Códigos de erro de credencial
const (
	CodeInvalidAPIKey    = "INVALID_API_KEY"
	CodeInvalidPublicKey = "INVALID_PUBLIC_KEY"
)

// credentials é um snapshot imutável das chaves; a rotação troca o ponteiro inteiro
type credentials struct {
	secretKey string
	publicKey string
}

// authorization monta o header Bearer combinado pública:secreta
func (c *credentials) authorization() string {
	return "Bearer " + c.publicKey + ":" + c.secretKey
}

// ValidateSecretKey verifica o formato da chave secreta
func ValidateSecretKey(key string) error {
	if !strings.HasPrefix(key, SecretKeyPrefix) || len(key) == len(SecretKeyPrefix) {
		return apierr.Authentication("API key inválida ou ausente (esperado formato sk_...).", CodeInvalidAPIKey)
	}
	return nil
}

// ValidatePublicKey verifica o formato da chave pública
func ValidatePublicKey(key string) error {
	if !strings.HasPrefix(key, PublicKeyPrefix) || len(key) == len(PublicKeyPrefix) {
		return apierr.Authentication("Public key inválida ou ausente (esperado formato pk_...).", CodeInvalidPublicKey)
	}
	return nil
}

func newCredentials(secretKey, publicKey string) (*credentials, error) {
	if err := ValidateSecretKey(secretKey); err != nil {
		return nil, err
	}
	if err := ValidatePublicKey(publicKey); err != nil {
		return nil, err
	}
	return &credentials{secretKey: secretKey, publicKey: publicKey}, nil
}
