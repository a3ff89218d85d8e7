package transport

import (
	"crypto/tls"
	"fmt"
	"net/http"
	"net/url"
	"os"

	"golang.org/x/crypto/pkcs12"
)

// newHTTPClient monta o cliente HTTP a partir do Config.
// O timeout fica a cargo do contexto de cada tentativa.
func newHTTPClient(cfg Config) (*http.Client, error) {
	if cfg.HTTPClient != nil {
		return cfg.HTTPClient, nil
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()

	if cfg.ProxyURL != "" {
		proxy, err := url.Parse(cfg.ProxyURL)
		if err != nil {
			return nil, configError(fmt.Sprintf("erro ao interpretar ProxyURL: %v", err), err)
		}
		transport.Proxy = http.ProxyURL(proxy)
	}

	if cfg.CertificatePath != "" {
		tlsConfig, err := loadCertificate(cfg.CertificatePath, cfg.CertificatePassword)
		if err != nil {
			return nil, configError(fmt.Sprintf("erro ao carregar certificado: %v", err), err)
		}
		transport.TLSClientConfig = tlsConfig
	}

	return &http.Client{Transport: transport}, nil
}

// loadCertificate carrega um certificado .p12 para mTLS
func loadCertificate(certPath, password string) (*tls.Config, error) {
	certData, err := os.ReadFile(certPath)
	if err != nil {
		return nil, fmt.Errorf("erro ao ler certificado: %w", err)
	}

	privateKey, certificate, err := pkcs12.Decode(certData, password)
	if err != nil {
		return nil, fmt.Errorf("erro ao decodificar certificado PKCS12: %w", err)
	}

	tlsCert := tls.Certificate{
		Certificate: [][]byte{certificate.Raw},
		PrivateKey:  privateKey,
		Leaf:        certificate,
	}

	return &tls.Config{
		Certificates: []tls.Certificate{tlsCert},
		MinVersion:   tls.VersionTLS12,
	}, nil
}
