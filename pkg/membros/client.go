// Package membros é o SDK Go da API de pagamentos Membros.
//
// Uso básico:
//
//	client, err := membros.NewClient(membros.Options{
//		SecretKey: os.Getenv("MEMBROS_SECRET_KEY"),
//		PublicKey: os.Getenv("MEMBROS_PUBLIC_KEY"),
//		ProjectID: os.Getenv("MEMBROS_PROJECT_ID"),
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	order, err := client.Orders.CreatePix(ctx, membros.PixOrderParams{
//		CustomerID: "cus_123",
//		Items:      []membros.OrderItem{{Description: "Plano mensal", Amount: 9900, Quantity: 1}},
//	})
//
// Todos os erros devolvidos são *apierr.Error (ou o envolvem) e podem ser
// inspecionados com errors.Is contra os sentinelas de apierr.
package membros

import (
	"context"

	"github.com/magnani/membros-go/pkg/transport"
)

// Options configura o cliente; veja transport.Config para os valores padrão
type Options = transport.Config

// Client agrupa os recursos da API sobre um único transporte
type Client struct {
	transport *transport.Client

	Customers *Customers
	Orders    *Orders
	Users     *Users
}

// NewClient valida as credenciais e cria o cliente
func NewClient(opts Options) (*Client, error) {
	t, err := transport.New(opts)
	if err != nil {
		return nil, err
	}
	return newClient(t), nil
}

func newClient(t *transport.Client) *Client {
	return &Client{
		transport: t,
		Customers: &Customers{resource{t: t, basePath: "/customers"}},
		Orders:    &Orders{resource{t: t, basePath: "/orders"}},
		Users:     &Users{resource{t: t, basePath: "/users"}},
	}
}

// PingResponse é a resposta do endpoint /ping
type PingResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

// Ping verifica conectividade e credenciais
func (c *Client) Ping(ctx context.Context) (*PingResponse, error) {
	resp, err := c.transport.Get(ctx, "/ping", nil)
	if err != nil {
		return nil, err
	}

	var out PingResponse
	if err := resp.Decode(&out); err != nil {
		return nil, err
	}
	if out.Status == "" {
		out.Status = "ok"
	}
	return &out, nil
}

// Config devolve uma cópia da configuração ativa
func (c *Client) Config() Options {
	return c.transport.Config()
}

// SetAPIKey rotaciona a chave secreta usada nas próximas requisições
func (c *Client) SetAPIKey(secretKey string) error {
	return c.transport.SetSecretKey(secretKey)
}

// Transport expõe o cliente HTTP autenticado para endpoints ainda sem recurso dedicado
func (c *Client) Transport() *transport.Client {
	return c.transport
}
