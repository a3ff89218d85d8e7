package membros

import "github.com/magnani/membros-go/pkg/validation"

// Metadata carrega pares chave/valor livres (string, número ou booleano)
type Metadata map[string]any

// Phone é o telefone normalizado enviado à API
type Phone = validation.Phone

// DocumentType é CPF ou CNPJ
type DocumentType = validation.DocumentType

// Tipos de documento aceitos
const (
	DocumentTypeCPF  = validation.DocumentTypeCPF
	DocumentTypeCNPJ = validation.DocumentTypeCNPJ
)

// Address representa um endereço brasileiro
type Address struct {
	Street       string `json:"street"`
	Number       string `json:"number"`
	Complement   string `json:"complement,omitempty"`
	Neighborhood string `json:"neighborhood"`
	City         string `json:"city"`
	State        string `json:"state"`
	ZipCode      string `json:"zip_code"`
	Country      string `json:"country,omitempty"`
}

// Phones agrupa os telefones de um cliente
type Phones struct {
	MobilePhone *Phone `json:"mobile_phone,omitempty"`
	HomePhone   *Phone `json:"home_phone,omitempty"`
}

// Customer representa um cliente
type Customer struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Email        string       `json:"email"`
	Document     string       `json:"document"`
	DocumentType DocumentType `json:"document_type"`
	Phones       *Phones      `json:"phones,omitempty"`
	Address      *Address     `json:"address,omitempty"`
	Metadata     Metadata     `json:"metadata,omitempty"`
	CreatedAt    string       `json:"created_at"`
	UpdatedAt    string       `json:"updated_at"`
}

// CustomerParams são os dados para criar um cliente.
// Telefones são aceitos em formato livre e normalizados antes do envio.
type CustomerParams struct {
	Name         string
	Email        string
	Document     string
	DocumentType DocumentType // inferido pelo tamanho quando vazio
	MobilePhone  string
	HomePhone    string
	Address      *Address
	Metadata     Metadata
}

// CustomerUpdateParams são os campos alteráveis; campos vazios não são enviados
type CustomerUpdateParams struct {
	Name         string
	Email        string
	Document     string
	DocumentType DocumentType
	MobilePhone  string
	HomePhone    string
	Address      *Address
	Metadata     Metadata
}

// CustomerListParams filtra a listagem de clientes
type CustomerListParams struct {
	ListParams
	Email    string
	Document string
}

// CustomerSearchParams filtra a busca de clientes
type CustomerSearchParams struct {
	Name     string
	Email    string
	Document string
	Limit    int
	Offset   int
}

// DeletedCustomer é a confirmação de remoção
type DeletedCustomer struct {
	ID      string `json:"id"`
	Deleted bool   `json:"deleted"`
}

// PaymentMethod é o meio de pagamento do pedido
type PaymentMethod string

const (
	PaymentMethodPix        PaymentMethod = "pix"
	PaymentMethodCreditCard PaymentMethod = "credit_card"
	PaymentMethodBoleto     PaymentMethod = "boleto"
)

// OrderStatus é o status do pedido
type OrderStatus string

const (
	OrderStatusPending  OrderStatus = "pending"
	OrderStatusPaid     OrderStatus = "paid"
	OrderStatusCanceled OrderStatus = "canceled"
	OrderStatusExpired  OrderStatus = "expired"
	OrderStatusRefunded OrderStatus = "refunded"
)

// OrderItem é um item do pedido; valores em centavos
type OrderItem struct {
	ID          string   `json:"id,omitempty"`
	Description string   `json:"description"`
	Amount      int64    `json:"amount"`
	Quantity    int64    `json:"quantity"`
	Metadata    Metadata `json:"metadata,omitempty"`
}

// Order representa um pedido
type Order struct {
	ID              string        `json:"id"`
	CustomerID      string        `json:"customer_id"`
	Customer        *Customer     `json:"customer,omitempty"`
	Items           []OrderItem   `json:"items"`
	Amount          int64         `json:"amount"`
	PaymentMethod   PaymentMethod `json:"payment_method"`
	Status          OrderStatus   `json:"status"`
	Metadata        Metadata      `json:"metadata,omitempty"`
	PixQRCode       string        `json:"pix_qr_code,omitempty"`
	PixQRCodeURL    string        `json:"pix_qr_code_url,omitempty"`
	PixExpiresAt    string        `json:"pix_expires_at,omitempty"`
	BoletoURL       string        `json:"boleto_url,omitempty"`
	BoletoBarcode   string        `json:"boleto_barcode,omitempty"`
	BoletoExpiresAt string        `json:"boleto_expires_at,omitempty"`
	CreatedAt       string        `json:"created_at"`
	UpdatedAt       string        `json:"updated_at"`
	PaidAt          string        `json:"paid_at,omitempty"`
	CanceledAt      string        `json:"canceled_at,omitempty"`
	ExpiredAt       string        `json:"expired_at,omitempty"`
}

// OrderParams cria um pedido com meio de pagamento explícito.
// Informe CustomerID para um cliente existente ou Customer para criar um novo.
type OrderParams struct {
	CustomerID    string
	Customer      *CustomerParams
	Items         []OrderItem
	PaymentMethod PaymentMethod
	ExpiresIn     int // segundos, para PIX e boleto
	Metadata      Metadata
}

// PixOrderParams cria um pedido PIX
type PixOrderParams struct {
	CustomerID string
	Customer   *CustomerParams
	Items      []OrderItem
	ExpiresIn  int // padrão do servidor: 3600
	Metadata   Metadata
}

// CreditCardOrderParams cria um pedido no cartão de crédito
type CreditCardOrderParams struct {
	CustomerID   string
	Customer     *CustomerParams
	Items        []OrderItem
	CardToken    string
	Installments int // padrão 1
	Metadata     Metadata
}

// BoletoOrderParams cria um pedido com boleto
type BoletoOrderParams struct {
	CustomerID string
	Customer   *CustomerParams
	Items      []OrderItem
	ExpiresIn  int // padrão do servidor: 259200 (3 dias)
	Metadata   Metadata
}

// OrderListParams filtra a listagem de pedidos
type OrderListParams struct {
	ListParams
	CustomerID    string
	Status        OrderStatus
	PaymentMethod PaymentMethod
}

// RefundParams define um estorno; Amount zero estorna o valor total
type RefundParams struct {
	Amount   int64    `json:"amount,omitempty"`
	Reason   string   `json:"reason,omitempty"`
	Metadata Metadata `json:"metadata,omitempty"`
}

// Refund representa um estorno
type Refund struct {
	ID          string   `json:"id"`
	OrderID     string   `json:"order_id"`
	Amount      int64    `json:"amount"`
	Reason      string   `json:"reason,omitempty"`
	Status      string   `json:"status"` // processing, completed ou failed
	Metadata    Metadata `json:"metadata,omitempty"`
	CreatedAt   string   `json:"created_at"`
	UpdatedAt   string   `json:"updated_at"`
	ProcessedAt string   `json:"processed_at,omitempty"`
}

// PixQRCode são os dados de pagamento PIX de um pedido
type PixQRCode struct {
	QRCode    string `json:"qr_code"`
	QRCodeURL string `json:"qr_code_url"`
	ExpiresAt string `json:"expires_at"`
}

// Boleto são os dados de pagamento de boleto de um pedido
type Boleto struct {
	BoletoURL string `json:"boleto_url"`
	Barcode   string `json:"barcode"`
	ExpiresAt string `json:"expires_at"`
}

// OrderPaymentStatus é a situação de pagamento de um pedido
type OrderPaymentStatus struct {
	Status        OrderStatus `json:"status"`
	PaymentStatus string      `json:"payment_status"`
	PaidAt        string      `json:"paid_at,omitempty"`
	AmountPaid    int64       `json:"amount_paid,omitempty"`
}

// UserStatus é o status de um usuário
type UserStatus string

const (
	UserStatusActive    UserStatus = "active"
	UserStatusInactive  UserStatus = "inactive"
	UserStatusSuspended UserStatus = "suspended"
)

// User representa um usuário do merchant
type User struct {
	ID        string     `json:"id"`
	Email     string     `json:"email"`
	Name      string     `json:"name,omitempty"`
	CreatedAt string     `json:"createdAt"`
	UpdatedAt string     `json:"updatedAt"`
	CreatorID string     `json:"creatorId,omitempty"`
	Status    UserStatus `json:"status"`
}

// UserListParams filtra a listagem de usuários
type UserListParams struct {
	ListParams
	CreatorID string
	Status    UserStatus
}

// MerchantBalance é o saldo do merchant, em centavos
type MerchantBalance struct {
	AvailableAmount int64  `json:"availableAmount"`
	PendingAmount   int64  `json:"pendingAmount"`
	Currency        string `json:"currency"`
	LastUpdated     string `json:"lastUpdated"`
}

// WithdrawRequest solicita um saque
type WithdrawRequest struct {
	Amount      int64  `json:"amount"`
	Description string `json:"description,omitempty"`
}

// Withdraw é o saque registrado
type Withdraw struct {
	ID          string `json:"id"`
	Amount      int64  `json:"amount"`
	Description string `json:"description,omitempty"`
	Status      string `json:"status"` // pending, processed ou failed
	RequestedAt string `json:"requestedAt"`
	ProcessedAt string `json:"processedAt,omitempty"`
}
