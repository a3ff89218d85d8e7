package membros

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/magnani/membros-go/pkg/validation"
)

// Customers acessa o recurso /customers
type Customers struct {
	resource
}

// customerPayload é o corpo enviado na criação e atualização de clientes
type customerPayload struct {
	Name         string       `json:"name,omitempty"`
	Email        string       `json:"email,omitempty"`
	Document     string       `json:"document,omitempty"`
	DocumentType DocumentType `json:"document_type,omitempty"`
	Phones       *Phones      `json:"phones,omitempty"`
	Address      *Address     `json:"address,omitempty"`
	Metadata     Metadata     `json:"metadata,omitempty"`
}

// buildCustomerPayload valida os dados e aplica a máscara do documento e a normalização dos telefones
func buildCustomerPayload(p CustomerParams) (*customerPayload, error) {
	if err := validation.ValidateCustomerData(p.Name, p.Email, p.Document); err != nil {
		return nil, err
	}

	phones, err := normalizePhones(p.MobilePhone, p.HomePhone)
	if err != nil {
		return nil, err
	}

	document, docType := documentFields(p.Document, p.DocumentType)
	return &customerPayload{
		Name:         p.Name,
		Email:        p.Email,
		Document:     document,
		DocumentType: docType,
		Phones:       phones,
		Address:      p.Address,
		Metadata:     p.Metadata,
	}, nil
}

// Create cria um novo cliente
func (c *Customers) Create(ctx context.Context, params CustomerParams) (*Customer, error) {
	payload, err := buildCustomerPayload(params)
	if err != nil {
		return nil, err
	}
	return call[Customer](ctx, c.resource, http.MethodPost, c.path(), payload, nil)
}

// Retrieve consulta um cliente pelo ID
func (c *Customers) Retrieve(ctx context.Context, id string) (*Customer, error) {
	if err := requireID("customer id", id); err != nil {
		return nil, err
	}
	return call[Customer](ctx, c.resource, http.MethodGet, c.path(id), nil, nil)
}

// Update altera um cliente; apenas os campos preenchidos são enviados
func (c *Customers) Update(ctx context.Context, id string, params CustomerUpdateParams) (*Customer, error) {
	if err := requireID("customer id", id); err != nil {
		return nil, err
	}

	payload := &customerPayload{
		Name:     params.Name,
		Email:    params.Email,
		Address:  params.Address,
		Metadata: params.Metadata,
	}

	if params.Email != "" && !validation.ValidateEmail(params.Email) {
		return nil, validationError("Valid email address is required", validation.CodeCustomerValidation,
			map[string]any{"errors": []string{"Valid email address is required"}})
	}

	if params.Document != "" {
		if !validation.ValidateDocument(params.Document, params.DocumentType) {
			msg := "Invalid document format. Must be a valid CPF or CNPJ"
			return nil, validationError(msg, validation.CodeCustomerValidation,
				map[string]any{"errors": []string{msg}})
		}
		payload.Document, payload.DocumentType = documentFields(params.Document, params.DocumentType)
	}

	phones, err := normalizePhones(params.MobilePhone, params.HomePhone)
	if err != nil {
		return nil, err
	}
	payload.Phones = phones

	return call[Customer](ctx, c.resource, http.MethodPatch, c.path(id), payload, nil)
}

// List lista clientes com filtros opcionais
func (c *Customers) List(ctx context.Context, params CustomerListParams) (*ListResponse[Customer], error) {
	q := params.values()
	if params.Email != "" {
		q.Set("email", params.Email)
	}
	if params.Document != "" {
		q.Set("document", validation.FormatDocument(params.Document, ""))
	}
	return list[Customer](ctx, c.resource, c.path(), q)
}

// Delete remove um cliente
func (c *Customers) Delete(ctx context.Context, id string) (*DeletedCustomer, error) {
	if err := requireID("customer id", id); err != nil {
		return nil, err
	}
	return call[DeletedCustomer](ctx, c.resource, http.MethodDelete, c.path(id), nil, nil)
}

// Search busca clientes por nome, e-mail ou documento
func (c *Customers) Search(ctx context.Context, params CustomerSearchParams) (*ListResponse[Customer], error) {
	if params.Name == "" && params.Email == "" && params.Document == "" {
		return nil, validationError("At least one search criteria is required", CodeMissingSearchCriteria, nil)
	}

	q := url.Values{}
	if params.Name != "" {
		q.Set("name", params.Name)
	}
	if params.Email != "" {
		q.Set("email", params.Email)
	}
	if params.Document != "" {
		q.Set("document", validation.FormatDocument(params.Document, ""))
	}
	if params.Limit > 0 {
		q.Set("limit", strconv.Itoa(params.Limit))
	}
	if params.Offset > 0 {
		q.Set("offset", strconv.Itoa(params.Offset))
	}
	return list[Customer](ctx, c.resource, c.path("search"), q)
}
