package membros

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/magnani/membros-go/pkg/transport"
)

// ListResponse é a página devolvida pelos endpoints de listagem
type ListResponse[T any] struct {
	Data       []T  `json:"data"`
	HasMore    bool `json:"has_more"`
	TotalCount *int `json:"total_count,omitempty"`
}

// ListParams são os filtros comuns a todas as listagens
type ListParams struct {
	Limit         int
	Offset        int
	CreatedAfter  string
	CreatedBefore string
}

func (p ListParams) values() url.Values {
	q := url.Values{}
	if p.Limit > 0 {
		q.Set("limit", strconv.Itoa(p.Limit))
	}
	if p.Offset > 0 {
		q.Set("offset", strconv.Itoa(p.Offset))
	}
	if p.CreatedAfter != "" {
		q.Set("created_after", p.CreatedAfter)
	}
	if p.CreatedBefore != "" {
		q.Set("created_before", p.CreatedBefore)
	}
	return q
}

// resource guarda o transporte e o path base de um recurso
type resource struct {
	t        *transport.Client
	basePath string
}

// path junta o path base com os segmentos, escapando cada um
func (r resource) path(segments ...string) string {
	p := r.basePath
	for _, s := range segments {
		p += "/" + url.PathEscape(strings.Trim(s, "/"))
	}
	return p
}

// call executa a requisição e decodifica a resposta em T.
// Erros do transporte já chegam classificados e são devolvidos sem embrulho.
func call[T any](ctx context.Context, r resource, method, path string, body any, query url.Values) (*T, error) {
	var opts *transport.RequestOptions
	if len(query) > 0 {
		opts = &transport.RequestOptions{Query: query}
	}

	resp, err := r.t.Do(ctx, method, path, body, opts)
	if err != nil {
		return nil, err
	}

	var out T
	if err := resp.Decode(&out); err != nil {
		return nil, err
	}
	return &out, nil
}

func list[T any](ctx context.Context, r resource, path string, query url.Values) (*ListResponse[T], error) {
	return call[ListResponse[T]](ctx, r, http.MethodGet, path, nil, query)
}

// requireID rejeita identificadores vazios antes de montar o path
func requireID(name, id string) error {
	if strings.TrimSpace(id) == "" {
		return validationError(fmt.Sprintf("%s is required", name), CodeMissingID, nil)
	}
	return nil
}
