package membros

import (
	"context"
	"net/http"
)

// Users acessa o recurso /users do merchant
type Users struct {
	resource
}

// Retrieve consulta um usuário pelo ID
func (u *Users) Retrieve(ctx context.Context, id string) (*User, error) {
	if err := requireID("user id", id); err != nil {
		return nil, err
	}
	return call[User](ctx, u.resource, http.MethodGet, u.path(id), nil, nil)
}

// RetrieveByEmail consulta um usuário pelo e-mail
func (u *Users) RetrieveByEmail(ctx context.Context, email string) (*User, error) {
	if err := requireID("email", email); err != nil {
		return nil, err
	}
	return call[User](ctx, u.resource, http.MethodGet, u.path("email", email), nil, nil)
}

// ListByCreator lista os usuários criados por creatorID
func (u *Users) ListByCreator(ctx context.Context, creatorID string) ([]User, error) {
	if err := requireID("creator id", creatorID); err != nil {
		return nil, err
	}
	users, err := call[[]User](ctx, u.resource, http.MethodGet, u.path("creator", creatorID), nil, nil)
	if err != nil {
		return nil, err
	}
	return *users, nil
}

// Balance consulta o saldo do merchant
func (u *Users) Balance(ctx context.Context) (*MerchantBalance, error) {
	return call[MerchantBalance](ctx, u.resource, http.MethodGet, u.path("balance"), nil, nil)
}

// RequestWithdraw solicita um saque do saldo disponível
func (u *Users) RequestWithdraw(ctx context.Context, req WithdrawRequest) (*Withdraw, error) {
	if req.Amount <= 0 {
		return nil, validationError("Withdraw amount must be greater than 0", CodeInvalidWithdrawAmount, nil)
	}
	return call[Withdraw](ctx, u.resource, http.MethodPost, u.path("withdraw"), req, nil)
}

// List lista usuários com filtros opcionais
func (u *Users) List(ctx context.Context, params UserListParams) (*ListResponse[User], error) {
	q := params.values()
	if params.CreatorID != "" {
		q.Set("creatorId", params.CreatorID)
	}
	if params.Status != "" {
		q.Set("status", string(params.Status))
	}
	return list[User](ctx, u.resource, u.path(), q)
}
