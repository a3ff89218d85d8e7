package membros

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magnani/membros-go/pkg/apierr"
)

func TestUsers_Retrieve(t *testing.T) {
	client, api := newFakeClient(t, 200, `{"id":"usr_1","email":"a@b.com","status":"active","creatorId":"usr_0"}`)

	user, err := client.Users.Retrieve(context.Background(), "usr_1")
	require.NoError(t, err)
	assert.Equal(t, UserStatusActive, user.Status)
	assert.Equal(t, "usr_0", user.CreatorID)
	assert.Equal(t, "/v2/users/usr_1", api.last(t).Path)

	_, err = client.Users.RetrieveByEmail(context.Background(), "a@b.com")
	require.NoError(t, err)
	assert.Equal(t, "/v2/users/email/a@b.com", api.last(t).Path)
}

func TestUsers_ListByCreator(t *testing.T) {
	client, api := newFakeClient(t, 200, `[{"id":"usr_1"},{"id":"usr_2"}]`)

	users, err := client.Users.ListByCreator(context.Background(), "usr_0")
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "usr_2", users[1].ID)
	assert.Equal(t, "/v2/users/creator/usr_0", api.last(t).Path)
}

func TestUsers_List(t *testing.T) {
	client, api := newFakeClient(t, 200, `{"data":[{"id":"usr_1"}],"has_more":false}`)

	page, err := client.Users.List(context.Background(), UserListParams{
		ListParams: ListParams{Limit: 50},
		CreatorID:  "usr_0",
		Status:     UserStatusSuspended,
	})
	require.NoError(t, err)
	assert.Len(t, page.Data, 1)
	assert.Nil(t, page.TotalCount)

	req := api.last(t)
	assert.Equal(t, "/v2/users", req.Path)
	assert.Equal(t, "50", req.Query.Get("limit"))
	assert.Equal(t, "usr_0", req.Query.Get("creatorId"))
	assert.Equal(t, "suspended", req.Query.Get("status"))
}

func TestUsers_BalanceAndWithdraw(t *testing.T) {
	client, api := newFakeClient(t, 200, `{"availableAmount":150000,"pendingAmount":2000,"currency":"BRL","id":"wd_1","amount":10000,"status":"pending"}`)

	balance, err := client.Users.Balance(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(150000), balance.AvailableAmount)
	assert.Equal(t, "BRL", balance.Currency)
	assert.Equal(t, "/v2/users/balance", api.last(t).Path)

	withdraw, err := client.Users.RequestWithdraw(context.Background(), WithdrawRequest{Amount: 10000, Description: "saque"})
	require.NoError(t, err)
	assert.Equal(t, "wd_1", withdraw.ID)

	req := api.last(t)
	assert.Equal(t, http.MethodPost, req.Method)
	assert.Equal(t, "/v2/users/withdraw", req.Path)
	assert.Equal(t, float64(10000), req.Body["amount"])

	calls := api.count()
	_, err = client.Users.RequestWithdraw(context.Background(), WithdrawRequest{Amount: 0})
	require.Error(t, err)
	assert.Equal(t, CodeInvalidWithdrawAmount, apierr.CodeOf(err))
	assert.Equal(t, calls, api.count())
}
