package auth

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/dreamteam/stockme-dashboard/internal/domain/auth"
	"github.com/dreamteam/stockme-dashboard/internal/ports"
)

func TestFakeAuthGateway_LoginAndProfile(t *testing.T) {
	gw := NewFakeAuthGateway(Account{Email: "a@b.com", Password: "secret", Name: "A", Role: "admin"})
	ctx := context.Background()

	res, err := gw.Login(ctx, domainauth.Credentials{Email: "a@b.com", Password: "secret"})
	require.NoError(t, err)
	assert.Equal(t, "user-1", res.UserID)
	assert.Equal(t, "token-1", res.Token)

	p, err := gw.Profile(ctx, res.Token)
	require.NoError(t, err)
	assert.Equal(t, "admin", p.Role)

	res2, err := gw.Login(ctx, domainauth.Credentials{Email: "a@b.com", Password: "secret"})
	require.NoError(t, err)
	assert.Equal(t, "token-2", res2.Token)
}

func TestFakeAuthGateway_LoginRejected(t *testing.T) {
	gw := NewFakeAuthGateway(Account{Email: "a@b.com", Password: "secret"})

	_, err := gw.Login(context.Background(), domainauth.Credentials{Email: "a@b.com", Password: "nope"})

	var rejected *ports.RejectedError
	require.ErrorAs(t, err, &rejected)
	assert.Equal(t, http.StatusUnauthorized, rejected.Status)
	assert.Equal(t, "Invalid credentials", rejected.Message)
}

func TestFakeAuthGateway_LogoutRevokesToken(t *testing.T) {
	gw := NewFakeAuthGateway(Account{Email: "a@b.com", Password: "secret"})
	ctx := context.Background()
	res, err := gw.Login(ctx, domainauth.Credentials{Email: "a@b.com", Password: "secret"})
	require.NoError(t, err)

	require.NoError(t, gw.Logout(ctx, res.Token))
	assert.Equal(t, []string{"token-1"}, gw.LoggedOut())

	_, err = gw.Profile(ctx, res.Token)
	assert.Error(t, err)
}

func TestFakeAuthGateway_Register(t *testing.T) {
	gw := NewFakeAuthGateway()
	ctx := context.Background()
	reg := domainauth.Registration{Name: "N", Tel: "1", Email: "n@x.com", Password: "pw", Role: domainauth.RoleStaff}

	require.NoError(t, gw.Register(ctx, reg))
	a, ok := gw.Account("n@x.com")
	require.True(t, ok)
	assert.Equal(t, "staff", a.Role)

	err := gw.Register(ctx, reg)
	var rejected *ports.RejectedError
	assert.ErrorAs(t, err, &rejected)
}

func TestFakeAuthGateway_CustomFuncs(t *testing.T) {
	boom := errors.New("boom")
	gw := &FakeAuthGateway{
		ProfileFunc: func(context.Context, string) (ports.Profile, error) { return ports.Profile{}, boom },
	}
	_, err := gw.Profile(context.Background(), "t")
	assert.ErrorIs(t, err, boom)
}
