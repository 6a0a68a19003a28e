package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/lamji/crud-api-mern-sub001/entity"
)

func newAuthEnv(t *testing.T) (*AuthService, *fakeCashiers) {
	t.Helper()
	cashiers := newFakeCashiers()
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)
	cashiers.cashiers["kim"] = &entity.Cashier{
		Name: "Kim", UserName: "kim", Password: string(hash), Role: entity.RoleCashier,
	}
	svc := NewAuthService(cashiers, "test-secret", time.Hour, zap.NewNop().Sugar())
	return svc, cashiers
}

func TestLoginIssuesSessionAndToken(t *testing.T) {
	svc, cashiers := newAuthEnv(t)

	out, err := svc.Login(context.Background(), "kim", "s3cret")
	require.NoError(t, err)
	assert.NotEmpty(t, out.Token)
	require.NotNil(t, out.Cashier.CurrentSession)
	assert.NotNil(t, cashiers.cashiers["kim"].CurrentSession)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc, _ := newAuthEnv(t)

	_, err := svc.Login(context.Background(), "kim", "wrong")
	require.Error(t, err)
	assert.Equal(t, 401, apiStatus(t, err))

	_, err = svc.Login(context.Background(), "nobody", "s3cret")
	require.Error(t, err)
	assert.Equal(t, 401, apiStatus(t, err))
}

func TestLogoutClearsSession(t *testing.T) {
	svc, cashiers := newAuthEnv(t)
	_, err := svc.Login(context.Background(), "kim", "s3cret")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background(), "kim"))
	assert.Nil(t, cashiers.cashiers["kim"].CurrentSession)
}

func TestForceLogoutReportsPreviousSession(t *testing.T) {
	svc, cashiers := newAuthEnv(t)
	_, err := svc.Login(context.Background(), "kim", "s3cret")
	require.NoError(t, err)
	active := *cashiers.cashiers["kim"].CurrentSession

	out, err := svc.ForceLogout(context.Background(), "kim")
	require.NoError(t, err)
	assert.Equal(t, "Kim", out.CashierName)
	assert.Equal(t, "kim", out.UserName)
	require.NotNil(t, out.PreviousSession)
	assert.Equal(t, active, *out.PreviousSession)
	assert.Nil(t, cashiers.cashiers["kim"].CurrentSession)
}

func TestForceLogoutValidation(t *testing.T) {
	svc, _ := newAuthEnv(t)

	_, err := svc.ForceLogout(context.Background(), "")
	require.Error(t, err)
	assert.Equal(t, 400, apiStatus(t, err))

	_, err = svc.ForceLogout(context.Background(), "ghost")
	require.Error(t, err)
	assert.Equal(t, 404, apiStatus(t, err))
}
