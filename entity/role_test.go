package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAllowed(t *testing.T) {
	cases := []struct {
		role Role
		cap  Capability
		want bool
	}{
		{RoleAdmin, CapListOrders, true},
		{RoleAdmin, CapUpdateOrderStatus, true},
		{RoleAdmin, CapForceLogout, true},
		{RoleAdmin, CapManageProducts, true},
		{RoleCashier, CapListOrders, true},
		{RoleCashier, CapUpdateOrderStatus, true},
		{RoleCashier, CapForceLogout, false},
		{RoleCashier, CapManageProducts, false},
		{RoleUser, CapListOrders, false},
		{RoleUser, CapUpdateOrderStatus, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Allowed(tc.role, tc.cap), "%s / %d", tc.role, tc.cap)
	}
}

func TestParseRoleDefaultsToUser(t *testing.T) {
	assert.Equal(t, RoleCashier, ParseRole("cashier"))
	assert.Equal(t, RoleAdmin, ParseRole("admin"))
	assert.Equal(t, RoleUser, ParseRole("user"))
	assert.Equal(t, RoleUser, ParseRole("superuser"))
	assert.Equal(t, RoleUser, ParseRole(""))
}

func TestSequenceIndex(t *testing.T) {
	assert.Equal(t, 0, StatusPending.SequenceIndex())
	assert.Equal(t, 0, StatusConfirmed.SequenceIndex())
	assert.Equal(t, 0, StatusProcessing.SequenceIndex())
	assert.Equal(t, 1, StatusReceived.SequenceIndex())
	assert.Equal(t, 4, StatusDelivered.SequenceIndex())
	assert.Equal(t, -1, StatusCancelled.SequenceIndex())
}
