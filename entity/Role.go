package entity

// Role is resolved once at authentication time; handlers never compare
// raw strings against configuration.
type Role string

const (
	RoleUser    Role = "user"
	RoleCashier Role = "cashier"
	RoleAdmin   Role = "admin"
)

func ParseRole(s string) Role {
	switch Role(s) {
	case RoleCashier:
		return RoleCashier
	case RoleAdmin:
		return RoleAdmin
	default:
		return RoleUser
	}
}

type Capability int

const (
	CapListOrders Capability = iota
	CapUpdateOrderStatus
	CapForceLogout
	CapManageProducts
)

// Principal is the authenticated caller stored in the request context.
type Principal struct {
	UserName string
	Role     Role
	Session  string
}

// Allowed is the single authorization policy: admin holds everything,
// cashier holds the order-handling capabilities, plain users hold none.
func Allowed(role Role, cap Capability) bool {
	switch role {
	case RoleAdmin:
		return true
	case RoleCashier:
		return cap == CapListOrders || cap == CapUpdateOrderStatus
	default:
		return false
	}
}
