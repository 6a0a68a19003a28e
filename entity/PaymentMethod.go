package entity

type PaymentMethod string

const (
	PayCash   PaymentMethod = "cash"
	PayOnline PaymentMethod = "online"
)

func (m PaymentMethod) Valid() bool {
	return m == PayCash || m == PayOnline
}
