package models

import "time"

// Roles assigned to users. Admins get access to the dashboard endpoints.
const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
)

// User represents a store customer or an admin. CoinBalance and DiamondBalance
// form the wallet; both are mutated only inside SQL transactions together with
// a wallet transaction record.
type User struct {
	ID             int64
	Email          string
	FullName       string
	PassHash       []byte
	Role           string
	CoinBalance    int64
	DiamondBalance int64
	ExpoPushToken  string
	CreatedAt      time.Time
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
