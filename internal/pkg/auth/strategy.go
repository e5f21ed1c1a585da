package auth

import "time"

// Roles recognized by the API. Role issuance itself belongs to the
// external identity service; tokens arrive with the role already decided.
const (
	RoleAdmin    = "admin"
	RoleCustomer = "customer"
)

// Claims is the identity a session token resolves to.
type Claims struct {
	UserID int64
	Role   string
}

// Admin reports whether the claims carry the admin role.
func (c *Claims) Admin() bool {
	return c != nil && c.Role == RoleAdmin
}

// Options configures token strategies.
type Options struct {
	TTL time.Duration
}

// Strategy abstracts session token creation and verification.
type Strategy interface {
	IssueToken(userID int64, role string) (string, error)
	ParseToken(token string) (*Claims, error)
	Name() string
}
