// Package auth turns credentials into identities: bcrypt password hashing,
// signed bearer tokens, and the admin capability check.
package auth

import (
	customerrors "github.com/axellelanca/shortlinks/internal/errors"
	"github.com/axellelanca/shortlinks/internal/models"
)

// Identity is what a verified token asserts about its bearer.
type Identity struct {
	UserID   uint
	Username string
	Role     models.Role
}

// IsAdmin reports whether the identity carries the admin role.
func (i Identity) IsAdmin() bool {
	return i.Role == models.RoleAdmin
}

// AdminGrant is proof that an admin identity was checked. Its zero value is
// useless: the unscoped admin queries refuse a grant not minted by RequireAdmin.
type AdminGrant struct {
	identity Identity
	granted  bool
}

// Identity returns the admin the grant was issued to.
func (g AdminGrant) Identity() Identity {
	return g.identity
}

// Valid reports whether the grant came from RequireAdmin.
func (g AdminGrant) Valid() bool {
	return g.granted
}

// RequireAdmin mints an AdminGrant for admin identities and fails with
// ErrForbidden for everyone else.
func RequireAdmin(id Identity) (AdminGrant, error) {
	if id.UserID == 0 || !id.IsAdmin() {
		return AdminGrant{}, customerrors.ErrForbidden
	}
	return AdminGrant{identity: id, granted: true}, nil
}
