package models

import (
	"fmt"

	"github.com/cinescribe/cinescribe/internal/common"
	"github.com/google/uuid"
)

// User is an account record. The username doubles as the remote lookup key
// (users/{username}), while ID namespaces the user's collections and reviews.
//
// The password travels in clear text because the original store schema fixes
// the record to { id, password }. Do not reuse this scheme outside the
// catalogue sandbox.
type User struct {
	ID       uuid.UUID
	Username string
	Password string
}

// NewUser creates a registration record with a fresh identifier.
func NewUser(username, password string) User {
	return User{ID: uuid.New(), Username: username, Password: password}
}

// Value renders the record for storage under users/{username}. The username
// itself is carried by the key, not the value.
func (u User) Value() map[string]any {
	return map[string]any{
		"id":       u.ID.String(),
		"password": u.Password,
	}
}

// UserFromValue decodes a users/{username} record. The key supplies the
// username, matching how the store addresses user records.
func UserFromValue(username string, v any) (User, error) {
	m, err := asObject(v)
	if err != nil {
		return User{}, err
	}

	idStr, err := stringField(m, "id")
	if err != nil {
		return User{}, err
	}
	id, err := uuid.Parse(idStr)
	if err != nil {
		return User{}, fmt.Errorf("%w: bad user id %q", common.ErrDecode, idStr)
	}

	password, err := stringField(m, "password")
	if err != nil {
		return User{}, err
	}

	return User{ID: id, Username: username, Password: password}, nil
}
