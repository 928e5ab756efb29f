package domain

import (
	"encoding/json"
	"strings"
	"time"
)

// Role is fixed when an Identity is created.
type Role string

const (
	RoleBuyer  Role = "buyer"
	RoleSeller Role = "seller"

	// legacyRoleUser is how older persisted records spell RoleBuyer.
	legacyRoleUser = "user"
)

// ParseRole accepts buyer, seller and the legacy spelling "user".
func ParseRole(s string) (Role, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case string(RoleBuyer), legacyRoleUser:
		return RoleBuyer, nil
	case string(RoleSeller):
		return RoleSeller, nil
	default:
		return "", Invalid("unknown role %q", s)
	}
}

func (r Role) Valid() bool {
	return r == RoleBuyer || r == RoleSeller
}

// UnmarshalJSON normalises the legacy role name. Unknown values decode as
// the empty role so that Identity.Validate rejects the record.
func (r *Role) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, err := ParseRole(s)
	if err != nil {
		*r = ""
		return nil
	}
	*r = parsed
	return nil
}

// Identity is the authenticated actor of a session. Its JSON form is the
// durable session record: one field per attribute, no version tag.
type Identity struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	Role        Role   `json:"role"`
	DisplayName string `json:"name,omitempty"`
	Phone       string `json:"phone,omitempty"`
}

// Validate reports whether the identity is well-formed enough to become the
// current session.
func (i Identity) Validate() error {
	switch {
	case i.ID == "":
		return Invalid("identity id is empty")
	case i.Email == "":
		return Invalid("identity email is empty")
	case !i.Role.Valid():
		return Invalid("identity role %q is not valid", i.Role)
	}
	return nil
}

// DisplayNameFromEmail returns the local part of an email address.
func DisplayNameFromEmail(email string) string {
	local, _, _ := strings.Cut(email, "@")
	return local
}

// Account is a registered identity together with its credential, used when
// sessions are checked against an account directory.
type Account struct {
	Identity     Identity
	PasswordHash string
	CreatedAt    time.Time
}
