package user

import "github.com/BruksfildServices01/careflow-api/internal/httperr"

type Role string

const (
	RolePatient      Role = "patient"
	RoleDoctor       Role = "doctor"
	RoleReceptionist Role = "receptionist"
	RoleAdmin        Role = "admin"
)

var (
	ErrNotFound           = httperr.ErrBusiness("user_not_found")
	ErrEmailTaken         = httperr.ErrBusiness("email_already_registered")
	ErrInvalidCredentials = httperr.ErrBusiness("invalid_credentials")
	ErrRoleMismatch       = httperr.ErrBusiness("role_mismatch")
	ErrInvalidRole        = httperr.ErrBusiness("invalid_role")
	ErrCannotDeleteSelf   = httperr.ErrBusiness("cannot_delete_self")
)

func (r Role) Valid() bool {
	switch r {
	case RolePatient, RoleDoctor, RoleReceptionist, RoleAdmin:
		return true
	}
	return false
}

// ParseRole validates a client-supplied role string.
func ParseRole(s string) (Role, error) {
	r := Role(s)
	if !r.Valid() {
		return "", ErrInvalidRole
	}
	return r, nil
}

// Staff roles may create, edit and delete appointments.
var Staff = []Role{RoleDoctor, RoleReceptionist, RoleAdmin}

func (r Role) In(set ...Role) bool {
	for _, s := range set {
		if r == s {
			return true
		}
	}
	return false
}
