package user

import "github.com/BruksfildServices01/careflow-api/internal/models"

// Issuer signs session tokens.
type Issuer interface {
	Issue(email, role string) (string, error)
}

type Session struct {
	Token string
	User  *models.User
}

func newSession(issuer Issuer, u *models.User) (*Session, error) {
	token, err := issuer.Issue(u.Email, u.Role)
	if err != nil {
		return nil, err
	}
	return &Session{Token: token, User: u}, nil
}
