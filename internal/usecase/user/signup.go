package user

import (
	"context"
	"errors"

	"github.com/BruksfildServices01/careflow-api/internal/audit"
	"github.com/BruksfildServices01/careflow-api/internal/auth"
	domain "github.com/BruksfildServices01/careflow-api/internal/domain/user"
	"github.com/BruksfildServices01/careflow-api/internal/httperr"
	"github.com/BruksfildServices01/careflow-api/internal/models"
	"github.com/BruksfildServices01/careflow-api/internal/validators"
)

type SignupInput struct {
	Email    string
	Name     string
	Password string
}

type Signup struct {
	users  domain.Repository
	issuer Issuer
	audit  *audit.Dispatcher
}

func NewSignup(
	users domain.Repository,
	issuer Issuer,
	audit *audit.Dispatcher,
) *Signup {
	return &Signup{
		users:  users,
		issuer: issuer,
		audit:  audit,
	}
}

// Execute registers a patient. The role is never taken from the client.
func (uc *Signup) Execute(
	ctx context.Context,
	in SignupInput,
) (*Session, error) {

	u, err := createAccount(ctx, uc.users, in.Email, in.Name, in.Password, domain.RolePatient)
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  u.ID.Hex(),
		Action:   "user_signed_up",
		Entity:   "user",
		EntityID: u.ID.Hex(),
	})

	return newSession(uc.issuer, u)
}

// createAccount checks for an existing email before inserting so the common
// case reports email_already_registered without relying on the index.
func createAccount(
	ctx context.Context,
	users domain.Repository,
	email, name, password string,
	role domain.Role,
) (*models.User, error) {

	if !validators.IsEmail(email) {
		return nil, httperr.ErrInvalidRequest
	}

	_, err := users.FindByEmail(ctx, email)
	switch {
	case err == nil:
		return nil, domain.ErrEmailTaken
	case !errors.Is(err, domain.ErrNotFound):
		return nil, err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}

	u := &models.User{
		Email:        email,
		Name:         name,
		PasswordHash: hash,
		Role:         string(role),
	}
	if err := users.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}
