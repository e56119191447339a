package user

import (
	"context"
	"errors"

	"github.com/BruksfildServices01/careflow-api/internal/audit"
	"github.com/BruksfildServices01/careflow-api/internal/auth"
	domain "github.com/BruksfildServices01/careflow-api/internal/domain/user"
	"github.com/BruksfildServices01/careflow-api/internal/models"
	"github.com/BruksfildServices01/careflow-api/internal/validators"
)

type LoginInput struct {
	Email    string
	Password string
	Role     domain.Role
}

type Login struct {
	users         domain.Repository
	issuer        Issuer
	audit         *audit.Dispatcher
	autoProvision bool
}

func NewLogin(
	users domain.Repository,
	issuer Issuer,
	audit *audit.Dispatcher,
	autoProvision bool,
) *Login {
	return &Login{
		users:         users,
		issuer:        issuer,
		audit:         audit,
		autoProvision: autoProvision,
	}
}

func (uc *Login) Execute(
	ctx context.Context,
	in LoginInput,
) (*Session, error) {

	u, err := uc.users.FindByEmail(ctx, in.Email)
	if errors.Is(err, domain.ErrNotFound) {
		if !uc.autoProvision {
			return nil, domain.ErrInvalidCredentials
		}
		return uc.provision(ctx, in)
	}
	if err != nil {
		return nil, err
	}

	if err := verify(u, in); err != nil {
		return nil, err
	}

	return newSession(uc.issuer, u)
}

// provision creates the account on first login. A concurrent login that won
// the insert is verified like an existing account.
func (uc *Login) provision(ctx context.Context, in LoginInput) (*Session, error) {
	u, err := createAccount(ctx, uc.users, in.Email, validators.LocalPart(in.Email), in.Password, in.Role)
	if errors.Is(err, domain.ErrEmailTaken) {
		existing, ferr := uc.users.FindByEmail(ctx, in.Email)
		if ferr != nil {
			return nil, ferr
		}
		if err := verify(existing, in); err != nil {
			return nil, err
		}
		return newSession(uc.issuer, existing)
	}
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  u.ID.Hex(),
		Action:   "user_auto_provisioned",
		Entity:   "user",
		EntityID: u.ID.Hex(),
		Metadata: map[string]string{"role": u.Role},
	})

	return newSession(uc.issuer, u)
}

func verify(u *models.User, in LoginInput) error {
	if !auth.CheckPassword(u.PasswordHash, in.Password) {
		return domain.ErrInvalidCredentials
	}
	if u.Role != string(in.Role) {
		return domain.ErrRoleMismatch
	}
	return nil
}
