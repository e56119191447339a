package user

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/BruksfildServices01/careflow-api/internal/audit"
	"github.com/BruksfildServices01/careflow-api/internal/domain/appointment"
	domain "github.com/BruksfildServices01/careflow-api/internal/domain/user"
	"github.com/BruksfildServices01/careflow-api/internal/models"
)

// ======================================================
// ADMIN USER MANAGEMENT
// ======================================================

type CreateUserInput struct {
	ActorID  string
	Email    string
	Name     string
	Password string
	Role     domain.Role
}

type Manage struct {
	users        domain.Repository
	appointments appointment.Repository
	audit        *audit.Dispatcher
}

func NewManage(
	users domain.Repository,
	appointments appointment.Repository,
	audit *audit.Dispatcher,
) *Manage {
	return &Manage{
		users:        users,
		appointments: appointments,
		audit:        audit,
	}
}

func (uc *Manage) Create(
	ctx context.Context,
	in CreateUserInput,
) (*models.User, error) {

	if !in.Role.Valid() {
		return nil, domain.ErrInvalidRole
	}

	u, err := createAccount(ctx, uc.users, in.Email, in.Name, in.Password, in.Role)
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  in.ActorID,
		Action:   "user_created",
		Entity:   "user",
		EntityID: u.ID.Hex(),
		Metadata: map[string]string{"role": u.Role},
	})

	return u, nil
}

func (uc *Manage) List(ctx context.Context, role string) ([]models.User, error) {
	if role == "" {
		return uc.users.List(ctx, "")
	}
	r, err := domain.ParseRole(role)
	if err != nil {
		return nil, err
	}
	return uc.users.List(ctx, r)
}

func (uc *Manage) Get(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	return uc.users.FindByID(ctx, id)
}

func (uc *Manage) UpdateRole(
	ctx context.Context,
	actorID string,
	id primitive.ObjectID,
	role string,
) (*models.User, error) {

	r, err := domain.ParseRole(role)
	if err != nil {
		return nil, err
	}

	u, err := uc.users.UpdateRole(ctx, id, r)
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  actorID,
		Action:   "user_role_updated",
		Entity:   "user",
		EntityID: id.Hex(),
		Metadata: map[string]string{"role": string(r)},
	})

	return u, nil
}

// Delete removes the user and every appointment they take part in. Comments
// go before appointments, appointments before the user.
func (uc *Manage) Delete(
	ctx context.Context,
	actorID string,
	id primitive.ObjectID,
) error {

	if id.Hex() == actorID {
		return domain.ErrCannotDeleteSelf
	}

	if _, err := uc.users.FindByID(ctx, id); err != nil {
		return err
	}

	removed, err := uc.appointments.DeleteByParticipant(ctx, id.Hex())
	if err != nil {
		return err
	}

	if err := uc.users.Delete(ctx, id); err != nil {
		return err
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  actorID,
		Action:   "user_deleted",
		Entity:   "user",
		EntityID: id.Hex(),
		Metadata: map[string]int64{"appointments_deleted": removed},
	})

	return nil
}
