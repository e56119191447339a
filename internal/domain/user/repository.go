package user

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/BruksfildServices01/careflow-api/internal/models"
)

type Repository interface {
	// FindByEmail matches the email exactly; ErrNotFound when absent.
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)

	// Create assigns u.ID and returns ErrEmailTaken on a duplicate email.
	Create(ctx context.Context, u *models.User) error

	// List returns users ordered by name; an empty role lists everyone.
	List(ctx context.Context, role Role) ([]models.User, error)

	UpdateRole(ctx context.Context, id primitive.ObjectID, role Role) (*models.User, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}
