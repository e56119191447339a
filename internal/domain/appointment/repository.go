package appointment

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/BruksfildServices01/careflow-api/internal/models"
)

type Repository interface {
	// -------- Access control --------
	DistinctPatientIDs(
		ctx context.Context,
		doctorID string,
	) ([]string, error)

	// -------- Appointment --------
	// List returns matches ordered by created_at, newest first.
	List(
		ctx context.Context,
		q ListQuery,
	) ([]models.Appointment, error)

	Get(
		ctx context.Context,
		id primitive.ObjectID,
	) (*models.Appointment, error)

	Create(
		ctx context.Context,
		ap *models.Appointment,
	) error

	Update(
		ctx context.Context,
		id primitive.ObjectID,
		patch Patch,
		now time.Time,
	) (*models.Appointment, error)

	// Delete removes the appointment's comments first, then the appointment.
	Delete(
		ctx context.Context,
		id primitive.ObjectID,
	) error

	// DeleteByParticipant removes every appointment where userID is patient
	// or doctor, comments first. It returns the number of appointments removed.
	DeleteByParticipant(
		ctx context.Context,
		userID string,
	) (int64, error)

	// -------- Comments --------
	CommentsFor(
		ctx context.Context,
		appointmentIDs []string,
	) (map[string][]models.Comment, error)

	AddComment(
		ctx context.Context,
		c *models.Comment,
	) error
}
