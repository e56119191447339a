package appointment

import (
	"context"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/BruksfildServices01/careflow-api/internal/audit"
	domain "github.com/BruksfildServices01/careflow-api/internal/domain/appointment"
	"github.com/BruksfildServices01/careflow-api/internal/httperr"
	"github.com/BruksfildServices01/careflow-api/internal/models"
)

// Author is the authenticated user writing a comment.
type Author struct {
	ID   string
	Name string
	Role string
}

type AddComment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	now   func() time.Time
}

func NewAddComment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *AddComment {
	return &AddComment{
		repo:  repo,
		audit: audit,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

func (uc *AddComment) Execute(
	ctx context.Context,
	author Author,
	appointmentID primitive.ObjectID,
	content string,
) (*models.Comment, error) {

	if strings.TrimSpace(content) == "" {
		return nil, httperr.ErrInvalidRequest
	}

	// The appointment must exist when the comment is written.
	if _, err := uc.repo.Get(ctx, appointmentID); err != nil {
		return nil, err
	}

	c := &models.Comment{
		AppointmentID: appointmentID.Hex(),
		UserID:        author.ID,
		UserName:      author.Name,
		UserRole:      author.Role,
		Content:       content,
		Timestamp:     uc.now(),
	}

	if err := uc.repo.AddComment(ctx, c); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  author.ID,
		Action:   "comment_added",
		Entity:   "appointment",
		EntityID: c.AppointmentID,
	})

	return c, nil
}
