package appointment

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/BruksfildServices01/careflow-api/internal/audit"
	domain "github.com/BruksfildServices01/careflow-api/internal/domain/appointment"
)

type UpdateAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	now   func() time.Time
}

func NewUpdateAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *UpdateAppointment {
	return &UpdateAppointment{
		repo:  repo,
		audit: audit,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

func (uc *UpdateAppointment) Execute(
	ctx context.Context,
	actorID string,
	id primitive.ObjectID,
	patch domain.Patch,
) (*View, error) {

	if _, err := uc.repo.Get(ctx, id); err != nil {
		return nil, err
	}

	if err := patch.Validate(); err != nil {
		return nil, err
	}

	ap, err := uc.repo.Update(ctx, id, patch, uc.now())
	if err != nil {
		return nil, err
	}

	comments, err := uc.repo.CommentsFor(ctx, []string{id.Hex()})
	if err != nil {
		return nil, err
	}

	meta := map[string]any{}
	if patch.Status != nil {
		meta["status"] = *patch.Status
	}
	uc.audit.Dispatch(audit.Event{
		ActorID:  actorID,
		Action:   "appointment_updated",
		Entity:   "appointment",
		EntityID: id.Hex(),
		Metadata: meta,
	})

	v := newView(*ap, comments[id.Hex()])
	return &v, nil
}
