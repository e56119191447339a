package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/careflow-api/internal/audit"
	domain "github.com/BruksfildServices01/careflow-api/internal/domain/appointment"
)

// ======================================================
// INPUT
// ======================================================

type CreateAppointmentInput struct {
	ActorID string

	PatientID   string
	PatientName string
	DoctorID    string
	DoctorName  string

	Date   string
	Time   string
	Reason *string
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	now   func() time.Time
}

func NewCreateAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CreateAppointment {
	return &CreateAppointment{
		repo:  repo,
		audit: audit,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateAppointmentInput,
) (*View, error) {

	ap, err := domain.New(domain.Draft{
		PatientID:   in.PatientID,
		PatientName: in.PatientName,
		DoctorID:    in.DoctorID,
		DoctorName:  in.DoctorName,
		Date:        in.Date,
		Time:        in.Time,
		Reason:      in.Reason,
	}, uc.now())
	if err != nil {
		return nil, err
	}

	if err := uc.repo.Create(ctx, ap); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  in.ActorID,
		Action:   "appointment_created",
		Entity:   "appointment",
		EntityID: ap.ID.Hex(),
	})

	v := newView(*ap, nil)
	return &v, nil
}
