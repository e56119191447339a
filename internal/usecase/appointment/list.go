package appointment

import (
	"context"

	domain "github.com/BruksfildServices01/careflow-api/internal/domain/appointment"
)

type ListAppointments struct {
	repo domain.Repository
}

func NewListAppointments(repo domain.Repository) *ListAppointments {
	return &ListAppointments{repo: repo}
}

func (uc *ListAppointments) Execute(
	ctx context.Context,
	caller domain.Caller,
	filters domain.Filters,
) ([]View, error) {

	// --------------------------------------------------
	// Visibility
	// --------------------------------------------------
	var treated []string
	if domain.NeedsTreatedPatients(caller.Role) {
		ids, err := uc.repo.DistinctPatientIDs(ctx, caller.ID)
		if err != nil {
			return nil, err
		}
		treated = ids
	}

	q := domain.BuildListQuery(caller, filters, treated)
	if q.MatchesNothing() {
		return []View{}, nil
	}

	apps, err := uc.repo.List(ctx, q)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// Comments
	// --------------------------------------------------
	ids := make([]string, 0, len(apps))
	for _, ap := range apps {
		ids = append(ids, ap.ID.Hex())
	}

	comments, err := uc.repo.CommentsFor(ctx, ids)
	if err != nil {
		return nil, err
	}

	out := make([]View, 0, len(apps))
	for _, ap := range apps {
		out = append(out, newView(ap, comments[ap.ID.Hex()]))
	}
	return out, nil
}
