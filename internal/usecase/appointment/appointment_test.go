package appointment

import (
	"context"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	domain "github.com/BruksfildServices01/careflow-api/internal/domain/appointment"
	"github.com/BruksfildServices01/careflow-api/internal/domain/user"
	"github.com/BruksfildServices01/careflow-api/internal/httperr"
)

func patientsOf(views []View) map[string]int {
	out := map[string]int{}
	for _, v := range views {
		out[v.PatientID]++
	}
	return out
}

func TestListVisibilityByRole(t *testing.T) {
	repo := newMemoryRepo()
	repo.seed("p1", "d1", "scheduled", 1)
	repo.seed("p1", "d2", "completed", 2)
	repo.seed("p2", "d2", "scheduled", 3)
	repo.seed("p3", "d3", "scheduled", 4)

	uc := NewListAppointments(repo)
	ctx := context.Background()

	tests := []struct {
		name   string
		caller domain.Caller
		f      domain.Filters
		want   map[string]int
	}{
		{"patient sees own", domain.Caller{ID: "p1", Role: user.RolePatient}, domain.Filters{}, map[string]int{"p1": 2}},
		{"doctor sees treated patients across doctors", domain.Caller{ID: "d1", Role: user.RoleDoctor}, domain.Filters{}, map[string]int{"p1": 2}},
		{"doctor with two patients", domain.Caller{ID: "d2", Role: user.RoleDoctor}, domain.Filters{}, map[string]int{"p1": 2, "p2": 1}},
		{"doctor without patients", domain.Caller{ID: "d9", Role: user.RoleDoctor}, domain.Filters{}, map[string]int{}},
		{"receptionist sees all", domain.Caller{ID: "r1", Role: user.RoleReceptionist}, domain.Filters{}, map[string]int{"p1": 2, "p2": 1, "p3": 1}},
		{"admin status filter", domain.Caller{ID: "a1", Role: user.RoleAdmin}, domain.Filters{Status: "scheduled"}, map[string]int{"p1": 1, "p2": 1, "p3": 1}},
		{"status all is ignored", domain.Caller{ID: "a1", Role: user.RoleAdmin}, domain.Filters{Status: "all"}, map[string]int{"p1": 2, "p2": 1, "p3": 1}},
		{"patient filter cannot widen", domain.Caller{ID: "p1", Role: user.RolePatient}, domain.Filters{Patient: "p3"}, map[string]int{}},
		{"doctor filter cannot widen", domain.Caller{ID: "d1", Role: user.RoleDoctor}, domain.Filters{Patient: "p3"}, map[string]int{}},
		{"admin doctor filter", domain.Caller{ID: "a1", Role: user.RoleAdmin}, domain.Filters{Doctor: "d2"}, map[string]int{"p1": 1, "p2": 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			views, err := uc.Execute(ctx, tt.caller, tt.f)
			if err != nil {
				t.Fatal(err)
			}
			if views == nil {
				t.Fatal("expected non-nil slice")
			}
			got := patientsOf(views)
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for k, n := range tt.want {
				if got[k] != n {
					t.Fatalf("got %v, want %v", got, tt.want)
				}
			}
		})
	}
}

func TestListNewestFirstWithComments(t *testing.T) {
	repo := newMemoryRepo()
	older := repo.seed("p1", "d1", "scheduled", 1)
	newer := repo.seed("p1", "d1", "scheduled", 5)

	add := NewAddComment(repo, nil)
	ctx := context.Background()
	for _, content := range []string{"first", "second"} {
		if _, err := add.Execute(ctx, Author{ID: "d1", Name: "Dr", Role: "doctor"}, older, content); err != nil {
			t.Fatal(err)
		}
	}

	views, err := NewListAppointments(repo).Execute(ctx, domain.Caller{ID: "p1", Role: user.RolePatient}, domain.Filters{})
	if err != nil {
		t.Fatal(err)
	}
	if len(views) != 2 || views[0].ID != newer || views[1].ID != older {
		t.Fatalf("unexpected order: %+v", views)
	}
	if views[0].Comments == nil || len(views[0].Comments) != 0 {
		t.Fatalf("expected empty non-nil comments, got %#v", views[0].Comments)
	}
	if len(views[1].Comments) != 2 {
		t.Fatalf("expected 2 comments, got %d", len(views[1].Comments))
	}
}

func TestCreateStartsScheduled(t *testing.T) {
	repo := newMemoryRepo()
	uc := NewCreateAppointment(repo, nil)

	v, err := uc.Execute(context.Background(), CreateAppointmentInput{
		PatientID: "p1", PatientName: "Pat",
		DoctorID: "d1", DoctorName: "Doc",
		Date: "2025-03-01", Time: "14:30",
	})
	if err != nil {
		t.Fatal(err)
	}
	if v.Status != "scheduled" || v.ID.IsZero() || v.CreatedAt.IsZero() {
		t.Fatalf("unexpected appointment: %+v", v)
	}

	_, err = uc.Execute(context.Background(), CreateAppointmentInput{Date: "03/01/2025", Time: "14:30"})
	if err != domain.ErrInvalidDateOrTime {
		t.Fatalf("expected ErrInvalidDateOrTime, got %v", err)
	}
}

func TestUpdatePartial(t *testing.T) {
	repo := newMemoryRepo()
	id := repo.seed("p1", "d1", "scheduled", 1)
	uc := NewUpdateAppointment(repo, nil)
	ctx := context.Background()

	status := "completed"
	v, err := uc.Execute(ctx, "d1", id, domain.Patch{Status: &status})
	if err != nil {
		t.Fatal(err)
	}
	if v.Status != "completed" || v.PatientID != "p1" || v.UpdatedAt == nil {
		t.Fatalf("unexpected update: %+v", v)
	}

	bad := "done"
	if _, err := uc.Execute(ctx, "d1", id, domain.Patch{Status: &bad}); err != domain.ErrInvalidStatus {
		t.Fatalf("expected ErrInvalidStatus, got %v", err)
	}

	if _, err := uc.Execute(ctx, "d1", primitive.NewObjectID(), domain.Patch{Status: &status}); err != domain.ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteRemovesOnlyOwnComments(t *testing.T) {
	repo := newMemoryRepo()
	a := repo.seed("p1", "d1", "scheduled", 1)
	b := repo.seed("p2", "d1", "scheduled", 2)

	add := NewAddComment(repo, nil)
	ctx := context.Background()
	author := Author{ID: "d1", Name: "Dr", Role: "doctor"}
	_, _ = add.Execute(ctx, author, a, "on a")
	_, _ = add.Execute(ctx, author, b, "on b")

	if err := NewDeleteAppointment(repo, nil).Execute(ctx, "d1", a); err != nil {
		t.Fatal(err)
	}

	left, _ := repo.CommentsFor(ctx, []string{a.Hex(), b.Hex()})
	if len(left[a.Hex()]) != 0 || len(left[b.Hex()]) != 1 {
		t.Fatalf("unexpected comments after delete: %v", left)
	}

	if err := NewDeleteAppointment(repo, nil).Execute(ctx, "d1", a); err != domain.ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestAddCommentRequiresAppointment(t *testing.T) {
	repo := newMemoryRepo()
	uc := NewAddComment(repo, nil)
	ctx := context.Background()

	_, err := uc.Execute(ctx, Author{ID: "u"}, primitive.NewObjectID(), "hello")
	if err != domain.ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	id := repo.seed("p1", "d1", "scheduled", 1)
	if _, err := uc.Execute(ctx, Author{ID: "u"}, id, "   "); err != httperr.ErrInvalidRequest {
		t.Fatalf("expected ErrInvalidRequest, got %v", err)
	}

	c, err := uc.Execute(ctx, Author{ID: "u", Name: "Una", Role: "patient"}, id, "hello")
	if err != nil {
		t.Fatal(err)
	}
	if c.AppointmentID != id.Hex() || c.UserName != "Una" || c.Timestamp.IsZero() {
		t.Fatalf("unexpected comment: %+v", c)
	}
}
