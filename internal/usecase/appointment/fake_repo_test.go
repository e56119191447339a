package appointment

import (
	"context"
	"sort"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	domain "github.com/BruksfildServices01/careflow-api/internal/domain/appointment"
	"github.com/BruksfildServices01/careflow-api/internal/models"
)

type memoryRepo struct {
	mu           sync.Mutex
	appointments map[primitive.ObjectID]*models.Appointment
	comments     []models.Comment
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{appointments: map[primitive.ObjectID]*models.Appointment{}}
}

func (r *memoryRepo) DistinctPatientIDs(_ context.Context, doctorID string) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	seen := map[string]bool{}
	var out []string
	for _, ap := range r.appointments {
		if ap.DoctorID == doctorID && !seen[ap.PatientID] {
			seen[ap.PatientID] = true
			out = append(out, ap.PatientID)
		}
	}
	return out, nil
}

func (r *memoryRepo) List(_ context.Context, q domain.ListQuery) ([]models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := []models.Appointment{}
	for _, ap := range r.appointments {
		if q.Matches(ap) {
			out = append(out, *ap)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *memoryRepo) Get(_ context.Context, id primitive.ObjectID) (*models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ap, ok := r.appointments[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *ap
	return &cp, nil
}

func (r *memoryRepo) Create(_ context.Context, ap *models.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if ap.ID.IsZero() {
		ap.ID = primitive.NewObjectID()
	}
	cp := *ap
	r.appointments[ap.ID] = &cp
	return nil
}

func (r *memoryRepo) Update(_ context.Context, id primitive.ObjectID, p domain.Patch, now time.Time) (*models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ap, ok := r.appointments[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	p.Apply(ap, now)
	cp := *ap
	return &cp, nil
}

func (r *memoryRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.dropComments(map[string]bool{id.Hex(): true})
	if _, ok := r.appointments[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.appointments, id)
	return nil
}

func (r *memoryRepo) DeleteByParticipant(_ context.Context, userID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ids := map[string]bool{}
	for id, ap := range r.appointments {
		if ap.PatientID == userID || ap.DoctorID == userID {
			ids[id.Hex()] = true
		}
	}
	r.dropComments(ids)

	var n int64
	for id := range r.appointments {
		if ids[id.Hex()] {
			delete(r.appointments, id)
			n++
		}
	}
	return n, nil
}

func (r *memoryRepo) dropComments(ids map[string]bool) {
	kept := r.comments[:0]
	for _, c := range r.comments {
		if !ids[c.AppointmentID] {
			kept = append(kept, c)
		}
	}
	r.comments = kept
}

func (r *memoryRepo) CommentsFor(_ context.Context, ids []string) (map[string][]models.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	want := map[string]bool{}
	for _, id := range ids {
		want[id] = true
	}

	out := map[string][]models.Comment{}
	for _, c := range r.comments {
		if want[c.AppointmentID] {
			out[c.AppointmentID] = append(out[c.AppointmentID], c)
		}
	}
	return out, nil
}

func (r *memoryRepo) AddComment(_ context.Context, c *models.Comment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if c.ID.IsZero() {
		c.ID = primitive.NewObjectID()
	}
	r.comments = append(r.comments, *c)
	return nil
}

// seed inserts an appointment created at base+offset minutes.
func (r *memoryRepo) seed(patient, doctor, status string, offset int) primitive.ObjectID {
	base := time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)
	ap := &models.Appointment{
		PatientID: patient,
		DoctorID:  doctor,
		Date:      "2025-01-10",
		Time:      "10:00",
		Status:    status,
		CreatedAt: base.Add(time.Duration(offset) * time.Minute),
	}
	_ = r.Create(context.Background(), ap)
	return ap.ID
}

var _ domain.Repository = (*memoryRepo)(nil)
