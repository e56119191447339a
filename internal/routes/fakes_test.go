package routes

import (
	"context"
	"sort"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/BruksfildServices01/careflow-api/internal/domain/appointment"
	"github.com/BruksfildServices01/careflow-api/internal/domain/user"
	"github.com/BruksfildServices01/careflow-api/internal/models"
)

// memoryStore implements both repositories over shared maps so cascades
// behave like the Mongo implementation.
type memoryStore struct {
	mu           sync.Mutex
	users        map[primitive.ObjectID]models.User
	appointments map[primitive.ObjectID]models.Appointment
	comments     []models.Comment
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		users:        map[primitive.ObjectID]models.User{},
		appointments: map[primitive.ObjectID]models.Appointment{},
	}
}

func (s *memoryStore) Ping(context.Context) error { return nil }

type memoryUsers struct{ *memoryStore }
type memoryAppointments struct{ *memoryStore }

// -------- users --------

func (r memoryUsers) FindByEmail(_ context.Context, email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, user.ErrNotFound
}

func (r memoryUsers) FindByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, user.ErrNotFound
	}
	return &u, nil
}

func (r memoryUsers) Create(_ context.Context, u *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Email == u.Email {
			return user.ErrEmailTaken
		}
	}
	u.ID = primitive.NewObjectID()
	r.users[u.ID] = *u
	return nil
}

func (r memoryUsers) List(_ context.Context, role user.Role) ([]models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []models.User{}
	for _, u := range r.users {
		if role == "" || u.Role == string(role) {
			out = append(out, u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r memoryUsers) UpdateRole(_ context.Context, id primitive.ObjectID, role user.Role) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, user.ErrNotFound
	}
	u.Role = string(role)
	r.users[id] = u
	return &u, nil
}

func (r memoryUsers) Delete(_ context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return user.ErrNotFound
	}
	delete(r.users, id)
	return nil
}

// -------- appointments --------

func (r memoryAppointments) DistinctPatientIDs(_ context.Context, doctorID string) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []string
	for _, ap := range r.appointments {
		if ap.DoctorID == doctorID {
			out = append(out, ap.PatientID)
		}
	}
	return out, nil
}

func (r memoryAppointments) List(_ context.Context, q appointment.ListQuery) ([]models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []models.Appointment{}
	for _, ap := range r.appointments {
		if q.Matches(&ap) {
			out = append(out, ap)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r memoryAppointments) Get(_ context.Context, id primitive.ObjectID) (*models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ap, ok := r.appointments[id]
	if !ok {
		return nil, appointment.ErrNotFound
	}
	return &ap, nil
}

func (r memoryAppointments) Create(_ context.Context, ap *models.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	ap.ID = primitive.NewObjectID()
	// keep creation order stable when the clock does not advance
	ap.CreatedAt = ap.CreatedAt.Add(time.Duration(len(r.appointments)) * time.Millisecond)
	r.appointments[ap.ID] = *ap
	return nil
}

func (r memoryAppointments) Update(_ context.Context, id primitive.ObjectID, p appointment.Patch, now time.Time) (*models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ap, ok := r.appointments[id]
	if !ok {
		return nil, appointment.ErrNotFound
	}
	p.Apply(&ap, now)
	r.appointments[id] = ap
	return &ap, nil
}

func (r memoryAppointments) Delete(_ context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.dropComments(map[string]bool{id.Hex(): true})
	delete(r.appointments, id)
	return nil
}

func (r memoryAppointments) DeleteByParticipant(_ context.Context, userID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ids := map[string]bool{}
	for id, ap := range r.appointments {
		if ap.PatientID == userID || ap.DoctorID == userID {
			ids[id.Hex()] = true
		}
	}
	r.dropComments(ids)
	for id := range r.appointments {
		if ids[id.Hex()] {
			delete(r.appointments, id)
		}
	}
	return int64(len(ids)), nil
}

func (s *memoryStore) dropComments(ids map[string]bool) {
	kept := s.comments[:0]
	for _, c := range s.comments {
		if !ids[c.AppointmentID] {
			kept = append(kept, c)
		}
	}
	s.comments = kept
}

func (r memoryAppointments) CommentsFor(_ context.Context, ids []string) (map[string][]models.Comment, error) {
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

func (r memoryAppointments) AddComment(_ context.Context, c *models.Comment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c.ID = primitive.NewObjectID()
	r.comments = append(r.comments, *c)
	return nil
}

func (s *memoryStore) commentCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.comments)
}

var (
	_ user.Repository        = memoryUsers{}
	_ appointment.Repository = memoryAppointments{}
)
