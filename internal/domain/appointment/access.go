package appointment

import (
	"slices"

	"github.com/BruksfildServices01/careflow-api/internal/domain/user"
	"github.com/BruksfildServices01/careflow-api/internal/models"
)

// Caller identifies who is listing appointments.
type Caller struct {
	ID   string
	Role user.Role
}

// Filters are the optional query-string filters on the list endpoint.
type Filters struct {
	Status  string
	Patient string
	Doctor  string
}

// ListQuery is the predicate the repository evaluates. All set fields are
// ANDed together.
type ListQuery struct {
	// RestrictPatients limits patient_id to PatientIn. An empty PatientIn
	// with RestrictPatients set matches nothing.
	RestrictPatients bool
	PatientIn        []string

	PatientID string
	DoctorID  string
	Status    string
}

// NeedsTreatedPatients reports whether BuildListQuery needs the caller's
// historical patient set.
func NeedsTreatedPatients(role user.Role) bool {
	return role == user.RoleDoctor
}

// BuildListQuery computes the visibility predicate for caller.
//
// Patients see their own appointments. Doctors see every appointment of any
// patient they have ever treated, including ones booked with other doctors;
// treated is that patient set. Receptionists and admins are unrestricted.
func BuildListQuery(caller Caller, f Filters, treated []string) ListQuery {
	var q ListQuery

	switch caller.Role {
	case user.RolePatient:
		q.RestrictPatients = true
		q.PatientIn = []string{caller.ID}
	case user.RoleDoctor:
		q.RestrictPatients = true
		q.PatientIn = dedupe(treated)
	}

	if f.Status != "" && f.Status != "all" {
		q.Status = f.Status
	}
	q.PatientID = f.Patient
	q.DoctorID = f.Doctor

	return q
}

// MatchesNothing is true when the restriction is an empty set.
func (q ListQuery) MatchesNothing() bool {
	return q.RestrictPatients && len(q.PatientIn) == 0
}

// Matches evaluates the predicate against ap in memory.
func (q ListQuery) Matches(ap *models.Appointment) bool {
	if q.RestrictPatients && !slices.Contains(q.PatientIn, ap.PatientID) {
		return false
	}
	if q.PatientID != "" && ap.PatientID != q.PatientID {
		return false
	}
	if q.DoctorID != "" && ap.DoctorID != q.DoctorID {
		return false
	}
	if q.Status != "" && ap.Status != q.Status {
		return false
	}
	return true
}

func dedupe(ids []string) []string {
	out := make([]string, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok || id == "" {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
