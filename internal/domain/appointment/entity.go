package appointment

import (
	"time"

	"github.com/BruksfildServices01/careflow-api/internal/models"
)

// ===============================
// Domain Actions
// ===============================

type Draft struct {
	PatientID   string
	PatientName string
	DoctorID    string
	DoctorName  string
	Date        string
	Time        string
	Reason      *string
}

// New builds a scheduled appointment from a validated draft.
func New(d Draft, now time.Time) (*models.Appointment, error) {
	if err := ValidateDateTime(d.Date, d.Time); err != nil {
		return nil, err
	}

	return &models.Appointment{
		PatientID:   d.PatientID,
		PatientName: d.PatientName,
		DoctorID:    d.DoctorID,
		DoctorName:  d.DoctorName,
		Date:        d.Date,
		Time:        d.Time,
		Reason:      d.Reason,
		Status:      string(InitialStatus()),
		CreatedAt:   now,
	}, nil
}

// Patch is a partial update; nil fields are left untouched.
type Patch struct {
	PatientID   *string
	PatientName *string
	DoctorID    *string
	DoctorName  *string
	Date        *string
	Time        *string
	Reason      *string
	Status      *string
}

func (p Patch) Validate() error {
	if p.Status != nil && !Status(*p.Status).Valid() {
		return ErrInvalidStatus
	}
	if p.Date != nil && !ValidDate(*p.Date) {
		return ErrInvalidDateOrTime
	}
	if p.Time != nil && !ValidTime(*p.Time) {
		return ErrInvalidDateOrTime
	}
	return nil
}

// Fields returns the document fields the patch sets, keyed by stored name.
// updated_at is always included.
func (p Patch) Fields(now time.Time) map[string]any {
	set := map[string]any{"updated_at": now}

	put := func(key string, v *string) {
		if v != nil {
			set[key] = *v
		}
	}
	put("patient_id", p.PatientID)
	put("patient_name", p.PatientName)
	put("doctor_id", p.DoctorID)
	put("doctor_name", p.DoctorName)
	put("date", p.Date)
	put("time", p.Time)
	put("reason", p.Reason)
	put("status", p.Status)

	return set
}

// Apply mutates ap in place the same way Fields would be stored.
func (p Patch) Apply(ap *models.Appointment, now time.Time) {
	assign := func(dst *string, v *string) {
		if v != nil {
			*dst = *v
		}
	}
	assign(&ap.PatientID, p.PatientID)
	assign(&ap.PatientName, p.PatientName)
	assign(&ap.DoctorID, p.DoctorID)
	assign(&ap.DoctorName, p.DoctorName)
	assign(&ap.Date, p.Date)
	assign(&ap.Time, p.Time)
	assign(&ap.Status, p.Status)
	if p.Reason != nil {
		r := *p.Reason
		ap.Reason = &r
	}
	ap.UpdatedAt = &now
}
