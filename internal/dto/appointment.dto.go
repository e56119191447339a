package dto

type CreateAppointmentRequest struct {
	PatientID   string  `json:"patient_id" binding:"required"`
	PatientName string  `json:"patient_name" binding:"required"`
	DoctorID    string  `json:"doctor_id" binding:"required"`
	DoctorName  string  `json:"doctor_name" binding:"required"`
	Date        string  `json:"date" binding:"required"` // YYYY-MM-DD
	Time        string  `json:"time" binding:"required"` // HH:MM
	Reason      *string `json:"reason"`
}

// UpdateAppointmentRequest is partial; absent fields stay unchanged.
type UpdateAppointmentRequest struct {
	PatientID   *string `json:"patient_id"`
	PatientName *string `json:"patient_name"`
	DoctorID    *string `json:"doctor_id"`
	DoctorName  *string `json:"doctor_name"`
	Date        *string `json:"date"`
	Time        *string `json:"time"`
	Reason      *string `json:"reason"`
	Status      *string `json:"status"`
}

type CommentRequest struct {
	Content string `json:"content" binding:"required"`
}
