package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Appointment struct {
	ID primitive.ObjectID `bson:"_id,omitempty" json:"id"`

	PatientID   string `bson:"patient_id" json:"patient_id"`
	PatientName string `bson:"patient_name" json:"patient_name"`
	DoctorID    string `bson:"doctor_id" json:"doctor_id"`
	DoctorName  string `bson:"doctor_name" json:"doctor_name"`

	Date   string  `bson:"date" json:"date"`
	Time   string  `bson:"time" json:"time"`
	Reason *string `bson:"reason" json:"reason"`
	Status string  `bson:"status" json:"status"`

	CreatedAt time.Time  `bson:"created_at" json:"created_at"`
	UpdatedAt *time.Time `bson:"updated_at" json:"updated_at"`
}
