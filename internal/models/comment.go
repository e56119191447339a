package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Comment struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	AppointmentID string             `bson:"appointment_id" json:"appointment_id"`
	UserID        string             `bson:"user_id" json:"user_id"`
	UserName      string             `bson:"user_name" json:"user_name"`
	UserRole      string             `bson:"user_role" json:"user_role"`
	Content       string             `bson:"content" json:"content"`
	Timestamp     time.Time          `bson:"timestamp" json:"timestamp"`
}
