package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/BruksfildServices01/careflow-api/internal/db"
	domain "github.com/BruksfildServices01/careflow-api/internal/domain/appointment"
	"github.com/BruksfildServices01/careflow-api/internal/models"
)

type AppointmentMongoRepository struct {
	appointments *mongo.Collection
	comments     *mongo.Collection
}

func NewAppointmentMongoRepository(database *mongo.Database) *AppointmentMongoRepository {
	return &AppointmentMongoRepository{
		appointments: database.Collection(db.CollectionAppointments),
		comments:     database.Collection(db.CollectionComments),
	}
}

// --------------------------------------------------
// Access control
// --------------------------------------------------

func (r *AppointmentMongoRepository) DistinctPatientIDs(
	ctx context.Context,
	doctorID string,
) ([]string, error) {

	values, err := r.appointments.Distinct(ctx, "patient_id", bson.M{"doctor_id": doctorID})
	if err != nil {
		return nil, fmt.Errorf("distinct patients: %w", err)
	}

	ids := make([]string, 0, len(values))
	for _, v := range values {
		if s, ok := v.(string); ok {
			ids = append(ids, s)
		}
	}
	return ids, nil
}

// ListFilter translates a ListQuery into a Mongo filter. Conditions are
// combined with $and so an explicit patient filter never replaces the
// role restriction on the same field.
func ListFilter(q domain.ListQuery) bson.M {
	var conds bson.A

	if q.RestrictPatients {
		in := q.PatientIn
		if in == nil {
			in = []string{}
		}
		conds = append(conds, bson.M{"patient_id": bson.M{"$in": in}})
	}
	if q.PatientID != "" {
		conds = append(conds, bson.M{"patient_id": q.PatientID})
	}
	if q.DoctorID != "" {
		conds = append(conds, bson.M{"doctor_id": q.DoctorID})
	}
	if q.Status != "" {
		conds = append(conds, bson.M{"status": q.Status})
	}

	switch len(conds) {
	case 0:
		return bson.M{}
	case 1:
		return conds[0].(bson.M)
	default:
		return bson.M{"$and": conds}
	}
}

// --------------------------------------------------
// Appointment
// --------------------------------------------------

func (r *AppointmentMongoRepository) List(
	ctx context.Context,
	q domain.ListQuery,
) ([]models.Appointment, error) {

	apps := []models.Appointment{}
	if q.MatchesNothing() {
		return apps, nil
	}

	cursor, err := r.appointments.Find(
		ctx,
		ListFilter(q),
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}),
	)
	if err != nil {
		return nil, fmt.Errorf("list appointments: %w", err)
	}
	defer cursor.Close(ctx)

	if err := cursor.All(ctx, &apps); err != nil {
		return nil, fmt.Errorf("decode appointments: %w", err)
	}
	return apps, nil
}

func (r *AppointmentMongoRepository) Get(
	ctx context.Context,
	id primitive.ObjectID,
) (*models.Appointment, error) {

	var ap models.Appointment
	err := r.appointments.FindOne(ctx, bson.M{"_id": id}).Decode(&ap)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get appointment: %w", err)
	}
	return &ap, nil
}

func (r *AppointmentMongoRepository) Create(
	ctx context.Context,
	ap *models.Appointment,
) error {

	if ap.ID.IsZero() {
		ap.ID = primitive.NewObjectID()
	}
	if _, err := r.appointments.InsertOne(ctx, ap); err != nil {
		return fmt.Errorf("insert appointment: %w", err)
	}
	return nil
}

func (r *AppointmentMongoRepository) Update(
	ctx context.Context,
	id primitive.ObjectID,
	patch domain.Patch,
	now time.Time,
) (*models.Appointment, error) {

	var ap models.Appointment
	err := r.appointments.FindOneAndUpdate(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M(patch.Fields(now))},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&ap)

	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update appointment: %w", err)
	}
	return &ap, nil
}

func (r *AppointmentMongoRepository) Delete(
	ctx context.Context,
	id primitive.ObjectID,
) error {

	if _, err := r.comments.DeleteMany(ctx, bson.M{"appointment_id": id.Hex()}); err != nil {
		return fmt.Errorf("delete comments: %w", err)
	}

	res, err := r.appointments.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete appointment: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *AppointmentMongoRepository) DeleteByParticipant(
	ctx context.Context,
	userID string,
) (int64, error) {

	filter := bson.M{"$or": bson.A{
		bson.M{"patient_id": userID},
		bson.M{"doctor_id": userID},
	}}

	cursor, err := r.appointments.Find(ctx, filter, options.Find().SetProjection(bson.M{"_id": 1}))
	if err != nil {
		return 0, fmt.Errorf("find participant appointments: %w", err)
	}

	var rows []struct {
		ID primitive.ObjectID `bson:"_id"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return 0, fmt.Errorf("decode participant appointments: %w", err)
	}
	if len(rows) == 0 {
		return 0, nil
	}

	ids := make(bson.A, 0, len(rows))
	hexes := make(bson.A, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ID)
		hexes = append(hexes, row.ID.Hex())
	}

	if _, err := r.comments.DeleteMany(ctx, bson.M{"appointment_id": bson.M{"$in": hexes}}); err != nil {
		return 0, fmt.Errorf("delete participant comments: %w", err)
	}

	res, err := r.appointments.DeleteMany(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return 0, fmt.Errorf("delete participant appointments: %w", err)
	}
	return res.DeletedCount, nil
}

// --------------------------------------------------
// Comments
// --------------------------------------------------

func (r *AppointmentMongoRepository) CommentsFor(
	ctx context.Context,
	appointmentIDs []string,
) (map[string][]models.Comment, error) {

	out := make(map[string][]models.Comment, len(appointmentIDs))
	if len(appointmentIDs) == 0 {
		return out, nil
	}

	cursor, err := r.comments.Find(ctx, bson.M{"appointment_id": bson.M{"$in": appointmentIDs}})
	if err != nil {
		return nil, fmt.Errorf("find comments: %w", err)
	}
	defer cursor.Close(ctx)

	var comments []models.Comment
	if err := cursor.All(ctx, &comments); err != nil {
		return nil, fmt.Errorf("decode comments: %w", err)
	}

	for _, c := range comments {
		out[c.AppointmentID] = append(out[c.AppointmentID], c)
	}
	return out, nil
}

func (r *AppointmentMongoRepository) AddComment(
	ctx context.Context,
	c *models.Comment,
) error {

	if c.ID.IsZero() {
		c.ID = primitive.NewObjectID()
	}
	if _, err := r.comments.InsertOne(ctx, c); err != nil {
		return fmt.Errorf("insert comment: %w", err)
	}
	return nil
}

// Compile-time check
var _ domain.Repository = (*AppointmentMongoRepository)(nil)
