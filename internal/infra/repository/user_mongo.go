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
	domain "github.com/BruksfildServices01/careflow-api/internal/domain/user"
	"github.com/BruksfildServices01/careflow-api/internal/models"
)

type UserMongoRepository struct {
	users *mongo.Collection
}

func NewUserMongoRepository(database *mongo.Database) *UserMongoRepository {
	return &UserMongoRepository{users: database.Collection(db.CollectionUsers)}
}

func (r *UserMongoRepository) FindByEmail(
	ctx context.Context,
	email string,
) (*models.User, error) {

	return r.findOne(ctx, bson.M{"email": email})
}

func (r *UserMongoRepository) FindByID(
	ctx context.Context,
	id primitive.ObjectID,
) (*models.User, error) {

	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *UserMongoRepository) findOne(ctx context.Context, filter bson.M) (*models.User, error) {
	var u models.User
	err := r.users.FindOne(ctx, filter).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	return &u, nil
}

func (r *UserMongoRepository) Create(
	ctx context.Context,
	u *models.User,
) error {

	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now().UTC()
	}

	if _, err := r.users.InsertOne(ctx, u); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrEmailTaken
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (r *UserMongoRepository) List(
	ctx context.Context,
	role domain.Role,
) ([]models.User, error) {

	filter := bson.M{}
	if role != "" {
		filter["role"] = string(role)
	}

	cursor, err := r.users.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer cursor.Close(ctx)

	users := []models.User{}
	if err := cursor.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("decode users: %w", err)
	}
	return users, nil
}

func (r *UserMongoRepository) UpdateRole(
	ctx context.Context,
	id primitive.ObjectID,
	role domain.Role,
) (*models.User, error) {

	var u models.User
	err := r.users.FindOneAndUpdate(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"role": string(role)}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&u)

	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update role: %w", err)
	}
	return &u, nil
}

func (r *UserMongoRepository) Delete(
	ctx context.Context,
	id primitive.ObjectID,
) error {

	res, err := r.users.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Compile-time check
var _ domain.Repository = (*UserMongoRepository)(nil)
