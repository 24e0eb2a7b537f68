package doctorRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"clinicdesk/database"
	"clinicdesk/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type mongoDoctorRepo struct {
	coll *mongo.Collection
}

// NewMongoDoctorRepo constructs a DoctorRepository on the global client and ensures its indexes.
func NewMongoDoctorRepo() (DoctorRepository, error) {
	repo := &mongoDoctorRepo{coll: database.Mongo().Collection(database.DoctorsCollection)}
	if err := repo.ensureIndexes(); err != nil {
		return nil, err
	}
	return repo, nil
}

// NewMongoDoctorRepoWithCollection wires a repository to an existing collection.
func NewMongoDoctorRepoWithCollection(coll *mongo.Collection) DoctorRepository {
	return &mongoDoctorRepo{coll: coll}
}

func (r *mongoDoctorRepo) findOne(ctx context.Context, filter bson.M) (*models.Doctor, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var doctor models.Doctor
	err := r.coll.FindOne(ctx, filter).Decode(&doctor)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrDoctorNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find doctor: %w", err)
	}
	return &doctor, nil
}

func (r *mongoDoctorRepo) FindByOwnerReference(ctx context.Context, ownerID string) (*models.Doctor, error) {
	return r.findOne(ctx, bson.M{"userid": ownerID})
}

func (r *mongoDoctorRepo) GetByID(ctx context.Context, id string) (*models.Doctor, error) {
	return r.findOne(ctx, bson.M{"id": id})
}

func (r *mongoDoctorRepo) GetAll(ctx context.Context) ([]models.Doctor, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to list doctors: %w", err)
	}
	defer cursor.Close(ctx)

	var doctors []models.Doctor
	if err := cursor.All(ctx, &doctors); err != nil {
		return nil, fmt.Errorf("failed to decode doctors: %w", err)
	}
	return doctors, nil
}

func (r *mongoDoctorRepo) Count(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	n, err := r.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count doctors: %w", err)
	}
	return n, nil
}

func (r *mongoDoctorRepo) UpdateSchedule(ctx context.Context, id string, doc models.ScheduleDocument) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if doc.Holidays == nil {
		doc.Holidays = []models.Holiday{}
	}
	update := bson.M{"$set": bson.M{
		"time_slots":   doc.TimeSlots,
		"enabled_days": doc.EnabledDays,
		"holidays":     doc.Holidays,
	}}

	result, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to update schedule for doctor %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return ErrDoctorNotFound
	}
	return nil
}
