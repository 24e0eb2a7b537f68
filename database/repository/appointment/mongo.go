package appointmentRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"clinicdesk/database"
	"clinicdesk/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type mongoAppointmentRepo struct {
	coll *mongo.Collection
}

// NewMongoAppointmentRepo constructs an AppointmentRepository on the global client.
func NewMongoAppointmentRepo() (AppointmentRepository, error) {
	repo := &mongoAppointmentRepo{coll: database.Mongo().Collection(database.AppointmentsCollection)}
	if err := repo.ensureIndexes(); err != nil {
		return nil, err
	}
	return repo, nil
}

func NewMongoAppointmentRepoWithCollection(coll *mongo.Collection) AppointmentRepository {
	return &mongoAppointmentRepo{coll: coll}
}

func (r *mongoAppointmentRepo) GetByID(ctx context.Context, id string) (*models.Appointment, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var appt models.Appointment
	err := r.coll.FindOne(ctx, bson.M{"AppointmentId": id}).Decode(&appt)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrAppointmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get appointment %s: %w", id, err)
	}
	normalizeReview(&appt)
	return &appt, nil
}

func (r *mongoAppointmentRepo) find(ctx context.Context, filter bson.M) ([]models.Appointment, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "appointmentDate", Value: -1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query appointments: %w", err)
	}
	defer cursor.Close(ctx)

	var appts []models.Appointment
	if err := cursor.All(ctx, &appts); err != nil {
		return nil, fmt.Errorf("failed to decode appointments: %w", err)
	}
	for i := range appts {
		normalizeReview(&appts[i])
	}
	return appts, nil
}

func (r *mongoAppointmentRepo) GetByDoctorUserID(ctx context.Context, doctorUserID string) ([]models.Appointment, error) {
	return r.find(ctx, bson.M{"doctorUserId": doctorUserID})
}

func (r *mongoAppointmentRepo) GetAll(ctx context.Context) ([]models.Appointment, error) {
	return r.find(ctx, bson.M{})
}

func (r *mongoAppointmentRepo) Create(ctx context.Context, appt *models.Appointment) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, appt); err != nil {
		return fmt.Errorf("failed to create appointment: %w", err)
	}
	return nil
}

func (r *mongoAppointmentRepo) UpdateFields(ctx context.Context, id string, fields map[string]interface{}) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	result, err := r.coll.UpdateOne(ctx, bson.M{"AppointmentId": id}, bson.M{"$set": bson.M(fields)})
	if err != nil {
		return fmt.Errorf("failed to update appointment %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return ErrAppointmentNotFound
	}
	return nil
}

func (r *mongoAppointmentRepo) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	result, err := r.coll.DeleteOne(ctx, bson.M{"AppointmentId": id})
	if err != nil {
		return fmt.Errorf("failed to delete appointment %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return ErrAppointmentNotFound
	}
	return nil
}

// normalizeReview converts driver-specific values in the free-form review map.
func normalizeReview(appt *models.Appointment) {
	for k, v := range appt.Review {
		switch t := v.(type) {
		case primitive.DateTime:
			appt.Review[k] = t.Time().UTC()
		case int32:
			appt.Review[k] = int64(t)
		}
	}
}
