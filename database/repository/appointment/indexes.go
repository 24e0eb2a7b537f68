package appointmentRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ensureIndexes creates indexes for fields frequently used in queries.
func (r *mongoAppointmentRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "AppointmentId", Value: 1}}, Options: options.Index().SetUnique(true).SetName("appointment_id_unique")},
		{
			Keys:    bson.D{{Key: "doctorUserId", Value: 1}, {Key: "appointmentDate", Value: -1}},
			Options: options.Index().SetName("appointment_doctor_date"),
		},
		{Keys: bson.D{{Key: "status", Value: 1}}, Options: options.Index().SetName("appointment_status")},
	}

	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create appointment indexes: %w", err)
	}
	return nil
}
