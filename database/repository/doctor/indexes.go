package doctorRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ensureIndexes creates indexes for fields frequently used in queries.
func (r *mongoDoctorRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true).SetName("doctor_id_unique")},
		{Keys: bson.D{{Key: "userid", Value: 1}}, Options: options.Index().SetUnique(true).SetName("doctor_owner_unique")},
		{Keys: bson.D{{Key: "specialization", Value: 1}}, Options: options.Index().SetName("doctor_specialization")},
	}

	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create doctor indexes: %w", err)
	}
	return nil
}
