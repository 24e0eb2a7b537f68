package doctorRepo

import (
	"context"
	"testing"
	"time"

	"clinicdesk/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func doctorDoc(id, owner string) bson.D {
	return bson.D{
		{Key: "id", Value: id},
		{Key: "userid", Value: owner},
		{Key: "name", Value: "Dr. Amina Otieno"},
		{Key: "specialization", Value: "Cardiology"},
		{Key: "enabled_days", Value: bson.D{{Key: "monday", Value: true}}},
		{Key: "time_slots", Value: bson.D{
			{Key: "mondayStart", Value: primitive.NewDateTimeFromTime(time.Date(2025, 1, 6, 9, 0, 0, 0, time.UTC))},
			{Key: "mondayEnd", Value: primitive.NewDateTimeFromTime(time.Date(2025, 1, 6, 17, 0, 0, 0, time.UTC))},
		}},
		{Key: "holidays", Value: bson.A{
			bson.D{
				{Key: "id", Value: "holiday-1"},
				{Key: "date", Value: primitive.NewDateTimeFromTime(time.Date(2025, 12, 25, 0, 0, 0, 0, time.UTC))},
				{Key: "reason", Value: "Christmas"},
			},
		}},
	}
}

func TestMongoDoctorRepo(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("FindByOwnerReference decodes the schedule", func(mt *mtest.T) {
		ns := mt.Coll.Database().Name() + "." + mt.Coll.Name()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, doctorDoc("doc-1", "user-1")))

		repo := NewMongoDoctorRepoWithCollection(mt.Coll)
		doctor, err := repo.FindByOwnerReference(context.Background(), "user-1")
		require.NoError(mt, err)

		assert.Equal(mt, "doc-1", doctor.ID)
		assert.Equal(mt, "user-1", doctor.UserID)
		assert.True(mt, doctor.EnabledDays["monday"])
		assert.Equal(mt, 9, doctor.TimeSlots["mondayStart"].Hour())
		require.Len(mt, doctor.Holidays, 1)
		assert.Equal(mt, "Christmas", doctor.Holidays[0].Reason)
	})

	mt.Run("FindByOwnerReference maps no documents to ErrDoctorNotFound", func(mt *mtest.T) {
		ns := mt.Coll.Database().Name() + "." + mt.Coll.Name()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch))

		repo := NewMongoDoctorRepoWithCollection(mt.Coll)
		_, err := repo.FindByOwnerReference(context.Background(), "nobody")
		assert.ErrorIs(mt, err, ErrDoctorNotFound)
	})

	mt.Run("driver errors are wrapped", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code: 91, Name: "ShutdownInProgress", Message: "shutting down",
		}))

		repo := NewMongoDoctorRepoWithCollection(mt.Coll)
		_, err := repo.GetByID(context.Background(), "doc-1")
		require.Error(mt, err)
		assert.NotErrorIs(mt, err, ErrDoctorNotFound)
		assert.Contains(mt, err.Error(), "failed to find doctor")
	})

	mt.Run("GetAll returns every doctor", func(mt *mtest.T) {
		ns := mt.Coll.Database().Name() + "." + mt.Coll.Name()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch,
			doctorDoc("doc-1", "user-1"), doctorDoc("doc-2", "user-2")))

		repo := NewMongoDoctorRepoWithCollection(mt.Coll)
		doctors, err := repo.GetAll(context.Background())
		require.NoError(mt, err)
		require.Len(mt, doctors, 2)
		assert.Equal(mt, "user-2", doctors[1].UserID)
	})

	mt.Run("UpdateSchedule reports unmatched ids", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 0}, bson.E{Key: "nModified", Value: 0},
		))

		repo := NewMongoDoctorRepoWithCollection(mt.Coll)
		err := repo.UpdateSchedule(context.Background(), "missing", models.ScheduleDocument{})
		assert.ErrorIs(mt, err, ErrDoctorNotFound)
	})

	mt.Run("UpdateSchedule succeeds when matched", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 1}, bson.E{Key: "nModified", Value: 1},
		))

		repo := NewMongoDoctorRepoWithCollection(mt.Coll)
		err := repo.UpdateSchedule(context.Background(), "doc-1", models.ScheduleDocument{
			EnabledDays: map[string]bool{"monday": true},
		})
		assert.NoError(mt, err)
	})

	mt.Run("Count", func(mt *mtest.T) {
		ns := mt.Coll.Database().Name() + "." + mt.Coll.Name()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, bson.D{{Key: "n", Value: int32(3)}}))

		repo := NewMongoDoctorRepoWithCollection(mt.Coll)
		n, err := repo.Count(context.Background())
		require.NoError(mt, err)
		assert.Equal(mt, int64(3), n)
	})
}
