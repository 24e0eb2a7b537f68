package appointmentRepo

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

func appointmentDoc(id string, date time.Time) bson.D {
	return bson.D{
		{Key: "AppointmentId", Value: id},
		{Key: "doctorUserId", Value: "doctor-user-1"},
		{Key: "patientsName", Value: "Jane Wanjiru"},
		{Key: "appointmentDate", Value: primitive.NewDateTimeFromTime(date)},
		{Key: "status", Value: models.StatusPending},
		{Key: "price", Value: 1500.0},
		{Key: "review", Value: bson.D{
			{Key: "rating", Value: int32(4)},
			{Key: "createdAt", Value: primitive.NewDateTimeFromTime(date)},
		}},
	}
}

func TestMongoAppointmentRepo(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	date := time.Date(2025, 12, 26, 10, 0, 0, 0, time.UTC)

	mt.Run("GetByID normalizes review values", func(mt *mtest.T) {
		ns := mt.Coll.Database().Name() + "." + mt.Coll.Name()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, appointmentDoc("APT1", date)))

		repo := NewMongoAppointmentRepoWithCollection(mt.Coll)
		appt, err := repo.GetByID(context.Background(), "APT1")
		require.NoError(mt, err)

		assert.Equal(mt, "APT1", appt.ID)
		assert.True(mt, date.Equal(appt.Date))
		assert.Equal(mt, 1500.0, appt.Price)
		assert.Equal(mt, int64(4), appt.Review["rating"])
		created, ok := appt.Review["createdAt"].(time.Time)
		require.True(mt, ok)
		assert.True(mt, date.Equal(created))
	})

	mt.Run("GetByID not found", func(mt *mtest.T) {
		ns := mt.Coll.Database().Name() + "." + mt.Coll.Name()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch))

		repo := NewMongoAppointmentRepoWithCollection(mt.Coll)
		_, err := repo.GetByID(context.Background(), "APT404")
		assert.ErrorIs(mt, err, ErrAppointmentNotFound)
	})

	mt.Run("GetByDoctorUserID", func(mt *mtest.T) {
		ns := mt.Coll.Database().Name() + "." + mt.Coll.Name()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch,
			appointmentDoc("APT2", date), appointmentDoc("APT1", date.AddDate(0, 0, -1))))

		repo := NewMongoAppointmentRepoWithCollection(mt.Coll)
		appts, err := repo.GetByDoctorUserID(context.Background(), "doctor-user-1")
		require.NoError(mt, err)
		require.Len(mt, appts, 2)
		assert.Equal(mt, "APT2", appts[0].ID)
	})

	mt.Run("Create", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		repo := NewMongoAppointmentRepoWithCollection(mt.Coll)
		err := repo.Create(context.Background(), &models.Appointment{ID: "APT3", Date: date})
		assert.NoError(mt, err)
	})

	mt.Run("Create surfaces duplicate keys", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index: 0, Code: 11000, Message: "duplicate key error",
		}))

		repo := NewMongoAppointmentRepoWithCollection(mt.Coll)
		err := repo.Create(context.Background(), &models.Appointment{ID: "APT3"})
		require.Error(mt, err)
		assert.Contains(mt, err.Error(), "failed to create appointment")
	})

	mt.Run("UpdateFields not matched", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}))

		repo := NewMongoAppointmentRepoWithCollection(mt.Coll)
		err := repo.UpdateFields(context.Background(), "APT404", map[string]interface{}{"status": "cancelled"})
		assert.ErrorIs(mt, err, ErrAppointmentNotFound)
	})

	mt.Run("Delete", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}))

		repo := NewMongoAppointmentRepoWithCollection(mt.Coll)
		assert.NoError(mt, repo.Delete(context.Background(), "APT1"))
	})

	mt.Run("Delete not found", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}))

		repo := NewMongoAppointmentRepoWithCollection(mt.Coll)
		assert.ErrorIs(mt, repo.Delete(context.Background(), "APT404"), ErrAppointmentNotFound)
	})
}
