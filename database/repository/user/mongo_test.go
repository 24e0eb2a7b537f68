package userRepo

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func TestMongoUserRepo(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("GetByUID", func(mt *mtest.T) {
		ns := mt.Coll.Database().Name() + "." + mt.Coll.Name()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, bson.D{
			{Key: "uid", Value: "patient-1"},
			{Key: "display_name", Value: "Jane Wanjiru"},
			{Key: "role", Value: "patient"},
		}))

		repo := NewMongoUserRepoWithCollection(mt.Coll)
		user, err := repo.GetByUID(context.Background(), "patient-1")
		require.NoError(mt, err)
		assert.Equal(mt, "Jane Wanjiru", user.BestName())
		assert.True(mt, user.IsPatient())
	})

	mt.Run("GetByUID not found", func(mt *mtest.T) {
		ns := mt.Coll.Database().Name() + "." + mt.Coll.Name()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch))

		repo := NewMongoUserRepoWithCollection(mt.Coll)
		_, err := repo.GetByUID(context.Background(), "ghost")
		assert.ErrorIs(mt, err, ErrUserNotFound)
	})

	mt.Run("GetByUIDs keys results by uid", func(mt *mtest.T) {
		ns := mt.Coll.Database().Name() + "." + mt.Coll.Name()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch,
			bson.D{{Key: "uid", Value: "a"}, {Key: "name", Value: "A"}},
			bson.D{{Key: "uid", Value: "b"}, {Key: "name", Value: "B"}},
		))

		repo := NewMongoUserRepoWithCollection(mt.Coll)
		users, err := repo.GetByUIDs(context.Background(), []string{"a", "b", "c"})
		require.NoError(mt, err)
		assert.Len(mt, users, 2)
		assert.Equal(mt, "B", users["b"].Name)
	})

	mt.Run("GetByUIDs with no ids skips the query", func(mt *mtest.T) {
		repo := NewMongoUserRepoWithCollection(mt.Coll)
		users, err := repo.GetByUIDs(context.Background(), nil)
		require.NoError(mt, err)
		assert.Empty(mt, users)
	})
}

func TestUserFromData(t *testing.T) {
	user := userFromData("u1", map[string]interface{}{
		"displayName": "Dr. Kamau",
		"Role":        "doctor",
		"is_doctor":   true,
	})
	assert.Equal(t, "u1", user.UID)
	assert.Equal(t, "Dr. Kamau", user.DisplayName)
	assert.Equal(t, "doctor", user.Role)
	assert.True(t, user.IsDoctor)
	assert.False(t, user.IsPatient())

	plain := userFromData("u2", map[string]interface{}{"name": "Someone"})
	assert.True(t, plain.IsPatient())
}
