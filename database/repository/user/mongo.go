package userRepo

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

type mongoUserRepo struct {
	coll *mongo.Collection
}

func NewMongoUserRepo() (UserRepository, error) {
	repo := &mongoUserRepo{coll: database.Mongo().Collection(database.UsersCollection)}
	if err := repo.ensureIndexes(); err != nil {
		return nil, err
	}
	return repo, nil
}

func NewMongoUserRepoWithCollection(coll *mongo.Collection) UserRepository {
	return &mongoUserRepo{coll: coll}
}

func (r *mongoUserRepo) GetByUID(ctx context.Context, uid string) (*models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var user models.User
	err := r.coll.FindOne(ctx, bson.M{"uid": uid}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user %s: %w", uid, err)
	}
	return &user, nil
}

func (r *mongoUserRepo) GetByUIDs(ctx context.Context, uids []string) (map[string]models.User, error) {
	out := make(map[string]models.User, len(uids))
	if len(uids) == 0 {
		return out, nil
	}
	users, err := r.find(ctx, bson.M{"uid": bson.M{"$in": uids}})
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		out[u.UID] = u
	}
	return out, nil
}

func (r *mongoUserRepo) GetAll(ctx context.Context) ([]models.User, error) {
	return r.find(ctx, bson.M{})
}

func (r *mongoUserRepo) find(ctx context.Context, filter bson.M) ([]models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer cursor.Close(ctx)

	var users []models.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("failed to decode users: %w", err)
	}
	return users, nil
}

// ensureIndexes creates indexes for fields frequently used in queries.
func (r *mongoUserRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "uid", Value: 1}}, Options: options.Index().SetUnique(true).SetName("user_uid_unique")},
		{Keys: bson.D{{Key: "role", Value: 1}}, Options: options.Index().SetName("user_role")},
	}
	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create user indexes: %w", err)
	}
	return nil
}
