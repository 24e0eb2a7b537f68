package userRepo

import (
	"context"
	"fmt"
	"time"

	"clinicdesk/database"
	"clinicdesk/models"

	"cloud.google.com/go/firestore"
)

// firestoreUserRepo reads the Users collection, where the document id is the uid.
type firestoreUserRepo struct {
	client *firestore.Client
}

func NewFirestoreUserRepo() UserRepository {
	return NewFirestoreUserRepoWithClient(database.FirestoreClient)
}

func NewFirestoreUserRepoWithClient(client *firestore.Client) UserRepository {
	return &firestoreUserRepo{client: client}
}

func (r *firestoreUserRepo) coll() *firestore.CollectionRef {
	return r.client.Collection(database.UsersCollection)
}

func (r *firestoreUserRepo) GetByUID(ctx context.Context, uid string) (*models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	snap, err := r.coll().Doc(uid).Get(ctx)
	if database.IsFirestoreNotFound(err) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user %s: %w", uid, err)
	}
	user := userFromData(snap.Ref.ID, snap.Data())
	return &user, nil
}

func (r *firestoreUserRepo) GetByUIDs(ctx context.Context, uids []string) (map[string]models.User, error) {
	out := make(map[string]models.User, len(uids))
	if len(uids) == 0 {
		return out, nil
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	refs := make([]*firestore.DocumentRef, 0, len(uids))
	for _, uid := range uids {
		refs = append(refs, r.coll().Doc(uid))
	}
	snaps, err := r.client.GetAll(ctx, refs)
	if err != nil {
		return nil, fmt.Errorf("failed to get users: %w", err)
	}
	for _, snap := range snaps {
		if !snap.Exists() {
			continue
		}
		out[snap.Ref.ID] = userFromData(snap.Ref.ID, snap.Data())
	}
	return out, nil
}

func (r *firestoreUserRepo) GetAll(ctx context.Context) ([]models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	docs, err := r.coll().Documents(ctx).GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	users := make([]models.User, 0, len(docs))
	for _, d := range docs {
		users = append(users, userFromData(d.Ref.ID, d.Data()))
	}
	return users, nil
}

// userFromData accepts the role and doctor-flag spellings found in older documents.
func userFromData(id string, data map[string]interface{}) models.User {
	user := models.User{
		UID:         id,
		DisplayName: database.AsString(data, "display_name", "displayName"),
		Name:        database.AsString(data, "name"),
		Email:       database.AsString(data, "email"),
		PhoneNumber: database.AsString(data, "phone_number", "phoneNumber"),
		PhotoURL:    database.AsString(data, "photo_url", "photoURL"),
		Role:        database.AsString(data, "role", "Role"),
		IsDoctor:    database.AsBool(data["isDoctor"]) || database.AsBool(data["is_doctor"]),
	}
	if created, ok := database.AsTime(data["created_time"]); ok {
		user.CreatedAt = created
	}
	return user
}
