package doctorRepo

import (
	"context"
	"fmt"
	"time"

	"clinicdesk/database"
	"clinicdesk/models"

	"cloud.google.com/go/firestore"
)

// firestoreDoctorRepo reads the Doctor collection, where "userid" is a
// reference to the owning Users document.
type firestoreDoctorRepo struct {
	client *firestore.Client
}

// NewFirestoreDoctorRepo constructs a DoctorRepository on the global Firestore client.
func NewFirestoreDoctorRepo() DoctorRepository {
	return NewFirestoreDoctorRepoWithClient(database.FirestoreClient)
}

func NewFirestoreDoctorRepoWithClient(client *firestore.Client) DoctorRepository {
	return &firestoreDoctorRepo{client: client}
}

func (r *firestoreDoctorRepo) coll() *firestore.CollectionRef {
	return r.client.Collection(database.DoctorsCollection)
}

func (r *firestoreDoctorRepo) FindByOwnerReference(ctx context.Context, ownerID string) (*models.Doctor, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	owner := r.client.Collection(database.UsersCollection).Doc(ownerID)
	docs, err := r.coll().Where("userid", "==", owner).Limit(1).Documents(ctx).GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to find doctor for user %s: %w", ownerID, err)
	}
	if len(docs) == 0 {
		return nil, ErrDoctorNotFound
	}
	doctor := doctorFromData(docs[0].Ref.ID, docs[0].Data())
	return &doctor, nil
}

func (r *firestoreDoctorRepo) GetByID(ctx context.Context, id string) (*models.Doctor, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	snap, err := r.coll().Doc(id).Get(ctx)
	if database.IsFirestoreNotFound(err) {
		return nil, ErrDoctorNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get doctor %s: %w", id, err)
	}
	doctor := doctorFromData(snap.Ref.ID, snap.Data())
	return &doctor, nil
}

func (r *firestoreDoctorRepo) GetAll(ctx context.Context) ([]models.Doctor, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	docs, err := r.coll().Documents(ctx).GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to list doctors: %w", err)
	}
	doctors := make([]models.Doctor, 0, len(docs))
	for _, d := range docs {
		doctors = append(doctors, doctorFromData(d.Ref.ID, d.Data()))
	}
	return doctors, nil
}

func (r *firestoreDoctorRepo) Count(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	docs, err := r.coll().Select().Documents(ctx).GetAll()
	if err != nil {
		return 0, fmt.Errorf("failed to count doctors: %w", err)
	}
	return int64(len(docs)), nil
}

func (r *firestoreDoctorRepo) UpdateSchedule(ctx context.Context, id string, doc models.ScheduleDocument) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := r.coll().Doc(id).Update(ctx, scheduleUpdates(doc))
	if database.IsFirestoreNotFound(err) {
		return ErrDoctorNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to update schedule for doctor %s: %w", id, err)
	}
	return nil
}
