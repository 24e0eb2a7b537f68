package appointmentRepo

import (
	"context"
	"fmt"
	"sort"
	"time"

	"clinicdesk/database"
	"clinicdesk/models"

	"cloud.google.com/go/firestore"
)

// firestoreAppointmentRepo stores appointments keyed by AppointmentId, with
// doctor and patient fields held as document references.
type firestoreAppointmentRepo struct {
	client *firestore.Client
}

func NewFirestoreAppointmentRepo() AppointmentRepository {
	return NewFirestoreAppointmentRepoWithClient(database.FirestoreClient)
}

func NewFirestoreAppointmentRepoWithClient(client *firestore.Client) AppointmentRepository {
	return &firestoreAppointmentRepo{client: client}
}

func (r *firestoreAppointmentRepo) coll() *firestore.CollectionRef {
	return r.client.Collection(database.AppointmentsCollection)
}

func (r *firestoreAppointmentRepo) GetByID(ctx context.Context, id string) (*models.Appointment, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	snap, err := r.coll().Doc(id).Get(ctx)
	if database.IsFirestoreNotFound(err) {
		return nil, ErrAppointmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get appointment %s: %w", id, err)
	}
	appt := appointmentFromData(snap.Ref.ID, snap.Data())
	return &appt, nil
}

func (r *firestoreAppointmentRepo) query(ctx context.Context, q firestore.Query) ([]models.Appointment, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	docs, err := q.Documents(ctx).GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to query appointments: %w", err)
	}
	appts := make([]models.Appointment, 0, len(docs))
	for _, d := range docs {
		appts = append(appts, appointmentFromData(d.Ref.ID, d.Data()))
	}
	sort.SliceStable(appts, func(i, j int) bool { return appts[i].Date.After(appts[j].Date) })
	return appts, nil
}

func (r *firestoreAppointmentRepo) GetByDoctorUserID(ctx context.Context, doctorUserID string) ([]models.Appointment, error) {
	doctorRef := r.client.Collection(database.UsersCollection).Doc(doctorUserID)
	return r.query(ctx, r.coll().Where("doctorUserId", "==", doctorRef))
}

func (r *firestoreAppointmentRepo) GetAll(ctx context.Context) ([]models.Appointment, error) {
	return r.query(ctx, r.coll().Query)
}

func (r *firestoreAppointmentRepo) Create(ctx context.Context, appt *models.Appointment) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := r.coll().Doc(appt.ID).Create(ctx, appointmentToData(r.client, appt)); err != nil {
		return fmt.Errorf("failed to create appointment: %w", err)
	}
	return nil
}

func (r *firestoreAppointmentRepo) UpdateFields(ctx context.Context, id string, fields map[string]interface{}) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	updates := make([]firestore.Update, 0, len(fields))
	for path, value := range fields {
		updates = append(updates, firestore.Update{Path: path, Value: value})
	}
	_, err := r.coll().Doc(id).Update(ctx, updates)
	if database.IsFirestoreNotFound(err) {
		return ErrAppointmentNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to update appointment %s: %w", id, err)
	}
	return nil
}

func (r *firestoreAppointmentRepo) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := r.coll().Doc(id).Delete(ctx, firestore.Exists)
	if database.IsFirestoreNotFound(err) {
		return ErrAppointmentNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to delete appointment %s: %w", id, err)
	}
	return nil
}
