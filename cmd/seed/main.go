// Command seed fills the Mongo store with a small demo clinic: doctors with
// weekly schedules and holidays, patients, and a spread of appointments.
// Run it with DOCTOR_USER_ID=doctor-user-1 so the server's static identity
// points at a seeded doctor.
package main

import (
	"context"
	"fmt"
	"log"
	"math/rand/v2"
	"time"

	"clinicdesk/config"
	"clinicdesk/database"
	appointmentRepo "clinicdesk/database/repository/appointment"
	"clinicdesk/models"
	"clinicdesk/services/availability"

	"go.mongodb.org/mongo-driver/bson"
)

var specializations = []string{"Cardiology", "Dermatology", "Pediatrics", ""}

var statuses = []string{
	models.StatusPending, models.StatusConfirmed, models.StatusCompleted,
	models.StatusCheckedOut, models.StatusCancelled, models.StatusRescheduled,
}

func main() {
	config.LoadConfig()
	database.InitDB()
	db := database.Mongo()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	for _, name := range []string{database.DoctorsCollection, database.UsersCollection, database.AppointmentsCollection} {
		if _, err := db.Collection(name).DeleteMany(ctx, bson.M{}); err != nil {
			log.Fatalf("Failed to clear %s collection: %v", name, err)
		}
	}

	loc := config.AppConfig.Location()
	store := availability.NewRepositoryStore(nil, loc)
	today := time.Now().In(loc)

	var doctors, users []interface{}
	var doctorModels []models.Doctor
	for i := 1; i <= 6; i++ {
		uid := fmt.Sprintf("doctor-user-%d", i)
		profile := &models.AvailabilityProfile{Schedule: models.NewWeeklySchedule()}
		// Every other doctor works weekdays 09:00-17:00; the rest have no schedule yet.
		if i%2 == 1 {
			for _, d := range models.Days[:5] {
				profile.Schedule[d] = models.DaySchedule{
					Enabled: true,
					Hours:   &models.TimeRange{Start: 9 * 60, End: 17 * 60},
				}
			}
		}
		if i%3 == 0 {
			profile.Holidays = []models.Holiday{{
				ID:     fmt.Sprintf("holiday-seed-%d", i),
				Date:   today.AddDate(0, 0, 7+i),
				Reason: "Annual leave",
			}}
		}
		doc := store.ScheduleDocument(profile)

		doctor := models.Doctor{
			ID:             fmt.Sprintf("doctor-%d", i),
			UserID:         uid,
			Specialization: specializations[i%len(specializations)],
			Email:          fmt.Sprintf("doctor%d@example.com", i),
			Phone:          fmt.Sprintf("900000%04d", i),
			TimeSlots:      doc.TimeSlots,
			EnabledDays:    doc.EnabledDays,
			Holidays:       doc.Holidays,
			CreatedAt:      today,
		}
		// Half the doctors keep their name only on the user record.
		if i <= 3 {
			doctor.Name = fmt.Sprintf("Dr. Seed %d", i)
		}
		doctors = append(doctors, doctor)
		doctorModels = append(doctorModels, doctor)
		users = append(users, models.User{
			UID: uid, DisplayName: fmt.Sprintf("Dr. Seed %d", i), Role: models.RoleDoctor, IsDoctor: true, CreatedAt: today,
		})
	}

	var patients []models.User
	for i := 1; i <= 20; i++ {
		p := models.User{
			UID:         fmt.Sprintf("patient-%d", i),
			DisplayName: fmt.Sprintf("Patient %d", i),
			Email:       fmt.Sprintf("patient%d@example.com", i),
			PhoneNumber: fmt.Sprintf("700000%04d", i),
			Role:        models.RolePatient,
			CreatedAt:   today,
		}
		patients = append(patients, p)
		users = append(users, p)
	}

	if _, err := db.Collection(database.DoctorsCollection).InsertMany(ctx, doctors); err != nil {
		log.Fatalf("Failed to insert doctors: %v", err)
	}
	if _, err := db.Collection(database.UsersCollection).InsertMany(ctx, users); err != nil {
		log.Fatalf("Failed to insert users: %v", err)
	}

	appts := appointmentRepo.NewMongoAppointmentRepoWithCollection(db.Collection(database.AppointmentsCollection))
	for i := 0; i < 60; i++ {
		doctor := doctorModels[rand.IntN(len(doctorModels))]
		patient := patients[rand.IntN(len(patients))]
		date := today.AddDate(0, 0, rand.IntN(28)-14).Truncate(time.Hour)
		status := statuses[rand.IntN(len(statuses))]

		appt := &models.Appointment{
			ID:            fmt.Sprintf("APT%d%d", date.UnixMilli(), i),
			DoctorID:      doctor.ID,
			DoctorUserID:  doctor.UserID,
			DoctorName:    doctor.Name,
			PatientUserID: patient.UID,
			PatientName:   patient.DisplayName,
			PatientEmail:  patient.Email,
			PatientPhone:  patient.PhoneNumber,
			Date:          date,
			Time:          date.Format("3:04 PM"),
			Type:          models.TypePhysical,
			Status:        status,
			Price:         float64(20 + rand.IntN(8)*10),
			CreatedAt:     date.AddDate(0, 0, -3),
		}
		if i%4 == 0 {
			appt.Type = models.TypeVideo
			appt.IsVideoCall = true
		}
		if status == models.StatusCompleted && i%2 == 0 {
			appt.PaymentStatus = models.PaymentPaid
			appt.Review = map[string]interface{}{
				"rating":      int64(3 + rand.IntN(3)),
				"description": "Seeded review",
				"reviewedBy":  patient.DisplayName,
				"createdAt":   date.Add(2 * time.Hour),
			}
		}
		if status == models.StatusCancelled {
			appt.CancelReason = "Patient request"
		}
		if err := appts.Create(ctx, appt); err != nil {
			log.Fatalf("Failed to insert appointment %s: %v", appt.ID, err)
		}
	}

	log.Printf("Seeded %d doctors, %d patients and 60 appointments", len(doctors), len(patients))
	database.Close(ctx)
}
