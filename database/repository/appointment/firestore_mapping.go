package appointmentRepo

import (
	"clinicdesk/database"
	"clinicdesk/models"

	"cloud.google.com/go/firestore"
)

func appointmentFromData(id string, data map[string]interface{}) models.Appointment {
	appt := models.Appointment{
		ID:            database.AsString(data, "AppointmentId"),
		DoctorID:      database.RefID(data["doctorId"]),
		DoctorUserID:  database.RefID(data["doctorUserId"]),
		DoctorName:    database.AsString(data, "DoctorsName"),
		PatientUserID: database.RefID(data["UserPatientID"]),
		PatientName:   database.AsString(data, "patientsName"),
		PatientEmail:  database.AsString(data, "patientsEmail"),
		PatientPhone:  database.AsString(data, "patientsNumber"),
		Time:          database.AsString(data, "appointmentTime"),
		Type:          database.AsString(data, "appointmentType"),
		IsVideoCall:   database.AsBool(data["isVideoCall"]),
		VideoLink:     database.AsString(data, "video_link"),
		Complaint:     database.AsString(data, "Complain"),
		Description:   database.AsString(data, "description"),
		Diagnosis:     database.AsString(data, "diagnosis"),
		Urgency:       database.AsString(data, "urgency"),
		File:          database.AsString(data, "appointmentfile"),
		Status:        database.AsString(data, "status"),
		CancelReason:  database.AsString(data, "cancel_reason"),
		PaymentOption: database.AsString(data, "payment_option"),
		PaymentStatus: database.AsString(data, "payment_status"),
		Review:        database.AsMap(data["review"]),
	}
	if appt.ID == "" {
		appt.ID = id
	}
	if d, ok := database.AsTime(data["appointmentDate"]); ok {
		appt.Date = d
	}
	if c, ok := database.AsTime(data["created"]); ok {
		appt.CreatedAt = c
	}
	if p, ok := database.AsFloat(data["price"]); ok {
		appt.Price = p
	}
	return appt
}

func appointmentToData(client *firestore.Client, appt *models.Appointment) map[string]interface{} {
	users := client.Collection(database.UsersCollection)
	data := map[string]interface{}{
		"AppointmentId":   appt.ID,
		"DoctorsName":     appt.DoctorName,
		"patientsName":    appt.PatientName,
		"patientsEmail":   appt.PatientEmail,
		"patientsNumber":  appt.PatientPhone,
		"appointmentDate": appt.Date,
		"appointmentTime": appt.Time,
		"appointmentType": appt.Type,
		"isVideoCall":     appt.IsVideoCall,
		"video_link":      appt.VideoLink,
		"Complain":        appt.Complaint,
		"description":     appt.Description,
		"diagnosis":       appt.Diagnosis,
		"urgency":         appt.Urgency,
		"appointmentfile": appt.File,
		"status":          appt.Status,
		"cancel_reason":   appt.CancelReason,
		"payment_option":  appt.PaymentOption,
		"payment_status":  appt.PaymentStatus,
		"price":           appt.Price,
		"created":         appt.CreatedAt,
	}
	if appt.DoctorUserID != "" {
		data["doctorUserId"] = users.Doc(appt.DoctorUserID)
	}
	if appt.PatientUserID != "" {
		data["UserPatientID"] = users.Doc(appt.PatientUserID)
	}
	if appt.DoctorID != "" {
		data["doctorId"] = client.Collection(database.DoctorsCollection).Doc(appt.DoctorID)
	}
	if appt.Review != nil {
		data["review"] = appt.Review
	}
	return data
}
