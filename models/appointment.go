package models

import "time"

const (
	StatusPending     = "pending"
	StatusConfirmed   = "confirmed"
	StatusCheckedIn   = "checked-in"
	StatusCheckedOut  = "checked-out"
	StatusCompleted   = "completed"
	StatusCancelled   = "cancelled"
	StatusRescheduled = "rescheduled"

	TypePhysical = "physical"
	TypeVideo    = "video"

	PaymentPaid = "paid"
)

// AppointmentStatuses is the closed set of accepted status values.
var AppointmentStatuses = []string{
	StatusPending, StatusConfirmed, StatusCheckedIn, StatusCheckedOut,
	StatusCompleted, StatusCancelled, StatusRescheduled,
}

// IsValidStatus reports whether s is a known appointment status.
func IsValidStatus(s string) bool {
	for _, v := range AppointmentStatuses {
		if v == s {
			return true
		}
	}
	return false
}

// Appointment mirrors the clinic's Appointment document. Field names follow the stored shape.
type Appointment struct {
	ID            string                 `bson:"AppointmentId" json:"id"`
	DoctorID      string                 `bson:"doctorId" json:"doctorId"`         // doctor document id
	DoctorUserID  string                 `bson:"doctorUserId" json:"doctorUserId"` // doctor's user id
	DoctorName    string                 `bson:"DoctorsName" json:"doctorName"`
	PatientUserID string                 `bson:"UserPatientID" json:"patientUserId"`
	PatientName   string                 `bson:"patientsName" json:"patientName"`
	PatientEmail  string                 `bson:"patientsEmail" json:"patientEmail"`
	PatientPhone  string                 `bson:"patientsNumber" json:"patientPhone"`
	Date          time.Time              `bson:"appointmentDate" json:"appointmentDate"`
	Time          string                 `bson:"appointmentTime" json:"appointmentTime"` // display time, e.g. "10:30 AM"
	Type          string                 `bson:"appointmentType" json:"appointmentType"` // physical | video
	IsVideoCall   bool                   `bson:"isVideoCall" json:"isVideoCall"`
	VideoLink     string                 `bson:"video_link,omitempty" json:"videoLink,omitempty"`
	Complaint     string                 `bson:"Complain,omitempty" json:"complaint,omitempty"`
	Description   string                 `bson:"description,omitempty" json:"description,omitempty"`
	Diagnosis     string                 `bson:"diagnosis,omitempty" json:"diagnosis,omitempty"`
	Urgency       string                 `bson:"urgency,omitempty" json:"urgency,omitempty"`
	File          string                 `bson:"appointmentfile,omitempty" json:"file,omitempty"`
	Status        string                 `bson:"status" json:"status"`
	CancelReason  string                 `bson:"cancel_reason,omitempty" json:"cancelReason,omitempty"`
	PaymentOption string                 `bson:"payment_option,omitempty" json:"paymentOption,omitempty"`
	PaymentStatus string                 `bson:"payment_status,omitempty" json:"paymentStatus,omitempty"`
	Price         float64                `bson:"price" json:"price"`
	Review        map[string]interface{} `bson:"review,omitempty" json:"review,omitempty"` // loosely shaped, see review service
	CreatedAt     time.Time              `bson:"created" json:"createdAt"`
}

// IsRevenue reports whether the appointment counts towards clinic revenue.
func (a Appointment) IsRevenue() bool {
	if a.PaymentStatus == PaymentPaid || a.Status == StatusCompleted || a.Status == StatusCheckedOut {
		return true
	}
	return a.Price > 0 && (a.Status == StatusConfirmed || a.Status == StatusPending)
}

// IsCompleted treats checked-out visits as completed.
func (a Appointment) IsCompleted() bool {
	return a.Status == StatusCompleted || a.Status == StatusCheckedOut
}

// AppointmentWithPatient pairs an appointment with its resolved patient record.
type AppointmentWithPatient struct {
	Appointment
	Patient *User `json:"patient,omitempty"`
}
