package models

import "time"

// Review is a patient review extracted from an appointment document.
type Review struct {
	AppointmentID   string    `json:"appointmentId"`
	Rating          float64   `json:"rating"`
	Comment         string    `json:"comment"`
	ReviewedBy      string    `json:"reviewedBy,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
	AppointmentDate time.Time `json:"appointmentDate"`
	PatientUserID   string    `json:"patientUserId,omitempty"`
	PatientName     string    `json:"patientName,omitempty"`
	PatientEmail    string    `json:"patientEmail,omitempty"`
	PatientPhone    string    `json:"patientPhone,omitempty"`
}

// ReviewSummary aggregates a doctor's reviews.
type ReviewSummary struct {
	Count     int         `json:"count"`
	Average   float64     `json:"average"`   // rounded to one decimal
	Histogram map[int]int `json:"histogram"` // stars (1-5) -> count
}
