package models

import "time"

// DoctorStats backs the doctor dashboard header cards.
type DoctorStats struct {
	TotalAppointments int     `json:"totalAppointments"`
	TotalPatients     int     `json:"totalPatients"`
	Today             int     `json:"today"`
	Upcoming          int     `json:"upcoming"`
	Completed         int     `json:"completed"`
	Cancelled         int     `json:"cancelled"`
	AppointmentsTrend float64 `json:"appointmentsTrend"`
}

// AdminStats backs the admin dashboard header cards.
type AdminStats struct {
	Doctors           int     `json:"doctors"`
	Patients          int     `json:"patients"`
	Appointments      int     `json:"appointments"`
	Revenue           float64 `json:"revenue"`
	AppointmentsTrend float64 `json:"appointmentsTrend"`
	RevenueTrend      float64 `json:"revenueTrend"`
}

type AppointmentStats struct {
	All         int `json:"all"`
	Cancelled   int `json:"cancelled"`
	Rescheduled int `json:"rescheduled"`
	Completed   int `json:"completed"`
}

type DoctorRanking struct {
	DoctorID       string `json:"doctorId"`
	DoctorUserID   string `json:"doctorUserId"`
	Name           string `json:"name"`
	Specialization string `json:"specialization"`
	PhotoURL       string `json:"photoUrl,omitempty"`
	Bookings       int    `json:"bookings"`
}

type DepartmentStats struct {
	Name         string  `json:"name"`
	Appointments int     `json:"appointments"`
	Revenue      float64 `json:"revenue"`
}

type ScheduleStats struct {
	Total       int `json:"total"`
	Available   int `json:"available"`
	Unavailable int `json:"unavailable"`
	OnLeave     int `json:"onLeave"`
}

type AvailableDoctor struct {
	DoctorID       string   `json:"doctorId"`
	DoctorUserID   string   `json:"doctorUserId"`
	Name           string   `json:"name"`
	Specialization string   `json:"specialization"`
	PhotoURL       string   `json:"photoUrl,omitempty"`
	EnabledDays    []string `json:"enabledDays"`
}

// TopPatient ranks patients by what they have paid across all appointments.
type TopPatient struct {
	PatientID    string  `json:"patientId"`
	Name         string  `json:"name"`
	PhotoURL     string  `json:"photoUrl,omitempty"`
	TotalPaid    float64 `json:"totalPaid"`
	Appointments int     `json:"appointmentsCount"`
}

// Transaction is a settled appointment shown as an invoice row.
type Transaction struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	InvoiceID string    `json:"invoiceId"`
	Amount    float64   `json:"amount"`
	Date      time.Time `json:"date"`
}
