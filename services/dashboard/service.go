package dashboard

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	appointmentRepo "clinicdesk/database/repository/appointment"
	doctorRepo "clinicdesk/database/repository/doctor"
	userRepo "clinicdesk/database/repository/user"
	"clinicdesk/metrics"
	"clinicdesk/models"
	"clinicdesk/utils"

	"go.uber.org/zap"
)

const (
	DefaultPopularLimit     = 3
	DefaultDepartmentLimit  = 3
	DefaultAvailableLimit   = 4
	DefaultPatientLimit     = 5
	DefaultTransactionLimit = 5

	treatmentLimit        = 10
	trendWindow           = 7 * 24 * time.Hour
	unknownDoctorName     = "Unknown Doctor"
	unknownPatientName    = "Unknown Patient"
	unknownSpecialization = "Unknown"
)

type DashboardService interface {
	DoctorStats(ctx context.Context, doctorUserID string) (*models.DoctorStats, error)
	AdminStats(ctx context.Context) (*models.AdminStats, error)
	AppointmentStats(ctx context.Context) (*models.AppointmentStats, error)
	PopularDoctors(ctx context.Context, limit int) ([]models.DoctorRanking, error)
	TopDepartments(ctx context.Context, limit int) ([]models.DepartmentStats, error)
	DoctorScheduleStats(ctx context.Context) (*models.ScheduleStats, error)
	AvailableDoctors(ctx context.Context, limit int) ([]models.AvailableDoctor, error)
	TopPatients(ctx context.Context, limit int) ([]models.TopPatient, error)
	RecentTransactions(ctx context.Context, limit int) ([]models.Transaction, error)
	IncomeByTreatment(ctx context.Context) ([]models.DepartmentStats, error)
}

// DefaultDashboardService computes statistics from the document store and
// caches them in redis when Cache is set. Cache failures never fail a request.
type DefaultDashboardService struct {
	Doctors      doctorRepo.DoctorRepository
	Appointments appointmentRepo.AppointmentRepository
	Users        userRepo.UserRepository
	Cache        *utils.JSONCache
	Metrics      *metrics.CacheMetrics
	Location     *time.Location
	Logger       *zap.Logger
	Now          func() time.Time
}

// cached serves key from the cache, computing and storing it on a miss.
func cached[T any](ctx context.Context, s *DefaultDashboardService, key string, compute func(context.Context) (T, error)) (T, error) {
	if s.Cache != nil {
		var hit T
		err := s.Cache.Get(ctx, key, &hit)
		switch {
		case err == nil:
			s.Metrics.ObserveLookup("hit")
			return hit, nil
		case errors.Is(err, utils.ErrCacheMiss):
			s.Metrics.ObserveLookup("miss")
		default:
			s.Metrics.ObserveLookup("error")
			s.logger().Warn("Dashboard cache read failed", zap.String("key", key), zap.Error(err))
		}
	}

	value, err := compute(ctx)
	if err != nil {
		return value, err
	}
	if s.Cache != nil {
		if err := s.Cache.Set(ctx, key, value); err != nil {
			s.logger().Warn("Dashboard cache write failed", zap.String("key", key), zap.Error(err))
		}
	}
	return value, nil
}

// Invalidate drops every cached dashboard entry.
func (s *DefaultDashboardService) Invalidate(ctx context.Context) error {
	if s.Cache == nil {
		return nil
	}
	n, err := s.Cache.InvalidateAll(ctx)
	if err != nil {
		return err
	}
	s.Metrics.ObserveInvalidation()
	s.logger().Debug("Dashboard cache invalidated", zap.Int("keys", n))
	return nil
}

func (s *DefaultDashboardService) DoctorStats(ctx context.Context, doctorUserID string) (*models.DoctorStats, error) {
	return cached(ctx, s, "doctor:"+doctorUserID, func(ctx context.Context) (*models.DoctorStats, error) {
		appts, err := s.Appointments.GetByDoctorUserID(ctx, doctorUserID)
		if err != nil {
			return nil, err
		}

		now := s.now()
		loc := s.loc()
		y, m, d := now.In(loc).Date()
		stats := &models.DoctorStats{TotalAppointments: len(appts)}
		patients := map[string]struct{}{}
		for _, a := range appts {
			if id := patientKey(a); id != "" {
				patients[id] = struct{}{}
			}
			ay, am, ad := a.Date.In(loc).Date()
			if ay == y && am == m && ad == d {
				stats.Today++
			}
			if a.Date.After(now) && (a.Status == models.StatusPending || a.Status == models.StatusConfirmed) {
				stats.Upcoming++
			}
			switch {
			case a.IsCompleted():
				stats.Completed++
			case a.Status == models.StatusCancelled:
				stats.Cancelled++
			}
		}
		stats.TotalPatients = len(patients)
		last, prev := splitWindows(appts, now)
		stats.AppointmentsTrend = trend(float64(len(last)), float64(len(prev)))
		return stats, nil
	})
}

func patientKey(a models.Appointment) string {
	if a.PatientUserID != "" {
		return a.PatientUserID
	}
	return a.PatientEmail
}

func (s *DefaultDashboardService) AdminStats(ctx context.Context) (*models.AdminStats, error) {
	return cached(ctx, s, "admin", func(ctx context.Context) (*models.AdminStats, error) {
		doctors, err := s.Doctors.Count(ctx)
		if err != nil {
			return nil, err
		}
		users, err := s.Users.GetAll(ctx)
		if err != nil {
			return nil, err
		}
		appts, err := s.Appointments.GetAll(ctx)
		if err != nil {
			return nil, err
		}

		stats := &models.AdminStats{Doctors: int(doctors), Appointments: len(appts)}
		for _, u := range users {
			if u.IsPatient() {
				stats.Patients++
			}
		}
		for _, a := range appts {
			if a.IsRevenue() {
				stats.Revenue += a.Price
			}
		}

		last, prev := splitWindows(appts, s.now())
		stats.AppointmentsTrend = trend(float64(len(last)), float64(len(prev)))
		stats.RevenueTrend = trend(settledRevenue(last), settledRevenue(prev))
		return stats, nil
	})
}

// settledRevenue only counts paid or completed visits.
func settledRevenue(appts []models.Appointment) float64 {
	var total float64
	for _, a := range appts {
		if a.PaymentStatus == models.PaymentPaid || a.Status == models.StatusCompleted {
			total += a.Price
		}
	}
	return total
}

// splitWindows returns appointments dated in the last 7 days and in the 7 days before that.
func splitWindows(appts []models.Appointment, now time.Time) (last, prev []models.Appointment) {
	lastStart := now.Add(-trendWindow)
	prevStart := now.Add(-2 * trendWindow)
	for _, a := range appts {
		switch {
		case !a.Date.Before(lastStart):
			last = append(last, a)
		case !a.Date.Before(prevStart):
			prev = append(prev, a)
		}
	}
	return last, prev
}

// trend is the rounded percentage change; 100 when growing from zero.
func trend(current, previous float64) float64 {
	if previous > 0 {
		return math.Round((current - previous) / previous * 100)
	}
	if current > 0 {
		return 100
	}
	return 0
}

func (s *DefaultDashboardService) AppointmentStats(ctx context.Context) (*models.AppointmentStats, error) {
	return cached(ctx, s, "appointments", func(ctx context.Context) (*models.AppointmentStats, error) {
		appts, err := s.Appointments.GetAll(ctx)
		if err != nil {
			return nil, err
		}
		stats := &models.AppointmentStats{All: len(appts)}
		for _, a := range appts {
			switch {
			case a.Status == models.StatusCancelled:
				stats.Cancelled++
			case a.Status == models.StatusRescheduled:
				stats.Rescheduled++
			case a.IsCompleted():
				stats.Completed++
			}
		}
		return stats, nil
	})
}

func (s *DefaultDashboardService) PopularDoctors(ctx context.Context, limit int) ([]models.DoctorRanking, error) {
	if limit <= 0 {
		limit = DefaultPopularLimit
	}
	return cached(ctx, s, fmt.Sprintf("popular:%d", limit), func(ctx context.Context) ([]models.DoctorRanking, error) {
		doctors, err := s.Doctors.GetAll(ctx)
		if err != nil {
			return nil, err
		}
		appts, err := s.Appointments.GetAll(ctx)
		if err != nil {
			return nil, err
		}

		bookings := map[string]int{}
		bookedNames := map[string]string{}
		for _, a := range appts {
			if a.DoctorID == "" {
				continue
			}
			bookings[a.DoctorID]++
			if bookedNames[a.DoctorID] == "" {
				bookedNames[a.DoctorID] = a.DoctorName
			}
		}

		var booked []models.Doctor
		for _, d := range doctors {
			if bookings[d.ID] > 0 {
				booked = append(booked, d)
			}
		}
		users := s.doctorUsers(ctx, booked)

		rankings := make([]models.DoctorRanking, 0, len(booked))
		for _, d := range booked {
			name, photo := resolveName(d, users)
			if name == "" {
				name = bookedNames[d.ID]
			}
			if name == "" {
				name = unknownDoctorName
			}
			rankings = append(rankings, models.DoctorRanking{
				DoctorID:       d.ID,
				DoctorUserID:   d.UserID,
				Name:           name,
				Specialization: d.SpecializationOrDefault(),
				PhotoURL:       photo,
				Bookings:       bookings[d.ID],
			})
		}
		sort.SliceStable(rankings, func(i, j int) bool { return rankings[i].Bookings > rankings[j].Bookings })
		if len(rankings) > limit {
			rankings = rankings[:limit]
		}
		return rankings, nil
	})
}

func (s *DefaultDashboardService) TopDepartments(ctx context.Context, limit int) ([]models.DepartmentStats, error) {
	if limit <= 0 {
		limit = DefaultDepartmentLimit
	}
	return cached(ctx, s, fmt.Sprintf("departments:%d", limit), func(ctx context.Context) ([]models.DepartmentStats, error) {
		doctors, err := s.Doctors.GetAll(ctx)
		if err != nil {
			return nil, err
		}
		appts, err := s.Appointments.GetAll(ctx)
		if err != nil {
			return nil, err
		}

		deptOf := make(map[string]string, len(doctors))
		stats := map[string]*models.DepartmentStats{}
		var order []string
		for _, d := range doctors {
			dept := d.SpecializationOrDefault()
			deptOf[d.ID] = dept
			if _, ok := stats[dept]; !ok {
				stats[dept] = &models.DepartmentStats{Name: dept}
				order = append(order, dept)
			}
		}
		for _, a := range appts {
			dept, ok := deptOf[a.DoctorID]
			if !ok {
				continue
			}
			st := stats[dept]
			st.Appointments++
			if isSettled(a) {
				st.Revenue += a.Price
			}
		}

		out := make([]models.DepartmentStats, 0, len(order))
		for _, name := range order {
			out = append(out, *stats[name])
		}
		sort.SliceStable(out, func(i, j int) bool { return out[i].Appointments > out[j].Appointments })
		if len(out) > limit {
			out = out[:limit]
		}
		return out, nil
	})
}

// DoctorScheduleStats counts a doctor as on leave when any holiday falls today or later.
func (s *DefaultDashboardService) DoctorScheduleStats(ctx context.Context) (*models.ScheduleStats, error) {
	return cached(ctx, s, "schedule", func(ctx context.Context) (*models.ScheduleStats, error) {
		doctors, err := s.Doctors.GetAll(ctx)
		if err != nil {
			return nil, err
		}

		y, m, d := s.now().In(s.loc()).Date()
		today := time.Date(y, m, d, 0, 0, 0, 0, s.loc())
		stats := &models.ScheduleStats{Total: len(doctors)}
		for _, doc := range doctors {
			if len(enabledDays(doc)) > 0 {
				stats.Available++
			} else {
				stats.Unavailable++
			}
			for _, h := range doc.Holidays {
				if !h.Date.Before(today) {
					stats.OnLeave++
					break
				}
			}
		}
		return stats, nil
	})
}

func (s *DefaultDashboardService) AvailableDoctors(ctx context.Context, limit int) ([]models.AvailableDoctor, error) {
	if limit <= 0 {
		limit = DefaultAvailableLimit
	}
	return cached(ctx, s, fmt.Sprintf("available:%d", limit), func(ctx context.Context) ([]models.AvailableDoctor, error) {
		doctors, err := s.Doctors.GetAll(ctx)
		if err != nil {
			return nil, err
		}

		var picked []models.Doctor
		for _, d := range doctors {
			if len(enabledDays(d)) > 0 {
				picked = append(picked, d)
				if len(picked) == limit {
					break
				}
			}
		}
		users := s.doctorUsers(ctx, picked)

		out := make([]models.AvailableDoctor, 0, len(picked))
		for _, d := range picked {
			name, photo := resolveName(d, users)
			if name == "" {
				specialty := d.Specialization
				if specialty == "" {
					specialty = unknownSpecialization
				}
				name = "Dr. " + specialty
			}
			out = append(out, models.AvailableDoctor{
				DoctorID:       d.ID,
				DoctorUserID:   d.UserID,
				Name:           name,
				Specialization: d.SpecializationOrDefault(),
				PhotoURL:       photo,
				EnabledDays:    enabledDays(d),
			})
		}
		return out, nil
	})
}

// TopPatients ranks patients by settled spend. Appointments without a patient
// reference are skipped.
func (s *DefaultDashboardService) TopPatients(ctx context.Context, limit int) ([]models.TopPatient, error) {
	if limit <= 0 {
		limit = DefaultPatientLimit
	}
	return cached(ctx, s, fmt.Sprintf("patients:%d", limit), func(ctx context.Context) ([]models.TopPatient, error) {
		appts, err := s.Appointments.GetAll(ctx)
		if err != nil {
			return nil, err
		}

		stats := map[string]*models.TopPatient{}
		inlineNames := map[string]string{}
		var order []string
		for _, a := range appts {
			if a.PatientUserID == "" {
				continue
			}
			st, ok := stats[a.PatientUserID]
			if !ok {
				st = &models.TopPatient{PatientID: a.PatientUserID}
				stats[a.PatientUserID] = st
				order = append(order, a.PatientUserID)
			}
			st.Appointments++
			if isSettled(a) {
				st.TotalPaid += a.Price
			}
			if inlineNames[a.PatientUserID] == "" {
				inlineNames[a.PatientUserID] = a.PatientName
			}
		}
		if len(order) == 0 {
			return []models.TopPatient{}, nil
		}

		users, err := s.Users.GetByUIDs(ctx, order)
		if err != nil {
			s.logger().Warn("Failed to load patients", zap.Error(err))
			users = nil
		}

		out := make([]models.TopPatient, 0, len(order))
		for _, id := range order {
			st := stats[id]
			if u, ok := users[id]; ok {
				st.Name = u.BestName()
				st.PhotoURL = u.PhotoURL
			}
			if st.Name == "" {
				st.Name = inlineNames[id]
			}
			if st.Name == "" {
				st.Name = unknownPatientName
			}
			out = append(out, *st)
		}
		sort.SliceStable(out, func(i, j int) bool { return out[i].TotalPaid > out[j].TotalPaid })
		if len(out) > limit {
			out = out[:limit]
		}
		return out, nil
	})
}

// RecentTransactions lists settled appointments as invoices, newest first.
func (s *DefaultDashboardService) RecentTransactions(ctx context.Context, limit int) ([]models.Transaction, error) {
	if limit <= 0 {
		limit = DefaultTransactionLimit
	}
	return cached(ctx, s, fmt.Sprintf("transactions:%d", limit), func(ctx context.Context) ([]models.Transaction, error) {
		appts, err := s.Appointments.GetAll(ctx)
		if err != nil {
			return nil, err
		}

		out := []models.Transaction{}
		for _, a := range appts {
			if !isSettled(a) {
				continue
			}
			date := a.Date
			if date.IsZero() {
				date = a.CreatedAt
			}
			out = append(out, models.Transaction{
				ID:        a.ID,
				Type:      transactionType(a),
				InvoiceID: invoiceID(a.ID),
				Amount:    a.Price,
				Date:      date,
			})
		}
		sort.SliceStable(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
		if len(out) > limit {
			out = out[:limit]
		}
		return out, nil
	})
}

// IncomeByTreatment is the department ranking widened to the top ten.
func (s *DefaultDashboardService) IncomeByTreatment(ctx context.Context) ([]models.DepartmentStats, error) {
	return s.TopDepartments(ctx, treatmentLimit)
}

func isSettled(a models.Appointment) bool {
	return a.PaymentStatus == models.PaymentPaid || a.IsCompleted()
}

func transactionType(a models.Appointment) string {
	if a.Type == models.TypeVideo || a.IsVideoCall {
		return "Online Consultation"
	}
	return "General Check-up"
}

// invoiceID renders "#INV" plus the last four characters of the appointment id.
func invoiceID(appointmentID string) string {
	suffix := appointmentID
	if len(suffix) > 4 {
		suffix = suffix[len(suffix)-4:]
	}
	if suffix == "" {
		suffix = "0000"
	}
	return "#INV" + suffix
}

func enabledDays(d models.Doctor) []string {
	var out []string
	for _, k := range models.Days {
		if d.EnabledDays[string(k)] {
			out = append(out, string(k))
		}
	}
	return out
}

// doctorUsers loads the owning user records of doctors without a stored name.
func (s *DefaultDashboardService) doctorUsers(ctx context.Context, doctors []models.Doctor) map[string]models.User {
	var uids []string
	for _, d := range doctors {
		if d.Name == "" && d.UserID != "" {
			uids = append(uids, d.UserID)
		}
	}
	if len(uids) == 0 {
		return nil
	}
	users, err := s.Users.GetByUIDs(ctx, uids)
	if err != nil {
		s.logger().Warn("Failed to load doctor users", zap.Error(err))
		return nil
	}
	return users
}

func resolveName(d models.Doctor, users map[string]models.User) (name, photo string) {
	name, photo = d.Name, d.PhotoURL
	if u, ok := users[d.UserID]; ok {
		if name == "" {
			name = u.BestName()
		}
		if photo == "" {
			photo = u.PhotoURL
		}
	}
	return name, photo
}

func (s *DefaultDashboardService) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}

func (s *DefaultDashboardService) loc() *time.Location {
	if s.Location == nil {
		return time.UTC
	}
	return s.Location
}

func (s *DefaultDashboardService) logger() *zap.Logger {
	if s.Logger == nil {
		return zap.NewNop()
	}
	return s.Logger
}
