package review

import (
	"context"
	"math"
	"sort"

	"clinicdesk/database"
	appointmentRepo "clinicdesk/database/repository/appointment"
	userRepo "clinicdesk/database/repository/user"
	"clinicdesk/models"

	"go.uber.org/zap"
)

type ReviewService interface {
	ListDoctorReviews(ctx context.Context, doctorUserID string, f Filter) ([]models.Review, error)
	Summary(ctx context.Context, doctorUserID string) (*models.ReviewSummary, error)
}

// Filter narrows ListDoctorReviews. MinRating 0 keeps everything.
type Filter struct {
	MinRating float64
	Limit     int
}

// DefaultReviewService reads reviews nested in appointment documents.
type DefaultReviewService struct {
	Appointments appointmentRepo.AppointmentRepository
	Users        userRepo.UserRepository
	Logger       *zap.Logger
}

// ListDoctorReviews returns the doctor's reviews, newest first.
func (s *DefaultReviewService) ListDoctorReviews(ctx context.Context, doctorUserID string, f Filter) ([]models.Review, error) {
	appts, err := s.Appointments.GetByDoctorUserID(ctx, doctorUserID)
	if err != nil {
		return nil, err
	}

	reviews := make([]models.Review, 0)
	var patientIDs []string
	for _, a := range appts {
		r, ok := extractReview(a)
		if !ok || r.Rating < f.MinRating {
			continue
		}
		reviews = append(reviews, r)
		if r.PatientUserID != "" {
			patientIDs = append(patientIDs, r.PatientUserID)
		}
	}

	if len(patientIDs) > 0 {
		users, err := s.Users.GetByUIDs(ctx, patientIDs)
		if err != nil {
			s.logger().Warn("Failed to load review patients, using appointment fields", zap.Error(err))
		}
		for i := range reviews {
			u, ok := users[reviews[i].PatientUserID]
			if !ok {
				continue
			}
			if name := u.BestName(); name != "" {
				reviews[i].PatientName = name
			}
			if u.Email != "" {
				reviews[i].PatientEmail = u.Email
			}
			if u.PhoneNumber != "" {
				reviews[i].PatientPhone = u.PhoneNumber
			}
		}
	}

	sort.SliceStable(reviews, func(i, j int) bool { return reviews[i].CreatedAt.After(reviews[j].CreatedAt) })
	if f.Limit > 0 && len(reviews) > f.Limit {
		reviews = reviews[:f.Limit]
	}
	return reviews, nil
}

// Summary counts every review; the average is rounded to one decimal and
// the histogram buckets ratings by rounded star (1-5).
func (s *DefaultReviewService) Summary(ctx context.Context, doctorUserID string) (*models.ReviewSummary, error) {
	appts, err := s.Appointments.GetByDoctorUserID(ctx, doctorUserID)
	if err != nil {
		return nil, err
	}

	summary := &models.ReviewSummary{Histogram: map[int]int{1: 0, 2: 0, 3: 0, 4: 0, 5: 0}}
	var total float64
	for _, a := range appts {
		r, ok := extractReview(a)
		if !ok {
			continue
		}
		summary.Count++
		total += r.Rating
		star := int(math.Round(r.Rating))
		if star < 1 {
			star = 1
		}
		if star > 5 {
			star = 5
		}
		summary.Histogram[star]++
	}
	if summary.Count > 0 {
		summary.Average = math.Round(total/float64(summary.Count)*10) / 10
	}
	return summary, nil
}

// extractReview reads the loosely shaped review map. Field names vary
// between clients, so each value has a list of accepted keys.
func extractReview(a models.Appointment) (models.Review, bool) {
	data := a.Review
	if len(data) == 0 {
		return models.Review{}, false
	}

	r := models.Review{
		AppointmentID:   database.AsString(data, "AppointmentId"),
		Comment:         database.AsString(data, "description", "Description", "comment", "Comment", "review", "Review"),
		ReviewedBy:      database.AsString(data, "reviewedBy", "reviewed_by", "Reviewed_By"),
		AppointmentDate: a.Date,
		PatientUserID:   a.PatientUserID,
		PatientName:     a.PatientName,
		PatientEmail:    a.PatientEmail,
		PatientPhone:    a.PatientPhone,
	}
	if r.AppointmentID == "" {
		r.AppointmentID = a.ID
	}
	for _, k := range []string{"rating", "Rating"} {
		if v, ok := database.AsFloat(data[k]); ok && v != 0 {
			r.Rating = v
			break
		}
	}
	r.CreatedAt = a.CreatedAt
	for _, k := range []string{"createdAt", "created", "created_at", "date", "Date"} {
		if t, ok := database.AsTime(data[k]); ok {
			r.CreatedAt = t
			break
		}
	}
	return r, true
}

func (s *DefaultReviewService) logger() *zap.Logger {
	if s.Logger == nil {
		return zap.NewNop()
	}
	return s.Logger
}
