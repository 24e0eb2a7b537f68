package doctorRepo

import (
	"time"

	"clinicdesk/database"
	"clinicdesk/models"

	"cloud.google.com/go/firestore"
)

func doctorFromData(id string, data map[string]interface{}) models.Doctor {
	doctor := models.Doctor{
		ID:             id,
		UserID:         database.RefID(data["userid"]),
		Name:           database.AsString(data, "name", "display_name", "displayName"),
		Email:          database.AsString(data, "email"),
		Phone:          database.AsString(data, "phone", "phone_number"),
		Specialization: database.AsString(data, "specialization", "Specialization"),
		PhotoURL:       database.AsString(data, "photo_url", "photoUrl"),
		TimeSlots:      map[string]time.Time{},
		EnabledDays:    map[string]bool{},
	}
	if created, ok := database.AsTime(data["created_at"]); ok {
		doctor.CreatedAt = created
	}
	for k, v := range database.AsMap(data["time_slots"]) {
		if ts, ok := database.AsTime(v); ok {
			doctor.TimeSlots[k] = ts
		}
	}
	for k, v := range database.AsMap(data["enabled_days"]) {
		doctor.EnabledDays[k] = database.AsBool(v)
	}
	doctor.Holidays = holidaysFromData(data["holidays"])
	return doctor
}

// holidaysFromData skips entries without a usable date.
func holidaysFromData(v interface{}) []models.Holiday {
	list, _ := v.([]interface{})
	holidays := make([]models.Holiday, 0, len(list))
	for _, item := range list {
		m := database.AsMap(item)
		if m == nil {
			continue
		}
		date, ok := database.AsTime(m["date"])
		if !ok {
			continue
		}
		holidays = append(holidays, models.Holiday{
			ID:     database.AsString(m, "id"),
			Date:   date,
			Reason: database.AsString(m, "reason"),
		})
	}
	return holidays
}

func scheduleUpdates(doc models.ScheduleDocument) []firestore.Update {
	slots := make(map[string]interface{}, len(doc.TimeSlots))
	for k, v := range doc.TimeSlots {
		slots[k] = v
	}
	enabled := make(map[string]interface{}, len(doc.EnabledDays))
	for k, v := range doc.EnabledDays {
		enabled[k] = v
	}
	holidays := make([]interface{}, 0, len(doc.Holidays))
	for _, h := range doc.Holidays {
		holidays = append(holidays, map[string]interface{}{
			"id":     h.ID,
			"date":   h.Date,
			"reason": h.Reason,
		})
	}
	return []firestore.Update{
		{Path: "time_slots", Value: slots},
		{Path: "enabled_days", Value: enabled},
		{Path: "holidays", Value: holidays},
	}
}
