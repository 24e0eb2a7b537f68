package models

import "time"

const (
	RolePatient = "patient"
	RoleDoctor  = "doctor"
	RoleAdmin   = "admin"
)

// User is a platform user from the Users collection.
type User struct {
	UID         string    `bson:"uid" json:"uid"`
	DisplayName string    `bson:"display_name,omitempty" json:"displayName,omitempty"`
	Name        string    `bson:"name,omitempty" json:"name,omitempty"`
	Email       string    `bson:"email,omitempty" json:"email,omitempty"`
	PhoneNumber string    `bson:"phone_number,omitempty" json:"phoneNumber,omitempty"`
	PhotoURL    string    `bson:"photo_url,omitempty" json:"photoUrl,omitempty"`
	Role        string    `bson:"role,omitempty" json:"role,omitempty"`
	IsDoctor    bool      `bson:"isDoctor,omitempty" json:"isDoctor,omitempty"`
	CreatedAt   time.Time `bson:"created_time,omitempty" json:"createdAt,omitempty"`
}

// BestName prefers display_name, then name.
func (u User) BestName() string {
	if u.DisplayName != "" {
		return u.DisplayName
	}
	return u.Name
}

// IsPatient applies the role rules used for patient counts: an explicit
// patient role, or any user that is neither doctor nor admin.
func (u User) IsPatient() bool {
	switch u.Role {
	case RolePatient:
		return true
	case RoleDoctor, RoleAdmin:
		return false
	}
	return !u.IsDoctor
}
