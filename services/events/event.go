package events

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// RoutingKeyPrefix is the first segment of every routing key.
const RoutingKeyPrefix = "clinicdesk"

// Resources and actions carried in routing keys.
const (
	ResourceAppointment = "appointment"
	ResourceSchedule    = "schedule"

	ActionCreated     = "created"
	ActionRescheduled = "rescheduled"
	ActionStatus      = "status"
	ActionDeleted     = "deleted"
	ActionUpdated     = "updated"
)

// Event describes a change to clinic data.
type Event struct {
	ID           string                 `json:"id"`
	Resource     string                 `json:"resource"`
	Action       string                 `json:"action"`
	EntityID     string                 `json:"entityId"`
	DoctorUserID string                 `json:"doctorUserId,omitempty"`
	OccurredAt   time.Time              `json:"occurredAt"`
	Data         map[string]interface{} `json:"data,omitempty"`
}

// NewEvent stamps a new event with an id and the current time.
func NewEvent(resource, action, entityID, doctorUserID string) Event {
	return Event{
		ID:           uuid.NewString(),
		Resource:     resource,
		Action:       action,
		EntityID:     entityID,
		DoctorUserID: doctorUserID,
		OccurredAt:   time.Now().UTC(),
	}
}

// RoutingKey returns "clinicdesk.<resource>.<action>".
func (e Event) RoutingKey() string {
	return RoutingKeyPrefix + "." + e.Resource + "." + e.Action
}

// RoutingKey is a parsed "clinicdesk.<resource>.<action>" key.
type RoutingKey struct {
	Resource string
	Action   string
}

func ParseRoutingKey(key string) (RoutingKey, error) {
	parts := strings.Split(key, ".")
	if len(parts) != 3 || parts[0] != RoutingKeyPrefix || parts[1] == "" || parts[2] == "" {
		return RoutingKey{}, fmt.Errorf("invalid routing key: %s", key)
	}
	return RoutingKey{Resource: parts[1], Action: parts[2]}, nil
}
