package events

import "time"

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "USER_REGISTERED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// BaseEvent is the common implementation used by the constructors below.
type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

// Event type codes published on the analytics stream.
const (
	TypeUserRegistered      = "USER_REGISTERED"
	TypeUserLogin           = "USER_LOGIN"
	TypeStackSaved          = "STACK_SAVED"
	TypeProjectGenerated    = "PROJECT_GENERATED"
	TypeSubscriptionStarted = "SUBSCRIPTION_STARTED"
	TypePaymentSettled      = "PAYMENT_SETTLED"
)

func NewUserRegistered(userID, email string) BaseEvent {
	return BaseEvent{
		Type: TypeUserRegistered,
		Data: map[string]interface{}{
			"user_id": userID,
			"email":   email,
		},
		OccurredAt: time.Now(),
	}
}

func NewUserLogin(userID string) BaseEvent {
	return BaseEvent{
		Type: TypeUserLogin,
		Data: map[string]interface{}{
			"user_id": userID,
		},
		OccurredAt: time.Now(),
	}
}

func NewStackSaved(userID, stackID, name string) BaseEvent {
	return BaseEvent{
		Type: TypeStackSaved,
		Data: map[string]interface{}{
			"user_id":  userID,
			"stack_id": stackID,
			"name":     name,
		},
		OccurredAt: time.Now(),
	}
}

func NewProjectGenerated(userID, projectName string, archiveSize int64) BaseEvent {
	return BaseEvent{
		Type: TypeProjectGenerated,
		Data: map[string]interface{}{
			"user_id":      userID,
			"project_name": projectName,
			"archive_size": archiveSize,
		},
		OccurredAt: time.Now(),
	}
}

func NewSubscriptionStarted(userID, planSlug string) BaseEvent {
	return BaseEvent{
		Type: TypeSubscriptionStarted,
		Data: map[string]interface{}{
			"user_id":   userID,
			"plan_slug": planSlug,
		},
		OccurredAt: time.Now(),
	}
}

func NewPaymentSettled(userID, orderID string, amount float64) BaseEvent {
	return BaseEvent{
		Type: TypePaymentSettled,
		Data: map[string]interface{}{
			"user_id":  userID,
			"order_id": orderID,
			"amount":   amount,
		},
		OccurredAt: time.Now(),
	}
}
