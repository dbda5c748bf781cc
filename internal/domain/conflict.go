package domain

// Due-date conflict messages. The unconfirmed variant is used when the
// client has not yet confirmed the delivery date.
const (
	MsgDueMissed            = "No se cumple la fecha de entrega"
	MsgDueMissedUnconfirmed = "No se cumple la fecha estimada de entrega"
)

// Conflict reports a project whose computed end date breaches its due
// date. Conflicts are first-class output, not errors: scheduling always
// completes and the caller decides how to surface them.
type Conflict struct {
	Project string
	Client  string
	Message string
	// Key identifies the conflict for client-side dismissal tracking.
	Key string
}

// NewConflict builds a conflict with its idempotency key.
func NewConflict(project, client, message string) Conflict {
	return Conflict{
		Project: project,
		Client:  client,
		Message: message,
		Key:     project + "|" + message,
	}
}
