package events

const (
	NotificationEvent   EventType = "ui.notification"
	ListReloadEvent     EventType = "ui.list.reload"
	MissingFieldsEvent  EventType = "ui.dialog.missing_fields"
	SecondaryInputEvent EventType = "ui.dialog.secondary_input"
	NavigationEvent     EventType = "ui.navigate"
)

// Notification is a single toast shown to the acting user.
type Notification struct {
	BaseEvent

	Title    string `json:"title"`
	Message  string `json:"message"`
	Severity string `json:"severity"`
}

func (n Notification) GetType() EventType {
	return NotificationEvent
}

// ListReload instructs the list UI to refresh the row for a record.
type ListReload struct {
	BaseEvent
}

func (l ListReload) GetType() EventType {
	return ListReloadEvent
}

// MissingFields opens the dialog enumerating remotely reported missing
// fields.
type MissingFields struct {
	BaseEvent

	Fields []string `json:"fields"`
}

func (m MissingFields) GetType() EventType {
	return MissingFieldsEvent
}

// SecondaryInput opens the dependent data-entry modal preloaded with the
// applicant data.
type SecondaryInput struct {
	BaseEvent

	ApplicantID string         `json:"applicant_id"`
	Applicant   map[string]any `json:"applicant,omitempty"`
}

func (s SecondaryInput) GetType() EventType {
	return SecondaryInputEvent
}

// Navigation routes the UI to a record surface without touching any
// integration.
type Navigation struct {
	BaseEvent

	Target  string         `json:"target"`
	Payload map[string]any `json:"payload,omitempty"`
}

func (n Navigation) GetType() EventType {
	return NavigationEvent
}
