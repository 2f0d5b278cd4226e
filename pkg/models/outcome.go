package models

// OutcomeKind discriminates the closed set of verification outcomes an
// interpreter may produce.
type OutcomeKind string

const (
	OutcomeSuccess                OutcomeKind = "success"
	OutcomeValidationError        OutcomeKind = "validation_error"
	OutcomeHold                   OutcomeKind = "hold"
	OutcomeSecondaryInputRequired OutcomeKind = "secondary_input_required"
	OutcomeAlreadyInProgress      OutcomeKind = "already_in_progress"
	OutcomeAlreadyCompleted       OutcomeKind = "already_completed"
	OutcomeRemoteFailure          OutcomeKind = "remote_failure"
)

// Outcome is the tagged result of interpreting one remote verification
// response. Exactly one kind per response; the payload fields are only
// meaningful for the kinds that declare them.
type Outcome struct {
	Kind          OutcomeKind `json:"kind"`
	MissingFields []string    `json:"missing_fields,omitempty"`
	ApplicantID   string      `json:"applicant_id,omitempty"`
	Message       string      `json:"message,omitempty"`
}

// Terminal reports whether the outcome ends the dispatch flow. Hold and
// SecondaryInputRequired hand control to a dependent data-entry step which
// issues its own ActionRequest on completion.
func (o Outcome) Terminal() bool {
	switch o.Kind {
	case OutcomeHold, OutcomeSecondaryInputRequired:
		return false
	default:
		return true
	}
}

func Success() Outcome {
	return Outcome{Kind: OutcomeSuccess}
}

func ValidationError(missingFields []string) Outcome {
	return Outcome{Kind: OutcomeValidationError, MissingFields: missingFields}
}

func Hold(applicantID string) Outcome {
	return Outcome{Kind: OutcomeHold, ApplicantID: applicantID}
}

func SecondaryInputRequired(applicantID string) Outcome {
	return Outcome{Kind: OutcomeSecondaryInputRequired, ApplicantID: applicantID}
}

func AlreadyInProgress() Outcome {
	return Outcome{Kind: OutcomeAlreadyInProgress}
}

func AlreadyCompleted() Outcome {
	return Outcome{Kind: OutcomeAlreadyCompleted}
}

func RemoteFailure(message string) Outcome {
	return Outcome{Kind: OutcomeRemoteFailure, Message: message}
}
