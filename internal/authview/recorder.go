package authview

// Operation names an identity action started from the view.
type Operation string

const (
	OpSignup Operation = "signup"
	OpLogin  Operation = "login"
	OpReset  Operation = "reset"
	OpOAuth  Operation = "oauth"
)

// Outcome is how a submission ended.
type Outcome string

const (
	OutcomeSuccess    Outcome = "success"
	OutcomeInvalid    Outcome = "invalid"
	OutcomeFailed     Outcome = "failed"
	OutcomeSuperseded Outcome = "superseded"
	OutcomeRejected   Outcome = "rejected"
)

// Recorder observes submission outcomes, e.g. for metrics.
type Recorder interface {
	Record(op Operation, outcome Outcome)
}

type nopRecorder struct{}

func (nopRecorder) Record(Operation, Outcome) {}
