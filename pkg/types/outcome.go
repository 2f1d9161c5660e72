package types

// Outcome is what a tool's exit status says about the state of the
// dependencies. It is derived from the exit status only, never from the
// report.
type Outcome int

const (
	UpToDate Outcome = iota
	UpdateRequired
)

// OutcomeFromExit maps a successful exit to UpToDate and any failing exit to
// UpdateRequired. npm audit and npm outdated both exit non-zero when they
// find something to act on.
func OutcomeFromExit(success bool) Outcome {
	if success {
		return UpToDate
	}
	return UpdateRequired
}

func (o Outcome) String() string {
	switch o {
	case UpToDate:
		return "up-to-date"
	case UpdateRequired:
		return "update-required"
	default:
		return "unknown"
	}
}

func (o Outcome) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}
