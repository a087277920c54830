package submission

// State is the lifecycle of the submission view.
type State int

const (
	StateIdle State = iota
	StateLoading
	StateSuccess
	StateFailure
	StateTransportError
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateSuccess:
		return "success"
	case StateFailure:
		return "failure"
	case StateTransportError:
		return "transport_error"
	default:
		return "unknown"
	}
}
