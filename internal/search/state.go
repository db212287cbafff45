package search

// Phase is the tag of RequestState.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseLoading
	PhaseSuccess
	PhaseFailed
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseLoading:
		return "loading"
	case PhaseSuccess:
		return "success"
	case PhaseFailed:
		return "failed"
	}
	return "unknown"
}

// RequestState is the controller's phase with respect to the latest search.
// Query is set for Loading, Results for Success, Message for Failed.
type RequestState struct {
	Phase   Phase
	Query   string
	Results ResultSet
	Message string
}

func Idle() RequestState { return RequestState{Phase: PhaseIdle} }

func Loading(query string) RequestState {
	return RequestState{Phase: PhaseLoading, Query: query}
}

func Success(rs ResultSet) RequestState {
	return RequestState{Phase: PhaseSuccess, Results: rs}
}

func Failed(msg string) RequestState {
	return RequestState{Phase: PhaseFailed, Message: msg}
}
