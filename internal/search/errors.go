package search

import "errors"

// FetchFailedMessage is the only failure text shown to the user.
const FetchFailedMessage = "Error fetching books. Please try again."

// ErrFetchFailed is the kind of every search failure: network error,
// non-2xx status or an unreadable response.
var ErrFetchFailed = errors.New("fetch failed")

// FetchError carries the diagnostic detail of a failed search. Only logs see it.
type FetchError struct {
	Op     string
	Status int
	Err    error
}

func (e *FetchError) Error() string {
	if e.Err == nil {
		return "fetch failed: " + e.Op
	}
	return "fetch failed: " + e.Op + ": " + e.Err.Error()
}

func (e *FetchError) Unwrap() error { return e.Err }

func (e *FetchError) Is(target error) bool { return target == ErrFetchFailed }
