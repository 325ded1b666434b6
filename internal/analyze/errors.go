package analyze

import (
	"errors"
	"fmt"
)

// ErrMissingURL is returned before any network activity when the URL is empty.
var ErrMissingURL = errors.New("URL is required")

// FetchError reports that the page server answered with a non-success
// status. No model call is attempted after it.
type FetchError struct {
	URL string
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }
