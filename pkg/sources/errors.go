package sources

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/kerbaras/countries/pkg/utils"
)

var (
	// ErrNetworkFailure matches every transport error and non-2xx response.
	ErrNetworkFailure = errors.New("network failure")
	// ErrNotFound additionally matches 404 responses.
	ErrNotFound = errors.New("country not found")
)

type RequestError struct {
	Op         string
	URL        string
	StatusCode int
	Err        error
}

func (e *RequestError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s %s: status %d", e.Op, e.URL, e.StatusCode)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.URL, e.Err)
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

func (e *RequestError) Is(target error) bool {
	switch target {
	case ErrNetworkFailure:
		return true
	case ErrNotFound:
		return e.StatusCode == http.StatusNotFound
	}
	return false
}

func newRequestError(op, url string, err error) *RequestError {
	reqErr := &RequestError{Op: op, URL: url, Err: err}
	var statusErr *utils.StatusError
	if errors.As(err, &statusErr) {
		reqErr.StatusCode = statusErr.StatusCode
	}
	return reqErr
}
