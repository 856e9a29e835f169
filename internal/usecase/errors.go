package usecase

import (
	"fmt"
	"strings"

	crerr "github.com/cockroachdb/errors"
)

var (
	ErrInvalidInput  = crerr.New("invalid input")
	ErrNotFound      = crerr.New("resource not found")
	ErrRetrieval     = crerr.New("retrieval failed")
	ErrResolution    = crerr.New("entity not resolved")
	ErrConfiguration = crerr.New("configuration error")
)

// RetrievalError reports a transport failure, a non-2xx status or a body
// that is not a JSON document.
type RetrievalError struct {
	Provider   string
	URL        string
	StatusCode int
	Err        error
}

func (e *RetrievalError) Error() string {
	var b strings.Builder
	b.WriteString("retrieve ")
	if e.Provider != "" {
		b.WriteString(e.Provider)
		b.WriteString(" ")
	}
	b.WriteString(e.URL)
	if e.StatusCode > 0 {
		fmt.Fprintf(&b, ": status=%d", e.StatusCode)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *RetrievalError) Unwrap() error { return e.Err }

func (e *RetrievalError) Is(target error) bool { return target == ErrRetrieval }

// ResolutionError reports a team or player name with no provider match.
type ResolutionError struct {
	Provider string
	Query    string
}

func (e *ResolutionError) Error() string {
	if e.Provider == "" {
		return fmt.Sprintf("could not resolve %q", e.Query)
	}
	return fmt.Sprintf("could not resolve %q with %s", e.Query, e.Provider)
}

func (e *ResolutionError) Is(target error) bool { return target == ErrResolution }

// MarkConfiguration tags err as fatal for the whole run.
func MarkConfiguration(err error) error {
	if err == nil {
		return nil
	}
	return crerr.Mark(err, ErrConfiguration)
}

// IsConfiguration reports whether err must stop the run.
func IsConfiguration(err error) bool {
	return crerr.Is(err, ErrConfiguration)
}
