package fetcher

import (
	"errors"
	"fmt"
)

// Kind says why a fetch failed
type Kind string

const (
	KindNetwork    Kind = "network"
	KindInvalidURL Kind = "invalid_url"
	KindCORS       Kind = "cors"
	KindNoContent  Kind = "no_content"
	KindParse      Kind = "parse"
)

// Sentinels for errors.Is; a *Error matches the sentinel of its kind
var (
	ErrNetwork    = errors.New("network error")
	ErrInvalidURL = errors.New("invalid URL")
	ErrCORS       = errors.New("access denied")
	ErrNoContent  = errors.New("no content")
	ErrParse      = errors.New("parse error")
)

var sentinels = map[Kind]error{
	KindNetwork:    ErrNetwork,
	KindInvalidURL: ErrInvalidURL,
	KindCORS:       ErrCORS,
	KindNoContent:  ErrNoContent,
	KindParse:      ErrParse,
}

var suggestions = map[Kind]string{
	KindCORS:       "Try copying the text content directly from the page instead of using the URL.",
	KindInvalidURL: "Make sure the URL starts with http:// or https:// and is properly formatted.",
	KindNetwork:    "Check your internet connection and verify the URL is accessible.",
	KindNoContent:  "The page might be empty or require login. Try copying the content manually.",
	KindParse:      "The page content could not be analyzed. Try using the text extraction method instead.",
}

// Error is returned by Fetch for every failure
type Error struct {
	Kind Kind
	URL  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("failed to fetch content from %s: %s: %v", e.URL, sentinels[e.Kind], e.Err)
	}
	return fmt.Sprintf("failed to fetch content from %s: %s", e.URL, sentinels[e.Kind])
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is lets errors.Is(err, ErrCORS) and friends match on kind
func (e *Error) Is(target error) bool {
	return sentinels[e.Kind] == target
}

func newError(kind Kind, url string, err error) *Error {
	return &Error{Kind: kind, URL: url, Err: err}
}

// Suggestion returns what the user can do about err
func Suggestion(err error) string {
	var fetchErr *Error
	if errors.As(err, &fetchErr) {
		if s, ok := suggestions[fetchErr.Kind]; ok {
			return s
		}
	}
	return "Please try again or use the text extraction method as an alternative."
}
