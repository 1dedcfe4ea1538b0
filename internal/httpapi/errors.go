package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// RequestError is any failed call to the API: transport failure, timeout, non-2xx
// status or an undecodable body. Status classes are not distinguished and nothing
// is retried.
type RequestError struct {
	Method     string
	Path       string
	StatusCode int // 0 when no response was received
	Detail     string
	Err        error
}

func (e *RequestError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s", e.Method, e.Path)
	if e.StatusCode != 0 {
		fmt.Fprintf(&b, ": status %d", e.StatusCode)
	}
	if e.Detail != "" {
		fmt.Fprintf(&b, ": %s", e.Detail)
	} else if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	return b.String()
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

// Message is the text shown to a user: the server's detail when present.
func (e *RequestError) Message(fallback string) string {
	if e.Detail != "" {
		return e.Detail
	}
	return fallback
}

func IsRequestError(err error) bool {
	var re *RequestError
	return errors.As(err, &re)
}

// StatusCode returns the HTTP status carried by err, or 0.
func StatusCode(err error) int {
	var re *RequestError
	if errors.As(err, &re) {
		return re.StatusCode
	}
	return 0
}

type errorBody struct {
	Detail json.RawMessage `json:"detail"`
}

type validationItem struct {
	Msg string `json:"msg"`
}

// parseDetail extracts "detail" which is either a plain string or a list of
// validation objects; for a list the first message wins.
func parseDetail(body []byte) string {
	var eb errorBody
	if err := json.Unmarshal(body, &eb); err != nil || len(eb.Detail) == 0 {
		return ""
	}

	var s string
	if err := json.Unmarshal(eb.Detail, &s); err == nil {
		return s
	}

	var items []validationItem
	if err := json.Unmarshal(eb.Detail, &items); err == nil {
		for _, it := range items {
			if it.Msg != "" {
				return it.Msg
			}
		}
		return ""
	}

	return string(eb.Detail)
}
