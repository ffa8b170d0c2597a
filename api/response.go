package api

import (
	"fmt"
	"net/http"
)

// Symbolic codes of the gateway's error conditions.
const (
	CodeUnknown          = "E000" // status outside the fixed table
	CodeServerFailure    = "E001"
	CodeAuthFailure      = "E002"
	CodeMalformedRequest = "E003"
)

// GatewayError is a classified non-2xx gateway response.
type GatewayError struct {
	Code   string
	Status int
	Body   string
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("pswin gateway error %s (http %d)", e.Code, e.Status)
}

// TransportError means the HTTP exchange itself could not be completed. It is
// never produced from a status code.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return "pswin transport error: " + e.Err.Error()
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

var codeByStatus = map[int]string{
	http.StatusBadRequest:          CodeMalformedRequest,
	http.StatusUnauthorized:        CodeAuthFailure,
	http.StatusForbidden:           CodeAuthFailure,
	http.StatusInternalServerError: CodeServerFailure,
	http.StatusBadGateway:          CodeServerFailure,
	http.StatusServiceUnavailable:  CodeServerFailure,
}

// Classify maps a gateway HTTP response onto the error taxonomy. Any 2xx
// status is success and yields nil; the protocol returns no message id on
// success. Statuses outside the fixed table yield CodeUnknown with the raw
// status attached. Classify never panics, whatever the status.
func Classify(status int, body []byte) error {
	if status >= 200 && status < 300 {
		return nil
	}
	code, ok := codeByStatus[status]
	if !ok {
		code = CodeUnknown
	}
	return &GatewayError{Code: code, Status: status, Body: string(body)}
}
