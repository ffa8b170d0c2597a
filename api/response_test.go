package api_test

import (
	"errors"
	"io"
	"testing"

	"github.com/oarkflow/pswin/api"
)

func TestClassifySuccess(t *testing.T) {
	for _, status := range []int{200, 201, 204} {
		if err := api.Classify(status, nil); err != nil {
			t.Errorf("Classify(%d) = %v, want nil", status, err)
		}
	}
}

func TestClassifyErrors(t *testing.T) {
	cases := []struct {
		status int
		code   string
	}{
		{500, api.CodeServerFailure},
		{502, api.CodeServerFailure},
		{503, api.CodeServerFailure},
		{401, api.CodeAuthFailure},
		{403, api.CodeAuthFailure},
		{400, api.CodeMalformedRequest},
		{418, api.CodeUnknown},
		{302, api.CodeUnknown},
	}
	for _, c := range cases {
		err := api.Classify(c.status, []byte("FAIL"))
		if err == nil {
			t.Fatalf("Classify(%d) = nil, want error", c.status)
		}
		var ge *api.GatewayError
		if !errors.As(err, &ge) {
			t.Fatalf("Classify(%d) returned %T, want *GatewayError", c.status, err)
		}
		if ge.Code != c.code {
			t.Errorf("Classify(%d) code = %s, want %s", c.status, ge.Code, c.code)
		}
		if ge.Status != c.status {
			t.Errorf("Classify(%d) kept status %d", c.status, ge.Status)
		}
	}
}

func TestTransportErrorUnwrap(t *testing.T) {
	te := &api.TransportError{Err: io.ErrUnexpectedEOF}
	if !errors.Is(te, io.ErrUnexpectedEOF) {
		t.Error("TransportError should unwrap to its cause")
	}
}
