package api

import (
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/hetiansu5/urlquery"
	"github.com/oarkflow/errors"
	"golang.org/x/time/rate"
)

// DefaultURL is the gateway's HTTP submit endpoint.
const DefaultURL = "https://simple.pswin.com/"

// Requester is the outbound HTTP port: it submits one flat field set and
// reports the gateway's status code and body. The default implementation is
// Client; tests and alternative transports supply their own.
type Requester interface {
	Request(fields map[string]string) (status int, body []byte, err error)
}

// Options contains configuration options for the client.
type Options struct {
	URL    string `json:"url"`
	Method string `json:"method"`
	// Timeout is the maximum time to wait for the request
	Timeout time.Duration `json:"timeout"`
	// ReqPerSec throttles submits when > 0
	ReqPerSec int               `json:"req_per_sec"`
	Headers   map[string]string `json:"headers"`
}

// Client submits gateway requests over plain HTTP. It does not retry: a
// submit either completes or fails immediately.
type Client struct {
	// HTTPClient is the pkg HTTP client.
	HTTPClient *http.Client

	options *Options
	limiter *rate.Limiter
}

// NewClient creates a new Client with default settings.
func NewClient(opt ...*Options) *Client {
	var options *Options
	if len(opt) > 0 && opt[0] != nil {
		options = opt[0]
	} else {
		options = &Options{}
	}
	if options.URL == "" {
		options.URL = DefaultURL
	}
	if options.Method == "" {
		options.Method = http.MethodPost
	}
	if options.Timeout == 0 {
		options.Timeout = 30 * time.Second
	}
	var limiter *rate.Limiter
	if options.ReqPerSec > 0 {
		limiter = rate.NewLimiter(rate.Limit(options.ReqPerSec), 1)
	}
	return &Client{
		HTTPClient: &http.Client{Timeout: options.Timeout},
		options:    options,
		limiter:    limiter,
	}
}

// Request implements the Requester interface. GET submits the fields as the
// query string, anything else as a form-encoded body.
func (c *Client) Request(fields map[string]string) (int, []byte, error) {
	bts, err := urlquery.Marshal(fields)
	if err != nil {
		return 0, nil, errors.NewE(err, "unable to marshal gateway fields", "api:request")
	}
	if c.limiter != nil {
		ctx, cancel := context.WithTimeout(context.Background(), c.options.Timeout)
		defer cancel()
		if err := c.limiter.Wait(ctx); err != nil {
			return 0, nil, &TransportError{Err: err}
		}
	}
	var req *http.Request
	if strings.ToUpper(c.options.Method) == http.MethodGet {
		req, err = http.NewRequest(http.MethodGet, c.options.URL+"?"+string(bts), nil)
	} else {
		req, err = http.NewRequest(http.MethodPost, c.options.URL, strings.NewReader(string(bts)))
		if err == nil {
			req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		}
	}
	if err != nil {
		return 0, nil, errors.NewE(err, "unable to build gateway request", "api:request")
	}
	for key, val := range c.options.Headers {
		req.Header.Set(key, val)
	}
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return 0, nil, &TransportError{Err: err}
	}
	defer resp.Body.Close()
	bt, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, &TransportError{Err: err}
	}
	return resp.StatusCode, bt, nil
}
