package pswin

import (
	"strconv"

	"github.com/oarkflow/errors"

	"github.com/oarkflow/pswin/api"
	"github.com/oarkflow/pswin/codec"
)

// Wire field names of the gateway's submit interface.
const (
	FieldUser        = "USER"
	FieldPassword    = "PW"
	FieldReceiver    = "RCV"
	FieldSender      = "SND"
	FieldText        = "TXT"
	FieldHex         = "HEX"
	FieldContentType = "CT"
)

// Config holds the gateway account. It is fixed at construction and read-only
// afterwards.
type Config struct {
	User     string `json:"user"`
	Password string `json:"password"`
	// SenderID is the default SND value for messages that set none.
	SenderID string `json:"sender_id,omitempty"`
}

// Sender is the outbound face of a provider, what a dispatch framework holds.
type Sender interface {
	Name() string
	Setup() error
	Send(msg *OutgoingMessage) error
}

// Provider translates outgoing messages into gateway submits. It carries only
// configuration; concurrent Sends are safe.
type Provider struct {
	name string
	cfg  Config
	api  api.Requester
}

var _ Sender = (*Provider)(nil)

// New builds a named provider. A custom Requester may be passed for tests or
// alternative transports; by default the provider talks to the public
// endpoint through api.NewClient.
func New(name string, cfg Config, rq ...api.Requester) *Provider {
	var r api.Requester
	if len(rq) > 0 && rq[0] != nil {
		r = rq[0]
	} else {
		r = api.NewClient()
	}
	return &Provider{name: name, cfg: cfg, api: r}
}

// Name returns the provider tag carried by every inbound object it decodes.
func (p *Provider) Name() string {
	return p.name
}

// Setup validates the configured account.
func (p *Provider) Setup() error {
	if p.cfg.User == "" || p.cfg.Password == "" {
		return errors.New("pswin: user and password are required")
	}
	return nil
}

// Send submits one message. The body goes out plain when it fits the gateway
// repertoire, hex-encoded UCS2 otherwise; a single body is never split
// between the two. Success returns nil and no message id, which is all this
// protocol offers. Failures come back as *api.TransportError or a classified
// *api.GatewayError.
func (p *Provider) Send(msg *OutgoingMessage) error {
	fields := make(map[string]string, len(msg.Options)+7)
	for k, v := range msg.Options {
		fields[k] = v
	}
	// protocol-critical fields win over same-named options
	fields[FieldUser] = p.cfg.User
	fields[FieldPassword] = p.cfg.Password
	fields[FieldReceiver] = msg.To
	sender := msg.SenderID
	if sender == "" {
		sender = p.cfg.SenderID
	}
	if sender != "" {
		fields[FieldSender] = sender
	}
	body := codec.FindCoding(msg.Body)
	fields[FieldContentType] = strconv.Itoa(int(body.Type()))
	if body.Type() == codec.UCS2 {
		fields[FieldHex] = string(body.Encode())
		delete(fields, FieldText)
		if msg.Params == nil {
			msg.Params = make(map[string]any)
		}
		msg.Params["is_hex"] = true
	} else {
		fields[FieldText] = string(body.Encode())
		delete(fields, FieldHex)
	}
	status, respBody, err := p.api.Request(fields)
	if err != nil {
		return err
	}
	return api.Classify(status, respBody)
}
