package pswin

import "time"

// OutgoingMessage is an application message bound for the gateway. The
// provider reads it and may attach annotations to Params during Send; it
// never rewrites To, Body or the options.
type OutgoingMessage struct {
	To       string            `json:"to"`
	Body     string            `json:"body"`
	SenderID string            `json:"sender_id,omitempty"`
	Options  map[string]string `json:"options,omitempty"`
	// Params carries provider annotations, e.g. "is_hex" when the body went
	// out UCS2-encoded.
	Params map[string]any `json:"params,omitempty"`
}

// InboundMessage is a normalized mobile-originated message. It is built fresh
// per callback and handed to the dispatch hook as-is.
type InboundMessage struct {
	Provider string            `json:"provider"`
	MsgID    string            `json:"msg_id,omitempty"` // empty when the callback carries no REF
	Src      string            `json:"src"`
	Dst      string            `json:"dst"`
	Body     string            `json:"body"`
	Meta     map[string]string `json:"meta,omitempty"` // wire fields not consumed above
}

// StatusReport is a normalized delivery report for a previously sent message.
type StatusReport struct {
	Provider    string    `json:"provider"`
	MsgID       string    `json:"msg_id"`
	State       State     `json:"state"`
	DeliveredAt time.Time `json:"delivered_at"` // zero when the callback has no timestamp
}

// State is the normalized delivery state of a sent message.
type State uint8

// Delivery states and the STATE wire codes they correspond to.
const (
	StateUnknown State = iota // wire code outside the fixed vocabulary
	StateDelivered
	StateUndelivered
	StateExpired
	StateDeleted
	StateRejected
	StateFailed
	StateBarred
)

var stateByWire = map[string]State{
	"DELIVRD": StateDelivered,
	"UNDELIV": StateUndelivered,
	"EXPIRED": StateExpired,
	"DELETED": StateDeleted,
	"REJECTD": StateRejected,
	"FAILED":  StateFailed,
	"BARRED":  StateBarred,
}

var stateWire = map[State]string{
	StateDelivered:   "DELIVRD",
	StateUndelivered: "UNDELIV",
	StateExpired:     "EXPIRED",
	StateDeleted:     "DELETED",
	StateRejected:    "REJECTD",
	StateFailed:      "FAILED",
	StateBarred:      "BARRED",
}

var stateText = map[State]string{
	StateUnknown:     "unknown",
	StateDelivered:   "delivered",
	StateUndelivered: "undelivered",
	StateExpired:     "expired",
	StateDeleted:     "deleted",
	StateRejected:    "rejected",
	StateFailed:      "failed",
	StateBarred:      "barred",
}

// StateFromWire maps a STATE wire code. Codes outside the vocabulary yield
// StateUnknown rather than an error, so a new gateway state never breaks
// callback handling.
func StateFromWire(code string) State {
	if s, ok := stateByWire[code]; ok {
		return s
	}
	return StateUnknown
}

// Wire returns the STATE code this state corresponds to, empty for
// StateUnknown.
func (s State) Wire() string {
	return stateWire[s]
}

func (s State) String() string {
	if t, ok := stateText[s]; ok {
		return t
	}
	return "unknown"
}

// MessageHandler receives normalized inbound messages; ownership passes to
// the handler.
type MessageHandler func(*InboundMessage)

// StatusHandler receives normalized delivery reports.
type StatusHandler func(*StatusReport)
