package receiver

import (
	"fmt"
	"time"

	"github.com/oarkflow/pswin"
	"github.com/oarkflow/pswin/codec"
)

// Wire field names of the gateway's callback interface.
const (
	fieldRef          = "REF"
	fieldSender       = "SND"
	fieldReceiver     = "RCV"
	fieldText         = "TXT"
	fieldState        = "STATE"
	fieldDeliveryTime = "DELIVERYTIME"
)

// deliveryTimeLayout matches the gateway's YYYYMMDDHHmm timestamps.
const deliveryTimeLayout = "200601021504"

// Fields is the flat parameter set of one callback. Values are the raw
// single-byte strings the transport handed over, before any charset
// interpretation.
type Fields map[string]string

// DecodeError reports a malformed callback: a required field is missing or a
// value is unparseable.
type DecodeError struct {
	Field  string
	Reason string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("pswin callback field %s: %s", e.Field, e.Reason)
}

func missing(field string) error {
	return &DecodeError{Field: field, Reason: "required field missing"}
}

// DecodeMessage normalizes a "message received" callback. REF is optional;
// SND, RCV and TXT are required. The body is decoded through the gateway's
// single-byte repertoire, never UTF-8: when the original sender used
// characters the gateway cannot carry inbound, the gateway has already
// substituted "?" for them and the decoder passes that through untouched.
// Fields not consumed by the core mapping land in Meta unmodified.
func DecodeMessage(f Fields, provider string) (*pswin.InboundMessage, error) {
	src, ok := f[fieldSender]
	if !ok {
		return nil, missing(fieldSender)
	}
	dst, ok := f[fieldReceiver]
	if !ok {
		return nil, missing(fieldReceiver)
	}
	txt, ok := f[fieldText]
	if !ok {
		return nil, missing(fieldText)
	}
	msg := &pswin.InboundMessage{
		Provider: provider,
		MsgID:    f[fieldRef],
		Src:      src,
		Dst:      dst,
		Body:     codec.DecodePlain([]byte(txt)),
	}
	for k, v := range f {
		switch k {
		case fieldRef, fieldSender, fieldReceiver, fieldText:
		default:
			if msg.Meta == nil {
				msg.Meta = make(map[string]string)
			}
			msg.Meta[k] = v
		}
	}
	return msg, nil
}

// DecodeStatus normalizes a delivery-status callback. REF and STATE are
// required; STATE codes outside the fixed vocabulary map to StateUnknown.
// DELIVERYTIME is parsed when present and must be well-formed.
func DecodeStatus(f Fields, provider string) (*pswin.StatusReport, error) {
	ref, ok := f[fieldRef]
	if !ok {
		return nil, missing(fieldRef)
	}
	state, ok := f[fieldState]
	if !ok {
		return nil, missing(fieldState)
	}
	st := &pswin.StatusReport{
		Provider: provider,
		MsgID:    ref,
		State:    pswin.StateFromWire(state),
	}
	if v, ok := f[fieldDeliveryTime]; ok && v != "" {
		ts, err := time.Parse(deliveryTimeLayout, v)
		if err != nil {
			return nil, &DecodeError{Field: fieldDeliveryTime, Reason: "unparseable timestamp " + v}
		}
		st.DeliveredAt = ts
	}
	return st, nil
}
