package pswin_test

import (
	"errors"
	"testing"

	"github.com/oarkflow/pswin"
	"github.com/oarkflow/pswin/api"
)

// stubRequester captures submitted field sets and replies with a fixed
// status, replacing the HTTP collaborator.
type stubRequester struct {
	status  int
	submits []map[string]string
}

func (s *stubRequester) Request(fields map[string]string) (int, []byte, error) {
	s.submits = append(s.submits, fields)
	return s.status, nil, nil
}

func (s *stubRequester) last(t *testing.T) map[string]string {
	t.Helper()
	if len(s.submits) == 0 {
		t.Fatal("no request submitted")
	}
	return s.submits[len(s.submits)-1]
}

func TestSendPlain(t *testing.T) {
	stub := &stubRequester{status: 200}
	p := pswin.New("main", pswin.Config{User: "user", Password: "password"}, stub)

	msg := &pswin.OutgoingMessage{To: "+123456", Body: "hey"}
	if err := p.Send(msg); err != nil {
		t.Fatalf("send: %v", err)
	}
	req := stub.last(t)
	if req[pswin.FieldUser] != "user" || req[pswin.FieldPassword] != "password" {
		t.Errorf("credentials not submitted: %v", req)
	}
	if req[pswin.FieldReceiver] != "+123456" {
		t.Errorf("RCV = %q", req[pswin.FieldReceiver])
	}
	if req[pswin.FieldContentType] != "0" {
		t.Errorf("CT = %q, want 0", req[pswin.FieldContentType])
	}
	if req[pswin.FieldText] != "hey" {
		t.Errorf("TXT = %q", req[pswin.FieldText])
	}
	if _, ok := req[pswin.FieldHex]; ok {
		t.Error("HEX must not be set in plain mode")
	}
	if _, ok := msg.Params["is_hex"]; ok {
		t.Error("plain message must not carry the is_hex annotation")
	}
}

func TestSendGatewayError(t *testing.T) {
	stub := &stubRequester{status: 500}
	p := pswin.New("main", pswin.Config{User: "user", Password: "password"}, stub)

	err := p.Send(&pswin.OutgoingMessage{To: "+123456", Body: "hey"})
	var ge *api.GatewayError
	if !errors.As(err, &ge) {
		t.Fatalf("want *GatewayError, got %v", err)
	}
	if ge.Code != api.CodeServerFailure {
		t.Errorf("code = %s, want %s", ge.Code, api.CodeServerFailure)
	}
}

func TestSendSenderID(t *testing.T) {
	stub := &stubRequester{status: 200}
	p := pswin.New("main", pswin.Config{User: "user", Password: "password", SenderID: "MyShop"}, stub)

	if err := p.Send(&pswin.OutgoingMessage{To: "+123456", Body: "hey"}); err != nil {
		t.Fatalf("send: %v", err)
	}
	if got := stub.last(t)[pswin.FieldSender]; got != "MyShop" {
		t.Errorf("default SND = %q, want MyShop", got)
	}

	if err := p.Send(&pswin.OutgoingMessage{To: "+123456", Body: "hey", SenderID: "Fake sender"}); err != nil {
		t.Fatalf("send: %v", err)
	}
	if got := stub.last(t)[pswin.FieldSender]; got != "Fake sender" {
		t.Errorf("overridden SND = %q, want Fake sender", got)
	}
}

func TestSendUCS2(t *testing.T) {
	stub := &stubRequester{status: 200}
	p := pswin.New("main", pswin.Config{User: "user", Password: "password"}, stub)

	msg := &pswin.OutgoingMessage{To: "+123456", Body: "מה קורה?"}
	if err := p.Send(msg); err != nil {
		t.Fatalf("send: %v", err)
	}
	req := stub.last(t)
	if req[pswin.FieldContentType] != "9" {
		t.Errorf("CT = %q, want 9", req[pswin.FieldContentType])
	}
	if req[pswin.FieldHex] != "05de05d4002005e705d505e805d4003f" {
		t.Errorf("HEX = %q", req[pswin.FieldHex])
	}
	if _, ok := req[pswin.FieldText]; ok {
		t.Error("TXT must not be set in ucs2 mode")
	}
	if v, ok := msg.Params["is_hex"]; !ok || v != true {
		t.Error("ucs2 message must carry the is_hex annotation")
	}
}

func TestSendOptionsPrecedence(t *testing.T) {
	stub := &stubRequester{status: 200}
	p := pswin.New("main", pswin.Config{User: "user", Password: "password"}, stub)

	msg := &pswin.OutgoingMessage{
		To:   "+123456",
		Body: "hey",
		Options: map[string]string{
			"RCV": "hijacked",
			"TXT": "hijacked",
			"OP":  "1",
		},
	}
	if err := p.Send(msg); err != nil {
		t.Fatalf("send: %v", err)
	}
	req := stub.last(t)
	if req[pswin.FieldReceiver] != "+123456" {
		t.Errorf("option overrode RCV: %q", req[pswin.FieldReceiver])
	}
	if req[pswin.FieldText] != "hey" {
		t.Errorf("option overrode TXT: %q", req[pswin.FieldText])
	}
	if req["OP"] != "1" {
		t.Errorf("passthrough option lost: %v", req)
	}
}

func TestSetup(t *testing.T) {
	if err := pswin.New("main", pswin.Config{User: "user", Password: "password"}).Setup(); err != nil {
		t.Errorf("setup with credentials: %v", err)
	}
	if err := pswin.New("main", pswin.Config{User: "user"}).Setup(); err == nil {
		t.Error("setup without password should fail")
	}
}

func TestRegistry(t *testing.T) {
	reg := pswin.NewRegistry()
	stub := &stubRequester{status: 200}
	reg.Add(pswin.New("main", pswin.Config{User: "u", Password: "p"}, stub))
	reg.Add(pswin.New("backup", pswin.Config{User: "u", Password: "p"}, stub))

	if _, ok := reg.Get("main"); !ok {
		t.Error("main provider not found")
	}
	if _, ok := reg.Get("nope"); ok {
		t.Error("unexpected provider found")
	}
	if names := reg.Names(); len(names) != 2 {
		t.Errorf("Names() = %v, want 2 entries", names)
	}
}
