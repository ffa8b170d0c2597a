package codec

import (
	"strconv"
	"unicode/utf16"

	"github.com/oarkflow/errors"
	"github.com/valyala/bytebufferpool"
	"golang.org/x/text/transform"
)

// ContentType is the value of the CT wire field selecting the body encoding.
type ContentType int

// Supported body encodings.
const (
	PlainText ContentType = 0 // repertoire text, submitted in TXT
	UCS2      ContentType = 9 // hex-encoded UTF-16 code units, submitted in HEX
)

// Codec renders an outgoing body in one of the gateway encodings.
type Codec interface {
	// Type returns the value for the CT wire field.
	Type() ContentType

	// Encode text.
	Encode() []byte
}

// Plain is body text within the gateway repertoire, transferred one byte per
// character.
type Plain string

// Type implements the Codec interface.
func (p Plain) Type() ContentType {
	return PlainText
}

// Encode to repertoire bytes.
func (p Plain) Encode() []byte {
	es, _, err := transform.Bytes(NewEncoder(), []byte(p))
	if err != nil {
		return []byte(p)
	}
	return es
}

// UCS2Hex is body text transferred as lowercase hex of its big-endian UTF-16
// code units, four digits per unit. Characters outside the BMP take two units.
type UCS2Hex string

// Type implements the Codec interface.
func (u UCS2Hex) Type() ContentType {
	return UCS2
}

const hexdigits = "0123456789abcdef"

// Encode to the hex form.
func (u UCS2Hex) Encode() []byte {
	units := utf16.Encode([]rune(string(u)))
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)
	for _, cu := range units {
		buf.B = append(buf.B,
			hexdigits[cu>>12&0xf],
			hexdigits[cu>>8&0xf],
			hexdigits[cu>>4&0xf],
			hexdigits[cu&0xf],
		)
	}
	out := make([]byte, buf.Len())
	copy(out, buf.B)
	return out
}

// FindCoding picks the encoding for text: plain when the whole body fits the
// repertoire, UCS2 otherwise. A body is never split between the two.
func FindCoding(text string) Codec {
	if IsRepresentable(text) {
		return Plain(text)
	}
	return UCS2Hex(text)
}

// DecodePlain maps gateway repertoire bytes back to text.
func DecodePlain(b []byte) string {
	es, _, err := transform.Bytes(NewDecoder(), b)
	if err != nil {
		return string(b)
	}
	return string(es)
}

// DecodeUCS2Hex parses the hex form back to text.
func DecodeUCS2Hex(s string) (string, error) {
	if len(s)%4 != 0 {
		return "", errors.New("ucs2 hex length must be a multiple of 4, got " + strconv.Itoa(len(s)))
	}
	units := make([]uint16, 0, len(s)/4)
	for i := 0; i < len(s); i += 4 {
		v, err := strconv.ParseUint(s[i:i+4], 16, 16)
		if err != nil {
			return "", errors.NewE(err, "invalid ucs2 hex code unit", "codec:ucs2")
		}
		units = append(units, uint16(v))
	}
	return string(utf16.Decode(units)), nil
}
