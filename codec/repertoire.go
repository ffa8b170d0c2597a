package codec

import (
	"unicode/utf8"

	"github.com/oarkflow/errors"
	"golang.org/x/text/transform"
)

// ErrNotRepresentable is returned by the encoder when the text contains a
// character outside the gateway repertoire. Callers are expected to fall back
// to UCS2 rather than handle this per character.
var ErrNotRepresentable = errors.New("character outside the gateway repertoire")

// byteToRune is the gateway's single-byte repertoire: wire byte value to code
// point. It currently coincides with ISO-8859-1, but it is kept as an explicit
// table because the gateway owns this mapping, not any standard codec.
var byteToRune = [256]rune{
	0x00, 0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07,
	0x08, 0x09, 0x0a, 0x0b, 0x0c, 0x0d, 0x0e, 0x0f,
	0x10, 0x11, 0x12, 0x13, 0x14, 0x15, 0x16, 0x17,
	0x18, 0x19, 0x1a, 0x1b, 0x1c, 0x1d, 0x1e, 0x1f,
	' ', '!', '"', '#', '$', '%', '&', '\'',
	'(', ')', '*', '+', ',', '-', '.', '/',
	'0', '1', '2', '3', '4', '5', '6', '7',
	'8', '9', ':', ';', '<', '=', '>', '?',
	'@', 'A', 'B', 'C', 'D', 'E', 'F', 'G',
	'H', 'I', 'J', 'K', 'L', 'M', 'N', 'O',
	'P', 'Q', 'R', 'S', 'T', 'U', 'V', 'W',
	'X', 'Y', 'Z', '[', '\\', ']', '^', '_',
	'`', 'a', 'b', 'c', 'd', 'e', 'f', 'g',
	'h', 'i', 'j', 'k', 'l', 'm', 'n', 'o',
	'p', 'q', 'r', 's', 't', 'u', 'v', 'w',
	'x', 'y', 'z', '{', '|', '}', '~', 0x7f,
	0x80, 0x81, 0x82, 0x83, 0x84, 0x85, 0x86, 0x87,
	0x88, 0x89, 0x8a, 0x8b, 0x8c, 0x8d, 0x8e, 0x8f,
	0x90, 0x91, 0x92, 0x93, 0x94, 0x95, 0x96, 0x97,
	0x98, 0x99, 0x9a, 0x9b, 0x9c, 0x9d, 0x9e, 0x9f,
	0xa0, '¡', '¢', '£', '¤', '¥', '¦', '§',
	'¨', '©', 'ª', '«', '¬', 0xad, '®', '¯',
	'°', '±', '²', '³', '´', 'µ', '¶', '·',
	'¸', '¹', 'º', '»', '¼', '½', '¾', '¿',
	'À', 'Á', 'Â', 'Ã', 'Ä', 'Å', 'Æ', 'Ç',
	'È', 'É', 'Ê', 'Ë', 'Ì', 'Í', 'Î', 'Ï',
	'Ð', 'Ñ', 'Ò', 'Ó', 'Ô', 'Õ', 'Ö', '×',
	'Ø', 'Ù', 'Ú', 'Û', 'Ü', 'Ý', 'Þ', 'ß',
	'à', 'á', 'â', 'ã', 'ä', 'å', 'æ', 'ç',
	'è', 'é', 'ê', 'ë', 'ì', 'í', 'î', 'ï',
	'ð', 'ñ', 'ò', 'ó', 'ô', 'õ', 'ö', '÷',
	'ø', 'ù', 'ú', 'û', 'ü', 'ý', 'þ', 'ÿ',
}

var runeToByte = make(map[rune]byte, 256)

func init() {
	for b, r := range byteToRune {
		runeToByte[r] = byte(b)
	}
}

// IsRepresentable reports whether every character of text belongs to the
// gateway's single-byte repertoire. Invalid UTF-8 never is.
func IsRepresentable(text string) bool {
	for _, r := range text {
		if _, ok := runeToByte[r]; !ok {
			return false
		}
	}
	return true
}

type repertoireEncoder struct {
	transform.NopResetter
}

func (repertoireEncoder) Transform(dst, src []byte, atEOF bool) (nDst, nSrc int, err error) {
	for nSrc < len(src) {
		r, size := utf8.DecodeRune(src[nSrc:])
		if r == utf8.RuneError && size == 1 {
			if !atEOF && !utf8.FullRune(src[nSrc:]) {
				return nDst, nSrc, transform.ErrShortSrc
			}
			return nDst, nSrc, ErrNotRepresentable
		}
		b, ok := runeToByte[r]
		if !ok {
			return nDst, nSrc, ErrNotRepresentable
		}
		if nDst >= len(dst) {
			return nDst, nSrc, transform.ErrShortDst
		}
		dst[nDst] = b
		nDst++
		nSrc += size
	}
	return nDst, nSrc, nil
}

type repertoireDecoder struct {
	transform.NopResetter
}

func (repertoireDecoder) Transform(dst, src []byte, atEOF bool) (nDst, nSrc int, err error) {
	for nSrc < len(src) {
		r := byteToRune[src[nSrc]]
		if nDst+utf8.RuneLen(r) > len(dst) {
			return nDst, nSrc, transform.ErrShortDst
		}
		nDst += utf8.EncodeRune(dst[nDst:], r)
		nSrc++
	}
	return nDst, nSrc, nil
}

// NewEncoder returns a transformer from text to repertoire bytes. It fails
// with ErrNotRepresentable on the first character the repertoire lacks.
func NewEncoder() transform.Transformer {
	return repertoireEncoder{}
}

// NewDecoder returns a transformer from repertoire bytes to text. It is total:
// every byte value has a mapping.
func NewDecoder() transform.Transformer {
	return repertoireDecoder{}
}
