package csi

import (
	"fmt"
	"unicode/utf8"
)

// Value is an owned, immutable element of a parsed stream: either Text or CSI.
// String renders the value back to the text it was parsed from.
type Value interface {
	fmt.Stringer
	isValue()
}

// CSIValue is the decoded form of a CSI sequence.
// Unknown is the only variant; recognized control functions get their own variants.
type CSIValue interface {
	fmt.Stringer
	// Payload returns the parameter, intermediate and final bytes, without the introducer.
	Payload() string
	isCSIValue()
}

// Text is plain text between CSI sequences.
// A lone ESC that does not start a valid sequence is also Text.
type Text string

func (Text) isValue() {}

// String returns the text verbatim.
func (t Text) String() string {
	return string(t)
}

// CSI wraps a control sequence.
// Code is required: a CSI with a nil Code renders as the bare introducer and
// does not survive a round-trip.
type CSI struct {
	Code CSIValue
}

func (CSI) isValue() {}

// String renders the sequence as ESC [ followed by its payload.
func (c CSI) String() string {
	if c.Code == nil {
		return introducer
	}
	return c.Code.String()
}

// Unknown is a CSI sequence kept verbatim as its raw payload, e.g. "32m" for ESC [ 3 2 m.
type Unknown string

func (Unknown) isCSIValue() {}

// Payload returns the raw parameter, intermediate and final bytes.
func (u Unknown) Payload() string {
	return string(u)
}

// String renders the sequence as ESC [ followed by the payload.
func (u Unknown) String() string {
	return introducer + string(u)
}

// NewUnknown builds an Unknown from the parts of a CSI sequence, in source order.
func NewUnknown(params, intermediates []byte, final byte) Unknown {
	b := make([]byte, 0, len(params)+len(intermediates)+1)
	b = append(b, params...)
	b = append(b, intermediates...)
	b = append(b, final)
	return Unknown(b)
}

// FromToken lifts a token into a Value.
// Text bytes are decoded lossily: each maximal invalid UTF-8 subpart becomes one U+FFFD.
func FromToken(tok Token) Value {
	switch tok.Kind {
	case TokenCSI:
		return CSI{Code: NewUnknown(tok.Params, tok.Intermediates, tok.Final)}
	default:
		return Text(decodeLossy(tok.Text))
	}
}

func decodeLossy(b []byte) string {
	if utf8.Valid(b) {
		return string(b)
	}

	out := make([]byte, 0, len(b)+8)
	for len(b) > 0 {
		r, size := utf8.DecodeRune(b)
		if r == utf8.RuneError && size == 1 {
			size = invalidPrefixLen(b)
			out = utf8.AppendRune(out, utf8.RuneError)
		} else {
			out = append(out, b[:size]...)
		}
		b = b[size:]
	}
	return string(out)
}

// invalidPrefixLen returns the length of the maximal subpart of an ill-formed
// sequence at the start of p: the lead byte plus the continuation bytes that
// could still have completed it. It is at least 1.
func invalidPrefixLen(p []byte) int {
	var need int
	lo, hi := byte(0x80), byte(0xbf)

	switch c := p[0]; {
	case c >= 0xc2 && c <= 0xdf:
		need = 1
	case c == 0xe0:
		need, lo = 2, 0xa0
	case c == 0xed:
		need, hi = 2, 0x9f
	case c >= 0xe1 && c <= 0xef:
		need = 2
	case c == 0xf0:
		need, lo = 3, 0x90
	case c == 0xf4:
		need, hi = 3, 0x8f
	case c >= 0xf1 && c <= 0xf3:
		need = 3
	default:
		return 1
	}

	n := 1
	if n >= len(p) || p[n] < lo || p[n] > hi {
		return n
	}
	n++
	for n <= need && n < len(p) && p[n] >= 0x80 && p[n] <= 0xbf {
		n++
	}
	return n
}
