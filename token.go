package csi

import "fmt"

// TokenKind identifies what a Token represents.
type TokenKind uint8

const (
	// TokenText is a run of bytes outside any CSI sequence (or a lone ESC).
	TokenText TokenKind = iota
	// TokenCSI is a complete, structurally valid CSI sequence.
	TokenCSI
)

// String returns the lowercase kind name, "text" or "csi".
func (k TokenKind) String() string {
	switch k {
	case TokenText:
		return "text"
	case TokenCSI:
		return "csi"
	default:
		return fmt.Sprintf("TokenKind(%d)", k)
	}
}

// Token is one span of the input produced by Tokenize.
// Tokens are only valid while the input buffer they were produced from is alive:
// Text aliases the input, Params and Intermediates are copies.
type Token struct {
	Kind TokenKind

	// Pos and End are the byte offsets of the token's span in the input.
	Pos int
	End int

	// Text holds the raw bytes of a TokenText token.
	Text []byte

	// Params, Intermediates and Final describe a TokenCSI token, in source order.
	Params        []byte
	Intermediates []byte
	Final         byte
}

// Len returns the number of input bytes covered by the token.
func (t Token) Len() int {
	return t.End - t.Pos
}

// Payload returns the CSI payload: parameters, then intermediates, then the final byte.
// Returns nil for text tokens.
func (t Token) Payload() []byte {
	if t.Kind != TokenCSI {
		return nil
	}
	p := make([]byte, 0, len(t.Params)+len(t.Intermediates)+1)
	p = append(p, t.Params...)
	p = append(p, t.Intermediates...)
	return append(p, t.Final)
}

// Bytes returns the exact input bytes the token was scanned from.
func (t Token) Bytes() []byte {
	if t.Kind != TokenCSI {
		return t.Text
	}
	return append([]byte(introducer), t.Payload()...)
}

// String formats the token for debugging, e.g. Text("a") or CSI("1", "", 'm').
func (t Token) String() string {
	if t.Kind == TokenCSI {
		return fmt.Sprintf("CSI(%q, %q, %q)", t.Params, t.Intermediates, t.Final)
	}
	return fmt.Sprintf("Text(%q)", t.Text)
}
