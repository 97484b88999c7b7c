package csi

import (
	"bytes"
	"errors"
	"fmt"
)

const (
	// ESC is the escape byte that starts every CSI sequence.
	ESC = 0x1b

	introducer = "\x1b["
)

// ErrIncomplete is reported when a scan cannot account for every input byte.
var ErrIncomplete = errors.New("csi: input not fully consumed")

// ParseError describes a failed scan. No tokens are returned alongside it.
type ParseError struct {
	// Offset is the first byte the scanner could not consume.
	Offset int
	Err    error
}

// Error reports the offset and the underlying cause.
func (e *ParseError) Error() string {
	return fmt.Sprintf("csi: parse failed at offset %d: %v", e.Offset, e.Err)
}

// Unwrap returns the cause, so errors.Is(err, ErrIncomplete) matches.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// IsParameterByte reports whether b is a CSI parameter byte (0x30-0x3F: digits, ";", "?", ...).
func IsParameterByte(b byte) bool {
	return b >= 0x30 && b <= 0x3f
}

// IsIntermediateByte reports whether b is a CSI intermediate byte (0x20-0x2F).
func IsIntermediateByte(b byte) bool {
	return b >= 0x20 && b <= 0x2f
}

// IsFinalByte reports whether b can terminate a CSI sequence (0x40-0x7E).
func IsFinalByte(b byte) bool {
	return b >= 0x40 && b <= 0x7e
}

// Tokenize splits data into text and CSI tokens.
//
// At every position the scanner tries, in order:
//  1. a complete CSI sequence (ESC [ params* intermediates* final);
//  2. a lone ESC byte, emitted as a one-byte text token;
//  3. the longest run of bytes up to the next ESC.
//
// A broken sequence therefore yields the ESC on its own and scanning resumes
// at the following byte. The returned tokens partition data: their spans are
// contiguous and cover it exactly. Empty input returns no tokens and no error.
func Tokenize(data []byte) ([]Token, error) {
	var tokens []Token

	pos := 0
	for pos < len(data) {
		tok, ok := matchCSI(data, pos)
		if !ok {
			tok = matchText(data, pos)
		}

		if tok.End <= pos {
			return nil, &ParseError{Offset: pos, Err: ErrIncomplete}
		}

		tokens = append(tokens, tok)
		pos = tok.End
	}

	if pos != len(data) {
		return nil, &ParseError{Offset: pos, Err: ErrIncomplete}
	}

	return tokens, nil
}

// matchCSI matches a complete CSI sequence starting at pos.
func matchCSI(data []byte, pos int) (Token, bool) {
	if !bytes.HasPrefix(data[pos:], []byte(introducer)) {
		return Token{}, false
	}

	i := pos + len(introducer)

	paramStart := i
	for i < len(data) && IsParameterByte(data[i]) {
		i++
	}
	paramEnd := i

	for i < len(data) && IsIntermediateByte(data[i]) {
		i++
	}
	interEnd := i

	if i >= len(data) || !IsFinalByte(data[i]) {
		return Token{}, false
	}

	return Token{
		Kind:          TokenCSI,
		Pos:           pos,
		End:           i + 1,
		Params:        clone(data[paramStart:paramEnd]),
		Intermediates: clone(data[paramEnd:interEnd]),
		Final:         data[i],
	}, true
}

// matchText matches a lone ESC or the run of non-ESC bytes at pos.
func matchText(data []byte, pos int) Token {
	end := pos + 1
	if data[pos] != ESC {
		if n := bytes.IndexByte(data[pos:], ESC); n >= 0 {
			end = pos + n
		} else {
			end = len(data)
		}
	}

	return Token{
		Kind: TokenText,
		Pos:  pos,
		End:  end,
		Text: data[pos:end:end],
	}
}

func clone(b []byte) []byte {
	if len(b) == 0 {
		return nil
	}
	return bytes.Clone(b)
}
