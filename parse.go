package csi

import (
	"io"
	"strings"
)

// Parse tokenizes s and lifts every token into a Value.
// The result is all or nothing: on error no values are returned.
func Parse(s string) ([]Value, error) {
	return ParseBytes([]byte(s))
}

// ParseBytes is like Parse but takes a byte buffer.
// The returned values do not reference data.
func ParseBytes(data []byte) ([]Value, error) {
	tokens, err := Tokenize(data)
	if err != nil {
		return nil, err
	}

	values := make([]Value, len(tokens))
	for i, tok := range tokens {
		values[i] = FromToken(tok)
	}
	return values, nil
}

// Render concatenates the rendered form of each value.
// For valid UTF-8 input, Render(Parse(s)) == s.
func Render(values []Value) string {
	var sb strings.Builder
	for _, v := range values {
		sb.WriteString(v.String())
	}
	return sb.String()
}

// WriteTo writes the rendered values to w and returns the number of bytes written.
func WriteTo(w io.Writer, values []Value) (int64, error) {
	var total int64
	for _, v := range values {
		n, err := io.WriteString(w, v.String())
		total += int64(n)
		if err != nil {
			return total, err
		}
	}
	return total, nil
}
