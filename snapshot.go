package csi

import "fmt"

// SnapshotDetail specifies the level of detail in a snapshot.
type SnapshotDetail string

const (
	// SnapshotDetailText returns plain text and its width only.
	SnapshotDetailText SnapshotDetail = "text"
	// SnapshotDetailValues adds the parsed value stream.
	SnapshotDetailValues SnapshotDetail = "values"
	// SnapshotDetailFull adds the raw tokens with their byte spans.
	SnapshotDetailFull SnapshotDetail = "full"
)

// ParseSnapshotDetail converts a detail name ("text", "values", "full") to a SnapshotDetail.
func ParseSnapshotDetail(s string) (SnapshotDetail, error) {
	switch d := SnapshotDetail(s); d {
	case SnapshotDetailText, SnapshotDetailValues, SnapshotDetailFull:
		return d, nil
	default:
		return "", fmt.Errorf("csi: unknown snapshot detail %q", s)
	}
}

// Snapshot is a JSON-friendly view of one parsed input.
type Snapshot struct {
	Size   int             `json:"size"`  // Input length in bytes
	Text   string          `json:"text"`  // Plain text, CSI sequences removed
	Width  int             `json:"width"` // Display width of Text
	Values []SnapshotValue `json:"values,omitempty"`
	Tokens []SnapshotToken `json:"tokens,omitempty"`
}

// SnapshotValue represents a single parsed value.
type SnapshotValue struct {
	Kind    string `json:"kind"` // "text" or "csi"
	Text    string `json:"text,omitempty"`
	Payload string `json:"payload,omitempty"`
}

// SnapshotToken represents a single token with its span in the input.
type SnapshotToken struct {
	Kind          string `json:"kind"`
	Pos           int    `json:"pos"`
	End           int    `json:"end"`
	Params        string `json:"params,omitempty"`
	Intermediates string `json:"intermediates,omitempty"`
	Final         string `json:"final,omitempty"`
	Raw           string `json:"raw"`
}

// NewSnapshot parses data and captures the result.
// The detail parameter controls how much information is included.
func NewSnapshot(data []byte, detail SnapshotDetail) (*Snapshot, error) {
	tokens, err := Tokenize(data)
	if err != nil {
		return nil, err
	}

	values := make([]Value, len(tokens))
	for i, tok := range tokens {
		values[i] = FromToken(tok)
	}

	text := Plain(values)
	snap := &Snapshot{
		Size:  len(data),
		Text:  text,
		Width: StringWidth(text),
	}

	switch detail {
	case SnapshotDetailText:
		// Just text, already set

	case SnapshotDetailValues:
		snap.Values = snapshotValues(values)

	case SnapshotDetailFull:
		snap.Values = snapshotValues(values)
		snap.Tokens = snapshotTokens(tokens)
	}

	return snap, nil
}

func snapshotValues(values []Value) []SnapshotValue {
	out := make([]SnapshotValue, 0, len(values))
	for _, v := range values {
		switch v := v.(type) {
		case Text:
			out = append(out, SnapshotValue{Kind: TokenText.String(), Text: string(v)})
		case CSI:
			sv := SnapshotValue{Kind: TokenCSI.String()}
			if v.Code != nil {
				sv.Payload = v.Code.Payload()
			}
			out = append(out, sv)
		}
	}
	return out
}

func snapshotTokens(tokens []Token) []SnapshotToken {
	out := make([]SnapshotToken, len(tokens))
	for i, tok := range tokens {
		st := SnapshotToken{
			Kind: tok.Kind.String(),
			Pos:  tok.Pos,
			End:  tok.End,
			Raw:  string(tok.Bytes()),
		}
		if tok.Kind == TokenCSI {
			st.Params = string(tok.Params)
			st.Intermediates = string(tok.Intermediates)
			st.Final = string(tok.Final)
		}
		out[i] = st
	}
	return out
}
