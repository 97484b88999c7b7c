package csi

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestByteClasses(t *testing.T) {
	tests := []struct {
		b            byte
		parameter    bool
		intermediate bool
		final        bool
	}{
		{'0', true, false, false},
		{'9', true, false, false},
		{';', true, false, false},
		{'?', true, false, false},
		{'!', false, true, false},
		{'/', false, true, false},
		{'+', false, true, false},
		{' ', false, true, false},
		{'@', false, false, true},
		{'m', false, false, true},
		{'~', false, false, true},
		{0x1f, false, false, false},
		{0x7f, false, false, false},
		{0x1b, false, false, false},
		{0xc3, false, false, false},
	}

	for _, tt := range tests {
		if got := IsParameterByte(tt.b); got != tt.parameter {
			t.Errorf("IsParameterByte(%q) = %v, want %v", tt.b, got, tt.parameter)
		}
		if got := IsIntermediateByte(tt.b); got != tt.intermediate {
			t.Errorf("IsIntermediateByte(%q) = %v, want %v", tt.b, got, tt.intermediate)
		}
		if got := IsFinalByte(tt.b); got != tt.final {
			t.Errorf("IsFinalByte(%q) = %v, want %v", tt.b, got, tt.final)
		}
	}
}

func TestMatchCSI(t *testing.T) {
	tests := []struct {
		in            string
		ok            bool
		params        string
		intermediates string
		final         byte
		end           int
	}{
		{"\x1b[2A", true, "2", "", 'A', 4},
		{"\x1b[m", true, "", "", 'm', 3},
		{"\x1b[?!~", true, "?", "!", '~', 5},
		{"\x1b[1;2 q rest", true, "1;2", " ", 'q', 7},
		{"\x1b[?25h\x1b[0m", true, "?25", "", 'h', 6},
		{"\x1b[", false, "", "", 0, 0},
		{"\x1b[32", false, "", "", 0, 0},
		{"\x1b[%0", false, "", "", 0, 0},
		{"\x1b[3\x1b[0m", false, "", "", 0, 0},
		{"\x1b]0;title\x07", false, "", "", 0, 0},
		{"[32m", false, "", "", 0, 0},
	}

	for _, tt := range tests {
		tok, ok := matchCSI([]byte(tt.in), 0)
		if ok != tt.ok {
			t.Errorf("matchCSI(%q) ok = %v, want %v", tt.in, ok, tt.ok)
			continue
		}
		if !ok {
			continue
		}
		if string(tok.Params) != tt.params {
			t.Errorf("matchCSI(%q) params = %q, want %q", tt.in, tok.Params, tt.params)
		}
		if string(tok.Intermediates) != tt.intermediates {
			t.Errorf("matchCSI(%q) intermediates = %q, want %q", tt.in, tok.Intermediates, tt.intermediates)
		}
		if tok.Final != tt.final {
			t.Errorf("matchCSI(%q) final = %q, want %q", tt.in, tok.Final, tt.final)
		}
		if tok.End != tt.end {
			t.Errorf("matchCSI(%q) end = %d, want %d", tt.in, tok.End, tt.end)
		}
	}
}

func text(s string) Token {
	return Token{Kind: TokenText, Text: []byte(s)}
}

func csiTok(params, intermediates string, final byte) Token {
	return Token{Kind: TokenCSI, Params: []byte(params), Intermediates: []byte(intermediates), Final: final}
}

// sameToken compares kind and content, ignoring spans.
func sameToken(a, b Token) bool {
	return a.Kind == b.Kind &&
		bytes.Equal(a.Text, b.Text) &&
		bytes.Equal(a.Params, b.Params) &&
		bytes.Equal(a.Intermediates, b.Intermediates) &&
		a.Final == b.Final
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []Token
	}{
		{
			name: "empty",
			in:   "",
			want: nil,
		},
		{
			name: "plain text",
			in:   "Hello world",
			want: []Token{text("Hello world")},
		},
		{
			name: "csi inside text",
			in:   "Hello \x1b[32mworld\x1b[0m",
			want: []Token{
				text("Hello "),
				csiTok("32", "", 'm'),
				text("world"),
				csiTok("0", "", 'm'),
			},
		},
		{
			name: "unknown csi",
			in:   "This is an unknown CSI token: \x1b[?!~",
			want: []Token{
				text("This is an unknown CSI token: "),
				csiTok("?", "!", '~'),
			},
		},
		{
			name: "partial csi",
			in:   "\"\x1b[%0\" is not a valid CSI",
			want: []Token{
				text("\""),
				text("\x1b"),
				text("[%0\" is not a valid CSI"),
			},
		},
		{
			name: "two escapes",
			in:   "\x1b\x1b!",
			want: []Token{text("\x1b"), text("\x1b"), text("!")},
		},
		{
			name: "stray escape between csi",
			in:   "\x1b[32m\x1b\x1b[0m",
			want: []Token{
				csiTok("32", "", 'm'),
				text("\x1b"),
				csiTok("0", "", 'm'),
			},
		},
		{
			name: "truncated at end",
			in:   "ok\x1b[12",
			want: []Token{text("ok"), text("\x1b"), text("[12")},
		},
		{
			name: "introducer then control byte",
			in:   "\x1b[\nx",
			want: []Token{text("\x1b"), text("[\nx")},
		},
		{
			name: "broken csi followed by valid csi",
			in:   "\x1b[3\x1b[1mB",
			want: []Token{
				text("\x1b"),
				text("[3"),
				csiTok("1", "", 'm'),
				text("B"),
			},
		},
		{
			name: "utf8 passes through",
			in:   "héllo \x1b[1m世界",
			want: []Token{text("héllo "), csiTok("1", "", 'm'), text("世界")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Tokenize([]byte(tt.in))
			if err != nil {
				t.Fatalf("Tokenize(%q) error = %v", tt.in, err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("Tokenize(%q) = %v, want %v", tt.in, got, tt.want)
			}
			for i := range tt.want {
				if !sameToken(got[i], tt.want[i]) {
					t.Errorf("Tokenize(%q)[%d] = %v, want %v", tt.in, i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestTokenizePartition(t *testing.T) {
	inputs := []string{
		"",
		"plain",
		"\x1b",
		"\x1b[",
		"\x1b[0m",
		"a\x1b[1;31mb\x1b\x1b[%0c\x1b[?1049h\x1b[ q",
		"\x1b\x1b\x1b[[[\x1b[2J",
		"\xff\xfe\x1b[0m\xc3",
	}

	for _, in := range inputs {
		data := []byte(in)
		tokens, err := Tokenize(data)
		if err != nil {
			t.Errorf("Tokenize(%q) error = %v", in, err)
			continue
		}

		pos := 0
		var rebuilt []byte
		for i, tok := range tokens {
			if tok.Pos != pos {
				t.Errorf("Tokenize(%q)[%d].Pos = %d, want %d", in, i, tok.Pos, pos)
			}
			if tok.Len() <= 0 {
				t.Errorf("Tokenize(%q)[%d] is empty", in, i)
			}
			if !bytes.Equal(tok.Bytes(), data[tok.Pos:tok.End]) {
				t.Errorf("Tokenize(%q)[%d].Bytes() = %q, want %q", in, i, tok.Bytes(), data[tok.Pos:tok.End])
			}
			rebuilt = append(rebuilt, tok.Bytes()...)
			pos = tok.End
		}

		if pos != len(data) {
			t.Errorf("Tokenize(%q) covered %d bytes, want %d", in, pos, len(data))
		}
		if !bytes.Equal(rebuilt, data) {
			t.Errorf("Tokenize(%q) rebuilt %q", in, rebuilt)
		}
	}
}

func TestTokenizeLoneEscapeNotMerged(t *testing.T) {
	tokens, err := Tokenize([]byte("abc\x1bdef"))
	if err != nil {
		t.Fatalf("Tokenize() error = %v", err)
	}

	want := []string{"abc", "\x1b", "def"}
	if len(tokens) != len(want) {
		t.Fatalf("len(tokens) = %d, want %d", len(tokens), len(want))
	}
	for i, w := range want {
		if tokens[i].Kind != TokenText || string(tokens[i].Text) != w {
			t.Errorf("tokens[%d] = %v, want Text(%q)", i, tokens[i], w)
		}
	}
}

func TestTokenPayload(t *testing.T) {
	tok := csiTok("1;2", " ", 'q')
	if got := string(tok.Payload()); got != "1;2 q" {
		t.Errorf("Payload() = %q, want %q", got, "1;2 q")
	}
	if got := string(tok.Bytes()); got != "\x1b[1;2 q" {
		t.Errorf("Bytes() = %q, want %q", got, "\x1b[1;2 q")
	}
	if got := text("x").Payload(); got != nil {
		t.Errorf("text Payload() = %q, want nil", got)
	}
}

func TestTokenKindString(t *testing.T) {
	tests := []struct {
		k    TokenKind
		want string
	}{
		{TokenText, "text"},
		{TokenCSI, "csi"},
		{TokenKind(9), "TokenKind(9)"},
	}

	for _, tt := range tests {
		if got := tt.k.String(); got != tt.want {
			t.Errorf("TokenKind(%d).String() = %q, want %q", tt.k, got, tt.want)
		}
	}
}

func TestTokenizeLargeInput(t *testing.T) {
	in := strings.Repeat("x\x1b[1;32my\x1b", 1000)

	tokens, err := Tokenize([]byte(in))
	if err != nil {
		t.Fatalf("Tokenize() error = %v", err)
	}
	// Each repetition yields "x", CSI, "y", lone ESC.
	if len(tokens) != 4000 {
		t.Errorf("len(tokens) = %d, want 4000", len(tokens))
	}
}

func TestParseErrorUnwrap(t *testing.T) {
	var err error = &ParseError{Offset: 3, Err: ErrIncomplete}

	if !errors.Is(err, ErrIncomplete) {
		t.Errorf("errors.Is(%v, ErrIncomplete) = false, want true", err)
	}

	var pe *ParseError
	if !errors.As(err, &pe) || pe.Offset != 3 {
		t.Errorf("errors.As(%v) offset = %v, want 3", err, pe)
	}
	if !strings.Contains(err.Error(), "offset 3") {
		t.Errorf("Error() = %q, want it to mention the offset", err.Error())
	}
}

func TestTokenString(t *testing.T) {
	if got, want := text("a").String(), `Text("a")`; got != want {
		t.Errorf("text String() = %s, want %s", got, want)
	}

	tok := Token{Kind: TokenCSI, Params: []byte("1"), Final: 'm'}
	if got, want := tok.String(), `CSI("1", "", 'm')`; got != want {
		t.Errorf("csi String() = %s, want %s", got, want)
	}
}
