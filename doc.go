// Package csi splits text containing ANSI CSI escape sequences into a lossless
// stream of typed values.
//
// The package is a lexer, not a terminal emulator: it recognizes the structure
// of a Control Sequence Introducer sequence (parameter bytes, intermediate bytes,
// final byte) without interpreting what the sequence does. Everything it does
// not recognize stays text, so the original input can always be rebuilt.
//
// # Quick Start
//
//	values, err := csi.Parse("Hello \x1b[32mworld\x1b[0m")
//	if err != nil {
//	    return err
//	}
//	// [Text("Hello ") CSI(32m) Text("world") CSI(0m)]
//
//	fmt.Println(csi.Render(values) == "Hello \x1b[32mworld\x1b[0m") // true
//	fmt.Println(csi.Plain(values))                                  // "Hello world"
//	fmt.Println(csi.Width(values))                                  // 11
//
// # Grammar
//
// A CSI sequence is ESC [ followed by any number of parameter bytes (0x30-0x3F),
// then any number of intermediate bytes (0x20-0x2F), then exactly one final byte
// (0x40-0x7E). At each position of the input the tokenizer tries, in order:
//
//   - a complete CSI sequence
//   - a lone ESC byte, emitted as one byte of text
//   - the longest run of bytes up to the next ESC
//
// A broken sequence such as "\x1b[%0" therefore yields the ESC on its own, and
// scanning resumes right after it: "[%0" becomes ordinary text.
//
// # Values
//
// [Parse] returns a slice of [Value], which is either [Text] or [CSI]. A CSI
// holds a [CSIValue]; currently every sequence decodes to [Unknown], which
// keeps the raw payload:
//
//	for _, v := range values {
//	    switch v := v.(type) {
//	    case csi.Text:
//	        fmt.Printf("text %q\n", string(v))
//	    case csi.CSI:
//	        fmt.Printf("csi  %q\n", v.Code.Payload())
//	    }
//	}
//
// Every value implements [fmt.Stringer]; String renders it back to the exact
// bytes it came from. Text is decoded from bytes lossily, so the round-trip is
// exact only for valid UTF-8 input.
//
// # Tokens
//
// [Tokenize] exposes the lower level: a [Token] per span, with byte offsets into
// the input. The tokens always partition the input.
//
// # Snapshots
//
// [NewSnapshot] captures a parse as a JSON-friendly structure at three levels of
// detail ([SnapshotDetailText], [SnapshotDetailValues], [SnapshotDetailFull]).
//
// # Thread Safety
//
// All functions are pure and keep no state between calls; they are safe for
// concurrent use.
package csi
