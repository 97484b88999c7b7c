package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"reflect"
	"unicode/utf8"

	"github.com/fatih/color"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	csi "github.com/danielgatis/go-csi"
)

// Output formats.
const (
	FormatList  = "list"
	FormatJSON  = "json"
	FormatPlain = "plain"
	FormatRaw   = "raw"
)

const stdinName = "-"

var (
	errRoundTrip = errors.New("round-trip mismatch")

	textKind = color.New(color.FgGreen).SprintFunc()
	csiKind  = color.New(color.FgYellow, color.Bold).SprintFunc()
)

type dumper struct {
	out    io.Writer
	format string
	detail csi.SnapshotDetail
	verify bool
}

func newDumper(out io.Writer, format, detail string, verify bool) (*dumper, error) {
	switch format {
	case FormatList, FormatJSON, FormatPlain, FormatRaw:
	default:
		return nil, errors.Errorf("unknown format %q", format)
	}

	d, err := csi.ParseSnapshotDetail(detail)
	if err != nil {
		return nil, err
	}

	return &dumper{
		out:    out,
		format: format,
		detail: d,
		verify: verify,
	}, nil
}

// readInput reads a whole file, or stdin when name is "-".
func readInput(stdin io.Reader, name string) ([]byte, error) {
	if name == stdinName {
		data, err := io.ReadAll(stdin)
		return data, errors.Wrap(err, "reading stdin")
	}

	data, err := os.ReadFile(name)
	return data, errors.Wrapf(err, "reading %s", name)
}

func (d *dumper) dump(name string, data []byte) error {
	values, err := csi.ParseBytes(data)
	if err != nil {
		return errors.Wrapf(err, "parsing %s", name)
	}

	log.WithFields(log.Fields{
		"input":  name,
		"bytes":  len(data),
		"values": len(values),
	}).Debug("parsed input")

	if d.verify {
		if err := verify(data, values); err != nil {
			log.WithField("input", name).WithError(err).Error("verification failed")
			return errors.Wrapf(err, "verifying %s", name)
		}
	}

	switch d.format {
	case FormatJSON:
		return d.writeJSON(data)
	case FormatPlain:
		_, err := io.WriteString(d.out, csi.Plain(values))
		return err
	case FormatRaw:
		_, err := csi.WriteTo(d.out, values)
		return err
	default:
		return d.writeList(values)
	}
}

func (d *dumper) writeList(values []csi.Value) error {
	for i, v := range values {
		var err error
		switch v := v.(type) {
		case csi.Text:
			_, err = fmt.Fprintf(d.out, "%4d %s %q width=%d\n", i, textKind("text"), string(v), csi.StringWidth(string(v)))
		case csi.CSI:
			var payload string
			if v.Code != nil {
				payload = v.Code.Payload()
			}
			_, err = fmt.Fprintf(d.out, "%4d %s  %q\n", i, csiKind("csi"), payload)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (d *dumper) writeJSON(data []byte) error {
	snap, err := csi.NewSnapshot(data, d.detail)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(d.out)
	enc.SetIndent("", "  ")
	return enc.Encode(snap)
}

// verify checks that values render back to data and that a second parse is stable.
// Inputs that are not valid UTF-8 only get the stability check: lossy decoding
// cannot reproduce them.
func verify(data []byte, values []csi.Value) error {
	rendered := csi.Render(values)

	if utf8.Valid(data) && rendered != string(data) {
		return errors.Wrapf(errRoundTrip, "rendered %d bytes, input has %d", len(rendered), len(data))
	}

	again, err := csi.Parse(rendered)
	if err != nil {
		return err
	}
	if !reflect.DeepEqual(again, values) {
		return errors.Wrap(errRoundTrip, "second parse differs")
	}
	return nil
}
