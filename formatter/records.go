package formatter

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"google.golang.org/protobuf/encoding/protodelim"
	"google.golang.org/protobuf/types/known/structpb"
)

// ErrUnknownFormat is returned by NewRecordWriter for unsupported formats.
var ErrUnknownFormat = errors.New("formatter: unknown format")

// RecordWriter writes records one at a time. Flush must be called once done.
type RecordWriter interface {
	WriteRecord(rec []string) error
	Flush() error
}

// NewRecordWriter returns a writer for format: "json" or "pb".
func NewRecordWriter(format string, w io.Writer) (RecordWriter, error) {
	switch format {
	case "json", "jsonl":
		return NewJSONLines(w), nil
	case "pb", "protobuf":
		return NewProtobuf(w), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}

// JSONLines writes each record as a JSON array on its own line.
type JSONLines struct {
	bw  *bufio.Writer
	enc *json.Encoder
}

// NewJSONLines returns a JSONLines writer buffering into w.
func NewJSONLines(w io.Writer) *JSONLines {
	bw := bufio.NewWriter(w)
	enc := json.NewEncoder(bw)
	enc.SetEscapeHTML(false)
	return &JSONLines{bw: bw, enc: enc}
}

// WriteRecord encodes rec as one line.
func (j *JSONLines) WriteRecord(rec []string) error {
	return j.enc.Encode(rec)
}

// Flush writes buffered lines to the underlying writer.
func (j *JSONLines) Flush() error {
	return j.bw.Flush()
}

// Protobuf writes each record as a google.protobuf.ListValue of strings,
// prefixed with its varint length.
type Protobuf struct {
	bw *bufio.Writer
	lv *structpb.ListValue
}

// NewProtobuf returns a Protobuf writer buffering into w.
func NewProtobuf(w io.Writer) *Protobuf {
	return &Protobuf{bw: bufio.NewWriter(w), lv: &structpb.ListValue{}}
}

// WriteRecord encodes rec as one length-delimited message.
func (p *Protobuf) WriteRecord(rec []string) error {
	values := p.lv.Values[:0]
	for _, f := range rec {
		values = append(values, structpb.NewStringValue(f))
	}
	p.lv.Values = values
	_, err := protodelim.MarshalTo(p.bw, p.lv)
	return err
}

// Flush writes buffered messages to the underlying writer.
func (p *Protobuf) Flush() error {
	return p.bw.Flush()
}

// ReadProtobufRecords decodes a stream written by Protobuf.
func ReadProtobufRecords(r io.Reader) ([][]string, error) {
	br := bufio.NewReader(r)
	var out [][]string
	for {
		lv := &structpb.ListValue{}
		if err := protodelim.UnmarshalFrom(br, lv); err != nil {
			if errors.Is(err, io.EOF) {
				return out, nil
			}
			return nil, err
		}
		rec := make([]string, len(lv.Values))
		for i, v := range lv.Values {
			rec[i] = v.GetStringValue()
		}
		out = append(out, rec)
	}
}
