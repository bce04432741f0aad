package trace

import (
	"bufio"
	"fmt"
	"io"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Header is the first line of a JSON Lines trace.
type Header struct {
	RunID string `json:"run_id"`
	Seed  int64  `json:"seed"`
}

// JSONLWriter streams event records as JSON Lines, one object per line.
// Call Flush once the run is over.
type JSONLWriter struct {
	w   *bufio.Writer
	enc *jsoniter.Encoder
	err error
}

// NewJSONLWriter wraps w.
func NewJSONLWriter(w io.Writer) *JSONLWriter {
	bw := bufio.NewWriter(w)
	return &JSONLWriter{w: bw, enc: json.NewEncoder(bw)}
}

// WriteHeader writes the run header line.
func (jw *JSONLWriter) WriteHeader(h Header) error {
	return jw.write(h)
}

// RecordEvent writes one record. The first write error is kept and returned
// by every later call and by Flush.
func (jw *JSONLWriter) RecordEvent(record EventRecord) error {
	return jw.write(record)
}

func (jw *JSONLWriter) write(v any) error {
	if jw.err != nil {
		return jw.err
	}
	if err := jw.enc.Encode(v); err != nil {
		jw.err = fmt.Errorf("writing trace record: %w", err)
	}
	return jw.err
}

// Flush writes any buffered records to the underlying writer.
func (jw *JSONLWriter) Flush() error {
	if jw.err != nil {
		return jw.err
	}
	if err := jw.w.Flush(); err != nil {
		jw.err = fmt.Errorf("flushing trace: %w", err)
	}
	return jw.err
}

// ReadJSONL parses a trace written by JSONLWriter.
func ReadJSONL(r io.Reader) (Header, []EventRecord, error) {
	var h Header
	dec := json.NewDecoder(r)
	if err := dec.Decode(&h); err != nil {
		return h, nil, fmt.Errorf("reading trace header: %w", err)
	}
	records := make([]EventRecord, 0)
	for dec.More() {
		var rec EventRecord
		if err := dec.Decode(&rec); err != nil {
			return h, records, fmt.Errorf("reading trace record %d: %w", len(records), err)
		}
		records = append(records, rec)
	}
	return h, records, nil
}
