package main

import (
	"encoding/json"
	"io"

	"github.com/jmgilman/go/errors"
	"github.com/jmgilman/go/issues/internal/config"
	"gopkg.in/yaml.v3"
)

// recordWriter writes one record per call: a YAML document or a JSON line.
type recordWriter struct {
	yaml *yaml.Encoder
	json *json.Encoder
}

func newRecordWriter(format string, w io.Writer) *recordWriter {
	if format == config.OutputJSON {
		return &recordWriter{json: json.NewEncoder(w)}
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	return &recordWriter{yaml: enc}
}

// Write encodes v as the next record.
func (r *recordWriter) Write(v any) error {
	var err error
	if r.json != nil {
		err = r.json.Encode(v)
	} else {
		err = r.yaml.Encode(v)
	}
	if err != nil {
		return errors.Wrap(err, errors.CodeInternal, "failed to write record")
	}
	return nil
}

// Close flushes a YAML stream. JSON output is unbuffered.
func (r *recordWriter) Close() error {
	if r.yaml == nil {
		return nil
	}
	if err := r.yaml.Close(); err != nil {
		return errors.Wrap(err, errors.CodeInternal, "failed to flush output")
	}
	return nil
}
