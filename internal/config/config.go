// Package config loads annotation options from a YAML file.
package config

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/wippyai/dataflow-continuations/continuation"
	"github.com/wippyai/dataflow-continuations/errors"
)

// File is the on-disk form of continuation.Options.
//
//	mode: only necessary
//	include_control: false
//	workers: 4
type File struct {
	Mode           string `yaml:"mode"`
	IncludeControl bool   `yaml:"include_control"`
	Workers        int    `yaml:"workers"`
}

// Default returns the configuration matching continuation.DefaultOptions.
func Default() File {
	o := continuation.DefaultOptions()
	return File{
		Mode:           string(o.Mode),
		IncludeControl: o.IncludeControl,
		Workers:        o.Workers,
	}
}

// Load reads and validates the file at path. Keys missing from the file keep
// their default values.
func Load(path string) (File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return File{}, fmt.Errorf("read config: %w", err)
	}
	return Parse(data)
}

// Parse decodes a YAML document. Unknown keys are rejected.
func Parse(data []byte) (File, error) {
	f := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !stderrors.Is(err, io.EOF) {
		return File{}, errors.Wrap(errors.PhaseConfig, errors.KindInvalidData, err, "decode config")
	}
	if _, err := f.Options(); err != nil {
		return File{}, err
	}
	return f, nil
}

// Options converts f into validated annotation options.
func (f File) Options() (continuation.Options, error) {
	o := continuation.Options{
		Mode:           continuation.Mode(f.Mode),
		IncludeControl: f.IncludeControl,
		Workers:        f.Workers,
	}
	if err := o.Validate(); err != nil {
		return continuation.Options{}, err
	}
	return o, nil
}

// Write encodes f as YAML.
func Write(w io.Writer, f File) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(f); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return enc.Close()
}
