// Package config reads and writes solver parameter files.
//
// A parameter file holds the same settings as the solve flags, in TOML or
// YAML chosen by file extension:
//
//	alg = "ils-2ex"
//	init = "greedy"
//	beta = 10000
//	seed = 42
//
//	[ils]
//	max_iters = 500
//	num_excludes = 2
//
// Keys missing from the file keep their current value, so a file is applied
// on top of [pipeline.DefaultOptions]. Unknown keys are rejected.
package config

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/mstcc/pkg/errors"
	"github.com/matzehuels/mstcc/pkg/pipeline"
)

// Format is a parameter file syntax.
type Format string

const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

// FormatOf returns the format implied by the extension of path.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", errors.New(errors.ErrCodeUnsupported, "config %s: unknown extension (want .toml, .yaml or .yml)", path)
	}
}

// Load applies the parameter file at path to opts and validates the result.
func Load(path string, opts *pipeline.Options) error {
	format, err := FormatOf(path)
	if err != nil {
		return err
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return errors.Wrap(errors.ErrCodeFileNotFound, err, "config %s", path)
	}
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "read config %s", path)
	}
	if err := Decode(bytes.NewReader(data), format, opts); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse config %s", path)
	}
	return opts.Validate()
}

// Decode applies a parameter document in the given format to opts.
func Decode(r io.Reader, format Format, opts *pipeline.Options) error {
	switch format {
	case FormatTOML:
		md, err := toml.NewDecoder(r).Decode(opts)
		if err != nil {
			return err
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return errors.New(errors.ErrCodeInvalidFormat, "unknown key %q", undecoded[0].String())
		}
		return nil
	case FormatYAML:
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		if err := dec.Decode(opts); err != nil && err != io.EOF {
			return err
		}
		return nil
	default:
		return errors.New(errors.ErrCodeUnsupported, "unknown config format %q", format)
	}
}

// Encode writes opts as a parameter document.
func Encode(w io.Writer, format Format, opts pipeline.Options) error {
	switch format {
	case FormatTOML:
		return toml.NewEncoder(w).Encode(opts)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(opts); err != nil {
			return err
		}
		return enc.Close()
	default:
		return errors.New(errors.ErrCodeUnsupported, "unknown config format %q", format)
	}
}
