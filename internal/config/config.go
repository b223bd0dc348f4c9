package config

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"
	cueyaml "cuelang.org/go/encoding/yaml"
	"gopkg.in/yaml.v3"
)

// DefaultFile is the config file looked up in the working directory.
const DefaultFile = "spvbuild.yaml"

//go:embed schema.cue
var schemaCUE string

// File is the content of a config file. Unset fields are zero; Debug is a
// pointer so an explicit false is distinguishable from absence.
type File struct {
	Source            string   `yaml:"source,omitempty"`
	Destination       string   `yaml:"destination,omitempty"`
	Target            string   `yaml:"target,omitempty"`
	Toolchain         string   `yaml:"toolchain,omitempty"`
	Extensions        []string `yaml:"extensions,omitempty"`
	Capabilities      []string `yaml:"capabilities,omitempty"`
	UnknownCapability string   `yaml:"unknown_capability,omitempty"`
	Debug             *bool    `yaml:"debug,omitempty"`
	Cargo             string   `yaml:"cargo,omitempty"`
	CargoHome         string   `yaml:"cargo_home,omitempty"`
	CodegenBackend    string   `yaml:"codegen_backend,omitempty"`
	History           string   `yaml:"history,omitempty"`
}

// Error is a config file error, positioned when CUE reports one.
type Error struct {
	Path    string
	Message string
	Pos     token.Pos
}

func (e *Error) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s", e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(), e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}

// Find loads the explicit path when set; a missing explicit file is an
// error. Otherwise DefaultFile in dir is loaded if it exists. The returned
// path is empty when no file was loaded.
func Find(dir, explicit string) (*File, string, error) {
	if explicit != "" {
		f, err := Load(explicit)
		return f, explicit, err
	}
	path := filepath.Join(dir, DefaultFile)
	f, err := Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, "", nil
	}
	if err != nil {
		return nil, path, err
	}
	return f, path, nil
}

// Load reads and validates a config file.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Parse(path, data)
}

// Parse validates data against the schema and decodes it. filename is used
// in error positions.
func Parse(filename string, data []byte) (*File, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return &File{}, nil
	}
	if err := validate(filename, data); err != nil {
		return nil, err
	}

	var f File
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return &File{}, nil
		}
		return nil, &Error{Path: filename, Message: err.Error()}
	}
	return &f, nil
}

func validate(filename string, data []byte) error {
	ctx := cuecontext.New()
	schema := ctx.CompileString(schemaCUE, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return fmt.Errorf("compile config schema: %w", err)
	}

	file, err := cueyaml.Extract(filename, data)
	if err != nil {
		return positioned(filename, err)
	}
	value := ctx.BuildFile(file)
	if err := value.Err(); err != nil {
		return positioned(filename, err)
	}

	unified := schema.LookupPath(cue.ParsePath("#Config")).Unify(value)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return positioned(filename, err)
	}
	return nil
}

// positioned converts the first CUE error into an Error, preferring a
// position inside the config file over one in the schema.
func positioned(filename string, err error) error {
	errs := cueerrors.Errors(err)
	if len(errs) == 0 {
		return &Error{Path: filename, Message: err.Error()}
	}
	first := errs[0]
	out := &Error{Path: filename, Message: first.Error()}
	positions := cueerrors.Positions(first)
	for _, pos := range positions {
		if pos.Filename() == filename {
			out.Pos = pos
			return out
		}
	}
	if len(positions) > 0 {
		out.Pos = positions[0]
	}
	return out
}
