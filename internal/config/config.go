// Package config loads neoschema.cue files.
//
// A config file is plain CUE unified with the embedded #Config definition,
// so unknown keys and ill-typed values are rejected with a position.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"
)

//go:embed schema.cue
var schemaCUE string

// DefaultFile is the file name looked up when --config is not given.
const DefaultFile = "neoschema.cue"

// Config controls augmentation and translation.
type Config struct {
	EnableRegex         bool   `json:"enableRegex"`
	Aggregate           bool   `json:"aggregate"`
	EventVariableSuffix string `json:"eventVariableSuffix"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		EnableRegex:         false,
		Aggregate:           true,
		EventVariableSuffix: "meta",
	}
}

// LoadError reports a config file that failed to parse or validate.
type LoadError struct {
	Message string
	Pos     token.Pos
}

func (e *LoadError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s", e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(), e.Message)
	}
	return e.Message
}

// Load reads and validates the config file at path.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	return LoadBytes(path, data)
}

// LoadOptional behaves like Load but returns Default when path does not
// exist.
func LoadOptional(path string) (Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Default(), nil
	}
	return Load(path)
}

// LoadBytes validates CUE source against #Config and decodes it. Fields
// left out take their defaults.
func LoadBytes(name string, data []byte) (Config, error) {
	ctx := cuecontext.New()

	schema := ctx.CompileString(schemaCUE, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return Config{}, fmt.Errorf("compile config schema: %w", err)
	}
	def := schema.LookupPath(cue.ParsePath("#Config"))

	v := ctx.CompileBytes(data, cue.Filename(name))
	if err := v.Err(); err != nil {
		return Config{}, formatCUEError(err)
	}

	unified := def.Unify(v)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return Config{}, formatCUEError(err)
	}

	var cfg Config
	if err := unified.Decode(&cfg); err != nil {
		return Config{}, formatCUEError(err)
	}
	return cfg, nil
}

// formatCUEError keeps the first error and its position.
func formatCUEError(err error) error {
	errs := errors.Errors(err)
	if len(errs) == 0 {
		return &LoadError{Message: err.Error()}
	}

	first := errs[0]
	lerr := &LoadError{Message: first.Error()}
	if positions := errors.Positions(first); len(positions) > 0 {
		lerr.Pos = positions[0]
	}
	return lerr
}
