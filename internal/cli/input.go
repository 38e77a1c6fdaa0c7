package cli

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"

	"github.com/roach88/neoschema/internal/compiler"
	"github.com/roach88/neoschema/internal/config"
	"github.com/roach88/neoschema/internal/ir"
)

// SchemaErrorDetails is the JSON detail payload of a schema error.
type SchemaErrorDetails struct {
	Location string `json:"location,omitempty"`
	Line     int    `json:"line,omitempty"`
}

// loadedSchema is a parsed and validated type definition file.
type loadedSchema struct {
	Path  string
	SDL   string
	Hash  string
	Model *ir.Model
}

// loadSchema reads and builds the schema at path. Failures are reported
// through formatter and returned as ExitErrors.
func loadSchema(formatter *OutputFormatter, path string) (*loadedSchema, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, formatter.Fail(ExitCommandError, ErrCodeNotFound, fmt.Sprintf("schema file not found: %s", path), nil)
	}
	if err != nil {
		return nil, formatter.Fail(ExitCommandError, ErrCodeGeneric, fmt.Sprintf("read schema: %v", err), nil)
	}

	sdl := string(data)
	formatter.VerboseLog("Parsing %s (%d bytes)", path, len(data))
	model, err := compiler.Compile(path, sdl)
	if err != nil {
		var schemaErr *compiler.SchemaError
		if errors.As(err, &schemaErr) {
			return nil, formatter.Fail(ExitCommandError, schemaErr.Code, schemaErr.Message, SchemaErrorDetails{
				Location: schemaErr.Location(),
				Line:     schemaErr.Line,
			})
		}
		return nil, formatter.Fail(ExitCommandError, ErrCodeGeneric, err.Error(), nil)
	}

	slog.Debug("schema built", "path", path, "nodes", len(model.Nodes), "relationships", len(model.Relationships))
	return &loadedSchema{
		Path:  path,
		SDL:   sdl,
		Hash:  ir.SchemaHash(sdl),
		Model: model,
	}, nil
}

// loadConfig reads --config, or ./neoschema.cue when present, falling
// back to defaults.
func loadConfig(formatter *OutputFormatter, opts *RootOptions) (config.Config, error) {
	var (
		cfg config.Config
		err error
	)
	if opts.ConfigPath != "" {
		cfg, err = config.Load(opts.ConfigPath)
	} else {
		cfg, err = config.LoadOptional(config.DefaultFile)
	}
	if err != nil {
		var loadErr *config.LoadError
		if errors.As(err, &loadErr) {
			return config.Config{}, formatter.Fail(ExitCommandError, ErrCodeConfig, loadErr.Error(), nil)
		}
		if errors.Is(err, fs.ErrNotExist) {
			return config.Config{}, formatter.Fail(ExitCommandError, ErrCodeNotFound, fmt.Sprintf("config file not found: %s", opts.ConfigPath), nil)
		}
		return config.Config{}, formatter.Fail(ExitCommandError, ErrCodeConfig, err.Error(), nil)
	}
	slog.Debug("config loaded", "enableRegex", cfg.EnableRegex, "aggregate", cfg.Aggregate, "eventVariableSuffix", cfg.EventVariableSuffix)
	return cfg, nil
}

func newFormatter(opts *RootOptions, stdout, stderr io.Writer) *OutputFormatter {
	return &OutputFormatter{
		Format:    opts.Format,
		Writer:    stdout,
		ErrWriter: stderr, // Verbose logs go to stderr to avoid corrupting JSON
		Verbose:   opts.Verbose,
	}
}
