// Package config loads radin.toml. Keys use the Go field names, as in
//
//	[Parser]
//	Types = ["bool", "size_t"]
//	MaxDepth = 512
//
//	[Project]
//	Extensions = [".h", ".cx"]
//	Exclude = ["vendor/*"]
package config

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"reflect"

	"github.com/naoina/toml"
	"github.com/tliron/commonlog"

	"github.com/dhamidi/radin/cx/parser"
	"github.com/dhamidi/radin/project"
)

// DefaultFile is read from the working directory when no file is named.
const DefaultFile = "radin.toml"

var log = commonlog.GetLogger("radin.config")

var tomlSettings = toml.Config{
	NormFieldName: func(rt reflect.Type, key string) string {
		return key
	},
	FieldToKey: func(rt reflect.Type, field string) string {
		return field
	},
	MissingField: func(rt reflect.Type, field string) error {
		return fmt.Errorf("field '%s' is not defined in %s", field, rt.String())
	},
}

type ParserConfig struct {
	// Types are predeclared type names.
	Types    []string
	MaxDepth int
	Trace    bool `toml:",omitempty"`
}

type OutputConfig struct {
	// Format is one of text, json or table.
	Format string
	Color  bool
}

type Config struct {
	Parser  ParserConfig
	Output  OutputConfig
	Project project.Options
}

func Default() Config {
	return Config{
		Parser: ParserConfig{
			Types:    []string{"bool"},
			MaxDepth: parser.DefaultMaxDepth,
		},
		Output: OutputConfig{
			Format: "text",
			Color:  true,
		},
		Project: project.Options{
			Extensions: append([]string(nil), project.DefaultOptions.Extensions...),
		},
	}
}

// Load decodes file over cfg. Fields missing from the file keep their value.
func Load(file string, cfg *Config) error {
	f, err := os.Open(file)
	if err != nil {
		return err
	}
	defer f.Close()

	err = tomlSettings.NewDecoder(bufio.NewReader(f)).Decode(cfg)
	// Add file name to errors that have a line number.
	if _, ok := err.(*toml.LineError); ok {
		err = errors.New(file + ", " + err.Error())
	}
	return err
}

// LoadDefault returns the defaults overlaid with file. An empty file means
// DefaultFile. A missing file is an error only when it was named explicitly.
func LoadDefault(file string, explicit bool) (Config, error) {
	cfg := Default()
	if file == "" {
		file = DefaultFile
	}
	if err := Load(file, &cfg); err != nil {
		if errors.Is(err, os.ErrNotExist) && !explicit {
			log.Debugf("no %s, using defaults", file)
			return cfg, nil
		}
		return cfg, err
	}
	log.Infof("loaded configuration from %s", file)
	return cfg, nil
}

// Dump renders cfg in the form Load reads.
func Dump(cfg *Config) ([]byte, error) {
	return tomlSettings.Marshal(cfg)
}

// ParserOptions turns the parser section into parser options.
func (c *Config) ParserOptions() []parser.Option {
	opts := []parser.Option{
		parser.WithTypeNames(c.Parser.Types...),
		parser.WithMaxDepth(c.Parser.MaxDepth),
	}
	if c.Parser.Trace {
		opts = append(opts, parser.WithTrace(os.Stderr))
	}
	return opts
}
