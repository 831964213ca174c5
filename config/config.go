// SPDX-License-Identifier: MIT

// Package config holds the settings of the matbench harness.
//
// Every field is described once, by struct tags: `default` is the built-in
// value, `yaml` the key in an optional config file, `env` the suffix of the
// environment variable (MATBENCH_<env>) and, kebab-cased, the flag name.
// Later sources override earlier ones:
//
//	defaults → YAML file → environment → command-line flags
package config

import (
	"io"
	"log/slog"
	"math"
	"os"
	"reflect"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/katalvlaran/matmul/matrix"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "MATBENCH"

// ErrInvalidConfig is returned by Validate.
var ErrInvalidConfig = errors.New("config: invalid value")

// Config holds the configuration for one harness run.
type Config struct {
	File          string `yaml:"-" env:"CONFIG" default:"" description:"YAML config file"`
	Size          int    `yaml:"size" env:"SIZE" default:"128" description:"Edge of the square operands"`
	BlockSize     int    `yaml:"block_size" env:"BLOCK_SIZE" default:"16" description:"Tile edge of the blocked multiplier"`
	Low           int    `yaml:"low" env:"LOW" default:"0" description:"Smallest generated value (inclusive)"`
	High          int    `yaml:"high" env:"HIGH" default:"10" description:"Generated values are below this"`
	Seed          int64  `yaml:"seed" env:"SEED" default:"0" description:"Generator seed (0 seeds from the clock)"`
	LeafSize      int    `yaml:"leaf_size" env:"LEAF_SIZE" default:"1" description:"Strassen direct-product cutoff (power of two)"`
	Pad           bool   `yaml:"pad" env:"PAD" default:"false" description:"Zero-pad non-power-of-two sizes for Strassen"`
	OverflowMode  string `yaml:"overflow" env:"OVERFLOW" default:"wrap" description:"Integer overflow policy (wrap, checked)"`
	Workers       int    `yaml:"workers" env:"WORKERS" default:"0" description:"Blocked multiplier workers (0 runs sequentially)"`
	ParallelDepth int    `yaml:"parallel_depth" env:"PARALLEL_DEPTH" default:"0" description:"Strassen levels whose products run concurrently"`
	Verify        bool   `yaml:"verify" env:"VERIFY" default:"true" description:"Cross-check the two products"`
	Repeat        int    `yaml:"repeat" env:"REPEAT" default:"1" description:"Measured runs per algorithm"`
	GC            bool   `yaml:"gc" env:"GC" default:"true" description:"Collect garbage before each measured run"`
	LogLevel      string `yaml:"log_level" env:"LOG_LEVEL" default:"info" description:"Logging level (debug, info, warn, error)"`
}

// Default returns a Config populated from the `default` tags only.
func Default() *Config {
	cfg := &Config{}
	if err := loadDefaults(cfg); err != nil {
		// tags are compile-time constants
		panic(errors.NewAssertionErrorWithWrappedErrf(err, "config: bad default tag"))
	}

	return cfg
}

// RegisterFlags defines one flag per field on fs, with the tag defaults.
// Load later reads back only the flags the user actually set.
func RegisterFlags(fs *pflag.FlagSet) {
	def := Default()
	v := reflect.ValueOf(def).Elem()
	t := v.Type()

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		name := flagName(field)
		desc := field.Tag.Get("description")

		switch field.Type.Kind() {
		case reflect.String:
			fs.String(name, v.Field(i).String(), desc)
		case reflect.Int:
			fs.Int(name, int(v.Field(i).Int()), desc)
		case reflect.Int64:
			fs.Int64(name, v.Field(i).Int(), desc)
		case reflect.Bool:
			fs.Bool(name, v.Field(i).Bool(), desc)
		}
	}
}

// Load resolves the configuration from all sources. fs may be nil, in
// which case flags are ignored. The config file is taken from --config,
// else from MATBENCH_CONFIG.
func Load(fs *pflag.FlagSet) (*Config, error) {
	cfg := Default()

	if err := loadEnvField(cfg, "File"); err != nil {
		return nil, errors.Wrap(err, "loading env vars")
	}
	if fs != nil && fs.Changed(flagName(fieldByName("File"))) {
		cfg.File = fs.Lookup(flagName(fieldByName("File"))).Value.String()
	}
	if cfg.File != "" {
		if err := loadFile(cfg, cfg.File); err != nil {
			return nil, errors.Wrapf(err, "loading config file %s", cfg.File)
		}
	}

	if err := loadEnv(cfg); err != nil {
		return nil, errors.Wrap(err, "loading env vars")
	}
	if fs != nil {
		if err := loadFlags(cfg, fs); err != nil {
			return nil, errors.Wrap(err, "loading flags")
		}
	}

	return cfg, nil
}

// loadDefaults loads default values from struct tags.
func loadDefaults(cfg *Config) error {
	v := reflect.ValueOf(cfg).Elem()
	t := v.Type()

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if defaultVal := field.Tag.Get("default"); defaultVal != "" {
			if err := setField(v.Field(i), defaultVal); err != nil {
				return errors.Wrapf(err, "setting default for %s", field.Name)
			}
		}
	}

	return nil
}

// loadFile decodes a YAML document over cfg. Unknown keys are rejected.
func loadFile(cfg *Config, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}

	return nil
}

// loadEnv loads configuration from environment variables.
func loadEnv(cfg *Config) error {
	t := reflect.TypeOf(cfg).Elem()
	for i := 0; i < t.NumField(); i++ {
		if err := loadEnvField(cfg, t.Field(i).Name); err != nil {
			return err
		}
	}

	return nil
}

func loadEnvField(cfg *Config, name string) error {
	field := fieldByName(name)
	envKey := field.Tag.Get("env")
	if envKey == "" {
		return nil
	}
	if val := os.Getenv(EnvPrefix + "_" + envKey); val != "" {
		if err := setField(reflect.ValueOf(cfg).Elem().FieldByName(name), val); err != nil {
			return errors.Wrapf(err, "setting env var for %s", field.Name)
		}
	}

	return nil
}

// loadFlags copies the flags set on the command line into cfg.
func loadFlags(cfg *Config, fs *pflag.FlagSet) error {
	v := reflect.ValueOf(cfg).Elem()
	t := v.Type()

	for i := 0; i < t.NumField(); i++ {
		name := flagName(t.Field(i))
		if !fs.Changed(name) {
			continue
		}
		if err := setField(v.Field(i), fs.Lookup(name).Value.String()); err != nil {
			return errors.Wrapf(err, "setting flag --%s", name)
		}
	}

	return nil
}

// setField sets a value on a struct field.
func setField(field reflect.Value, value string) error {
	switch field.Kind() {
	case reflect.String:
		field.SetString(value)
	case reflect.Int, reflect.Int64:
		i, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return err
		}
		field.SetInt(i)
	case reflect.Bool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return err
		}
		field.SetBool(b)
	default:
		return errors.Newf("unsupported type: %s", field.Kind())
	}

	return nil
}

func fieldByName(name string) reflect.StructField {
	f, ok := reflect.TypeOf(Config{}).FieldByName(name)
	if !ok {
		panic(errors.AssertionFailedf("config: no field %s", name))
	}

	return f
}

func flagName(field reflect.StructField) string {
	return kebabCase(field.Tag.Get("env"))
}

// kebabCase converts a string to kebab-case.
// Example: "SOME_VAR_NAME" -> "some-var-name"
func kebabCase(s string) string {
	return strings.ToLower(strings.ReplaceAll(s, "_", "-"))
}

// Validate reports the first setting that cannot drive a run.
func (c *Config) Validate() error {
	switch {
	case c.Size < 1:
		return errors.Wrapf(ErrInvalidConfig, "size=%d: must be >= 1", c.Size)
	case c.BlockSize < 1:
		return errors.Wrapf(ErrInvalidConfig, "block-size=%d: must be >= 1", c.BlockSize)
	case c.Low < math.MinInt32 || c.High > math.MaxInt32:
		return errors.Wrapf(ErrInvalidConfig, "[low, high)=[%d, %d): must fit in int32", c.Low, c.High)
	case c.High <= c.Low:
		return errors.Wrapf(ErrInvalidConfig, "[low, high)=[%d, %d): high must exceed low", c.Low, c.High)
	case !matrix.IsPowerOfTwo(c.LeafSize):
		return errors.Wrapf(ErrInvalidConfig, "leaf-size=%d: must be a power of two", c.LeafSize)
	case !c.Pad && !matrix.IsPowerOfTwo(c.Size):
		return errors.Wrapf(ErrInvalidConfig, "size=%d: Strassen needs a power of two (set --pad)", c.Size)
	case c.Workers < 0:
		return errors.Wrapf(ErrInvalidConfig, "workers=%d: must be >= 0", c.Workers)
	case c.ParallelDepth < 0:
		return errors.Wrapf(ErrInvalidConfig, "parallel-depth=%d: must be >= 0", c.ParallelDepth)
	case c.Repeat < 1:
		return errors.Wrapf(ErrInvalidConfig, "repeat=%d: must be >= 1", c.Repeat)
	}
	if _, err := matrix.ParseOverflow(c.OverflowMode); err != nil {
		return errors.Mark(errors.Wrap(err, "overflow"), ErrInvalidConfig)
	}
	if _, err := c.SlogLevel(); err != nil {
		return err
	}

	return nil
}

// Overflow returns the parsed overflow policy; Wrap if OverflowMode is
// invalid (Validate reports that case).
func (c *Config) Overflow() matrix.Overflow {
	o, _ := matrix.ParseOverflow(c.OverflowMode)

	return o
}

// SlogLevel parses LogLevel.
func (c *Config) SlogLevel() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, errors.Wrapf(ErrInvalidConfig, "log-level=%q", c.LogLevel)
	}

	return lvl, nil
}
