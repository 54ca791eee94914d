// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

// Package config loads the query core's runtime configuration by
// layering, in increasing priority, a YAML file, environment
// variables, and CLI flags — the koanf stack the teacher's go.mod
// declares but never wires into a loader.
package config

import (
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/samber/oops"
	"github.com/spf13/pflag"
)

// Config is the fully resolved set of values searchquery needs at
// startup: where the store lives, the defaults Search applies when a
// caller omits them, and how the CLI logs.
type Config struct {
	StoreDSN         string `koanf:"store-dsn"`
	DefaultLimit     int    `koanf:"limit"`
	DefaultOffset    int    `koanf:"offset"`
	ExplainByDefault bool   `koanf:"explain"`
	MarkOpen         string `koanf:"mark-open"`
	MarkClose        string `koanf:"mark-close"`
	LogFormat        string `koanf:"log-format"`
}

// defaults returns the Config layered first, below the file, below
// the environment, below the flags.
func defaults() Config {
	return Config{
		DefaultLimit:  25,
		DefaultOffset: 0,
		MarkOpen:      "<b>",
		MarkClose:     "</b>",
		LogFormat:     "json",
	}
}

// envPrefix namespaces this tool's environment variables from every
// other SEARCHQUERY_-adjacent tool that might share a shell.
const envPrefix = "SEARCHQUERY_"

// envKoanfKeys maps the environment variable suffix (after envPrefix)
// to the koanf key it overrides. koanf has no providers/env entry in
// the dependency set this loader inherited, so envProvider below reads
// os.Environ() directly and feeds koanf.Provider the same way
// providers/file and providers/posflag do.
var envKoanfKeys = map[string]string{
	"STORE_DSN":   "store-dsn",
	"LIMIT":       "limit",
	"OFFSET":      "offset",
	"EXPLAIN":     "explain",
	"MARK_OPEN":   "mark-open",
	"MARK_CLOSE":  "mark-close",
	"LOG_FORMAT":  "log-format",
}

// envProvider adapts os.Environ() to koanf.Provider, the same shape
// providers/file and providers/posflag implement, so it can be loaded
// into the same koanf.Koanf instance with k.Load.
type envProvider struct {
	environ []string
}

// ReadBytes is unsupported for this provider; environment variables
// have no byte-stream representation to pass through a parser.
func (p envProvider) ReadBytes() ([]byte, error) {
	return nil, oops.Code("CONFIG_UNSUPPORTED").Errorf("envProvider does not support ReadBytes")
}

// Read implements koanf.Provider by scanning p.environ for recognized
// SEARCHQUERY_-prefixed variables and returning them keyed the way the
// Config struct's koanf tags expect.
func (p envProvider) Read() (map[string]interface{}, error) {
	out := make(map[string]interface{})
	for _, kv := range p.environ {
		name, value, found := strings.Cut(kv, "=")
		if !found || !strings.HasPrefix(name, envPrefix) {
			continue
		}
		key, ok := envKoanfKeys[strings.TrimPrefix(name, envPrefix)]
		if !ok {
			continue
		}
		out[key] = value
	}
	return out, nil
}

// Load builds a Config by layering defaults, an optional YAML file at
// yamlPath, SEARCHQUERY_*-prefixed environment variables, and flags
// (when non-nil), in that priority order.
func Load(yamlPath string, flags *pflag.FlagSet, environ []string) (*Config, error) {
	cfg := defaults()
	k := koanf.New(".")

	if yamlPath != "" {
		if err := k.Load(file.Provider(yamlPath), yaml.Parser()); err != nil {
			return nil, oops.Code("CONFIG_FILE_LOAD_FAILED").With("path", yamlPath).Wrap(err)
		}
	}

	if err := k.Load(envProvider{environ: environ}, nil); err != nil {
		return nil, oops.Code("CONFIG_ENV_LOAD_FAILED").Wrap(err)
	}

	if flags != nil {
		if err := k.Load(posflag.Provider(flags, ".", nil), nil); err != nil {
			return nil, oops.Code("CONFIG_FLAGS_LOAD_FAILED").Wrap(err)
		}
	}

	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, oops.Code("CONFIG_UNMARSHAL_FAILED").Wrap(err)
	}

	return &cfg, nil
}
