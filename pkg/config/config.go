// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package config

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 🔤 RenameRule is an unvalidated file name transform
type RenameRule struct {
	Name     string `json:"name,omitempty" yaml:"name,omitempty" toml:"name,omitempty" hcl:"name,label"`
	Pattern  string `json:"pattern" yaml:"pattern" toml:"pattern" hcl:"pattern"`
	Template string `json:"template" yaml:"template" toml:"template" hcl:"template"`
	Sample   string `json:"sample" yaml:"sample" toml:"sample" hcl:"sample"`
}

// 🔄 ReplaceRule is an unvalidated content transform
type ReplaceRule struct {
	Name   string `json:"name,omitempty" yaml:"name,omitempty" toml:"name,omitempty" hcl:"name,label"`
	Search string `json:"search" yaml:"search" toml:"search" hcl:"search"`
	With   string `json:"with" yaml:"with" toml:"with" hcl:"with"`
}

// 📚 Config is everything a run can be configured with, before validation
type Config struct {
	ProjectTypes []string      `json:"project_types,omitempty" yaml:"project_types,omitempty" toml:"project_types,omitempty" hcl:"project_types,optional"`
	Ignore       []string      `json:"ignore,omitempty" yaml:"ignore,omitempty" toml:"ignore,omitempty" hcl:"ignore,optional"`
	Strict       bool          `json:"strict,omitempty" yaml:"strict,omitempty" toml:"strict,omitempty" hcl:"strict,optional"`
	Renames      []RenameRule  `json:"renames,omitempty" yaml:"renames,omitempty" toml:"renames,omitempty" hcl:"rename,block"`
	Replaces     []ReplaceRule `json:"replaces,omitempty" yaml:"replaces,omitempty" toml:"replaces,omitempty" hcl:"replace,block"`

	location string
}

// Location is the file the config was loaded from, empty for flags.
func (cfg *Config) Location() string {
	return cfg.location
}

// 🔀 Merge appends the rules of other after the rules of cfg. Project types
// of other replace those of cfg when set.
func (cfg *Config) Merge(other *Config) {
	if other == nil {
		return
	}
	if len(other.ProjectTypes) > 0 {
		cfg.ProjectTypes = append([]string(nil), other.ProjectTypes...)
	}
	cfg.Ignore = append(cfg.Ignore, other.Ignore...)
	cfg.Renames = append(cfg.Renames, other.Renames...)
	cfg.Replaces = append(cfg.Replaces, other.Replaces...)
	cfg.Strict = cfg.Strict || other.Strict
}

// 🔌 Parser is the interface for config file parsers
type Parser interface {
	// 📝 Parse parses the config from bytes
	Parse(ctx context.Context, data []byte, filename string) (*Config, error)

	// 🔍 CanParse checks if this parser can handle the given file
	CanParse(filename string) bool
}

// 🗺️ parsers is a list of available parsers
var parsers []Parser

// 📝 Register registers a parser
func Register(p Parser) {
	parsers = append(parsers, p)
}

// 🎯 GetParser returns a parser that can handle the given file
func GetParser(filename string) Parser {
	for _, p := range parsers {
		if p.CanParse(filename) {
			return p
		}
	}
	return nil
}

// 🎯 Load loads a config file
func Load(ctx context.Context, path string) (*Config, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("path", path).Msg("loading configuration")

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading config file: %w", err)
	}

	p := GetParser(path)
	if p == nil {
		return nil, errors.Errorf("no parser found for file: %s", path)
	}

	cfg, err := p.Parse(ctx, data, path)
	if err != nil {
		return nil, errors.Errorf("parsing config: %w", err)
	}
	cfg.location = path

	logger.Debug().
		Int("renames", len(cfg.Renames)).
		Int("replaces", len(cfg.Replaces)).
		Strs("project_types", cfg.ProjectTypes).
		Msg("loaded configuration")

	return cfg, nil
}

func hasExt(filename string, exts ...string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	for _, e := range exts {
		if ext == e {
			return true
		}
	}
	return false
}
