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
	"fmt"
	"strings"

	"gitlab.com/tozd/go/errors"
)

var (
	ErrConfiguration = errors.Base("invalid configuration")
	ErrPrecondition  = errors.Base("precondition failed")
)

// 🚫 ConfigError names the rule that did not compile
type ConfigError struct {
	Rule string
	Err  error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s: %s: %v", ErrConfiguration, e.Rule, e.Err)
}

func (e *ConfigError) Unwrap() []error {
	return []error{ErrConfiguration, e.Err}
}

func configError(rule string, err error) error {
	return errors.WithStack(&ConfigError{Rule: rule, Err: err})
}

// 📝 ParseRenameArg parses a --regex value of the form "pattern,template,sample"
func ParseRenameArg(arg string) (RenameRule, error) {
	parts := strings.Split(arg, ",")
	if len(parts) != 3 {
		return RenameRule{}, configError(fmt.Sprintf("--regex %q", arg),
			errors.Errorf("expected \"pattern,template,sample\", got %d parts", len(parts)))
	}
	return RenameRule{Pattern: parts[0], Template: parts[1], Sample: parts[2]}, nil
}

// 📝 ParseReplaceArg parses a --replace value of the form "search,replace"
func ParseReplaceArg(arg string) (ReplaceRule, error) {
	parts := strings.Split(arg, ",")
	if len(parts) != 2 {
		return ReplaceRule{}, configError(fmt.Sprintf("--replace %q", arg),
			errors.Errorf("expected \"search,replace\", got %d parts", len(parts)))
	}
	return ReplaceRule{Search: parts[0], With: parts[1]}, nil
}

// 🚩 Args holds the raw values of the rule flags
type Args struct {
	ProjectTypes []string
	Renames      []string
	Replaces     []string
	Ignore       []string
	Strict       bool
}

// FromArgs builds a Config out of command line values.
func FromArgs(args Args) (*Config, error) {
	cfg := &Config{
		ProjectTypes: args.ProjectTypes,
		Ignore:       args.Ignore,
		Strict:       args.Strict,
	}
	for _, arg := range args.Renames {
		rule, err := ParseRenameArg(arg)
		if err != nil {
			return nil, err
		}
		cfg.Renames = append(cfg.Renames, rule)
	}
	for _, arg := range args.Replaces {
		rule, err := ParseReplaceArg(arg)
		if err != nil {
			return nil, err
		}
		cfg.Replaces = append(cfg.Replaces, rule)
	}
	return cfg, nil
}
