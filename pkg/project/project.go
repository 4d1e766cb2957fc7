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

// Package project maps project types to the folders monk never copies.
package project

import (
	"slices"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"gitlab.com/tozd/go/errors"
)

var (
	ErrUnknownType    = errors.Base("unknown project type")
	ErrInvalidPattern = errors.Base("invalid ignore pattern")
)

// 📦 Type names a kind of project whose metadata folders are excluded
type Type string

const (
	Git    Type = "GIT"
	Java   Type = "JAVA"
	Node   Type = "NODE"
	Go     Type = "GO"
	Python Type = "PYTHON"
	Idea   Type = "IDEA"
	VSCode Type = "VSCODE"
)

var foldersToExclude = map[Type][]string{
	Git:    {".git"},
	Java:   {"target"},
	Node:   {"node_modules"},
	Go:     {"vendor"},
	Python: {"__pycache__", ".venv"},
	Idea:   {".idea"},
	VSCode: {".vscode"},
}

// AllTypes returns every known type, sorted by name.
func AllTypes() []Type {
	types := make([]Type, 0, len(foldersToExclude))
	for t := range foldersToExclude {
		types = append(types, t)
	}
	slices.Sort(types)
	return types
}

// DefaultTypes is used when no type is configured.
func DefaultTypes() []Type {
	return []Type{Git, Java}
}

// 🔍 ParseType parses a type name, ignoring case
func ParseType(name string) (Type, error) {
	t := Type(strings.ToUpper(strings.TrimSpace(name)))
	if _, ok := foldersToExclude[t]; !ok {
		return "", errors.Errorf("%w %q (known: %s)", ErrUnknownType, name, joinTypes(AllTypes()))
	}
	return t, nil
}

// ParseTypes parses a list of names. Each entry may itself be a comma
// separated list, so "GIT,JAVA" and ["GIT", "JAVA"] are the same.
func ParseTypes(names []string) ([]Type, error) {
	var types []Type
	for _, entry := range names {
		for _, name := range strings.Split(entry, ",") {
			if strings.TrimSpace(name) == "" {
				continue
			}
			t, err := ParseType(name)
			if err != nil {
				return nil, err
			}
			if !slices.Contains(types, t) {
				types = append(types, t)
			}
		}
	}
	return types, nil
}

// FoldersToExclude returns the directory base names this type excludes.
func (t Type) FoldersToExclude() []string {
	return slices.Clone(foldersToExclude[t])
}

func joinTypes(types []Type) string {
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = string(t)
	}
	return strings.Join(names, ", ")
}

// 🚫 ExclusionSet is a set of directory base names skipped with their subtree
type ExclusionSet map[string]struct{}

// NewExclusionSet is the union of the folders excluded by types.
func NewExclusionSet(types ...Type) ExclusionSet {
	set := ExclusionSet{}
	for _, t := range types {
		set.Add(foldersToExclude[t]...)
	}
	return set
}

func (s ExclusionSet) Add(names ...string) {
	for _, name := range names {
		s[name] = struct{}{}
	}
}

func (s ExclusionSet) Contains(name string) bool {
	_, ok := s[name]
	return ok
}

// Names returns the excluded names, sorted.
func (s ExclusionSet) Names() []string {
	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// 🙈 IgnoreSet skips files whose path relative to the source root matches
// one of a list of doublestar patterns
type IgnoreSet struct {
	patterns []string
}

// NewIgnoreSet validates patterns. A nil or empty list ignores nothing.
func NewIgnoreSet(patterns ...string) (*IgnoreSet, error) {
	for _, p := range patterns {
		if p == "" || !doublestar.ValidatePattern(p) {
			return nil, errors.Errorf("%w %q", ErrInvalidPattern, p)
		}
	}
	return &IgnoreSet{patterns: slices.Clone(patterns)}, nil
}

// Match returns the first pattern matching the slash separated path rel.
func (s *IgnoreSet) Match(rel string) (string, bool) {
	if s == nil {
		return "", false
	}
	for _, p := range s.patterns {
		// patterns were validated up front, Match cannot fail
		if ok, _ := doublestar.Match(p, rel); ok {
			return p, true
		}
	}
	return "", false
}

func (s *IgnoreSet) Patterns() []string {
	if s == nil {
		return nil
	}
	return slices.Clone(s.patterns)
}
