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

package transform

import (
	"fmt"
	"path/filepath"
	"regexp"

	"gitlab.com/tozd/go/errors"
)

// 🔤 PathTransform renames a file whose base name fully matches a pattern
type PathTransform struct {
	source   string
	pattern  *regexp.Regexp
	template *Template
	sample   string
	preview  string
}

// 🏭 NewPathTransform compiles and validates a rename rule.
//
// The pattern must compile, must fully match sample, and the template must
// render against the groups captured from sample. The first failing check
// decides the returned error: ErrInvalidPattern, ErrSampleMismatch or
// ErrInvalidTemplate. Templates may not contain path separators.
func NewPathTransform(pattern, template, sample string) (*PathTransform, error) {
	// compile the raw pattern on its own first, anchoring could hide a stray ")"
	if _, err := regexp.Compile(pattern); err != nil {
		return nil, errors.Errorf("%w %q: %s", ErrInvalidPattern, pattern, err.Error())
	}

	re, err := regexp.Compile(`^(?:` + pattern + `)$`)
	if err != nil {
		return nil, errors.Errorf("%w %q: %s", ErrInvalidPattern, pattern, err.Error())
	}

	groups := re.FindStringSubmatch(sample)
	if groups == nil {
		return nil, errors.Errorf("%w: %q does not match %q", ErrSampleMismatch, sample, pattern)
	}

	tmpl, err := ParseTemplate(template)
	if err != nil {
		return nil, err
	}
	if tmpl.containsLiteral("/" + string(filepath.Separator)) {
		return nil, errors.Errorf("%w %q: a rename cannot move a file to another directory", ErrInvalidTemplate, template)
	}

	preview, err := tmpl.Render(groups)
	if err != nil {
		return nil, err
	}

	return &PathTransform{
		source:   pattern,
		pattern:  re,
		template: tmpl,
		sample:   sample,
		preview:  preview,
	}, nil
}

// Matches reports whether the whole of name matches the pattern.
func (t *PathTransform) Matches(name string) bool {
	return t.pattern.MatchString(name)
}

// 🔄 Rename renders the template with the groups captured from name
func (t *PathTransform) Rename(name string) (string, error) {
	groups := t.pattern.FindStringSubmatch(name)
	if groups == nil {
		return "", errors.Errorf("%w: %q does not match %q", ErrNoMatch, name, t.source)
	}
	return t.template.Render(groups)
}

func (t *PathTransform) Pattern() string {
	return t.source
}

func (t *PathTransform) Template() string {
	return t.template.String()
}

func (t *PathTransform) Sample() string {
	return t.sample
}

// Preview is the sample renamed by this rule.
func (t *PathTransform) Preview() string {
	return t.preview
}

func (t *PathTransform) String() string {
	return fmt.Sprintf("%s -> %s (%s -> %s)", t.source, t.template, t.sample, t.preview)
}

// 🎯 FirstMatch returns the first transform that matches name, or nil
func FirstMatch(name string, transforms []*PathTransform) *PathTransform {
	for _, t := range transforms {
		if t.Matches(name) {
			return t
		}
	}
	return nil
}

// FirstMatchStrict is FirstMatch, except that a name matched by more than
// one transform is an ErrAmbiguousRename.
func FirstMatchStrict(name string, transforms []*PathTransform) (*PathTransform, error) {
	var first *PathTransform
	for _, t := range transforms {
		if !t.Matches(name) {
			continue
		}
		if first != nil {
			return nil, errors.Errorf("%w: %q matches both %q and %q", ErrAmbiguousRename, name, first.source, t.source)
		}
		first = t
	}
	return first, nil
}
