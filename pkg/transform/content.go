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
	"strings"

	"gitlab.com/tozd/go/errors"
)

// 🔄 ContentTransform replaces every occurrence of a literal string
type ContentTransform struct {
	search  string
	replace string
}

// 🏭 NewContentTransform creates a content rule. search may not be empty.
func NewContentTransform(search, replace string) (*ContentTransform, error) {
	if search == "" {
		return nil, errors.WithStack(ErrEmptySearch)
	}
	return &ContentTransform{search: search, replace: replace}, nil
}

// Matches reports whether content contains the search text.
func (t *ContentTransform) Matches(content string) bool {
	return strings.Contains(content, t.search)
}

// Count returns the number of non-overlapping occurrences in content.
func (t *ContentTransform) Count(content string) int {
	return strings.Count(content, t.search)
}

// Apply replaces all occurrences of the search text.
func (t *ContentTransform) Apply(content string) string {
	return strings.ReplaceAll(content, t.search, t.replace)
}

func (t *ContentTransform) Search() string {
	return t.search
}

func (t *ContentTransform) Replace() string {
	return t.replace
}

func (t *ContentTransform) String() string {
	return fmt.Sprintf("%q -> %q", t.search, t.replace)
}

// 📝 ApplyAll runs the transforms in order, each on the output of the
// previous one, and returns the result with the number of replacements made.
func ApplyAll(content string, transforms []*ContentTransform) (string, int) {
	count := 0
	for _, t := range transforms {
		if !t.Matches(content) {
			continue
		}
		count += t.Count(content)
		content = t.Apply(content)
	}
	return content, count
}
