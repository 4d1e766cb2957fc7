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
	"strconv"
	"strings"

	"gitlab.com/tozd/go/errors"
)

var (
	ErrInvalidPattern  = errors.Base("invalid pattern")
	ErrSampleMismatch  = errors.Base("sample does not match pattern")
	ErrInvalidTemplate = errors.Base("invalid template")
	ErrNoMatch         = errors.Base("name does not match pattern")
	ErrAmbiguousRename = errors.Base("more than one rename matches")
	ErrEmptySearch     = errors.Base("search text is empty")
)

// segment is either literal text or a capture group reference.
type segment struct {
	literal string
	group   int
}

// 📝 Template is a parsed replacement template with <N> placeholders
type Template struct {
	raw      string
	segments []segment
	maxGroup int
}

// 🏭 ParseTemplate parses a template.
//
// A placeholder is "<" followed by one or more word characters and ">".
// Numeric placeholders name a capture group. Named placeholders are rejected
// since there is nothing to bind them to. Any other "<" is literal text.
func ParseTemplate(raw string) (*Template, error) {
	t := &Template{raw: raw}

	var lit strings.Builder
	rest := raw
	for {
		open := strings.IndexByte(rest, '<')
		if open < 0 {
			lit.WriteString(rest)
			break
		}

		lit.WriteString(rest[:open])
		name, ok := placeholderAt(rest[open:])
		if !ok {
			lit.WriteByte('<')
			rest = rest[open+1:]
			continue
		}

		idx, err := strconv.Atoi(name)
		if err != nil {
			return nil, errors.Errorf("%w %q: placeholder <%s> is not a group index", ErrInvalidTemplate, raw, name)
		}

		if lit.Len() > 0 {
			t.segments = append(t.segments, segment{literal: lit.String()})
			lit.Reset()
		}
		t.segments = append(t.segments, segment{group: idx})
		if idx > t.maxGroup {
			t.maxGroup = idx
		}

		rest = rest[open+len(name)+2:]
	}

	if lit.Len() > 0 {
		t.segments = append(t.segments, segment{literal: lit.String()})
	}

	return t, nil
}

// placeholderAt reports the name of the placeholder that s starts with.
func placeholderAt(s string) (string, bool) {
	end := 1
	for end < len(s) && isWordByte(s[end]) {
		end++
	}
	if end == 1 || end >= len(s) || s[end] != '>' {
		return "", false
	}
	return s[1:end], true
}

func isWordByte(b byte) bool {
	return b == '_' || (b >= '0' && b <= '9') || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

// 🔄 Render substitutes groups into the template.
// groups[0] is the whole match, as returned by regexp's FindStringSubmatch.
func (t *Template) Render(groups []string) (string, error) {
	var b strings.Builder
	for _, seg := range t.segments {
		if seg.group == 0 && seg.literal != "" {
			b.WriteString(seg.literal)
			continue
		}
		if seg.group < 1 || seg.group >= len(groups) {
			return "", errors.Errorf("%w %q: group <%d> does not exist, pattern has %d group(s)",
				ErrInvalidTemplate, t.raw, seg.group, len(groups)-1)
		}
		b.WriteString(groups[seg.group])
	}
	return b.String(), nil
}

// MaxGroup is the highest group index the template references.
func (t *Template) MaxGroup() int {
	return t.maxGroup
}

// containsLiteral reports whether any literal text of the template contains
// one of the characters in chars.
func (t *Template) containsLiteral(chars string) bool {
	for _, seg := range t.segments {
		if strings.ContainsAny(seg.literal, chars) {
			return true
		}
	}
	return false
}

func (t *Template) String() string {
	return t.raw
}
