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

package project

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTypes(t *testing.T) {
	tests := []struct {
		name      string
		input     []string
		want      []Type
		wantError error
	}{
		{
			name:  "separate_values",
			input: []string{"GIT", "JAVA"},
			want:  []Type{Git, Java},
		},
		{
			name:  "comma_separated",
			input: []string{"git, java"},
			want:  []Type{Git, Java},
		},
		{
			name:  "duplicates_collapse",
			input: []string{"GIT", "git", "Git,NODE"},
			want:  []Type{Git, Node},
		},
		{
			name:  "empty",
			input: nil,
			want:  nil,
		},
		{
			name:      "unknown_type",
			input:     []string{"GIT", "COBOL"},
			wantError: ErrUnknownType,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTypes(tt.input)
			if tt.wantError != nil {
				require.ErrorIs(t, err, tt.wantError)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExclusionSet(t *testing.T) {
	set := NewExclusionSet(DefaultTypes()...)

	assert.True(t, set.Contains(".git"))
	assert.True(t, set.Contains("target"))
	assert.False(t, set.Contains("src"))
	assert.False(t, set.Contains("node_modules"))
	assert.Equal(t, []string{".git", "target"}, set.Names())

	set.Add("build")
	assert.True(t, set.Contains("build"))

	assert.Empty(t, NewExclusionSet().Names())
}

func TestFoldersToExcludeIsACopy(t *testing.T) {
	folders := Git.FoldersToExclude()
	folders[0] = "changed"
	assert.Equal(t, []string{".git"}, Git.FoldersToExclude())
}

func TestAllTypesHaveFolders(t *testing.T) {
	for _, typ := range AllTypes() {
		assert.NotEmpty(t, typ.FoldersToExclude(), "type %s", typ)
	}
}

func TestIgnoreSet(t *testing.T) {
	set, err := NewIgnoreSet("**/*.orig", "docs/**")
	require.NoError(t, err)

	tests := []struct {
		path        string
		wantMatch   bool
		wantPattern string
	}{
		{path: "Main.java.orig", wantMatch: true, wantPattern: "**/*.orig"},
		{path: "src/deep/Main.java.orig", wantMatch: true, wantPattern: "**/*.orig"},
		{path: "docs/index.md", wantMatch: true, wantPattern: "docs/**"},
		{path: "src/Main.java", wantMatch: false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			pattern, ok := set.Match(tt.path)
			assert.Equal(t, tt.wantMatch, ok)
			assert.Equal(t, tt.wantPattern, pattern)
		})
	}

	var none *IgnoreSet
	_, ok := none.Match("anything")
	assert.False(t, ok)

	_, err = NewIgnoreSet("[unclosed")
	assert.ErrorIs(t, err, ErrInvalidPattern)
}
