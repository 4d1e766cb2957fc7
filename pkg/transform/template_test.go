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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTemplate(t *testing.T) {
	tests := []struct {
		name      string
		template  string
		groups    []string
		want      string
		wantMax   int
		wantError error
	}{
		{
			name:     "single_group",
			template: "<1>.cxx",
			groups:   []string{"Sample.java", "Sample"},
			want:     "Sample.cxx",
			wantMax:  1,
		},
		{
			name:     "groups_out_of_order",
			template: "<2>-<1>",
			groups:   []string{"a_b", "a", "b"},
			want:     "b-a",
			wantMax:  2,
		},
		{
			name:     "repeated_group",
			template: "<1><1>",
			groups:   []string{"x", "x"},
			want:     "xx",
			wantMax:  1,
		},
		{
			name:     "no_placeholders",
			template: "fixed.txt",
			groups:   []string{"anything"},
			want:     "fixed.txt",
		},
		{
			name:     "double_digit_group",
			template: "<10>",
			groups:   []string{"all", "1", "2", "3", "4", "5", "6", "7", "8", "9", "ten"},
			want:     "ten",
			wantMax:  10,
		},
		{
			name:     "lone_angle_brackets_are_literal",
			template: "a<b <> <1",
			groups:   []string{"z"},
			want:     "a<b <> <1",
		},
		{
			name:     "bracket_before_placeholder",
			template: "<<1>>",
			groups:   []string{"x", "x"},
			want:     "<x>",
			wantMax:  1,
		},
		{
			name:      "named_placeholder",
			template:  "<name>.txt",
			wantError: ErrInvalidTemplate,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpl, err := ParseTemplate(tt.template)
			if tt.wantError != nil {
				require.ErrorIs(t, err, tt.wantError)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantMax, tmpl.MaxGroup())
			assert.Equal(t, tt.template, tmpl.String())

			got, err := tmpl.Render(tt.groups)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTemplateRenderMissingGroup(t *testing.T) {
	for _, raw := range []string{"<2>", "<0>"} {
		tmpl, err := ParseTemplate(raw)
		require.NoError(t, err)

		_, err = tmpl.Render([]string{"Sample.java", "Sample"})
		assert.ErrorIs(t, err, ErrInvalidTemplate, "template %s", raw)
	}
}
