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

package status

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

// 🎨 Display configuration
const (
	fileIndent   = 4  // spaces to indent entries
	nameWidth    = 35 // Base width for the source path
	actionWidth  = 10 // Width for the action text
	dirSeparator = "/"
)

// 🎯 FormatEntry formats an entry for display
func FormatEntry(e Entry) string {
	var prefix string
	switch e.Action {
	case ActionCreated:
		prefix = color.GreenString("+")
	case ActionExisting:
		prefix = color.HiBlackString("•")
	case ActionCopied:
		prefix = color.GreenString("✓")
	case ActionRenamed:
		prefix = color.CyanString("→")
	case ActionRewritten:
		prefix = color.YellowString("⟳")
	case ActionExcluded, ActionIgnored:
		prefix = color.HiBlackString("-")
	default:
		prefix = color.RedString("?")
	}

	path := e.Path
	if e.IsDir && path != "." {
		path += dirSeparator
	}

	detail := ""
	switch {
	case e.Action == ActionExcluded || e.Action == ActionIgnored:
		detail = e.Reason
	case e.IsDir:
	case e.Renamed && e.Replacements > 0:
		detail = fmt.Sprintf("%s (%d replaced)", e.Target, e.Replacements)
	case e.Renamed:
		detail = e.Target
	case e.Replacements > 0:
		detail = fmt.Sprintf("(%d replaced)", e.Replacements)
	}

	line := fmt.Sprintf("%s%s %-*s %-*s %s",
		strings.Repeat(" ", fileIndent),
		prefix,
		nameWidth, path,
		actionWidth, e.Action.String(),
		detail,
	)
	return strings.TrimRight(line, " ")
}
