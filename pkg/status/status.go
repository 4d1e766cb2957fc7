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
)

// 📊 Action is what a walk did with one source entry
type Action int

const (
	ActionUnknown   Action = iota
	ActionCreated          // directory created in the target
	ActionExisting         // directory already present in the target
	ActionCopied           // file written as is
	ActionRenamed          // file written under a new name
	ActionRewritten        // file written with replaced content
	ActionExcluded         // directory skipped with its subtree
	ActionIgnored          // file skipped
)

// String returns a string representation of Action
func (a Action) String() string {
	switch a {
	case ActionCreated:
		return "created"
	case ActionExisting:
		return "exists"
	case ActionCopied:
		return "copied"
	case ActionRenamed:
		return "renamed"
	case ActionRewritten:
		return "rewritten"
	case ActionExcluded:
		return "excluded"
	case ActionIgnored:
		return "ignored"
	default:
		return "unknown"
	}
}

// 📄 Entry is one walk event
type Entry struct {
	Path         string // Path relative to the source root
	Target       string // Path relative to the target root, empty when skipped
	IsDir        bool   // Whether this is a directory
	Action       Action // What happened
	Renamed      bool   // Whether a rename rule applied
	Replacements int    // Number of content replacements made
	Reason       string // Why the entry was skipped
	DryRun       bool   // Whether nothing was actually written
}

// FileAction picks the action for a written file.
func FileAction(renamed bool, replacements int) Action {
	switch {
	case replacements > 0:
		return ActionRewritten
	case renamed:
		return ActionRenamed
	default:
		return ActionCopied
	}
}

// 📈 Summary totals the entries of one walk
type Summary struct {
	Dirs         int  // Directories created or already present
	Files        int  // Files written
	Renamed      int  // Files written under a new name
	Rewritten    int  // Files whose content changed
	Excluded     int  // Directories skipped with their subtree
	Ignored      int  // Files skipped
	Replacements int  // Content replacements over all files
	DryRun       bool // Whether the walk wrote nothing
}

// Record adds e to the totals.
func (s *Summary) Record(e Entry) {
	switch e.Action {
	case ActionCreated, ActionExisting:
		s.Dirs++
	case ActionCopied, ActionRenamed, ActionRewritten:
		s.Files++
		if e.Renamed {
			s.Renamed++
		}
		if e.Replacements > 0 {
			s.Rewritten++
			s.Replacements += e.Replacements
		}
	case ActionExcluded:
		s.Excluded++
	case ActionIgnored:
		s.Ignored++
	}
}

func (s Summary) String() string {
	var b strings.Builder
	if s.DryRun {
		b.WriteString("would copy ")
	} else {
		b.WriteString("copied ")
	}
	fmt.Fprintf(&b, "%s, %s", plural(s.Dirs, "directory", "directories"), plural(s.Files, "file", "files"))
	fmt.Fprintf(&b, " (%d renamed, %d rewritten, %s)", s.Renamed, s.Rewritten, plural(s.Replacements, "replacement", "replacements"))
	if skipped := s.Excluded + s.Ignored; skipped > 0 {
		fmt.Fprintf(&b, ", skipped %s and %s", plural(s.Excluded, "directory", "directories"), plural(s.Ignored, "file", "files"))
	}
	return b.String()
}

func plural(n int, one, many string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, one)
	}
	return fmt.Sprintf("%d %s", n, many)
}
