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
	"os"
	"path/filepath"
	"strings"

	"gitlab.com/tozd/go/errors"
)

// 📍 Paths is a vetted pair of absolute, cleaned source and target roots
type Paths struct {
	Source string
	Target string
}

// 🛡️ CheckPaths resolves source and target against cwd and rejects any pair
// the walk could not run on safely. It never writes anything.
func CheckPaths(source, target, cwd string) (*Paths, error) {
	if source == "" {
		return nil, preconditionf("source directory is required")
	}
	if target == "" {
		return nil, preconditionf("target directory is required")
	}

	cwd = filepath.Clean(cwd)
	src := resolve(source, cwd)
	tgt := resolve(target, cwd)

	if src == tgt {
		return nil, preconditionf("source and target are the same directory: %s", src)
	}
	if src == cwd {
		return nil, preconditionf("source cannot be the current directory: %s", src)
	}
	if tgt == cwd {
		return nil, preconditionf("target cannot be the current directory: %s", tgt)
	}

	srcInfo, err := os.Stat(src)
	if err != nil {
		return nil, preconditionf("source directory %s: %v", src, err)
	}
	if !srcInfo.IsDir() {
		return nil, preconditionf("source is not a directory: %s", src)
	}

	if tgtInfo, err := os.Stat(tgt); err == nil && os.SameFile(srcInfo, tgtInfo) {
		return nil, preconditionf("source and target are the same directory: %s", tgt)
	}
	if cwdInfo, err := os.Stat(cwd); err == nil {
		if os.SameFile(srcInfo, cwdInfo) {
			return nil, preconditionf("source cannot be the current directory: %s", src)
		}
		if tgtInfo, err := os.Stat(tgt); err == nil && os.SameFile(tgtInfo, cwdInfo) {
			return nil, preconditionf("target cannot be the current directory: %s", tgt)
		}
	}

	parent := filepath.Dir(tgt)
	parentInfo, err := os.Stat(parent)
	if err != nil {
		return nil, preconditionf("target parent directory %s: %v", parent, err)
	}
	if !parentInfo.IsDir() {
		return nil, preconditionf("target parent is not a directory: %s", parent)
	}

	if within(tgt, src) {
		return nil, preconditionf("target %s is inside source %s", tgt, src)
	}
	if within(src, tgt) {
		return nil, preconditionf("source %s is inside target %s", src, tgt)
	}

	return &Paths{Source: src, Target: tgt}, nil
}

func resolve(path, cwd string) string {
	if !filepath.IsAbs(path) {
		path = filepath.Join(cwd, path)
	}
	return filepath.Clean(path)
}

// within reports whether path lies strictly below dir.
func within(path, dir string) bool {
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return false
	}
	return rel != "." && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)) && !filepath.IsAbs(rel)
}

func preconditionf(format string, args ...any) error {
	return errors.Errorf("%w: "+format, append([]any{ErrPrecondition}, args...)...)
}
