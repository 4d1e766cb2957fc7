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

package walker

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/go-git/go-billy/v5"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/monk/pkg/project"
	"github.com/walteh/monk/pkg/status"
	"github.com/walteh/monk/pkg/transform"
)

var (
	ErrNotDirectory = errors.Base("not a directory")
	ErrInvalidName  = errors.Base("invalid file name")
)

// 📢 Reporter receives every walk event
type Reporter interface {
	LogEntry(ctx context.Context, e status.Entry)
	LogDiff(ctx context.Context, path string, diff string)
}

// 🔧 Options is the run context of one walk
type Options struct {
	// SourceFS holds the template tree, Source is its root inside SourceFS
	SourceFS billy.Filesystem
	Source   string
	// TargetFS receives the new tree, Target is its root inside TargetFS
	TargetFS billy.Filesystem
	Target   string

	Exclusions        project.ExclusionSet
	Ignore            *project.IgnoreSet
	NameTransforms    []*transform.PathTransform
	ContentTransforms []*transform.ContentTransform

	// Strict fails on a file name matched by more than one rename rule
	Strict bool
	// DryRun walks and reports without writing anything
	DryRun bool

	Reporter Reporter
}

// 🚶 Walker copies one tree, once
type Walker struct {
	opts    Options
	summary status.Summary
}

// 🏭 New creates a walker
func New(opts Options) (*Walker, error) {
	if opts.SourceFS == nil {
		return nil, errors.Errorf("source filesystem is required")
	}
	if opts.TargetFS == nil {
		return nil, errors.Errorf("target filesystem is required")
	}
	if opts.Source == "" {
		return nil, errors.Errorf("source is required")
	}
	if opts.Target == "" {
		return nil, errors.Errorf("target is required")
	}
	if opts.Exclusions == nil {
		opts.Exclusions = project.ExclusionSet{}
	}
	if opts.Reporter == nil {
		opts.Reporter = nopReporter{}
	}

	opts.Source = filepath.Clean(opts.Source)
	opts.Target = filepath.Clean(opts.Target)

	return &Walker{opts: opts}, nil
}

// 🏃 Run walks the source tree. The summary covers everything done up to
// the first error.
func (w *Walker) Run(ctx context.Context) (status.Summary, error) {
	w.summary = status.Summary{DryRun: w.opts.DryRun}

	zerolog.Ctx(ctx).Debug().
		Str("source", w.opts.Source).
		Str("target", w.opts.Target).
		Strs("exclusions", w.opts.Exclusions.Names()).
		Int("name_transforms", len(w.opts.NameTransforms)).
		Int("content_transforms", len(w.opts.ContentTransforms)).
		Bool("dry_run", w.opts.DryRun).
		Msg("starting walk")

	info, err := w.opts.SourceFS.Stat(w.opts.Source)
	if err != nil {
		return w.summary, ioError("reading source", w.opts.Source, err)
	}
	if !info.IsDir() {
		return w.summary, ioError("reading source", w.opts.Source, ErrNotDirectory)
	}

	if err := w.visitDir(ctx, w.opts.Source); err != nil {
		return w.summary, err
	}

	return w.summary, nil
}

// 📁 visitDir handles one directory, its files, then its subdirectories
func (w *Walker) visitDir(ctx context.Context, dir string) error {
	if err := ctx.Err(); err != nil {
		return errors.Errorf("%w at %s: %s", ErrInterrupted, dir, err.Error())
	}

	rel := w.rel(w.opts.Source, dir)

	if w.opts.Exclusions.Contains(filepath.Base(dir)) {
		w.report(ctx, status.Entry{
			Path:   rel,
			IsDir:  true,
			Action: status.ActionExcluded,
			Reason: "excluded folder",
			DryRun: w.opts.DryRun,
		})
		return nil
	}

	targetDir := w.targetPath(rel)
	action, err := w.ensureDir(targetDir)
	if err != nil {
		return err
	}
	w.report(ctx, status.Entry{
		Path:   rel,
		Target: w.rel(w.opts.Target, targetDir),
		IsDir:  true,
		Action: action,
		DryRun: w.opts.DryRun,
	})

	entries, err := w.opts.SourceFS.ReadDir(dir)
	if err != nil {
		return ioError("reading directory", dir, err)
	}
	slices.SortFunc(entries, func(a, b os.FileInfo) int {
		return strings.Compare(a.Name(), b.Name())
	})

	var subdirs []string
	for _, fi := range entries {
		path := filepath.Join(dir, fi.Name())
		switch {
		case fi.IsDir():
			subdirs = append(subdirs, path)
		case fi.Mode().IsRegular():
			if err := ctx.Err(); err != nil {
				return errors.Errorf("%w at %s: %s", ErrInterrupted, path, err.Error())
			}
			if err := w.copyFile(ctx, path, targetDir, fi); err != nil {
				return err
			}
		default:
			w.report(ctx, status.Entry{
				Path:   w.rel(w.opts.Source, path),
				Action: status.ActionIgnored,
				Reason: "not a regular file",
				DryRun: w.opts.DryRun,
			})
		}
	}

	for _, sub := range subdirs {
		if err := w.visitDir(ctx, sub); err != nil {
			return err
		}
	}

	return nil
}

// 📂 ensureDir creates targetDir unless it exists. Directories are created
// top-down, so only the target root needs its parent checked.
func (w *Walker) ensureDir(targetDir string) (status.Action, error) {
	info, err := w.opts.TargetFS.Stat(targetDir)
	switch {
	case err == nil && info.IsDir():
		return status.ActionExisting, nil
	case err == nil:
		return status.ActionUnknown, ioError("creating directory", targetDir, ErrNotDirectory)
	case !errors.Is(err, os.ErrNotExist):
		return status.ActionUnknown, ioError("checking directory", targetDir, err)
	}

	if targetDir == w.opts.Target {
		parent := filepath.Dir(targetDir)
		if _, err := w.opts.TargetFS.Stat(parent); err != nil {
			return status.ActionUnknown, ioError("creating directory", targetDir, err)
		}
	}

	if w.opts.DryRun {
		return status.ActionCreated, nil
	}

	if err := w.opts.TargetFS.MkdirAll(targetDir, 0o755); err != nil {
		return status.ActionUnknown, ioError("creating directory", targetDir, err)
	}

	return status.ActionCreated, nil
}

// 📄 copyFile renames, rewrites and writes a single file
func (w *Walker) copyFile(ctx context.Context, path, targetDir string, fi os.FileInfo) error {
	rel := w.rel(w.opts.Source, path)

	if pattern, ok := w.opts.Ignore.Match(rel); ok {
		w.report(ctx, status.Entry{
			Path:   rel,
			Action: status.ActionIgnored,
			Reason: "matches " + pattern,
			DryRun: w.opts.DryRun,
		})
		return nil
	}

	newName, renamed, err := w.rename(fi.Name())
	if err != nil {
		return errors.Errorf("renaming %s: %w", rel, err)
	}
	targetFile := filepath.Join(targetDir, newName)

	content, err := w.readFile(path)
	if err != nil {
		return err
	}

	out, count := transform.ApplyAll(string(content), w.opts.ContentTransforms)

	entry := status.Entry{
		Path:         rel,
		Target:       w.rel(w.opts.Target, targetFile),
		Action:       status.FileAction(renamed, count),
		Renamed:      renamed,
		Replacements: count,
		DryRun:       w.opts.DryRun,
	}

	if err := w.checkFree(targetFile); err != nil {
		return err
	}

	if w.opts.DryRun {
		w.report(ctx, entry)
		if count > 0 {
			w.opts.Reporter.LogDiff(ctx, rel, status.Diff(string(content), out))
		}
		return nil
	}

	if err := w.writeFile(targetFile, []byte(out), fi.Mode().Perm()); err != nil {
		return err
	}

	w.report(ctx, entry)
	return nil
}

// rename applies the first matching rename rule to name.
func (w *Walker) rename(name string) (string, bool, error) {
	var rule *transform.PathTransform
	if w.opts.Strict {
		var err error
		if rule, err = transform.FirstMatchStrict(name, w.opts.NameTransforms); err != nil {
			return "", false, err
		}
	} else {
		rule = transform.FirstMatch(name, w.opts.NameTransforms)
	}

	if rule == nil {
		return name, false, nil
	}

	newName, err := rule.Rename(name)
	if err != nil {
		return "", false, err
	}

	if newName == "" || newName == "." || newName == ".." || strings.ContainsAny(newName, `/`+string(filepath.Separator)) {
		return "", false, errors.Errorf("%w: %q renames %q to %q", ErrInvalidName, rule.Pattern(), name, newName)
	}

	return newName, newName != name, nil
}

func (w *Walker) readFile(path string) ([]byte, error) {
	f, err := w.opts.SourceFS.Open(path)
	if err != nil {
		return nil, ioError("opening file", path, err)
	}
	defer f.Close()

	content, err := io.ReadAll(f)
	if err != nil {
		return nil, ioError("reading file", path, err)
	}
	return content, nil
}

// checkFree fails when something already exists at path.
func (w *Walker) checkFree(path string) error {
	_, err := w.opts.TargetFS.Lstat(path)
	switch {
	case err == nil:
		return ioError("creating file", path, os.ErrExist)
	case errors.Is(err, os.ErrNotExist):
		return nil
	default:
		return ioError("checking file", path, err)
	}
}

// writeFile creates path exclusively and writes data to it.
func (w *Walker) writeFile(path string, data []byte, perm os.FileMode) error {
	if perm == 0 {
		perm = 0o644
	}

	f, err := w.opts.TargetFS.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, perm)
	if err != nil {
		return ioError("creating file", path, err)
	}

	if _, err := f.Write(data); err != nil {
		f.Close()
		return ioError("writing file", path, err)
	}

	if err := f.Close(); err != nil {
		return ioError("closing file", path, err)
	}

	return nil
}

func (w *Walker) report(ctx context.Context, e status.Entry) {
	w.summary.Record(e)
	w.opts.Reporter.LogEntry(ctx, e)
}

// rel returns path relative to root, slash separated.
func (w *Walker) rel(root, path string) string {
	r, err := filepath.Rel(root, path)
	if err != nil {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(r)
}

func (w *Walker) targetPath(rel string) string {
	if rel == "." {
		return w.opts.Target
	}
	return filepath.Join(w.opts.Target, filepath.FromSlash(rel))
}

type nopReporter struct{}

func (nopReporter) LogEntry(context.Context, status.Entry)  {}
func (nopReporter) LogDiff(context.Context, string, string) {}
