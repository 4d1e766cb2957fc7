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
	"os"
	"path/filepath"
	"testing"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/monk/pkg/project"
	"github.com/walteh/monk/pkg/status"
	"github.com/walteh/monk/pkg/transform"
)

const (
	testSource = "/work/template"
	testTarget = "/work/out"
)

// 📢 recorder is a Reporter that keeps everything it is told
type recorder struct {
	entries []status.Entry
	diffs   map[string]string
}

func (r *recorder) LogEntry(_ context.Context, e status.Entry) {
	r.entries = append(r.entries, e)
}

func (r *recorder) LogDiff(_ context.Context, path string, diff string) {
	if r.diffs == nil {
		r.diffs = map[string]string{}
	}
	r.diffs[path] = diff
}

func (r *recorder) paths() []string {
	paths := make([]string, len(r.entries))
	for i, e := range r.entries {
		paths[i] = e.Path
	}
	return paths
}

// 🧪 newTestFS creates a memfs holding the template files below testSource.
// Names ending in "/" are created as empty directories.
func newTestFS(t *testing.T, files map[string]string) billy.Filesystem {
	t.Helper()

	fs := memfs.New()
	require.NoError(t, fs.MkdirAll(testSource, 0o755))
	for name, content := range files {
		path := filepath.Join(testSource, name)
		if name[len(name)-1] == '/' {
			require.NoError(t, fs.MkdirAll(path, 0o755))
			continue
		}
		require.NoError(t, util.WriteFile(fs, path, []byte(content), 0o644))
	}
	return fs
}

// readTree returns every file below root keyed by its slash separated
// relative path. Directories are listed with a trailing "/".
func readTree(t *testing.T, fs billy.Filesystem, root string) map[string]string {
	t.Helper()

	tree := map[string]string{}
	var walk func(dir string)
	walk = func(dir string) {
		entries, err := fs.ReadDir(dir)
		require.NoError(t, err)
		for _, fi := range entries {
			path := filepath.Join(dir, fi.Name())
			rel, err := filepath.Rel(root, path)
			require.NoError(t, err)
			rel = filepath.ToSlash(rel)
			if fi.IsDir() {
				tree[rel+"/"] = ""
				walk(path)
				continue
			}
			content, err := util.ReadFile(fs, path)
			require.NoError(t, err)
			tree[rel] = string(content)
		}
	}
	walk(root)
	return tree
}

func testContext(t *testing.T) context.Context {
	logger := zerolog.New(zerolog.NewTestWriter(t))
	return logger.WithContext(context.Background())
}

func mustRename(t *testing.T, pattern, template, sample string) *transform.PathTransform {
	t.Helper()
	pt, err := transform.NewPathTransform(pattern, template, sample)
	require.NoError(t, err)
	return pt
}

func mustReplace(t *testing.T, search, replace string) *transform.ContentTransform {
	t.Helper()
	ct, err := transform.NewContentTransform(search, replace)
	require.NoError(t, err)
	return ct
}

func runWalk(t *testing.T, opts Options) (status.Summary, error) {
	t.Helper()
	w, err := New(opts)
	require.NoError(t, err)
	return w.Run(testContext(t))
}

func TestWalkCopiesTemplate(t *testing.T) {
	fs := newTestFS(t, map[string]string{
		"README.md":                 "org.example template",
		"src/main/Sample.java":      "package org.example;",
		"src/main/notes.txt":        "plain",
		"empty/":                    "",
		".git/HEAD":                 "ref: refs/heads/main",
		"sub/.git/config":           "[core]",
		"sub/kept.txt":              "kept",
		"target/classes/A.class":    "binary",
		"deep/x/target/y.txt":       "build output",
		"deep/x/target/inner/z.txt": "build output",
		"deep/x/visible.txt":        "visible",
	})

	rec := &recorder{}
	summary, err := runWalk(t, Options{
		SourceFS:          fs,
		Source:            testSource,
		TargetFS:          fs,
		Target:            testTarget,
		Exclusions:        project.NewExclusionSet(project.DefaultTypes()...),
		NameTransforms:    []*transform.PathTransform{mustRename(t, `([A-Za-z]+)\.java`, "<1>.cxx", "Sample.java")},
		ContentTransforms: []*transform.ContentTransform{mustReplace(t, "org.example", "com.acme")},
		Reporter:          rec,
	})
	require.NoError(t, err)

	assert.Equal(t, map[string]string{
		"README.md":           "com.acme template",
		"deep/":               "",
		"deep/x/":             "",
		"deep/x/visible.txt":  "visible",
		"empty/":              "",
		"src/":                "",
		"src/main/":           "",
		"src/main/Sample.cxx": "package com.acme;",
		"src/main/notes.txt":  "plain",
		"sub/":                "",
		"sub/kept.txt":        "kept",
	}, readTree(t, fs, testTarget))

	assert.Equal(t, status.Summary{
		Dirs:         7,
		Files:        5,
		Renamed:      1,
		Rewritten:    2,
		Excluded:     4,
		Replacements: 2,
	}, summary)

	// source is untouched
	assert.Contains(t, readTree(t, fs, testSource), ".git/HEAD")
}

func TestWalkPreOrder(t *testing.T) {
	fs := newTestFS(t, map[string]string{
		"z.txt":     "z",
		"a.txt":     "a",
		"b/c.txt":   "c",
		"b/d/e.txt": "e",
		"y/f.txt":   "f",
	})

	rec := &recorder{}
	_, err := runWalk(t, Options{
		SourceFS: fs,
		Source:   testSource,
		TargetFS: fs,
		Target:   testTarget,
		Reporter: rec,
	})
	require.NoError(t, err)

	assert.Equal(t, []string{
		".", "a.txt", "z.txt",
		"b", "b/c.txt",
		"b/d", "b/d/e.txt",
		"y", "y/f.txt",
	}, rec.paths())
	assert.Equal(t, status.ActionCreated, rec.entries[0].Action)
	assert.Equal(t, ".", rec.entries[0].Target)
}

func TestWalkRenameFirstMatchWins(t *testing.T) {
	fs := newTestFS(t, map[string]string{
		"Foo.java": "foo",
		"Bar.java": "bar",
	})

	_, err := runWalk(t, Options{
		SourceFS: fs,
		Source:   testSource,
		TargetFS: fs,
		Target:   testTarget,
		NameTransforms: []*transform.PathTransform{
			mustRename(t, `(Foo)\.java`, "<1>.first", "Foo.java"),
			mustRename(t, `(\w+)\.java`, "<1>.second", "Foo.java"),
		},
	})
	require.NoError(t, err)

	assert.Equal(t, map[string]string{
		"Foo.first":  "foo",
		"Bar.second": "bar",
	}, readTree(t, fs, testTarget))
}

func TestWalkStrictRejectsAmbiguousRename(t *testing.T) {
	fs := newTestFS(t, map[string]string{
		"Foo.java": "foo",
	})

	_, err := runWalk(t, Options{
		SourceFS: fs,
		Source:   testSource,
		TargetFS: fs,
		Target:   testTarget,
		Strict:   true,
		NameTransforms: []*transform.PathTransform{
			mustRename(t, `(Foo)\.java`, "<1>.first", "Foo.java"),
			mustRename(t, `(\w+)\.java`, "<1>.second", "Foo.java"),
		},
	})
	require.ErrorIs(t, err, transform.ErrAmbiguousRename)
	assert.Contains(t, err.Error(), "renaming Foo.java")
}

func TestWalkContentTransformsCompose(t *testing.T) {
	fs := newTestFS(t, map[string]string{
		"file.txt": "a",
	})

	rec := &recorder{}
	summary, err := runWalk(t, Options{
		SourceFS: fs,
		Source:   testSource,
		TargetFS: fs,
		Target:   testTarget,
		ContentTransforms: []*transform.ContentTransform{
			mustReplace(t, "a", "b"),
			mustReplace(t, "b", "c"),
		},
		Reporter: rec,
	})
	require.NoError(t, err)

	assert.Equal(t, map[string]string{"file.txt": "c"}, readTree(t, fs, testTarget))
	assert.Equal(t, 2, summary.Replacements)
	assert.Empty(t, rec.diffs, "diffs are only reported on dry runs")
}

func TestWalkIgnorePatterns(t *testing.T) {
	fs := newTestFS(t, map[string]string{
		"Main.java":          "main",
		"Main.java.orig":     "old",
		"docs/guide.md":      "guide",
		"docs/draft/wip.md":  "wip",
		"other/draft/wip.md": "kept",
	})

	ignore, err := project.NewIgnoreSet("**/*.orig", "docs/draft/**")
	require.NoError(t, err)

	summary, err := runWalk(t, Options{
		SourceFS: fs,
		Source:   testSource,
		TargetFS: fs,
		Target:   testTarget,
		Ignore:   ignore,
	})
	require.NoError(t, err)

	tree := readTree(t, fs, testTarget)
	assert.Contains(t, tree, "Main.java")
	assert.Contains(t, tree, "docs/guide.md")
	assert.Contains(t, tree, "other/draft/wip.md")
	assert.NotContains(t, tree, "Main.java.orig")
	assert.NotContains(t, tree, "docs/draft/wip.md")
	assert.Equal(t, 2, summary.Ignored)
}

func TestWalkSecondRunFailsOnCollision(t *testing.T) {
	fs := newTestFS(t, map[string]string{
		"a.txt":   "a",
		"b/c.txt": "c",
	})

	opts := Options{
		SourceFS: fs,
		Source:   testSource,
		TargetFS: fs,
		Target:   testTarget,
	}

	_, err := runWalk(t, opts)
	require.NoError(t, err)

	summary, err := runWalk(t, opts)
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrExist)

	var ioErr *IOError
	require.True(t, errors.As(err, &ioErr))
	assert.Equal(t, filepath.Join(testTarget, "a.txt"), ioErr.Path)

	// the root already existed, the walk stopped at the first file
	assert.Equal(t, status.Summary{Dirs: 1}, summary)
}

func TestWalkDryRunWritesNothing(t *testing.T) {
	fs := newTestFS(t, map[string]string{
		"Sample.java": "package org.example;\n",
		"sub/x.txt":   "x",
	})

	rec := &recorder{}
	summary, err := runWalk(t, Options{
		SourceFS:          fs,
		Source:            testSource,
		TargetFS:          fs,
		Target:            testTarget,
		NameTransforms:    []*transform.PathTransform{mustRename(t, `([A-Za-z]+)\.java`, "<1>.cxx", "Sample.java")},
		ContentTransforms: []*transform.ContentTransform{mustReplace(t, "org.example", "com.acme")},
		DryRun:            true,
		Reporter:          rec,
	})
	require.NoError(t, err)

	_, err = fs.Stat(testTarget)
	assert.ErrorIs(t, err, os.ErrNotExist)

	assert.True(t, summary.DryRun)
	assert.Equal(t, 2, summary.Files)
	assert.Equal(t, 2, summary.Dirs)
	assert.Equal(t, map[string]string{
		"Sample.java": "-package org.example;\n+package com.acme;\n",
	}, rec.diffs)
	for _, e := range rec.entries {
		assert.True(t, e.DryRun, "entry %s", e.Path)
	}
}

func TestWalkTargetParentMustExist(t *testing.T) {
	fs := newTestFS(t, map[string]string{
		"a.txt": "a",
	})

	_, err := runWalk(t, Options{
		SourceFS: fs,
		Source:   testSource,
		TargetFS: fs,
		Target:   "/missing/parent/out",
	})
	require.Error(t, err)

	var ioErr *IOError
	require.True(t, errors.As(err, &ioErr))
	assert.Equal(t, "creating directory", ioErr.Op)

	_, err = fs.Stat("/missing")
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestWalkTargetIsAFile(t *testing.T) {
	fs := newTestFS(t, map[string]string{
		"a.txt": "a",
	})
	require.NoError(t, util.WriteFile(fs, testTarget, []byte("not a dir"), 0o644))

	_, err := runWalk(t, Options{
		SourceFS: fs,
		Source:   testSource,
		TargetFS: fs,
		Target:   testTarget,
	})
	assert.ErrorIs(t, err, ErrNotDirectory)
}

func TestWalkMissingSource(t *testing.T) {
	fs := memfs.New()

	_, err := runWalk(t, Options{
		SourceFS: fs,
		Source:   "/nowhere",
		TargetFS: fs,
		Target:   testTarget,
	})
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestWalkExcludedRoot(t *testing.T) {
	tests := []struct {
		name   string
		source string
	}{
		{name: "java_build_folder", source: "/work/target"},
		{name: "git_folder", source: "/work/.git"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := memfs.New()
			require.NoError(t, util.WriteFile(fs, filepath.Join(tt.source, "a.txt"), []byte("a"), 0o644))
			require.NoError(t, fs.MkdirAll(filepath.Join(tt.source, "sub"), 0o755))

			rec := &recorder{}
			summary, err := runWalk(t, Options{
				SourceFS:   fs,
				Source:     tt.source,
				TargetFS:   fs,
				Target:     testTarget,
				Exclusions: project.NewExclusionSet(project.DefaultTypes()...),
				Reporter:   rec,
			})
			require.NoError(t, err)

			assert.Equal(t, status.Summary{Excluded: 1}, summary)
			require.Len(t, rec.entries, 1)
			assert.Equal(t, ".", rec.entries[0].Path)
			assert.Equal(t, status.ActionExcluded, rec.entries[0].Action)

			_, err = fs.Stat(testTarget)
			assert.ErrorIs(t, err, os.ErrNotExist, "nothing is written for an excluded root")
		})
	}
}

func TestWalkInterrupted(t *testing.T) {
	fs := newTestFS(t, map[string]string{
		"a.txt": "a",
	})

	w, err := New(Options{
		SourceFS: fs,
		Source:   testSource,
		TargetFS: fs,
		Target:   testTarget,
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(testContext(t))
	cancel()

	_, err = w.Run(ctx)
	assert.ErrorIs(t, err, ErrInterrupted)
}

func TestNewValidatesOptions(t *testing.T) {
	fs := memfs.New()

	tests := []struct {
		name      string
		opts      Options
		wantError string
	}{
		{
			name:      "missing_source_fs",
			opts:      Options{TargetFS: fs, Source: "a", Target: "b"},
			wantError: "source filesystem is required",
		},
		{
			name:      "missing_target_fs",
			opts:      Options{SourceFS: fs, Source: "a", Target: "b"},
			wantError: "target filesystem is required",
		},
		{
			name:      "missing_source",
			opts:      Options{SourceFS: fs, TargetFS: fs, Target: "b"},
			wantError: "source is required",
		},
		{
			name:      "missing_target",
			opts:      Options{SourceFS: fs, TargetFS: fs, Source: "a"},
			wantError: "target is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.opts)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantError)
		})
	}
}

func TestWalkOnDisk(t *testing.T) {
	root := t.TempDir()
	fs := osfs.New(root)

	require.NoError(t, fs.MkdirAll("template/bin", 0o755))
	require.NoError(t, util.WriteFile(fs, "template/bin/run.sh", []byte("#!/bin/sh\necho org.example\n"), 0o755))
	require.NoError(t, util.WriteFile(fs, "template/Sample.java", []byte("class Sample {}"), 0o644))
	require.NoError(t, fs.MkdirAll("template/.git/objects", 0o755))
	require.NoError(t, util.WriteFile(fs, "template/.git/HEAD", []byte("ref"), 0o644))
	require.NoError(t, os.Symlink(filepath.Join(root, "template", "Sample.java"), filepath.Join(root, "template", "link.txt")))

	opts := Options{
		SourceFS:          fs,
		Source:            "template",
		TargetFS:          fs,
		Target:            "out",
		Exclusions:        project.NewExclusionSet(project.Git),
		NameTransforms:    []*transform.PathTransform{mustRename(t, `([A-Za-z]+)\.java`, "<1>.cxx", "Sample.java")},
		ContentTransforms: []*transform.ContentTransform{mustReplace(t, "org.example", "com.acme")},
	}

	summary, err := runWalk(t, opts)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Ignored, "the symlink is skipped")

	_, err = os.Lstat(filepath.Join(root, "out", "link.txt"))
	assert.ErrorIs(t, err, os.ErrNotExist, "symlinks are not copied")

	content, err := os.ReadFile(filepath.Join(root, "out", "bin", "run.sh"))
	require.NoError(t, err)
	assert.Equal(t, "#!/bin/sh\necho com.acme\n", string(content))

	info, err := os.Stat(filepath.Join(root, "out", "bin", "run.sh"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o755), info.Mode().Perm()&0o755, "executable bit is kept")

	_, err = os.Stat(filepath.Join(root, "out", "Sample.cxx"))
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(root, "out", ".git"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	// a second run must not overwrite anything
	require.NoError(t, os.WriteFile(filepath.Join(root, "out", "Sample.cxx"), []byte("edited"), 0o644))
	_, err = runWalk(t, opts)
	assert.ErrorIs(t, err, os.ErrExist)

	content, err = os.ReadFile(filepath.Join(root, "out", "Sample.cxx"))
	require.NoError(t, err)
	assert.Equal(t, "edited", string(content))
}
