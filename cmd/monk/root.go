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

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/go-git/go-billy/v5/osfs"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/monk/pkg/config"
	"github.com/walteh/monk/pkg/log"
	"github.com/walteh/monk/pkg/walker"
)

// rootOpts holds the values of every root flag
type rootOpts struct {
	source     string
	target     string
	configFile string
	projs      []string
	renames    []string
	replaces   []string
	ignore     []string
	strict     bool
	dryRun     bool
	verbose    bool
	logFile    string

	stdout io.Writer
	stderr io.Writer
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	opts := &rootOpts{stdout: stdout, stderr: stderr}

	cmd := &cobra.Command{
		Use:   "monk -s <source> -t <target>",
		Short: "Create a new project tree from a template directory",
		Long: `monk copies a template directory into a new directory tree.

Project metadata folders are left behind, file names are rewritten with
regular expressions and file contents with literal search and replace.`,
		Example: `  monk -s ./template -t ../widget \
    --regex '([A-Za-z]+)\.java,<1>.kt,Sample.java' \
    --replace 'org.example,com.acme'

  monk -s ./template -t ../widget -c monk.hcl --dry-run`,
		Args:          cobra.NoArgs,
		Version:       GetVersionInfo().Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.run(cmd.Context())
		},
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetVersionTemplate(FormatVersion())

	flags := cmd.Flags()
	flags.StringVarP(&opts.source, "source", "s", "", "template directory to copy from")
	flags.StringVarP(&opts.target, "target", "t", "", "directory to create")
	flags.StringSliceVarP(&opts.projs, "projs", "p", nil, "project types whose folders are left behind (default GIT,JAVA)")
	flags.StringArrayVar(&opts.renames, "regex", nil, `file rename rule "pattern,template,sample", repeatable`)
	flags.StringArrayVar(&opts.replaces, "replace", nil, `content rule "search,replace", repeatable`)
	flags.StringArrayVar(&opts.ignore, "ignore", nil, "glob of files to leave behind, repeatable")
	flags.StringVarP(&opts.configFile, "config", "c", "", "config file (.hcl, .toml, .yaml, .yml or .json)")
	flags.BoolVar(&opts.strict, "strict", false, "fail when a file name matches more than one rename rule")
	flags.BoolVarP(&opts.dryRun, "dry-run", "n", false, "show what would be done without writing anything")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")
	flags.StringVar(&opts.logFile, "log-file", "", "also write JSON logs to this file, rotated")

	_ = cmd.MarkFlagRequired("source")
	_ = cmd.MarkFlagRequired("target")

	return cmd
}

func (o *rootOpts) run(ctx context.Context) error {
	// console only until the paths are vetted, the log file is a write too
	zlog, _, err := newLogger(o.stderr, o.verbose, "")
	if err != nil {
		return err
	}
	configureColor(o.stdout)

	plan, err := o.plan(zlog.WithContext(ctx))
	if err != nil {
		return err
	}

	cwd, err := os.Getwd()
	if err != nil {
		return errors.Errorf("getting working directory: %w", err)
	}
	paths, err := config.CheckPaths(o.source, o.target, cwd)
	if err != nil {
		return err
	}

	if o.logFile != "" {
		fileLog, closer, err := newLogger(o.stderr, o.verbose, o.logFile)
		if err != nil {
			return err
		}
		defer closer.Close()
		zlog = fileLog
	}

	ctx = zlog.WithContext(ctx)
	logger := log.New(o.stdout, zlog)
	ctx = log.NewContext(ctx, logger)

	header := fmt.Sprintf("%s → %s", paths.Source, paths.Target)
	if plan.Strict {
		header += " (strict)"
	}
	if o.dryRun {
		header += " (dry run)"
	}
	logger.Header(header)
	if plan.ConfigFile != "" {
		logger.Infof("rules from %s", plan.ConfigFile)
	}
	o.printPlan(ctx, plan)

	fs := osfs.New("/")
	w, err := walker.New(walker.Options{
		SourceFS:          fs,
		Source:            paths.Source,
		TargetFS:          fs,
		Target:            paths.Target,
		Exclusions:        plan.Exclusions,
		Ignore:            plan.Ignore,
		NameTransforms:    plan.NameTransforms,
		ContentTransforms: plan.ContentTransforms,
		Strict:            plan.Strict,
		DryRun:            o.dryRun,
		Reporter:          logger,
	})
	if err != nil {
		return errors.Errorf("creating walker: %w", err)
	}

	summary, err := w.Run(ctx)
	logger.LogNewline()
	if err != nil {
		logger.Errorf("stopped after %s", summary.String())
		return errors.Errorf("copying %s to %s: %w", paths.Source, paths.Target, err)
	}

	logger.Successf("%s into %s", summary.String(), paths.Target)
	return nil
}

// plan merges the config file and the flags, then compiles every rule
func (o *rootOpts) plan(ctx context.Context) (*config.Plan, error) {
	cfg := &config.Config{}
	if o.configFile != "" {
		loaded, err := config.Load(ctx, o.configFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	flagCfg, err := config.FromArgs(config.Args{
		ProjectTypes: o.projs,
		Renames:      o.renames,
		Replaces:     o.replaces,
		Ignore:       o.ignore,
		Strict:       o.strict,
	})
	if err != nil {
		return nil, err
	}
	cfg.Merge(flagCfg)

	return cfg.Compile()
}

// printPlan shows the compiled rules before anything is copied
func (o *rootOpts) printPlan(ctx context.Context, plan *config.Plan) {
	logger := log.FromContext(ctx)

	types := make([]string, 0, len(plan.Types))
	for _, t := range plan.Types {
		types = append(types, fmt.Sprintf("%s (%s)", t, strings.Join(t.FoldersToExclude(), ", ")))
	}
	logger.Infof("excluding folders: %s", strings.Join(types, ", "))
	if patterns := plan.Ignore.Patterns(); len(patterns) > 0 {
		logger.Infof("ignoring files matching: %s", strings.Join(patterns, ", "))
	}

	if len(plan.NameTransforms) == 0 && len(plan.ContentTransforms) == 0 {
		logger.LogNewline()
		return
	}

	data := pterm.TableData{{"Rule", "Match", "Becomes", "Example"}}
	for _, t := range plan.NameTransforms {
		data = append(data, []string{"rename", t.Pattern(), t.Template(), t.Sample() + " → " + t.Preview()})
	}
	for _, t := range plan.ContentTransforms {
		data = append(data, []string{"replace", t.Search(), t.Replace(), ""})
	}

	table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		logger.Warningf("rendering rules: %v", err)
		return
	}
	fmt.Fprintf(o.stdout, "\n%s\n\n", table)
}
