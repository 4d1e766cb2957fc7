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
	"fmt"

	"github.com/walteh/monk/pkg/project"
	"github.com/walteh/monk/pkg/transform"
)

// 📋 Plan is a fully validated Config, ready for the walker
type Plan struct {
	Types             []project.Type
	Exclusions        project.ExclusionSet
	Ignore            *project.IgnoreSet
	NameTransforms    []*transform.PathTransform
	ContentTransforms []*transform.ContentTransform
	Strict            bool

	// ConfigFile is the file the rules were loaded from, empty for flags only
	ConfigFile string
}

// 🔨 Compile validates every rule of the config. Nothing is touched on disk,
// so all configuration mistakes surface before the walk starts.
func (cfg *Config) Compile() (*Plan, error) {
	plan := &Plan{Strict: cfg.Strict, ConfigFile: cfg.Location()}

	if len(cfg.ProjectTypes) == 0 {
		plan.Types = project.DefaultTypes()
	} else {
		types, err := project.ParseTypes(cfg.ProjectTypes)
		if err != nil {
			return nil, configError("project types", err)
		}
		plan.Types = types
	}
	plan.Exclusions = project.NewExclusionSet(plan.Types...)

	ignore, err := project.NewIgnoreSet(cfg.Ignore...)
	if err != nil {
		return nil, configError("ignore", err)
	}
	plan.Ignore = ignore

	for i, rule := range cfg.Renames {
		t, err := transform.NewPathTransform(rule.Pattern, rule.Template, rule.Sample)
		if err != nil {
			return nil, configError(ruleName("rename", rule.Name, i), err)
		}
		plan.NameTransforms = append(plan.NameTransforms, t)
	}

	for i, rule := range cfg.Replaces {
		t, err := transform.NewContentTransform(rule.Search, rule.With)
		if err != nil {
			return nil, configError(ruleName("replace", rule.Name, i), err)
		}
		plan.ContentTransforms = append(plan.ContentTransforms, t)
	}

	return plan, nil
}

func ruleName(kind, name string, i int) string {
	if name != "" {
		return fmt.Sprintf("%s %q", kind, name)
	}
	return fmt.Sprintf("%s #%d", kind, i+1)
}
