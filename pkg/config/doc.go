// Package config turns monk's flags and config files into a validated plan.
//
// 	            +-------------+
// 	            |   Config    |
// 	            |   (rules)   |
// 	            +------+------+
// 	                   |
// 	     +-----------+-----+-----+-----------+
// 	     |           |           |           |
// 	+----+---+  +----+---+  +----+---+  +----+---+
// 	|  HCL   |  |  TOML  |  |  YAML  |  |  JSON  |
// 	| Parser |  | Parser |  | Parser |  | Parser |
// 	+--------+  +--------+  +--------+  +--------+
// 	                   |
// 	            +------+------+
// 	            |    Plan     |
// 	            | (compiled)  |
// 	            +-------------+
//
// 🎯 Purpose:
// - Parse --regex "pattern,template,sample" and --replace "search,replace"
// - Load rules from a config file, picked by file extension
// - Compile every rule before the first file is touched
// - Check that source and target are safe to use
//
// 🔄 Flow:
// 1. Load the config file, if any
// 2. Merge flag rules after file rules, flags win for project types
// 3. Compile into a Plan: exclusions, ignores, renames, replacements
// 4. CheckPaths resolves and vets source and target
//
// A rule that does not compile is a *ConfigError. A bad source or target is an
// ErrPrecondition. Both surface before the walk starts.
//
// 🔍 Example (HCL):
//
// 	project_types = ["GIT", "JAVA"]
// 	ignore        = ["**/*.orig"]
//
// 	rename "java_to_cxx" {
// 	  pattern  = "([A-Za-z]+)\\.java"
// 	  template = "<1>.cxx"
// 	  sample   = "Sample.java"
// 	}
//
// 	replace "package" {
// 	  search = "org.example"
// 	  with   = "com.acme"
// 	}
package config
