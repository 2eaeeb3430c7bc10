// Package config provides the configuration of textcore tools.
//
// Settings come from three sources, later ones overriding earlier ones:
//
//  1. Built-in defaults (Default)
//  2. The TOML file, by default $XDG_CONFIG_HOME/textcore/config.toml
//  3. TEXTCORE_* environment variables
//
// A complete file looks like this:
//
//	[buffer]
//	initialCapacity = 1024
//	growthFactor = 2.0
//	growthSlack = 64
//	lineCapacity = 64
//
//	[search]
//	matchCase = true
//	regexp = false
//
//	[log]
//	level = "info"      # debug, info, warn, error
//	format = "console"  # console, json
//
// Environment variables name a section and a setting, for example
// TEXTCORE_BUFFER_GROWTH_FACTOR=1.5 or TEXTCORE_SEARCH_REGEXP=true.
//
// # Basic Usage
//
//	cfg, err := config.Load(config.DefaultPath())
//	if err != nil {
//	    return err
//	}
//	e := engine.New(cfg.EngineOptions()...)
package config
