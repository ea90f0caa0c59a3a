// Copyright 2025 The LangChain Codemods Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const configName = ".lcmod.yml"

// Config is the optional per-project configuration file.
type Config struct {
	// Rules restricts which rewrites run; empty means all.
	Rules []string `yaml:"rules"`

	// Target is the default migration target version, e.g. "v1.0.0".
	Target string `yaml:"target"`

	// Exclude lists glob patterns of files to skip during discovery,
	// matched against slash-separated paths relative to the scan root.
	Exclude []string `yaml:"exclude"`
}

// loadConfig reads .lcmod.yml from dir. A missing file yields the zero
// config; a malformed one is an error.
func loadConfig(dir string) (*Config, error) {
	data, err := os.ReadFile(filepath.Join(dir, configName))
	if os.IsNotExist(err) {
		return &Config{}, nil
	}
	if err != nil {
		return nil, err
	}
	cfg := new(Config)
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", configName, err)
	}
	return cfg, nil
}

// excluded reports whether rel matches any of the config's exclude
// patterns, either fully or by one of its path components.
func (c *Config) excluded(rel string) bool {
	rel = filepath.ToSlash(rel)
	for _, pat := range c.Exclude {
		if ok, _ := filepath.Match(pat, rel); ok {
			return true
		}
		if ok, _ := filepath.Match(pat, filepath.Base(rel)); ok {
			return true
		}
	}
	return false
}
