/*
SPDX-License-Identifier: Apache-2.0

Copyright 2024 The Lispy Authors
*/

// Package config loads the REPL configuration from a YAML file.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	DefaultPrompt      = "> "
	DefaultHistoryFile = ".lispy_history"
)

// Config holds the settings of an interactive session
type Config struct {
	// Prompt is printed before every input line
	Prompt string

	// HistoryFile is where line-editor history is kept. A relative path is
	// resolved against the user's home directory; empty disables history.
	HistoryFile string

	// Color enables ANSI colors for results and errors
	Color bool

	// Preload lines are evaluated in order before the first prompt
	Preload []string
}

// configDisk mirrors the YAML layout. Pointers distinguish unset keys from
// zero values.
type configDisk struct {
	Prompt      *string  `yaml:"prompt"`
	HistoryFile *string  `yaml:"history_file"`
	Color       *bool    `yaml:"color"`
	Preload     []string `yaml:"preload"`
}

// Default returns the configuration used when no file is given
func Default() *Config {
	return &Config{
		Prompt:      DefaultPrompt,
		HistoryFile: DefaultHistoryFile,
		Color:       true,
	}
}

// Load reads a configuration file. Keys missing from the file keep their
// default values.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config: empty path")
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	defer file.Close()

	cfg, err := Decode(file)
	if err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}

// Decode reads a YAML configuration document from r. Unknown keys are an
// error; an empty document yields the defaults.
func Decode(r io.Reader) (*Config, error) {
	var raw configDisk
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(&raw); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	return raw.toConfig(), nil
}

func (d *configDisk) toConfig() *Config {
	cfg := Default()
	if d.Prompt != nil {
		cfg.Prompt = *d.Prompt
	}
	if d.HistoryFile != nil {
		cfg.HistoryFile = strings.TrimSpace(*d.HistoryFile)
	}
	if d.Color != nil {
		cfg.Color = *d.Color
	}
	for _, line := range d.Preload {
		if line = strings.TrimSpace(line); line != "" {
			cfg.Preload = append(cfg.Preload, line)
		}
	}
	return cfg
}

// HistoryPath returns the absolute history file path, or "" when history is
// disabled or the home directory cannot be determined
func (c *Config) HistoryPath() string {
	if c.HistoryFile == "" {
		return ""
	}
	if filepath.IsAbs(c.HistoryFile) {
		return c.HistoryFile
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, c.HistoryFile)
}
