package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"hotseatchess/src/logx"
	"os"
)

const DefaultPath = "hotseat.json"

type Config struct {
	LogLevel  string `json:"log_level"`  // debug/info/warn/error
	LogFile   string `json:"log_file"`   // path, ignored with console
	Dev       bool   `json:"dev"`        // development encoder
	Console   bool   `json:"console"`    // log to stdout in console encoding
	AutoQueen bool   `json:"auto_queen"` // promote without asking
	KeepMarks bool   `json:"keep_marks"` // keep right-click marks on left click
	ASCII     bool   `json:"ascii"`      // letters instead of unicode glyphs
	path      string
}

func defaultConfig() Config {
	return Config{
		LogLevel:  "info",
		LogFile:   "hotseat.log",
		Dev:       false,
		Console:   false,
		AutoQueen: false,
		KeepMarks: false,
		ASCII:     false,
	}
}

// NewConfig loads path, or returns defaults when the file does not exist.
// Out of range values are corrected to defaults.
func NewConfig(path string) (*Config, error) {
	if path == "" {
		path = DefaultPath
	}

	conf, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		def := defaultConfig()
		def.path = path
		return &def, nil
	} else if err != nil {
		return nil, err
	}
	defer conf.Close()

	c := defaultConfig()
	dec := json.NewDecoder(conf)
	if err := dec.Decode(&c); err != nil {
		return nil, fmt.Errorf("error decode config: %w", err)
	}
	correctableConfig(&c)
	c.path = path

	return &c, nil
}

func (c *Config) Path() string { return c.path }

func (c *Config) Save() error {
	file := c.path
	if file == "" {
		file = DefaultPath
	}
	jsonData, err := json.MarshalIndent(c, "", "    ")
	if err != nil {
		return err
	}
	return os.WriteFile(file, jsonData, 0644)
}

func correctableConfig(c *Config) {
	def := defaultConfig()
	if !logx.IsLevelName(c.LogLevel) {
		c.LogLevel = def.LogLevel
	}
	if c.LogFile == "" {
		c.LogFile = def.LogFile
	}
}
