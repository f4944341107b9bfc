package config

import (
	"encoding/json"
	"os"
)

type Config struct {
	InputFasta   string `json:"input_fasta"`
	OutputPath   string `json:"output_path"`
	OutputFormat string `json:"output_format"`
	LineWrap     int    `json:"line_wrap"`
	LetterCase   string `json:"letter_case"`
	KeepMeta     bool   `json:"keep_meta"`
	LogFile      string `json:"log_file"`
	LogLevel     string `json:"log_level"`
}

// LoadConfig loads a JSON config from the given path. If path is empty, looks for ./config.json.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		path = "config.json"
	}
	f, err := os.Open(path)
	if err != nil {
		// not fatal: return defaults
		return &Config{}, nil
	}
	defer f.Close()
	var c Config
	dec := json.NewDecoder(f)
	if err := dec.Decode(&c); err != nil {
		return nil, err
	}
	return &c, nil
}
