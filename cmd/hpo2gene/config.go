// Copyright The Prometheus Authors
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/hpo2gene/hpo2gene/mapper"
)

const (
	strategyEager     = "eager"
	strategyStreaming = "streaming"
)

// Config is the on-disk configuration. Command line flags take precedence.
type Config struct {
	Source    string `yaml:"source"`
	Strategy  string `yaml:"strategy"`
	RowPolicy string `yaml:"row_policy"`
}

func defaultConfig() Config {
	return Config{
		Strategy:  strategyEager,
		RowPolicy: mapper.Strict.String(),
	}
}

func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("unable to read config: %w", err)
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, fmt.Errorf("unable to parse config %s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.Source == "" {
		return fmt.Errorf("no source given, set --source or source in the config file")
	}
	switch c.Strategy {
	case strategyEager, strategyStreaming:
	default:
		return fmt.Errorf("unknown strategy %q, expected %q or %q", c.Strategy, strategyEager, strategyStreaming)
	}
	if _, err := mapper.ParseRowPolicy(c.RowPolicy); err != nil {
		return err
	}
	return nil
}
