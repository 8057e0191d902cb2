package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// YAMLConfig represents the structure of the config.yaml file.
// The engine invocation is easier to describe as a list of arguments in
// YAML than as env vars.
type YAMLConfig struct {
	Engine EngineConfig `yaml:"engine"`
}

// EngineConfig describes how the external query engine is invoked.
type EngineConfig struct {
	Interpreter    string        `yaml:"interpreter"`
	Script         string        `yaml:"script"`
	QueryFlag      string        `yaml:"query_flag"`
	IndexDir       string        `yaml:"index_dir,omitempty"`
	Args           []string      `yaml:"args,omitempty"`
	Env            []string      `yaml:"env,omitempty"` // KEY=VALUE
	WorkDir        string        `yaml:"work_dir,omitempty"`
	Timeout        time.Duration `yaml:"timeout,omitempty"`
	MaxOutputBytes int64         `yaml:"max_output_bytes,omitempty"`
	MaxConcurrent  int64         `yaml:"max_concurrent,omitempty"`
	RequiredFiles  []string      `yaml:"required_files,omitempty"`
	CheckInterval  time.Duration `yaml:"check_interval,omitempty"`
}

// LoadYAMLConfig loads the YAML configuration file.
// Path is determined by CONFIG_FILE env var, defaulting to "config.yaml".
// Returns nil without error if the config file doesn't exist.
func LoadYAMLConfig() (*YAMLConfig, error) {
	return LoadYAMLConfigFile(getEnv("CONFIG_FILE", "config.yaml"))
}

// LoadYAMLConfigFile loads the YAML configuration from path.
func LoadYAMLConfigFile(path string) (*YAMLConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// Config file is optional
			return nil, nil
		}
		return nil, err
	}

	var cfg YAMLConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// ApplyYAML copies engine settings from the YAML file into c.
// Settings whose env var is set keep the env value.
func (c *Config) ApplyYAML(y *YAMLConfig) {
	if y == nil {
		return
	}
	e := y.Engine

	if e.Interpreter != "" && !isEnvSet("ENGINE_INTERPRETER") {
		c.EngineInterpreter = e.Interpreter
	}
	if e.Script != "" && !isEnvSet("ENGINE_SCRIPT") {
		c.EngineScript = e.Script
	}
	if e.QueryFlag != "" && !isEnvSet("ENGINE_QUERY_FLAG") {
		c.EngineQueryFlag = e.QueryFlag
	}
	if e.IndexDir != "" && !isEnvSet("ENGINE_INDEX_DIR") {
		c.EngineIndexDir = e.IndexDir
	}
	if len(e.Args) > 0 && !isEnvSet("ENGINE_ARGS") {
		c.EngineArgs = e.Args
	}
	if len(e.Env) > 0 {
		c.EngineEnv = e.Env
	}
	if e.WorkDir != "" && !isEnvSet("ENGINE_WORK_DIR") {
		c.EngineWorkDir = e.WorkDir
	}
	if e.Timeout > 0 && !isEnvSet("ENGINE_TIMEOUT") {
		c.EngineTimeout = e.Timeout
	}
	if e.MaxOutputBytes > 0 && !isEnvSet("ENGINE_MAX_OUTPUT_BYTES") {
		c.EngineMaxOutputBytes = e.MaxOutputBytes
	}
	if e.MaxConcurrent > 0 && !isEnvSet("ENGINE_MAX_CONCURRENT") {
		c.EngineMaxConcurrent = e.MaxConcurrent
	}
	if len(e.RequiredFiles) > 0 && !isEnvSet("ENGINE_REQUIRED_FILES") {
		c.EngineRequiredFiles = e.RequiredFiles
	}
	if e.CheckInterval > 0 && !isEnvSet("ENGINE_CHECK_INTERVAL") {
		c.EngineCheckInterval = e.CheckInterval
	}
}
