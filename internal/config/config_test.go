package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{
		"ENGINE_INTERPRETER", "ENGINE_SCRIPT", "ENGINE_QUERY_FLAG", "ENGINE_TIMEOUT",
		"ENGINE_ARGS", "MAX_QUERY_BYTES", "SITE_TITLE",
	} {
		t.Setenv(key, "")
	}

	cfg := Load()

	if cfg.EngineInterpreter != "python3" {
		t.Errorf("EngineInterpreter = %q, want %q", cfg.EngineInterpreter, "python3")
	}
	if cfg.EngineScript != "accumulator.py" {
		t.Errorf("EngineScript = %q, want %q", cfg.EngineScript, "accumulator.py")
	}
	if cfg.EngineQueryFlag != "-q" {
		t.Errorf("EngineQueryFlag = %q, want %q", cfg.EngineQueryFlag, "-q")
	}
	if cfg.EngineTimeout != 0 {
		t.Errorf("EngineTimeout = %v, want no timeout", cfg.EngineTimeout)
	}
	if cfg.EngineArgs != nil {
		t.Errorf("EngineArgs = %v, want nil", cfg.EngineArgs)
	}
	if cfg.MaxQueryBytes != 131071 {
		t.Errorf("MaxQueryBytes = %d, want 131071", cfg.MaxQueryBytes)
	}
	if cfg.SiteTitle != "QuerySearch" {
		t.Errorf("SiteTitle = %q, want %q", cfg.SiteTitle, "QuerySearch")
	}
}

func TestGetEnvDuration(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		fallback time.Duration
		want     time.Duration
	}{
		{"unset uses fallback", "", time.Minute, time.Minute},
		{"go duration", "1500ms", 0, 1500 * time.Millisecond},
		{"plain seconds", "30", 0, 30 * time.Second},
		{"garbage uses fallback", "soon", 5 * time.Second, 5 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("TEST_DURATION", tt.value)
			if got := getEnvDuration("TEST_DURATION", tt.fallback); got != tt.want {
				t.Errorf("getEnvDuration() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGetEnvWords(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  []string
	}{
		{"unset", "", nil},
		{"simple words", "-v --fast", []string{"-v", "--fast"}},
		{"quoted space", `-d "my index"`, []string{"-d", "my index"}},
		{"unterminated quote ignored", `-d "oops`, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("TEST_WORDS", tt.value)
			if got := getEnvWords("TEST_WORDS"); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("getEnvWords() = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestGetEnvList(t *testing.T) {
	t.Setenv("TEST_LIST", " dict, post ,,map ")
	want := []string{"dict", "post", "map"}
	if got := getEnvList("TEST_LIST"); !reflect.DeepEqual(got, want) {
		t.Errorf("getEnvList() = %#v, want %#v", got, want)
	}
}

func TestLoadYAMLConfigFile_Missing(t *testing.T) {
	cfg, err := LoadYAMLConfigFile(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("LoadYAMLConfigFile() error = %v", err)
	}
	if cfg != nil {
		t.Errorf("LoadYAMLConfigFile() = %+v, want nil", cfg)
	}
}

func TestApplyYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := `engine:
  interpreter: /usr/bin/python3
  script: /srv/engine/accumulator.py
  index_dir: /srv/index
  args: ["--top", "10"]
  env: ["PYTHONIOENCODING=latin-1"]
  timeout: 20s
  required_files: [dict, post, map]
`
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}

	y, err := LoadYAMLConfigFile(path)
	if err != nil {
		t.Fatalf("LoadYAMLConfigFile() error = %v", err)
	}

	t.Setenv("ENGINE_INTERPRETER", "")
	t.Setenv("ENGINE_SCRIPT", "custom.py")
	t.Setenv("ENGINE_TIMEOUT", "")
	t.Setenv("ENGINE_ARGS", "")
	t.Setenv("ENGINE_INDEX_DIR", "")
	t.Setenv("ENGINE_REQUIRED_FILES", "")

	cfg := Load()
	cfg.ApplyYAML(y)

	if cfg.EngineInterpreter != "/usr/bin/python3" {
		t.Errorf("EngineInterpreter = %q, want YAML value", cfg.EngineInterpreter)
	}
	if cfg.EngineScript != "custom.py" {
		t.Errorf("EngineScript = %q, want env value to win", cfg.EngineScript)
	}
	if cfg.EngineIndexDir != "/srv/index" {
		t.Errorf("EngineIndexDir = %q, want %q", cfg.EngineIndexDir, "/srv/index")
	}
	if cfg.EngineTimeout != 20*time.Second {
		t.Errorf("EngineTimeout = %v, want 20s", cfg.EngineTimeout)
	}
	if !reflect.DeepEqual(cfg.EngineArgs, []string{"--top", "10"}) {
		t.Errorf("EngineArgs = %v", cfg.EngineArgs)
	}
	if !reflect.DeepEqual(cfg.EngineEnv, []string{"PYTHONIOENCODING=latin-1"}) {
		t.Errorf("EngineEnv = %v", cfg.EngineEnv)
	}
	if !reflect.DeepEqual(cfg.EngineRequiredFiles, []string{"dict", "post", "map"}) {
		t.Errorf("EngineRequiredFiles = %v", cfg.EngineRequiredFiles)
	}
}

func TestApplyYAML_Nil(t *testing.T) {
	cfg := &Config{EngineInterpreter: "python3"}
	cfg.ApplyYAML(nil)
	if cfg.EngineInterpreter != "python3" {
		t.Errorf("ApplyYAML(nil) changed EngineInterpreter to %q", cfg.EngineInterpreter)
	}
}
