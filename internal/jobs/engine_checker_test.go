package jobs

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"querysearch/internal/config"
)

func writeFile(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestEngineChecker_Check(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "accumulator.py"))
	writeFile(t, filepath.Join(dir, "index", "dict"))
	writeFile(t, filepath.Join(dir, "index", "post"))
	writeFile(t, filepath.Join(dir, "dict"))

	tests := []struct {
		name         string
		cfg          *config.Config
		wantReady    bool
		wantProblems int
	}{
		{
			name: "all present in work dir",
			cfg: &config.Config{
				EngineInterpreter:   "sh",
				EngineScript:        "accumulator.py",
				EngineWorkDir:       dir,
				EngineRequiredFiles: []string{"dict"},
			},
			wantReady: true,
		},
		{
			name: "index dir relative to work dir",
			cfg: &config.Config{
				EngineInterpreter:   "sh",
				EngineScript:        "accumulator.py",
				EngineWorkDir:       dir,
				EngineIndexDir:      "index",
				EngineRequiredFiles: []string{"dict", "post"},
			},
			wantReady: true,
		},
		{
			name: "missing index file",
			cfg: &config.Config{
				EngineInterpreter:   "sh",
				EngineScript:        "accumulator.py",
				EngineWorkDir:       dir,
				EngineIndexDir:      "index",
				EngineRequiredFiles: []string{"dict", "post", "map"},
			},
			wantReady:    false,
			wantProblems: 1,
		},
		{
			name: "missing interpreter and script",
			cfg: &config.Config{
				EngineInterpreter: "definitely-not-a-python-binary",
				EngineScript:      filepath.Join(dir, "nope.py"),
			},
			wantReady:    false,
			wantProblems: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checker := NewEngineChecker(tt.cfg)
			status := checker.Check()
			if status.Ready != tt.wantReady {
				t.Errorf("Ready = %v, want %v (problems %v)", status.Ready, tt.wantReady, status.Problems)
			}
			if len(status.Problems) != tt.wantProblems {
				t.Errorf("Problems = %v, want %d", status.Problems, tt.wantProblems)
			}
			if checker.Status().CheckedAt.IsZero() {
				t.Error("Status() not updated after Check()")
			}
		})
	}
}

func TestEngineChecker_StartStops(t *testing.T) {
	checker := NewEngineChecker(&config.Config{
		EngineInterpreter:   "sh",
		EngineCheckInterval: 10 * time.Millisecond,
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- checker.Start(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Start() error = %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Start() did not return after cancel")
	}

	if !checker.Status().Ready {
		t.Errorf("Status() = %+v, want ready", checker.Status())
	}
}
