package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"time"

	"querysearch/internal/config"
	"querysearch/internal/metrics"
	"querysearch/internal/models"
)

// EngineChecker periodically verifies that the query engine can run:
// the interpreter resolves, the script exists and the index files the
// engine opens are present.
type EngineChecker struct {
	interpreter   string
	script        string
	workDir       string
	indexDir      string
	requiredFiles []string
	interval      time.Duration

	mu     sync.RWMutex
	status models.EngineStatus
}

// NewEngineChecker creates a new engine checker.
func NewEngineChecker(cfg *config.Config) *EngineChecker {
	return &EngineChecker{
		interpreter:   cfg.EngineInterpreter,
		script:        cfg.EngineScript,
		workDir:       cfg.EngineWorkDir,
		indexDir:      cfg.EngineIndexDir,
		requiredFiles: cfg.EngineRequiredFiles,
		interval:      cfg.EngineCheckInterval,
	}
}

// Start begins the background check loop. It returns when ctx is done.
func (h *EngineChecker) Start(ctx context.Context) error {
	slog.Info("engine checker started", "interval", h.interval)

	// Run immediately on start
	h.Check()

	if h.interval <= 0 {
		<-ctx.Done()
		return nil
	}

	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("engine checker stopped")
			return nil
		case <-ticker.C:
			h.Check()
		}
	}
}

// Check runs one readiness check and stores the result.
func (h *EngineChecker) Check() models.EngineStatus {
	var problems []string

	if _, err := exec.LookPath(h.interpreter); err != nil {
		problems = append(problems, fmt.Sprintf("interpreter %q not found", h.interpreter))
	}

	if h.script != "" {
		if _, err := os.Stat(h.resolve(h.workDir, h.script)); err != nil {
			problems = append(problems, fmt.Sprintf("script %q not found", h.script))
		}
	}

	// The engine opens its index files relative to the index dir when one
	// is configured, else relative to its working directory.
	base := h.workDir
	if h.indexDir != "" {
		base = h.resolve(h.workDir, h.indexDir)
	}
	for _, name := range h.requiredFiles {
		if _, err := os.Stat(h.resolve(base, name)); err != nil {
			problems = append(problems, fmt.Sprintf("index file %q not found", name))
		}
	}

	status := models.EngineStatus{
		Ready:     len(problems) == 0,
		Problems:  problems,
		CheckedAt: time.Now(),
	}

	h.mu.Lock()
	changed := h.status.CheckedAt.IsZero() || h.status.Ready != status.Ready
	h.status = status
	h.mu.Unlock()

	metrics.SetEngineUp(status.Ready)
	if changed {
		if status.Ready {
			slog.Info("query engine ready")
		} else {
			slog.Warn("query engine not ready", "problems", problems)
		}
	}

	return status
}

// Status returns the most recent check result.
func (h *EngineChecker) Status() models.EngineStatus {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.status
}

func (h *EngineChecker) resolve(base, name string) string {
	if filepath.IsAbs(name) || base == "" {
		return name
	}
	return filepath.Join(base, name)
}
