// Package testutil provides test utilities and helpers.
package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// Stand-in engine scripts, run with /bin/sh.
const (
	// EchoArgsScript prints its argument count and each argument in brackets.
	EchoArgsScript = `printf 'argc=%s\n' "$#"
for arg in "$@"; do
	printf 'arg=[%s]\n' "$arg"
done
`

	// FailingScript writes partial output, complains on stderr and exits 3.
	FailingScript = `printf 'partial'
echo 'index file missing' >&2
exit 3
`

	// StderrOnlyScript writes nothing to stdout.
	StderrOnlyScript = `echo 'traceback' >&2
exit 1
`

	// SleepScript replaces itself with a long sleep.
	SleepScript = `exec sleep 30
`

	// TableScript prints an HTML fragment like the real engine.
	TableScript = `echo '<div class="container"><table><tbody>'
echo '<tr><td><a href=files/doc1.html>doc1.html</a></td><td>7</td></tr>'
echo '</tbody></table></div>'
`
)

// Shell is the interpreter used for stand-in engine scripts.
const Shell = "/bin/sh"

// WriteScript writes a stand-in engine script into a temp dir and returns its path.
func WriteScript(t *testing.T, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "engine.sh")
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+body), 0o755); err != nil {
		t.Fatalf("failed to write engine script: %v", err)
	}
	return path
}

// ParseArgs extracts the arguments reported by EchoArgsScript output.
func ParseArgs(output string) []string {
	var args []string
	rest := output
	for {
		start := strings.Index(rest, "arg=[")
		if start < 0 {
			return args
		}
		rest = rest[start+len("arg=["):]
		end := strings.Index(rest, "]\narg=[")
		if end < 0 {
			end = strings.LastIndex(rest, "]\n")
			if end < 0 {
				return args
			}
			args = append(args, rest[:end])
			return args
		}
		args = append(args, rest[:end])
		rest = rest[end+1:]
	}
}
