package main

import (
	"bytes"
	"strings"
	"testing"
)

// Requirement: routes prints every registered endpoint with its guard.
func TestPrintRoutes(t *testing.T) {
	var buf bytes.Buffer

	if err := printRoutes(&buf); err != nil {
		t.Fatalf("printRoutes() error = %v", err)
	}

	out := buf.String()
	for _, want := range []string{"METHOD", "/sessions", "/tasks/:id/mark_complete", "/goals/:id/tasks", "markTaskComplete"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if lines := strings.Count(strings.TrimSpace(out), "\n"); lines != 17 {
		t.Errorf("printed %d endpoint lines, want 17", lines)
	}
}

// Requirement: the sessions command exposes an explicit purge.
func TestSessionsCmd_HasPurge(t *testing.T) {
	path := ""
	cmd := sessionsCmd(&path)
	sub, _, err := cmd.Find([]string{"purge"})
	if err != nil || sub.Use != "purge" {
		t.Fatalf("purge subcommand missing: %v", err)
	}
}
