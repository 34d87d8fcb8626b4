package commands

import (
	"io"
	"testing"

	"tableflip.dev/planner/pkg/storage"
)

func TestGetTasksLeavesSettingsUntouched(t *testing.T) {
	dir := t.TempDir()

	cmd := New()
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)
	cmd.SetArgs([]string{"get", "tasks", "--path", dir, "--status", "in-progress", "--order", "desc"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	p, err := storage.Load(storage.PathConfig(dir))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := p.Load(storage.KeySettings); ok {
		t.Fatalf("expected listing not to persist filter settings")
	}
}
