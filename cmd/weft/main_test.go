package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vango-dev/weft/internal/errors"
)

// run executes the CLI with args and returns stdout and stderr.
func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "weft.json")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRender(t *testing.T) {
	cfg := writeConfig(t, `{"dev": {"app": "counter"}}`)

	out, _, err := run(t, "--config", cfg, "render")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(out, "Count: 0") {
		t.Errorf("output missing counter:\n%s", out)
	}

	out, _, err = run(t, "--config", cfg, "render", "todo", "--pretty")
	if err != nil {
		t.Fatalf("render todo: %v", err)
	}
	if !strings.Contains(out, "No tasks") || !strings.Contains(out, "\n  ") {
		t.Errorf("expected indented todo output:\n%s", out)
	}
}

func TestRender_BudgetSpreadsSlices(t *testing.T) {
	cfg := writeConfig(t, `{}`)

	out, errOut, err := run(t, "--config", cfg, "render", "tictactoe", "--budget", "3", "--stats")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(out, "Next player: X") {
		t.Errorf("output missing board:\n%s", out)
	}
	if !strings.Contains(errOut, "cycle 1:") || strings.Contains(errOut, "in 1 slices") {
		t.Errorf("expected a multi-slice commit, got:\n%s", errOut)
	}
}

func TestRender_UnknownApp(t *testing.T) {
	cfg := writeConfig(t, `{}`)
	_, _, err := run(t, "--config", cfg, "render", "nope")
	if !errors.HasCode(err, "E150") {
		t.Fatalf("error = %v, want E150", err)
	}
}

func TestRender_SnapshotNeedsBackend(t *testing.T) {
	cfg := writeConfig(t, `{}`)
	_, _, err := run(t, "--config", cfg, "render", "counter", "--snapshot")
	if !errors.HasCode(err, "E122") {
		t.Fatalf("error = %v, want E122", err)
	}
}

func TestSnapshots_BoltRoundTrip(t *testing.T) {
	cfg := writeConfig(t, `{"snapshot": {"backend": "bolt", "path": "snaps.db"}}`)

	if _, errOut, err := run(t, "--config", cfg, "render", "counter", "--snapshot"); err != nil {
		t.Fatalf("render: %v\n%s", err, errOut)
	}

	out, _, err := run(t, "--config", cfg, "snapshots", "list")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	keys := strings.Fields(out)
	if len(keys) != 1 {
		t.Fatalf("got keys %q, want one", keys)
	}

	out, _, err = run(t, "--config", cfg, "snapshots", "show", keys[0], "--html")
	if err != nil {
		t.Fatalf("show: %v", err)
	}
	if !strings.Contains(out, "Count: 0") {
		t.Errorf("snapshot html = %q", out)
	}

	out, _, err = run(t, "--config", cfg, "snapshots", "show", keys[0])
	if err != nil {
		t.Fatalf("show: %v", err)
	}
	if !strings.Contains(out, `"app": "counter"`) {
		t.Errorf("snapshot json missing app:\n%s", out)
	}

	_, _, err = run(t, "--config", cfg, "snapshots", "show", "missing")
	if !errors.HasCode(err, "E102") {
		t.Errorf("error = %v, want E102", err)
	}
}

func TestSnapshots_RequiresPersistentBackend(t *testing.T) {
	cfg := writeConfig(t, `{"snapshot": {"backend": "memory"}}`)
	_, _, err := run(t, "--config", cfg, "snapshots", "list")
	if !errors.HasCode(err, "E122") {
		t.Fatalf("error = %v, want E122", err)
	}
}

func TestInvalidLogLevel(t *testing.T) {
	cfg := writeConfig(t, `{}`)
	_, _, err := run(t, "--config", cfg, "--log-level", "loud", "render")
	if !errors.HasCode(err, "E122") {
		t.Fatalf("error = %v, want E122", err)
	}
}

func TestVersion(t *testing.T) {
	out, _, err := run(t, "version", "--short")
	if err != nil {
		t.Fatal(err)
	}
	if out != version+"\n" {
		t.Errorf("version --short = %q", out)
	}
}

func TestPrintError(t *testing.T) {
	errors.DisableColors()
	defer errors.EnableColors()

	var b bytes.Buffer
	printError(&b, errors.New("E150").WithDetail("no demo named x"))
	if !strings.Contains(b.String(), "E150") || !strings.Contains(b.String(), "no demo named x") {
		t.Errorf("printError = %q", b.String())
	}
}
