package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRun_SelfCheckSuitePasses(t *testing.T) {
	dir := t.TempDir()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "xdg"))
	t.Setenv("TALLY_COLOR", "never")

	var stdout, stderr bytes.Buffer
	code := run([]string{"--exit-on-failure"}, &stdout, &stderr)
	if code != 0 {
		t.Fatalf("exit code = %d, want 0\nstdout:\n%s\nstderr:\n%s", code, stdout.String(), stderr.String())
	}
	out := stdout.String()
	if strings.Contains(out, "- - - Failures - - -") {
		t.Errorf("unexpected failures:\n%s", out)
	}
	if !strings.Contains(out, "Total passed: [11 / 11]") {
		t.Errorf("missing tally line:\n%s", out)
	}
}
