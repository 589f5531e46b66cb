package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// captureStdout runs fn with os.Stdout redirected to a pipe and returns
// whatever was written to it.
func captureStdout(t *testing.T, fn func()) string {
	t.Helper()
	old := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("os.Pipe: %v", err)
	}
	os.Stdout = w
	fn()
	w.Close()
	os.Stdout = old

	var buf bytes.Buffer
	buf.ReadFrom(r)
	return buf.String()
}

func TestRun_MemoryBackendBuildAndPrintRoot(t *testing.T) {
	commitA := strings.Repeat("aa", 32)
	commitB := strings.Repeat("bb", 32)

	out := captureStdout(t, func() {
		code := run([]string{"-depth", "4", "-commit", commitA, "-commit", commitB})
		if code != 0 {
			t.Fatalf("run() = %d, want 0", code)
		}
	})

	if !strings.Contains(out, "leaves: 2") {
		t.Fatalf("missing leaf count in output: %s", out)
	}
	if !strings.Contains(out, "root:") {
		t.Fatalf("missing root in output: %s", out)
	}
}

func TestRun_WitnessFlagPrintsAuthPath(t *testing.T) {
	commit := strings.Repeat("11", 32)

	out := captureStdout(t, func() {
		code := run([]string{"-depth", "3", "-commit", commit, "-witness", "0"})
		if code != 0 {
			t.Fatalf("run() = %d, want 0", code)
		}
	})

	if !strings.Contains(out, "witness(0):") {
		t.Fatalf("missing witness header in output: %s", out)
	}
	if !strings.Contains(out, "tree_size: 1") {
		t.Fatalf("missing tree_size in output: %s", out)
	}
	if !strings.Contains(out, "[ 1] left") {
		t.Fatalf("missing last auth path entry in output: %s", out)
	}
}

func TestRun_InvalidCommitmentHex(t *testing.T) {
	code := run([]string{"-commit", "not-hex"})
	if code != 1 {
		t.Fatalf("run() = %d, want 1", code)
	}
}

func TestRun_WrongCommitmentLength(t *testing.T) {
	code := run([]string{"-commit", "abcd"})
	if code != 1 {
		t.Fatalf("run() = %d, want 1", code)
	}
}

func TestRun_UnknownBackend(t *testing.T) {
	code := run([]string{"-backend", "bogus"})
	if code != 1 {
		t.Fatalf("run() = %d, want 1", code)
	}
}

func TestRun_FiledbBackendPersists(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "tree")
	commit := strings.Repeat("cc", 32)

	out := captureStdout(t, func() {
		code := run([]string{"-backend", "filedb", "-datadir", dir, "-depth", "4", "-commit", commit})
		if code != 0 {
			t.Fatalf("run() = %d, want 0", code)
		}
	})
	if !strings.Contains(out, "leaves: 1") {
		t.Fatalf("missing leaf count in output: %s", out)
	}

	reopened := captureStdout(t, func() {
		code := run([]string{"-backend", "filedb", "-datadir", dir, "-depth", "4"})
		if code != 0 {
			t.Fatalf("run() after reopen = %d, want 0", code)
		}
	})
	if !strings.Contains(reopened, "leaves: 1") {
		t.Fatalf("leaf not persisted across runs: %s", reopened)
	}
}

func TestParseFlags_UnknownFlagExits(t *testing.T) {
	_, exit, code := parseFlags([]string{"-nope"})
	if !exit || code != 2 {
		t.Fatalf("parseFlags unknown flag: exit=%v code=%d, want true 2", exit, code)
	}
}
