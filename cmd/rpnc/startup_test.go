package main

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

// TestBinaryLoadsStoredMacros builds the CLI and checks that macros written
// by one run are restored from the database by the next.
func TestBinaryLoadsStoredMacros(t *testing.T) {
	tmpDir := t.TempDir()

	// Build the CLI first
	bin := filepath.Join(tmpDir, "rpnc")
	cmd := exec.Command("go", "build", "-o", bin, "./")
	cmd.Dir = "."
	if out, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("failed to build rpnc: %v\n%s", err, out)
	}

	dbPath := filepath.Join(tmpDir, "test.db")
	cfgPath := filepath.Join(tmpDir, "config.toml")
	if err := os.WriteFile(cfgPath, []byte("persist_mode = \"always\"\n"), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	macros := filepath.Join(tmpDir, "macros.txt")
	if err := os.WriteFile(macros, []byte("test: clear 4+10j 5-4j +\ntest1: test -4 +\n"), 0644); err != nil {
		t.Fatalf("failed to write macros: %v", err)
	}

	// Piped input with the macro file, written through to the database
	run1 := exec.Command(bin, "-config", cfgPath, "-db", dbPath, "-macros", macros)
	run1.Stdin = strings.NewReader("1 2 +\n")
	output, err := run1.CombinedOutput()
	if err != nil {
		t.Fatalf("failed to run rpnc: %v\n%s", err, output)
	}
	if string(output) != "3\n" {
		t.Errorf("expected '3', got: %s", output)
	}

	// Second run only has the database
	run2 := exec.Command(bin, "-config", cfgPath, "-db", dbPath, "-e", "test1")
	output, err = run2.CombinedOutput()
	if err != nil {
		t.Fatalf("failed to run rpnc: %v\n%s", err, output)
	}
	if string(output) != "5 + 6j\n" {
		t.Errorf("expected '5 + 6j', got: %s", output)
	}
}
