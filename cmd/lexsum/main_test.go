package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/text/encoding/charmap"
)

func TestRunSummarizesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "input.txt")
	text := "A cat sat. A cat sat on a mat. Stocks fell today."
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		t.Fatalf("failed to write input file: %v", err)
	}

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"-f", path, "-s", "1"})

	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected a one-sentence summary, got %q", out.String())
	}
	if !strings.Contains(text, lines[0]) {
		t.Errorf("summary sentence %q not taken from the input", lines[0])
	}
}

func TestReadInput(t *testing.T) {
	dir := t.TempDir()

	t.Run("utf-8 file", func(t *testing.T) {
		path := filepath.Join(dir, "utf8.txt")
		if err := os.WriteFile(path, []byte("héllo wörld"), 0o644); err != nil {
			t.Fatalf("failed to write file: %v", err)
		}
		got, err := readInput(path, "utf-8")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != "héllo wörld" {
			t.Errorf("expected %q, got %q", "héllo wörld", got)
		}
	})

	t.Run("latin-1 file", func(t *testing.T) {
		raw, err := charmap.ISO8859_1.NewEncoder().Bytes([]byte("héllo"))
		if err != nil {
			t.Fatalf("failed to encode fixture: %v", err)
		}
		path := filepath.Join(dir, "latin1.txt")
		if err := os.WriteFile(path, raw, 0o644); err != nil {
			t.Fatalf("failed to write file: %v", err)
		}
		got, err := readInput(path, "iso-8859-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != "héllo" {
			t.Errorf("expected %q, got %q", "héllo", got)
		}
	})

	t.Run("unknown encoding", func(t *testing.T) {
		path := filepath.Join(dir, "enc.txt")
		if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
			t.Fatalf("failed to write file: %v", err)
		}
		if _, err := readInput(path, "not-an-encoding"); err == nil {
			t.Fatal("expected an error")
		}
	})

	t.Run("missing file", func(t *testing.T) {
		if _, err := readInput(filepath.Join(dir, "nope.txt"), "utf-8"); err == nil {
			t.Fatal("expected an error")
		}
	})
}
