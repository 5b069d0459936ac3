package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"
)

func writeModelDir(t *testing.T, parent, name string) string {
	t.Helper()
	dir := filepath.Join(parent, name)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", name, err)
	}
	if err := os.WriteFile(filepath.Join(dir, "tokenizer.json"), []byte("{}"), 0o644); err != nil {
		t.Fatalf("write tokenizer.json in %s: %v", name, err)
	}
	return dir
}

func TestDiscoverModelDirsSorted(t *testing.T) {
	dir := t.TempDir()
	b := writeModelDir(t, dir, "b-model")
	a := writeModelDir(t, dir, "a-model")

	// A bare directory and a stray file are both skipped.
	if err := os.MkdirAll(filepath.Join(dir, "empty"), 0o755); err != nil {
		t.Fatalf("mkdir empty: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatalf("write notes.txt: %v", err)
	}

	got, err := discoverModelDirs(dir)
	if err != nil {
		t.Fatalf("discoverModelDirs returned error: %v", err)
	}
	want := []string{a, b}
	if len(got) != len(want) {
		t.Fatalf("unexpected model count: got %d want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("unexpected ordering at %d: got %q want %q", i, got[i], want[i])
		}
	}
}

func TestResolveModelDir(t *testing.T) {
	t.Run("model flag bypasses env", func(t *testing.T) {
		t.Setenv(envRosettaModelsDir, "")
		got, err := resolveModelDir("/srv/models/mbart", "", bytes.NewBuffer(nil), io.Discard)
		if err != nil {
			t.Fatalf("resolveModelDir returned error: %v", err)
		}
		if got != filepath.Clean("/srv/models/mbart") {
			t.Fatalf("unexpected model dir: got %q", got)
		}
	})

	t.Run("single model selects automatically", func(t *testing.T) {
		dir := t.TempDir()
		only := writeModelDir(t, dir, "only")
		t.Setenv(envRosettaModelsDir, dir)

		prevTTY := stdinIsTTY
		stdinIsTTY = func() bool { return false }
		defer func() { stdinIsTTY = prevTTY }()

		got, err := resolveModelDir("", "", bytes.NewBuffer(nil), io.Discard)
		if err != nil {
			t.Fatalf("resolveModelDir returned error: %v", err)
		}
		if got != only {
			t.Fatalf("unexpected model dir: got %q want %q", got, only)
		}
	})

	t.Run("models-path flag wins over env", func(t *testing.T) {
		flagDir := t.TempDir()
		fromFlag := writeModelDir(t, flagDir, "flag-model")

		envDir := t.TempDir()
		writeModelDir(t, envDir, "env-model")
		t.Setenv(envRosettaModelsDir, envDir)

		prevTTY := stdinIsTTY
		stdinIsTTY = func() bool { return false }
		defer func() { stdinIsTTY = prevTTY }()

		got, err := resolveModelDir("", flagDir, bytes.NewBuffer(nil), io.Discard)
		if err != nil {
			t.Fatalf("resolveModelDir returned error: %v", err)
		}
		if got != fromFlag {
			t.Fatalf("unexpected model dir: got %q want %q", got, fromFlag)
		}
	})

	t.Run("multiple models requires tty", func(t *testing.T) {
		dir := t.TempDir()
		writeModelDir(t, dir, "a-model")
		writeModelDir(t, dir, "b-model")
		t.Setenv(envRosettaModelsDir, dir)

		prevTTY := stdinIsTTY
		stdinIsTTY = func() bool { return false }
		defer func() { stdinIsTTY = prevTTY }()

		if _, err := resolveModelDir("", "", bytes.NewBuffer(nil), io.Discard); err == nil {
			t.Fatalf("expected error when multiple models and stdin is not a tty")
		}
	})

	t.Run("interactive selection chooses sorted index", func(t *testing.T) {
		dir := t.TempDir()
		writeModelDir(t, dir, "a-model")
		b := writeModelDir(t, dir, "b-model")
		t.Setenv(envRosettaModelsDir, dir)

		prevTTY := stdinIsTTY
		stdinIsTTY = func() bool { return true }
		defer func() { stdinIsTTY = prevTTY }()

		got, err := resolveModelDir("", "", bytes.NewBufferString("2\n"), io.Discard)
		if err != nil {
			t.Fatalf("resolveModelDir returned error: %v", err)
		}
		if got != b {
			t.Fatalf("unexpected model selection: got %q want %q", got, b)
		}
	})

	t.Run("nothing configured is an error", func(t *testing.T) {
		t.Setenv(envRosettaModelsDir, "")
		if _, err := resolveModelDir("", "", bytes.NewBuffer(nil), io.Discard); err == nil {
			t.Fatalf("expected error when no model source is configured")
		}
	})
}
