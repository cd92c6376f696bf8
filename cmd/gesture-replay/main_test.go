package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func run(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	root := newRootCmd()
	root.SetArgs(args)
	root.SetOut(&out)
	root.SetErr(&bytes.Buffer{})
	if err := root.Execute(); err != nil {
		t.Fatalf("%v: %v", args, err)
	}
	return out.String()
}

func TestSynthPinchThenReplay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pinch.yaml")
	run(t, "synth", "pinch", "--steps", "1", "--from-radius", "50", "--to-radius", "150", "-o", path)

	out := run(t, "replay", "-q", path)
	if !strings.Contains(out, "3 events") {
		t.Errorf("expected start, move and end, got:\n%s", out)
	}
	if !strings.Contains(out, "factor=3.0000") {
		t.Errorf("expected scale factor 3, got:\n%s", out)
	}
}

func TestSynthDragThenReplay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "drag.yaml")
	run(t, "synth", "drag", "--steps", "2", "--from", "100,100", "--to", "300,100", "-o", path)

	out := run(t, "replay", path)
	for _, want := range []string{"onefingerstart", "onefingermove", "onefingerend", "4 events"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestSynthToStdout(t *testing.T) {
	out := run(t, "synth", "drag", "--steps", "1")
	if !strings.Contains(out, "viewport:") || !strings.Contains(out, "frames:") {
		t.Errorf("expected YAML trace, got:\n%s", out)
	}
}

func TestSynthRejectsBadPoint(t *testing.T) {
	root := newRootCmd()
	root.SetArgs([]string{"synth", "drag", "--from", "1,2,3"})
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	if err := root.Execute(); err == nil {
		t.Fatal("expected error for a three-value point")
	}
}

func TestReplayMissingFile(t *testing.T) {
	root := newRootCmd()
	root.SetArgs([]string{"replay", filepath.Join(t.TempDir(), "missing.yaml")})
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	if err := root.Execute(); err == nil {
		t.Fatal("expected error for a missing trace")
	}
}

func TestReplayEmptyTrace(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.yaml")
	if err := os.WriteFile(path, []byte("viewport: {width: 10, height: 10}\nframes: []\n"), 0644); err != nil {
		t.Fatal(err)
	}

	out := run(t, "replay", path)
	if !strings.Contains(out, "0 events") {
		t.Errorf("expected no events, got:\n%s", out)
	}
}
