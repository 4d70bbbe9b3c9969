package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDriverDir(t *testing.T) {
	root := t.TempDir()
	binDir := filepath.Join(root, "bin")
	if err := os.MkdirAll(binDir, 0755); err != nil {
		t.Fatalf("failed to create bin dir: %v", err)
	}
	exe := filepath.Join(binDir, "cdfetch")
	if err := os.WriteFile(exe, []byte("#!/bin/sh\n"), 0755); err != nil {
		t.Fatalf("failed to write executable: %v", err)
	}

	realBin, err := filepath.EvalSymlinks(binDir)
	if err != nil {
		t.Fatalf("EvalSymlinks() error = %v", err)
	}

	got, err := driverDir(exe)
	if err != nil {
		t.Fatalf("driverDir() error = %v", err)
	}
	if want := filepath.Join(realBin, "chromedriver"); got != want {
		t.Errorf("driverDir() = %s, want %s", got, want)
	}
}

func TestDriverDirFollowsSymlink(t *testing.T) {
	root := t.TempDir()
	realDir := filepath.Join(root, "opt")
	linkDir := filepath.Join(root, "links")
	for _, dir := range []string{realDir, linkDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			t.Fatalf("failed to create %s: %v", dir, err)
		}
	}

	exe := filepath.Join(realDir, "cdfetch")
	if err := os.WriteFile(exe, []byte("#!/bin/sh\n"), 0755); err != nil {
		t.Fatalf("failed to write executable: %v", err)
	}
	link := filepath.Join(linkDir, "cdfetch")
	if err := os.Symlink(exe, link); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}

	realOpt, err := filepath.EvalSymlinks(realDir)
	if err != nil {
		t.Fatalf("EvalSymlinks() error = %v", err)
	}

	got, err := driverDir(link)
	if err != nil {
		t.Fatalf("driverDir() error = %v", err)
	}
	if want := filepath.Join(realOpt, "chromedriver"); got != want {
		t.Errorf("driverDir() = %s, want %s", got, want)
	}
}

func TestDriverDirMissingExecutable(t *testing.T) {
	if _, err := driverDir(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Error("expected error for missing executable")
	}
}

func TestRootCommandRejectsArgs(t *testing.T) {
	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"extra"})

	err := cmd.Execute()
	if err == nil {
		t.Fatal("expected error for positional argument")
	}
	if !strings.Contains(err.Error(), "unknown command") && !strings.Contains(err.Error(), "accepts 0 arg") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestRootCommandRejectsFlags(t *testing.T) {
	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"--dir", "/tmp"})

	if err := cmd.Execute(); err == nil {
		t.Fatal("expected error for unknown flag")
	}
}

func TestRootCommandVersion(t *testing.T) {
	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--version"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !strings.Contains(out.String(), Version) {
		t.Errorf("version output = %q, want it to contain %s", out.String(), Version)
	}
}
