package main

import (
	"bytes"
	"strings"
	"testing"
)

func TestRootHasRun(t *testing.T) {
	root := newRootCmd()
	found := false
	for _, cmd := range root.Commands() {
		if cmd.Name() == "run" {
			found = true
			break
		}
	}
	if !found {
		t.Fatalf("expected root command to include run")
	}
}

func TestRootHasConfig(t *testing.T) {
	root := newRootCmd()
	found := false
	for _, cmd := range root.Commands() {
		if cmd.Name() == "config" {
			found = true
			break
		}
	}
	if !found {
		t.Fatalf("expected root command to include config")
	}
}

func TestRootHasVersion(t *testing.T) {
	root := newRootCmd()
	found := false
	for _, cmd := range root.Commands() {
		if cmd.Name() == "version" {
			found = true
			break
		}
	}
	if !found {
		t.Fatalf("expected root command to include version")
	}
}

func TestVersionCmdPrints(t *testing.T) {
	cmd := newVersionCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	if err := cmd.RunE(cmd, nil); err != nil {
		t.Fatalf("version command returned error: %v", err)
	}
	if !strings.Contains(out.String(), "steel-tui") {
		t.Fatalf("expected module name in output, got %q", out.String())
	}
}
