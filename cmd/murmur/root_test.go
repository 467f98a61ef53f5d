package main

import (
	"testing"
)

func TestRootCommandShape(t *testing.T) {
	cmd := newRootCommand()

	if cmd.Use != "murmur" {
		t.Fatalf("Use = %q", cmd.Use)
	}
	if cmd.HasSubCommands() {
		t.Fatal("root command must not have subcommands")
	}
	if cmd.Flags().Lookup("config") == nil {
		t.Fatal("missing --config flag")
	}
}

func TestRootCommandRejectsPositionalArgs(t *testing.T) {
	cmd := newRootCommand()
	cmd.SetArgs([]string{"unexpected"})
	if err := cmd.Execute(); err == nil {
		t.Fatal("expected positional arguments to be rejected")
	}
}
