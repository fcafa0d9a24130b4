package main

import "testing"

func TestRootCommandName(t *testing.T) {
	if rootCmd.Use != "mid" {
		t.Fatalf("expected root command name mid, got %q", rootCmd.Use)
	}
}

func TestCommandTree(t *testing.T) {
	for _, path := range [][]string{
		{"login"}, {"logout"}, {"whoami"}, {"register"},
		{"profile", "show"}, {"profile", "set-pac"},
		{"project", "list"}, {"project", "create"}, {"project", "rename"}, {"project", "show"},
		{"project", "delete"}, {"project", "restore"}, {"project", "purge"},
		{"project", "export"}, {"project", "publish"},
		{"task", "add"}, {"task", "toggle"}, {"task", "done"}, {"task", "edit"},
		{"task", "delete"}, {"task", "restore"}, {"task", "purge"},
	} {
		cmd, _, err := rootCmd.Find(path)
		if err != nil || cmd == rootCmd {
			t.Fatalf("expected command %v, got %v", path, err)
		}
	}
}
