package cli

import (
	"strings"
	"testing"
)

func TestRootCommand_Help(t *testing.T) {
	out := mustRun(t, "--help")

	for _, want := range []string{"filescope", "Scope Management:", "Membership:", "Maintenance:", "--workspace"} {
		if !strings.Contains(out, want) {
			t.Errorf("help output missing %q:\n%s", want, out)
		}
	}
}

func TestRootCommand_Version(t *testing.T) {
	old := rootCmd.Version
	defer func() { rootCmd.Version = old }()

	SetVersion("1.2.3")
	out := mustRun(t, "--version")
	if strings.TrimSpace(out) != "1.2.3" {
		t.Errorf("--version = %q, want 1.2.3", out)
	}

	out = mustRun(t, "version")
	if strings.TrimSpace(out) != "1.2.3" {
		t.Errorf("version = %q, want 1.2.3", out)
	}
}

func TestSetVersion_EmptyKeepsCurrent(t *testing.T) {
	old := rootCmd.Version
	defer func() { rootCmd.Version = old }()

	SetVersion("")
	if rootCmd.Version != old {
		t.Errorf("Version = %q, want %q", rootCmd.Version, old)
	}
}

func TestRootCommand_InvalidCommand(t *testing.T) {
	if _, _, err := runCLI(t, "invalid-command"); err == nil {
		t.Error("expected error for unknown command")
	}
}

func TestRootCommand_Subcommands(t *testing.T) {
	want := map[string]string{
		"scope":      "scope-management",
		"add":        "membership",
		"rm":         "membership",
		"ls":         "membership",
		"tree":       "membership",
		"mv":         "maintenance",
		"prune":      "maintenance",
		"watch":      "maintenance",
		"version":    "cli-tooling",
		"completion": "cli-tooling",
	}

	got := make(map[string]string)
	for _, c := range rootCmd.Commands() {
		got[c.Name()] = c.GroupID
	}

	for name, group := range want {
		g, ok := got[name]
		if !ok {
			t.Errorf("missing subcommand %q", name)
			continue
		}
		if g != group {
			t.Errorf("subcommand %q in group %q, want %q", name, g, group)
		}
	}
}

func TestCommandHelp(t *testing.T) {
	commands := [][]string{
		{"scope", "--help"},
		{"scope", "create", "--help"},
		{"scope", "rm", "--help"},
		{"add", "--help"},
		{"rm", "--help"},
		{"ls", "--help"},
		{"tree", "--help"},
		{"mv", "--help"},
		{"prune", "--help"},
		{"watch", "--help"},
	}

	for _, args := range commands {
		t.Run(strings.Join(args[:len(args)-1], " "), func(t *testing.T) {
			out := mustRun(t, args...)
			if !strings.Contains(out, "Usage:") {
				t.Errorf("expected usage in help output, got:\n%s", out)
			}
		})
	}
}
