package cli

import (
	"bytes"
	"strings"
	"testing"
)

func TestRootCommandHasSubcommands(t *testing.T) {
	root := NewRootCmd()

	want := []string{"generate", "render", "scaffold", "init", "list", "watch", "version"}
	have := make(map[string]bool)
	for _, c := range root.Commands() {
		have[strings.Fields(c.Use)[0]] = true
	}

	for _, name := range want {
		if !have[name] {
			t.Errorf("missing subcommand %q", name)
		}
	}
}

func TestRootCommandVersion(t *testing.T) {
	root := NewRootCmd()
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs([]string{"--version"})

	if err := root.Execute(); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !strings.Contains(buf.String(), "profilegen") {
		t.Errorf("version output = %q, want it to mention profilegen", buf.String())
	}
}
