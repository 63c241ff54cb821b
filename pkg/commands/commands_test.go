package commands

import (
	"bytes"
	"strings"
	"testing"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := New()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestSubcommands(t *testing.T) {
	cmd := New()
	want := map[string]bool{"open": false, "inspect": false, "keys": false, "clips": false, "completion": false, "version": false}
	for _, c := range cmd.Commands() {
		if _, ok := want[c.Name()]; ok {
			want[c.Name()] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Fatalf("missing %s command", name)
		}
	}
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version", "--short")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if !strings.Contains(out, "dev") {
		t.Fatalf("version output %q", out)
	}
}

func TestArgumentErrors(t *testing.T) {
	tests := map[string][]string{
		"inspect needs a file":  {"inspect"},
		"open takes one file":   {"open", "a.tsv", "b.tsv"},
		"unknown theme":         {"open", "--theme", "blue"},
		"bad alignment":         {"open", "--align", "middle"},
		"negative column count": {"inspect", "x.tsv", "--columns", "-2"},
	}
	for name, args := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := run(t, args...); err == nil {
				t.Fatalf("expected an error for %v", args)
			}
		})
	}
}

func TestOpenFlags(t *testing.T) {
	cmd := New()
	open, _, err := cmd.Find([]string{"open"})
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	for _, name := range []string{"header", "columns", "width", "align", "watch", "debug", "events", "theme"} {
		if open.Flags().Lookup(name) == nil {
			t.Fatalf("open is missing --%s", name)
		}
	}
}
