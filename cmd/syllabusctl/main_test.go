package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() { humanOutput = false })
	err := rootCmd.Execute()
	return out.String(), err
}

func TestCatalogCommands(t *testing.T) {
	cfg := filepath.Join(t.TempDir(), "config.yaml")
	yaml := "classes:\n  - name: Class 5\n    folder: class5_books\nsubjects:\n  - name: Science\n    filter: science\n"
	if err := os.WriteFile(cfg, []byte(yaml), 0o600); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		args []string
		want []string
	}{
		{[]string{"classes", "--config", cfg}, []string{"Class 5"}},
		{[]string{"subjects", "--config", cfg}, []string{"Science"}},
		{[]string{"classes", "--config", filepath.Join(t.TempDir(), "missing.yaml")}, []string{"Class 3", "Class 4"}},
	}
	for _, tt := range tests {
		t.Run(tt.args[0], func(t *testing.T) {
			out, err := runCLI(t, tt.args...)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			var got []string
			if err := json.Unmarshal([]byte(out), &got); err != nil {
				t.Fatalf("output is not json: %q", out)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("got %v; want %v", got, tt.want)
			}
		})
	}
}

func TestAskCommand_RequiresFlags(t *testing.T) {
	if _, err := runCLI(t, "ask", "what is rain?"); err == nil {
		t.Fatal("expected missing flag error")
	}
}
