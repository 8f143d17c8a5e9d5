package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nao1215/ilmt-transform/internal/loader"
)

func TestNewInspectCmd(t *testing.T) {
	t.Parallel()

	cmd := NewInspectCmd()

	t.Run("has correct use", func(t *testing.T) {
		t.Parallel()
		if cmd.Use != "inspect <input_file>" {
			t.Errorf("unexpected use %q", cmd.Use)
		}
	})

	t.Run("has output flag", func(t *testing.T) {
		t.Parallel()
		flag := cmd.Flags().Lookup("output")
		if flag == nil {
			t.Fatal("expected output flag")
		}
		if flag.Shorthand != "o" {
			t.Errorf("expected shorthand 'o', got %q", flag.Shorthand)
		}
	})
}

func TestRunInspectCmd(t *testing.T) {
	t.Parallel()

	t.Run("prints markdown to stdout", func(t *testing.T) {
		t.Parallel()

		input := writeInput(t, t.TempDir(), "export.json", testExport)

		var buf bytes.Buffer
		cmd := NewRootCmd()
		cmd.SetOut(&buf)
		cmd.SetErr(&bytes.Buffer{})
		cmd.SetArgs([]string{"inspect", input})

		if err := cmd.Execute(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		for _, want := range []string{
			"# License Export Inspection",
			"IBM Cloud Pak for Integration",
			"Virtual Processor Core",
			"6Gi",
			"```mermaid",
		} {
			if !strings.Contains(output, want) {
				t.Errorf("expected output to contain %q", want)
			}
		}
	})

	t.Run("writes markdown to file", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		input := writeInput(t, dir, "export.json", testExport)
		outputPath := filepath.Join(dir, "review", "export.md")

		var buf bytes.Buffer
		cmd := NewRootCmd()
		cmd.SetOut(&buf)
		cmd.SetErr(&bytes.Buffer{})
		cmd.SetArgs([]string{"inspect", "-o", outputPath, input})

		if err := cmd.Execute(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		data, err := os.ReadFile(outputPath) //nolint:gosec // test file path
		if err != nil {
			t.Fatalf("expected report file: %v", err)
		}
		if !strings.HasPrefix(string(data), "# License Export Inspection") {
			t.Errorf("unexpected report start: %q", data)
		}
		if !strings.Contains(buf.String(), "Inspection report written to: "+outputPath) {
			t.Errorf("expected confirmation message, got %q", buf.String())
		}
	})

	t.Run("fails for missing input", func(t *testing.T) {
		t.Parallel()

		cmd := NewRootCmd()
		cmd.SetOut(&bytes.Buffer{})
		cmd.SetErr(&bytes.Buffer{})
		cmd.SetArgs([]string{"inspect", filepath.Join(t.TempDir(), "missing.json")})

		var inputErr *loader.InputError
		if err := cmd.Execute(); !errors.As(err, &inputErr) {
			t.Fatalf("expected *loader.InputError, got %v", err)
		}
	})
}
