package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/nao1215/ilmt-transform/internal/config"
	"github.com/nao1215/ilmt-transform/internal/loader"
	"github.com/nao1215/ilmt-transform/internal/log"
	"github.com/nao1215/ilmt-transform/internal/model"
)

// testExport is a License Service export used by the command tests.
const testExport = `{
  "products": [
    {
      "productName": "IBM Cloud Pak for Integration",
      "productID": "c8b82d189e7545f0892db9ef2731b90d",
      "productMetric": "VIRTUAL_PROCESSOR_CORE",
      "metricQuantity": 8,
      "clusterName": "prod-cluster",
      "containers": [
        {"namespace": "cp4i", "containerName": "ace-server", "cpuLimit": "2", "memoryLimit": "4Gi"},
        {"namespace": "cp4i", "containerName": "mq-qm1", "cpuLimit": "1", "memoryLimit": "2Gi"}
      ]
    },
    {
      "productName": "IBM Db2",
      "productID": "db2-001",
      "metricQuantity": 4
    }
  ]
}`

// writeInput writes an export file into dir and returns its path.
func writeInput(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write input: %v", err)
	}
	return path
}

// emptyConfig writes an empty defaults file so tests do not pick up a
// defaults file from the environment.
func emptyConfig(t *testing.T) string {
	t.Helper()
	return writeInput(t, t.TempDir(), "config.yaml", "")
}

// runRoot executes the root command and returns its stdout.
func runRoot(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return stdout.String(), err
}

func TestTransform(t *testing.T) {
	t.Parallel()

	t.Run("writes CSV and JSON by default", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		input := writeInput(t, dir, "license-export.json", testExport)
		outDir := filepath.Join(dir, "out")

		stdout, err := runRoot(t, input, "-o", outDir, "-d", "2024-01-15", "-c", emptyConfig(t))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		csvPath := filepath.Join(outDir, "ilmt-license-export-2024-01-15.csv")
		jsonPath := filepath.Join(outDir, "ilmt-license-export-2024-01-15.json")

		want := "Loading license data from: " + input + "\n" +
			"ILMT CSV exported to: " + csvPath + "\n" +
			"Total products: 2\n" +
			"ILMT JSON exported to: " + jsonPath + "\n" +
			"\n" +
			"Transformation complete!\n"
		if stdout != want {
			t.Errorf("unexpected output:\n got: %q\nwant: %q", stdout, want)
		}

		csvData, err := os.ReadFile(csvPath) //nolint:gosec // test file path
		if err != nil {
			t.Fatalf("expected CSV file: %v", err)
		}
		if lines := strings.Count(string(csvData), "\r\n"); lines != 4 {
			t.Errorf("expected header and 3 rows, got %d lines", lines)
		}
		if !strings.Contains(string(csvData), "IBM Db2,db2-001,VIRTUAL_PROCESSOR_CORE,4,,,2024-01-15,,,\r\n") {
			t.Errorf("expected placeholder row for product without containers, got:\n%s", csvData)
		}

		jsonData, err := os.ReadFile(jsonPath) //nolint:gosec // test file path
		if err != nil {
			t.Fatalf("expected JSON file: %v", err)
		}
		var doc struct {
			ReportDate string `json:"reportDate"`
			Products   []struct {
				Deployments []json.RawMessage `json:"deployments"`
			} `json:"products"`
		}
		if err := json.Unmarshal(jsonData, &doc); err != nil {
			t.Fatalf("invalid JSON output: %v", err)
		}
		if doc.ReportDate != "2024-01-15" {
			t.Errorf("expected reportDate '2024-01-15', got %q", doc.ReportDate)
		}
		if len(doc.Products) != 2 || len(doc.Products[0].Deployments) != 2 || len(doc.Products[1].Deployments) != 0 {
			t.Errorf("unexpected products in JSON output: %s", jsonData)
		}

		if _, err := os.Stat(filepath.Join(outDir, "ilmt-summary-2024-01-15.txt")); !os.IsNotExist(err) {
			t.Error("expected no summary without --summary")
		}
	})

	t.Run("format csv writes no JSON", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		input := writeInput(t, dir, "export.json", testExport)

		stdout, err := runRoot(t, input, "-o", dir, "-f", "csv", "-d", "2024-01-15", "-c", emptyConfig(t))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if _, err := os.Stat(filepath.Join(dir, "ilmt-export-2024-01-15.csv")); err != nil {
			t.Errorf("expected CSV file: %v", err)
		}
		if _, err := os.Stat(filepath.Join(dir, "ilmt-export-2024-01-15.json")); !os.IsNotExist(err) {
			t.Error("expected no JSON file")
		}
		if strings.Contains(stdout, "JSON") {
			t.Errorf("expected no JSON message, got %q", stdout)
		}
	})

	t.Run("format json writes no CSV", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		input := writeInput(t, dir, "export.json", testExport)

		stdout, err := runRoot(t, input, "-o", dir, "-f", "json", "-d", "2024-01-15", "-c", emptyConfig(t))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if _, err := os.Stat(filepath.Join(dir, "ilmt-export-2024-01-15.json")); err != nil {
			t.Errorf("expected JSON file: %v", err)
		}
		if _, err := os.Stat(filepath.Join(dir, "ilmt-export-2024-01-15.csv")); !os.IsNotExist(err) {
			t.Error("expected no CSV file")
		}
		if strings.Contains(stdout, "Total products") {
			t.Errorf("expected no CSV messages, got %q", stdout)
		}
	})

	t.Run("summary is written last", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		input := writeInput(t, dir, "export.json", testExport)

		stdout, err := runRoot(t, input, "-o", dir, "-s", "-d", "2024-01-15", "-c", emptyConfig(t))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		summaryPath := filepath.Join(dir, "ilmt-summary-2024-01-15.txt")
		if !strings.Contains(stdout, "ILMT JSON exported to: "+filepath.Join(dir, "ilmt-export-2024-01-15.json")+
			"\nSummary report generated: "+summaryPath+"\n\nTransformation complete!\n") {
			t.Errorf("unexpected output order:\n%s", stdout)
		}

		data, err := os.ReadFile(summaryPath) //nolint:gosec // test file path
		if err != nil {
			t.Fatalf("expected summary file: %v", err)
		}
		for _, want := range []string{
			"Total Products: 2\n",
			"    - ace-server (cp4i)\n",
			"  Metric: Unknown\n",
			"TOTAL VPCs: 12\n",
		} {
			if !strings.Contains(string(data), want) {
				t.Errorf("expected %q in summary", want)
			}
		}
	})

	t.Run("missing input file fails before writing", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		outDir := filepath.Join(dir, "out")
		missing := filepath.Join(dir, "missing.json")

		stdout, err := runRoot(t, missing, "-o", outDir, "-c", emptyConfig(t))

		var inputErr *loader.InputError
		if !errors.As(err, &inputErr) {
			t.Fatalf("expected *loader.InputError, got %v", err)
		}
		if !errors.Is(err, os.ErrNotExist) {
			t.Errorf("expected wrapped ErrNotExist, got %v", err)
		}
		if !strings.HasPrefix(stdout, "Loading license data from: "+missing) {
			t.Errorf("expected loading message, got %q", stdout)
		}
		if _, err := os.Stat(outDir); !os.IsNotExist(err) {
			t.Error("expected output directory not to be created")
		}
	})

	t.Run("malformed JSON fails", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		input := writeInput(t, dir, "bad.json", `{"products": [`)

		_, err := runRoot(t, input, "-o", dir, "-c", emptyConfig(t))
		if !errors.Is(err, loader.ErrMalformedJSON) {
			t.Fatalf("expected ErrMalformedJSON, got %v", err)
		}
	})

	t.Run("non-numeric quantity fails the summary after the data files", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		input := writeInput(t, dir, "export.json", `{"products": [{"metricQuantity": "eight"}]}`)

		_, err := runRoot(t, input, "-o", dir, "-s", "-d", "2024-01-15", "-c", emptyConfig(t))
		if !errors.Is(err, model.ErrNonNumericQuantity) {
			t.Fatalf("expected ErrNonNumericQuantity, got %v", err)
		}
		if _, err := os.Stat(filepath.Join(dir, "ilmt-export-2024-01-15.csv")); err != nil {
			t.Error("expected CSV file written before the failure to be kept")
		}
		if _, err := os.Stat(filepath.Join(dir, "ilmt-summary-2024-01-15.txt")); !os.IsNotExist(err) {
			t.Error("expected no summary file")
		}
	})

	t.Run("invalid flag values fail", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		input := writeInput(t, dir, "export.json", testExport)

		tests := []struct {
			args []string
			want error
		}{
			{args: []string{"-f", "xml"}, want: config.ErrInvalidFormat},
			{args: []string{"-d", "15/01/2024"}, want: config.ErrInvalidReportDate},
		}
		for _, tt := range tests {
			args := append([]string{input, "-o", dir, "-c", emptyConfig(t)}, tt.args...)
			if _, err := runRoot(t, args...); !errors.Is(err, tt.want) {
				t.Errorf("%v: expected %v, got %v", tt.args, tt.want, err)
			}
		}
	})

	t.Run("explicit config file must exist", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		input := writeInput(t, dir, "export.json", testExport)

		_, err := runRoot(t, input, "-c", filepath.Join(dir, "nope.yaml"))
		if !errors.Is(err, config.ErrConfigNotFound) {
			t.Fatalf("expected ErrConfigNotFound, got %v", err)
		}
	})
}

func TestBuildConfig(t *testing.T) {
	t.Parallel()

	t.Run("defaults file values apply", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		cfgPath := writeInput(t, dir, "defaults.yaml", "outputDir: reports\nformat: csv\nsummary: true\n")

		cmd := NewRootCmd()
		if err := cmd.ParseFlags([]string{"-c", cfgPath}); err != nil {
			t.Fatal(err)
		}

		cfg, err := buildConfig(cmd, []string{"export.json"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.OutputDir != "reports" || cfg.Format != config.FormatCSV || !cfg.Summary {
			t.Errorf("expected file values, got %+v", cfg)
		}
		if cfg.ConfigFilePath != cfgPath {
			t.Errorf("expected config path %s, got %s", cfgPath, cfg.ConfigFilePath)
		}
	})

	t.Run("flags win over the defaults file", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		cfgPath := writeInput(t, dir, "defaults.yaml", "outputDir: reports\nformat: csv\n")

		cmd := NewRootCmd()
		if err := cmd.ParseFlags([]string{"-c", cfgPath, "-o", "elsewhere", "-f", "json"}); err != nil {
			t.Fatal(err)
		}

		cfg, err := buildConfig(cmd, []string{"export.json"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.OutputDir != "elsewhere" {
			t.Errorf("expected OutputDir 'elsewhere', got %q", cfg.OutputDir)
		}
		if cfg.Format != config.FormatJSON {
			t.Errorf("expected Format 'json', got %q", cfg.Format)
		}
	})

	t.Run("empty output dir means current directory", func(t *testing.T) {
		t.Parallel()

		cmd := NewRootCmd()
		if err := cmd.ParseFlags([]string{"-c", emptyConfig(t), "-o", ""}); err != nil {
			t.Fatal(err)
		}

		cfg, err := buildConfig(cmd, []string{"export.json"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.OutputDir != "." {
			t.Errorf("expected OutputDir '.', got %q", cfg.OutputDir)
		}
		if cfg.InputFile != "export.json" {
			t.Errorf("expected InputFile 'export.json', got %q", cfg.InputFile)
		}
	})
}

func TestRunTransformLogsSteps(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cfg := config.NewConfig()
	cfg.InputFile = writeInput(t, dir, "export.json", `{"products": [{"metricQuantity": "eight"}]}`)
	cfg.OutputDir = dir
	cfg.ReportDate = "2024-01-15"
	cfg.Summary = true

	var stdout, logs bytes.Buffer
	now := func() time.Time { return time.Date(2024, 1, 15, 10, 30, 0, 0, time.Local) }

	err := runTransform(&stdout, cfg, log.NewLogger(&logs, true), now)
	if !errors.Is(err, model.ErrNonNumericQuantity) {
		t.Fatalf("expected ErrNonNumericQuantity, got %v", err)
	}

	for _, want := range []string{
		`msg="running output steps" count=3 steps="[csv json summary]"`,
		`msg="transformation stopped" completed="[csv json]"`,
	} {
		if !strings.Contains(logs.String(), want) {
			t.Errorf("expected %q in log output, got:\n%s", want, logs.String())
		}
	}
}
