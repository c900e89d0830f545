package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/urfave/cli/v2"
)

func runCheck(t *testing.T, configPath string) (string, error) {
	t.Helper()

	app := &cli.App{
		Commands:       []*cli.Command{CheckCommand},
		ExitErrHandler: func(c *cli.Context, err error) {},
	}

	var runErr error
	output := captureOutput(func() {
		runErr = app.Run([]string{"todos", "check", "--config", configPath})
	})
	return output, runErr
}

func writeTemplates(t *testing.T, index, fragment string) string {
	t.Helper()

	tmpDir := t.TempDir()
	templatesDir := filepath.Join(tmpDir, "templates")
	if err := os.MkdirAll(templatesDir, 0755); err != nil {
		t.Fatalf("failed to create templates dir: %v", err)
	}
	_ = os.WriteFile(filepath.Join(templatesDir, "index.html"), []byte(index), 0644)
	_ = os.WriteFile(filepath.Join(templatesDir, "todo.html"), []byte(fragment), 0644)

	configPath := filepath.Join(tmpDir, "todos.config.yml")
	_ = os.WriteFile(configPath, []byte("templatesDir: "+templatesDir+"\n"), 0644)
	return configPath
}

func TestCheckCommand_EmbeddedTemplates(t *testing.T) {
	output, err := runCheck(t, filepath.Join(t.TempDir(), "missing.yml"))

	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	for _, want := range []string{"✅ index.html", "✅ todo.html", "All templates validated successfully."} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %q in output, got:\n%s", want, output)
		}
	}
}

func TestCheckCommand_ParseError(t *testing.T) {
	configPath := writeTemplates(t, `{{ if }}`, `<ul></ul>`)

	output, err := runCheck(t, configPath)

	if err == nil {
		t.Fatal("expected error for broken template")
	}
	if !strings.Contains(output, "❌ templates → parse error") {
		t.Errorf("expected parse error marker, got:\n%s", output)
	}
}

func TestCheckCommand_ExecError(t *testing.T) {
	configPath := writeTemplates(t, `{{ template "missing.html" . }}`, `{{ range .todos }}{{ .Title }}{{ end }}`)

	output, err := runCheck(t, configPath)

	if err == nil {
		t.Fatal("expected error for template that fails to execute")
	}
	if !strings.Contains(output, "❌ index.html → exec error") {
		t.Errorf("expected exec error marker, got:\n%s", output)
	}
	if !strings.Contains(output, "✅ todo.html") {
		t.Errorf("expected fragment to pass, got:\n%s", output)
	}

	if ec, ok := err.(cli.ExitCoder); !ok || ec.ExitCode() != 1 {
		t.Errorf("expected exit code 1, got %v", err)
	}
}
