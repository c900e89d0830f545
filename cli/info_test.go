package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/urfave/cli/v2"
)

func TestInfoCommand_WithTodosFile(t *testing.T) {
	tmpDir := t.TempDir()

	todosPath := filepath.Join(tmpDir, "todos.yml")
	_ = os.WriteFile(todosPath, []byte("- title: Buy milk\n- title: Clean house\n  completed: true\n"), 0644)

	configPath := filepath.Join(tmpDir, "todos.config.yml")
	configContent := "templatesDir: ./templates\ncache: true\ndebugHeaders: true\ntodosFile: " + todosPath + "\n"
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	app := &cli.App{Commands: []*cli.Command{InfoCommand}}

	var runErr error
	output := captureOutput(func() {
		runErr = app.Run([]string{"todos", "info", "--config", configPath})
	})

	if runErr != nil {
		t.Fatalf("expected no error, got: %v", runErr)
	}

	for _, want := range []string{
		"📁 Templates: ./templates",
		"📁 Static Files: (embedded)",
		"🔁 Cache Enabled: true",
		"🔁 Debug Headers Enabled: true",
		"📝 Log Format: text",
		"🗂️  Todos Source: " + todosPath,
		"📦 Todos Found: 2",
		"✅ Completed: 1",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("expected output to contain %q, got:\n%s", want, output)
		}
	}
}

func TestInfoCommand_Defaults(t *testing.T) {
	app := &cli.App{Commands: []*cli.Command{InfoCommand}}

	var runErr error
	output := captureOutput(func() {
		runErr = app.Run([]string{"todos", "info", "--config", filepath.Join(t.TempDir(), "missing.yml")})
	})

	if runErr != nil {
		t.Fatalf("expected no error, got: %v", runErr)
	}
	if !strings.Contains(output, "🗂️  Todos Source: built-in") {
		t.Errorf("expected built-in source, got:\n%s", output)
	}
	if !strings.Contains(output, "📁 Templates: (embedded)") {
		t.Errorf("expected embedded templates, got:\n%s", output)
	}
}

func TestInfoCommand_BadTodosFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "todos.config.yml")
	_ = os.WriteFile(configPath, []byte("todosFile: "+filepath.Join(tmpDir, "nope.yml")+"\n"), 0644)

	app := &cli.App{Commands: []*cli.Command{InfoCommand}}

	var runErr error
	captureOutput(func() {
		runErr = app.Run([]string{"todos", "info", "--config", configPath})
	})

	if runErr == nil {
		t.Error("expected error for missing todos file")
	}
}
