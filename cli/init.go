package cli

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/go-barry/todos/web"
	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"
)

var getwd = os.Getwd

var InitCommand = &cli.Command{
	Name:      "init",
	Usage:     "Copy the built-in templates and static files into a directory for editing",
	ArgsUsage: "[directory (default: current directory)]",
	Flags: []cli.Flag{
		&cli.BoolFlag{
			Name:  "force",
			Usage: "overwrite existing files",
		},
		&cli.StringFlag{
			Name:  "config",
			Usage: "name of the config file to write",
			Value: "todos.config.yml",
		},
	},
	Action: func(c *cli.Context) error {
		targetDir := c.Args().First()
		runHint := "todos dev"
		if targetDir == "" {
			wd, err := getwd()
			if err != nil {
				return fmt.Errorf("failed to resolve current directory: %w", err)
			}
			targetDir = wd
		} else {
			runHint = "cd " + targetDir + " && todos dev"
		}
		fmt.Println("🚀 Writing templates to:", targetDir)

		templatesDir := filepath.Join(targetDir, "templates")
		publicDir := filepath.Join(targetDir, "static")
		force := c.Bool("force")

		if err := copyFS(web.Templates(), templatesDir, force); err != nil {
			return fmt.Errorf("failed to copy templates: %w", err)
		}
		if err := copyFS(web.Static(), publicDir, force); err != nil {
			return fmt.Errorf("failed to copy static files: %w", err)
		}

		configPath := filepath.Join(targetDir, c.String("config"))
		if _, err := os.Stat(configPath); err == nil && !force {
			fmt.Println("⚠️  Keeping existing config:", configPath)
		} else {
			data, err := yaml.Marshal(map[string]interface{}{
				"templatesDir": "templates",
				"publicDir":    "static",
				"debugHeaders": true,
			})
			if err != nil {
				return err
			}
			if err := os.WriteFile(configPath, data, 0644); err != nil {
				return fmt.Errorf("failed to write config: %w", err)
			}
			fmt.Println("🔧 Wrote config:", configPath)
		}

		fmt.Println("✅ Templates ready.")
		fmt.Println("▶  Run:", runHint)
		return nil
	},
}

// copyFS writes every file in source under targetDir. Existing files are
// left alone unless force is set.
func copyFS(source fs.FS, targetDir string, force bool) error {
	return fs.WalkDir(source, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		targetPath := filepath.Join(targetDir, filepath.FromSlash(path))

		if d.IsDir() {
			return os.MkdirAll(targetPath, os.ModePerm)
		}

		if _, err := os.Stat(targetPath); err == nil && !force {
			fmt.Println("⚠️  Skipping existing file:", targetPath)
			return nil
		}

		data, err := fs.ReadFile(source, path)
		if err != nil {
			return err
		}

		if err := os.MkdirAll(filepath.Dir(targetPath), os.ModePerm); err != nil {
			return err
		}

		fmt.Println("📄", targetPath)
		return os.WriteFile(targetPath, data, 0644)
	})
}
