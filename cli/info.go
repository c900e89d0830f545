package cli

import (
	"fmt"

	"github.com/go-barry/todos/core"
	"github.com/go-barry/todos/todo"
	"github.com/urfave/cli/v2"
)

func orEmbedded(dir string) string {
	if dir == "" {
		return "(embedded)"
	}
	return dir
}

var InfoCommand = &cli.Command{
	Name:  "info",
	Usage: "Print the effective configuration and todo count",
	Flags: []cli.Flag{configFlag},
	Action: func(c *cli.Context) error {
		config := core.LoadConfig(c.String("config"))

		fmt.Println("📁 Templates:", orEmbedded(config.TemplatesDir))
		fmt.Println("📁 Static Files:", orEmbedded(config.PublicDir))
		fmt.Println("🔁 Cache Enabled:", config.CacheEnabled)
		fmt.Println("🔁 Minify HTML:", config.MinifyHTML)
		fmt.Println("🔁 Debug Headers Enabled:", config.DebugHeaders)
		fmt.Println("📝 Log Format:", config.LogFormat)
		fmt.Println()

		items := todo.All()
		source := "built-in"
		if config.TodosFile != "" {
			loaded, err := todo.LoadFile(config.TodosFile)
			if err != nil {
				return fmt.Errorf("failed to load todos: %w", err)
			}
			items = loaded
			source = config.TodosFile
		}

		done := 0
		for _, item := range items {
			if item.Completed {
				done++
			}
		}

		fmt.Println("🗂️  Todos Source:", source)
		fmt.Println("📦 Todos Found:", len(items))
		fmt.Println("✅ Completed:", done)

		return nil
	},
}
