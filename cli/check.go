package cli

import (
	"bytes"
	"fmt"

	"github.com/go-barry/todos/core"
	"github.com/go-barry/todos/todo"
	"github.com/urfave/cli/v2"
)

var CheckCommand = &cli.Command{
	Name:  "check",
	Usage: "Validate the page and results templates",
	Flags: []cli.Flag{configFlag},
	Action: func(c *cli.Context) error {
		config := core.LoadConfig(c.String("config"))

		assets := core.NewAssets(core.StaticFS(*config), false)
		tmpl, err := core.ParseTemplates(core.TemplatesFS(*config), core.TemplateFuncs("dev", assets))
		if err != nil {
			fmt.Printf("❌ templates → parse error: %v\n", err)
			return cli.Exit("some templates failed to compile", 1)
		}

		sample := todo.Search(todo.All(), "Buy")

		var failed bool
		for _, name := range []string{core.PageTemplate, core.FragmentTemplate} {
			var buf bytes.Buffer
			err := tmpl.ExecuteTemplate(&buf, name, map[string]interface{}{"todos": sample})
			if err != nil {
				failed = true
				fmt.Printf("❌ %s → exec error: %v\n", name, err)
				continue
			}
			fmt.Printf("✅ %s\n", name)
		}

		if failed {
			return cli.Exit("some templates failed to compile", 1)
		}

		fmt.Println("✅ All templates validated successfully.")
		return nil
	},
}
