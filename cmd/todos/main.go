package main

import (
	"os"

	"github.com/charmbracelet/log"
	clilib "github.com/urfave/cli/v2"

	todoscli "github.com/go-barry/todos/cli"
)

func runApp(args []string) error {
	app := &clilib.App{
		Name:  "todos",
		Usage: "Serve a to-do list with a live title search",
		Commands: []*clilib.Command{
			todoscli.InitCommand,
			todoscli.DevCommand,
			todoscli.ProdCommand,
			todoscli.CheckCommand,
			todoscli.InfoCommand,
		},
	}
	return app.Run(args)
}

func main() {
	if err := runApp(os.Args); err != nil {
		log.Fatal(err)
	}
}
