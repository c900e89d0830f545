package cli

import (
	"github.com/go-barry/todos"
	"github.com/go-barry/todos/core"

	"github.com/urfave/cli/v2"
)

var configFlag = &cli.StringFlag{
	Name:    "config",
	Aliases: []string{"c"},
	Usage:   "path to the YAML config file",
	Value:   core.DefaultConfigPath,
	EnvVars: []string{"TODOS_CONFIG"},
}

var portFlag = &cli.IntFlag{
	Name:    "port",
	Aliases: []string{"p"},
	Usage:   "port to listen on",
	Value:   8080,
	EnvVars: []string{"TODOS_PORT"},
}

var startServer = todos.Start

var DevCommand = &cli.Command{
	Name:  "dev",
	Usage: "Start the todo page in dev mode (no caching, live reload)",
	Flags: []cli.Flag{configFlag, portFlag},
	Action: func(c *cli.Context) error {
		startServer(todos.RuntimeConfig{
			Env:         "dev",
			EnableCache: false,
			Port:        c.Int("port"),
			ConfigPath:  c.String("config"),
		})
		return nil
	},
}

var ProdCommand = &cli.Command{
	Name:  "prod",
	Usage: "Start the todo page in production mode (caching on by default)",
	Flags: []cli.Flag{
		configFlag,
		portFlag,
		&cli.BoolFlag{
			Name:  "cache",
			Usage: "cache rendered pages in memory",
			Value: true,
		},
	},
	Action: func(c *cli.Context) error {
		startServer(todos.RuntimeConfig{
			Env:         "prod",
			EnableCache: c.Bool("cache"),
			Port:        c.Int("port"),
			ConfigPath:  c.String("config"),
		})
		return nil
	},
}
