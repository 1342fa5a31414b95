package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"
)

// @title City Geo Events API
// @version 1.0
// @description Caché de eventos por ciudad y composición de filtros para el mapa.
// @BasePath /
func main() {
	// .env es opcional
	_ = godotenv.Load()

	app := &cli.App{
		Name:  "city-geo-events",
		Usage: "Event cache and filter engine for the city-geo map.",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, EnvVars: []string{"CONFIG_PATH"}, Usage: "YAML config file"},
		},
		Commands: []*cli.Command{
			serveCommand(),
			eventsCommand(),
		},
		DefaultCommand: "serve",
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
