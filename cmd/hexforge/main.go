// hexforge generates hexagonal Spring Boot projects from domain
// blueprints.
package main

import (
	"context"
	"log"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/hexforge/hexforge/config"
)

// Build metadata, overridable through -ldflags.
var (
	version = "0.1.0"
	commit  = "none"
)

func main() {
	cfg := config.Load()

	root := &cli.Command{
		Name:    "hexforge",
		Usage:   "Generate hexagonal Spring Boot projects from domain blueprints",
		Version: version,
		Commands: []*cli.Command{
			initCommand(cfg),
			validateCommand(cfg),
			generateCommand(cfg),
			modelCommand(cfg),
			versionCommand(),
		},
	}

	if err := root.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}
