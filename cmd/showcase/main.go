package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"github.com/lbreton/showcase/cmd/showcase/serve"
	"github.com/lbreton/showcase/cmd/showcase/users"
)

func main() {
	app := &cli.App{
		Name:  "showcase",
		Usage: "Backend for the student project showcase",
		Commands: []*cli.Command{
			serve.Cmd(),
			users.Cmd(),
		},
	}
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()
	err := app.RunContext(ctx, os.Args)
	if err != nil {
		log.Error().Err(err).Msg("Application failed")
	}
}
