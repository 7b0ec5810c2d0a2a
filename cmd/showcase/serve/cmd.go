package serve

import (
	"errors"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/lbreton/showcase/api"
	"github.com/lbreton/showcase/auth"
	"github.com/lbreton/showcase/catalog"
	"github.com/lbreton/showcase/internal/cmdflags"
	"github.com/lbreton/showcase/internal/httpserver"
	"github.com/lbreton/showcase/store"
	"github.com/lbreton/showcase/store/airtable"
	"github.com/lbreton/showcase/store/localdb"
)

func Cmd() *cli.Command {
	bindAddr := "localhost:5000"
	var baseID string
	var apiKeyEnvVar string
	var secretEnvVar string
	var localDBPath string
	return &cli.Command{
		Name:  "serve",
		Usage: "Start the showcase HTTP API",
		Flags: []cli.Flag{
			cmdflags.Bind(&bindAddr),
			cmdflags.AirtableBase(&baseID),
			cmdflags.APIKeyEnvVar(&apiKeyEnvVar),
			cmdflags.SecretEnvVar(&secretEnvVar, auth.SecretEnvVar),
			cmdflags.LocalDB(&localDBPath),
		},
		Action: func(ctx *cli.Context) error {
			secret, err := auth.SecretFromEnv(secretEnvVar, os.Getenv, os.Setenv)
			if err != nil {
				return err
			}
			var backend store.Store
			switch {
			case localDBPath != "":
				db, err := localdb.Open(ctx.Context, localDBPath)
				if err != nil {
					return err
				}
				defer db.Close()
				backend = db
			case baseID != "":
				apiKey := os.Getenv(apiKeyEnvVar)
				os.Setenv(apiKeyEnvVar, "")
				if apiKey == "" {
					return errors.New("missing Airtable API key")
				}
				backend = airtable.New(baseID, apiKey)
			default:
				return errors.New("either an Airtable base or a local database path is required")
			}
			svc := catalog.NewService(backend)
			handler := api.AsHandler(svc, auth.NewTokens(secret))
			return httpserver.Serve(ctx.Context, bindAddr, handler)
		},
	}
}
