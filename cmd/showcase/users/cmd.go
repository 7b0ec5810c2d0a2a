package users

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/lbreton/showcase/auth"
	"github.com/lbreton/showcase/catalog"
	"github.com/lbreton/showcase/internal/cmdflags"
	"github.com/lbreton/showcase/store"
	"github.com/lbreton/showcase/store/airtable"
	"github.com/lbreton/showcase/store/localdb"
)

func Cmd() *cli.Command {
	var baseID string
	var apiKeyEnvVar string
	var localDBPath string
	var backend store.Store
	return &cli.Command{
		Name:  "users",
		Usage: "Manage user accounts directly against the record store",
		Flags: []cli.Flag{
			cmdflags.AirtableBase(&baseID),
			cmdflags.APIKeyEnvVar(&apiKeyEnvVar),
			cmdflags.LocalDB(&localDBPath),
		},
		Before: func(ctx *cli.Context) error {
			switch {
			case localDBPath != "":
				db, err := localdb.Open(ctx.Context, localDBPath)
				if err != nil {
					return err
				}
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
			return nil
		},
		Subcommands: []*cli.Command{
			registerCmd(&backend),
		},
	}
}

func registerCmd(backend *store.Store) *cli.Command {
	var username string
	return &cli.Command{
		Name:  "register",
		Usage: "Register a new user (password is read from stdin); the first account becomes the admin",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "username",
				Aliases:     []string{"u", "user"},
				Usage:       "Name of the user to register",
				Destination: &username,
				Required:    true,
			},
		},
		Action: func(ctx *cli.Context) error {
			sc := bufio.NewScanner(os.Stdin)
			if !sc.Scan() {
				return sc.Err()
			}
			password := strings.TrimSpace(sc.Text())
			if len(password) == 0 {
				return errors.New("missing password from stdin")
			}
			svc := catalog.NewService(*backend)
			user, err := auth.Register(ctx.Context, svc, username, password)
			if err != nil {
				return err
			}
			fmt.Printf("registered %v with role %v\n", user.Username, user.Role)
			return nil
		},
	}
}
