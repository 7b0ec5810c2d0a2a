package cmdflags

import (
	"github.com/urfave/cli/v2"

	"github.com/lbreton/showcase/store/airtable"
)

func Bind(out *string) cli.Flag {
	return &cli.StringFlag{
		Name:        "bind",
		Usage:       "Address to bind the HTTP API to",
		Value:       *out,
		Destination: out,
		EnvVars:     []string{"SHOWCASE_BIND"},
	}
}

func AirtableBase(out *string) cli.Flag {
	return &cli.StringFlag{
		Name:        "airtable-base",
		Aliases:     []string{"b", "base"},
		Usage:       "Identifier of the Airtable base holding the Projects/Comments/Users tables",
		Value:       *out,
		Destination: out,
		EnvVars:     []string{"AIRTABLE_BASE_ID"},
	}
}

func APIKeyEnvVar(out *string) cli.Flag {
	if len(*out) == 0 {
		*out = airtable.APIKeyEnvVar
	}
	return &cli.StringFlag{
		Name:        "api-key-envvar-name",
		Usage:       "Name of the environment variable that holds the Airtable API key. The key itself should not be passed as an argument",
		Value:       *out,
		Destination: out,
	}
}

func SecretEnvVar(out *string, def string) cli.Flag {
	if len(*out) == 0 {
		*out = def
	}
	return &cli.StringFlag{
		Name:        "secret-envvar-name",
		Usage:       "Name of the environment variable that holds the token signing secret. The secret itself should not be passed as an argument",
		Value:       *out,
		Destination: out,
	}
}

func LocalDB(out *string) cli.Flag {
	return &cli.StringFlag{
		Name:        "local-db",
		Usage:       "Path to a local sqlite record store, used instead of Airtable when set",
		Value:       *out,
		Destination: out,
		EnvVars:     []string{"SHOWCASE_LOCAL_DB"},
	}
}
