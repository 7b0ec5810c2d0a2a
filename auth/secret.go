package auth

import (
	"errors"
	"os"
)

const (
	SecretEnvVar = "SHOWCASE_TOKEN_SECRET"
)

// SecretFromEnv reads the signing secret from the named environment
// variable and scrubs the variable afterwards, so the secret cannot be
// re-read from the environment of child processes.
func SecretFromEnv(varname string, getfn func(string) string, setfn func(string, string) error) ([]byte, error) {
	if getfn == nil {
		getfn = os.Getenv
	}
	if setfn == nil {
		setfn = os.Setenv
	}
	val := getfn(varname)
	if err := setfn(varname, ""); err != nil {
		return nil, err
	}
	if len(val) == 0 {
		return nil, errors.New("auth: signing secret is empty, refusing to issue forgeable tokens")
	}
	return []byte(val), nil
}
