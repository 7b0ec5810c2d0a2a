package auth

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSecretFromEnv(t *testing.T) {
	env := map[string]string{"TEST_SECRET": "super-secret"}
	getfn := func(k string) string { return env[k] }
	setfn := func(k, v string) error { env[k] = v; return nil }

	secret, err := SecretFromEnv("TEST_SECRET", getfn, setfn)
	require.NoError(t, err)
	require.Equal(t, []byte("super-secret"), secret)
	require.Empty(t, env["TEST_SECRET"], "reading the secret should scrub it from the environment")
}

func TestSecretFromEnvMissing(t *testing.T) {
	env := map[string]string{}
	getfn := func(k string) string { return env[k] }
	setfn := func(k, v string) error { env[k] = v; return nil }

	_, err := SecretFromEnv("TEST_SECRET", getfn, setfn)
	require.Error(t, err)
}
