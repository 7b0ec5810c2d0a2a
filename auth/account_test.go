package auth

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lbreton/showcase/catalog"
	"github.com/lbreton/showcase/internal/testutil"
)

func TestFirstUserBecomesAdmin(t *testing.T) {
	ctx := context.Background()
	mem := testutil.NewMemStore()
	svc := catalog.NewService(mem)

	first, err := Register(ctx, svc, "alice", "password1")
	require.NoError(t, err)
	require.Equal(t, catalog.RoleAdmin, first.Role)

	for i := 0; i < 3; i++ {
		user, err := Register(ctx, svc, fmt.Sprintf("user%d", i), "password1")
		require.NoError(t, err)
		require.Equal(t, catalog.RoleUser, user.Role)
	}
}

func TestRegisterDuplicateUsername(t *testing.T) {
	ctx := context.Background()
	mem := testutil.NewMemStore()
	svc := catalog.NewService(mem)

	_, err := Register(ctx, svc, "alice", "password1")
	require.NoError(t, err)

	_, err = Register(ctx, svc, "alice", "password2")
	var dup DuplicateUsername
	require.ErrorAs(t, err, &dup)
	require.Equal(t, "alice", dup.Username)
	require.Equal(t, 1, mem.Count(catalog.UsersTable), "failed registration must not create a record")
}

func TestRegisterValidation(t *testing.T) {
	ctx := context.Background()
	svc := catalog.NewService(testutil.NewMemStore())

	_, err := Register(ctx, svc, "", "")
	var verr catalog.ValidationError
	require.ErrorAs(t, err, &verr)
	require.ElementsMatch(t, []string{"username", "password"}, verr.Missing)

	_, err = Register(ctx, svc, "bob", "short")
	require.ErrorAs(t, err, &verr)
	require.Contains(t, verr.Invalid, "password")
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	svc := catalog.NewService(testutil.NewMemStore())
	tokens := NewTokens([]byte("test-secret"))

	registered, err := Register(ctx, svc, "alice", "password1")
	require.NoError(t, err)

	token, user, err := Login(ctx, svc, tokens, "alice", "password1")
	require.NoError(t, err)
	require.Equal(t, registered.UserID, user.UserID)

	userID, err := tokens.Verify(token)
	require.NoError(t, err)
	require.Equal(t, registered.UserID, userID)

	_, _, err = Login(ctx, svc, tokens, "alice", "wrong-password")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = Login(ctx, svc, tokens, "nobody", "password1")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}
