package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"refurb-tracker/pkg/service"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := rootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestTokenCommand(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "cli-test-secret")
	t.Setenv("LOG_LEVEL", "error")

	out, err := execute(t, "token", "--operator", "7", "--role", service.RoleAdmin)
	require.NoError(t, err)

	token := strings.TrimSpace(out)
	claims, err := service.NewJWTService("cli-test-secret", 0).ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint64(7), claims.OperatorID)
	assert.Equal(t, service.RoleAdmin, claims.Role)
}

func TestTokenCommandRejectsBadInput(t *testing.T) {
	t.Setenv("LOG_LEVEL", "error")

	_, err := execute(t, "token", "--role", service.RoleAdmin)
	assert.ErrorContains(t, err, "--operator")

	_, err = execute(t, "token", "--operator", "1", "--role", "owner")
	assert.ErrorContains(t, err, "owner")
}

func TestCommandTree(t *testing.T) {
	root := rootCommand()

	for _, path := range [][]string{
		{"migrate", "up"},
		{"migrate", "down"},
		{"migrate", "status"},
		{"seed"},
		{"import", "devices"},
		{"export", "devices"},
		{"token"},
	} {
		cmd, _, err := root.Find(path)
		require.NoError(t, err, strings.Join(path, " "))
		assert.Equal(t, path[len(path)-1], cmd.Name())
	}
}

func TestDeviceCommandsRequireFile(t *testing.T) {
	t.Setenv("LOG_LEVEL", "error")

	_, err := execute(t, "import", "devices")
	assert.Error(t, err)
	_, err = execute(t, "export", "devices", "a.xlsx", "b.xlsx")
	assert.Error(t, err)
}
