package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootRegistersCommands(t *testing.T) {
	root := newRootCmd()
	for _, name := range []string{"serve", "migrate", "migrate:rollback", "migrate:status", "seed", "route:list", "user:create"} {
		cmd, _, err := root.Find([]string{name})
		require.NoError(t, err, name)
		assert.Equal(t, name, cmd.Name())
	}
}

func TestRouteListPrintsNamedRoutes(t *testing.T) {
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"route:list"})

	require.NoError(t, root.Execute())

	for _, want := range []string{"METHOD", "sales.index", "sales.destroy", "sales.generatePDF", "/sales/{sale}/pdf", "login", "logout", "dashboard"} {
		assert.Contains(t, out.String(), want)
	}
}

func TestUserCreateRejectsUnknownRole(t *testing.T) {
	root := newRootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetArgs([]string{"user:create", "--email", "a@b.c", "--password", "x", "--role", "owner"})

	err := root.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "owner")
}
