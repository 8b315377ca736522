package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCmd_Subcomandos(t *testing.T) {
	root := newRootCmd()
	names := map[string]bool{}
	for _, c := range root.Commands() {
		names[c.Name()] = true
	}
	assert.True(t, names["migrate"])
	assert.True(t, names["seed-user"])
}

func TestSeedUser_Flags(t *testing.T) {
	root := newRootCmd()
	cmd, _, err := root.Find([]string{"seed-user"})
	require.NoError(t, err)
	for _, f := range []string{"email", "password", "name", "force"} {
		assert.NotNil(t, cmd.Flags().Lookup(f), f)
	}
	assert.Equal(t, "false", cmd.Flags().Lookup("force").DefValue)
}
