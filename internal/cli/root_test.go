package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateAppCommandFlags(t *testing.T) {
	cmd := newCreateAppCommand()

	for _, name := range []string{FlagTemplate, FlagRef, FlagForce, FlagUseCurrentDir} {
		assert.NotNil(t, cmd.Flags().Lookup(name), "missing flag %s", name)
	}
	for _, name := range []string{"no-color", "quiet", "verbose"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(name), "missing global flag %s", name)
	}

	flag := cmd.Flags().Lookup(FlagTemplate)
	require.NotNil(t, flag)
	assert.Equal(t, "t", flag.Shorthand)
}

func TestCreateAppCommandRejectsExtraArgs(t *testing.T) {
	cmd := newCreateAppCommand()
	cmd.SetArgs([]string{"my-app", "extra"})

	err := cmd.Execute()
	require.Error(t, err)
}

func TestRootCommandHasSubcommands(t *testing.T) {
	names := map[string]bool{}
	for _, sub := range rootCmd.Commands() {
		names[sub.Name()] = true
	}
	assert.True(t, names["init"])
	assert.True(t, names["version"])
}
