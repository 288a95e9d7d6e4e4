package grammar

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromCobra_FlagsClassifiedByValueType(t *testing.T) {
	root := &cobra.Command{Use: "demo"}
	root.Flags().Bool("verbose", false, "verbose output")
	root.Flags().StringArray("tag", nil, "a tag")
	root.Flags().String("name", "", "a name")

	p := FromCobra(root)

	verbose, ok := p.FindOptional("--verbose")
	require.True(t, ok)
	assert.Equal(t, KindStoreTrue, verbose.Kind)

	tag, ok := p.FindOptional("--tag")
	require.True(t, ok)
	assert.Equal(t, KindAppend, tag.Kind)

	name, ok := p.FindOptional("--name")
	require.True(t, ok)
	assert.Equal(t, KindStore, name.Kind)
}

func TestFromCobra_SubcommandsAndAliasesBecomeSubparsers(t *testing.T) {
	root := &cobra.Command{Use: "demo"}
	child := &cobra.Command{Use: "remove", Aliases: []string{"rm"}, Run: func(*cobra.Command, []string) {}}
	root.AddCommand(child)

	p := FromCobra(root)
	require.Len(t, p.Positionals(), 1)
	sp := p.Positionals()[0].Subparsers
	require.NotNil(t, sp)

	for _, name := range []string{"remove", "rm"} {
		_, ok := sp.Lookup(name)
		assert.True(t, ok, name)
	}
}

func TestFromCobra_HiddenCommandExcluded(t *testing.T) {
	root := &cobra.Command{Use: "demo"}
	visible := &cobra.Command{Use: "status", Run: func(*cobra.Command, []string) {}}
	hidden := &cobra.Command{Use: "secret", Hidden: true, Run: func(*cobra.Command, []string) {}}
	root.AddCommand(visible, hidden)

	p := FromCobra(root)
	require.Len(t, p.Positionals(), 1)
	sp := p.Positionals()[0].Subparsers
	_, ok := sp.Lookup("status")
	assert.True(t, ok)
	_, ok = sp.Lookup("secret")
	assert.False(t, ok)
}

func TestFromCobra_FlagCompletionFuncWired(t *testing.T) {
	root := &cobra.Command{Use: "demo", Run: func(*cobra.Command, []string) {}}
	root.Flags().String("env", "", "environment")
	require.NoError(t, root.RegisterFlagCompletionFunc("env", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return []string{"dev", "prod"}, cobra.ShellCompDirectiveNoFileComp
	}))

	p := FromCobra(root)
	env, ok := p.FindOptional("--env")
	require.True(t, ok)
	require.NotNil(t, env.Completer)

	items := env.Completer.Complete("", env, p, Namespace{})
	require.Len(t, items, 2)
	assert.Equal(t, "dev", items[0].Literal)
}

func TestFromCobra_ValidArgsBecomeChoices(t *testing.T) {
	root := &cobra.Command{Use: "demo", ValidArgs: []string{"bash", "zsh"}, Run: func(*cobra.Command, []string) {}}

	p := FromCobra(root)
	require.Len(t, p.Positionals(), 1)
	assert.Equal(t, []string{"bash", "zsh"}, p.Positionals()[0].Choices)
}
