package simulate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-argcomplete/argcomplete/pkg/complete/grammar"
)

func TestWalk_StoreOptionSetsNamespace(t *testing.T) {
	p := grammar.NewParser()
	require.NoError(t, p.AddOptional(&grammar.Action{OptionStrings: []string{"--name"}, Dest: "name", Kind: grammar.KindStore}))

	st := Walk(p, []string{"--name", "bob"})
	assert.Equal(t, "bob", st.Namespace()["name"])
	assert.Nil(t, st.PendingOption())
}

func TestWalk_PendingOptionWhileOperandNotYetTyped(t *testing.T) {
	p := grammar.NewParser()
	act := &grammar.Action{OptionStrings: []string{"--name"}, Dest: "name", Kind: grammar.KindStore}
	require.NoError(t, p.AddOptional(act))

	st := Walk(p, []string{"--name"})
	require.NotNil(t, st.PendingOption())
	assert.Equal(t, "name", st.PendingOption().Dest)
}

func TestWalk_CountIncrementsOnEachOccurrence(t *testing.T) {
	p := grammar.NewParser()
	require.NoError(t, p.AddOptional(&grammar.Action{OptionStrings: []string{"-v"}, Dest: "verbosity", Kind: grammar.KindCount}))

	st := Walk(p, []string{"-v", "-v", "-v"})
	assert.Equal(t, 3, st.Namespace()["verbosity"])
}

func TestWalk_MutexBlocksSecondMember(t *testing.T) {
	p := grammar.NewParser()
	foo := &grammar.Action{OptionStrings: []string{"--foo"}, Dest: "foo", Kind: grammar.KindStoreTrue, GroupID: "g"}
	bar := &grammar.Action{OptionStrings: []string{"--bar"}, Dest: "bar", Kind: grammar.KindStoreTrue, GroupID: "g"}
	require.NoError(t, p.AddOptional(foo))
	require.NoError(t, p.AddOptional(bar))

	st := Walk(p, []string{"--foo"})
	assert.True(t, st.MutexBlocked(bar))
	assert.False(t, st.MutexBlocked(foo))
}

func TestWalk_SubparserPushesChildParser(t *testing.T) {
	root := grammar.NewParser()
	sp := root.AddSubparsers("command")
	child := grammar.NewParser()
	require.NoError(t, child.AddOptional(&grammar.Action{OptionStrings: []string{"--type"}, Dest: "type", Kind: grammar.KindStore}))
	sp.Add("eggs", child)

	st := Walk(root, []string{"eggs", "--type"})
	assert.Same(t, child, st.Current())
	require.NotNil(t, st.PendingOption())
	assert.Equal(t, "type", st.PendingOption().Dest)
}

func TestWalk_UnknownSubcommandAborts(t *testing.T) {
	root := grammar.NewParser()
	sp := root.AddSubparsers("command")
	sp.Add("eggs", grammar.NewParser())

	st := Walk(root, []string{"nope", "--help"})
	assert.Same(t, root, st.Current())
	assert.False(t, st.Seen(mustFind(t, root, "--help")))
}

func TestWalk_RemainderSwallowsEverythingIncludingDashes(t *testing.T) {
	p := grammar.NewParser()
	rem := &grammar.Action{Dest: "rest", Kind: grammar.KindStore, Nargs: grammar.NargsRemainder()}
	require.NoError(t, p.AddPositional(rem))

	st := Walk(p, []string{"--help", "-x", "y"})
	assert.Equal(t, "y", st.Namespace()["rest"])
	// the REMAINDER positional's index never advances, so it stays the
	// (only) active positional for as long as the walk continues.
	require.Len(t, st.ActivePositionals(), 1)
	assert.Equal(t, "rest", st.ActivePositionals()[0].Dest)
}

func TestActivePositionals_OptionalPositionalsChainUntilMandatory(t *testing.T) {
	p := grammar.NewParser()
	opt1 := &grammar.Action{Dest: "a", Nargs: grammar.NargsOptional()}
	opt2 := &grammar.Action{Dest: "b", Nargs: grammar.NargsZeroOrMore()}
	mand := &grammar.Action{Dest: "c", Nargs: grammar.NargsOne()}
	require.NoError(t, p.AddPositional(opt1))
	require.NoError(t, p.AddPositional(opt2))
	require.NoError(t, p.AddPositional(mand))

	st := Walk(p, nil)
	active := st.ActivePositionals()
	require.Len(t, active, 3)
	assert.Equal(t, "a", active[0].Dest)
	assert.Equal(t, "c", active[2].Dest)
}

func mustFind(t *testing.T, p *grammar.Parser, opt string) *grammar.Action {
	t.Helper()
	a, ok := p.FindOptional(opt)
	require.True(t, ok)
	return a
}
