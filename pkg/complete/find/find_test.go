package find

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-argcomplete/argcomplete/pkg/complete/grammar"
	"github.com/go-argcomplete/argcomplete/pkg/complete/lexer"
)

func literals(cs []Candidate) []string {
	out := make([]string, len(cs))
	for i, c := range cs {
		out[i] = c.Literal
	}
	sort.Strings(out)
	return out
}

// scenario 1
func TestFind_BareInvocationListsOptions(t *testing.T) {
	p := grammar.NewParser()
	require.NoError(t, p.AddOptional(&grammar.Action{OptionStrings: []string{"--foo"}, Dest: "foo", Kind: grammar.KindStoreTrue}))
	require.NoError(t, p.AddOptional(&grammar.Action{OptionStrings: []string{"--bar"}, Dest: "bar", Kind: grammar.KindStoreTrue}))

	ctx := lexer.Split("prog ", 5, "")
	f := New(p, Options{AppendSpace: true})
	got := literals(f.Find(ctx))
	assert.ElementsMatch(t, []string{"-h", "--help", "--foo", "--bar"}, got)
}

// scenario 2
func TestFind_SingleMatchGetsTrailingSpace(t *testing.T) {
	p := grammar.NewParser()
	require.NoError(t, p.AddOptional(&grammar.Action{
		OptionStrings: []string{"--ship"},
		Dest:          "ship",
		Kind:          grammar.KindStore,
		Choices:       []string{"submarine", "speedboat"},
	}))

	line := "prog --ship su"
	ctx := lexer.Split(line, len(line), "")
	f := New(p, Options{AppendSpace: true})
	got := f.Find(ctx)
	require.Len(t, got, 1)
	assert.Equal(t, "submarine ", got[0].Literal)
}

// scenario 3
func TestFind_SubparserChoicesWithOpenQuote(t *testing.T) {
	root := grammar.NewParser()
	sp := root.AddSubparsers("command")
	eggs := grammar.NewParser()
	require.NoError(t, eggs.AddPositional(&grammar.Action{
		Dest:    "type",
		Kind:    grammar.KindStore,
		Choices: []string{"on a boat", "on a train", "with a goat", "in the rain"},
	}))
	sp.Add("eggs", eggs)

	line := `prog eggs "on a`
	ctx := lexer.Split(line, len(line), "")
	require.Equal(t, `"`, ctx.Prequote)

	f := New(root, Options{AppendSpace: true})
	got := literals(f.Find(ctx))
	assert.Equal(t, []string{"on a boat", "on a train"}, got)
}

// scenario 5
func TestFind_MutexGroupExcludesBlockedPeer(t *testing.T) {
	p := grammar.NewParser()
	require.NoError(t, p.AddOptional(&grammar.Action{OptionStrings: []string{"--bar"}, Dest: "bar", Kind: grammar.KindStoreTrue, GroupID: "g1"}))
	require.NoError(t, p.AddOptional(&grammar.Action{OptionStrings: []string{"--no-bar"}, Dest: "bar", Kind: grammar.KindStoreFalse, GroupID: "g1"}))
	require.NoError(t, p.AddOptional(&grammar.Action{OptionStrings: []string{"--foo"}, Dest: "foo", Kind: grammar.KindStoreTrue}))

	ctx := lexer.Split("prog --bar ", 11, "")
	f := New(p, Options{AppendSpace: true})
	got := literals(f.Find(ctx))
	assert.Contains(t, got, "--bar")
	assert.Contains(t, got, "--foo")
	assert.NotContains(t, got, "--no-bar")
}

// scenario 6
func TestFind_RemainderSuppressesOptions(t *testing.T) {
	p := grammar.NewParser()
	require.NoError(t, p.AddPositional(&grammar.Action{
		Dest:    "rest",
		Kind:    grammar.KindStore,
		Nargs:   grammar.NargsRemainder(),
		Choices: []string{"--opt", "--other"},
	}))

	ctx := lexer.Split("prog -- --opt ", 14, "")
	f := New(p, Options{AppendSpace: true})
	got := literals(f.Find(ctx))
	assert.NotContains(t, got, "-h")
	assert.NotContains(t, got, "--help")
}

func TestFind_ValidatorFiltersByPrefix(t *testing.T) {
	p := grammar.NewParser()
	require.NoError(t, p.AddOptional(&grammar.Action{OptionStrings: []string{"--alpha"}, Dest: "a", Kind: grammar.KindStoreTrue}))
	require.NoError(t, p.AddOptional(&grammar.Action{OptionStrings: []string{"--beta"}, Dest: "b", Kind: grammar.KindStoreTrue}))

	ctx := lexer.Split("prog --a", 8, "")
	f := New(p, Options{})
	got := literals(f.Find(ctx))
	assert.Equal(t, []string{"--alpha"}, got)
}

func TestFind_UniquePrefixYieldsSingleCandidate(t *testing.T) {
	p := grammar.NewParser()
	require.NoError(t, p.AddOptional(&grammar.Action{OptionStrings: []string{"--alpha"}, Dest: "a", Kind: grammar.KindStoreTrue}))

	ctx := lexer.Split("prog --a", 8, "")
	f := New(p, Options{})
	got := f.Find(ctx)
	require.Len(t, got, 1)
}

func TestFind_ReuseAcrossInvocationsIsIndependent(t *testing.T) {
	p := grammar.NewParser()
	require.NoError(t, p.AddOptional(&grammar.Action{OptionStrings: []string{"--ship"}, Dest: "ship", Kind: grammar.KindStore, Choices: []string{"submarine", "speedboat"}}))
	f := New(p, Options{AppendSpace: true})

	line := "prog --ship su"
	ctx := lexer.Split(line, len(line), "")
	first := f.Find(ctx)
	second := f.Find(ctx)
	assert.Equal(t, first, second)
}
