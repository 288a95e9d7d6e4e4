package grammar

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// FromCobra reflects a *cobra.Command tree into a Parser tree: child
// commands become a subparsers action (aliases included), flags become
// optionals classified by their pflag.Value concrete type, and a flag or
// command registered with a completion function becomes an Action.Completer.
func FromCobra(cmd *cobra.Command) *Parser {
	// cobra only wires its own -h/--help flag onto cmd.Flags() inside
	// ExecuteC(), which runs after Find() resolves the target command --
	// i.e. after Execute() has already started. Reflecting a command before
	// Execute() (as Autocomplete does) would otherwise see no help flag at
	// all. InitDefaultHelpFlag is the same call cobra itself makes, is a
	// no-op if a help flag is already defined, and covers every command in
	// the tree since FromCobra recurses into each child below.
	cmd.InitDefaultHelpFlag()

	p := &Parser{PrefixChars: "-", mutexMembers: make(map[string][]*Action), optionIndex: make(map[string]*Action)}
	addCobraFlags(p, cmd)

	if cmd.HasAvailableSubCommands() {
		sp := p.AddSubparsers("command")
		for _, child := range cmd.Commands() {
			if child.Hidden || child.IsAdditionalHelpTopicCommand() {
				continue
			}
			sp.Add(child.Name(), FromCobra(child), child.Aliases...)
		}
	}

	if cmd.ValidArgsFunction != nil {
		_ = p.AddPositional(&Action{
			Dest:      "args",
			Kind:      KindCustom,
			Nargs:     NargsZeroOrMore(),
			Completer: cobraValidArgsCompleter{cmd},
		})
	} else if len(cmd.ValidArgs) > 0 {
		_ = p.AddPositional(&Action{
			Dest:    "args",
			Kind:    KindStore,
			Choices: cmd.ValidArgs,
		})
	}

	return p
}

func addCobraFlags(p *Parser, cmd *cobra.Command) {
	add := func(fs *pflag.FlagSet) {
		fs.VisitAll(func(f *pflag.Flag) {
			if f.Hidden {
				return
			}
			a := &Action{Dest: f.Name, Help: f.Usage}
			if f.Shorthand != "" {
				a.OptionStrings = []string{"-" + f.Shorthand, "--" + f.Name}
			} else {
				a.OptionStrings = []string{"--" + f.Name}
			}
			switch f.Value.Type() {
			case "bool":
				a.Kind = KindStoreTrue
			case "count":
				a.Kind = KindCount
			case "stringArray", "stringSlice":
				a.Kind = KindAppend
			default:
				a.Kind = KindStore
			}
			if fn, ok := flagCompletion(cmd, f.Name); ok {
				a.Completer = cobraFlagCompleter{cmd, fn}
			}
			_ = p.AddOptional(a)
		})
	}
	add(cmd.Flags())
	add(cmd.PersistentFlags())
}

// flagCompletion looks up a registered per-flag completion function via
// cobra's own RegisterFlagCompletionFunc bookkeeping, exposed here through
// the GetFlagCompletionFunc helper cobra ships for exactly this purpose.
func flagCompletion(cmd *cobra.Command, flagName string) (func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective), bool) {
	fn, err := cmd.GetFlagCompletionFunc(flagName)
	if err != nil || fn == nil {
		return nil, false
	}
	return fn, true
}

type cobraFlagCompleter struct {
	cmd *cobra.Command
	fn  func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective)
}

func (c cobraFlagCompleter) Complete(prefix string, _ *Action, _ *Parser, ns Namespace) []CandidateItem {
	values, _ := c.fn(c.cmd, namespaceArgs(ns), prefix)
	return stringsToItems(values)
}

type cobraValidArgsCompleter struct {
	cmd *cobra.Command
}

func (c cobraValidArgsCompleter) Complete(prefix string, _ *Action, _ *Parser, ns Namespace) []CandidateItem {
	values, _ := c.cmd.ValidArgsFunction(c.cmd, namespaceArgs(ns), prefix)
	return stringsToItems(values)
}

func namespaceArgs(ns Namespace) []string {
	args, _ := ns["args"].([]string)
	return args
}

func stringsToItems(values []string) []CandidateItem {
	items := make([]CandidateItem, len(values))
	for i, v := range values {
		items[i] = CandidateItem{Literal: v}
	}
	return items
}
