// Package grammar is the in-memory representation of an argument grammar:
// parsers, actions, subparser maps, mutually exclusive groups, and the
// completer callbacks attached to individual actions.
package grammar

import "fmt"

// Suppress is the sentinel help value that hides an action from help/listing
// output, mirroring argparse's SUPPRESS constant.
const Suppress = "==SUPPRESS=="

// NArgsKind enumerates the shapes an action's operand count can take.
type NArgsKind int

const (
	// NArgsNone is the default: exactly one operand.
	NArgsNone NArgsKind = iota
	// NArgsExact requires exactly N operands.
	NArgsExact
	// NArgsOptional ("?") accepts zero or one operand.
	NArgsOptional
	// NArgsZeroOrMore ("*") accepts any number, including zero.
	NArgsZeroOrMore
	// NArgsOneOrMore ("+") requires at least one, accepts any number more.
	NArgsOneOrMore
	// NArgsRemainder swallows every remaining token unconditionally.
	NArgsRemainder
)

// NArgs describes an action's operand-count contract.
type NArgs struct {
	Kind NArgsKind
	N    int // meaningful only when Kind == NArgsExact
}

// Nargs builds an exact-count NArgs (argparse's nargs=N).
func Nargs(n int) NArgs { return NArgs{Kind: NArgsExact, N: n} }

// NargsOne is the implicit default: exactly one operand.
func NargsOne() NArgs { return NArgs{Kind: NArgsNone} }

// NargsOptional builds a "?" NArgs.
func NargsOptional() NArgs { return NArgs{Kind: NArgsOptional} }

// NargsZeroOrMore builds a "*" NArgs.
func NargsZeroOrMore() NArgs { return NArgs{Kind: NArgsZeroOrMore} }

// NargsOneOrMore builds a "+" NArgs.
func NargsOneOrMore() NArgs { return NArgs{Kind: NArgsOneOrMore} }

// NargsRemainder builds a REMAINDER NArgs.
func NargsRemainder() NArgs { return NArgs{Kind: NArgsRemainder} }

// MaxReached reports whether consumed has exhausted this contract's upper
// bound; * / + / REMAINDER have no upper bound and are never "maxed".
func (n NArgs) MaxReached(consumed int) bool {
	switch n.Kind {
	case NArgsNone:
		return consumed >= 1
	case NArgsExact:
		return consumed >= n.N
	case NArgsOptional:
		return consumed >= 1
	default:
		return false
	}
}

// Satisfied reports whether this contract's minimum has been met.
func (n NArgs) Satisfied(consumed int) bool {
	switch n.Kind {
	case NArgsNone:
		return consumed >= 1
	case NArgsExact:
		return consumed >= n.N
	case NArgsOneOrMore:
		return consumed >= 1
	default:
		return true
	}
}

// ActionKind enumerates the argparse-style action classes.
type ActionKind int

const (
	KindStore ActionKind = iota
	KindStoreConst
	KindStoreTrue
	KindStoreFalse
	KindAppend
	KindAppendConst
	KindCount
	KindSubparsers
	KindHelp
	KindVersion
	KindCustom
)

// Safe reports whether this kind can be simulated without running user code:
// its effect on the namespace is pure table bookkeeping.
func (k ActionKind) Safe() bool {
	switch k {
	case KindStore, KindStoreConst, KindStoreTrue, KindStoreFalse,
		KindAppend, KindAppendConst, KindCount:
		return true
	default:
		return false
	}
}

// TakesOperand reports whether tokens following this action (when matched as
// an optional) should be consumed as its operands.
func (k ActionKind) TakesOperand() bool {
	switch k {
	case KindStore, KindAppend, KindCustom:
		return true
	default:
		return false
	}
}

// Namespace is the simulated parse result: dest name to accumulated value.
type Namespace map[string]any

// CandidateItem is one value a Completer offers, with optional help text
// (consumed only by dialects that render help, e.g. zsh).
type CandidateItem struct {
	Literal string
	Help    string
}

// Completer supplies completion values for an action's operand.
type Completer interface {
	Complete(prefix string, action *Action, parser *Parser, ns Namespace) []CandidateItem
}

// CompleterFunc adapts a plain function to the Completer interface.
type CompleterFunc func(prefix string, action *Action, parser *Parser, ns Namespace) []CandidateItem

func (f CompleterFunc) Complete(prefix string, action *Action, parser *Parser, ns Namespace) []CandidateItem {
	return f(prefix, action, parser, ns)
}

type suppressCompleter struct{}

func (suppressCompleter) Complete(string, *Action, *Parser, Namespace) []CandidateItem { return nil }

// Suppressed is the sentinel Completer marking an action's operand as never
// offering candidates (and, unless print_suppressed is set, hiding its own
// option strings too).
var Suppressed Completer = suppressCompleter{}

// IsSuppressed reports whether c is the Suppressed sentinel.
func IsSuppressed(c Completer) bool {
	_, ok := c.(suppressCompleter)
	return ok
}

// Action is a single declarative argument slot: an optional (has
// OptionStrings) or a positional (does not).
type Action struct {
	OptionStrings []string
	Dest          string
	Nargs         NArgs
	Choices       []string
	Const         any
	Default       any
	Help          string
	Required      bool
	Completer     Completer
	GroupID       string
	Kind          ActionKind
	Subparsers    *Subparsers // non-nil only when Kind == KindSubparsers
}

// HelpSuppressed reports whether Help is the Suppress sentinel.
func (a *Action) HelpSuppressed() bool { return a.Help == Suppress }

// IsOptional reports whether this action is matched by an option string
// rather than positionally.
func (a *Action) IsOptional() bool { return len(a.OptionStrings) > 0 }

// Subparsers is the child-parser map attached to a KindSubparsers action,
// preserving declaration order and resolving aliases to their canonical parser.
type Subparsers struct {
	order   []string
	parsers map[string]*Parser
}

// NewSubparsers constructs an empty subparser map.
func NewSubparsers() *Subparsers {
	return &Subparsers{parsers: make(map[string]*Parser)}
}

// Add registers name (and any aliases) as routes to p, in declaration order.
func (s *Subparsers) Add(name string, p *Parser, aliases ...string) {
	if _, exists := s.parsers[name]; !exists {
		s.order = append(s.order, name)
	}
	s.parsers[name] = p
	for _, alias := range aliases {
		if _, exists := s.parsers[alias]; !exists {
			s.order = append(s.order, alias)
		}
		s.parsers[alias] = p
	}
}

// Lookup resolves a subcommand name or alias to its child Parser.
func (s *Subparsers) Lookup(name string) (*Parser, bool) {
	p, ok := s.parsers[name]
	return p, ok
}

// Names returns every registered name, including aliases, in declaration order.
func (s *Subparsers) Names() []string {
	return append([]string(nil), s.order...)
}

// Parser is one node of the grammar tree: its own actions plus (via
// KindSubparsers actions) any children.
type Parser struct {
	PrefixChars string
	AddHelp     bool
	Actions     []*Action
	// mutexMembers maps group id to the member actions, in declaration order.
	mutexMembers map[string][]*Action
	optionIndex  map[string]*Action
}

// NewParser builds an empty Parser with Bash-style "-" prefix chars and an
// implicit -h/--help action, mirroring argparse's ArgumentParser defaults.
func NewParser() *Parser {
	p := &Parser{
		PrefixChars:  "-",
		AddHelp:      true,
		mutexMembers: make(map[string][]*Action),
		optionIndex:  make(map[string]*Action),
	}
	if p.AddHelp {
		_ = p.AddOptional(&Action{
			OptionStrings: []string{"-h", "--help"},
			Dest:          "help",
			Kind:          KindHelp,
			Help:          "show this help message and exit",
		})
	}
	return p
}

// AddOptional registers an optional action, validating option-string
// uniqueness and the prefix-char invariant.
func (p *Parser) AddOptional(a *Action) error {
	if len(a.OptionStrings) == 0 {
		return fmt.Errorf("grammar: optional action %q has no option strings", a.Dest)
	}
	for _, s := range a.OptionStrings {
		if s == "" || !hasPrefixChar(s, p.PrefixChars) {
			return fmt.Errorf("grammar: option string %q does not start with a parser prefix char", s)
		}
		if _, exists := p.optionIndex[s]; exists {
			return fmt.Errorf("grammar: duplicate option string %q", s)
		}
	}
	for _, s := range a.OptionStrings {
		p.optionIndex[s] = a
	}
	p.Actions = append(p.Actions, a)
	if a.GroupID != "" {
		p.mutexMembers[a.GroupID] = append(p.mutexMembers[a.GroupID], a)
	}
	return nil
}

// AddPositional registers a positional action, in declaration order.
func (p *Parser) AddPositional(a *Action) error {
	if len(a.OptionStrings) != 0 {
		return fmt.Errorf("grammar: positional action %q carries option strings", a.Dest)
	}
	p.Actions = append(p.Actions, a)
	return nil
}

// AddSubparsers registers a new subparsers positional under dest and
// returns its Subparsers map for the caller to populate.
func (p *Parser) AddSubparsers(dest string) *Subparsers {
	sp := NewSubparsers()
	_ = p.AddPositional(&Action{
		Dest:       dest,
		Kind:       KindSubparsers,
		Nargs:      NargsOne(),
		Subparsers: sp,
	})
	return sp
}

func hasPrefixChar(s, prefixChars string) bool {
	for i := 0; i < len(prefixChars); i++ {
		if len(s) > 0 && s[0] == prefixChars[i] {
			return true
		}
	}
	return false
}

// Optionals returns every action with at least one option string, in
// declaration order.
func (p *Parser) Optionals() []*Action {
	var out []*Action
	for _, a := range p.Actions {
		if a.IsOptional() {
			out = append(out, a)
		}
	}
	return out
}

// Positionals returns every action without option strings, in declaration order.
func (p *Parser) Positionals() []*Action {
	var out []*Action
	for _, a := range p.Actions {
		if !a.IsOptional() {
			out = append(out, a)
		}
	}
	return out
}

// FindOptional resolves a token to a registered optional by exact match or
// unique prefix abbreviation (argparse's abbreviation matching).
func (p *Parser) FindOptional(token string) (*Action, bool) {
	if a, ok := p.optionIndex[token]; ok {
		return a, true
	}
	if len(token) < 2 {
		return nil, false
	}
	var match *Action
	ambiguous := false
	for s, a := range p.optionIndex {
		if len(s) > len(token) && s[:len(token)] == token {
			if match != nil && match != a {
				ambiguous = true
			}
			match = a
		}
	}
	if ambiguous || match == nil {
		return nil, false
	}
	return match, true
}

// MutexGroup returns the other members of a's mutual-exclusion group
// (excluding a itself), or nil if a belongs to no group.
func (p *Parser) MutexGroup(a *Action) []*Action {
	if a.GroupID == "" {
		return nil
	}
	var out []*Action
	for _, m := range p.mutexMembers[a.GroupID] {
		if m != a {
			out = append(out, m)
		}
	}
	return out
}
