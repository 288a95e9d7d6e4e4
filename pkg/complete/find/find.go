// Package find implements CompletionFinder: the top-level orchestrator that
// assembles candidates from options, subcommand names, choices, and
// completer callbacks, then applies validation, de-dup, exclusion, and
// trailing-space rules.
package find

import (
	"strings"

	"github.com/go-argcomplete/argcomplete/pkg/complete/completer"
	"github.com/go-argcomplete/argcomplete/pkg/complete/grammar"
	"github.com/go-argcomplete/argcomplete/pkg/complete/lexer"
	"github.com/go-argcomplete/argcomplete/pkg/complete/simulate"
)

// AlwaysMode selects how the "always complete options" behavior filters
// option strings, matching the reference's always_complete_options values.
type AlwaysMode int

const (
	// AlwaysTrue offers every option string, unfiltered, whenever neither an
	// optional nor a positional is awaiting an operand. This is the zero value: the
	// reference implementation's own default is "always complete options",
	// not "only on an explicit prefix char".
	AlwaysTrue AlwaysMode = iota
	// AlwaysLong offers only option strings of length >= 3 ("--foo").
	AlwaysLong
	// AlwaysShort offers short strings, plus any long string with no
	// short counterpart on the same action.
	AlwaysShort
	// AlwaysNone only completes options when the prefix itself begins
	// with a prefix char of the current parser.
	AlwaysNone
)

// continuationChars are trailing bytes that signal a candidate is
// incomplete, suppressing the trailing-space append.
const continuationChars = "=/:"

// Options configures a Finder, mirroring the reference's get_completions options.
type Options struct {
	AlwaysCompleteOptions AlwaysMode
	PrintSuppressed       bool
	Exclude               []string
	// Validator defaults to strings.HasPrefix(candidate, prefix) when nil.
	Validator   func(candidate, prefix string) bool
	AppendSpace bool
}

// Candidate is one completion result, ready for shell-specific quoting.
type Candidate struct {
	Literal string
	Help    string
}

// Finder is CompletionFinder bound to a grammar root and a fixed set of options.
type Finder struct {
	root *grammar.Parser
	opts Options
}

// New builds a Finder, defaulting Validator to a prefix match when unset.
func New(root *grammar.Parser, opts Options) *Finder {
	if opts.Validator == nil {
		opts.Validator = func(candidate, prefix string) bool {
			return strings.HasPrefix(candidate, prefix)
		}
	}
	return &Finder{root: root, opts: opts}
}

// Find runs the full pipeline against a lexer.Context and returns the final
// candidate list. It never mutates the grammar tree, so a Finder is safe to
// reuse across interleaved, unrelated completion requests.
func (f *Finder) Find(ctx lexer.Context) []Candidate {
	tokens := ctx.Preceding
	if len(tokens) > 0 {
		tokens = tokens[1:] // drop the program name itself
	}
	st := simulate.Walk(f.root, tokens)
	current := st.Current()

	var candidates []Candidate

	// A positional mid-consumption (including a not-yet-filled one, e.g. a
	// REMAINDER or choices slot) blocks the default "always complete
	// options" behavior, matching scenario 3's "no -h/--help while a
	// subparser's own positional is active" and scenario 6's "only the
	// REMAINDER's choices" expectations.
	midOperand := st.PendingOption() != nil || len(st.ActivePositionals()) > 0
	wantsOptions := len(ctx.Prefix) > 0 && strings.ContainsAny(ctx.Prefix[:1], current.PrefixChars)
	wantsOptions = wantsOptions || (f.opts.AlwaysCompleteOptions != AlwaysNone && !midOperand)
	if wantsOptions {
		for _, p := range st.ActiveParsers() {
			for _, act := range p.Optionals() {
				if st.MutexBlocked(act) {
					continue
				}
				suppressed := act.HelpSuppressed() || (act.Completer != nil && grammar.IsSuppressed(act.Completer))
				if suppressed && !f.opts.PrintSuppressed {
					continue
				}
				for _, opt := range f.selectOptionStrings(act) {
					candidates = append(candidates, Candidate{Literal: opt, Help: act.Help})
				}
			}
		}
	}

	actives := st.ActivePositionals()
	if len(actives) > 0 && actives[0].Kind == grammar.KindSubparsers {
		for _, name := range actives[0].Subparsers.Names() {
			candidates = append(candidates, Candidate{Literal: name})
		}
		actives = actives[1:]
	}

	preempting := st.PendingOption()
	if preempting != nil {
		actives = []*grammar.Action{preempting}
	}

	var preemptSet []Candidate
	preempted := false
	for _, act := range actives {
		if act.Kind == grammar.KindSubparsers {
			continue
		}
		comp := f.resolveCompleter(act)
		if comp == nil {
			continue
		}
		if grammar.IsSuppressed(comp) {
			if preempting == act {
				preempted = true
				preemptSet = nil
			}
			continue
		}
		items := comp.Complete(ctx.Prefix, act, current, st.Namespace())
		local := make([]Candidate, 0, len(items))
		for _, it := range items {
			local = append(local, Candidate{Literal: it.Literal, Help: it.Help})
		}
		if preempting == act {
			preempted = true
			preemptSet = append(preemptSet, local...)
		} else {
			candidates = append(candidates, local...)
		}
	}
	if preempted {
		candidates = preemptSet
	}

	candidates = filterBy(candidates, func(c Candidate) bool { return f.opts.Validator(c.Literal, ctx.Prefix) })
	candidates = dedup(candidates)
	candidates = excludeSet(candidates, f.opts.Exclude)

	if f.opts.AppendSpace && len(candidates) == 1 {
		lit := candidates[0].Literal
		if lit != "" && !strings.ContainsRune(continuationChars, rune(lit[len(lit)-1])) {
			candidates[0].Literal = lit + " "
		}
	}

	return candidates
}

func (f *Finder) resolveCompleter(act *grammar.Action) grammar.Completer {
	if act.Completer != nil {
		return act.Completer
	}
	if act.Choices != nil {
		return completer.Choices(act.Choices)
	}
	if act.Kind == grammar.KindSubparsers {
		return nil
	}
	return completer.Files()
}

func (f *Finder) selectOptionStrings(act *grammar.Action) []string {
	switch f.opts.AlwaysCompleteOptions {
	case AlwaysLong:
		var out []string
		for _, s := range act.OptionStrings {
			if len(s) >= 3 {
				out = append(out, s)
			}
		}
		return out
	case AlwaysShort:
		var shorts, longs []string
		for _, s := range act.OptionStrings {
			if len(s) >= 3 {
				longs = append(longs, s)
			} else {
				shorts = append(shorts, s)
			}
		}
		if len(shorts) > 0 {
			return shorts
		}
		return longs
	default:
		return act.OptionStrings
	}
}

func filterBy(in []Candidate, keep func(Candidate) bool) []Candidate {
	var out []Candidate
	for _, c := range in {
		if keep(c) {
			out = append(out, c)
		}
	}
	return out
}

func dedup(in []Candidate) []Candidate {
	seen := make(map[string]bool, len(in))
	var out []Candidate
	for _, c := range in {
		if seen[c.Literal] {
			continue
		}
		seen[c.Literal] = true
		out = append(out, c)
	}
	return out
}

func excludeSet(in []Candidate, exclude []string) []Candidate {
	if len(exclude) == 0 {
		return in
	}
	blocked := make(map[string]bool, len(exclude))
	for _, e := range exclude {
		blocked[e] = true
	}
	var out []Candidate
	for _, c := range in {
		if blocked[c.Literal] {
			continue
		}
		out = append(out, c)
	}
	return out
}
