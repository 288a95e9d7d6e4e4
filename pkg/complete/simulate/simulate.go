// Package simulate walks a token stream through a grammar.Parser tree
// without running any user code: a pure interpreter that tracks consumption,
// mutex state, and the active parser stack, replacing the monkey-patched
// action interception the reference implementation relied on.
package simulate

import "github.com/go-argcomplete/argcomplete/pkg/complete/grammar"

// State is the side-table the simulator mutates; it never touches the
// Parser/Action value tree itself, so a GrammarModel stays reusable across
// interleaved completions without any explicit restore step.
type State struct {
	activeParsers []*grammar.Parser
	consumed      map[*grammar.Action]int
	seen          map[*grammar.Action]bool
	mutexSeen     map[string]*grammar.Action // group id -> first member seen
	posIndex      map[*grammar.Parser]int
	namespace     grammar.Namespace
	pendingOption *grammar.Action
	aborted       bool
}

// ActiveParsers returns the parser stack, root first.
func (s *State) ActiveParsers() []*grammar.Parser { return s.activeParsers }

// Current returns the innermost (most recently pushed) active parser.
func (s *State) Current() *grammar.Parser { return s.activeParsers[len(s.activeParsers)-1] }

// Namespace returns the simulated parse result.
func (s *State) Namespace() grammar.Namespace { return s.namespace }

// Consumed returns how many operand tokens action a has consumed so far.
func (s *State) Consumed(a *grammar.Action) int { return s.consumed[a] }

// Seen reports whether optional action a has been matched at least once.
func (s *State) Seen(a *grammar.Action) bool { return s.seen[a] }

// MutexBlocked reports whether a belongs to a mutex group whose slot is
// already held by a different member (fail-closed exclusion).
func (s *State) MutexBlocked(a *grammar.Action) bool {
	if a.GroupID == "" {
		return false
	}
	holder, ok := s.mutexSeen[a.GroupID]
	return ok && holder != a
}

// PendingOption returns the optional still accepting operands at the point
// the walk stopped (the cursor token), or nil if none is active.
func (s *State) PendingOption() *grammar.Action {
	if s.pendingOption != nil && !s.pendingOption.Nargs.MaxReached(s.consumed[s.pendingOption]) {
		return s.pendingOption
	}
	return nil
}

// ActivePositionals returns the positional(s) of the current parser whose
// operand the cursor may be typing: the next unfilled one, plus any further
// ones reachable because every action up to them is optional (nargs "?" or "*").
func (s *State) ActivePositionals() []*grammar.Action {
	parser := s.Current()
	positionals := parser.Positionals()
	idx := s.posIndex[parser]
	var out []*grammar.Action
	for i := idx; i < len(positionals); i++ {
		act := positionals[i]
		out = append(out, act)
		if act.Nargs.Kind == grammar.NArgsOptional || act.Nargs.Kind == grammar.NArgsZeroOrMore {
			continue
		}
		break
	}
	return out
}

// Walk simulates parsing tokens against root, returning the resulting State.
func Walk(root *grammar.Parser, tokens []string) *State {
	s := &State{
		activeParsers: []*grammar.Parser{root},
		consumed:      make(map[*grammar.Action]int),
		seen:          make(map[*grammar.Action]bool),
		mutexSeen:     make(map[string]*grammar.Action),
		posIndex:      make(map[*grammar.Parser]int),
		namespace:     make(grammar.Namespace),
	}
	for _, tok := range tokens {
		s.step(tok)
	}
	return s
}

func (s *State) step(tok string) {
	if s.aborted {
		return
	}
	parser := s.Current()
	positionals := parser.Positionals()
	idx := s.posIndex[parser]

	// Step 1: an active REMAINDER positional swallows everything, forever.
	if idx < len(positionals) && positionals[idx].Nargs.Kind == grammar.NArgsRemainder {
		act := positionals[idx]
		s.consumed[act]++
		s.seen[act] = true
		s.applySafeOperand(act, tok)
		return
	}

	// Continue feeding a pending optional's operands, unless this token
	// itself resolves to a different recognized optional.
	if s.pendingOption != nil {
		act := s.pendingOption
		if !act.Nargs.MaxReached(s.consumed[act]) && !s.looksLikeRecognizedOption(parser, tok) {
			s.consumed[act]++
			s.applySafeOperand(act, tok)
			if act.Nargs.MaxReached(s.consumed[act]) {
				s.pendingOption = nil
			}
			return
		}
		s.pendingOption = nil
	}

	// Step 2: option match (exact or unique abbreviation).
	if hasPrefixChar(tok, parser.PrefixChars) {
		act, ok := parser.FindOptional(tok)
		if !ok {
			// Unrecognized option-looking token: tolerate silently.
			return
		}
		s.seen[act] = true
		if act.GroupID != "" {
			if _, exists := s.mutexSeen[act.GroupID]; !exists {
				s.mutexSeen[act.GroupID] = act
			}
		}
		if act.Kind.TakesOperand() {
			s.pendingOption = act
			if act.Nargs.MaxReached(s.consumed[act]) {
				s.pendingOption = nil
			}
		} else {
			s.consumed[act]++
			s.applySafeFlag(act)
		}
		return
	}

	// Step 3: positional assignment.
	if idx >= len(positionals) {
		return
	}
	cur := positionals[idx]
	if cur.Kind == grammar.KindSubparsers {
		child, ok := cur.Subparsers.Lookup(tok)
		if !ok {
			// Step 4: tolerate the error, but further tokens can't be
			// meaningfully placed without knowing which child grammar applies.
			s.aborted = true
			return
		}
		s.consumed[cur]++
		s.seen[cur] = true
		s.posIndex[parser] = idx + 1
		s.activeParsers = append(s.activeParsers, child)
		if _, exists := s.posIndex[child]; !exists {
			s.posIndex[child] = 0
		}
		return
	}

	s.consumed[cur]++
	s.applySafeOperand(cur, tok)
	if cur.Nargs.MaxReached(s.consumed[cur]) {
		s.posIndex[parser] = idx + 1
	}
}

func (s *State) looksLikeRecognizedOption(parser *grammar.Parser, tok string) bool {
	if !hasPrefixChar(tok, parser.PrefixChars) {
		return false
	}
	_, ok := parser.FindOptional(tok)
	return ok
}

// applySafeOperand updates the namespace for operand-consuming safe kinds.
func (s *State) applySafeOperand(a *grammar.Action, tok string) {
	if !a.Kind.Safe() {
		return
	}
	switch a.Kind {
	case grammar.KindStore:
		s.namespace[a.Dest] = tok
	case grammar.KindAppend:
		existing, _ := s.namespace[a.Dest].([]string)
		s.namespace[a.Dest] = append(existing, tok)
	}
}

// applySafeFlag updates the namespace for zero-operand safe kinds, the
// moment the flag itself is seen.
func (s *State) applySafeFlag(a *grammar.Action) {
	if !a.Kind.Safe() {
		return
	}
	switch a.Kind {
	case grammar.KindStoreTrue:
		s.namespace[a.Dest] = true
	case grammar.KindStoreFalse:
		s.namespace[a.Dest] = false
	case grammar.KindStoreConst:
		s.namespace[a.Dest] = a.Const
	case grammar.KindAppendConst:
		existing, _ := s.namespace[a.Dest].([]any)
		s.namespace[a.Dest] = append(existing, a.Const)
	case grammar.KindCount:
		existing, _ := s.namespace[a.Dest].(int)
		s.namespace[a.Dest] = existing + 1
	}
}

func hasPrefixChar(tok, prefixChars string) bool {
	if tok == "" {
		return false
	}
	for i := 0; i < len(prefixChars); i++ {
		if tok[0] == prefixChars[i] {
			return true
		}
	}
	return false
}
