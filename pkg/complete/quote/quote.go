// Package quote renders completion candidates safely for the invoking
// shell: dialect-specific escaping, Bash word-break trimming, and the final
// IFS-joined output blob.
package quote

import (
	"errors"
	"fmt"
	"strings"
)

// Dialect is the invoking shell, driving which escaping rules apply.
type Dialect int

const (
	Bash Dialect = iota
	Zsh
	Fish
	Tcsh
)

// ParseDialect maps a shell name (as found in _ARGCOMPLETE_SHELL) to a Dialect.
func ParseDialect(s string) (Dialect, error) {
	switch strings.ToLower(s) {
	case "bash", "":
		return Bash, nil
	case "zsh":
		return Zsh, nil
	case "fish":
		return Fish, nil
	case "tcsh":
		return Tcsh, nil
	default:
		return Bash, fmt.Errorf("quote: unknown shell dialect %q", s)
	}
}

// Item is a candidate ready to be encoded: a literal plus optional help text
// (consumed only by dialects that render it).
type Item struct {
	Literal string
	Help    string
}

// Request carries the per-invocation context the encoding depends on.
type Request struct {
	Dialect  Dialect
	Prequote string // "" | "\"" | "'"
	// WordbreakPos is the byte offset in the original prefix of the last
	// wordbreak character, or -1 if none. Only Bash trims on it.
	WordbreakPos int
	// HelpSep overrides the fish help delimiter (_ARGCOMPLETE_DFS); 0 uses "\t".
	HelpSep byte
}

// bashSuperset is the punctuation set Bash and (by inheritance) the
// unquoted Zsh/Tcsh paths backslash-escape.
const bashSuperset = "()<>;&|!`\"'\\$ \t"

const dquoteEscape = "`$!\"\\"

// Encode renders one candidate per Request's dialect and quoting state.
// wordbreaks is the shell's COMP_WORDBREAKS set, additionally escaped in the
// unquoted case so Bash's own word-splitting re-assembles the token correctly.
func Encode(item Item, req Request, wordbreaks string) string {
	if req.Prequote != "" && req.Dialect != Tcsh {
		switch req.Prequote {
		case "\"":
			return escapeWith(item.Literal, dquoteEscape)
		case "'":
			return strings.ReplaceAll(item.Literal, "'", `'\''`)
		}
	}

	switch req.Dialect {
	case Fish:
		sep := byte('\t')
		if req.HelpSep != 0 {
			sep = req.HelpSep
		}
		if item.Help != "" {
			return item.Literal + string(sep) + item.Help
		}
		return item.Literal

	case Zsh:
		encoded := escapeWith(item.Literal, bashSuperset+wordbreaks)
		if item.Help != "" {
			encoded = strings.ReplaceAll(encoded, ":", `\:`)
			return encoded + ":" + item.Help
		}
		return encoded

	case Tcsh:
		// Known limitation (documented, not "fixed"): Tcsh always escapes
		// the full punctuation superset, but never backslash-escapes a
		// space while a prequote is active.
		set := bashSuperset
		if req.Prequote != "" {
			set = strings.ReplaceAll(set, " ", "")
		}
		return escapeWith(item.Literal, set)

	default: // Bash
		lit := item.Literal
		if req.WordbreakPos >= 0 {
			if req.WordbreakPos+1 <= len(lit) {
				lit = lit[req.WordbreakPos+1:]
			} else {
				lit = ""
			}
		}
		return escapeWith(lit, bashSuperset+wordbreaks)
	}
}

func escapeWith(s, set string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if strings.IndexByte(set, c) >= 0 {
			b.WriteByte('\\')
		}
		b.WriteByte(c)
	}
	return b.String()
}

// Join assembles the final output blob: candidates separated by the
// single-byte IFS. Returns an error if ifs is not exactly one byte, a fatal
// usage error per the engine's failure semantics.
func Join(candidates []string, ifs string) ([]byte, error) {
	if len(ifs) != 1 {
		return nil, errors.New("quote: _ARGCOMPLETE_IFS must be exactly one byte")
	}
	return []byte(strings.Join(candidates, ifs)), nil
}
