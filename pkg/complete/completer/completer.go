// Package completer supplies the built-in grammar.Completer implementations:
// a fixed-choice completer and a default relative-path file completer,
// mirroring the reference's ChoicesCompleter/FilesCompleter pair.
package completer

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/go-argcomplete/argcomplete/pkg/complete/grammar"
)

// Choices returns a Completer that offers each of values literally,
// regardless of prefix, action, parser, or namespace state (the
// CompletionFinder applies the prefix validator afterwards).
func Choices(values []string) grammar.Completer {
	items := make([]grammar.CandidateItem, len(values))
	for i, v := range values {
		items[i] = grammar.CandidateItem{Literal: v}
	}
	return grammar.CompleterFunc(func(string, *grammar.Action, *grammar.Parser, grammar.Namespace) []grammar.CandidateItem {
		return items
	})
}

// Files returns the default fallback completer: a relative-path, ls-like
// enumeration of the prefix's directory, with directory entries suffixed "/".
func Files() grammar.Completer {
	return grammar.CompleterFunc(func(prefix string, _ *grammar.Action, _ *grammar.Parser, _ grammar.Namespace) []grammar.CandidateItem {
		dir, base := filepath.Split(prefix)
		lookIn := dir
		if lookIn == "" {
			lookIn = "."
		}
		entries, err := os.ReadDir(lookIn)
		if err != nil {
			return nil
		}
		var items []grammar.CandidateItem
		for _, e := range entries {
			name := e.Name()
			if base != "" && !strings.HasPrefix(name, base) {
				continue
			}
			literal := dir + name
			if e.IsDir() {
				literal += "/"
			}
			items = append(items, grammar.CandidateItem{Literal: literal})
		}
		return items
	})
}
