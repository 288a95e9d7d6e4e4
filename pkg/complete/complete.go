// Package complete wires the Lexer, ParseSimulator (via CompletionFinder),
// and Quoter together behind a single Autocomplete entry point, the Go
// analogue of argcomplete.autocomplete(parser).
package complete

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/go-argcomplete/argcomplete/pkg/complete/env"
	"github.com/go-argcomplete/argcomplete/pkg/complete/find"
	"github.com/go-argcomplete/argcomplete/pkg/complete/grammar"
	"github.com/go-argcomplete/argcomplete/pkg/complete/lexer"
	"github.com/go-argcomplete/argcomplete/pkg/complete/quote"
)

// Autocomplete is the integration point a cobra/grammar-backed program calls
// at the very top of main(), before any flag parsing of its own. If the
// shell completion protocol is not in effect (_ARGCOMPLETE unset), it
// returns immediately and the caller proceeds with its normal CLI.
//
// When the protocol is in effect, Autocomplete never returns: it writes
// candidates (or nothing, on internal failure) to the shell's output fd and
// calls os.Exit.
func Autocomplete(root *grammar.Parser, opts find.Options) {
	if !env.Active(os.Getenv) {
		return
	}

	req, err := env.ReadRequest(os.Getenv)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	debug := env.OpenDebug(req.Debug)
	defer debug.Close()

	out, err := env.OpenOutput(req.UseTempfiles)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer out.Close()

	line, point := req.Line, req.Point
	if req.Mode == "2" {
		line, point = env.StripInterpreter(line, point)
	}

	candidates := run(root, opts, req, line, point, debug)

	blob, err := quote.Join(candidates, req.IFS)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if err := out.Write(blob); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	os.Exit(0)
}

// run computes the encoded candidate strings. Any panic from a user
// completer callback is recovered here and treated as "no candidates" for
// that request, per the engine's failure semantics.
func run(root *grammar.Parser, opts find.Options, req env.Request, line string, point int, debug io.Writer) (candidates []string) {
	defer func() {
		if r := recover(); r != nil {
			env.WriteTrace(debug, env.TraceEvent{Stage: "panic", Note: fmt.Sprint(r)})
			candidates = nil
		}
	}()

	ctx := lexer.Split(line, point, req.Wordbreaks)
	env.WriteTrace(debug, env.TraceEvent{
		Stage:     "lexed",
		Prefix:    ctx.Prefix,
		Suffix:    ctx.Suffix,
		Prequote:  ctx.Prequote,
		Preceding: ctx.Preceding,
	})

	if req.SuppressSpace {
		opts.AppendSpace = false
	}

	finder := find.New(root, opts)

	restoreStdout, restoreStderr := muteStdStreams()
	raw := func() []find.Candidate {
		defer restoreStdout()
		defer restoreStderr()
		return finder.Find(ctx)
	}()

	literals := make([]string, len(raw))
	qreq := quote.Request{Dialect: req.Shell, Prequote: ctx.Prequote, WordbreakPos: ctx.WordbreakPos, HelpSep: req.DFS}
	for i, c := range raw {
		// The space find appends to a single match separates words; it is
		// added back after quoting so it is not escaped as part of the value.
		lit, space := c.Literal, ""
		if opts.AppendSpace && len(raw) == 1 && strings.HasSuffix(lit, " ") {
			lit, space = strings.TrimSuffix(lit, " "), " "
		}
		literals[i] = quote.Encode(quote.Item{Literal: lit, Help: c.Help}, qreq, req.Wordbreaks) + space
	}

	env.WriteTrace(debug, env.TraceEvent{Stage: "encoded", Candidates: literals})
	return literals
}

// muteStdStreams redirects os.Stdout/os.Stderr to /dev/null for the
// duration of simulation, so a misbehaving completer callback cannot print
// text that corrupts the shell's input line. Returns restore funcs for each.
func muteStdStreams() (restoreStdout, restoreStderr func()) {
	devNull, err := os.OpenFile(os.DevNull, os.O_WRONLY, 0)
	if err != nil {
		return func() {}, func() {}
	}
	prevOut, prevErr := os.Stdout, os.Stderr
	os.Stdout, os.Stderr = devNull, devNull
	closed := false
	closeOnce := func() {
		if !closed {
			closed = true
			devNull.Close()
		}
	}
	return func() { os.Stdout = prevOut; closeOnce() }, func() { os.Stderr = prevErr; closeOnce() }
}
