// Package env is the completion engine's IO surface: reading the shell
// wrapper's environment contract and writing results to its output/debug
// file descriptors, per SPEC_FULL.md §6.
package env

import (
	"errors"
	"fmt"
	"io"
	"os"

	jsoniter "github.com/json-iterator/go"

	"github.com/go-argcomplete/argcomplete/pkg/complete/quote"
)

// defaultIFS is the vertical-tab separator the shell wrappers use absent an
// explicit override.
const defaultIFS = "\013"

// Request is the parsed invocation contract: everything the engine needs to
// know about the current completion request.
type Request struct {
	Mode          string // "1" or "2"
	Shell         quote.Dialect
	Line          string
	Point         int
	Wordbreaks    string
	IFS           string
	DFS           byte // 0 if unset
	SuppressSpace bool
	Debug         bool
	UseTempfiles  bool
}

// Getenv is the environment accessor the engine reads through; os.Getenv in
// production, a map lookup in tests.
type Getenv func(string) string

// Active reports whether the completion protocol is in effect for this
// process invocation (the shell wrapper sets _ARGCOMPLETE).
func Active(getenv Getenv) bool {
	return getenv("_ARGCOMPLETE") != ""
}

// ReadRequest parses the environment contract. Errors returned here are
// fatal usage errors per §4.6/§7: the engine must exit non-zero without
// writing any candidates.
func ReadRequest(getenv Getenv) (Request, error) {
	mode := getenv("_ARGCOMPLETE")
	if mode == "" {
		return Request{}, errors.New("env: _ARGCOMPLETE is not set")
	}

	line := getenv("COMP_LINE")
	if line == "" {
		return Request{}, errors.New("env: COMP_LINE is required")
	}
	pointStr := getenv("COMP_POINT")
	if pointStr == "" {
		return Request{}, errors.New("env: COMP_POINT is required")
	}
	point, err := parseInt(pointStr)
	if err != nil {
		return Request{}, fmt.Errorf("env: invalid COMP_POINT: %w", err)
	}

	dialect, err := quote.ParseDialect(getenv("_ARGCOMPLETE_SHELL"))
	if err != nil {
		return Request{}, err
	}

	ifs := getenv("_ARGCOMPLETE_IFS")
	if ifs == "" {
		ifs = defaultIFS
	}
	if len(ifs) != 1 {
		return Request{}, errors.New("env: _ARGCOMPLETE_IFS must be exactly one byte")
	}

	var dfs byte
	if v := getenv("_ARGCOMPLETE_DFS"); v != "" {
		if len(v) != 1 {
			return Request{}, errors.New("env: _ARGCOMPLETE_DFS must be exactly one byte")
		}
		dfs = v[0]
	}

	return Request{
		Mode:          mode,
		Shell:         dialect,
		Line:          line,
		Point:         point,
		Wordbreaks:    getenv("_ARGCOMPLETE_COMP_WORDBREAKS"),
		IFS:           ifs,
		DFS:           dfs,
		SuppressSpace: getenv("_ARGCOMPLETE_SUPPRESS_SPACE") == "1",
		Debug:         getenv("_ARC_DEBUG") != "",
		UseTempfiles:  getenv("ARGCOMPLETE_USE_TEMPFILES") == "1",
	}, nil
}

func parseInt(s string) (int, error) {
	n := 0
	neg := false
	for i, c := range s {
		if i == 0 && c == '-' {
			neg = true
			continue
		}
		if c < '0' || c > '9' {
			return 0, fmt.Errorf("not a number: %q", s)
		}
		n = n*10 + int(c-'0')
	}
	if neg {
		n = -n
	}
	return n, nil
}

// StripInterpreter drops the first whitespace-delimited word of line (an
// interpreter, per _ARGCOMPLETE mode "2") and adjusts point accordingly.
func StripInterpreter(line string, point int) (string, int) {
	i := 0
	for i < len(line) && line[i] != ' ' && line[i] != '\t' {
		i++
	}
	for i < len(line) && (line[i] == ' ' || line[i] == '\t') {
		i++
	}
	if i > len(line) {
		i = len(line)
	}
	newPoint := point - i
	if newPoint < 0 {
		newPoint = 0
	}
	return line[i:], newPoint
}

// Output writes the final candidate blob to fd 8 (or a temp file whose path
// is echoed to fd 8, when UseTempfiles is set).
type Output struct {
	fd           *os.File
	useTempfiles bool
}

// OpenOutput opens the shell wrapper's result file descriptor (8).
func OpenOutput(useTempfiles bool) (*Output, error) {
	fd := os.NewFile(8, "fd8")
	if fd == nil {
		return nil, errors.New("env: unable to open fd 8 for writing")
	}
	return &Output{fd: fd, useTempfiles: useTempfiles}, nil
}

// Write emits blob directly, or (when UseTempfiles) to a fresh temp file
// whose path is written to fd 8 instead.
func (o *Output) Write(blob []byte) error {
	if o.useTempfiles {
		tmp, err := os.CreateTemp("", "argcomplete-*")
		if err != nil {
			return err
		}
		if _, err := tmp.Write(blob); err != nil {
			tmp.Close()
			return err
		}
		if err := tmp.Close(); err != nil {
			return err
		}
		_, err = fmt.Fprint(o.fd, tmp.Name())
		return err
	}
	_, err := o.fd.Write(blob)
	return err
}

// Close flushes and closes the output fd.
func (o *Output) Close() error { return o.fd.Close() }

// OpenDebug opens the debug stream (fd 9) when enabled, falling back to
// stderr if fd 9 isn't available, or a discarding writer when disabled.
func OpenDebug(enabled bool) io.WriteCloser {
	if !enabled {
		return nopWriteCloser{io.Discard}
	}
	if f := os.NewFile(9, "fd9"); f != nil {
		if _, err := f.Stat(); err == nil {
			return f
		}
	}
	return nopWriteCloser{os.Stderr}
}

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }

// TraceEvent is one structured record of the debug trace dump, encoded with
// jsoniter's low-allocation codec whenever _ARC_DEBUG is set.
type TraceEvent struct {
	Stage      string   `json:"stage"`
	Prefix     string   `json:"prefix,omitempty"`
	Suffix     string   `json:"suffix,omitempty"`
	Prequote   string   `json:"prequote,omitempty"`
	Preceding  []string `json:"preceding,omitempty"`
	Candidates []string `json:"candidates,omitempty"`
	Note       string   `json:"note,omitempty"`
}

var traceAPI = jsoniter.ConfigCompatibleWithStandardLibrary

// WriteTrace encodes ev as one JSON line to w, swallowing encode failures
// (the debug stream is best-effort diagnostics, never load-bearing).
func WriteTrace(w io.Writer, ev TraceEvent) {
	enc := traceAPI.NewEncoder(w)
	_ = enc.Encode(ev)
}
