package env

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-argcomplete/argcomplete/pkg/complete/quote"
)

func fakeGetenv(vars map[string]string) Getenv {
	return func(k string) string { return vars[k] }
}

func TestActive(t *testing.T) {
	assert.True(t, Active(fakeGetenv(map[string]string{"_ARGCOMPLETE": "1"})))
	assert.False(t, Active(fakeGetenv(map[string]string{})))
}

func TestReadRequest_HappyPath(t *testing.T) {
	req, err := ReadRequest(fakeGetenv(map[string]string{
		"_ARGCOMPLETE":                   "1",
		"COMP_LINE":                      "prog --ship su",
		"COMP_POINT":                     "15",
		"_ARGCOMPLETE_SHELL":             "zsh",
		"_ARGCOMPLETE_COMP_WORDBREAKS":   "=",
		"_ARGCOMPLETE_SUPPRESS_SPACE":    "1",
		"_ARC_DEBUG":                     "1",
		"ARGCOMPLETE_USE_TEMPFILES":      "1",
	}))
	require.NoError(t, err)
	assert.Equal(t, quote.Zsh, req.Shell)
	assert.Equal(t, 15, req.Point)
	assert.Equal(t, "=", req.Wordbreaks)
	assert.True(t, req.SuppressSpace)
	assert.True(t, req.Debug)
	assert.True(t, req.UseTempfiles)
	assert.Equal(t, defaultIFS, req.IFS)
}

func TestReadRequest_MissingCompLineErrors(t *testing.T) {
	_, err := ReadRequest(fakeGetenv(map[string]string{"_ARGCOMPLETE": "1", "COMP_POINT": "0"}))
	assert.Error(t, err)
}

func TestReadRequest_InvalidCompPointErrors(t *testing.T) {
	_, err := ReadRequest(fakeGetenv(map[string]string{
		"_ARGCOMPLETE": "1", "COMP_LINE": "prog", "COMP_POINT": "abc",
	}))
	assert.Error(t, err)
}

func TestReadRequest_BadIFSLengthErrors(t *testing.T) {
	_, err := ReadRequest(fakeGetenv(map[string]string{
		"_ARGCOMPLETE": "1", "COMP_LINE": "prog", "COMP_POINT": "4", "_ARGCOMPLETE_IFS": "ab",
	}))
	assert.Error(t, err)
}

func TestReadRequest_UnknownShellErrors(t *testing.T) {
	_, err := ReadRequest(fakeGetenv(map[string]string{
		"_ARGCOMPLETE": "1", "COMP_LINE": "prog", "COMP_POINT": "4", "_ARGCOMPLETE_SHELL": "powershell",
	}))
	assert.Error(t, err)
}

func TestStripInterpreter(t *testing.T) {
	line, point := StripInterpreter("python3   prog.py --foo", 15)
	assert.Equal(t, "prog.py --foo", line)
	assert.Equal(t, 5, point)
}

func TestStripInterpreter_ClampsNegative(t *testing.T) {
	line, point := StripInterpreter("python3 prog.py", 3)
	assert.Equal(t, "prog.py", line)
	assert.Equal(t, 0, point)
}

func TestWriteTrace_EncodesOneJSONLine(t *testing.T) {
	var buf bytes.Buffer
	WriteTrace(&buf, TraceEvent{Stage: "lexed", Prefix: "su"})
	assert.Contains(t, buf.String(), `"stage":"lexed"`)
	assert.Contains(t, buf.String(), `"prefix":"su"`)
}
