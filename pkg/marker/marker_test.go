package marker

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheck_Found(t *testing.T) {
	ok, err := Check(strings.NewReader("#!/bin/bash\n# GO_ARGCOMPLETE_OK\necho hi\n"))
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestCheck_NotFound(t *testing.T) {
	ok, err := Check(strings.NewReader("#!/bin/bash\necho hi\n"))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCheck_OutsideWindow(t *testing.T) {
	padding := strings.Repeat("x", scanWindow)
	ok, err := Check(strings.NewReader(padding + Literal))
	require.NoError(t, err)
	assert.False(t, ok)
}
