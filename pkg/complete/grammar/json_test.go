package grammar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromJSON_DecodesEquivalentDocument(t *testing.T) {
	doc := `{"actions":[{"option_strings":["--format"],"dest":"format","choices":["txt","json"]}]}`
	p, err := FromJSON([]byte(doc))
	require.NoError(t, err)

	format, ok := p.FindOptional("--format")
	require.True(t, ok)
	assert.Equal(t, []string{"txt", "json"}, format.Choices)
}

func TestFromJSON_InvalidDocumentErrors(t *testing.T) {
	_, err := FromJSON([]byte("not json"))
	assert.Error(t, err)
}
