package grammar

import jsoniter "github.com/json-iterator/go"

var fileAPI = jsoniter.ConfigCompatibleWithStandardLibrary

// FromJSON decodes a declarative grammar document into a Parser tree. The
// wire shape is identical to FromYAML's, just JSON-encoded.
func FromJSON(data []byte) (*Parser, error) {
	var fp fileParser
	if err := fileAPI.Unmarshal(data, &fp); err != nil {
		return nil, err
	}
	return buildParser(fp)
}
