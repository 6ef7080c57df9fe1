package bridge

import (
	"strings"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// SafeSerialize JSON-encodes a value for embedding inside an inline
// <script> body. Every "<" in the output, keys and values alike, is
// replaced with its unicode escape so that neither "</script>" nor
// "<!--" can appear in the emitted bytes.
func SafeSerialize(v any) (string, error) {
	out, err := json.MarshalToString(v)
	if err != nil {
		return "", err
	}
	return strings.ReplaceAll(out, "<", "\\u003c"), nil
}
