package domain

import (
	"bytes"
	"encoding/json"
)

// TextInput is the request-side form of an optional free-text bot field.
// Strings pass through unchanged and null means absent. Any other JSON value
// is kept as its compact JSON text, so "tema": 7 stores "7" instead of
// rejecting the request.
type TextInput string

// UnmarshalJSON implements json.Unmarshaler.
func (t *TextInput) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case len(b) == 0 || bytes.Equal(b, []byte("null")):
		*t = ""
	case b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*t = TextInput(s)
	default:
		var buf bytes.Buffer
		if err := json.Compact(&buf, b); err != nil {
			return err
		}
		*t = TextInput(buf.String())
	}
	return nil
}

// String returns the decoded text.
func (t TextInput) String() string { return string(t) }
