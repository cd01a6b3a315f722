// Package codec provides the base64 encoding used for Hohha key and
// ciphertext material on the wire. It wraps the standard library's
// encoder with the reference implementation's tolerance for embedded
// whitespace on decode.
package codec

import (
	"encoding/base64"
	"strings"
)

// EncodeToString returns the standard base64 encoding of data.
func EncodeToString(data []byte) string {
	return base64.StdEncoding.EncodeToString(data)
}

// DecodeString decodes s, a standard base64 string that may contain
// embedded whitespace (spaces, tabs, CR, LF), as original_source's
// b64_decode does when fed a wrapped or pretty-printed blob.
func DecodeString(s string) ([]byte, error) {
	stripped := strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '\r', '\n':
			return -1
		}
		return r
	}, s)
	return base64.StdEncoding.DecodeString(stripped)
}
