// Package serialize hosts the optional adapters named in spec.md's
// "External Interfaces" section: converting a byteview.Value to and from
// wire formats without the core package knowing those formats exist. Per
// spec.md §1 these adapters are external collaborators, not part of the
// core layout, and none of them import unsafe or internal/layout.
package serialize

import (
	"github.com/bytedance/sonic"

	"github.com/kocubinski/byteview"
)

// jsonAPI mirrors gin's own choice of sonic's default, compatibility-mode
// configuration rather than the fully compliant one, since callers of a
// storage-engine value type are expected to round-trip their own byte
// strings, not validate arbitrary third-party JSON.
var jsonAPI = sonic.ConfigDefault

// MarshalJSON encodes v as a JSON byte string (base64), matching
// encoding/json's native []byte framing so it composes with any other
// sonic- or encoding/json-produced document.
func MarshalJSON(v *byteview.Value) ([]byte, error) {
	return jsonAPI.Marshal(v.Bytes())
}

// UnmarshalJSON decodes a JSON byte string produced by MarshalJSON (or by
// encoding/json for a []byte field) into a freshly constructed Value.
func UnmarshalJSON(data []byte) (byteview.Value, error) {
	var raw []byte
	if err := jsonAPI.Unmarshal(data, &raw); err != nil {
		return byteview.Value{}, err
	}
	return byteview.FromBytes(raw)
}
