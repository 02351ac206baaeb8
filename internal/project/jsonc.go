package project

import (
	"bytes"
	"fmt"

	"github.com/tailscale/hujson"
)

// StandardizeJSONC converts a JSON document with comments and trailing
// commas into standard JSON. data is left untouched.
func StandardizeJSONC(data []byte) ([]byte, error) {
	out, err := hujson.Standardize(bytes.Clone(data))
	if err != nil {
		return nil, fmt.Errorf("parsing JSONC: %w", err)
	}
	return out, nil
}
