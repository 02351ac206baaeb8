package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"go.yaml.in/yaml/v3"
)

// Output formats accepted by --format.
const (
	formatText = "text"
	formatJSON = "json"
	formatYAML = "yaml"
)

// writeStructured encodes v as JSON or YAML. It returns false for the text
// format so the caller can render its own layout.
func writeStructured(w io.Writer, format string, v any) (bool, error) {
	switch format {
	case formatText, "":
		return false, nil
	case formatJSON:
		out, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return true, fmt.Errorf("marshaling json: %w", err)
		}
		_, err = fmt.Fprintln(w, string(out))
		return true, err
	case formatYAML:
		out, err := yaml.Marshal(v)
		if err != nil {
			return true, fmt.Errorf("marshaling yaml: %w", err)
		}
		_, err = w.Write(out)
		return true, err
	}
	return true, fmt.Errorf("unknown format %q (use %s, %s, or %s)", format, formatText, formatJSON, formatYAML)
}
