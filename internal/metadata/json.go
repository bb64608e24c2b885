package metadata

import (
	"bytes"
	"encoding/json"
	"fmt"

	"nextver.dev/nextver/internal/version"
)

// JSONPatcher rewrites the top-level "version" key of a JSON object. Key order
// and nested values are kept verbatim; output is indented with two spaces.
type JSONPatcher struct{}

type jsonField struct {
	key   string
	value json.RawMessage
}

// Format returns FormatJSON
func (JSONPatcher) Format() Format {
	return FormatJSON
}

// Version returns the top-level version string
func (JSONPatcher) Version(content []byte) (string, error) {
	fields, err := decodeJSONObject(content)
	if err != nil {
		return "", err
	}
	for _, f := range fields {
		if f.key == "version" {
			var s string
			if err := json.Unmarshal(f.value, &s); err != nil {
				return "", fmt.Errorf("version is not a string: %w", err)
			}
			return s, nil
		}
	}
	return "", fmt.Errorf("no top-level version key")
}

// SetVersion sets the top-level version, appending the key when absent
func (JSONPatcher) SetVersion(content []byte, v version.Version) ([]byte, error) {
	fields, err := decodeJSONObject(content)
	if err != nil {
		return nil, err
	}

	value, err := json.Marshal(v.String())
	if err != nil {
		return nil, err
	}

	found := false
	for i := range fields {
		if fields[i].key == "version" {
			fields[i].value = value
			found = true
		}
	}
	if !found {
		fields = append(fields, jsonField{key: "version", value: value})
	}

	var compact bytes.Buffer
	compact.WriteByte('{')
	for i, f := range fields {
		if i > 0 {
			compact.WriteByte(',')
		}
		key, err := marshalNoEscape(f.key)
		if err != nil {
			return nil, err
		}
		compact.Write(key)
		compact.WriteByte(':')
		compact.Write(f.value)
	}
	compact.WriteByte('}')

	var out bytes.Buffer
	if err := json.Indent(&out, compact.Bytes(), "", "  "); err != nil {
		return nil, err
	}
	out.WriteByte('\n')
	return out.Bytes(), nil
}

// decodeJSONObject splits a top-level object into its fields in document order
func decodeJSONObject(content []byte) ([]jsonField, error) {
	dec := json.NewDecoder(bytes.NewReader(content))

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("top-level JSON value is not an object")
	}

	var fields []jsonField
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("invalid JSON: %w", err)
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("invalid JSON object key %v", tok)
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, fmt.Errorf("invalid JSON value for %q: %w", key, err)
		}
		fields = append(fields, jsonField{key: key, value: raw})
	}

	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	if dec.More() {
		return nil, fmt.Errorf("invalid JSON: trailing data")
	}
	return fields, nil
}

func marshalNoEscape(s string) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
