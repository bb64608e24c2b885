package metadata

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"

	"nextver.dev/nextver/internal/version"
)

// YAMLPatcher rewrites the top-level version of Chart.yaml or pubspec.yaml.
// It edits the node tree so comments and key order survive.
type YAMLPatcher struct{}

// Format returns FormatYAML
func (YAMLPatcher) Format() Format {
	return FormatYAML
}

func topLevelMapping(content []byte) (*yaml.Node, *yaml.Node, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(content, &doc); err != nil {
		return nil, nil, fmt.Errorf("invalid YAML: %w", err)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 || doc.Content[0].Kind != yaml.MappingNode {
		return nil, nil, fmt.Errorf("top-level YAML value is not a mapping")
	}
	return &doc, doc.Content[0], nil
}

// Version returns the top-level version
func (YAMLPatcher) Version(content []byte) (string, error) {
	_, mapping, err := topLevelMapping(content)
	if err != nil {
		return "", err
	}
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		if mapping.Content[i].Value == "version" {
			return mapping.Content[i+1].Value, nil
		}
	}
	return "", fmt.Errorf("no top-level version key")
}

// SetVersion sets the top-level version as a string, appending the key when absent
func (YAMLPatcher) SetVersion(content []byte, v version.Version) ([]byte, error) {
	doc, mapping, err := topLevelMapping(content)
	if err != nil {
		return nil, err
	}

	found := false
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		if mapping.Content[i].Value == "version" {
			mapping.Content[i+1].SetString(v.String())
			found = true
		}
	}
	if !found {
		key := &yaml.Node{}
		key.SetString("version")
		value := &yaml.Node{}
		value.SetString(v.String())
		mapping.Content = append(mapping.Content, key, value)
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
