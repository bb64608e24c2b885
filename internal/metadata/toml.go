package metadata

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/pelletier/go-toml"

	"nextver.dev/nextver/internal/version"
)

// tomlVersionKeys are checked in order; the first present key is rewritten
var tomlVersionKeys = []string{"project.version", "tool.poetry.version", "package.version", "version"}

// tomlStringValueRegex splits `key = "value" # comment` into the part before
// the value, the quoted value and the rest of the line
var tomlStringValueRegex = regexp.MustCompile(`^([^=]*=\s*)("[^"]*"|'[^']*')(.*)$`)

// TOMLPatcher rewrites the version of pyproject.toml or Cargo.toml manifests.
// go-toml locates the key; only that line is edited so comments, table order
// and indentation stay as they were.
type TOMLPatcher struct{}

// Format returns FormatTOML
func (TOMLPatcher) Format() Format {
	return FormatTOML
}

func loadTOML(content []byte) (*toml.Tree, error) {
	tree, err := toml.LoadBytes(content)
	if err != nil {
		return nil, fmt.Errorf("invalid TOML: %w", err)
	}
	return tree, nil
}

func tomlVersionKey(tree *toml.Tree) string {
	for _, key := range tomlVersionKeys {
		if tree.Has(key) {
			return key
		}
	}
	return ""
}

// Version returns the first version key found
func (TOMLPatcher) Version(content []byte) (string, error) {
	tree, err := loadTOML(content)
	if err != nil {
		return "", err
	}
	key := tomlVersionKey(tree)
	if key == "" {
		return "", fmt.Errorf("no version key")
	}
	s, ok := tree.Get(key).(string)
	if !ok {
		return "", fmt.Errorf("%s is not a string", key)
	}
	return s, nil
}

// SetVersion sets the first version key found. Without one, the version is
// added to the [project] or [package] table when present, else at top level.
func (p TOMLPatcher) SetVersion(content []byte, v version.Version) ([]byte, error) {
	tree, err := loadTOML(content)
	if err != nil {
		return nil, err
	}

	lines := strings.Split(string(content), "\n")
	if key := tomlVersionKey(tree); key != "" {
		if _, ok := tree.Get(key).(string); !ok {
			return nil, fmt.Errorf("%s is not a string", key)
		}
		idx := tree.GetPosition(key).Line - 1
		if idx < 0 || idx >= len(lines) {
			return nil, fmt.Errorf("cannot locate %s", key)
		}
		m := tomlStringValueRegex.FindStringSubmatch(lines[idx])
		if m == nil {
			return nil, fmt.Errorf("cannot rewrite %s on line %d", key, idx+1)
		}
		quote := m[2][:1]
		lines[idx] = m[1] + quote + v.String() + quote + m[3]
	} else {
		lines, err = insertTOMLVersion(tree, lines, v)
		if err != nil {
			return nil, err
		}
	}

	out := []byte(strings.Join(lines, "\n"))
	got, err := p.Version(out)
	if err != nil {
		return nil, err
	}
	if got != v.String() {
		return nil, fmt.Errorf("version still reads %q after rewrite", got)
	}
	return out, nil
}

func insertTOMLVersion(tree *toml.Tree, lines []string, v version.Version) ([]string, error) {
	entry := fmt.Sprintf("version = %q", v.String())

	for _, table := range []string{"project", "package"} {
		if !tree.Has(table) {
			continue
		}
		for i, line := range lines {
			if strings.TrimSpace(line) == "["+table+"]" {
				return insertLine(lines, i+1, entry), nil
			}
		}
		return nil, fmt.Errorf("cannot add a version to [%s]", table)
	}

	return insertLine(lines, 0, entry), nil
}

func insertLine(lines []string, at int, line string) []string {
	out := make([]string, 0, len(lines)+1)
	out = append(out, lines[:at]...)
	out = append(out, line)
	return append(out, lines[at:]...)
}
