package metadata

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"github.com/go-ini/ini"

	"nextver.dev/nextver/internal/version"
)

// iniSection is the section setuptools reads the version from
const iniSection = "metadata"

var iniVersionLineRegex = regexp.MustCompile(`^(\s*version\s*[=:]\s*)(.*?)(\s*)$`)

// INIPatcher rewrites [metadata] version in setup.cfg style files. The file is
// parsed with go-ini and then edited line by line, so comments and multi-line
// values elsewhere are untouched.
type INIPatcher struct{}

// Format returns FormatINI
func (INIPatcher) Format() Format {
	return FormatINI
}

func loadINI(content []byte) (*ini.File, error) {
	cfg, err := ini.LoadSources(ini.LoadOptions{
		AllowPythonMultilineValues: true,
		SpaceBeforeInlineComment:   true,
		PreserveSurroundedQuote:    true,
	}, content)
	if err != nil {
		return nil, fmt.Errorf("invalid INI: %w", err)
	}
	return cfg, nil
}

// Version returns [metadata] version
func (INIPatcher) Version(content []byte) (string, error) {
	cfg, err := loadINI(content)
	if err != nil {
		return "", err
	}
	section, err := cfg.GetSection(iniSection)
	if err != nil {
		return "", fmt.Errorf("no [%s] section", iniSection)
	}
	if !section.HasKey("version") {
		return "", fmt.Errorf("no version key in [%s]", iniSection)
	}
	return section.Key("version").String(), nil
}

// SetVersion sets [metadata] version, adding the key or the section when absent
func (INIPatcher) SetVersion(content []byte, v version.Version) ([]byte, error) {
	cfg, err := loadINI(content)
	if err != nil {
		return nil, err
	}

	section, err := cfg.GetSection(iniSection)
	if err != nil {
		out := bytes.TrimRight(content, "\n")
		if len(out) > 0 {
			out = append(out, '\n', '\n')
		}
		out = append(out, fmt.Sprintf("[%s]\nversion = %s\n", iniSection, v)...)
		return out, nil
	}
	hasKey := section.HasKey("version")

	lines := strings.Split(string(content), "\n")
	inSection := false
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "[") && strings.HasSuffix(trimmed, "]") {
			inSection = strings.TrimSpace(trimmed[1:len(trimmed)-1]) == iniSection
			if inSection && !hasKey {
				lines = append(lines[:i+1], append([]string{"version = " + v.String()}, lines[i+1:]...)...)
				break
			}
			continue
		}
		if inSection {
			if m := iniVersionLineRegex.FindStringSubmatch(line); m != nil {
				lines[i] = m[1] + v.String() + m[3]
				break
			}
		}
	}

	return []byte(strings.Join(lines, "\n")), nil
}
