package config

import (
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/arthur-debert/wonders/pkg/errors"
)

// Output formats accepted by Encode.
const (
	FormatTOML = "toml"
	FormatYAML = "yaml"
)

// Encode serialises cfg as TOML or YAML.
func Encode(cfg *Config, format string) ([]byte, error) {
	if cfg == nil {
		return nil, errors.New(errors.ErrInvalidInput, "no configuration to encode")
	}

	var (
		out []byte
		err error
	)
	switch strings.ToLower(format) {
	case FormatTOML, "":
		out, err = toml.Marshal(cfg)
	case FormatYAML, "yml":
		out, err = yaml.Marshal(cfg)
	default:
		return nil, errors.Newf(errors.ErrInvalidInput, "unknown format %q, want toml or yaml", format).
			WithDetail("format", format)
	}
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrInternal, "failed to encode configuration as %s", format)
	}
	return out, nil
}

// GenerateConfigContent returns the defaults file with every value commented
// out, ready to be saved as a user file.
func GenerateConfigContent() string {
	return commentOutConfigValues(DefaultsContent())
}

// commentOutConfigValues comments out assignments and keeps blank lines,
// comments and section headers as they are.
func commentOutConfigValues(content string) string {
	lines := strings.Split(content, "\n")
	result := make([]string, 0, len(lines))

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		switch {
		case trimmed == "",
			strings.HasPrefix(trimmed, "#"),
			strings.HasPrefix(trimmed, "[") && strings.HasSuffix(trimmed, "]"):
			result = append(result, line)
		default:
			result = append(result, "# "+line)
		}
	}
	return strings.Join(result, "\n")
}
