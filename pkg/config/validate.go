package config

import (
	"github.com/charmbracelet/glamour/styles"

	"github.com/arthur-debert/wonders/pkg/errors"
)

// Validate checks every setting and reports the first invalid one.
func (c *Config) Validate() error {
	switch c.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return invalid("color", c.Color, "must be auto, always or never")
	}

	if c.Bullet == "" {
		return invalid("bullet", c.Bullet, "must not be empty")
	}

	if c.Logging.Verbosity < 0 {
		return invalid("logging.verbosity", c.Logging.Verbosity, "must not be negative")
	}

	if _, ok := styles.DefaultStyles[c.Markdown.Style]; !ok && c.Markdown.Style != styles.AutoStyle {
		return invalid("markdown.style", c.Markdown.Style, "is not a glamour standard style")
	}
	if c.Markdown.Width < 0 {
		return invalid("markdown.width", c.Markdown.Width, "must not be negative")
	}
	return nil
}

func invalid(key string, value interface{}, reason string) error {
	return errors.Newf(errors.ErrConfigInvalid, "%s %s", key, reason).
		WithDetail("key", key).
		WithDetail("value", value)
}
