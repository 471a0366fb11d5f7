package render

import (
	"github.com/muesli/termenv"
	"github.com/rs/zerolog"
)

// DefaultMaxDepth bounds nesting so a component that includes itself fails
// instead of exhausting the stack.
const DefaultMaxDepth = 512

type config struct {
	profile       termenv.Profile
	bullet        string
	markdownStyle string
	markdownWidth int
	maxDepth      int
	extra         map[string]WrapFunc
	logger        zerolog.Logger
}

func defaultConfig() config {
	return config{
		profile:       termenv.ANSI,
		bullet:        DefaultBullet,
		markdownStyle: "notty",
		markdownWidth: 80,
		maxDepth:      DefaultMaxDepth,
		logger:        zerolog.Nop(),
	}
}

// Option configures a Renderer at construction time.
type Option func(*config)

// WithProfile selects the colour profile. termenv.Ascii drops every escape
// sequence; any other profile emits them.
func WithProfile(p termenv.Profile) Option {
	return func(c *config) { c.profile = p }
}

// WithBullet replaces the list item glyph.
func WithBullet(glyph string) Option {
	return func(c *config) { c.bullet = glyph }
}

// WithMarkdownStyle sets the glamour standard style and word wrap width used
// by md tags. A width of 0 disables wrapping.
func WithMarkdownStyle(style string, width int) Option {
	return func(c *config) {
		c.markdownStyle = style
		c.markdownWidth = width
	}
}

// WithMaxDepth overrides DefaultMaxDepth.
func WithMaxDepth(n int) Option {
	return func(c *config) { c.maxDepth = n }
}

// WithTag adds (or replaces) a tag in this renderer's table. Structural tags
// cannot be overridden.
func WithTag(name string, wrap WrapFunc) Option {
	return func(c *config) {
		if c.extra == nil {
			c.extra = make(map[string]WrapFunc)
		}
		c.extra[name] = wrap
	}
}

// WithLogger sets the logger used for trace output. The default discards.
func WithLogger(l zerolog.Logger) Option {
	return func(c *config) { c.logger = l }
}
