package dispatch

import (
	"github.com/rs/zerolog"

	"github.com/arthur-debert/wonders/pkg/args"
	"github.com/arthur-debert/wonders/pkg/render"
)

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithRenderer sets the renderer used for handler-less commands.
func WithRenderer(r *render.Renderer) Option {
	return func(d *Dispatcher) { d.renderer = r }
}

// WithParser sets the parser Render uses on the program's args attribute.
func WithParser(p args.ParserFunc) Option {
	return func(d *Dispatcher) { d.parser = p }
}

// WithLogger sets the dispatcher logger. The default discards.
func WithLogger(l zerolog.Logger) Option {
	return func(d *Dispatcher) { d.logger = l }
}
