package render

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/arthur-debert/wonders/pkg/element"
	"github.com/arthur-debert/wonders/pkg/errors"
)

// Renderer compiles element trees into strings. Its tag table is fixed at
// construction; a Renderer holds no per-render state and may be reused.
type Renderer struct {
	tags     map[string]WrapFunc
	maxDepth int
	logger   zerolog.Logger
}

// New creates a Renderer from the built-in tag table plus options.
func New(opts ...Option) *Renderer {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	tags := builtinTags(cfg)
	for name, wrap := range cfg.extra {
		if structuralTags[name] {
			continue
		}
		tags[name] = wrap
	}

	return &Renderer{
		tags:     tags,
		maxDepth: cfg.maxDepth,
		logger:   cfg.logger,
	}
}

var defaultRenderer = New()

// RenderTree renders node with the default renderer (ANSI escapes, "•" bullets).
func RenderTree(node element.Node) (string, error) {
	return defaultRenderer.Render(node)
}

// Expand resolves a chain of component instances with the default renderer.
func Expand(node element.Node) (element.Node, error) {
	return defaultRenderer.Expand(node)
}

// Render compiles node into a string.
func (r *Renderer) Render(node element.Node) (string, error) {
	out, err := r.render(node, nil, 0)
	if err != nil {
		return "", err
	}
	return out, nil
}

// HasTag reports whether name renders inline with this renderer.
func (r *Renderer) HasTag(name string) bool {
	_, ok := r.tags[name]
	return ok
}

// Expand replaces component instances by their expansion until it reaches a
// node that is not a component. Anything else is returned normalized.
func (r *Renderer) Expand(node element.Node) (element.Node, error) {
	node = element.Normalize(node)
	var path []string
	for depth := 0; ; depth++ {
		inst, ok := node.(element.Instance)
		if !ok {
			return node, nil
		}
		if depth >= r.maxDepth {
			return nil, r.tooDeep(path)
		}
		path = append(path, componentName(inst.Component))
		expanded, err := r.expand(inst, path)
		if err != nil {
			return nil, err
		}
		node = element.Normalize(expanded)
	}
}

// render descends at most maxDepth levels of components and tags, the same
// bound Expand applies.
func (r *Renderer) render(node element.Node, path []string, depth int) (string, error) {
	switch n := element.Normalize(node).(type) {
	case element.Empty:
		return "", nil

	case element.Scalar:
		return n.String(), nil

	case element.Instance:
		if depth >= r.maxDepth {
			return "", r.tooDeep(path)
		}
		path = append(path, componentName(n.Component))
		expanded, err := r.expand(n, path)
		if err != nil {
			return "", err
		}
		return r.render(expanded, path, depth+1)

	case element.Tag:
		if depth >= r.maxDepth {
			return "", r.tooDeep(path)
		}
		path = append(path, n.Name)
		wrap, err := r.lookup(n.Name, path)
		if err != nil {
			return "", err
		}

		var b strings.Builder
		for _, child := range n.Children {
			out, err := r.render(child, path, depth+1)
			if err != nil {
				return "", err
			}
			b.WriteString(out)
		}

		out, err := wrap(b.String())
		if err != nil {
			return "", errors.Wrapf(err, errors.ErrRender, "failed to render <%s>", n.Name).
				WithDetail("tag", n.Name).
				WithDetail("path", joinPath(path))
		}
		return out, nil

	default:
		return "", errors.Newf(errors.ErrInternal, "unsupported node type %T", node).
			WithDetail("path", joinPath(path))
	}
}

func (r *Renderer) lookup(name string, path []string) (WrapFunc, error) {
	if structuralTags[name] {
		return nil, errors.Newf(errors.ErrRender, "<%s> is structural and cannot be rendered inline", name).
			WithDetail("tag", name).
			WithDetail("path", joinPath(path))
	}
	wrap, ok := r.tags[name]
	if !ok {
		return nil, errors.Newf(errors.ErrRender, "unknown tag <%s>", name).
			WithDetail("tag", name).
			WithDetail("path", joinPath(path))
	}
	return wrap, nil
}

func (r *Renderer) expand(inst element.Instance, path []string) (element.Node, error) {
	name := path[len(path)-1]
	r.logger.Trace().
		Str("component", name).
		Int("depth", len(path)).
		Msg("Expanding component")

	if inst.Component == nil {
		return nil, errors.New(errors.ErrRender, "component instance has no component").
			WithDetail("path", joinPath(path))
	}

	out, err := inst.Component.Render(inst.Props)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrRender, "component %s failed to render", name).
			WithDetail("component", name).
			WithDetail("path", joinPath(path))
	}
	return out, nil
}

func (r *Renderer) tooDeep(path []string) error {
	return errors.Newf(errors.ErrRender, "element tree nested deeper than %d levels", r.maxDepth).
		WithDetail("path", joinPath(path))
}

func componentName(c element.Component) string {
	if c == nil {
		return "<nil>"
	}
	if named, ok := c.(fmt.Stringer); ok {
		return named.String()
	}
	return fmt.Sprintf("%T", c)
}

func joinPath(path []string) string {
	return strings.Join(path, " > ")
}
