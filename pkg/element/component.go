package element

import "github.com/spf13/cast"

// Component is a user-defined element. Render must be a pure function of its
// props: side effects belong in command action handlers, never here.
type Component interface {
	Render(props Props) (Node, error)
}

// ComponentFunc adapts a plain function to Component.
type ComponentFunc func(props Props) (Node, error)

// Render calls f(props).
func (f ComponentFunc) Render(props Props) (Node, error) {
	return f(props)
}

// Props is what a component instance was created with: its attributes and the
// children given at the instantiation site.
type Props struct {
	Attrs    Attrs
	Children []Node
}

// Get looks up a prop.
func (p Props) Get(key string) (any, bool) {
	v, ok := p.Attrs[key]
	return v, ok
}

// String returns a prop converted to a string, "" when missing.
func (p Props) String(key string) string {
	return cast.ToString(p.Attrs[key])
}

// Child returns the children as a single node: Empty for none, the child
// itself for one, and a fragment for several.
func (p Props) Child() Node {
	return Group(p.Children)
}
