package topics

// Renderer turns a topic's source into terminal output. Format is the file
// extension the topic was loaded from, including the dot.
type Renderer interface {
	Render(content string, format string) (string, error)
}

// RendererFunc adapts a function to the Renderer interface
type RendererFunc func(content string, format string) (string, error)

// Render calls f
func (f RendererFunc) Render(content string, format string) (string, error) {
	return f(content, format)
}

// PlainRenderer returns content as-is
type PlainRenderer struct{}

// Render returns the content unchanged
func (PlainRenderer) Render(content string, format string) (string, error) {
	return content, nil
}
